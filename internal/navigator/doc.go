// Package navigator answers positional questions about one respondent's
// traversal of a survey: the full path, the path within a section, the screen
// before or after a given one and the navigation summary shown alongside
// each screen.
//
// A Navigator is built per request from a schema and a snapshot. It keeps no
// state between calls; every method walks the schema again.
package navigator

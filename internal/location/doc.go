// internal/location/doc.go

/*
Package location provides the value type that addresses one screen within a
respondent's traversal of a survey.

A Location is the triple (group id, group instance, block id). Its canonical
string form is a slash-separated path, e.g. `repeating-group/1/repeating-block-2`,
which is used both for persisting the respondent's current position and as the
tail of questionnaire URLs.

This package centralizes all formatting and parsing of that path so the rest
of the engine can treat locations as opaque, comparable values.
*/
package location

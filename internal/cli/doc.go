// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. Each
// subcommand loads the schema and snapshot through the app package and
// prints what the navigation engine reports for them.
package cli

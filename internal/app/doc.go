// Package app contains the application lifecycle behind the CLI. It owns the
// configuration, the logger and the loaded survey and snapshot, and hands out
// a navigator and router bound to them. It knows nothing about flags or
// output formatting.
package app

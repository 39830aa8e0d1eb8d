// Package pathbuilder expands a survey schema into the concrete, ordered
// sequence of locations one respondent will visit.
//
// Each walk starts from scratch because repeat counts and routing decisions
// change as answers change. Groups are visited in schema order unless a
// routing rule jumps forward. A rule that jumps back to an earlier block or
// group emits the target once and ends the walk, so every walk is finite.
package pathbuilder

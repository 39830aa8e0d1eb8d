// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package schema provides the immutable, request-independent description of a
// survey: its sections, groups, blocks, questions and answers, together with
// the routing, repeat and skip rules attached to groups and blocks.
//
// # Core Concepts
//
//   - Survey: The root container. Groups are visited in section order, then in
//     group order within each section ("schema order").
//
//   - Group: A named, possibly repeating, ordered collection of blocks. A group
//     may carry a skip condition, a repeat rule and group-level routing rules.
//
//   - Block: A single screen. Introduction, Summary, SectionSummary and
//     Confirmation blocks are synthetic: they frame a group rather than being
//     repeated with it.
//
//   - Condition and RepeatRule: Closed sets of variants. Every variant is a
//     plain struct, and consumers switch over them exhaustively. Adding a new
//     kind means adding a struct here and a case in the rule evaluator.
//
// A Survey is built with New, which validates the structure and builds the
// lookup indices used by the routing engine. After New returns, a Survey is
// never mutated and can be shared freely between goroutines.
package schema

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the closed set of routing and skip conditions.
//
// Conditions are deliberately dumb data. All evaluation lives in the rules
// package, which switches over the concrete types listed here.
package schema

import (
	"fmt"
	"strings"
)

// AnswerRef points at an answer recorded in a specific group.
type AnswerRef struct {
	GroupID  string
	BlockID  string
	AnswerID string
	// GroupInstance qualifies the reference with a fixed instance. -1 means
	// the instance is taken from the context the condition is evaluated in.
	GroupInstance int
}

// NewAnswerRef creates an unqualified reference to an answer id. Group and
// block ids are filled in from the schema when the survey is built.
func NewAnswerRef(answerID string) AnswerRef {
	return AnswerRef{AnswerID: answerID, GroupInstance: -1}
}

// IsQualified reports whether the reference pins a group instance.
func (r AnswerRef) IsQualified() bool {
	return r.GroupInstance >= 0
}

// String renders the reference for logs and error messages.
func (r AnswerRef) String() string {
	var sb strings.Builder
	if r.GroupID != "" {
		sb.WriteString(r.GroupID)
		sb.WriteRune('.')
	}
	if r.BlockID != "" {
		sb.WriteString(r.BlockID)
		sb.WriteRune('.')
	}
	sb.WriteString(r.AnswerID)
	if r.IsQualified() {
		sb.WriteString(fmt.Sprintf("[%d]", r.GroupInstance))
	}
	return sb.String()
}

// Condition is a predicate over answers and metadata. The set of
// implementations is closed to this package.
type Condition interface {
	isCondition()
}

// AnswerEquals holds when the answer's value equals one of Values. With
// Negate set it holds when the value equals none of them. Either way a
// missing answer never satisfies it.
type AnswerEquals struct {
	Answer AnswerRef
	Values []string
	Negate bool
}

// AnswerContains holds when a multi-value answer (e.g. a checkbox) includes
// Value, or with Negate set, when it does not.
type AnswerContains struct {
	Answer AnswerRef
	Value  string
	Negate bool
}

// AnswerSet holds when the answer has been recorded with a non-empty value.
type AnswerSet struct {
	Answer AnswerRef
}

// MetadataFlag holds when metadata `variant_flags.<Flag>` is a boolean equal to Want.
type MetadataFlag struct {
	Flag string
	Want bool
}

// MetadataEquals holds when the metadata value at the dotted Key equals one of Values.
type MetadataEquals struct {
	Key    string
	Values []string
}

func (AnswerEquals) isCondition()   {}
func (AnswerContains) isCondition() {}
func (AnswerSet) isCondition()      {}
func (MetadataFlag) isCondition()   {}
func (MetadataEquals) isCondition() {}

// answerRefOf returns the answer a condition reads, if any.
func answerRefOf(c Condition) (AnswerRef, bool) {
	switch cond := c.(type) {
	case AnswerEquals:
		return cond.Answer, true
	case AnswerContains:
		return cond.Answer, true
	case AnswerSet:
		return cond.Answer, true
	default:
		return AnswerRef{}, false
	}
}

// withAnswerRef returns a copy of c reading ref instead.
func withAnswerRef(c Condition, ref AnswerRef) Condition {
	switch cond := c.(type) {
	case AnswerEquals:
		cond.Answer = ref
		return cond
	case AnswerContains:
		cond.Answer = ref
		return cond
	case AnswerSet:
		cond.Answer = ref
		return cond
	default:
		return c
	}
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the closed set of repeat rules that decide how many
// instances of a group are generated.
package schema

import (
	"errors"
	"fmt"
)

// Repeat rule tags as written in schema files.
const (
	RepeatAnswerCount         = "answer_count"
	RepeatAnswerValue         = "answer_value"
	RepeatAnswerCountMinusOne = "answer_count_minus_one"
)

// ErrUnknownRepeatTag is returned for a repeat tag outside the known set.
var ErrUnknownRepeatTag = errors.New("unknown repeat rule type")

// RepeatRule derives the number of instances of the owning group. The set of
// implementations is closed to this package.
type RepeatRule interface {
	isRepeatRule()
	// Source is the answer the count is derived from.
	Source() AnswerRef
	// Tag is the schema file spelling of the rule.
	Tag() string
}

// AnswerCount repeats once per distinct answer instance of the source answer.
type AnswerCount struct{ Answer AnswerRef }

// AnswerValue repeats as many times as the integer value of the source answer.
type AnswerValue struct{ Answer AnswerRef }

// AnswerCountMinusOne repeats once per answer instance except the first, e.g.
// for "everyone else in the household".
type AnswerCountMinusOne struct{ Answer AnswerRef }

func (AnswerCount) isRepeatRule()         {}
func (AnswerValue) isRepeatRule()         {}
func (AnswerCountMinusOne) isRepeatRule() {}

func (r AnswerCount) Source() AnswerRef         { return r.Answer }
func (r AnswerValue) Source() AnswerRef         { return r.Answer }
func (r AnswerCountMinusOne) Source() AnswerRef { return r.Answer }

func (AnswerCount) Tag() string         { return RepeatAnswerCount }
func (AnswerValue) Tag() string         { return RepeatAnswerValue }
func (AnswerCountMinusOne) Tag() string { return RepeatAnswerCountMinusOne }

// NewRepeatRule builds the repeat rule for a schema tag.
func NewRepeatRule(tag string, ref AnswerRef) (RepeatRule, error) {
	switch tag {
	case RepeatAnswerCount:
		return AnswerCount{Answer: ref}, nil
	case RepeatAnswerValue:
		return AnswerValue{Answer: ref}, nil
	case RepeatAnswerCountMinusOne:
		return AnswerCountMinusOne{Answer: ref}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRepeatTag, tag)
	}
}

func withSource(r RepeatRule, ref AnswerRef) RepeatRule {
	switch rule := r.(type) {
	case AnswerCount:
		rule.Answer = ref
		return rule
	case AnswerValue:
		rule.Answer = ref
		return rule
	case AnswerCountMinusOne:
		rule.Answer = ref
		return rule
	default:
		return r
	}
}

package rules

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/surveynav/internal/answers"
	"github.com/specialistvlad/surveynav/internal/metadata"
	"github.com/specialistvlad/surveynav/internal/schema"
)

// DefaultMaxRepeatInstances bounds repeat counts derived from respondent input.
const DefaultMaxRepeatInstances = 50

// ErrUnknownRepeatRule is returned for a nil or unrecognised repeat rule.
var ErrUnknownRepeatRule = errors.New("unknown repeat rule")

// Scope is the group instance a condition is evaluated in. Unqualified
// answer references to the same group read from this instance.
type Scope struct {
	GroupID       string
	GroupInstance int
}

// Evaluator is safe for concurrent use.
type Evaluator struct {
	answers    *answers.Store
	metadata   metadata.Metadata
	maxRepeats int
	logger     *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithMaxRepeatInstances overrides DefaultMaxRepeatInstances. Values below
// one are ignored.
func WithMaxRepeatInstances(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.maxRepeats = n
		}
	}
}

// WithLogger sets the logger used for clamp warnings and debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Evaluator over a snapshot of answers and metadata.
func New(a *answers.Store, md metadata.Metadata, opts ...Option) *Evaluator {
	e := &Evaluator{
		answers:    a,
		metadata:   md,
		maxRepeats: DefaultMaxRepeatInstances,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxRepeatInstances returns the configured repeat bound.
func (e *Evaluator) MaxRepeatInstances() int {
	return e.maxRepeats
}

// All reports whether every condition holds. An empty list holds.
func (e *Evaluator) All(conds []schema.Condition, scope Scope) bool {
	for _, c := range conds {
		if !e.Condition(c, scope) {
			return false
		}
	}
	return true
}

// FirstMatch returns the first rule whose conditions all hold.
func (e *Evaluator) FirstMatch(rules []schema.RoutingRule, scope Scope) (schema.RoutingRule, bool) {
	for _, rule := range rules {
		if e.All(rule.When, scope) {
			return rule, true
		}
	}
	return schema.RoutingRule{}, false
}

// Condition evaluates a single condition.
func (e *Evaluator) Condition(cond schema.Condition, scope Scope) bool {
	switch c := cond.(type) {
	case schema.AnswerEquals:
		values, ok := e.answerStrings(c.Answer, scope)
		if !ok {
			return false
		}
		matched := slices.ContainsFunc(values, func(v string) bool {
			return slices.Contains(c.Values, v)
		})
		return matched != c.Negate

	case schema.AnswerContains:
		values, ok := e.answerStrings(c.Answer, scope)
		if !ok {
			return false
		}
		return slices.Contains(values, c.Value) != c.Negate

	case schema.AnswerSet:
		_, ok := e.answerStrings(c.Answer, scope)
		return ok

	case schema.MetadataFlag:
		flag, ok := e.metadata.Flag(c.Flag)
		return ok && flag == c.Want

	case schema.MetadataEquals:
		v, ok := e.metadata.Lookup(c.Key)
		if !ok {
			return false
		}
		return slices.ContainsFunc(answers.Strings(v), func(s string) bool {
			return slices.Contains(c.Values, s)
		})

	default:
		e.logger.Warn("Unsupported condition evaluated as false.", "type", fmt.Sprintf("%T", cond))
		return false
	}
}

// Repeat returns how many instances the owning group should have.
func (e *Evaluator) Repeat(rule schema.RepeatRule) (int, error) {
	var n int
	switch r := rule.(type) {
	case schema.AnswerCount:
		n = e.answerCount(r.Answer)
	case schema.AnswerCountMinusOne:
		n = max(0, e.answerCount(r.Answer)-1)
	case schema.AnswerValue:
		n = e.answerValue(r.Answer)
	default:
		return 0, fmt.Errorf("%w: %T", ErrUnknownRepeatRule, rule)
	}

	if n > e.maxRepeats {
		e.logger.Warn("Repeat count clamped.",
			"rule", rule.Tag(),
			"answer", rule.Source().String(),
			"requested", n,
			"max", e.maxRepeats,
		)
		n = e.maxRepeats
	}
	return n, nil
}

func (e *Evaluator) instanceFor(ref schema.AnswerRef, scope Scope) int {
	switch {
	case ref.IsQualified():
		return ref.GroupInstance
	case ref.GroupID == scope.GroupID:
		return scope.GroupInstance
	default:
		return 0
	}
}

func (e *Evaluator) lookup(ref schema.AnswerRef, scope Scope) (cty.Value, bool) {
	v, ok := e.answers.Get(ref.GroupID, ref.BlockID, ref.AnswerID, e.instanceFor(ref, scope), 0)
	if !ok || answers.IsEmpty(v) {
		return cty.NilVal, false
	}
	return v, true
}

func (e *Evaluator) answerStrings(ref schema.AnswerRef, scope Scope) ([]string, bool) {
	v, ok := e.lookup(ref, scope)
	if !ok {
		return nil, false
	}
	values := answers.Strings(v)
	return values, len(values) > 0
}

func (e *Evaluator) answerCount(ref schema.AnswerRef) int {
	instances := e.answers.AnswerInstances(answers.Filter{
		GroupID:        ref.GroupID,
		BlockID:        ref.BlockID,
		AnswerID:       ref.AnswerID,
		GroupInstance:  e.instanceFor(ref, Scope{}),
		AnswerInstance: answers.Any,
	})
	return len(instances)
}

func (e *Evaluator) answerValue(ref schema.AnswerRef) int {
	v, ok := e.lookup(ref, Scope{})
	if !ok {
		return 0
	}
	n, ok := answers.Int(v)
	if !ok || n < 0 {
		e.logger.Debug("Repeat answer is not a non-negative whole number.", "answer", ref.String())
		return 0
	}
	return n
}

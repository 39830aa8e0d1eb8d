// This file translates routing rules, conditions and repeat rules.

package hcl_adapter

import (
	"context"
	"errors"

	"github.com/hashicorp/hcl/v2"

	"github.com/specialistvlad/surveynav/internal/schema"
)

func translateRepeat(r *repeatBlock) (schema.RepeatRule, hcl.Diagnostics) {
	ref := schema.NewAnswerRef(r.Answer)
	if r.GroupInstance != nil {
		ref.GroupInstance = *r.GroupInstance
	}
	rule, err := schema.NewRepeatRule(r.Type, ref)
	if errors.Is(err, schema.ErrUnknownRepeatTag) {
		return nil, hcl.Diagnostics{errorDiag(r.DefRange, "Unknown repeat rule",
			"Repeat type %q is not one of %q, %q or %q.", r.Type,
			schema.RepeatAnswerCount, schema.RepeatAnswerValue, schema.RepeatAnswerCountMinusOne)}
	}
	return rule, nil
}

func (l *Loader) translateRoutingRules(ctx context.Context, in []*routingRuleBlock) ([]schema.RoutingRule, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	rules := make([]schema.RoutingRule, 0, len(in))
	for _, r := range in {
		var rule schema.RoutingRule
		if r.GotoGroup != nil {
			rule.Goto.Group = *r.GotoGroup
		}
		if r.GotoBlock != nil {
			rule.Goto.Block = *r.GotoBlock
		}
		if (r.GotoGroup == nil) == (r.GotoBlock == nil) {
			diags = append(diags, errorDiag(r.DefRange, "Invalid routing rule",
				"A routing rule must set exactly one of goto_group and goto_block."))
			continue
		}

		conds, condDiags := l.translateConditions(ctx, r.When)
		diags = append(diags, condDiags...)
		rule.When = conds
		rules = append(rules, rule)
	}
	return rules, diags
}

func (l *Loader) translateConditions(ctx context.Context, in []*conditionBlock) ([]schema.Condition, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	conds := make([]schema.Condition, 0, len(in))
	for _, c := range in {
		cond, condDiags := l.translateCondition(ctx, c)
		diags = append(diags, condDiags...)
		if cond != nil {
			conds = append(conds, cond)
		}
	}
	return conds, diags
}

func (l *Loader) translateCondition(ctx context.Context, c *conditionBlock) (schema.Condition, hcl.Diagnostics) {
	subjects := 0
	for _, set := range []bool{c.Answer != nil, c.Metadata != nil, c.Flag != nil} {
		if set {
			subjects++
		}
	}
	if subjects != 1 {
		return nil, hcl.Diagnostics{errorDiag(c.DefRange, "Invalid condition",
			"A condition must set exactly one of answer, metadata and flag.")}
	}

	switch {
	case c.Flag != nil:
		return l.translateFlagCondition(ctx, c)
	case c.Metadata != nil:
		if !isExprDefined(ctx, c.Equals, "equals") {
			return nil, hcl.Diagnostics{errorDiag(c.DefRange, "Invalid condition",
				"A metadata condition requires an equals attribute.")}
		}
		values, diags := exprStrings(c.Equals, "equals")
		if diags.HasErrors() {
			return nil, diags
		}
		return schema.MetadataEquals{Key: *c.Metadata, Values: values}, nil
	default:
		return l.translateAnswerCondition(ctx, c)
	}
}

func (l *Loader) translateFlagCondition(ctx context.Context, c *conditionBlock) (schema.Condition, hcl.Diagnostics) {
	cond := schema.MetadataFlag{Flag: *c.Flag, Want: true}
	if !isExprDefined(ctx, c.Equals, "equals") {
		return cond, nil
	}

	values, diags := exprStrings(c.Equals, "equals")
	if diags.HasErrors() {
		return nil, diags
	}
	if len(values) != 1 || (values[0] != "true" && values[0] != "false") {
		return nil, hcl.Diagnostics{errorDiag(c.Equals.Range(), "Invalid flag value",
			"A flag condition compares against true or false.")}
	}
	cond.Want = values[0] == "true"
	return cond, nil
}

func (l *Loader) translateAnswerCondition(ctx context.Context, c *conditionBlock) (schema.Condition, hcl.Diagnostics) {
	ref := schema.NewAnswerRef(*c.Answer)
	if c.GroupInstance != nil {
		ref.GroupInstance = *c.GroupInstance
	}

	type operator struct {
		name string
		expr hcl.Expression
	}
	var defined []operator
	for _, op := range []operator{
		{"equals", c.Equals},
		{"not_equals", c.NotEquals},
		{"contains", c.Contains},
		{"not_contains", c.NotContains},
	} {
		if isExprDefined(ctx, op.expr, op.name) {
			defined = append(defined, op)
		}
	}

	if c.Set != nil {
		if len(defined) > 0 || !*c.Set {
			return nil, hcl.Diagnostics{errorDiag(c.DefRange, "Invalid condition",
				"set must be true and cannot be combined with another operator.")}
		}
		return schema.AnswerSet{Answer: ref}, nil
	}
	if len(defined) != 1 {
		return nil, hcl.Diagnostics{errorDiag(c.DefRange, "Invalid condition",
			"An answer condition must set exactly one of equals, not_equals, contains, not_contains and set.")}
	}

	op := defined[0]
	values, diags := exprStrings(op.expr, op.name)
	if diags.HasErrors() {
		return nil, diags
	}

	switch op.name {
	case "equals", "not_equals":
		return schema.AnswerEquals{Answer: ref, Values: values, Negate: op.name == "not_equals"}, nil
	default:
		if len(values) != 1 {
			return nil, hcl.Diagnostics{errorDiag(op.expr.Range(), "Invalid condition",
				"%s compares against a single value.", op.name)}
		}
		return schema.AnswerContains{Answer: ref, Value: values[0], Negate: op.name == "not_contains"}, nil
	}
}

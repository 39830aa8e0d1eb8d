// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file builds and validates a Survey.
//
// Validation runs in two passes. The first is structural and delegated to
// go-playground/validator through struct tags. The second checks the
// cross-references the routing engine relies on: unique ids, routing targets,
// answer references and the placement of synthetic blocks. Every problem found
// in the second pass is reported, not just the first one.
package schema

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidSchema wraps every schema authoring defect reported by New.
var ErrInvalidSchema = errors.New("invalid survey schema")

var structValidator = validator.New()

// New validates the sections and returns an indexed, immutable Survey. The
// survey takes ownership of the sections; callers must not modify them later.
func New(id, title string, hub Hub, sections ...*Section) (*Survey, error) {
	s := &Survey{
		ID:       id,
		Title:    title,
		Hub:      hub,
		Sections: sections,
	}

	if err := structValidator.Struct(s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	var problems []error
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	s.buildIndices(report)
	if len(problems) == 0 {
		s.resolveReferences(report)
		s.checkRouting(report)
		s.checkSyntheticBlocks(report)
		s.checkHub(report)
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, errors.Join(problems...))
	}
	return s, nil
}

func (s *Survey) buildIndices(report func(string, ...any)) {
	s.groupIndex = make(map[string]int)
	s.sectionByGroup = make(map[string]*Section)
	s.sectionIndex = make(map[string]*Section)
	s.answerIndex = make(map[string]AnswerRef)

	for _, section := range s.Sections {
		if _, exists := s.sectionIndex[section.ID]; exists {
			report("duplicate section id %q", section.ID)
		}
		s.sectionIndex[section.ID] = section

		for _, group := range section.Groups {
			if _, exists := s.groupIndex[group.ID]; exists {
				report("duplicate group id %q", group.ID)
				continue
			}
			s.groupIndex[group.ID] = len(s.groups)
			s.groups = append(s.groups, group)
			s.sectionByGroup[group.ID] = section

			seenBlocks := make(map[string]struct{})
			for _, block := range group.Blocks {
				if _, exists := seenBlocks[block.ID]; exists {
					report("duplicate block id %q in group %q", block.ID, group.ID)
				}
				seenBlocks[block.ID] = struct{}{}

				for _, question := range block.Questions {
					for _, answer := range question.Answers {
						if prev, exists := s.answerIndex[answer.ID]; exists {
							report("answer id %q declared in both %s.%s and %s.%s", answer.ID, prev.GroupID, prev.BlockID, group.ID, block.ID)
							continue
						}
						s.answerIndex[answer.ID] = AnswerRef{
							GroupID:       group.ID,
							BlockID:       block.ID,
							AnswerID:      answer.ID,
							GroupInstance: -1,
						}
					}
				}
			}
		}
	}
}

// resolveRef fills in the group and block of an answer reference and checks
// that any ids the author did give match the schema.
func (s *Survey) resolveRef(ref AnswerRef) (AnswerRef, error) {
	declared, ok := s.answerIndex[ref.AnswerID]
	if !ok {
		return ref, fmt.Errorf("reference to unknown answer %q", ref.AnswerID)
	}
	if ref.GroupID != "" && ref.GroupID != declared.GroupID {
		return ref, fmt.Errorf("answer %q is collected in group %q, not %q", ref.AnswerID, declared.GroupID, ref.GroupID)
	}
	if ref.BlockID != "" && ref.BlockID != declared.BlockID {
		return ref, fmt.Errorf("answer %q is collected in block %q, not %q", ref.AnswerID, declared.BlockID, ref.BlockID)
	}
	ref.GroupID = declared.GroupID
	ref.BlockID = declared.BlockID
	return ref, nil
}

func (s *Survey) resolveConditions(conds []Condition, where string, report func(string, ...any)) {
	for i, cond := range conds {
		switch c := cond.(type) {
		case nil:
			report("%s: condition %d is empty", where, i)
			continue
		case MetadataFlag:
			if c.Flag == "" {
				report("%s: metadata flag condition without a flag name", where)
			}
			continue
		case MetadataEquals:
			if c.Key == "" {
				report("%s: metadata condition without a key", where)
			}
			continue
		}

		ref, ok := answerRefOf(cond)
		if !ok {
			continue
		}
		resolved, err := s.resolveRef(ref)
		if err != nil {
			report("%s: %v", where, err)
			continue
		}
		conds[i] = withAnswerRef(cond, resolved)
	}
}

func (s *Survey) resolveReferences(report func(string, ...any)) {
	for _, group := range s.groups {
		where := fmt.Sprintf("group %q", group.ID)
		s.resolveConditions(group.SkipConditions, where+" skip condition", report)
		for i := range group.RoutingRules {
			s.resolveConditions(group.RoutingRules[i].When, where+" routing rule", report)
		}

		if group.Repeat != nil {
			resolved, err := s.resolveRef(group.Repeat.Source())
			if err != nil {
				report("%s repeat: %v", where, err)
			} else {
				group.Repeat = withSource(group.Repeat, resolved)
			}
		}

		for _, answerID := range group.NavigationName {
			if _, ok := s.answerIndex[answerID]; !ok {
				report("%s navigation name: reference to unknown answer %q", where, answerID)
			}
		}

		for _, block := range group.Blocks {
			blockWhere := fmt.Sprintf("block %q in group %q", block.ID, group.ID)
			s.resolveConditions(block.SkipConditions, blockWhere+" skip condition", report)
			for i := range block.RoutingRules {
				s.resolveConditions(block.RoutingRules[i].When, blockWhere+" routing rule", report)
			}
		}
	}
}

func (s *Survey) checkGoto(g Goto, owner *Group, where string, allowBlock bool, report func(string, ...any)) {
	switch {
	case g.Group != "" && g.Block != "":
		report("%s: goto must name a group or a block, not both", where)
	case g.Group != "":
		if _, ok := s.groupIndex[g.Group]; !ok {
			report("%s: goto references unknown group %q", where, g.Group)
		}
	case g.Block != "":
		if !allowBlock {
			report("%s: group routing rules can only target groups", where)
			return
		}
		if owner.BlockIndex(g.Block) < 0 {
			report("%s: goto references block %q which is not in group %q", where, g.Block, owner.ID)
		}
	default:
		report("%s: goto has no target", where)
	}
}

func (s *Survey) checkRouting(report func(string, ...any)) {
	for _, group := range s.groups {
		for _, rule := range group.RoutingRules {
			s.checkGoto(rule.Goto, group, fmt.Sprintf("group %q", group.ID), false, report)
		}
		for _, block := range group.Blocks {
			for _, rule := range block.RoutingRules {
				s.checkGoto(rule.Goto, group, fmt.Sprintf("block %q in group %q", block.ID, group.ID), true, report)
			}
		}
	}
}

func (s *Survey) checkSyntheticBlocks(report func(string, ...any)) {
	for _, group := range s.groups {
		seenTrailing := false
		for i, block := range group.Blocks {
			switch {
			case block.Type == BlockIntroduction:
				if i != 0 {
					report("introduction block %q must be the first block of group %q", block.ID, group.ID)
				}
			case block.Type.IsTrailing():
				seenTrailing = true
			default:
				if seenTrailing {
					report("block %q follows a summary block in group %q", block.ID, group.ID)
				}
			}
		}
	}
}

func (s *Survey) checkHub(report func(string, ...any)) {
	for _, id := range s.Hub.RequiredSections {
		if _, ok := s.sectionIndex[id]; !ok {
			report("hub requires unknown section %q", id)
		}
	}
}

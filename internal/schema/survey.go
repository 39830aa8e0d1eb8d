// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the structural types of a survey schema.
package schema

// BlockType tags the kind of screen a block represents.
type BlockType string

const (
	BlockQuestion              BlockType = "Question"
	BlockInterstitial          BlockType = "Interstitial"
	BlockListCollector         BlockType = "ListCollector"
	BlockRelationshipCollector BlockType = "RelationshipCollector"
	BlockIntroduction          BlockType = "Introduction"
	BlockSummary               BlockType = "Summary"
	BlockSectionSummary        BlockType = "SectionSummary"
	BlockConfirmation          BlockType = "Confirmation"
)

// IntroductionBlockID and SummaryBlockID are the ids given to the synthetic
// blocks added by a group's `introduction` and `summary` flags.
const (
	IntroductionBlockID = "introduction"
	SummaryBlockID      = "summary"
)

// IsSynthetic reports whether blocks of this type frame a group rather than
// collect answers. Synthetic blocks are excluded from routing paths.
func (t BlockType) IsSynthetic() bool {
	return t == BlockIntroduction || t.IsTrailing()
}

// IsTrailing reports whether blocks of this type must come after every
// ordinary block of their group.
func (t BlockType) IsTrailing() bool {
	switch t {
	case BlockSummary, BlockSectionSummary, BlockConfirmation:
		return true
	default:
		return false
	}
}

// Survey is the root of a schema.
type Survey struct {
	ID       string     `validate:"required"`
	Title    string
	Hub      Hub
	Sections []*Section `validate:"required,min=1,dive,required"`

	groups         []*Group
	groupIndex     map[string]int
	sectionByGroup map[string]*Section
	sectionIndex   map[string]*Section
	answerIndex    map[string]AnswerRef
}

// Hub configures the hub overview screen.
type Hub struct {
	Enabled bool
	// RequiredSections must all be completed before the hub is reachable. When
	// empty, the hub is reachable once any screen has been completed.
	RequiredSections []string
}

// Section is a named run of groups used for completion and hub granularity.
type Section struct {
	ID     string   `validate:"required"`
	Title  string
	Groups []*Group `validate:"required,min=1,dive,required"`
}

// Group is an ordered collection of blocks.
type Group struct {
	ID             string   `validate:"required"`
	Title          string
	Blocks         []*Block `validate:"required,min=1,dive,required"`
	RoutingRules   []RoutingRule
	SkipConditions []Condition
	// Repeat is nil for groups that are visited exactly once.
	Repeat RepeatRule
	// NavigationName lists the answer ids whose values, joined with spaces,
	// label each instance of a repeating group in the navigation summary.
	NavigationName []string
}

// Block is a single screen.
type Block struct {
	ID             string    `validate:"required"`
	Type           BlockType `validate:"required,oneof=Question Interstitial ListCollector RelationshipCollector Introduction Summary SectionSummary Confirmation"`
	Title          string
	Questions      []*Question `validate:"dive,required"`
	RoutingRules   []RoutingRule
	SkipConditions []Condition
}

// Question groups the answers shown together on a block.
type Question struct {
	ID      string              `validate:"required"`
	Title   string
	Answers []*AnswerDefinition `validate:"dive,required"`
}

// AnswerDefinition describes one answer field. The engine only needs its id;
// the remaining fields are carried for the rendering layer.
type AnswerDefinition struct {
	ID    string `validate:"required"`
	Type  string
	Label string
}

// Goto names the target of a routing rule. Exactly one field is set.
type Goto struct {
	Group string
	Block string
}

// RoutingRule overrides which screen follows when all of When hold. A rule
// without conditions always applies.
type RoutingRule struct {
	Goto Goto
	When []Condition
}

// IsRepeating reports whether the group has a repeat rule.
func (g *Group) IsRepeating() bool {
	return g.Repeat != nil
}

// HasIntroduction reports whether the group starts with an introduction block.
func (g *Group) HasIntroduction() bool {
	return len(g.Blocks) > 0 && g.Blocks[0].Type == BlockIntroduction
}

// BlockIndex returns the position of the block within the group, or -1.
func (g *Group) BlockIndex(blockID string) int {
	for i, b := range g.Blocks {
		if b.ID == blockID {
			return i
		}
	}
	return -1
}

// LoopEntry returns the editing entry point of a group that loops back into
// itself: the target of the first block routing rule that points at the same
// or an earlier block of the group.
func (g *Group) LoopEntry() (string, bool) {
	for i, b := range g.Blocks {
		for _, rule := range b.RoutingRules {
			if rule.Goto.Block == "" {
				continue
			}
			if target := g.BlockIndex(rule.Goto.Block); target >= 0 && target <= i {
				return rule.Goto.Block, true
			}
		}
	}
	return "", false
}

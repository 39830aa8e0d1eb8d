// This file contains the logic for translating the decoded HCL structs into
// the schema package's survey model.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/specialistvlad/surveynav/internal/ctxlog"
	"github.com/specialistvlad/surveynav/internal/schema"
)

func (l *Loader) translateSurvey(ctx context.Context, s *surveyBlock) (*schema.Survey, error) {
	logger := ctxlog.FromContext(ctx).With("survey_id", s.ID)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Translating HCL survey to schema model.")

	var diags hcl.Diagnostics
	sections := make([]*schema.Section, 0, len(s.Sections))
	for _, sec := range s.Sections {
		section, secDiags := l.translateSection(ctx, sec)
		diags = append(diags, secDiags...)
		sections = append(sections, section)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to translate survey %q: %w", s.ID, diags)
	}

	var hub schema.Hub
	if s.Hub != nil {
		hub = schema.Hub{Enabled: s.Hub.Enabled, RequiredSections: s.Hub.RequiredSections}
	}

	survey, err := schema.New(s.ID, s.Title, hub, sections...)
	if err != nil {
		return nil, fmt.Errorf("survey %q: %w", s.ID, err)
	}
	return survey, nil
}

func (l *Loader) translateSection(ctx context.Context, s *sectionBlock) (*schema.Section, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	section := &schema.Section{ID: s.ID, Title: s.Title}
	for _, g := range s.Groups {
		group, groupDiags := l.translateGroup(ctx, g)
		diags = append(diags, groupDiags...)
		section.Groups = append(section.Groups, group)
	}
	return section, diags
}

func (l *Loader) translateGroup(ctx context.Context, g *groupBlock) (*schema.Group, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx).With("group_id", g.ID)
	ctx = ctxlog.WithLogger(ctx, logger)

	var diags hcl.Diagnostics
	group := &schema.Group{
		ID:             g.ID,
		Title:          g.Title,
		NavigationName: g.NavigationName,
	}

	if g.Introduction {
		logger.Debug("Adding synthetic introduction block.")
		group.Blocks = append(group.Blocks, &schema.Block{ID: schema.IntroductionBlockID, Type: schema.BlockIntroduction})
	}
	for _, b := range g.Blocks {
		block, blockDiags := l.translateBlock(ctx, b)
		diags = append(diags, blockDiags...)
		group.Blocks = append(group.Blocks, block)
	}
	if g.Summary {
		logger.Debug("Adding synthetic summary block.")
		group.Blocks = append(group.Blocks, &schema.Block{ID: schema.SummaryBlockID, Type: schema.BlockSummary})
	}

	if g.Repeat != nil {
		rule, repeatDiags := translateRepeat(g.Repeat)
		diags = append(diags, repeatDiags...)
		group.Repeat = rule
	}

	conds, condDiags := l.translateConditions(ctx, g.SkipConditions)
	diags = append(diags, condDiags...)
	group.SkipConditions = conds

	rules, ruleDiags := l.translateRoutingRules(ctx, g.RoutingRules)
	diags = append(diags, ruleDiags...)
	group.RoutingRules = rules

	return group, diags
}

func (l *Loader) translateBlock(ctx context.Context, b *blockBlock) (*schema.Block, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	blockType := schema.BlockQuestion
	if b.Type != nil {
		blockType = schema.BlockType(*b.Type)
	}

	block := &schema.Block{
		ID:    b.ID,
		Type:  blockType,
		Title: b.Title,
	}
	for _, q := range b.Questions {
		question := &schema.Question{ID: q.ID, Title: q.Title}
		for _, a := range q.Answers {
			question.Answers = append(question.Answers, &schema.AnswerDefinition{ID: a.ID, Type: a.Type, Label: a.Label})
		}
		block.Questions = append(block.Questions, question)
	}

	conds, condDiags := l.translateConditions(ctx, b.SkipConditions)
	diags = append(diags, condDiags...)
	block.SkipConditions = conds

	rules, ruleDiags := l.translateRoutingRules(ctx, b.RoutingRules)
	diags = append(diags, ruleDiags...)
	block.RoutingRules = rules

	return block, diags
}

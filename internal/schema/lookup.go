// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package schema

// Groups returns every group in schema order.
func (s *Survey) Groups() []*Group {
	return s.groups
}

// Group looks up a group by id.
func (s *Survey) Group(id string) (*Group, bool) {
	i, ok := s.groupIndex[id]
	if !ok {
		return nil, false
	}
	return s.groups[i], true
}

// GroupIndex returns the schema-order position of a group, or -1.
func (s *Survey) GroupIndex(id string) int {
	i, ok := s.groupIndex[id]
	if !ok {
		return -1
	}
	return i
}

// Block looks up a block within a group.
func (s *Survey) Block(groupID, blockID string) (*Block, bool) {
	g, ok := s.Group(groupID)
	if !ok {
		return nil, false
	}
	i := g.BlockIndex(blockID)
	if i < 0 {
		return nil, false
	}
	return g.Blocks[i], true
}

// Section looks up a section by id.
func (s *Survey) Section(id string) (*Section, bool) {
	section, ok := s.sectionIndex[id]
	return section, ok
}

// SectionForGroup returns the section that contains the group.
func (s *Survey) SectionForGroup(groupID string) (*Section, bool) {
	section, ok := s.sectionByGroup[groupID]
	return section, ok
}

// SectionIDs returns the section ids in schema order.
func (s *Survey) SectionIDs() []string {
	ids := make([]string, 0, len(s.Sections))
	for _, section := range s.Sections {
		ids = append(ids, section.ID)
	}
	return ids
}

// AnswerRef returns the fully resolved reference for an answer id.
func (s *Survey) AnswerRef(answerID string) (AnswerRef, bool) {
	ref, ok := s.answerIndex[answerID]
	return ref, ok
}

// IsHubEnabled reports whether hub-style section navigation is on.
func (s *Survey) IsHubEnabled() bool {
	return s.Hub.Enabled
}

// HasGroup reports whether the section contains the group.
func (sec *Section) HasGroup(groupID string) bool {
	for _, g := range sec.Groups {
		if g.ID == groupID {
			return true
		}
	}
	return false
}

// SummaryBlock returns the section's trailing summary block and the group it
// belongs to, preferring the last declared one.
func (sec *Section) SummaryBlock() (*Group, *Block, bool) {
	for i := len(sec.Groups) - 1; i >= 0; i-- {
		g := sec.Groups[i]
		for j := len(g.Blocks) - 1; j >= 0; j-- {
			b := g.Blocks[j]
			if b.Type == BlockSectionSummary || b.Type == BlockSummary {
				return g, b, true
			}
		}
	}
	return nil, nil, false
}

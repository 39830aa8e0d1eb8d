// Package progress tracks which screens a respondent has completed and the
// completion status recorded for each section instance.
package progress

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/surveynav/internal/location"
)

// CompletionStatus is the verdict recorded for a section instance.
type CompletionStatus string

const (
	NotStarted CompletionStatus = "NOT_STARTED"
	InProgress CompletionStatus = "IN_PROGRESS"
	Completed  CompletionStatus = "COMPLETED"
)

// ParseStatus validates a status read from persisted state.
func ParseStatus(raw string) (CompletionStatus, error) {
	switch s := CompletionStatus(raw); s {
	case NotStarted, InProgress, Completed:
		return s, nil
	default:
		return "", fmt.Errorf("unknown completion status %q", raw)
	}
}

// Tracker is the read side of a progress store.
type Tracker interface {
	IsCompleted(loc location.Location) bool
	// SectionStatus returns NotStarted for section instances with no record.
	SectionStatus(sectionID string, instance int) CompletionStatus
	CompletedCount() int
}

// SectionKey addresses one instance of a section.
type SectionKey struct {
	SectionID string
	Instance  int
}

// Store is an immutable in-memory Tracker.
type Store struct {
	completed []location.Location
	index     map[location.Location]struct{}
	sections  map[SectionKey]CompletionStatus
}

var _ Tracker = (*Store)(nil)

// NewStore captures completed locations and recorded section statuses.
// Duplicate locations are collapsed.
func NewStore(completed []location.Location, sections map[SectionKey]CompletionStatus) *Store {
	s := &Store{
		index:    make(map[location.Location]struct{}, len(completed)),
		sections: make(map[SectionKey]CompletionStatus, len(sections)),
	}
	for _, loc := range completed {
		if _, seen := s.index[loc]; seen {
			continue
		}
		s.index[loc] = struct{}{}
		s.completed = append(s.completed, loc)
	}
	for k, v := range sections {
		s.sections[k] = v
	}
	return s
}

// IsCompleted implements Tracker.
func (s *Store) IsCompleted(loc location.Location) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[loc]
	return ok
}

// SectionStatus implements Tracker.
func (s *Store) SectionStatus(sectionID string, instance int) CompletionStatus {
	if s == nil {
		return NotStarted
	}
	if status, ok := s.sections[SectionKey{SectionID: sectionID, Instance: instance}]; ok {
		return status
	}
	return NotStarted
}

// CompletedCount implements Tracker.
func (s *Store) CompletedCount() int {
	if s == nil {
		return 0
	}
	return len(s.completed)
}

// Completed returns the completed locations in the order they were recorded.
func (s *Store) Completed() []location.Location {
	if s == nil {
		return nil
	}
	return slices.Clone(s.completed)
}

// StatusOf derives a status from a routing path: NotStarted when none of
// its locations are completed, Completed when all are, InProgress otherwise.
// An empty path is NotStarted.
func StatusOf(path []location.Location, t Tracker) CompletionStatus {
	done := 0
	for _, loc := range path {
		if t.IsCompleted(loc) {
			done++
		}
	}
	switch {
	case done == 0:
		return NotStarted
	case done == len(path):
		return Completed
	default:
		return InProgress
	}
}

// AllCompleted reports whether every location of path is completed.
func AllCompleted(path []location.Location, t Tracker) bool {
	for _, loc := range path {
		if !t.IsCompleted(loc) {
			return false
		}
	}
	return true
}

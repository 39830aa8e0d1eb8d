// Package snapshot bundles the per-request state the routing engine reads:
// answers, metadata and progress. A Snapshot is built once and never mutated,
// so a single path computation sees a consistent view.
package snapshot

import (
	"github.com/specialistvlad/surveynav/internal/answers"
	"github.com/specialistvlad/surveynav/internal/metadata"
	"github.com/specialistvlad/surveynav/internal/progress"
)

// Snapshot is the explicit request context passed to navigators and routers.
type Snapshot struct {
	Answers  *answers.Store
	Metadata metadata.Metadata
	Progress progress.Tracker
}

// New assembles a snapshot. A nil progress tracker is replaced with an empty one.
func New(a *answers.Store, md metadata.Metadata, p progress.Tracker) Snapshot {
	if a == nil {
		a = answers.NewStore()
	}
	if p == nil {
		p = progress.NewStore(nil, nil)
	}
	return Snapshot{Answers: a, Metadata: md, Progress: p}
}

// Empty returns a snapshot with no answers, metadata or progress.
func Empty() Snapshot {
	return New(nil, metadata.New(nil), nil)
}

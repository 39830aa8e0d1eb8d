package navigator

import (
	"context"
	"fmt"
	"slices"

	"github.com/specialistvlad/surveynav/internal/ctxlog"
	"github.com/specialistvlad/surveynav/internal/location"
	"github.com/specialistvlad/surveynav/internal/pathbuilder"
	"github.com/specialistvlad/surveynav/internal/progress"
	"github.com/specialistvlad/surveynav/internal/rules"
	"github.com/specialistvlad/surveynav/internal/schema"
	"github.com/specialistvlad/surveynav/internal/snapshot"
)

// Navigator computes paths and neighbouring locations.
type Navigator struct {
	survey *schema.Survey
	snap   snapshot.Snapshot
	eval   *rules.Evaluator
}

// New creates a Navigator for one request.
func New(survey *schema.Survey, snap snapshot.Snapshot, opts ...rules.Option) *Navigator {
	return &Navigator{
		survey: survey,
		snap:   snap,
		eval:   rules.New(snap.Answers, snap.Metadata, opts...),
	}
}

// Survey returns the schema the navigator walks.
func (n *Navigator) Survey() *schema.Survey {
	return n.survey
}

// Snapshot returns the request state the navigator reads.
func (n *Navigator) Snapshot() snapshot.Snapshot {
	return n.snap
}

// LocationPath returns every location the respondent will visit, including
// introduction and summary screens.
func (n *Navigator) LocationPath(ctx context.Context) ([]location.Location, error) {
	path, err := pathbuilder.Build(ctx, n.survey, n.eval)
	if err != nil {
		return nil, fmt.Errorf("failed to build location path: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Location path built.", "survey_id", n.survey.ID, "locations", len(path))
	return path, nil
}

// RoutingPath returns the path of answerable screens. A non-empty sectionID
// restricts it to that section and a non-negative instance to that group
// instance. A location reached twice through a re-entrant rule is listed once.
func (n *Navigator) RoutingPath(ctx context.Context, sectionID string, instance int) ([]location.Location, error) {
	var section *schema.Section
	if sectionID != "" {
		s, ok := n.survey.Section(sectionID)
		if !ok {
			return nil, fmt.Errorf("unknown section %q", sectionID)
		}
		section = s
	}

	path, err := n.LocationPath(ctx)
	if err != nil {
		return nil, err
	}
	return n.routingLocations(path, section, instance), nil
}

func (n *Navigator) routingLocations(path []location.Location, section *schema.Section, instance int) []location.Location {
	seen := make(map[location.Location]struct{}, len(path))
	var out []location.Location
	for _, loc := range path {
		if section != nil && !section.HasGroup(loc.GroupID) {
			continue
		}
		if instance >= 0 && loc.GroupInstance != instance {
			continue
		}
		if n.isSynthetic(loc) {
			continue
		}
		if _, dup := seen[loc]; dup {
			continue
		}
		seen[loc] = struct{}{}
		out = append(out, loc)
	}
	return out
}

func (n *Navigator) isSynthetic(loc location.Location) bool {
	b, ok := n.survey.Block(loc.GroupID, loc.BlockID)
	return ok && b.Type.IsSynthetic()
}

// NextLocation returns the location after cur. The bool is false when cur
// is the last location.
func (n *Navigator) NextLocation(ctx context.Context, cur location.Location) (location.Location, bool, error) {
	path, err := n.LocationPath(ctx)
	if err != nil {
		return location.Location{}, false, err
	}
	i := location.Index(path, cur)
	if i < 0 {
		return location.Location{}, false, &LocationNotFoundError{Location: cur}
	}
	if i == len(path)-1 {
		return location.Location{}, false, nil
	}
	return path[i+1], true, nil
}

// PreviousLocation returns the location before cur. The bool is false when
// cur is the first location.
//
// Stepping back into a group that loops over itself, such as a list summary
// that offers "add another", lands on the group's editing entry point until
// that group instance is complete.
func (n *Navigator) PreviousLocation(ctx context.Context, cur location.Location) (location.Location, bool, error) {
	path, err := n.LocationPath(ctx)
	if err != nil {
		return location.Location{}, false, err
	}
	i := location.Index(path, cur)
	if i < 0 {
		return location.Location{}, false, &LocationNotFoundError{Location: cur}
	}
	if i == 0 {
		return location.Location{}, false, nil
	}

	prev := path[i-1]
	if prev.InGroupInstance(cur.GroupID, cur.GroupInstance) {
		return prev, true, nil
	}

	g, ok := n.survey.Group(prev.GroupID)
	if !ok {
		return prev, true, nil
	}
	entry, loops := g.LoopEntry()
	if !loops {
		return prev, true, nil
	}

	instancePath := n.routingLocations(path, nil, prev.GroupInstance)
	instancePath = slices.DeleteFunc(instancePath, func(l location.Location) bool {
		return l.GroupID != prev.GroupID
	})
	if progress.AllCompleted(instancePath, n.snap.Progress) {
		return prev, true, nil
	}

	ctxlog.FromContext(ctx).Debug("Returning to group entry point.", "group_id", g.ID, "block_id", entry)
	return location.New(prev.GroupID, prev.GroupInstance, entry), true, nil
}

package navigator

import (
	"context"
	"strings"

	"github.com/specialistvlad/surveynav/internal/answers"
	"github.com/specialistvlad/surveynav/internal/location"
	"github.com/specialistvlad/surveynav/internal/schema"
)

// NavigationEntry is one line of the navigation summary.
type NavigationEntry struct {
	Name      string
	Repeating bool
	Completed bool
	Highlight bool
	// Location is the first non-introduction screen of the group instance.
	Location location.Location
	URL      string
}

type groupInstance struct {
	groupID  string
	instance int
}

// FrontEndNavigation returns one entry per group instance on the path, in
// path order. An entry is completed when every answerable screen of its group
// instance is in completed.
func (n *Navigator) FrontEndNavigation(ctx context.Context, completed []location.Location, currentGroupID string, currentGroupInstance int) ([]NavigationEntry, error) {
	path, err := n.LocationPath(ctx)
	if err != nil {
		return nil, err
	}

	done := make(map[location.Location]struct{}, len(completed))
	for _, loc := range completed {
		done[loc] = struct{}{}
	}

	var order []groupInstance
	members := make(map[groupInstance][]location.Location)
	for _, loc := range path {
		key := groupInstance{loc.GroupID, loc.GroupInstance}
		if _, ok := members[key]; !ok {
			order = append(order, key)
		}
		if location.Index(members[key], loc) < 0 {
			members[key] = append(members[key], loc)
		}
	}

	entries := make([]NavigationEntry, 0, len(order))
	for _, key := range order {
		g, _ := n.survey.Group(key.groupID)
		locs := members[key]

		link := locs[0]
		for _, loc := range locs {
			if b, ok := n.survey.Block(loc.GroupID, loc.BlockID); ok && b.Type != schema.BlockIntroduction {
				link = loc
				break
			}
		}

		entries = append(entries, NavigationEntry{
			Name:      n.displayName(g, key.instance),
			Repeating: g.IsRepeating(),
			Completed: n.instanceCompleted(locs, done),
			Highlight: key.groupID == currentGroupID && key.instance == currentGroupInstance,
			Location:  link,
			URL:       link.URL(n.snap.Metadata.Raw()),
		})
	}
	return entries, nil
}

func (n *Navigator) instanceCompleted(locs []location.Location, done map[location.Location]struct{}) bool {
	answerable := 0
	for _, loc := range locs {
		if n.isSynthetic(loc) {
			continue
		}
		answerable++
		if _, ok := done[loc]; !ok {
			return false
		}
	}
	return answerable > 0
}

// displayName labels a group instance. Repeating groups with a navigation
// name are labelled from answers given for that instance, e.g. a person's
// first and last name. Everything else uses the group title.
func (n *Navigator) displayName(g *schema.Group, instance int) string {
	if !g.IsRepeating() || len(g.NavigationName) == 0 {
		return g.Title
	}

	var parts []string
	for _, answerID := range g.NavigationName {
		ref, ok := n.survey.AnswerRef(answerID)
		if !ok {
			continue
		}
		// Answers collected inside the group vary by group instance. Answers
		// collected elsewhere, such as a household list, vary by answer
		// instance.
		groupInst, answerInst := 0, instance
		if ref.GroupID == g.ID {
			groupInst, answerInst = instance, 0
		}
		v, ok := n.snap.Answers.Get(ref.GroupID, ref.BlockID, ref.AnswerID, groupInst, answerInst)
		if !ok {
			continue
		}
		parts = append(parts, answers.Strings(v)...)
	}
	return strings.Join(parts, " ")
}

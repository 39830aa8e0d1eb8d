// Package router layers survey-level policy on top of a navigator: which
// sections are reachable, whether the hub can be shown, whether the survey is
// complete and where a returning respondent should resume.
package router

import (
	"context"
	"errors"
	"slices"

	"github.com/specialistvlad/surveynav/internal/location"
	"github.com/specialistvlad/surveynav/internal/navigator"
	"github.com/specialistvlad/surveynav/internal/progress"
	"github.com/specialistvlad/surveynav/internal/schema"
)

// ErrEmptyPath is returned when a lookup needs at least one location.
var ErrEmptyPath = errors.New("path is empty")

// Router is built per request alongside its Navigator.
type Router struct {
	nav      *navigator.Navigator
	survey   *schema.Survey
	progress progress.Tracker
}

// New creates a Router reading progress from the navigator's snapshot.
func New(nav *navigator.Navigator) *Router {
	return &Router{
		nav:      nav,
		survey:   nav.Survey(),
		progress: nav.Snapshot().Progress,
	}
}

// Navigator returns the navigator the router was built on.
func (r *Router) Navigator() *navigator.Navigator {
	return r.nav
}

// EnabledSectionIDs returns, in schema order, the sections that have at
// least one location on the current path.
func (r *Router) EnabledSectionIDs(ctx context.Context) ([]string, error) {
	path, err := r.nav.LocationPath(ctx)
	if err != nil {
		return nil, err
	}
	enabled := r.sectionInstances(path)

	var ids []string
	for _, id := range r.survey.SectionIDs() {
		if _, ok := enabled[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// CanAccessHub reports whether the hub is a valid destination. The hub must
// be enabled. Required sections that are on the path must all be completed;
// required sections the respondent skipped are ignored. When no required
// section is on the path, any completed screen is enough.
func (r *Router) CanAccessHub(ctx context.Context) (bool, error) {
	if !r.survey.IsHubEnabled() {
		return false, nil
	}
	if len(r.survey.Hub.RequiredSections) == 0 {
		return r.progress.CompletedCount() > 0, nil
	}

	path, err := r.nav.LocationPath(ctx)
	if err != nil {
		return false, err
	}
	instances := r.sectionInstances(path)
	enabled := 0
	for _, id := range r.survey.Hub.RequiredSections {
		sectionInstances, ok := instances[id]
		if !ok {
			continue
		}
		enabled++
		if !r.sectionCompleted(path, id, sectionInstances) {
			return false, nil
		}
	}
	if enabled == 0 {
		return r.progress.CompletedCount() > 0, nil
	}
	return true, nil
}

// IsSurveyComplete reports whether every instance of every enabled section
// is completed.
func (r *Router) IsSurveyComplete(ctx context.Context) (bool, error) {
	path, err := r.nav.LocationPath(ctx)
	if err != nil {
		return false, err
	}
	for id, instances := range r.sectionInstances(path) {
		if !r.sectionCompleted(path, id, instances) {
			return false, nil
		}
	}
	return true, nil
}

// SectionStatuses returns the status of every enabled section instance, in
// schema order.
func (r *Router) SectionStatuses(ctx context.Context) ([]SectionStatus, error) {
	path, err := r.nav.LocationPath(ctx)
	if err != nil {
		return nil, err
	}
	instances := r.sectionInstances(path)

	var out []SectionStatus
	for _, id := range r.survey.SectionIDs() {
		for _, inst := range instances[id] {
			out = append(out, SectionStatus{
				SectionID: id,
				Instance:  inst,
				Status:    r.sectionStatus(path, id, inst),
			})
		}
	}
	return out, nil
}

// SectionStatus is one row of SectionStatuses.
type SectionStatus struct {
	SectionID string
	Instance  int
	Status    progress.CompletionStatus
}

// FirstIncompleteLocationInSurvey returns the first location on the path
// that has not been completed, or the last location when all have.
func (r *Router) FirstIncompleteLocationInSurvey(ctx context.Context) (location.Location, error) {
	path, err := r.nav.LocationPath(ctx)
	if err != nil {
		return location.Location{}, err
	}
	if len(path) == 0 {
		return location.Location{}, ErrEmptyPath
	}
	for _, loc := range path {
		if !r.progress.IsCompleted(loc) {
			return loc, nil
		}
	}
	return path[len(path)-1], nil
}

// FirstIncompleteLocationForSection returns the first location of
// routingPath that has not been completed, or the section's return location
// when all have.
func (r *Router) FirstIncompleteLocationForSection(ctx context.Context, routingPath []location.Location) (location.Location, error) {
	for _, loc := range routingPath {
		if !r.progress.IsCompleted(loc) {
			return loc, nil
		}
	}
	return r.SectionReturnLocationWhenSectionComplete(ctx, routingPath)
}

// SectionReturnLocationWhenSectionComplete returns the section summary when
// the section of routingPath has one on the current path, and the last
// location of routingPath otherwise.
func (r *Router) SectionReturnLocationWhenSectionComplete(ctx context.Context, routingPath []location.Location) (location.Location, error) {
	if len(routingPath) == 0 {
		return location.Location{}, ErrEmptyPath
	}
	last := routingPath[len(routingPath)-1]

	section, ok := r.survey.SectionForGroup(routingPath[0].GroupID)
	if !ok {
		return last, nil
	}
	g, b, ok := section.SummaryBlock()
	if !ok {
		return last, nil
	}

	path, err := r.nav.LocationPath(ctx)
	if err != nil {
		return location.Location{}, err
	}
	summary := location.New(g.ID, 0, b.ID)
	if location.Index(path, summary) < 0 {
		return last, nil
	}
	return summary, nil
}

// FullRoutingPath returns the routing path across every section.
func (r *Router) FullRoutingPath(ctx context.Context) ([]location.Location, error) {
	return r.nav.RoutingPath(ctx, "", -1)
}

// sectionInstances maps each section on the path to its sorted group instances.
func (r *Router) sectionInstances(path []location.Location) map[string][]int {
	out := make(map[string][]int)
	for _, loc := range path {
		section, ok := r.survey.SectionForGroup(loc.GroupID)
		if !ok {
			continue
		}
		if !slices.Contains(out[section.ID], loc.GroupInstance) {
			out[section.ID] = append(out[section.ID], loc.GroupInstance)
		}
	}
	for id := range out {
		slices.Sort(out[id])
	}
	return out
}

// sectionCompleted reports whether every given instance of a section is completed.
func (r *Router) sectionCompleted(path []location.Location, sectionID string, instances []int) bool {
	for _, inst := range instances {
		if r.sectionStatus(path, sectionID, inst) != progress.Completed {
			return false
		}
	}
	return true
}

// sectionStatus returns the recorded status of a section instance. Without a
// record, the status is derived from the completed answerable screens the
// instance has on path.
func (r *Router) sectionStatus(path []location.Location, sectionID string, instance int) progress.CompletionStatus {
	if status := r.progress.SectionStatus(sectionID, instance); status != progress.NotStarted {
		return status
	}
	section, ok := r.survey.Section(sectionID)
	if !ok {
		return progress.NotStarted
	}

	var screens []location.Location
	for _, loc := range path {
		if loc.GroupInstance != instance || !section.HasGroup(loc.GroupID) {
			continue
		}
		if b, ok := r.survey.Block(loc.GroupID, loc.BlockID); ok && b.Type.IsSynthetic() {
			continue
		}
		screens = append(screens, loc)
	}
	return progress.StatusOf(screens, r.progress)
}

package pathbuilder

import (
	"context"
	"fmt"
	"iter"

	"github.com/specialistvlad/surveynav/internal/ctxlog"
	"github.com/specialistvlad/surveynav/internal/location"
	"github.com/specialistvlad/surveynav/internal/rules"
	"github.com/specialistvlad/surveynav/internal/schema"
)

// Walk lazily yields the location path. The sequence stops after the first
// error. Each range over the sequence recomputes the path.
func Walk(ctx context.Context, survey *schema.Survey, eval *rules.Evaluator) iter.Seq2[location.Location, error] {
	return func(yield func(location.Location, error) bool) {
		w := &walker{
			ctx:    ctx,
			survey: survey,
			eval:   eval,
			yield:  yield,
		}
		w.run()
	}
}

// Build collects the full location path.
func Build(ctx context.Context, survey *schema.Survey, eval *rules.Evaluator) ([]location.Location, error) {
	var path []location.Location
	for loc, err := range Walk(ctx, survey, eval) {
		if err != nil {
			return nil, err
		}
		path = append(path, loc)
	}
	return path, nil
}

// outcome is how a group instance or group finished.
type outcome int

const (
	// next continues with the following instance or group.
	next outcome = iota
	// jump continues at another group further down the schema.
	jump
	// stop ends the walk, either after a re-entrant jump or because the
	// consumer stopped iterating.
	stop
)

type walker struct {
	ctx    context.Context
	survey *schema.Survey
	eval   *rules.Evaluator
	yield  func(location.Location, error) bool

	// emitted counts the locations yielded so far.
	emitted int
}

func (w *walker) emit(groupID string, instance int, blockID string) bool {
	w.emitted++
	return w.yield(location.New(groupID, instance, blockID), nil)
}

func (w *walker) fail(err error) {
	w.yield(location.Location{}, err)
}

func (w *walker) run() {
	logger := ctxlog.FromContext(w.ctx)
	groups := w.survey.Groups()

	for gi := 0; gi < len(groups); {
		if err := w.ctx.Err(); err != nil {
			w.fail(fmt.Errorf("path walk interrupted: %w", err))
			return
		}

		g := groups[gi]
		if w.skipped(g.SkipConditions, rules.Scope{GroupID: g.ID}) {
			logger.Debug("Group skipped.", "group_id", g.ID)
			gi++
			continue
		}

		result, target, err := w.group(g, gi)
		if err != nil {
			w.fail(err)
			return
		}
		switch result {
		case stop:
			return
		case jump:
			logger.Debug("Routing to group.", "from", g.ID, "to", groups[target].ID)
			gi = target
		default:
			gi++
		}
	}
}

// group emits every location of one group and decides where the walk goes next.
func (w *walker) group(g *schema.Group, gi int) (outcome, int, error) {
	logger := ctxlog.FromContext(w.ctx)

	count := 1
	if g.IsRepeating() {
		n, err := w.eval.Repeat(g.Repeat)
		if err != nil {
			return stop, 0, fmt.Errorf("group %q: %w", g.ID, err)
		}
		count = n
		logger.Debug("Group repeats.", "group_id", g.ID, "instances", count)
	}
	if count == 0 {
		return next, 0, nil
	}

	before := w.emitted
	first, trailing := bounds(g)
	if first == 1 && !w.emit(g.ID, 0, g.Blocks[0].ID) {
		return stop, 0, nil
	}

	// The trailing blocks are emitted from the earliest one any instance
	// reached, so a goto to a later trailing block skips the ones before it.
	trailFrom := len(g.Blocks)
	for inst := 0; inst < count; inst++ {
		result, target := w.instance(g, inst, first, trailing)
		switch result {
		case stop:
			return stop, 0, nil
		case jump:
			return w.groupJump(g, gi, target)
		}
		trailFrom = min(trailFrom, target)
	}

	for _, b := range g.Blocks[trailFrom:] {
		if !w.emit(g.ID, 0, b.ID) {
			return stop, 0, nil
		}
	}

	// A group that showed nothing is treated as skipped, so its routing
	// rules do not apply.
	if w.emitted == before {
		logger.Debug("Group has no visible blocks, treated as skipped.", "group_id", g.ID)
		return next, 0, nil
	}

	rule, ok := w.eval.FirstMatch(g.RoutingRules, rules.Scope{GroupID: g.ID})
	if !ok {
		return next, 0, nil
	}
	return w.groupJump(g, gi, w.survey.GroupIndex(rule.Goto.Group))
}

// instance walks the ordinary blocks of one group instance. On next, the
// returned index is where the trailing blocks start. On jump, it is the
// index of the target group.
func (w *walker) instance(g *schema.Group, inst, first, trailing int) (outcome, int) {
	scope := rules.Scope{GroupID: g.ID, GroupInstance: inst}

	for bi := first; bi < trailing; {
		b := g.Blocks[bi]
		if w.skipped(b.SkipConditions, scope) {
			bi++
			continue
		}
		if !w.emit(g.ID, inst, b.ID) {
			return stop, 0
		}

		rule, ok := w.eval.FirstMatch(b.RoutingRules, scope)
		if !ok {
			bi++
			continue
		}
		if rule.Goto.Group != "" {
			return jump, w.survey.GroupIndex(rule.Goto.Group)
		}

		target := g.BlockIndex(rule.Goto.Block)
		switch {
		case g.Blocks[target].Type.IsTrailing():
			return next, target
		case target <= bi:
			if dest := g.Blocks[target]; !w.skipped(dest.SkipConditions, scope) {
				w.emit(g.ID, inst, dest.ID)
			}
			return stop, 0
		default:
			bi = target
		}
	}
	return next, trailing
}

// groupJump handles a goto group. Jumping back to the current or an earlier
// group re-enters it: its first visible location is emitted once and the
// walk ends. A target that would show nothing ends the walk silently.
func (w *walker) groupJump(g *schema.Group, gi, target int) (outcome, int, error) {
	if target < 0 {
		return stop, 0, fmt.Errorf("group %q routes to a group missing from the schema", g.ID)
	}
	if target > gi {
		return jump, target, nil
	}

	logger := ctxlog.FromContext(w.ctx)
	dest := w.survey.Groups()[target]
	blockID, ok, err := w.entryBlock(dest)
	if err != nil {
		return stop, 0, err
	}
	if !ok {
		logger.Debug("Re-entry target shows nothing, walk ends.", "from", g.ID, "to", dest.ID)
		return stop, 0, nil
	}

	logger.Debug("Re-entering group.", "from", g.ID, "to", dest.ID)
	w.emit(dest.ID, 0, blockID)
	return stop, 0, nil
}

// entryBlock returns the first block instance 0 of g would show. It reports
// false when the group is skipped, has no instances or skips every block.
func (w *walker) entryBlock(g *schema.Group) (string, bool, error) {
	scope := rules.Scope{GroupID: g.ID}
	if w.skipped(g.SkipConditions, scope) {
		return "", false, nil
	}
	if g.IsRepeating() {
		n, err := w.eval.Repeat(g.Repeat)
		if err != nil {
			return "", false, fmt.Errorf("group %q: %w", g.ID, err)
		}
		if n == 0 {
			return "", false, nil
		}
	}
	for _, b := range g.Blocks {
		if b.Type.IsSynthetic() || !w.skipped(b.SkipConditions, scope) {
			return b.ID, true, nil
		}
	}
	return "", false, nil
}

// skipped reports whether a non-empty set of skip conditions all hold.
func (w *walker) skipped(conds []schema.Condition, scope rules.Scope) bool {
	return len(conds) > 0 && w.eval.All(conds, scope)
}

// bounds returns the index of the first ordinary block and of the first
// trailing block of a group.
func bounds(g *schema.Group) (first, trailing int) {
	if g.HasIntroduction() {
		first = 1
	}
	trailing = len(g.Blocks)
	for i := first; i < len(g.Blocks); i++ {
		if g.Blocks[i].Type.IsTrailing() {
			trailing = i
			break
		}
	}
	return first, trailing
}

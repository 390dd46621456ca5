// Package archetype judges whether a committed pick is in character for the
// participant's declared drafting strategy. Strategies are a closed registry
// of deterministic rules; unknown archetypes are never flagged.
package archetype

import (
	"sort"

	"github.com/draftroom/draftroom/internal/board"
	"github.com/draftroom/draftroom/internal/engine"
)

type Tag string

const (
	TagStrategyBreak   Tag = "strategy-break"
	TagValueDeviation  Tag = "value-deviation"
	TagTrendFollow     Tag = "trend-follow"
	TagTrendFade       Tag = "trend-fade"
	TagPositionalPivot Tag = "positional-pivot"
)

type Severity string

const (
	SeverityMinor Severity = "minor"
	SeverityMajor Severity = "major"
)

// Deviation is an append-only audit record keyed by pick number.
type Deviation struct {
	PickNumber  int      `json:"pick_number"`
	Participant int      `json:"participant"`
	Archetype   string   `json:"archetype"`
	Trigger     string   `json:"trigger"`
	Tag         Tag      `json:"tag"`
	Severity    Severity `json:"severity"`
}

// Context is everything a rule sees: the committed pick, the drafted player,
// the board snapshot computed before the pick, and the pre-pick pool already
// restricted to players the roster could legally accept. Rules never see
// alternatives the participant could not have drafted.
type Context struct {
	Pick     engine.PickRecord
	Player   engine.Player
	Board    board.Snapshot
	Eligible []engine.Player
}

// A Rule returns a deviation with Trigger, Tag and Severity set, or nil when
// the pick is in character. Rules short-circuit on their first finding.
type Rule func(Context) *Deviation

var registry = map[string]Rule{
	"value-maximizer": valueMaximizer,
	"zero-rb":         zeroRB,
	"robust-rb":       robustRB,
	"tier-surfer":     tierSurfer,
	"run-chaser":      runChaser,
	"contrarian":      contrarian,
	"youth-movement":  youthMovement,
}

// Registered lists the archetype names with evaluation rules, for the
// operator surface. The human sentinel is intentionally absent.
func Registered() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluate runs the rule registered for the archetype against the pick.
// Board signals are first restricted to eligible players and positions, and a
// forced pick (every eligible player sharing one position) suppresses every
// rule: there was no choice to deviate with.
func Evaluate(name string, ctx Context) *Deviation {
	rule, ok := registry[name]
	if !ok {
		return nil
	}
	if forced(ctx.Eligible) {
		return nil
	}

	ctx.Board = restrictBoard(ctx.Board, ctx.Eligible)

	d := rule(ctx)
	if d == nil {
		return nil
	}
	d.PickNumber = ctx.Pick.PickNumber
	d.Participant = ctx.Pick.Participant
	d.Archetype = name
	return d
}

func forced(eligible []engine.Player) bool {
	if len(eligible) <= 1 {
		return true
	}
	first := eligible[0].Position
	for _, p := range eligible[1:] {
		if p.Position != first {
			return false
		}
	}
	return true
}

// restrictBoard drops signals about players and positions the roster could
// not accept, so an ineligible alternative never triggers a false deviation.
func restrictBoard(snap board.Snapshot, eligible []engine.Player) board.Snapshot {
	ids := map[string]bool{}
	positions := map[engine.Position]bool{}
	for _, p := range eligible {
		ids[p.ID] = true
		positions[p.Position] = true
	}

	out := board.Snapshot{PickNumber: snap.PickNumber}
	for _, r := range snap.Runs {
		if positions[r.Position] {
			out.Runs = append(out.Runs, r)
		}
	}
	for _, d := range snap.Drops {
		if ids[d.Player.ID] {
			out.Drops = append(out.Drops, d)
		}
	}
	for _, s := range snap.Scarcity {
		if positions[s.Position] {
			out.Scarcity = append(out.Scarcity, s)
		}
	}
	return out
}

// reach is how many ranks ahead of the pick position the player was taken;
// negative means the player had fallen past their rank.
func reach(ctx Context) int {
	return ctx.Player.Rank - ctx.Pick.PickNumber
}

func bestEligibleRank(ctx Context) int {
	best := ctx.Eligible[0].Rank
	for _, p := range ctx.Eligible[1:] {
		if p.Rank < best {
			best = p.Rank
		}
	}
	return best
}

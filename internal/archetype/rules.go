package archetype

import (
	"fmt"

	"github.com/draftroom/draftroom/internal/engine"
)

// Threshold constants are per-archetype tuning, not universal policy.

const (
	maximizerMinorReach = 8
	maximizerMajorReach = 14
	maximizerLockedDrop = 12

	contrarianMajorReach = 10

	youthOldAge    = 30
	youthYoungAge  = 25
	youthRankSlack = 6
)

// valueMaximizer drafts strictly by rank. Reaching past the board is a value
// deviation; passing a heavily fallen player it could take is a major one.
func valueMaximizer(ctx Context) *Deviation {
	if r := reach(ctx); r >= maximizerMajorReach {
		return &Deviation{
			Trigger:  fmt.Sprintf("reached %d ranks ahead of pick position for %s", r, ctx.Player.Name),
			Tag:      TagValueDeviation,
			Severity: SeverityMajor,
		}
	} else if r >= maximizerMinorReach {
		return &Deviation{
			Trigger:  fmt.Sprintf("reached %d ranks ahead of pick position for %s", r, ctx.Player.Name),
			Tag:      TagValueDeviation,
			Severity: SeverityMinor,
		}
	}

	for _, d := range ctx.Board.Drops {
		if d.Drop >= maximizerLockedDrop && ctx.Player.Rank > d.Player.Rank {
			return &Deviation{
				Trigger:  fmt.Sprintf("passed %s, fallen %d picks past rank %d", d.Player.Name, d.Drop, d.Player.Rank),
				Tag:      TagValueDeviation,
				Severity: SeverityMajor,
			}
		}
	}
	return nil
}

// zeroRB avoids running backs until the mid rounds.
func zeroRB(ctx Context) *Deviation {
	if ctx.Player.Position != engine.PositionRB {
		return nil
	}
	switch {
	case ctx.Pick.Round <= 2:
		return &Deviation{
			Trigger:  fmt.Sprintf("drafted RB %s in round %d", ctx.Player.Name, ctx.Pick.Round),
			Tag:      TagStrategyBreak,
			Severity: SeverityMajor,
		}
	case ctx.Pick.Round == 3:
		return &Deviation{
			Trigger:  fmt.Sprintf("drafted RB %s in round %d", ctx.Player.Name, ctx.Pick.Round),
			Tag:      TagStrategyBreak,
			Severity: SeverityMinor,
		}
	}
	return nil
}

// robustRB anchors the early rounds with top-tier running backs.
func robustRB(ctx Context) *Deviation {
	if ctx.Pick.Round > 2 || ctx.Player.Position == engine.PositionRB {
		return nil
	}
	var passed *engine.Player
	for i, p := range ctx.Eligible {
		if p.Position == engine.PositionRB && p.Tier() <= 2 {
			if passed == nil || p.Rank < passed.Rank {
				passed = &ctx.Eligible[i]
			}
		}
	}
	if passed == nil {
		return nil
	}
	severity := SeverityMinor
	if passed.Rank == bestEligibleRank(ctx) {
		severity = SeverityMajor
	}
	return &Deviation{
		Trigger:  fmt.Sprintf("passed tier-%d RB %s in round %d for %s %s", passed.Tier(), passed.Name, ctx.Pick.Round, ctx.Player.Position, ctx.Player.Name),
		Tag:      TagStrategyBreak,
		Severity: severity,
	}
}

// tierSurfer chases positional scarcity: when a position it can still fill is
// drying up, it takes from that position first.
func tierSurfer(ctx Context) *Deviation {
	if len(ctx.Board.Scarcity) == 0 {
		return nil
	}
	scarcest := ctx.Board.Scarcity[0]
	if ctx.Player.Position == scarcest.Position {
		return nil
	}
	severity := SeverityMinor
	if scarcest.Remaining <= 1 {
		severity = SeverityMajor
	}
	return &Deviation{
		Trigger:  fmt.Sprintf("ignored scarce %s (%d left) for %s %s", scarcest.Position, scarcest.Remaining, ctx.Player.Position, ctx.Player.Name),
		Tag:      TagPositionalPivot,
		Severity: severity,
	}
}

// runChaser rides active position runs and should not pick against one it
// could join.
func runChaser(ctx Context) *Deviation {
	if len(ctx.Board.Runs) == 0 {
		return nil
	}
	for _, r := range ctx.Board.Runs {
		if r.Position == ctx.Player.Position {
			return nil
		}
	}
	return &Deviation{
		Trigger:  fmt.Sprintf("faded the %s run for %s %s", ctx.Board.Runs[0].Position, ctx.Player.Position, ctx.Player.Name),
		Tag:      TagTrendFade,
		Severity: SeverityMinor,
	}
}

// contrarian fades runs; joining one is out of character, badly so when it
// also pays a steep rank premium to do it.
func contrarian(ctx Context) *Deviation {
	for _, r := range ctx.Board.Runs {
		if r.Position != ctx.Player.Position {
			continue
		}
		severity := SeverityMinor
		if reach(ctx) >= contrarianMajorReach {
			severity = SeverityMajor
		}
		return &Deviation{
			Trigger:  fmt.Sprintf("joined the %s run (x%d) with %s", r.Position, r.Count, ctx.Player.Name),
			Tag:      TagTrendFollow,
			Severity: severity,
		}
	}
	return nil
}

// youthMovement prefers young players when a comparable young alternative at
// the same position was on the board.
func youthMovement(ctx Context) *Deviation {
	if ctx.Player.Age < youthOldAge {
		return nil
	}
	for _, p := range ctx.Eligible {
		if p.ID == ctx.Player.ID || p.Position != ctx.Player.Position {
			continue
		}
		if p.Age <= youthYoungAge && p.Rank <= ctx.Player.Rank+youthRankSlack {
			return &Deviation{
				Trigger:  fmt.Sprintf("drafted %s (age %d) over %s (age %d, rank %d)", ctx.Player.Name, ctx.Player.Age, p.Name, p.Age, p.Rank),
				Tag:      TagStrategyBreak,
				Severity: SeverityMinor,
			}
		}
	}
	return nil
}

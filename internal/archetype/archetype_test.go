package archetype

import (
	"testing"

	"github.com/draftroom/draftroom/internal/board"
	"github.com/draftroom/draftroom/internal/engine"
)

func player(id string, pos engine.Position, rank int) engine.Player {
	return engine.Player{ID: id, Name: id, Position: pos, Rank: rank, Age: 26}
}

func ctxFor(picked engine.Player, pickNumber, round int, eligible []engine.Player, snap board.Snapshot) Context {
	return Context{
		Pick: engine.PickRecord{
			PickNumber:  pickNumber,
			Round:       round,
			Participant: 0,
			PlayerID:    picked.ID,
			Position:    picked.Position,
		},
		Player:   picked,
		Board:    snap,
		Eligible: eligible,
	}
}

func TestUnregisteredArchetypeNeverFlags(t *testing.T) {
	picked := player("p1", engine.PositionRB, 50)
	ctx := ctxFor(picked, 1, 1, []engine.Player{picked, player("p2", engine.PositionWR, 1)}, board.Snapshot{})
	for _, name := range []string{"", engine.ArchetypeHuman, "unheard-of"} {
		if d := Evaluate(name, ctx); d != nil {
			t.Fatalf("archetype %q flagged: %+v", name, d)
		}
	}
}

func TestForcedPickSuppressesEveryArchetype(t *testing.T) {
	// Everything left that the roster can accept is a TE; the pick cannot
	// deviate no matter what the archetype prefers.
	picked := player("t1", engine.PositionTE, 90)
	eligible := []engine.Player{picked, player("t2", engine.PositionTE, 4), player("t3", engine.PositionTE, 5)}
	snap := board.Snapshot{
		PickNumber: 40,
		Runs:       []board.RunSignal{{Position: engine.PositionTE, Count: 4, Window: 8}},
		Drops:      []board.DropSignal{{Player: eligible[1], Drop: 36}},
		Scarcity:   []board.ScarcitySignal{{Position: engine.PositionTE, Remaining: 3}},
	}
	ctx := ctxFor(picked, 40, 4, eligible, snap)

	for _, name := range Registered() {
		if d := Evaluate(name, ctx); d != nil {
			t.Fatalf("forced pick flagged by %s: %+v", name, d)
		}
	}
}

func TestValueMaximizerReachEscalation(t *testing.T) {
	eligible := []engine.Player{
		player("best", engine.PositionWR, 10),
		player("other", engine.PositionRB, 12),
	}

	cases := []struct {
		name         string
		pickedRank   int
		pickNumber   int
		wantSeverity Severity
		wantNil      bool
	}{
		{name: "on value", pickedRank: 12, pickNumber: 10, wantNil: true},
		{name: "mild overshoot is minor", pickedRank: 19, pickNumber: 10, wantSeverity: SeverityMinor},
		{name: "large overshoot is major", pickedRank: 24, pickNumber: 10, wantSeverity: SeverityMajor},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			picked := player("pick", engine.PositionQB, tc.pickedRank)
			ctx := ctxFor(picked, tc.pickNumber, 1, append(eligible, picked), board.Snapshot{})
			d := Evaluate("value-maximizer", ctx)
			if tc.wantNil {
				if d != nil {
					t.Fatalf("unexpected deviation: %+v", d)
				}
				return
			}
			if d == nil {
				t.Fatalf("expected a deviation")
			}
			if d.Tag != TagValueDeviation || d.Severity != tc.wantSeverity {
				t.Fatalf("got tag=%s severity=%s, want %s/%s", d.Tag, d.Severity, TagValueDeviation, tc.wantSeverity)
			}
		})
	}
}

func TestValueMaximizerPassedFaller(t *testing.T) {
	faller := player("faller", engine.PositionRB, 5)
	picked := player("pick", engine.PositionWR, 21)
	eligible := []engine.Player{faller, picked}
	snap := board.Snapshot{
		PickNumber: 20,
		Drops:      []board.DropSignal{{Player: faller, Drop: 15}},
	}

	d := Evaluate("value-maximizer", ctxFor(picked, 20, 2, eligible, snap))
	if d == nil || d.Severity != SeverityMajor || d.Tag != TagValueDeviation {
		t.Fatalf("got %+v, want major value-deviation for passing the faller", d)
	}
}

func TestValueMaximizerIgnoresIneligibleFaller(t *testing.T) {
	// The fallen RB is not eligible (roster closed to RB), so passing them
	// must not flag.
	faller := player("faller", engine.PositionRB, 5)
	picked := player("pick", engine.PositionWR, 21)
	eligible := []engine.Player{picked, player("qb2", engine.PositionQB, 25)}
	snap := board.Snapshot{
		PickNumber: 20,
		Drops:      []board.DropSignal{{Player: faller, Drop: 15}},
	}

	if d := Evaluate("value-maximizer", ctxFor(picked, 20, 2, eligible, snap)); d != nil {
		t.Fatalf("ineligible alternative triggered a deviation: %+v", d)
	}
}

func TestZeroRB(t *testing.T) {
	rb := player("rb", engine.PositionRB, 3)
	wr := player("wr", engine.PositionWR, 4)
	eligible := []engine.Player{rb, wr}

	cases := []struct {
		round        int
		wantNil      bool
		wantSeverity Severity
	}{
		{round: 1, wantSeverity: SeverityMajor},
		{round: 2, wantSeverity: SeverityMajor},
		{round: 3, wantSeverity: SeverityMinor},
		{round: 4, wantNil: true},
	}
	for _, tc := range cases {
		d := Evaluate("zero-rb", ctxFor(rb, 1, tc.round, eligible, board.Snapshot{}))
		if tc.wantNil {
			if d != nil {
				t.Fatalf("round %d: unexpected %+v", tc.round, d)
			}
			continue
		}
		if d == nil || d.Tag != TagStrategyBreak || d.Severity != tc.wantSeverity {
			t.Fatalf("round %d: got %+v, want strategy-break %s", tc.round, d, tc.wantSeverity)
		}
	}

	// Non-RB picks never flag.
	if d := Evaluate("zero-rb", ctxFor(wr, 1, 1, eligible, board.Snapshot{})); d != nil {
		t.Fatalf("WR pick flagged: %+v", d)
	}
}

func TestRobustRB(t *testing.T) {
	topRB := player("rb1", engine.PositionRB, 2) // tier 1, best on board
	wr := player("wr1", engine.PositionWR, 6)
	lateRB := player("rb2", engine.PositionRB, 40) // tier 4, not anchor material

	d := Evaluate("robust-rb", ctxFor(wr, 3, 1, []engine.Player{topRB, wr}, board.Snapshot{}))
	if d == nil || d.Severity != SeverityMajor {
		t.Fatalf("passing the top-ranked tier-1 RB should be major, got %+v", d)
	}

	d = Evaluate("robust-rb", ctxFor(wr, 3, 1, []engine.Player{player("wr0", engine.PositionWR, 1), topRB, wr}, board.Snapshot{}))
	if d == nil || d.Severity != SeverityMinor {
		t.Fatalf("passing a tier-1 RB that is not best overall should be minor, got %+v", d)
	}

	if d := Evaluate("robust-rb", ctxFor(wr, 3, 1, []engine.Player{lateRB, wr}, board.Snapshot{})); d != nil {
		t.Fatalf("no premium RB on the board, got %+v", d)
	}
	if d := Evaluate("robust-rb", ctxFor(wr, 30, 3, []engine.Player{topRB, wr}, board.Snapshot{})); d != nil {
		t.Fatalf("late rounds are out of scope, got %+v", d)
	}
}

func TestTierSurfer(t *testing.T) {
	wr := player("wr", engine.PositionWR, 30)
	te := player("te", engine.PositionTE, 60)
	eligible := []engine.Player{wr, te}

	snap := board.Snapshot{Scarcity: []board.ScarcitySignal{{Position: engine.PositionTE, Remaining: 1}}}
	d := Evaluate("tier-surfer", ctxFor(wr, 40, 4, eligible, snap))
	if d == nil || d.Tag != TagPositionalPivot || d.Severity != SeverityMajor {
		t.Fatalf("passing the last TE should be a major positional-pivot, got %+v", d)
	}

	snap = board.Snapshot{Scarcity: []board.ScarcitySignal{{Position: engine.PositionTE, Remaining: 4}}}
	d = Evaluate("tier-surfer", ctxFor(wr, 40, 4, eligible, snap))
	if d == nil || d.Severity != SeverityMinor {
		t.Fatalf("passing a merely scarce TE should be minor, got %+v", d)
	}

	if d := Evaluate("tier-surfer", ctxFor(te, 40, 4, eligible, snap)); d != nil {
		t.Fatalf("taking the scarce position flagged: %+v", d)
	}
}

func TestRunChaserAndContrarian(t *testing.T) {
	rb := player("rb", engine.PositionRB, 38)
	wr := player("wr", engine.PositionWR, 39)
	eligible := []engine.Player{rb, wr}
	run := board.Snapshot{Runs: []board.RunSignal{{Position: engine.PositionRB, Count: 3, Window: 8}}}

	if d := Evaluate("run-chaser", ctxFor(wr, 40, 4, eligible, run)); d == nil || d.Tag != TagTrendFade {
		t.Fatalf("fading the run should flag trend-fade, got %+v", d)
	}
	if d := Evaluate("run-chaser", ctxFor(rb, 40, 4, eligible, run)); d != nil {
		t.Fatalf("joining the run flagged the run-chaser: %+v", d)
	}

	if d := Evaluate("contrarian", ctxFor(rb, 40, 4, eligible, run)); d == nil || d.Tag != TagTrendFollow || d.Severity != SeverityMinor {
		t.Fatalf("joining the run should flag trend-follow minor, got %+v", d)
	}
	reachingRB := player("rb2", engine.PositionRB, 55)
	if d := Evaluate("contrarian", ctxFor(reachingRB, 40, 4, append(eligible, reachingRB), run)); d == nil || d.Severity != SeverityMajor {
		t.Fatalf("joining the run on a steep reach should be major, got %+v", d)
	}
	if d := Evaluate("contrarian", ctxFor(wr, 40, 4, eligible, run)); d != nil {
		t.Fatalf("fading the run flagged the contrarian: %+v", d)
	}
}

func TestYouthMovement(t *testing.T) {
	old := engine.Player{ID: "old", Name: "old", Position: engine.PositionWR, Rank: 20, Age: 31}
	young := engine.Player{ID: "young", Name: "young", Position: engine.PositionWR, Rank: 24, Age: 23}
	rb := player("rb", engine.PositionRB, 22)

	d := Evaluate("youth-movement", ctxFor(old, 20, 2, []engine.Player{old, young, rb}, board.Snapshot{}))
	if d == nil || d.Tag != TagStrategyBreak {
		t.Fatalf("drafting old over comparable young should flag, got %+v", d)
	}

	// Young alternative too far down the board: no deviation.
	farYoung := engine.Player{ID: "far", Name: "far", Position: engine.PositionWR, Rank: 40, Age: 23}
	if d := Evaluate("youth-movement", ctxFor(old, 20, 2, []engine.Player{old, farYoung, rb}, board.Snapshot{})); d != nil {
		t.Fatalf("distant young alternative flagged: %+v", d)
	}
}

func TestEvaluateStampsIdentity(t *testing.T) {
	rb := player("rb", engine.PositionRB, 3)
	eligible := []engine.Player{rb, player("wr", engine.PositionWR, 4)}
	ctx := ctxFor(rb, 7, 1, eligible, board.Snapshot{})
	ctx.Pick.Participant = 6

	d := Evaluate("zero-rb", ctx)
	if d == nil {
		t.Fatalf("expected a deviation")
	}
	if d.PickNumber != 7 || d.Participant != 6 || d.Archetype != "zero-rb" {
		t.Fatalf("identity fields not stamped: %+v", d)
	}
}

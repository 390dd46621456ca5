package advisor

import (
	"testing"

	"github.com/draftroom/draftroom/internal/engine"
)

func TestFallbackTakesBestEligible(t *testing.T) {
	parts := []engine.Participant{
		{Index: 0, Name: "a", Archetype: "value-maximizer"},
		{Index: 1, Name: "b", Archetype: engine.ArchetypeHuman},
	}
	pool := []engine.Player{
		{ID: "rb1", Name: "RB One", Position: engine.PositionRB, Rank: 1},
		{ID: "wr1", Name: "WR One", Position: engine.PositionWR, Rank: 2},
	}
	state := engine.NewState("d1", parts, pool, engine.Rules{Participants: 2, Rounds: 5})

	c, ok := Fallback(state, 0)
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if c.PlayerID != "rb1" || c.Position != engine.PositionRB {
		t.Fatalf("candidate = %+v, want rb1", c)
	}
	if c.Confidence != FallbackConfidence {
		t.Fatalf("confidence = %v, want %v", c.Confidence, FallbackConfidence)
	}
	if c.Rationale == "" {
		t.Fatalf("fallback must explain itself")
	}

	// Same inputs, same candidate.
	again, _ := Fallback(state, 0)
	if again != c {
		t.Fatalf("fallback is not deterministic: %+v vs %+v", again, c)
	}
}

func TestFallbackRespectsRoster(t *testing.T) {
	parts := []engine.Participant{{Index: 0, Name: "a", Archetype: "zero-rb"}}
	pool := []engine.Player{
		{ID: "rb1", Position: engine.PositionRB, Rank: 1},
		{ID: "te1", Position: engine.PositionTE, Rank: 9},
	}
	state := engine.NewState("d1", parts, pool, engine.Rules{Participants: 1, Rounds: 5})

	// Close RB: dedicated slot and flex both taken.
	state.Rosters[0].AssignSlot(engine.PositionRB, "x1")
	state.Rosters[0].AssignSlot(engine.PositionRB, "x2")

	c, ok := Fallback(state, 0)
	if !ok || c.PlayerID != "te1" {
		t.Fatalf("candidate = %+v ok=%v, want te1", c, ok)
	}
}

func TestFallbackExhausted(t *testing.T) {
	parts := []engine.Participant{{Index: 0, Name: "a", Archetype: "contrarian"}}
	state := engine.NewState("d1", parts, nil, engine.Rules{Participants: 1, Rounds: 5})

	if _, ok := Fallback(state, 0); ok {
		t.Fatalf("empty pool must not produce a candidate")
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct{ in, want string }{
		{`{"player_id":"a"}`, `{"player_id":"a"}`},
		{"Here you go:\n```json\n{\"player_id\":\"a\"}\n```", `{"player_id":"a"}`},
		{"no json at all", "no json at all"},
	}
	for _, tc := range cases {
		if got := extractJSON(tc.in); got != tc.want {
			t.Fatalf("extractJSON(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

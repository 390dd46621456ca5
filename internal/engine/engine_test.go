package engine

import "testing"

func TestTurnForSnakeOrder(t *testing.T) {
	cases := []struct {
		name            string
		pick, n         int
		wantRound       int
		wantParticipant int
	}{
		{name: "first pick", pick: 1, n: 12, wantRound: 1, wantParticipant: 0},
		{name: "last pick of round 1", pick: 12, n: 12, wantRound: 1, wantParticipant: 11},
		{name: "round 2 reverses", pick: 13, n: 12, wantRound: 2, wantParticipant: 11},
		{name: "round 2 second pick", pick: 14, n: 12, wantRound: 2, wantParticipant: 10},
		{name: "round 3 forward again", pick: 25, n: 12, wantRound: 3, wantParticipant: 0},
		{name: "small league", pick: 4, n: 3, wantRound: 2, wantParticipant: 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			round, participant := TurnFor(tc.pick, tc.n)
			if round != tc.wantRound || participant != tc.wantParticipant {
				t.Fatalf("TurnFor(%d, %d) = (%d, %d), want (%d, %d)",
					tc.pick, tc.n, round, participant, tc.wantRound, tc.wantParticipant)
			}
		})
	}
}

func TestTurnForIsBijective(t *testing.T) {
	const n, rounds = 12, 5
	seen := map[[2]int]int{}
	for pick := 1; pick <= n*rounds; pick++ {
		round, participant := TurnFor(pick, n)
		if round < 1 || round > rounds || participant < 0 || participant >= n {
			t.Fatalf("pick %d out of range: round=%d participant=%d", pick, round, participant)
		}
		key := [2]int{round, participant}
		if prev, dup := seen[key]; dup {
			t.Fatalf("picks %d and %d both map to round=%d participant=%d", prev, pick, round, participant)
		}
		seen[key] = pick
		if got := PickNumberFor(round, participant, n); got != pick {
			t.Fatalf("PickNumberFor(%d, %d, %d) = %d, want %d", round, participant, n, got, pick)
		}
	}
	if len(seen) != n*rounds {
		t.Fatalf("covered %d pairs, want %d", len(seen), n*rounds)
	}
}

func TestTurnForEachRoundVisitsEveryone(t *testing.T) {
	const n = 12
	for round := 1; round <= 5; round++ {
		first := PickNumberFor(round, 0, n)
		last := PickNumberFor(round, n-1, n)
		if round%2 == 1 && first >= last {
			t.Fatalf("odd round %d should visit 0 before %d", round, n-1)
		}
		if round%2 == 0 && first <= last {
			t.Fatalf("even round %d should visit %d before 0", round, n-1)
		}
	}
}

func TestRosterCanAccept(t *testing.T) {
	r := NewRoster()
	for _, p := range Positions {
		if !r.CanAccept(p) {
			t.Fatalf("empty roster must accept %s", p)
		}
	}

	// Dedicated slot taken, flex still open.
	r.AssignSlot(PositionQB, "p1")
	if !r.CanAccept(PositionQB) {
		t.Fatalf("QB must still be acceptable via flex")
	}

	// Flex taken too: position is permanently closed.
	r.AssignSlot(PositionQB, "p2")
	if r.CanAccept(PositionQB) {
		t.Fatalf("QB must be rejected once dedicated and flex are filled")
	}
	if r.CanAccept(PositionRB) != true {
		t.Fatalf("RB dedicated slot is still open")
	}
}

func TestRosterAssignSlot(t *testing.T) {
	r := NewRoster()

	slot, ok := r.AssignSlot(PositionWR, "p1")
	if !ok || slot != "WR" {
		t.Fatalf("got (%q, %v), want dedicated WR slot", slot, ok)
	}
	slot, ok = r.AssignSlot(PositionWR, "p2")
	if !ok || slot != SlotFlex {
		t.Fatalf("got (%q, %v), want flex", slot, ok)
	}
	if _, ok := r.AssignSlot(PositionWR, "p3"); ok {
		t.Fatalf("third WR must not be assignable")
	}
}

func TestFullRosterHasNoEligiblePositions(t *testing.T) {
	r := NewRoster()
	for _, p := range Positions {
		r.AssignSlot(p, "x-"+string(p))
	}
	r.AssignSlot(PositionRB, "x-flex")

	if !r.Full() {
		t.Fatalf("roster with %d assignments should be full", SlotCount())
	}
	if got := r.EligiblePositions(); len(got) != 0 {
		t.Fatalf("full roster eligible positions = %v, want none", got)
	}
}

func testState(participants int) *State {
	parts := make([]Participant, participants)
	for i := range parts {
		parts[i] = Participant{Index: i, Name: "Seat", Archetype: "value-maximizer"}
	}
	pool := []Player{
		{ID: "a", Name: "A", Position: PositionRB, Rank: 1},
		{ID: "b", Name: "B", Position: PositionWR, Rank: 2},
		{ID: "c", Name: "C", Position: PositionQB, Rank: 3},
		{ID: "d", Name: "D", Position: PositionTE, Rank: 4},
	}
	return NewState("t1", parts, pool, Rules{Participants: participants, Rounds: 5})
}

func TestBestEligibleRespectsRoster(t *testing.T) {
	s := testState(2)

	// Close RB entirely for participant 0: dedicated RB + flex.
	s.Rosters[0].AssignSlot(PositionRB, "x1")
	s.Rosters[0].AssignSlot(PositionRB, "x2")

	best, ok := s.BestEligible(0)
	if !ok {
		t.Fatalf("expected an eligible player")
	}
	if best.ID != "b" {
		t.Fatalf("best eligible = %s, want b (rank 2, RB blocked)", best.ID)
	}
}

func TestAdvanceMarksTerminal(t *testing.T) {
	s := testState(2)
	total := s.Rules.TotalPicks()
	for i := 0; i < total; i++ {
		if s.Terminal() {
			t.Fatalf("terminal after %d of %d advances", i, total)
		}
		s.Advance()
	}
	if !s.Terminal() {
		t.Fatalf("expected terminal after %d advances", total)
	}
}

func TestTierDerivation(t *testing.T) {
	cases := []struct{ rank, tier int }{
		{1, 1}, {12, 1}, {13, 2}, {24, 2}, {25, 3}, {150, 13},
	}
	for _, tc := range cases {
		if got := (Player{Rank: tc.rank}).Tier(); got != tc.tier {
			t.Fatalf("rank %d tier = %d, want %d", tc.rank, got, tc.tier)
		}
	}
}

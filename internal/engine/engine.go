package engine

import "slices"

type Position string

const (
	PositionQB Position = "QB"
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"
)

// Positions is the closed set of draftable categories, in display order.
var Positions = []Position{PositionQB, PositionRB, PositionWR, PositionTE}

func ValidPosition(p Position) bool {
	return slices.Contains(Positions, p)
}

// RanksPerTier buckets overall rank into tiers (ranks 1-12 are tier 1, etc).
const RanksPerTier = 12

type Player struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Rank     int      `json:"rank"` // lower = better
	Age      int      `json:"age"`
	Team     string   `json:"team"`
}

func (p Player) Tier() int {
	return (p.Rank-1)/RanksPerTier + 1
}

// ArchetypeHuman marks a participant whose picks come from a person rather
// than an advisor. Human picks are never evaluated for deviations.
const ArchetypeHuman = "human"

type Participant struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Archetype string `json:"archetype"`
}

type Rules struct {
	Participants int `json:"participants"`
	Rounds       int `json:"rounds"`
	PickTimerSec int `json:"pick_timer_sec"`
}

func (r Rules) TotalPicks() int {
	return r.Participants * r.Rounds
}

type Cursor struct {
	PickNumber  int `json:"pick_number"` // 1-based, monotonic
	Round       int `json:"round"`
	Participant int `json:"participant"`
}

type PickRecord struct {
	PickNumber  int      `json:"pick_number"`
	Round       int      `json:"round"`
	Participant int      `json:"participant"`
	PlayerID    string   `json:"player_id"`
	Position    Position `json:"position"`
	Slot        string   `json:"slot"`
	Rationale   string   `json:"rationale"`
	Confidence  float64  `json:"confidence"`
}

// State is the full authoritative draft state. Pool, Rosters, Picks and Cursor
// form one logical unit: they are only ever read and written together.
type State struct {
	ID           string        `json:"id"`
	Rules        Rules         `json:"rules"`
	Participants []Participant `json:"participants"`
	Pool         []Player      `json:"pool"`
	Rosters      []Roster      `json:"rosters"`
	Picks        []PickRecord  `json:"picks"`
	Cursor       Cursor        `json:"cursor"`
}

func NewState(id string, participants []Participant, pool []Player, rules Rules) *State {
	rosters := make([]Roster, len(participants))
	for i := range rosters {
		rosters[i] = NewRoster()
	}
	round, idx := TurnFor(1, rules.Participants)
	return &State{
		ID:           id,
		Rules:        rules,
		Participants: participants,
		Pool:         pool,
		Rosters:      rosters,
		Picks:        []PickRecord{},
		Cursor:       Cursor{PickNumber: 1, Round: round, Participant: idx},
	}
}

func (s *State) Terminal() bool {
	return s.Cursor.PickNumber > s.Rules.TotalPicks()
}

func (s *State) PlayerInPool(id string) (Player, bool) {
	for _, p := range s.Pool {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

func (s *State) RemoveFromPool(id string) {
	s.Pool = slices.DeleteFunc(s.Pool, func(p Player) bool { return p.ID == id })
}

// EligiblePlayers returns the pool restricted to positions the participant's
// roster can still legally accept.
func (s *State) EligiblePlayers(participant int) []Player {
	roster := s.Rosters[participant]
	var out []Player
	for _, p := range s.Pool {
		if roster.CanAccept(p.Position) {
			out = append(out, p)
		}
	}
	return out
}

// BestEligible is the deterministic fallback rule: the lowest-rank player the
// participant can still accept. ok is false when the roster has no legal pick.
func (s *State) BestEligible(participant int) (Player, bool) {
	var best Player
	found := false
	for _, p := range s.EligiblePlayers(participant) {
		if !found || p.Rank < best.Rank {
			best = p
			found = true
		}
	}
	return best, found
}

// RecentPicks returns up to the last n committed picks, oldest first.
func (s *State) RecentPicks(n int) []PickRecord {
	if len(s.Picks) <= n {
		return s.Picks
	}
	return s.Picks[len(s.Picks)-n:]
}

// Advance moves the cursor past the current pick. After the final pick the
// cursor's pick number exceeds TotalPicks and the state is Terminal.
func (s *State) Advance() {
	next := s.Cursor.PickNumber + 1
	if next > s.Rules.TotalPicks() {
		s.Cursor = Cursor{PickNumber: next}
		return
	}
	round, idx := TurnFor(next, s.Rules.Participants)
	s.Cursor = Cursor{PickNumber: next, Round: round, Participant: idx}
}

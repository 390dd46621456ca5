// Package advisor is the boundary to the pick-recommendation collaborator.
// Whatever an advisor returns is an untrusted proposal: the recorder
// re-validates it against fresh state before anything commits.
package advisor

import (
	"context"
	"fmt"

	"github.com/draftroom/draftroom/internal/engine"
)

// Request is the advisor's view of the board. Eligible is already restricted
// to players the roster can legally accept.
type Request struct {
	DraftID     string
	Participant engine.Participant
	PickNumber  int
	Round       int
	Roster      engine.Roster
	Eligible    []engine.Player
	RecentPicks []engine.PickRecord
	// BoardSummary is the analyzer's summary line; advisors treat it as
	// opaque color, never as structure.
	BoardSummary string
}

type Candidate struct {
	PlayerID   string
	Position   engine.Position
	Rationale  string
	Confidence float64
}

type Advisor interface {
	Propose(ctx context.Context, req Request) (Candidate, error)
}

// FallbackConfidence marks a candidate produced by the deterministic rule
// rather than an advisor.
const FallbackConfidence = 0.3

// Fallback substitutes the best-ranked eligible player when the advisor
// fails or times out, so a draft can never stall on a dead advisor. ok is
// false only when the roster has no legal pick at all.
func Fallback(state *engine.State, participant int) (Candidate, bool) {
	best, ok := state.BestEligible(participant)
	if !ok {
		return Candidate{}, false
	}
	return Candidate{
		PlayerID:   best.ID,
		Position:   best.Position,
		Rationale:  fmt.Sprintf("advisor unavailable; took best available %s %s (rank %d)", best.Position, best.Name, best.Rank),
		Confidence: FallbackConfidence,
	}, true
}

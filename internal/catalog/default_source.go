package catalog

import (
	"context"
	"fmt"

	"github.com/draftroom/draftroom/internal/engine"
)

// DefaultSource generates a deterministic synthetic board for development
// drafts with no catalog configured. Same size, same players, every run.
type DefaultSource struct {
	Size int // 0 means defaultBoardSize
}

const defaultBoardSize = 180

// Rough positional mix of a real draft board, repeated down the ranks.
var positionPattern = []engine.Position{
	engine.PositionRB, engine.PositionWR, engine.PositionRB, engine.PositionWR,
	engine.PositionWR, engine.PositionQB, engine.PositionRB, engine.PositionTE,
	engine.PositionWR, engine.PositionRB, engine.PositionQB, engine.PositionWR,
	engine.PositionTE, engine.PositionWR, engine.PositionRB, engine.PositionQB,
	engine.PositionWR, engine.PositionTE, engine.PositionRB, engine.PositionWR,
}

var teamCodes = []string{
	"ATL", "BAL", "BUF", "CAR", "CHI", "CIN", "CLE", "DAL",
	"DEN", "DET", "GNB", "HOU", "IND", "JAX", "KAN", "LAC",
	"LAR", "LVR", "MIA", "MIN", "NOR", "NWE", "NYG", "NYJ",
	"PHI", "PIT", "SEA", "SFO", "TAM", "TEN", "WAS", "ARI",
}

func (d DefaultSource) Players(_ context.Context) ([]engine.Player, error) {
	size := d.Size
	if size <= 0 {
		size = defaultBoardSize
	}
	players := make([]engine.Player, size)
	for i := 0; i < size; i++ {
		pos := positionPattern[i%len(positionPattern)]
		players[i] = engine.Player{
			ID:       fmt.Sprintf("pl-%03d", i+1),
			Name:     fmt.Sprintf("%s Prospect %03d", pos, i+1),
			Position: pos,
			Rank:     i + 1,
			Age:      22 + (i*7)%15,
			Team:     teamCodes[i%len(teamCodes)],
		}
	}
	return players, nil
}

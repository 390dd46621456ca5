// Package board derives advisory signals from the pick history and remaining
// pool. Analysis is pure: same inputs, same snapshot, nothing persisted.
package board

import (
	"fmt"
	"sort"
	"strings"

	"github.com/draftroom/draftroom/internal/engine"
)

type Config struct {
	RunWindow         int // picks considered by the run detector
	RunThreshold      int // picks of one position within the window
	DropThreshold     int // picks a player has fallen past their rank
	ScarcityThreshold int // remaining players at or under which a position is scarce
	MaxDropSignals    int // cap on reported value drops; 0 = no cap
}

func DefaultConfig() Config {
	return Config{
		RunWindow:         8,
		RunThreshold:      3,
		DropThreshold:     8,
		ScarcityThreshold: 5,
		MaxDropSignals:    10,
	}
}

type RunSignal struct {
	Position engine.Position `json:"position"`
	Count    int             `json:"count"`
	Window   int             `json:"window"`
}

type DropSignal struct {
	Player engine.Player `json:"player"`
	Drop   int           `json:"drop"`
}

type ScarcitySignal struct {
	Position  engine.Position `json:"position"`
	Remaining int             `json:"remaining"`
}

// Snapshot is recomputed before every pick and never treated as authoritative
// state.
type Snapshot struct {
	PickNumber int              `json:"pick_number"`
	Runs       []RunSignal      `json:"runs,omitempty"`
	Drops      []DropSignal     `json:"drops,omitempty"`
	Scarcity   []ScarcitySignal `json:"scarcity,omitempty"`
}

// NoSignals is the fixed summary for an empty snapshot. Consumers must treat
// it as "no signals", never parse it.
const NoSignals = "no notable board signals"

func Analyze(picks []engine.PickRecord, pool []engine.Player, pickNumber int, cfg Config) Snapshot {
	snap := Snapshot{PickNumber: pickNumber}

	// Position runs over the trailing window.
	window := picks
	if len(window) > cfg.RunWindow {
		window = window[len(window)-cfg.RunWindow:]
	}
	counts := map[engine.Position]int{}
	for _, p := range window {
		counts[p.Position]++
	}
	for _, pos := range engine.Positions {
		if counts[pos] >= cfg.RunThreshold {
			snap.Runs = append(snap.Runs, RunSignal{Position: pos, Count: counts[pos], Window: len(window)})
		}
	}

	// Value drops: players still available well past their rank.
	for _, p := range pool {
		if drop := pickNumber - p.Rank; drop >= cfg.DropThreshold {
			snap.Drops = append(snap.Drops, DropSignal{Player: p, Drop: drop})
		}
	}
	sort.SliceStable(snap.Drops, func(i, j int) bool {
		if snap.Drops[i].Drop != snap.Drops[j].Drop {
			return snap.Drops[i].Drop > snap.Drops[j].Drop
		}
		return snap.Drops[i].Player.Rank < snap.Drops[j].Player.Rank
	})
	if cfg.MaxDropSignals > 0 && len(snap.Drops) > cfg.MaxDropSignals {
		snap.Drops = snap.Drops[:cfg.MaxDropSignals]
	}

	// Scarcity: positions running out.
	remaining := map[engine.Position]int{}
	for _, p := range pool {
		remaining[p.Position]++
	}
	for _, pos := range engine.Positions {
		if remaining[pos] <= cfg.ScarcityThreshold {
			snap.Scarcity = append(snap.Scarcity, ScarcitySignal{Position: pos, Remaining: remaining[pos]})
		}
	}
	sort.SliceStable(snap.Scarcity, func(i, j int) bool {
		return snap.Scarcity[i].Remaining < snap.Scarcity[j].Remaining
	})

	return snap
}

func (s Snapshot) Empty() bool {
	return len(s.Runs) == 0 && len(s.Drops) == 0 && len(s.Scarcity) == 0
}

// Summary renders the snapshot as a deterministic single line, groups joined
// in run, drop, scarcity order.
func (s Snapshot) Summary() string {
	if s.Empty() {
		return NoSignals
	}

	var groups []string

	if len(s.Runs) > 0 {
		parts := make([]string, len(s.Runs))
		for i, r := range s.Runs {
			parts[i] = fmt.Sprintf("%s x%d in last %d picks", r.Position, r.Count, r.Window)
		}
		groups = append(groups, "position runs: "+strings.Join(parts, ", "))
	}

	if len(s.Drops) > 0 {
		parts := make([]string, len(s.Drops))
		for i, d := range s.Drops {
			parts[i] = fmt.Sprintf("%s (%s, rank %d) fell %d", d.Player.Name, d.Player.Position, d.Player.Rank, d.Drop)
		}
		groups = append(groups, "falling values: "+strings.Join(parts, ", "))
	}

	if len(s.Scarcity) > 0 {
		parts := make([]string, len(s.Scarcity))
		for i, sc := range s.Scarcity {
			parts[i] = fmt.Sprintf("%s has %d left", sc.Position, sc.Remaining)
		}
		groups = append(groups, "scarcity: "+strings.Join(parts, ", "))
	}

	return strings.Join(groups, "; ")
}

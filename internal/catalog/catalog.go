// Package catalog populates the draftable pool. Seeding a draft is
// idempotent and at-most-once: concurrent requests for the same draft
// coalesce into a single attempt whose outcome every caller shares.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/draftroom/draftroom/internal/engine"
	"github.com/draftroom/draftroom/internal/metrics"
	"github.com/draftroom/draftroom/internal/recorder"
	"github.com/draftroom/draftroom/internal/store"
)

// Source supplies the player board. Implementations may hit the filesystem
// or a remote catalog; the seeder calls them at most once per draft.
type Source interface {
	Players(ctx context.Context) ([]engine.Player, error)
}

type Seeder struct {
	store store.Store
	src   Source
	log   *zap.Logger
	mets  *metrics.Metrics
	group singleflight.Group
}

func NewSeeder(st store.Store, src Source, log *zap.Logger, mets *metrics.Metrics) *Seeder {
	return &Seeder{store: st, src: src, log: log, mets: mets}
}

// seedResult is the shared outcome of a coalesced seed. The created flag is
// claimed atomically so only one caller announces a new draft.
type seedResult struct {
	state   *engine.State
	created atomic.Bool
}

// Seed creates the draft state with a full pool, or returns the existing
// state unchanged when the draft was already seeded. Duplicate concurrent
// calls for one draft share a single in-flight attempt. created is true for
// exactly one caller of the call that actually built the draft.
func (s *Seeder) Seed(ctx context.Context, draftID string, participants []engine.Participant, rules engine.Rules) (state *engine.State, created bool, err error) {
	v, err, _ := s.group.Do(draftID, func() (any, error) {
		return s.seedOnce(ctx, draftID, participants, rules)
	})
	if err != nil {
		return nil, false, err
	}
	res := v.(*seedResult)
	return res.state, res.created.CompareAndSwap(true, false), nil
}

func (s *Seeder) seedOnce(ctx context.Context, draftID string, participants []engine.Participant, rules engine.Rules) (*seedResult, error) {
	ns := recorder.Namespace(draftID)

	var existing engine.State
	err := s.store.Get(ctx, ns, recorder.KeyState, &existing)
	if err == nil {
		return &seedResult{state: &existing}, nil
	}
	if !errors.Is(err, store.ErrKeyNotFound) {
		return nil, err
	}

	players, err := s.src.Players(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	if len(players) < rules.TotalPicks() {
		return nil, fmt.Errorf("catalog has %d players, draft needs %d: %w",
			len(players), rules.TotalPicks(), engine.ErrValidation)
	}
	sort.SliceStable(players, func(i, j int) bool { return players[i].Rank < players[j].Rank })

	state := engine.NewState(draftID, participants, players, rules)
	if err := s.store.Set(ctx, ns, recorder.KeyState, state); err != nil {
		return nil, fmt.Errorf("persist seeded draft: %w", err)
	}

	s.mets.Seeds.Inc()
	s.log.Info("draft seeded",
		zap.String("draft", draftID),
		zap.Int("players", len(players)),
		zap.Int("participants", rules.Participants),
		zap.Int("rounds", rules.Rounds))

	res := &seedResult{state: state}
	res.created.Store(true)
	return res, nil
}

// FileSource reads a JSON array of players.
type FileSource struct {
	Path string
}

func (f FileSource) Players(_ context.Context) ([]engine.Player, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	var players []engine.Player
	if err := json.Unmarshal(raw, &players); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	for _, p := range players {
		if !engine.ValidPosition(p.Position) {
			return nil, fmt.Errorf("player %s has unknown position %q: %w", p.ID, p.Position, engine.ErrValidation)
		}
	}
	return players, nil
}

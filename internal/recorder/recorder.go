// Package recorder owns the commit protocol: every pick is re-validated
// against freshly read authoritative state before it lands, so proposals
// computed against a stale board lose cleanly instead of corrupting state.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/draftroom/draftroom/internal/archetype"
	"github.com/draftroom/draftroom/internal/board"
	"github.com/draftroom/draftroom/internal/engine"
	"github.com/draftroom/draftroom/internal/metrics"
	"github.com/draftroom/draftroom/internal/store"
)

// Store keys under the draft's namespace. State is one document on purpose:
// pool, rosters, picks and cursor may never be committed independently.
const (
	KeyState      = "state"
	KeyDeviations = "deviations"
	KeyAudit      = "audit"
)

func Namespace(draftID string) string {
	return "draft:" + draftID
}

// Proposal is an untrusted candidate pick, typically advisor-produced. The
// cursor fields are the state it was computed against.
type Proposal struct {
	PickNumber  int
	Participant int
	PlayerID    string
	Position    engine.Position
	Rationale   string
	Confidence  float64
}

// Result carries the fresh authoritative state back to the caller even when
// the commit fails, so clients can resynchronize without a second read.
type Result struct {
	State     *engine.State
	Pick      *engine.PickRecord
	Player    engine.Player
	Deviation *archetype.Deviation
	Board     board.Snapshot
	Terminal  bool
}

// AuditEntry is the optional per-pick summary cached for later review; never
// read back as authoritative state.
type AuditEntry struct {
	PickNumber int    `json:"pick_number"`
	Summary    string `json:"summary"`
}

type Recorder struct {
	store    store.Store
	log      *zap.Logger
	mets     *metrics.Metrics
	boardCfg board.Config

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(st store.Store, log *zap.Logger, mets *metrics.Metrics) *Recorder {
	return &Recorder{
		store:    st,
		log:      log,
		mets:     mets,
		boardCfg: board.DefaultConfig(),
		locks:    map[string]*sync.Mutex{},
	}
}

// lock returns the per-draft writer mutex. Each draft is single-writer in
// process; cross-draft commits never contend.
func (r *Recorder) lock(draftID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[draftID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[draftID] = l
	}
	return l
}

// State reads the fresh authoritative state for a draft.
func (r *Recorder) State(ctx context.Context, draftID string) (*engine.State, error) {
	var s engine.State
	err := r.store.Get(ctx, Namespace(draftID), KeyState, &s)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, fmt.Errorf("draft %s: %w", draftID, engine.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Deviations reads the append-only deviation list for a draft.
func (r *Recorder) Deviations(ctx context.Context, draftID string) ([]archetype.Deviation, error) {
	var out []archetype.Deviation
	err := r.store.Get(ctx, Namespace(draftID), KeyDeviations, &out)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, nil
	}
	return out, err
}

// Commit validates the proposal against freshly read state and, if it still
// holds, applies exactly one pick: one player out of the pool, one roster
// slot filled, one record appended, one cursor advance, persisted as a
// single batch. Any mismatch is a conflict the caller may retry with the
// returned fresh state.
func (r *Recorder) Commit(ctx context.Context, draftID string, p Proposal) (*Result, error) {
	// Cheap shape check before touching state.
	if err := r.precheck(p); err != nil {
		r.mets.Commits.WithLabelValues("validation").Inc()
		return nil, err
	}

	l := r.lock(draftID)
	l.Lock()
	defer l.Unlock()

	fresh, err := r.State(ctx, draftID)
	if err != nil {
		r.mets.Commits.WithLabelValues(outcomeFor(err)).Inc()
		return nil, err
	}
	res := &Result{State: fresh}

	if err := r.validate(fresh, p); err != nil {
		r.mets.Commits.WithLabelValues(outcomeFor(err)).Inc()
		r.log.Info("pick rejected",
			zap.String("draft", draftID),
			zap.Int("pick", p.PickNumber),
			zap.Int("participant", p.Participant),
			zap.Error(err))
		return res, err
	}

	player, _ := fresh.PlayerInPool(p.PlayerID)
	cursor := fresh.Cursor

	// Signals and eligible alternatives as they stood before the pick.
	snap := board.Analyze(fresh.Picks, fresh.Pool, cursor.PickNumber, r.boardCfg)
	eligible := fresh.EligiblePlayers(cursor.Participant)

	slot, ok := fresh.Rosters[cursor.Participant].AssignSlot(player.Position, player.ID)
	if !ok {
		// validate already proved CanAccept; this is a programmer error.
		r.mets.Commits.WithLabelValues("error").Inc()
		return res, fmt.Errorf("assign slot for %s: %w", player.Position, engine.ErrConflict)
	}

	pick := engine.PickRecord{
		PickNumber:  cursor.PickNumber,
		Round:       cursor.Round,
		Participant: cursor.Participant,
		PlayerID:    player.ID,
		Position:    player.Position,
		Slot:        slot,
		Rationale:   p.Rationale,
		Confidence:  p.Confidence,
	}

	deviation := archetype.Evaluate(
		fresh.Participants[cursor.Participant].Archetype,
		archetype.Context{Pick: pick, Player: player, Board: snap, Eligible: eligible},
	)

	fresh.RemoveFromPool(player.ID)
	fresh.Picks = append(fresh.Picks, pick)
	fresh.Advance()

	entries, err := r.persistEntries(ctx, draftID, fresh, snap, pick, deviation)
	if err != nil {
		r.mets.Commits.WithLabelValues("error").Inc()
		r.restoreState(ctx, draftID, res)
		return res, err
	}
	if err := r.store.SetBatch(ctx, entries); err != nil {
		r.mets.Commits.WithLabelValues("error").Inc()
		r.restoreState(ctx, draftID, res)
		return res, fmt.Errorf("persist pick %d: %w", pick.PickNumber, err)
	}

	r.mets.Commits.WithLabelValues("committed").Inc()
	if deviation != nil {
		r.mets.Deviations.WithLabelValues(string(deviation.Severity)).Inc()
	}
	r.log.Info("pick committed",
		zap.String("draft", draftID),
		zap.Int("pick", pick.PickNumber),
		zap.Int("round", pick.Round),
		zap.Int("participant", pick.Participant),
		zap.String("player", player.Name),
		zap.String("slot", slot),
		zap.Bool("terminal", fresh.Terminal()),
		zap.Bool("deviation", deviation != nil))

	res.Pick = &pick
	res.Player = player
	res.Deviation = deviation
	res.Board = snap
	res.Terminal = fresh.Terminal()
	return res, nil
}

// restoreState replaces the result's state with a re-read from the store after
// a failed persist, so the caller never sees mutations that did not land.
func (r *Recorder) restoreState(ctx context.Context, draftID string, res *Result) {
	stored, err := r.State(ctx, draftID)
	if err != nil {
		// Better no state than unpersisted mutations.
		res.State = nil
		return
	}
	res.State = stored
}

func (r *Recorder) precheck(p Proposal) error {
	if p.PickNumber < 1 {
		return fmt.Errorf("pick number %d: %w", p.PickNumber, engine.ErrValidation)
	}
	if p.Participant < 0 {
		return fmt.Errorf("participant %d: %w", p.Participant, engine.ErrValidation)
	}
	if p.PlayerID == "" {
		return fmt.Errorf("empty player id: %w", engine.ErrValidation)
	}
	if !engine.ValidPosition(p.Position) {
		return fmt.Errorf("position %q: %w", p.Position, engine.ErrValidation)
	}
	return nil
}

// validate is the authoritative guard, run against fresh state under the
// draft's writer lock.
func (r *Recorder) validate(fresh *engine.State, p Proposal) error {
	if p.Participant >= len(fresh.Participants) {
		return fmt.Errorf("participant %d: %w", p.Participant, engine.ErrValidation)
	}
	if fresh.Terminal() {
		return engine.ErrCompleted
	}
	cursor := fresh.Cursor
	if cursor.PickNumber != p.PickNumber || cursor.Participant != p.Participant {
		return fmt.Errorf("proposal for pick %d/participant %d, draft is at pick %d/participant %d: %w",
			p.PickNumber, p.Participant, cursor.PickNumber, cursor.Participant, engine.ErrConflict)
	}
	roster := fresh.Rosters[cursor.Participant]
	if len(roster.EligiblePositions()) == 0 || len(fresh.EligiblePlayers(cursor.Participant)) == 0 {
		return fmt.Errorf("participant %d: %w", cursor.Participant, engine.ErrExhausted)
	}
	player, ok := fresh.PlayerInPool(p.PlayerID)
	if !ok {
		return fmt.Errorf("player %s no longer available: %w", p.PlayerID, engine.ErrConflict)
	}
	if player.Position != p.Position {
		return fmt.Errorf("player %s is %s, proposal says %s: %w", p.PlayerID, player.Position, p.Position, engine.ErrConflict)
	}
	if !roster.CanAccept(player.Position) {
		return fmt.Errorf("no open slot for %s: %w", player.Position, engine.ErrConflict)
	}
	return nil
}

func (r *Recorder) persistEntries(ctx context.Context, draftID string, fresh *engine.State, snap board.Snapshot, pick engine.PickRecord, deviation *archetype.Deviation) ([]store.Entry, error) {
	ns := Namespace(draftID)
	entries := []store.Entry{{Namespace: ns, Key: KeyState, Value: fresh}}

	if deviation != nil {
		existing, err := r.Deviations(ctx, draftID)
		if err != nil {
			return nil, fmt.Errorf("read deviations: %w", err)
		}
		entries = append(entries, store.Entry{
			Namespace: ns, Key: KeyDeviations, Value: append(existing, *deviation),
		})
	}

	var audit []AuditEntry
	if err := r.store.Get(ctx, ns, KeyAudit, &audit); err != nil && !errors.Is(err, store.ErrKeyNotFound) {
		return nil, fmt.Errorf("read audit: %w", err)
	}
	audit = append(audit, AuditEntry{PickNumber: pick.PickNumber, Summary: snap.Summary()})
	entries = append(entries, store.Entry{Namespace: ns, Key: KeyAudit, Value: audit})

	return entries, nil
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, engine.ErrConflict):
		return "conflict"
	case errors.Is(err, engine.ErrValidation):
		return "validation"
	case errors.Is(err, engine.ErrNotFound):
		return "not_found"
	case errors.Is(err, engine.ErrCompleted):
		return "completed"
	case errors.Is(err, engine.ErrExhausted):
		return "exhausted"
	default:
		return "error"
	}
}

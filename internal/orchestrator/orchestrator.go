// Package orchestrator drives the draft loop: read state, ask the advisor,
// hand the candidate to the recorder, publish what happened. The advisory
// step holds no lock and owns no state; a proposal that loses a race is
// simply recomputed.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/draftroom/draftroom/internal/advisor"
	"github.com/draftroom/draftroom/internal/archetype"
	"github.com/draftroom/draftroom/internal/board"
	"github.com/draftroom/draftroom/internal/catalog"
	"github.com/draftroom/draftroom/internal/engine"
	"github.com/draftroom/draftroom/internal/hub"
	"github.com/draftroom/draftroom/internal/lobby"
	"github.com/draftroom/draftroom/internal/metrics"
	"github.com/draftroom/draftroom/internal/recorder"
	"github.com/draftroom/draftroom/pkg/types"
)

const defaultAdvisorTimeout = 30 * time.Second

type Orchestrator struct {
	rec            *recorder.Recorder
	seeder         *catalog.Seeder
	adv            advisor.Advisor // nil means fallback-only drafting
	hub            *hub.Hub
	log            *zap.Logger
	mets           *metrics.Metrics
	advisorTimeout time.Duration
	boardCfg       board.Config
}

func New(rec *recorder.Recorder, seeder *catalog.Seeder, adv advisor.Advisor, h *hub.Hub, log *zap.Logger, mets *metrics.Metrics, advisorTimeout time.Duration) *Orchestrator {
	if advisorTimeout <= 0 {
		advisorTimeout = defaultAdvisorTimeout
	}
	return &Orchestrator{
		rec:            rec,
		seeder:         seeder,
		adv:            adv,
		hub:            h,
		log:            log,
		mets:           mets,
		advisorTimeout: advisorTimeout,
		boardCfg:       board.DefaultConfig(),
	}
}

// StartRequest names the seats of a new draft. Archetypes must be registered
// rules or the human sentinel.
type StartRequest struct {
	DraftID      string
	Participants []engine.Participant
	Rules        engine.Rules
}

// StartDraft seeds a new draft (idempotently) and opens its live lobby.
func (o *Orchestrator) StartDraft(ctx context.Context, req StartRequest) (*engine.State, error) {
	if req.DraftID == "" {
		req.DraftID = uuid.NewString()
	}
	if err := validateStart(req); err != nil {
		return nil, err
	}

	state, created, err := o.seeder.Seed(ctx, req.DraftID, req.Participants, req.Rules)
	if err != nil {
		return nil, err
	}

	// An idempotent repeat found the draft already seeded; announcing it
	// again would hand every spectator a duplicate event.
	if created {
		o.publish(state.ID, lobby.Event{
			Type: lobby.EventDraftStarted,
			Payload: types.DraftStarted{
				DraftID:      state.ID,
				Participants: state.Participants,
				Rules:        state.Rules,
				PoolSize:     len(state.Pool),
			},
		})
	}
	return state, nil
}

func validateStart(req StartRequest) error {
	n := len(req.Participants)
	if n < 2 {
		return fmt.Errorf("need at least 2 participants, got %d: %w", n, engine.ErrValidation)
	}
	if req.Rules.Participants != n {
		return fmt.Errorf("rules say %d participants, got %d seats: %w", req.Rules.Participants, n, engine.ErrValidation)
	}
	if req.Rules.Rounds < 1 || req.Rules.Rounds > engine.SlotCount() {
		return fmt.Errorf("rounds must be 1..%d, got %d: %w", engine.SlotCount(), req.Rules.Rounds, engine.ErrValidation)
	}
	for i, p := range req.Participants {
		if p.Index != i {
			return fmt.Errorf("participant %d has index %d: %w", i, p.Index, engine.ErrValidation)
		}
		if p.Name == "" {
			return fmt.Errorf("participant %d has no name: %w", i, engine.ErrValidation)
		}
	}
	return nil
}

// AdvanceTurn plays the on-clock advisor-driven participant. A conflict from
// a racing duplicate request is retried once with recomputed state, then
// surfaced.
func (o *Orchestrator) AdvanceTurn(ctx context.Context, draftID string) (*recorder.Result, error) {
	state, err := o.rec.State(ctx, draftID)
	if err != nil {
		return nil, err
	}

	res, err := o.advanceOnce(ctx, state)
	if err != nil && errors.Is(err, engine.ErrConflict) && res != nil && res.State != nil {
		o.log.Info("advance lost a race, retrying with fresh state",
			zap.String("draft", draftID))
		res, err = o.advanceOnce(ctx, res.State)
	}
	if err != nil {
		return res, err
	}

	o.publishCommit(draftID, res)
	return res, nil
}

func (o *Orchestrator) advanceOnce(ctx context.Context, state *engine.State) (*recorder.Result, error) {
	if state.Terminal() {
		return &recorder.Result{State: state, Terminal: true}, engine.ErrCompleted
	}
	seat := state.Cursor.Participant
	participant := state.Participants[seat]
	if participant.Archetype == engine.ArchetypeHuman {
		return &recorder.Result{State: state},
			fmt.Errorf("participant %d is human, use the human-pick operation: %w", seat, engine.ErrValidation)
	}

	candidate := o.advise(ctx, state, participant)
	if candidate.PlayerID == "" {
		return &recorder.Result{State: state},
			fmt.Errorf("participant %d has no legal pick: %w", seat, engine.ErrExhausted)
	}

	return o.rec.Commit(ctx, state.ID, recorder.Proposal{
		PickNumber:  state.Cursor.PickNumber,
		Participant: seat,
		PlayerID:    candidate.PlayerID,
		Position:    candidate.Position,
		Rationale:   candidate.Rationale,
		Confidence:  candidate.Confidence,
	})
}

// advise asks the external advisor under a deadline and falls back to the
// deterministic best-eligible rule on any failure. A dead advisor must never
// stall a draft.
func (o *Orchestrator) advise(ctx context.Context, state *engine.State, participant engine.Participant) advisor.Candidate {
	seat := participant.Index
	eligible := state.EligiblePlayers(seat)
	snap := board.Analyze(state.Picks, state.Pool, state.Cursor.PickNumber, o.boardCfg)

	if o.adv != nil {
		advCtx, cancel := context.WithTimeout(ctx, o.advisorTimeout)
		defer cancel()
		candidate, err := o.adv.Propose(advCtx, advisor.Request{
			DraftID:      state.ID,
			Participant:  participant,
			PickNumber:   state.Cursor.PickNumber,
			Round:        state.Cursor.Round,
			Roster:       state.Rosters[seat],
			Eligible:     eligible,
			RecentPicks:  state.RecentPicks(o.boardCfg.RunWindow),
			BoardSummary: snap.Summary(),
		})
		if err == nil {
			return candidate
		}
		o.log.Warn("advisor failed, using fallback",
			zap.String("draft", state.ID),
			zap.Int("pick", state.Cursor.PickNumber),
			zap.Error(err))
	}

	o.mets.AdvisorFallbacks.Inc()
	candidate, _ := advisor.Fallback(state, seat)
	return candidate
}

// HumanPick commits a pick chosen by a human participant. Conflicts are
// surfaced, not retried: the human decides what to do with a changed board.
func (o *Orchestrator) HumanPick(ctx context.Context, draftID string, seat int, playerID, rationale string) (*recorder.Result, error) {
	state, err := o.rec.State(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if seat < 0 || seat >= len(state.Participants) {
		return &recorder.Result{State: state}, fmt.Errorf("participant %d: %w", seat, engine.ErrValidation)
	}
	if state.Participants[seat].Archetype != engine.ArchetypeHuman {
		return &recorder.Result{State: state}, fmt.Errorf("participant %d is not human: %w", seat, engine.ErrValidation)
	}
	player, ok := state.PlayerInPool(playerID)
	if !ok {
		return &recorder.Result{State: state}, fmt.Errorf("player %s no longer available: %w", playerID, engine.ErrConflict)
	}
	if rationale == "" {
		rationale = "human pick"
	}

	res, err := o.rec.Commit(ctx, draftID, recorder.Proposal{
		PickNumber:  state.Cursor.PickNumber,
		Participant: seat,
		PlayerID:    player.ID,
		Position:    player.Position,
		Rationale:   rationale,
		Confidence:  1,
	})
	if err != nil {
		return res, err
	}
	o.publishCommit(draftID, res)
	return res, nil
}

func (o *Orchestrator) GetState(ctx context.Context, draftID string) (*engine.State, error) {
	return o.rec.State(ctx, draftID)
}

// AvailablePlayers returns the remaining pool; when seat >= 0 it is
// restricted to players that participant can still accept.
func (o *Orchestrator) AvailablePlayers(ctx context.Context, draftID string, seat int) ([]engine.Player, error) {
	state, err := o.rec.State(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if seat < 0 {
		return state.Pool, nil
	}
	if seat >= len(state.Participants) {
		return nil, fmt.Errorf("participant %d: %w", seat, engine.ErrValidation)
	}
	return state.EligiblePlayers(seat), nil
}

func (o *Orchestrator) Deviations(ctx context.Context, draftID string) ([]archetype.Deviation, error) {
	if _, err := o.rec.State(ctx, draftID); err != nil {
		return nil, err
	}
	return o.rec.Deviations(ctx, draftID)
}

// Assignments lists each seat's declared archetype.
func (o *Orchestrator) Assignments(ctx context.Context, draftID string) ([]engine.Participant, error) {
	state, err := o.rec.State(ctx, draftID)
	if err != nil {
		return nil, err
	}
	return state.Participants, nil
}

// publish hands an event to the draft's lobby. A nil lobby means the hub is
// shutting down; dropping the event is fine, the state is already committed.
func (o *Orchestrator) publish(draftID string, ev lobby.Event) {
	lb := o.hub.Ensure(draftID)
	if lb == nil {
		return
	}
	lb.Inbox() <- lobby.Publish{Event: ev}
}

func (o *Orchestrator) publishCommit(draftID string, res *recorder.Result) {
	o.publish(draftID, lobby.Event{
		Type: lobby.EventPickCommitted,
		Payload: types.PickCommitted{
			DraftID:    draftID,
			Pick:       *res.Pick,
			PlayerName: res.Player.Name,
			Cursor:     res.State.Cursor,
			Terminal:   res.Terminal,
			BoardRead:  res.Board.Summary(),
		},
	})

	if res.Deviation != nil {
		o.publish(draftID, lobby.Event{
			Type:    lobby.EventDeviationDetected,
			Payload: types.DeviationDetected{DraftID: draftID, Deviation: *res.Deviation},
		})
	}

	if res.Terminal {
		o.publish(draftID, lobby.Event{
			Type:    lobby.EventDraftCompleted,
			Payload: map[string]any{"draft_id": draftID, "total_picks": len(res.State.Picks)},
		})
	}
}

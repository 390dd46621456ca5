package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/draftroom/draftroom/internal/archetype"
	"github.com/draftroom/draftroom/internal/engine"
	"github.com/draftroom/draftroom/internal/orchestrator"
	"github.com/draftroom/draftroom/internal/recorder"
	"github.com/draftroom/draftroom/pkg/types"
)

type seatRequest struct {
	Name      string `json:"name"`
	Archetype string `json:"archetype"`
}

type startDraftRequest struct {
	DraftID      string        `json:"draft_id,omitempty"`
	Participants []seatRequest `json:"participants"`
	Rounds       int           `json:"rounds,omitempty"`
	PickTimerSec int           `json:"pick_timer_sec,omitempty"`
}

type humanPickRequest struct {
	Participant int    `json:"participant"`
	PlayerID    string `json:"player_id"`
	Rationale   string `json:"rationale,omitempty"`
}

// Defaults fill start requests that leave draft knobs unset. A request with
// no participants at all gets a full slate of advisor-driven seats.
type Defaults struct {
	Participants int
	Rounds       int
	PickTimerSec int
}

func (d Defaults) seats() []seatRequest {
	registered := archetype.Registered()
	seats := make([]seatRequest, d.Participants)
	for i := range seats {
		seats[i] = seatRequest{
			Name:      fmt.Sprintf("Seat %d", i+1),
			Archetype: registered[i%len(registered)],
		}
	}
	return seats
}

type commitResponse struct {
	Pick      *engine.PickRecord   `json:"pick"`
	Player    engine.Player        `json:"player"`
	Deviation *archetype.Deviation `json:"deviation,omitempty"`
	BoardRead string               `json:"board_read"`
	Terminal  bool                 `json:"terminal"`
	State     *engine.State        `json:"state"`
}

func StartDraft(o *orchestrator.Orchestrator, d Defaults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startDraftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, errors.Join(engine.ErrValidation, err), nil)
			return
		}

		if len(req.Participants) == 0 && d.Participants > 0 {
			req.Participants = d.seats()
		}
		participants := make([]engine.Participant, len(req.Participants))
		for i, seat := range req.Participants {
			if seat.Archetype != engine.ArchetypeHuman && !slices.Contains(archetype.Registered(), seat.Archetype) {
				writeError(w, errorf("unknown archetype %q", seat.Archetype), nil)
				return
			}
			participants[i] = engine.Participant{Index: i, Name: seat.Name, Archetype: seat.Archetype}
		}
		rounds := req.Rounds
		if rounds == 0 {
			rounds = d.Rounds
		}
		if rounds == 0 {
			rounds = engine.SlotCount()
		}
		timer := req.PickTimerSec
		if timer == 0 {
			timer = d.PickTimerSec
		}

		state, err := o.StartDraft(r.Context(), orchestrator.StartRequest{
			DraftID:      req.DraftID,
			Participants: participants,
			Rules: engine.Rules{
				Participants: len(participants),
				Rounds:       rounds,
				PickTimerSec: timer,
			},
		})
		if err != nil {
			writeError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusCreated, state)
	}
}

func GetDraft(o *orchestrator.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := o.GetState(r.Context(), chi.URLParam(r, "draftID"))
		if err != nil {
			writeError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func AdvanceTurn(o *orchestrator.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := o.AdvanceTurn(r.Context(), chi.URLParam(r, "draftID"))
		if err != nil {
			writeError(w, err, res)
			return
		}
		writeJSON(w, http.StatusOK, toCommitResponse(res))
	}
}

func HumanPick(o *orchestrator.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req humanPickRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, errors.Join(engine.ErrValidation, err), nil)
			return
		}
		res, err := o.HumanPick(r.Context(), chi.URLParam(r, "draftID"), req.Participant, req.PlayerID, req.Rationale)
		if err != nil {
			writeError(w, err, res)
			return
		}
		writeJSON(w, http.StatusOK, toCommitResponse(res))
	}
}

func AvailablePlayers(o *orchestrator.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seat := -1
		if raw := r.URL.Query().Get("participant"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, errorf("participant %q is not a number", raw), nil)
				return
			}
			seat = parsed
		}
		players, err := o.AvailablePlayers(r.Context(), chi.URLParam(r, "draftID"), seat)
		if err != nil {
			writeError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func Deviations(o *orchestrator.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		devs, err := o.Deviations(r.Context(), chi.URLParam(r, "draftID"))
		if err != nil {
			writeError(w, err, nil)
			return
		}
		if devs == nil {
			devs = []archetype.Deviation{}
		}
		writeJSON(w, http.StatusOK, devs)
	}
}

func Assignments(o *orchestrator.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts, err := o.Assignments(r.Context(), chi.URLParam(r, "draftID"))
		if err != nil {
			writeError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, parts)
	}
}

func Archetypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, archetype.Registered())
}

func Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func toCommitResponse(res *recorder.Result) commitResponse {
	return commitResponse{
		Pick:      res.Pick,
		Player:    res.Player,
		Deviation: res.Deviation,
		BoardRead: res.Board.Summary(),
		Terminal:  res.Terminal,
		State:     res.State,
	}
}

func errorf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, engine.ErrValidation)...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto status codes. When a commit result
// is present its fresh state rides along in the body.
func writeError(w http.ResponseWriter, err error, res *recorder.Result) {
	status := http.StatusInternalServerError
	code := "internal"
	switch {
	case errors.Is(err, engine.ErrValidation):
		status, code = http.StatusBadRequest, "validation"
	case errors.Is(err, engine.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, engine.ErrConflict):
		status, code = http.StatusConflict, "conflict"
	case errors.Is(err, engine.ErrCompleted):
		status, code = http.StatusConflict, "completed"
	case errors.Is(err, engine.ErrExhausted):
		status, code = http.StatusUnprocessableEntity, "exhausted"
	}

	body := types.ErrorResponse{Error: err.Error(), Code: code}
	if res != nil {
		body.State = res.State
	}
	writeJSON(w, status, body)
}

// Package types holds the wire shapes shared by the HTTP surface and the
// websocket stream.
package types

import (
	"github.com/draftroom/draftroom/internal/archetype"
	"github.com/draftroom/draftroom/internal/engine"
)

// ServerMessage is the websocket envelope.
// Type is one of the lobby event names, "Error", or "Hello".
type ServerMessage struct {
	Type    string `json:"type"`
	Version int    `json:"version,omitempty"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PickCommitted is the payload for a committed pick.
type PickCommitted struct {
	DraftID    string            `json:"draft_id"`
	Pick       engine.PickRecord `json:"pick"`
	PlayerName string            `json:"player_name"`
	Cursor     engine.Cursor     `json:"cursor"`
	Terminal   bool              `json:"terminal"`
	BoardRead  string            `json:"board_read"`
}

// DeviationDetected is the payload for a flagged pick.
type DeviationDetected struct {
	DraftID   string              `json:"draft_id"`
	Deviation archetype.Deviation `json:"deviation"`
}

// DraftStarted is published once after seeding.
type DraftStarted struct {
	DraftID      string               `json:"draft_id"`
	Participants []engine.Participant `json:"participants"`
	Rules        engine.Rules         `json:"rules"`
	PoolSize     int                  `json:"pool_size"`
}

// ErrorResponse is the HTTP error body. Fresh state rides along so clients
// can resynchronize without a second read.
type ErrorResponse struct {
	Error string        `json:"error"`
	Code  string        `json:"code"`
	State *engine.State `json:"state,omitempty"`
}

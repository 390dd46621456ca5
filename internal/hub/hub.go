// Package hub tracks the live lobby for every active draft.
package hub

import (
	"context"

	"github.com/draftroom/draftroom/internal/lobby"
)

type HubMsg interface{ isHubMsg() }

type EnsureLobby struct {
	DraftID string
	Reply   chan *lobby.Lobby
}

type GetLobby struct {
	DraftID string
	Reply   chan *lobby.Lobby
}

type RemoveLobby struct {
	DraftID string
}

type ShutdownHub struct{}

func (EnsureLobby) isHubMsg() {}
func (GetLobby) isHubMsg()    {}
func (RemoveLobby) isHubMsg() {}
func (ShutdownHub) isHubMsg() {}

type Hub struct {
	inbox   chan HubMsg
	lobbies map[string]*lobby.Lobby
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewHub(parent context.Context) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:   make(chan HubMsg, 64),
		lobbies: make(map[string]*lobby.Lobby),
		ctx:     ctx,
		cancel:  cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

// Ensure returns the lobby for a draft, creating it if needed. Returns nil
// once the hub is shut down; callers must not block on a gone loop.
func (h *Hub) Ensure(draftID string) *lobby.Lobby {
	reply := make(chan *lobby.Lobby, 1)
	select {
	case h.inbox <- EnsureLobby{DraftID: draftID, Reply: reply}:
	case <-h.ctx.Done():
		return nil
	}
	select {
	case lb := <-reply:
		return lb
	case <-h.ctx.Done():
		return nil
	}
}

// Get returns the lobby for a draft, or nil when it does not exist or the
// hub is shut down.
func (h *Hub) Get(draftID string) *lobby.Lobby {
	reply := make(chan *lobby.Lobby, 1)
	select {
	case h.inbox <- GetLobby{DraftID: draftID, Reply: reply}:
	case <-h.ctx.Done():
		return nil
	}
	select {
	case lb := <-reply:
		return lb
	case <-h.ctx.Done():
		return nil
	}
}

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case EnsureLobby:
				lb := h.lobbies[msg.DraftID]
				if lb == nil {
					lb = lobby.NewLobby(h.ctx)
					h.lobbies[msg.DraftID] = lb
				}
				msg.Reply <- lb

			case GetLobby:
				msg.Reply <- h.lobbies[msg.DraftID] // may be nil

			case RemoveLobby:
				if lb := h.lobbies[msg.DraftID]; lb != nil {
					lb.Inbox() <- lobby.Shutdown{}
					delete(h.lobbies, msg.DraftID)
				}

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) shutdown() {
	for _, lb := range h.lobbies {
		lb.Inbox() <- lobby.Shutdown{}
	}
	clear(h.lobbies)
	h.cancel()
}

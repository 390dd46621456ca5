// Package ws streams lobby events to spectators over a websocket. The stream
// is one-way: clients receive, the draft is driven over the HTTP surface.
package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/draftroom/draftroom/internal/hub"
	"github.com/draftroom/draftroom/internal/lobby"
	"github.com/draftroom/draftroom/pkg/types"
)

func Handler(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draftID := r.URL.Query().Get("draft")
		if draftID == "" {
			http.Error(w, "missing draft", http.StatusBadRequest)
			return
		}

		lb := h.Get(draftID)
		if lb == nil {
			http.Error(w, "draft not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan lobby.Event, 16)
		clientID := randID(8)

		lb.Inbox() <- lobby.Join{ClientID: clientID, Outbox: out}
		defer func() { lb.Inbox() <- lobby.Leave{ClientID: clientID} }()

		// Writer goroutine: lobby events out to the socket.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for ev := range out {
				msg := types.ServerMessage{Type: ev.Type, Version: ev.Version, Payload: ev.Payload}
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop: the stream is one-way, so incoming frames are only
		// drained to notice the close.
		for {
			if _, _, err := conn.Read(r.Context()); err != nil {
				return
			}
		}
	}
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

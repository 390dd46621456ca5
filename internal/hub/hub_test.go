package hub

import (
	"context"
	"testing"
	"time"
)

func TestEnsureIsIdempotent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(ctx)

	a := h.Ensure("d1")
	b := h.Ensure("d1")
	if a == nil || a != b {
		t.Fatalf("Ensure returned different lobbies for one draft")
	}
	if h.Ensure("d2") == a {
		t.Fatalf("different drafts share a lobby")
	}
}

func TestGetMissingLobby(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(ctx)

	if lb := h.Get("nope"); lb != nil {
		t.Fatalf("expected nil for unknown draft")
	}
}

func TestEnsureReturnsAfterShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		h.Ensure("d1")
		h.Get("d1")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Ensure/Get hung after hub shutdown")
	}
}

func TestRemoveLobby(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(ctx)

	h.Ensure("d1")
	h.Inbox() <- RemoveLobby{DraftID: "d1"}
	// The loop is serial: the next Get observes the removal.
	if lb := h.Get("d1"); lb != nil {
		t.Fatalf("lobby survived removal")
	}
}

// Package lobby fans live draft events out to connected spectators. A lobby
// is a one-way emitter: it never touches draft state, which lives behind the
// recorder.
package lobby

import "context"

type Msg interface{ isLobbyMsg() }

type Join struct {
	ClientID string
	Outbox   chan Event // where this client wants to receive events
}

func (Join) isLobbyMsg() {}

type Leave struct{ ClientID string }

func (Leave) isLobbyMsg() {}

type Publish struct{ Event Event }

func (Publish) isLobbyMsg() {}

type Shutdown struct{}

func (Shutdown) isLobbyMsg() {}

type GetView struct {
	Reply chan View
}

func (GetView) isLobbyMsg() {}

const (
	EventDraftStarted      = "DraftStarted"
	EventPickCommitted     = "PickCommitted"
	EventDeviationDetected = "DeviationDetected"
	EventDraftCompleted    = "DraftCompleted"
)

// Event is a published notification. Version is a per-lobby sequence number
// assigned at publish time so clients can spot gaps after a reconnect.
type Event struct {
	Type    string `json:"type"`
	Version int    `json:"version"`
	Payload any    `json:"payload,omitempty"`
}

// View mirrors internal lobby state for tests without data races.
type View struct {
	Version    int
	NumClients int
}

type Lobby struct {
	inbox   chan Msg
	version int
	clients map[string]chan Event
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewLobby(parent context.Context) *Lobby {
	ctx, cancel := context.WithCancel(parent)
	l := &Lobby{
		inbox:   make(chan Msg, 64),
		clients: make(map[string]chan Event),
		ctx:     ctx,
		cancel:  cancel,
	}
	go l.loop()
	return l
}

func (l *Lobby) Inbox() chan<- Msg { return l.inbox }

func (l *Lobby) loop() {
	for {
		select {
		case <-l.ctx.Done():
			l.shutdown()
			return

		case m := <-l.inbox:
			switch msg := m.(type) {
			case Join:
				l.clients[msg.ClientID] = msg.Outbox

			case Leave:
				if ch, ok := l.clients[msg.ClientID]; ok {
					close(ch)
					delete(l.clients, msg.ClientID)
				}

			case Publish:
				l.version++
				ev := msg.Event
				ev.Version = l.version
				l.broadcast(ev)

			case GetView:
				msg.Reply <- View{Version: l.version, NumClients: len(l.clients)}

			case Shutdown:
				l.shutdown()
				return
			}
		}
	}
}

func (l *Lobby) shutdown() {
	for id, ch := range l.clients {
		close(ch)
		delete(l.clients, id)
	}
	l.cancel()
}

func (l *Lobby) broadcast(ev Event) {
	for id, ch := range l.clients {
		select {
		case ch <- ev:
		default:
			// Slow or full client: drop it rather than stall the draft.
			close(ch)
			delete(l.clients, id)
		}
	}
}

package session

import "context"

// Handler receives messages from a session's stream. The sender is passed
// alongside the message so one handler can serve several sessions.
type Handler func(s Session, msg Message)

// Session is a live connection to a remote terminal process. Implementations
// are shared objects: the terminal pane holding one never assumes exclusive
// ownership, and the remote side may close or reconnect independently.
type Session interface {
	// Name returns the session identifier used for display.
	Name() string

	// Ready returns a channel closed once the session is usable. Callers
	// must re-check their own state after the wait completes.
	Ready() <-chan struct{}

	// IsDisposed reports whether the session has been torn down. Subscribe
	// and Send are no-ops on a disposed session.
	IsDisposed() bool

	// Reconnect re-establishes the underlying connection.
	Reconnect(ctx context.Context) error

	// Send delivers a message to the remote side.
	Send(msg Message) error

	// Subscribe registers a handler for incoming messages and returns a
	// cancel func that removes exactly that registration.
	Subscribe(h Handler) (cancel func())
}

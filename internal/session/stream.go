package session

import "sync"

// Stream is a small fan-out of session messages to subscribed handlers.
// Session implementations embed one to satisfy Subscribe.
type Stream struct {
	mu   sync.Mutex
	next int
	subs map[int]Handler
}

// Subscribe registers h and returns a cancel func removing it.
func (st *Stream) Subscribe(h Handler) func() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.subs == nil {
		st.subs = make(map[int]Handler)
	}
	id := st.next
	st.next++
	st.subs[id] = h
	return func() {
		st.mu.Lock()
		delete(st.subs, id)
		st.mu.Unlock()
	}
}

// Publish delivers msg to every current subscriber. Handlers run on the
// caller's goroutine in unspecified order.
func (st *Stream) Publish(sender Session, msg Message) {
	st.mu.Lock()
	hs := make([]Handler, 0, len(st.subs))
	for _, h := range st.subs {
		hs = append(hs, h)
	}
	st.mu.Unlock()
	for _, h := range hs {
		h(sender, msg)
	}
}

// Len reports the number of active subscriptions.
func (st *Stream) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.subs)
}

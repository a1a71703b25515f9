package session

import (
	"context"
	"reflect"
	"testing"
)

type nopSession struct {
	Stream
	name string
}

func (n *nopSession) Name() string                    { return n.name }
func (n *nopSession) Ready() <-chan struct{}          { ch := make(chan struct{}); close(ch); return ch }
func (n *nopSession) IsDisposed() bool                { return false }
func (n *nopSession) Reconnect(context.Context) error { return nil }
func (n *nopSession) Send(Message) error              { return nil }

func TestStreamPublishReachesSubscribers(t *testing.T) {
	var st Stream
	var got []Message
	st.Subscribe(func(_ Session, msg Message) { got = append(got, msg) })

	st.Publish(nil, StdoutMessage("a"))
	st.Publish(nil, StdoutMessage("b"))
	if len(got) != 2 {
		t.Fatalf("delivered %d messages, want 2", len(got))
	}
	if text, _ := got[1].Text(); text != "b" {
		t.Fatalf("second message = %v", got[1])
	}
}

func TestStreamCancelStopsDelivery(t *testing.T) {
	var st Stream
	n := 0
	cancel := st.Subscribe(func(Session, Message) { n++ })
	if st.Len() != 1 {
		t.Fatalf("Len = %d, want 1", st.Len())
	}
	cancel()
	if st.Len() != 0 {
		t.Fatalf("Len after cancel = %d, want 0", st.Len())
	}
	st.Publish(nil, StdoutMessage("x"))
	if n != 0 {
		t.Fatalf("handler ran %d times after cancel", n)
	}
	// double cancel is harmless
	cancel()
}

func TestStreamIndependentSubscribers(t *testing.T) {
	var st Stream
	a, b := 0, 0
	cancelA := st.Subscribe(func(Session, Message) { a++ })
	st.Subscribe(func(Session, Message) { b++ })

	st.Publish(nil, StdoutMessage("x"))
	cancelA()
	st.Publish(nil, StdoutMessage("y"))

	if a != 1 || b != 2 {
		t.Fatalf("a = %d, b = %d; want 1, 2", a, b)
	}
}

func TestRegistryAddGetRemove(t *testing.T) {
	r := NewRegistry()
	s1 := &nopSession{name: "1"}
	s2 := &nopSession{name: "build"}
	r.Add(s1)
	r.Add(s2)

	if got := r.Get("1"); got != Session(s1) {
		t.Fatalf("Get(1) = %v", got)
	}
	if got := r.Names(); !reflect.DeepEqual(got, []string{"1", "build"}) {
		t.Fatalf("Names = %v", got)
	}
	r.Remove("1")
	if r.Get("1") != nil {
		t.Fatal("removed session still resolvable")
	}
	if got := r.Names(); !reflect.DeepEqual(got, []string{"build"}) {
		t.Fatalf("Names after remove = %v", got)
	}
}

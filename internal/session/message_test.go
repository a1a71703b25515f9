package session

import (
	"encoding/json"
	"testing"
)

func TestMessageText(t *testing.T) {
	if got, ok := StdinMessage("ls\r").Text(); !ok || got != "ls\r" {
		t.Fatalf("Text() = %q, %v", got, ok)
	}
	if _, ok := (Message{Type: Stdout}).Text(); ok {
		t.Fatal("empty content should not yield text")
	}
	if _, ok := (Message{Type: Stdout, Content: []any{42}}).Text(); ok {
		t.Fatal("non-string content should not yield text")
	}
}

func TestSizeMsgWireOrder(t *testing.T) {
	msg := Size{Rows: 24, Cols: 80, Height: 408, Width: 640}.Msg()
	if msg.Type != SetSize {
		t.Fatalf("type = %q, want %q", msg.Type, SetSize)
	}
	want := []any{24, 80, 408, 640}
	if len(msg.Content) != len(want) {
		t.Fatalf("content = %v", msg.Content)
	}
	for i := range want {
		if msg.Content[i] != want[i] {
			t.Fatalf("content[%d] = %v, want %v", i, msg.Content[i], want[i])
		}
	}
}

func TestSizeFromContentAcceptsJSONNumbers(t *testing.T) {
	// numbers arrive as float64 after a JSON decode
	var msg Message
	raw := `{"type":"set_size","content":[24,80,408,640]}`
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	size, ok := SizeFromContent(msg.Content)
	if !ok {
		t.Fatalf("SizeFromContent rejected %v", msg.Content)
	}
	want := Size{Rows: 24, Cols: 80, Height: 408, Width: 640}
	if size != want {
		t.Fatalf("size = %+v, want %+v", size, want)
	}
}

func TestSizeFromContentRejectsMalformed(t *testing.T) {
	cases := [][]any{
		nil,
		{1, 2, 3},
		{"a", "b", "c", "d"},
	}
	for _, c := range cases {
		if _, ok := SizeFromContent(c); ok {
			t.Fatalf("SizeFromContent accepted %v", c)
		}
	}
}

func TestMessageJSONShape(t *testing.T) {
	b, err := json.Marshal(StdoutMessage("hi"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"stdout","content":["hi"]}`
	if string(b) != want {
		t.Fatalf("json = %s, want %s", b, want)
	}
	b, err = json.Marshal(Message{Type: Disconnect})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want = `{"type":"disconnect"}`
	if string(b) != want {
		t.Fatalf("json = %s, want %s", b, want)
	}
}

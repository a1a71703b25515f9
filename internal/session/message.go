package session

// MessageType identifies the channel a session message travels on.
type MessageType string

const (
	// Stdin carries terminal input bytes toward the remote process.
	Stdin MessageType = "stdin"
	// Stdout carries terminal output bytes from the remote process.
	Stdout MessageType = "stdout"
	// SetSize carries terminal geometry: [rows, cols, pixelHeight, pixelWidth].
	SetSize MessageType = "set_size"
	// Disconnect notifies that the remote process has gone away.
	Disconnect MessageType = "disconnect"
)

// Message is the wire shape exchanged with a terminal session.
// Content is heterogeneous by type: strings for stdin/stdout, numbers for
// set_size, empty for disconnect.
type Message struct {
	Type    MessageType `json:"type"`
	Content []any       `json:"content,omitempty"`
}

// StdinMessage builds a stdin message from raw input data.
func StdinMessage(data string) Message {
	return Message{Type: Stdin, Content: []any{data}}
}

// StdoutMessage builds a stdout message from raw output data.
func StdoutMessage(data string) Message {
	return Message{Type: Stdout, Content: []any{data}}
}

// Text returns the first content element as a string. Empty or non-string
// content yields "" and ok=false; malformed messages are never an error.
func (m Message) Text() (string, bool) {
	if len(m.Content) == 0 {
		return "", false
	}
	s, ok := m.Content[0].(string)
	return s, ok
}

// Size is the geometry tuple pushed to a session. Rows and Cols mirror the
// rendering engine at the moment of computation; Height and Width are the
// content-box pixel dimensions from the same pass.
type Size struct {
	Rows   int
	Cols   int
	Height int
	Width  int
}

// Msg renders the tuple as a set_size message in wire order.
func (s Size) Msg() Message {
	return Message{Type: SetSize, Content: []any{s.Rows, s.Cols, s.Height, s.Width}}
}

// SizeFromContent decodes a set_size content list. JSON decoding produces
// float64 numbers, so both int and float64 elements are accepted.
func SizeFromContent(content []any) (Size, bool) {
	if len(content) < 4 {
		return Size{}, false
	}
	vals := make([]int, 4)
	for i := 0; i < 4; i++ {
		switch n := content[i].(type) {
		case int:
			vals[i] = n
		case float64:
			vals[i] = int(n)
		default:
			return Size{}, false
		}
	}
	return Size{Rows: vals[0], Cols: vals[1], Height: vals[2], Width: vals[3]}, true
}

package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyToPTYBytes(t *testing.T) {
	cases := []struct {
		name string
		msg  tea.KeyMsg
		want string
	}{
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, "\r"},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, "\x7f"},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, "\x1b[A"},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, "\x1b[D"},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, "\x03"},
		{"ctrl+d", tea.KeyMsg{Type: tea.KeyCtrlD}, "\x04"},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, "\t"},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, " "},
		{"delete", tea.KeyMsg{Type: tea.KeyDelete}, "\x1b[3~"},
		{"runes", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")}, "abc"},
		{"unicode", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("héllo")}, "héllo"},
	}
	for _, tc := range cases {
		if got := string(keyToPTYBytes(tc.msg)); got != tc.want {
			t.Fatalf("%s: keyToPTYBytes = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestKeyToPTYBytesUnmapped(t *testing.T) {
	if b := keyToPTYBytes(tea.KeyMsg{Type: tea.KeyCtrlQ}); b != nil {
		t.Fatalf("ctrl+q should not reach the PTY, got %q", b)
	}
	if b := keyToPTYBytes(tea.KeyMsg{Type: tea.KeyRunes}); b != nil {
		t.Fatalf("empty rune key should map to nil, got %q", b)
	}
}

func TestPickerFiltering(t *testing.T) {
	p := newPickerState()
	p.open([]string{"1", "2", "build", "deploy"})
	if len(p.filtered) != 4 {
		t.Fatalf("open should show all names, got %v", p.filtered)
	}

	p.input.SetValue("bld")
	p.refilter()
	if len(p.filtered) != 1 || p.filtered[0] != "build" {
		t.Fatalf("fuzzy filter = %v, want [build]", p.filtered)
	}
	if p.selection() != "build" {
		t.Fatalf("selection = %q", p.selection())
	}

	// no match: selection falls back to the typed name for creation
	p.input.SetValue("logs")
	p.refilter()
	if len(p.filtered) != 0 {
		t.Fatalf("filter = %v, want empty", p.filtered)
	}
	if p.selection() != "logs" {
		t.Fatalf("selection = %q, want typed name", p.selection())
	}
}

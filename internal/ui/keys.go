package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// keyToPTYBytes translates a key event into the byte sequence a terminal
// would place on the wire. Returns nil for keys that have no terminal
// representation.
func keyToPTYBytes(msg tea.KeyMsg) []byte {
	switch msg.Type {
	case tea.KeyEnter:
		return []byte("\r")
	case tea.KeyTab:
		return []byte("\t")
	case tea.KeyShiftTab:
		return []byte("\x1b[Z")
	case tea.KeyBackspace:
		// most terminals expect DEL for backspace
		return []byte("\x7f")
	case tea.KeyDelete:
		return []byte("\x1b[3~")
	case tea.KeyEscape:
		return []byte("\x1b")
	case tea.KeySpace:
		return []byte(" ")
	case tea.KeyUp:
		return []byte("\x1b[A")
	case tea.KeyDown:
		return []byte("\x1b[B")
	case tea.KeyRight:
		return []byte("\x1b[C")
	case tea.KeyLeft:
		return []byte("\x1b[D")
	case tea.KeyHome:
		return []byte("\x1b[H")
	case tea.KeyEnd:
		return []byte("\x1b[F")
	case tea.KeyPgUp:
		return []byte("\x1b[5~")
	case tea.KeyPgDown:
		return []byte("\x1b[6~")
	case tea.KeyCtrlA:
		return []byte("\x01")
	case tea.KeyCtrlB:
		return []byte("\x02")
	case tea.KeyCtrlC:
		return []byte("\x03")
	case tea.KeyCtrlD:
		return []byte("\x04")
	case tea.KeyCtrlE:
		return []byte("\x05")
	case tea.KeyCtrlF:
		return []byte("\x06")
	case tea.KeyCtrlK:
		return []byte("\x0b")
	case tea.KeyCtrlL:
		return []byte("\x0c")
	case tea.KeyCtrlU:
		return []byte("\x15")
	case tea.KeyCtrlW:
		return []byte("\x17")
	case tea.KeyCtrlZ:
		return []byte("\x1a")
	case tea.KeyRunes:
		if len(msg.Runes) > 0 {
			return []byte(string(msg.Runes))
		}
		return nil
	default:
		return nil
	}
}

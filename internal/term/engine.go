// Package term implements the rendering engine for terminal panes on top
// of the charmbracelet/x/vt emulator. It satisfies bridge.Engine: the
// emulator owns character-grid state and control-sequence interpretation;
// this wrapper adds cell metrics, auto-fit, focus and the data/title event
// surface.
package term

import (
	"strings"
	"sync"

	"github.com/charmbracelet/x/vt"

	"termctl/internal/bridge"
)

const (
	defaultCols = 80
	defaultRows = 24
)

// Options configure a new engine. Zero values fall back to the bridge
// defaults (font size 13, dark theme); CursorBlink is fixed after
// construction.
type Options struct {
	CursorBlink bool
	FontSize    int
	Theme       bridge.Theme
}

// Engine renders a character grid sized in approximate pixel space: cell
// metrics derive from the configured font size, so FitTo can translate a
// content-box pixel size into rows and columns.
type Engine struct {
	mu          sync.Mutex
	emu         *vt.Emulator
	rows        int
	cols        int
	fontSize    int
	theme       bridge.Theme
	cursorBlink bool
	focused     bool
	opened      bool
	osc         oscFilter

	nextSub int
	onData  map[int]func(string)
	onTitle map[int]func(string)
}

// NewEngine builds an unopened engine. The emulator is created when the
// bridge opens it onto a host surface.
func NewEngine(opts Options) *Engine {
	if opts.FontSize <= 0 {
		opts.FontSize = 13
	}
	if opts.Theme == "" {
		opts.Theme = bridge.ThemeDark
	}
	return &Engine{
		rows:        defaultRows,
		cols:        defaultCols,
		fontSize:    opts.FontSize,
		theme:       opts.Theme,
		cursorBlink: opts.CursorBlink,
		onData:      make(map[int]func(string)),
		onTitle:     make(map[int]func(string)),
	}
}

// cellSize returns approximate monospace cell metrics in pixels for a font
// size: glyph advance ~0.6em, line height ~1.3em.
func cellSize(fontSize int) (w, h int) {
	w = (fontSize*3 + 2) / 5
	h = fontSize + fontSize/3
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Open binds the engine to a host surface and creates the emulator at the
// current size.
func (e *Engine) Open(_ bridge.Surface) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.opened {
		return
	}
	e.emu = vt.NewEmulator(e.cols, e.rows)
	e.opened = true
}

// Write feeds remote output to the emulator verbatim, minus OSC sequences;
// OSC 0/2 titles surface as title events.
func (e *Engine) Write(data string) {
	e.mu.Lock()
	out, titles := e.osc.feed(data)
	if e.emu != nil && out != "" {
		_, _ = e.emu.Write([]byte(out))
	}
	handlers := e.titleHandlersLocked()
	e.mu.Unlock()

	for _, t := range titles {
		for _, h := range handlers {
			h(t)
		}
	}
}

// Clear resets the terminal buffer by recreating the emulator at the
// current size.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.emu != nil {
		e.emu = vt.NewEmulator(e.cols, e.rows)
	}
	e.osc = oscFilter{}
}

// Focus gives the engine keyboard focus; Render then overlays a cursor.
func (e *Engine) Focus() {
	e.mu.Lock()
	e.focused = true
	e.mu.Unlock()
}

// Blur removes keyboard focus.
func (e *Engine) Blur() {
	e.mu.Lock()
	e.focused = false
	e.mu.Unlock()
}

// Focused reports whether the engine has keyboard focus.
func (e *Engine) Focused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focused
}

// Rows returns the current row count.
func (e *Engine) Rows() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rows
}

// Cols returns the current column count.
func (e *Engine) Cols() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cols
}

// CellSize returns the pixel metrics of one character cell at the current
// font size.
func (e *Engine) CellSize() (w, h int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cellSize(e.fontSize)
}

// FitTo derives rows/cols from a content-box pixel size and resizes the
// emulator. Degenerate boxes clamp to one cell.
func (e *Engine) FitTo(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cw, ch := cellSize(e.fontSize)
	cols := width / cw
	rows := height / ch
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols == e.cols && rows == e.rows {
		return
	}
	e.cols = cols
	e.rows = rows
	if e.emu != nil {
		e.emu.Resize(cols, rows)
	}
}

// SetFontSize updates the cell metrics used by subsequent fits.
func (e *Engine) SetFontSize(size int) {
	if size <= 0 {
		return
	}
	e.mu.Lock()
	e.fontSize = size
	e.mu.Unlock()
}

// SetTheme swaps the presentation palette. The emulator's own colors are
// content-driven; the theme is read back by the pane renderer.
func (e *Engine) SetTheme(t bridge.Theme) {
	e.mu.Lock()
	e.theme = t
	e.mu.Unlock()
}

// Theme returns the active palette selection.
func (e *Engine) Theme() bridge.Theme {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.theme
}

// CursorBlink reports the construction-time cursor-blink setting.
func (e *Engine) CursorBlink() bool { return e.cursorBlink }

// OnData registers a handler for raw input and returns its cancel func.
func (e *Engine) OnData(h func(string)) func() {
	return e.subscribe(e.onData, h)
}

// OnTitle registers a handler for title changes and returns its cancel func.
func (e *Engine) OnTitle(h func(string)) func() {
	return e.subscribe(e.onTitle, h)
}

func (e *Engine) subscribe(m map[int]func(string), h func(string)) func() {
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	m[id] = h
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		delete(m, id)
		e.mu.Unlock()
	}
}

func (e *Engine) titleHandlersLocked() []func(string) {
	hs := make([]func(string), 0, len(e.onTitle))
	for _, h := range e.onTitle {
		hs = append(hs, h)
	}
	return hs
}

// Input emits raw keystroke data as a data event. The host translates key
// presses to terminal byte sequences before calling this.
func (e *Engine) Input(data string) {
	if data == "" {
		return
	}
	e.mu.Lock()
	hs := make([]func(string), 0, len(e.onData))
	for _, h := range e.onData {
		hs = append(hs, h)
	}
	e.mu.Unlock()
	for _, h := range hs {
		h(data)
	}
}

// Render returns the styled screen contents. When focused, the cell under
// the emulator cursor is drawn in inverse video.
func (e *Engine) Render() string {
	e.mu.Lock()
	emu := e.emu
	focused := e.focused
	e.mu.Unlock()
	if emu == nil {
		return ""
	}
	out := emu.Render()
	if !focused {
		return out
	}
	pos := emu.CursorPosition()
	cx, cy := pos.X, pos.Y
	if cx < 0 {
		cx = 0
	}
	if cy < 0 {
		cy = 0
	}
	lines := strings.Split(out, "\r\n")
	for len(lines) <= cy {
		lines = append(lines, "")
	}
	lines[cy] = overlayCursor(lines[cy], cx)
	return strings.Join(lines, "\r\n")
}

var _ bridge.Engine = (*Engine)(nil)

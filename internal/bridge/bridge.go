// Package bridge synchronizes a terminal rendering engine with a remote
// terminal session: it binds the session message stream to the engine,
// relays input/output between them, and keeps the remote pseudo-terminal
// geometry in step with the on-screen pane.
package bridge

import (
	"context"
	"errors"
	"sync"

	"termctl/internal/session"
)

// ErrNoSession is returned by operations that require an attached session.
var ErrNoSession = errors.New("bridge: no session attached")

// disconnectBanner is written to the engine when the remote side goes away.
// The session reference is intentionally left in place so Refresh can
// reconnect the same session object.
const disconnectBanner = "\r\n\r\n[session finished]\r\n"

// Theme selects the rendering engine color palette.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Insets are the border+padding thicknesses of a host surface, in pixels.
type Insets struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// Horizontal returns the left+right sum.
func (i Insets) Horizontal() int { return i.Left + i.Right }

// Vertical returns the top+bottom sum.
func (i Insets) Vertical() int { return i.Top + i.Bottom }

// Surface is the host box the terminal renders into. Geometry is computed
// from its content box: offset size minus box insets.
type Surface interface {
	// OffsetSize returns the outer pixel dimensions of the surface.
	OffsetSize() (width, height int)
	// BoxInsets returns the border/padding thicknesses of the surface.
	BoxInsets() Insets
}

// Engine is the character-grid terminal display the bridge drives. It owns
// rendering, cursor and control-sequence interpretation; the bridge only
// configures it, writes output bytes and reads back its row/column count.
type Engine interface {
	Open(host Surface)
	Write(data string)
	Clear()
	Focus()
	Rows() int
	Cols() int
	// FitTo derives a new row/column count from a content-box pixel size
	// using the engine's own character-cell metrics.
	FitTo(width, height int)
	SetFontSize(size int)
	SetTheme(theme Theme)
	// OnData registers a handler for raw input emitted by the engine.
	OnData(h func(data string)) (cancel func())
	// OnTitle registers a handler for title-change events.
	OnTitle(h func(title string)) (cancel func())
}

// Config holds construction-time options. Start from DefaultConfig; zero
// values for FontSize and Theme are replaced by the defaults either way.
type Config struct {
	FontSize       int    // default 13
	Theme          Theme  // default ThemeDark
	CursorBlink    bool   // default true; fixed after construction
	InitialCommand string // sent as stdin (with trailing \r) once ready
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{FontSize: 13, Theme: ThemeDark, CursorBlink: true}
}

func (c Config) withDefaults() Config {
	if c.FontSize <= 0 {
		c.FontSize = 13
	}
	if c.Theme != ThemeLight {
		c.Theme = ThemeDark
	}
	return c
}

// Bridge keeps one terminal pane synchronized with at most one session.
// Lifecycle hooks arrive from the host event loop; the only asynchronous
// path is the readiness wait after SetSession, guarded by a generation
// counter so stale continuations become no-ops.
type Bridge struct {
	mu     sync.Mutex
	engine Engine

	fontSize       int
	theme          Theme
	initialCommand string

	host     Surface
	attached bool
	hidden   bool
	opened   bool

	needsResize  bool
	offsetWidth  int
	offsetHeight int
	haveOffset   bool
	box          *Insets
	size         session.Size

	sess      session.Session
	cancelSub func()
	gen       int
	disposed  bool

	title   string
	onTitle func(string)

	requestUpdate func()

	cancelData  func()
	cancelTitle func()
}

// New builds a bridge over eng, configures the engine's font size and
// palette from cfg, and subscribes to its data/title events.
func New(cfg Config, eng Engine) *Bridge {
	cfg = cfg.withDefaults()
	b := &Bridge{
		engine:         eng,
		fontSize:       cfg.FontSize,
		theme:          cfg.Theme,
		initialCommand: cfg.InitialCommand,
		needsResize:    true,
		size:           session.Size{Rows: 1, Cols: 1, Height: 1, Width: 1},
	}
	eng.SetFontSize(cfg.FontSize)
	eng.SetTheme(cfg.Theme)
	b.cancelData = eng.OnData(b.relayInput)
	b.cancelTitle = eng.OnTitle(b.setTitle)
	return b
}

// OnTitleChanged registers the host callback invoked whenever the visible
// title changes, from either the session name or an engine title event.
func (b *Bridge) OnTitleChanged(fn func(title string)) {
	b.mu.Lock()
	b.onTitle = fn
	b.mu.Unlock()
}

// OnUpdateRequested registers the host callback used to schedule a deferred
// Update pass. Without one, the host must call Update itself.
func (b *Bridge) OnUpdateRequested(fn func()) {
	b.mu.Lock()
	b.requestUpdate = fn
	b.mu.Unlock()
}

// Session returns the currently attached session, or nil.
func (b *Bridge) Session() session.Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sess
}

// Title returns the current visible title.
func (b *Bridge) Title() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.title
}

// FontSize returns the configured terminal font size.
func (b *Bridge) FontSize() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fontSize
}

// Theme returns the active theme.
func (b *Bridge) Theme() Theme {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.theme
}

// SetSession attaches s, detaching any previous session first. Passing nil
// detaches. Subscription, title, geometry push and the initial command all
// wait for the session's readiness signal; if the bridge is disposed or the
// session superseded meanwhile, those effects never run.
func (b *Bridge) SetSession(s session.Session) {
	b.mu.Lock()
	if b.cancelSub != nil && b.sess != nil && !b.sess.IsDisposed() {
		b.cancelSub()
	}
	b.cancelSub = nil
	b.sess = s
	b.gen++
	gen := b.gen
	b.mu.Unlock()
	if s == nil {
		return
	}
	go b.bindSession(s, gen)
}

func (b *Bridge) bindSession(s session.Session, gen int) {
	<-s.Ready()

	b.mu.Lock()
	if b.disposed || b.gen != gen || b.sess != s {
		b.mu.Unlock()
		return
	}
	b.cancelSub = s.Subscribe(b.handleMessage)
	b.title = "Terminal " + s.Name()
	title, notify := b.title, b.onTitle
	_ = s.Send(b.size.Msg())
	if b.initialCommand != "" {
		_ = s.Send(session.StdinMessage(b.initialCommand + "\r"))
	}
	b.mu.Unlock()

	if notify != nil {
		notify(title)
	}
}

// Refresh reconnects the attached session and clears the terminal buffer.
// It fails with ErrNoSession when nothing is attached.
func (b *Bridge) Refresh(ctx context.Context) error {
	b.mu.Lock()
	s := b.sess
	b.mu.Unlock()
	if s == nil {
		return ErrNoSession
	}
	if err := s.Reconnect(ctx); err != nil {
		return err
	}
	b.engine.Clear()
	return nil
}

// Dispose detaches the session (without closing it remotely), releases the
// box-sizing snapshot and removes the engine event subscriptions.
func (b *Bridge) Dispose() {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return
	}
	b.disposed = true
	if b.cancelSub != nil && b.sess != nil && !b.sess.IsDisposed() {
		b.cancelSub()
	}
	b.cancelSub = nil
	b.sess = nil
	b.box = nil
	cd, ct := b.cancelData, b.cancelTitle
	b.cancelData, b.cancelTitle = nil, nil
	b.mu.Unlock()

	if cd != nil {
		cd()
	}
	if ct != nil {
		ct()
	}
}

// Attach records the host surface and requests a geometry refresh. The
// engine is opened onto the surface during the next Update pass, once only.
func (b *Bridge) Attach(host Surface) {
	b.mu.Lock()
	b.host = host
	b.attached = true
	b.mu.Unlock()
	b.scheduleUpdate()
}

// Show marks the pane visible and requests a geometry refresh, covering
// resize events that were ignored while hidden.
func (b *Bridge) Show() {
	b.mu.Lock()
	b.hidden = false
	b.mu.Unlock()
	b.scheduleUpdate()
}

// Hide marks the pane invisible; Update passes become no-ops until Show.
func (b *Bridge) Hide() {
	b.mu.Lock()
	b.hidden = true
	b.mu.Unlock()
}

// Resize records new outer pixel dimensions and marks geometry dirty. The
// recomputation is deferred to the next Update pass so bursts of resize
// events coalesce into a single set_size message.
func (b *Bridge) Resize(width, height int) {
	b.mu.Lock()
	b.offsetWidth = width
	b.offsetHeight = height
	b.haveOffset = true
	b.needsResize = true
	b.mu.Unlock()
	b.scheduleUpdate()
}

// FitRequest drops the recorded dimensions so the next recomputation
// measures the host surface afresh.
func (b *Bridge) FitRequest() {
	b.mu.Lock()
	b.haveOffset = false
	b.needsResize = true
	b.mu.Unlock()
	b.scheduleUpdate()
}

// Activate forwards focus to the rendering engine.
func (b *Bridge) Activate() {
	b.engine.Focus()
}

// Update runs one deferred update pass: it executes only while attached and
// visible, opens the engine on first use, and recomputes geometry when the
// dirty flag is set.
func (b *Bridge) Update() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disposed || !b.attached || b.hidden || b.host == nil {
		return
	}
	if !b.opened {
		b.engine.Open(b.host)
		b.opened = true
	}
	if b.needsResize {
		b.recomputeGeometry()
	}
}

// recomputeGeometry derives the content box, refits the engine and pushes
// the resulting size tuple. Row/column and pixel dimensions always come
// from this single pass so the tuple is never torn. Caller holds b.mu.
func (b *Bridge) recomputeGeometry() {
	if !b.haveOffset {
		w, h := b.host.OffsetSize()
		b.offsetWidth = w
		b.offsetHeight = h
		b.haveOffset = true
	}
	box := b.host.BoxInsets()
	b.box = &box
	width := b.offsetWidth - box.Horizontal()
	height := b.offsetHeight - box.Vertical()
	b.engine.FitTo(width, height)
	b.size = session.Size{
		Rows:   b.engine.Rows(),
		Cols:   b.engine.Cols(),
		Height: height,
		Width:  width,
	}
	if b.sess != nil {
		_ = b.sess.Send(b.size.Msg())
	}
	b.needsResize = false
}

// SetFontSize changes the terminal font size. Character-cell metrics depend
// on it, so geometry is marked dirty and an update pass is requested.
func (b *Bridge) SetFontSize(size int) {
	b.mu.Lock()
	if size == b.fontSize {
		b.mu.Unlock()
		return
	}
	b.fontSize = size
	b.needsResize = true
	b.mu.Unlock()
	b.engine.SetFontSize(size)
	b.scheduleUpdate()
}

// SetTheme swaps the engine palette immediately. No geometry effect.
func (b *Bridge) SetTheme(t Theme) {
	b.mu.Lock()
	b.theme = t
	b.mu.Unlock()
	b.engine.SetTheme(t)
}

func (b *Bridge) scheduleUpdate() {
	b.mu.Lock()
	fn := b.requestUpdate
	b.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// relayInput forwards raw engine input to the session as stdin. With no
// session attached, input is dropped without buffering.
func (b *Bridge) relayInput(data string) {
	b.mu.Lock()
	s := b.sess
	b.mu.Unlock()
	if s == nil {
		return
	}
	_ = s.Send(session.StdinMessage(data))
}

// setTitle handles engine title events; these apply regardless of session
// state.
func (b *Bridge) setTitle(title string) {
	b.mu.Lock()
	b.title = title
	notify := b.onTitle
	b.mu.Unlock()
	if notify != nil {
		notify(title)
	}
}

// handleMessage dispatches one incoming session message. Unknown types and
// empty stdout content are ignored; disconnect leaves the session reference
// in place.
func (b *Bridge) handleMessage(_ session.Session, msg session.Message) {
	switch msg.Type {
	case session.Stdout:
		if text, ok := msg.Text(); ok && text != "" {
			b.engine.Write(text)
		}
	case session.Disconnect:
		b.engine.Write(disconnectBanner)
	}
}

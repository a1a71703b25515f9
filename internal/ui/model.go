package ui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"termctl/internal/bridge"
	"termctl/internal/config"
	"termctl/internal/localterm"
	"termctl/internal/remote"
	"termctl/internal/session"
	"termctl/internal/term"
)

// Options configures the TUI at startup.
type Options struct {
	// Settings seeds font size, theme, cursor blink and initial command.
	Settings config.Settings
	// Server, when set, connects panes to a remote session host instead of
	// spawning local shells.
	Server string
	// SessionName picks the session to bind first. Empty means "1".
	SessionName string
}

// Model for the terminal pane TUI.
type model struct {
	opts     Options
	settings config.Settings

	engine   *term.Engine
	bridge   *bridge.Bridge
	registry *session.Registry
	surface  *paneSurface

	width  int
	height int
	ready  bool // first WindowSizeMsg seen

	// dirty is poked by bridge callbacks; a command relays it into tea.
	dirty chan struct{}
	// settingsCh receives live settings reloads from the config watcher.
	settingsCh chan config.Settings
	stopWatch  func()

	spinner    spinner.Model
	connecting bool

	picker pickerState

	helpVisible bool
	helpCache   string
	helpWidth   int

	notice      string
	noticeUntil time.Time

	quitting bool
}

func initialModel(opts Options) *model {
	s := opts.Settings
	theme := bridge.ThemeDark
	if s.Theme == "light" {
		theme = bridge.ThemeLight
	}
	UseTheme(theme)

	eng := term.NewEngine(term.Options{
		CursorBlink: s.CursorBlink,
		FontSize:    s.FontSize,
		Theme:       theme,
	})
	br := bridge.New(bridge.Config{
		FontSize:       s.FontSize,
		Theme:          theme,
		CursorBlink:    s.CursorBlink,
		InitialCommand: s.InitialCommand,
	}, eng)

	m := &model{
		opts:       opts,
		settings:   s,
		engine:     eng,
		bridge:     br,
		registry:   session.NewRegistry(),
		surface:    &paneSurface{},
		dirty:      make(chan struct{}, 1),
		settingsCh: make(chan config.Settings, 1),
		connecting: true,
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m.spinner = sp

	m.picker = newPickerState()

	poke := func() {
		select {
		case m.dirty <- struct{}{}:
		default:
		}
	}
	br.OnUpdateRequested(poke)
	br.OnTitleChanged(func(string) { poke() })

	name := opts.SessionName
	if name == "" {
		name = "1"
	}
	m.bindSession(m.openSession(name))

	if stop, err := config.Watch(func(next config.Settings) {
		select {
		case m.settingsCh <- next:
		default:
		}
	}); err == nil {
		m.stopWatch = stop
	}

	br.Attach(m.surface)
	br.Show()
	return m
}

// InitialModel builds the TUI model for the app entry point.
func InitialModel(opts Options) tea.Model { return initialModel(opts) }

// openSession starts or dials the named session and registers it.
func (m *model) openSession(name string) session.Session {
	if existing := m.registry.Get(name); existing != nil && !existing.IsDisposed() {
		return existing
	}
	var s session.Session
	if m.opts.Server != "" {
		s = remote.Dial(context.Background(), remote.URL(m.opts.Server, name), name)
	} else {
		s = localterm.New(name)
	}
	m.registry.Add(s)
	return s
}

// bindSession points the pane at s.
func (m *model) bindSession(s session.Session) {
	m.connecting = true
	m.bridge.SetSession(s)
}

// nextSessionName returns the smallest numeric name not yet registered.
func (m *model) nextSessionName() string {
	used := make(map[string]bool)
	for _, n := range m.registry.Names() {
		used[n] = true
	}
	for i := 1; ; i++ {
		name := strconv.Itoa(i)
		if !used[name] {
			return name
		}
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		renderTickCmd(),
		waitDirtyCmd(m.dirty),
		waitSettingsCmd(m.settingsCh),
	)
}

// sessionReady reports whether s has finished connecting, without blocking.
func sessionReady(s session.Session) bool {
	if s == nil {
		return false
	}
	select {
	case <-s.Ready():
		return true
	default:
		return false
	}
}

// shutdown releases everything the model owns.
func (m *model) shutdown() {
	if m.stopWatch != nil {
		m.stopWatch()
	}
	m.bridge.Dispose()
	for _, name := range m.registry.Names() {
		if s := m.registry.Get(name); s != nil {
			if c, ok := s.(interface{ Close() error }); ok {
				_ = c.Close()
			}
		}
	}
}

// sizeChip formats the grid dimensions for the status bar.
func (m *model) sizeChip() string {
	return fmt.Sprintf("%d×%d", m.engine.Cols(), m.engine.Rows())
}

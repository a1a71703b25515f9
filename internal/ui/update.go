package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"termctl/internal/bridge"
	"termctl/internal/config"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.helpCache = "" // re-wrap on next help view
		m.remeasure()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if zone.Get("term.pane").InBounds(msg) {
				m.bridge.Activate()
			}
		}
		return m, nil

	case renderTickMsg:
		m.connecting = !sessionReady(m.bridge.Session())
		m.bridge.Update()
		if m.notice != "" && time.Now().After(m.noticeUntil) {
			m.notice = ""
		}
		return m, renderTickCmd()

	case paneDirtyMsg:
		m.bridge.Update()
		return m, waitDirtyCmd(m.dirty)

	case settingsChangedMsg:
		m.applySettings(msg.settings)
		return m, waitSettingsCmd(m.settingsCh)

	case refreshDoneMsg:
		if msg.err != nil {
			m.setNotice("reconnect failed: " + msg.err.Error())
		} else {
			m.setNotice("reconnected")
		}
		return m, nil

	case noticeMsg:
		m.setNotice(string(msg))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picker.visible {
		switch msg.Type {
		case tea.KeyEscape:
			m.picker.close()
			return m, nil
		case tea.KeyEnter:
			name := m.picker.selection()
			m.picker.close()
			if name != "" {
				m.bindSession(m.openSession(name))
			}
			return m, nil
		}
		return m, m.picker.handleKey(msg)
	}

	if m.helpVisible {
		m.helpVisible = false
		return m, nil
	}

	switch msg.Type {
	case tea.KeyCtrlQ:
		m.quitting = true
		m.shutdown()
		return m, tea.Quit
	case tea.KeyCtrlP:
		m.picker.open(m.registry.Names())
		return m, nil
	case tea.KeyCtrlT:
		m.bindSession(m.openSession(m.nextSessionName()))
		return m, nil
	case tea.KeyCtrlR:
		m.setNotice("reconnecting…")
		return m, m.refreshCmd()
	case tea.KeyCtrlG:
		m.helpVisible = true
		return m, nil
	}

	if b := keyToPTYBytes(msg); b != nil {
		m.engine.Input(string(b))
	}
	return m, nil
}

// remeasure recomputes the surface's pixel footprint from the current
// window and cell metrics, then tells the bridge.
func (m *model) remeasure() {
	if !m.ready {
		return
	}
	cw, ch := m.engine.CellSize()
	paneRows := m.height - 1 // one row reserved for the status bar
	if paneRows < 1 {
		paneRows = 1
	}
	m.surface.measure(m.width, paneRows, cw, ch)
	w, h := m.surface.OffsetSize()
	m.bridge.Resize(w, h)
}

func (m *model) applySettings(s config.Settings) {
	m.settings = s
	theme := bridge.ThemeDark
	if s.Theme == "light" {
		theme = bridge.ThemeLight
	}
	UseTheme(theme)
	m.bridge.SetTheme(theme)
	m.bridge.SetFontSize(s.FontSize)
	m.helpCache = ""
	// cell metrics may have changed with the font
	m.remeasure()
}

func (m *model) setNotice(text string) {
	m.notice = text
	m.noticeUntil = time.Now().Add(4 * time.Second)
}

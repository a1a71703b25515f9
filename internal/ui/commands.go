package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"termctl/internal/config"
)

// renderInterval paces pane redraws. Fast enough for interactive shells,
// slow enough to stay cheap when idle.
const renderInterval = 50 * time.Millisecond

// Commands

func renderTickCmd() tea.Cmd {
	return tea.Tick(renderInterval, func(t time.Time) tea.Msg {
		return renderTickMsg(t)
	})
}

// waitDirtyCmd relays bridge update requests into the tea loop.
func waitDirtyCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return paneDirtyMsg{}
	}
}

// waitSettingsCmd relays config watcher reloads into the tea loop.
func waitSettingsCmd(ch <-chan config.Settings) tea.Cmd {
	return func() tea.Msg {
		return settingsChangedMsg{settings: <-ch}
	}
}

// refreshCmd reconnects the bound session.
func (m *model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return refreshDoneMsg{err: m.bridge.Refresh(ctx)}
	}
}

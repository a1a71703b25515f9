package ui

import (
	"time"

	"termctl/internal/config"
)

// Bubble Tea messages

// renderTickMsg drives the pane redraw loop.
type renderTickMsg time.Time

// paneDirtyMsg arrives when the bridge asks for an update pass or the
// session title changes.
type paneDirtyMsg struct{}

// settingsChangedMsg carries settings reloaded from disk.
type settingsChangedMsg struct{ settings config.Settings }

// refreshDoneMsg reports the outcome of a session reconnect.
type refreshDoneMsg struct{ err error }

// noticeMsg shows a transient line in the status bar.
type noticeMsg string

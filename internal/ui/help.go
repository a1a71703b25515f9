package ui

import (
	"github.com/charmbracelet/glamour"

	"termctl/internal/bridge"
)

const helpMarkdown = `# termctl

A terminal pane bound to a local shell or a remote session server.

## Keys

| Key | Action |
| --- | --- |
| ` + "`ctrl+p`" + ` | open the session switcher |
| ` + "`ctrl+t`" + ` | start a new session |
| ` + "`ctrl+r`" + ` | reconnect the current session |
| ` + "`ctrl+g`" + ` | toggle this help |
| ` + "`ctrl+q`" + ` | quit |

Everything else goes straight to the shell.

## Sessions

Local sessions run your login shell on a PTY. With ` + "`--server`" + ` the
pane attaches to a session host over WebSocket; sessions survive a
detached pane and can be picked up again by name.
`

// renderHelp renders the help markdown at the given wrap width, themed to
// match the pane.
func renderHelp(width int, theme bridge.Theme) string {
	const gutter = 2
	wrap := width - gutter
	if wrap < 10 {
		wrap = 10
	}
	style := "dark"
	if theme == bridge.ThemeLight {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}

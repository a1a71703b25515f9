package ui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	appver "termctl/internal/version"
)

func (m *model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}
	if !m.ready {
		return "  " + m.spinner.View() + " starting…\n"
	}

	if m.helpVisible {
		if m.helpCache == "" || m.helpWidth != m.width {
			m.helpCache = renderHelp(m.width, m.bridge.Theme())
			m.helpWidth = m.width
		}
		return m.helpCache + "\n  any key to close\n"
	}

	b := &strings.Builder{}
	if m.picker.visible {
		b.WriteString(m.picker.view(m.width, m.currentName()))
	}

	pane := m.renderPane()
	b.WriteString(zone.Mark("term.pane", pane))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return zone.Scan(b.String())
}

func (m *model) renderPane() string {
	st := paneStyle()
	innerW := m.width - st.GetHorizontalFrameSize()
	innerH := m.height - 1 - st.GetVerticalFrameSize()
	if m.picker.visible {
		// the overlay eats rows at the top; keep the box inside the screen
		innerH -= strings.Count(m.picker.view(m.width, m.currentName()), "\n")
	}
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	content := m.engine.Render()
	if m.connecting {
		content = m.spinner.View() + " connecting to session " + m.currentName() + "…"
	}
	return st.Width(innerW).Height(innerH).Render(content)
}

func (m *model) currentName() string {
	if s := m.bridge.Session(); s != nil {
		return s.Name()
	}
	return ""
}

// renderStatusBar draws one line: title on the left, session facts on the right.
func (m *model) renderStatusBar() string {
	left := m.bridge.Title()
	if left == "" {
		left = "termctl"
	}
	if m.notice != "" {
		left = m.notice
	}

	chips := []string{
		ChipKeyStyle().Render(m.currentName()),
		ChipStyle(Vitesse.Blue).Render(m.sizeChip()),
		ChipStyle(Vitesse.Cyan).Render("v" + appver.AppVersion),
	}
	right := strings.Join(chips, "")

	base := StatusBarBase()
	lw := xansi.StringWidth(left)
	rw := xansi.StringWidth(right)
	pad := m.width - lw - rw - 2
	if pad < 1 {
		maxL := m.width - rw - 3
		if maxL < 0 {
			maxL = 0
		}
		left = xansi.Truncate(left, maxL, "…")
		lw = xansi.StringWidth(left)
		pad = m.width - lw - rw - 2
		if pad < 0 {
			pad = 0
		}
	}
	line := " " + left + strings.Repeat(" ", pad) + right + " "
	return base.Render(line)
}

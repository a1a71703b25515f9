package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"
)

// pickerState drives the session switcher overlay.
type pickerState struct {
	visible  bool
	input    textinput.Model
	names    []string
	filtered []string
	index    int
}

func newPickerState() pickerState {
	ti := textinput.New()
	ti.Prompt = " › "
	ti.Placeholder = "session name"
	ti.CharLimit = 64
	return pickerState{input: ti}
}

func (p *pickerState) open(names []string) {
	p.visible = true
	p.names = names
	p.input.SetValue("")
	p.input.Focus()
	p.refilter()
}

func (p *pickerState) close() {
	p.visible = false
	p.input.Blur()
}

// refilter narrows names by fuzzy match against the input value.
func (p *pickerState) refilter() {
	q := strings.TrimSpace(p.input.Value())
	if q == "" {
		p.filtered = p.names
	} else {
		matches := fuzzy.Find(q, p.names)
		p.filtered = make([]string, 0, len(matches))
		for _, mt := range matches {
			p.filtered = append(p.filtered, mt.Str)
		}
	}
	if p.index >= len(p.filtered) {
		p.index = 0
	}
}

// selection returns the chosen session name. A query matching nothing means
// "create a session with this name".
func (p *pickerState) selection() string {
	if len(p.filtered) > 0 && p.index < len(p.filtered) {
		return p.filtered[p.index]
	}
	return strings.TrimSpace(p.input.Value())
}

func (p *pickerState) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyUp:
		if p.index > 0 {
			p.index--
		}
		return nil
	case tea.KeyDown:
		if p.index < len(p.filtered)-1 {
			p.index++
		}
		return nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.refilter()
	return cmd
}

// view draws the switcher overlay at the top of the screen.
func (p *pickerState) view(width int, current string) string {
	inner := width - 2
	if inner < 20 {
		inner = 20
	}
	border := BorderStyle()
	fillBG := FillBG()
	text := lipgloss.NewStyle().Foreground(Vitesse.Text)
	hl := AccentBold().Render
	dim := lipgloss.NewStyle().Foreground(Vitesse.Muted).Render

	var b strings.Builder
	b.WriteString(border.Render("╭"+strings.Repeat("─", inner)+"╮") + "\n")
	in := text.Render(p.input.View())
	if xansi.StringWidth(in) > inner {
		in = xansi.Truncate(in, inner, "")
	}
	b.WriteString(border.Render("│"))
	b.WriteString(fillBG.Width(inner).Render(in))
	b.WriteString(border.Render("│\n"))

	items := p.filtered
	sel := p.index
	maxItems := 10
	if len(items) > maxItems {
		items = items[:maxItems]
		if sel >= maxItems {
			sel = maxItems - 1
		}
	}
	if len(items) == 0 {
		line := "  Enter starts a new session"
		if q := strings.TrimSpace(p.input.Value()); q != "" {
			line = fmt.Sprintf("  Enter starts session %q", q)
		}
		if xansi.StringWidth(line) > inner {
			line = xansi.Truncate(line, inner, "")
		}
		b.WriteString(border.Render("│"))
		b.WriteString(fillBG.Width(inner).Render(dim(line)))
		b.WriteString(border.Render("│\n"))
	}
	for i, name := range items {
		label := name
		if name == current {
			label += "  (current)"
		}
		line := "  " + label
		if xansi.StringWidth(line) > inner {
			line = xansi.Truncate(line, inner, "")
		}
		if i == sel {
			line = hl(line)
		}
		b.WriteString(border.Render("│"))
		b.WriteString(fillBG.Width(inner).Render(line))
		b.WriteString(border.Render("│\n"))
	}
	b.WriteString(border.Render("╰"+strings.Repeat("─", inner)+"╯") + "\n")
	b.WriteString("  ↑/↓ select · Enter switch/create · Esc close\n")
	return b.String()
}

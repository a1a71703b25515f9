package ui

import (
	"github.com/charmbracelet/lipgloss"

	"termctl/internal/bridge"
)

// paneStyle frames the terminal grid. The border and padding become the
// surface's box insets so the fitted grid never collides with the chrome.
func paneStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Vitesse.Border).
		Padding(0, 1)
}

// paneSurface measures the screen region granted to the terminal pane, in
// pixels derived from the engine's cell metrics.
type paneSurface struct {
	width  int
	height int
	insets bridge.Insets
}

// measure converts the pane's cell footprint to pixel dimensions. widthCells
// and heightCells cover the whole pane including chrome; cellW and cellH are
// the engine's current cell metrics.
func (p *paneSurface) measure(widthCells, heightCells, cellW, cellH int) {
	st := paneStyle()
	p.insets = bridge.Insets{
		Top:    st.GetBorderTopSize() * cellH,
		Bottom: st.GetBorderBottomSize() * cellH,
		Left:   (st.GetBorderLeftSize() + st.GetPaddingLeft()) * cellW,
		Right:  (st.GetBorderRightSize() + st.GetPaddingRight()) * cellW,
	}
	p.width = widthCells * cellW
	p.height = heightCells * cellH
}

func (p *paneSurface) OffsetSize() (width, height int) { return p.width, p.height }

func (p *paneSurface) BoxInsets() bridge.Insets { return p.insets }

var _ bridge.Surface = (*paneSurface)(nil)

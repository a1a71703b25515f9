package term

import (
	"strings"
	"testing"

	"termctl/internal/bridge"
)

func TestCellSize(t *testing.T) {
	cases := []struct {
		font       int
		wantW      int
		wantH      int
	}{
		{13, 8, 17},
		{16, 10, 21},
		{1, 1, 1},
	}
	for _, c := range cases {
		w, h := cellSize(c.font)
		if w != c.wantW || h != c.wantH {
			t.Fatalf("cellSize(%d) = %dx%d, want %dx%d", c.font, w, h, c.wantW, c.wantH)
		}
	}
}

func TestFitTo(t *testing.T) {
	e := NewEngine(Options{FontSize: 13, CursorBlink: true})
	// 13px font -> 8x17 cells
	e.FitTo(800, 340)
	if e.Cols() != 100 || e.Rows() != 20 {
		t.Fatalf("fit = %dx%d, want 100x20", e.Cols(), e.Rows())
	}
	// Degenerate boxes clamp to a single cell.
	e.FitTo(3, 3)
	if e.Cols() != 1 || e.Rows() != 1 {
		t.Fatalf("degenerate fit = %dx%d, want 1x1", e.Cols(), e.Rows())
	}
}

func TestFontSizeAffectsFit(t *testing.T) {
	e := NewEngine(Options{FontSize: 13})
	e.FitTo(800, 340)
	cols := e.Cols()
	e.SetFontSize(26) // 16x34 cells
	e.FitTo(800, 340)
	if e.Cols() >= cols {
		t.Fatalf("larger font should yield fewer columns: %d -> %d", cols, e.Cols())
	}
	if e.Cols() != 50 || e.Rows() != 10 {
		t.Fatalf("fit at font 26 = %dx%d, want 50x10", e.Cols(), e.Rows())
	}
}

func TestWriteAndRender(t *testing.T) {
	e := NewEngine(Options{})
	e.Open(nil)
	e.Write("hello")
	if out := e.Render(); !strings.Contains(out, "hello") {
		t.Fatalf("render missing written text")
	}
	e.Clear()
	if out := e.Render(); strings.Contains(out, "hello") {
		t.Fatalf("render still shows text after clear")
	}
}

func TestTitleEvents(t *testing.T) {
	e := NewEngine(Options{})
	e.Open(nil)
	var titles []string
	cancel := e.OnTitle(func(s string) { titles = append(titles, s) })

	e.Write("\x1b]0;first\x07plain")
	// split across chunks, ST terminated
	e.Write("\x1b]2;sec")
	e.Write("ond\x1b\\tail")

	if len(titles) != 2 || titles[0] != "first" || titles[1] != "second" {
		t.Fatalf("titles = %v, want [first second]", titles)
	}
	out := e.Render()
	if strings.Contains(out, "first") || strings.Contains(out, "second") {
		t.Fatalf("OSC payload leaked into the grid: %q", out)
	}
	if !strings.Contains(out, "plain") || !strings.Contains(out, "tail") {
		t.Fatalf("surrounding text lost: %q", out)
	}

	cancel()
	e.Write("\x1b]0;third\x07")
	if len(titles) != 2 {
		t.Fatalf("handler fired after cancel: %v", titles)
	}
}

func TestNonTitleOSCDropped(t *testing.T) {
	e := NewEngine(Options{})
	e.Open(nil)
	var titles []string
	e.OnTitle(func(s string) { titles = append(titles, s) })
	e.Write("\x1b]11;#181818\x07ok")
	if len(titles) != 0 {
		t.Fatalf("OSC 11 reported as title: %v", titles)
	}
	if out := e.Render(); !strings.Contains(out, "ok") {
		t.Fatalf("text after OSC 11 lost")
	}
}

func TestInputEvents(t *testing.T) {
	e := NewEngine(Options{})
	var got []string
	cancel := e.OnData(func(s string) { got = append(got, s) })
	e.Input("a")
	e.Input("") // ignored
	e.Input("\r")
	cancel()
	e.Input("b")
	if len(got) != 2 || got[0] != "a" || got[1] != "\r" {
		t.Fatalf("data events = %q", got)
	}
}

func TestCursorOverlay(t *testing.T) {
	if got := overlayCursor("abc", 1); got != "a\x1b[7mb\x1b[27mc" {
		t.Fatalf("overlay = %q", got)
	}
	// past end: pad and invert a space
	if got := overlayCursor("a", 3); got != "a  \x1b[7m \x1b[27m" {
		t.Fatalf("overlay past end = %q", got)
	}
	// escape sequences do not consume columns
	line := "\x1b[31mab\x1b[0m"
	if got := overlayCursor(line, 0); got != "\x1b[31m\x1b[7ma\x1b[27mb\x1b[0m" {
		t.Fatalf("overlay with SGR = %q", got)
	}
}

func TestEngineSatisfiesBridgeContract(t *testing.T) {
	var _ bridge.Engine = NewEngine(Options{})
	e := NewEngine(Options{Theme: bridge.ThemeLight})
	if e.Theme() != bridge.ThemeLight {
		t.Fatalf("theme = %q", e.Theme())
	}
	e.SetTheme(bridge.ThemeDark)
	if e.Theme() != bridge.ThemeDark {
		t.Fatalf("theme after set = %q", e.Theme())
	}
}

package term

import (
	"strings"
	"unicode/utf8"

	runewidth "github.com/mattn/go-runewidth"
)

// overlayCursor returns line with an inverse-video cursor at visible column
// col. ANSI escape sequences are copied through without affecting the
// column count; wide runes advance it by their display width. A cursor past
// the end of the line becomes an inverse space after padding.
func overlayCursor(line string, col int) string {
	if col < 0 {
		col = 0
	}
	var b strings.Builder
	b.Grow(len(line) + 16)
	visible := 0
	placed := false

	i := 0
	for i < len(line) {
		if line[i] == 0x1b {
			j := skipEscape(line, i)
			b.WriteString(line[i:j])
			i = j
			continue
		}
		r, sz := utf8.DecodeRuneInString(line[i:])
		w := runewidth.RuneWidth(r)
		if !placed && visible == col {
			b.WriteString("\x1b[7m")
			b.WriteString(line[i : i+sz])
			b.WriteString("\x1b[27m")
			placed = true
		} else {
			b.WriteString(line[i : i+sz])
		}
		visible += w
		i += sz
	}

	if !placed {
		for visible < col {
			b.WriteByte(' ')
			visible++
		}
		b.WriteString("\x1b[7m \x1b[27m")
	}
	return b.String()
}

// skipEscape returns the index just past the escape sequence starting at i.
func skipEscape(s string, i int) int {
	j := i + 1
	if j >= len(s) {
		return len(s)
	}
	switch s[j] {
	case '[': // CSI: final byte in 0x40..0x7e
		j++
		for j < len(s) {
			if s[j] >= 0x40 && s[j] <= 0x7e {
				return j + 1
			}
			j++
		}
		return len(s)
	case ']': // OSC: BEL or ST terminated
		j++
		for j < len(s) {
			if s[j] == 0x07 {
				return j + 1
			}
			if s[j] == 0x1b && j+1 < len(s) && s[j+1] == '\\' {
				return j + 2
			}
			j++
		}
		return len(s)
	default:
		return j + 1
	}
}

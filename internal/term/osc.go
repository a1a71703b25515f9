package term

import "strings"

// oscFilter strips OSC (Operating System Control) sequences from terminal
// output before it reaches the emulator. Shells emit OSC 0/2 to set window
// titles and OSC 10/11 to recolor the host terminal; rendering those inside
// a pane would leak into the real terminal. Title payloads are extracted
// and reported. Sequences split across read chunks are carried over.
type oscFilter struct {
	pending []byte
}

// feed consumes one output chunk and returns the cleaned text plus any
// complete title payloads seen.
func (f *oscFilter) feed(data string) (out string, titles []string) {
	var b strings.Builder
	b.Grow(len(data))

	buf := data
	if len(f.pending) > 0 {
		buf = string(f.pending) + data
		f.pending = nil
	}

	i := 0
	for i < len(buf) {
		c := buf[i]
		if c != 0x1b || i+1 >= len(buf) || buf[i+1] != ']' {
			if c == 0x1b && i+1 == len(buf) {
				// lone trailing ESC: may begin an OSC in the next chunk
				f.pending = []byte{0x1b}
				break
			}
			b.WriteByte(c)
			i++
			continue
		}
		// OSC sequence: ESC ] ... terminated by BEL or ST (ESC \)
		j := i + 2
		end := -1
		for j < len(buf) {
			if buf[j] == 0x07 {
				end = j
				break
			}
			if buf[j] == 0x1b && j+1 < len(buf) && buf[j+1] == '\\' {
				end = j + 1
				break
			}
			j++
		}
		if end < 0 {
			// incomplete; stash the tail for the next chunk
			f.pending = append(f.pending, buf[i:]...)
			break
		}
		body := buf[i+2 : end]
		if strings.HasSuffix(body, "\x1b") {
			body = body[:len(body)-1] // ST terminator
		}
		if t, ok := titleFromOSC(body); ok {
			titles = append(titles, t)
		}
		i = end + 1
	}
	return b.String(), titles
}

// titleFromOSC extracts the title payload of an OSC 0 or OSC 2 body.
func titleFromOSC(body string) (string, bool) {
	sep := strings.IndexByte(body, ';')
	if sep < 0 {
		return "", false
	}
	switch body[:sep] {
	case "0", "2":
		return body[sep+1:], true
	}
	return "", false
}

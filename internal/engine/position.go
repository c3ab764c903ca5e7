package engine

import "io"

// compactThreshold bounds how many consumed bytes are retained before the
// tracker drops them.
const compactThreshold = 4 << 10

// Tracker follows a decoder reading from the same stream and computes the
// line/column of each token it returns. The decoder reads through the
// io.Reader returned by NewTracker; the tracker keeps the bytes it has not
// yet walked past.
type Tracker struct {
	buf  []byte
	base int64 // absolute offset of buf[0]
	pos  int64 // absolute offset of the cursor
	line int
	col  int
}

// NewTracker returns a tracker and the reader the decoder must consume.
func NewTracker(r io.Reader) (*Tracker, io.Reader) {
	t := &Tracker{line: 1}
	return t, io.TeeReader(r, t)
}

// Write retains bytes read by the decoder.
func (t *Tracker) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	return len(p), nil
}

// Advance walks past separators and the next token in the retained input and
// returns the token's start offset, line and column.
func (t *Tracker) Advance() (offset int64, line, column int) {
	t.skipSeparators()
	offset, line, column = t.pos, t.line, t.col+1
	i := int(t.pos - t.base)
	if i >= len(t.buf) {
		return offset, line, column
	}
	n := tokenLen(t.buf[i:])
	t.consume(n)
	t.compact()
	return offset, line, column
}

// Position returns the line and column of the last consumed character after
// skipping trailing whitespace. Before any input it is 1:0.
func (t *Tracker) Position() (line, column int) {
	t.skipSeparators()
	return t.line, t.col
}

// Offset returns the absolute byte offset of the cursor.
func (t *Tracker) Offset() int64 { return t.pos }

func (t *Tracker) skipSeparators() {
	i := int(t.pos - t.base)
	n := 0
	for i+n < len(t.buf) {
		switch t.buf[i+n] {
		case ' ', '\t', '\r', '\n', ',', ':':
			n++
			continue
		}
		break
	}
	t.consume(n)
}

func (t *Tracker) consume(n int) {
	i := int(t.pos - t.base)
	for _, b := range t.buf[i : i+n] {
		switch {
		case b == '\n':
			t.line++
			t.col = 0
		case b&0xC0 != 0x80: // UTF-8 continuation bytes share their rune's column
			t.col++
		}
	}
	t.pos += int64(n)
}

func (t *Tracker) compact() {
	i := int(t.pos - t.base)
	if i < compactThreshold {
		return
	}
	t.buf = append(t.buf[:0], t.buf[i:]...)
	t.base = t.pos
}

// tokenLen returns the raw length of the JSON token at the start of b. It
// stops at the end of b for truncated input.
func tokenLen(b []byte) int {
	switch b[0] {
	case '{', '}', '[', ']':
		return 1
	case '"':
		i := 1
		for i < len(b) {
			switch b[i] {
			case '\\':
				i += 2
				continue
			case '"':
				return i + 1
			}
			i++
		}
		return len(b)
	case 't', 'n':
		return min(4, len(b))
	case 'f':
		return min(5, len(b))
	}
	i := 0
	for i < len(b) {
		switch c := b[i]; {
		case c >= '0' && c <= '9', c == '-', c == '+', c == '.', c == 'e', c == 'E':
			i++
			continue
		}
		break
	}
	if i == 0 {
		return 1
	}
	return i
}

// Package json provides a token source backed by encoding/json.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	eng "github.com/reoring/restcodec/internal/engine"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type jsonSource struct {
	dec     *json.Decoder
	tracker *eng.Tracker
	stack   []frame
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	tracker, tee := eng.NewTracker(r)
	dec := json.NewDecoder(tee)
	dec.UseNumber()
	return &jsonSource{dec: dec, tracker: tracker}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}
	off, line, col := s.tracker.Advance()
	t := eng.Token{Offset: off, Line: line, Column: col}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			t.Kind = eng.KindBeginObject
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			t.Kind = eng.KindBeginArray
		case '}', ']':
			if n := len(s.stack); n > 0 {
				s.stack = s.stack[:n-1]
			}
			s.valueDone()
			t.Kind = eng.KindEndObject
			if v == ']' {
				t.Kind = eng.KindEndArray
			}
		}
		return t, nil
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				t.Kind, t.String = eng.KindKey, v
				return t, nil
			}
		}
		s.valueDone()
		t.Kind, t.String = eng.KindString, v
	case bool:
		s.valueDone()
		t.Kind, t.Bool = eng.KindBool, v
	case json.Number:
		s.valueDone()
		t.Kind, t.Number = eng.KindNumber, string(v)
	case float64:
		s.valueDone()
		t.Kind, t.Number = eng.KindNumber, formatFloat(v)
	default:
		s.valueDone()
		t.Kind = eng.KindNull
	}
	return t, nil
}

func (s *jsonSource) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *jsonSource) Location() int64 { return s.tracker.Offset() }

func (s *jsonSource) Position() (line, column int) { return s.tracker.Position() }

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

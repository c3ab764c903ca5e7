// Package gojson provides the default token source, backed by
// github.com/goccy/go-json.
package gojson

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

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

type source struct {
	dec     *j.Decoder
	tracker *eng.Tracker
	stack   []frame
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	tracker, tee := eng.NewTracker(r)
	dec := j.NewDecoder(tee)
	dec.UseNumber()
	return &source{dec: dec, tracker: tracker}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
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
	case j.Delim:
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
	case j.Number:
		s.valueDone()
		// go-json may hand out number text that aliases its read buffer.
		t.Kind, t.Number = eng.KindNumber, strings.Clone(string(v))
	case float64:
		s.valueDone()
		t.Kind, t.Number = eng.KindNumber, strconv.FormatFloat(v, 'g', -1, 64)
	default:
		s.valueDone()
		t.Kind = eng.KindNull
	}
	return t, nil
}

func (s *source) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *source) Location() int64 { return s.tracker.Offset() }

func (s *source) Position() (line, column int) { return s.tracker.Position() }

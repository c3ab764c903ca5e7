// Package codec converts between wire scalars and richer Go types inside
// generated readers and writers.
package codec

import (
	"github.com/reoring/restcodec"
)

// Codec converts between a wire representation A and a domain value B.
// Decode errors are data failures: their message is recorded on the session.
type Codec[A, B any] interface {
	Decode(a A) (B, error)
	Encode(b B) (A, error)
}

// ReadWith reads a wire value with read and decodes it with c. A decode error
// is recorded as a failure at the value's location.
func ReadWith[A, B any](s *restcodec.Session, read func(*restcodec.Session) (A, bool), c Codec[A, B]) (B, bool) {
	var zero B
	a, ok := read(s)
	if !ok {
		return zero, false
	}
	b, err := c.Decode(a)
	if err != nil {
		s.Fail(err.Error())
		return zero, false
	}
	return b, true
}

// ReadNullableWith is like ReadWith but accepts null.
func ReadNullableWith[A, B any](s *restcodec.Session, read func(*restcodec.Session) (A, bool), c Codec[A, B]) (*B, bool) {
	if s.Current().Kind == restcodec.TokenNull {
		return nil, true
	}
	b, ok := ReadWith(s, read, c)
	if !ok {
		return nil, false
	}
	return &b, true
}

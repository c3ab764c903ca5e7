package restcodec

import (
	"bytes"
	"io"
)

// ObjectReader reads a T from the object the session is positioned on.
//
// On entry the current token is the first token of the value. On return the
// current token is the last token of the value (END_OBJECT for objects). When
// the current token is not START_OBJECT the reader records
// "Expected START_OBJECT but was <token>", skips the value and returns false.
// A reader returns false whenever the session holds failures.
type ObjectReader[T any] interface {
	ReadRequiredObject(s *Session) (T, bool)
}

// ObjectReaderFunc adapts a function to ObjectReader.
type ObjectReaderFunc[T any] func(s *Session) (T, bool)

func (f ObjectReaderFunc[T]) ReadRequiredObject(s *Session) (T, bool) { return f(s) }

// BeginObject checks that the session is positioned on START_OBJECT. Otherwise
// it records a failure, skips the value and returns false.
func BeginObject(s *Session) bool {
	if s.Expect(TokenBeginObject) {
		return true
	}
	s.SkipValue()
	return false
}

// ReadOptionalObject reads an object that may be null. null yields (nil, true).
func ReadOptionalObject[T any](s *Session, r ObjectReader[T]) (*T, bool) {
	if s.cur.Kind == _tokenNull {
		return nil, true
	}
	v, ok := r.ReadRequiredObject(s)
	if !ok {
		return nil, false
	}
	return &v, true
}

// ReadRequiredArray reads an array of objects. null elements and elements the
// reader rejects are reported and skipped; reading continues with the next
// element. The result is returned only when the session holds no failures.
func ReadRequiredArray[T any](s *Session, r ObjectReader[T]) ([]T, bool) {
	switch s.cur.Kind {
	case _tokenBeginArray:
	case _tokenEOF:
		s.Unexpected(TokenBeginArray.String())
		return nil, false
	default:
		s.Unexpected(TokenBeginArray.String())
		s.SkipValue()
		return nil, false
	}

	out := make([]T, 0)
	for {
		switch s.Next().Kind {
		case _tokenEndArray:
			if s.HasFailures() {
				return nil, false
			}
			return out, true
		case _tokenEOF:
			s.Unexpected(TokenEndArray.String())
			return nil, false
		case _tokenNull:
			s.Unexpected(TokenBeginObject.String())
			continue
		}
		if v, ok := r.ReadRequiredObject(s); ok {
			out = append(out, v)
		}
	}
}

// ReadOptionalArray reads an array of objects that may be null. null yields
// (nil, true).
func ReadOptionalArray[T any](s *Session, r ObjectReader[T]) ([]T, bool) {
	if s.cur.Kind == _tokenNull {
		return nil, true
	}
	return ReadRequiredArray(s, r)
}

// expectEnd records trailing content after the top-level value.
func (s *Session) expectEnd() {
	if s.HasFailures() {
		return
	}
	if s.Next().Kind != _tokenEOF {
		s.Unexpected(TokenEOF.String())
	}
}

// ReadValueFrom runs read over a new session on src and returns every failure
// it records as one *ParseError. Trailing content after the value is a
// failure. expected names the token reported when read fails without
// recording anything.
func ReadValueFrom[T any](src Source, read func(*Session) (T, bool), expected TokenKind, opts ...SessionOption) (T, error) {
	var zero T
	s := NewSession(src, opts...)
	s.Next()
	v, ok := read(s)
	if ok {
		s.expectEnd()
	}
	if s.HasFailures() {
		return zero, s.Err()
	}
	if !ok {
		s.Unexpected(expected.String())
		return zero, s.Err()
	}
	return v, nil
}

// ReadObjectFrom reads a single object from src. All failures are returned
// together as a *ParseError.
func ReadObjectFrom[T any](src Source, r ObjectReader[T], opts ...SessionOption) (T, error) {
	return ReadValueFrom(src, r.ReadRequiredObject, TokenBeginObject, opts...)
}

// ReadArrayFrom reads an array of objects from src. All failures are returned
// together as a *ParseError.
func ReadArrayFrom[T any](src Source, r ObjectReader[T], opts ...SessionOption) ([]T, error) {
	return ReadValueFrom(src, func(s *Session) ([]T, bool) { return ReadRequiredArray(s, r) }, TokenBeginArray, opts...)
}

// ReadObject reads a single object from in using the current JSON driver.
func ReadObject[T any](in io.Reader, r ObjectReader[T], opts ...SessionOption) (T, error) {
	return ReadObjectFrom(JSONReader(in), r, opts...)
}

// ReadArray reads an array of objects from in using the current JSON driver.
func ReadArray[T any](in io.Reader, r ObjectReader[T], opts ...SessionOption) ([]T, error) {
	return ReadArrayFrom(JSONReader(in), r, opts...)
}

// ReadObjectBytes reads a single object from b.
func ReadObjectBytes[T any](b []byte, r ObjectReader[T], opts ...SessionOption) (T, error) {
	return ReadObject(bytes.NewReader(b), r, opts...)
}

// ReadArrayBytes reads an array of objects from b.
func ReadArrayBytes[T any](b []byte, r ObjectReader[T], opts ...SessionOption) ([]T, error) {
	return ReadArray(bytes.NewReader(b), r, opts...)
}

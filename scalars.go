package restcodec

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/reoring/restcodec/i18n"
)

const expectedBoolean = "VALUE_TRUE or VALUE_FALSE"

// mismatch records an unexpected-token failure and skips the offending value.
func mismatch(s *Session, expected string) {
	s.Unexpected(expected)
	s.SkipValue()
}

// ReadString reads a string value.
func ReadString(s *Session) (string, bool) {
	if s.cur.Kind != _tokenString {
		mismatch(s, TokenString.String())
		return "", false
	}
	return s.cur.String, true
}

// ReadNullableString reads a string value or null.
func ReadNullableString(s *Session) (*string, bool) {
	if s.cur.Kind == _tokenNull {
		return nil, true
	}
	v, ok := ReadString(s)
	if !ok {
		return nil, false
	}
	return &v, true
}

// ReadNonBlankString reads a string value and rejects values made only of
// whitespace. The empty string is accepted.
func ReadNonBlankString(s *Session) (string, bool) {
	v, ok := ReadString(s)
	if !ok {
		return "", false
	}
	if v != "" && strings.TrimSpace(v) == "" {
		s.Fail(i18n.T(i18n.CodeBlank, map[string]string{"value": v}))
		return "", false
	}
	return v, true
}

// ReadBool reads a boolean value.
func ReadBool(s *Session) (bool, bool) {
	if s.cur.Kind != _tokenBool {
		mismatch(s, expectedBoolean)
		return false, false
	}
	return s.cur.Bool, true
}

// ReadNullableBool reads a boolean value or null.
func ReadNullableBool(s *Session) (*bool, bool) {
	if s.cur.Kind == _tokenNull {
		return nil, true
	}
	v, ok := ReadBool(s)
	if !ok {
		return nil, false
	}
	return &v, true
}

// ReadInt reads an integer value and checks that it fits N. Fractional and
// exponent forms are rejected.
func ReadInt[N Integer](s *Session) (N, bool) {
	if s.cur.Kind != _tokenNumber {
		mismatch(s, numberInt)
		return 0, false
	}
	text := s.cur.Number
	if strings.ContainsAny(text, ".eE") {
		s.Unexpected(numberInt)
		return 0, false
	}
	rt := reflect.TypeOf((*N)(nil)).Elem()
	switch rt.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(text, 10, rt.Bits())
		if err != nil {
			return 0, outOfRange(s, text, rt)
		}
		return N(v), true
	default:
		v, err := strconv.ParseUint(text, 10, rt.Bits())
		if err != nil {
			return 0, outOfRange(s, text, rt)
		}
		return N(v), true
	}
}

func outOfRange(s *Session, text string, rt reflect.Type) bool {
	s.Fail(i18n.T(i18n.CodeOutOfRange, map[string]string{"value": text, "type": rt.Kind().String()}))
	return false
}

// ReadNullableInt reads an integer value or null.
func ReadNullableInt[N Integer](s *Session) (*N, bool) {
	if s.cur.Kind == _tokenNull {
		return nil, true
	}
	v, ok := ReadInt[N](s)
	if !ok {
		return nil, false
	}
	return &v, true
}

// ReadFloat64 reads any number as a float64.
func ReadFloat64(s *Session) (float64, bool) {
	if s.cur.Kind != _tokenNumber {
		mismatch(s, TokenNumber.String())
		return 0, false
	}
	v, err := strconv.ParseFloat(s.cur.Number, 64)
	if err != nil {
		s.Fail(i18n.T(i18n.CodeOutOfRange, map[string]string{"value": s.cur.Number, "type": "float64"}))
		return 0, false
	}
	return v, true
}

// ReadNullableFloat64 reads a number or null.
func ReadNullableFloat64(s *Session) (*float64, bool) {
	if s.cur.Kind == _tokenNull {
		return nil, true
	}
	v, ok := ReadFloat64(s)
	if !ok {
		return nil, false
	}
	return &v, true
}

// ReadArrayOf reads an array whose elements are read by elem. Failing
// elements are reported and dropped; the result is returned only when the
// session holds no failures.
func ReadArrayOf[E any](s *Session, elem func(*Session) (E, bool)) ([]E, bool) {
	if s.cur.Kind != _tokenBeginArray {
		mismatch(s, TokenBeginArray.String())
		return nil, false
	}
	out := make([]E, 0)
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
		}
		if v, ok := elem(s); ok {
			out = append(out, v)
		}
	}
}

// ReadStringArray reads an array of strings.
func ReadStringArray(s *Session) ([]string, bool) { return ReadArrayOf(s, ReadString) }

// ReadBoolArray reads an array of booleans.
func ReadBoolArray(s *Session) ([]bool, bool) { return ReadArrayOf(s, ReadBool) }

// ReadIntArray reads an array of integers that fit N.
func ReadIntArray[N Integer](s *Session) ([]N, bool) { return ReadArrayOf(s, ReadInt[N]) }

// ReadFloat64Array reads an array of numbers.
func ReadFloat64Array(s *Session) ([]float64, bool) { return ReadArrayOf(s, ReadFloat64) }

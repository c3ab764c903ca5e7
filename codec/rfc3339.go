package codec

import (
	"time"

	"github.com/pkg/errors"

	"github.com/reoring/restcodec"
	"github.com/reoring/restcodec/i18n"
)

// TimeRFC3339 returns a Codec that converts between RFC3339 strings and time.Time.
func TimeRFC3339() Codec[string, time.Time] { return rfc3339Codec{} }

type rfc3339Codec struct{}

func (rfc3339Codec) Decode(a string) (time.Time, error) {
	t, err := parseRFC3339(a)
	if err != nil {
		return time.Time{}, errors.New(i18n.T(i18n.CodeInvalidTime, map[string]string{"value": a}))
	}
	return t, nil
}

func (rfc3339Codec) Encode(b time.Time) (string, error) {
	if y := b.Year(); y < 0 || y > 9999 {
		return "", errors.Errorf("codec: year %d outside the RFC 3339 range", y)
	}
	return formatRFC3339Canonical(b), nil
}

// ReadRFC3339 reads a string value holding an RFC3339 timestamp.
func ReadRFC3339(s *restcodec.Session) (time.Time, bool) {
	return ReadWith(s, restcodec.ReadString, TimeRFC3339())
}

// ReadNullableRFC3339 reads an RFC3339 timestamp or null.
func ReadNullableRFC3339(s *restcodec.Session) (*time.Time, bool) {
	return ReadNullableWith(s, restcodec.ReadString, TimeRFC3339())
}

// WriteRFC3339Field writes "name": t in canonical UTC form.
func WriteRFC3339Field(g *restcodec.Generator, name string, t time.Time) error {
	s, err := TimeRFC3339().Encode(t)
	if err != nil {
		return err
	}
	return restcodec.WriteStringField(g, name, s)
}

// WriteNullableRFC3339Field writes "name": null when t is nil.
func WriteNullableRFC3339Field(g *restcodec.Generator, name string, t *time.Time) error {
	if t == nil {
		return restcodec.WriteNullField(g, name)
	}
	return WriteRFC3339Field(g, name, *t)
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}

// Package httpadapter serves registered codecs over net/http.
//
// A MessageConverter negotiates media types and defers the supported or
// unsupported decision to a mapper.ObjectMapper. Handlers return a Single, a
// deferred computation of exactly one value or error, which is bridged to the
// response through a DeferredResult that resolves at most once.
package httpadapter

import (
	"bytes"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/reoring/restcodec/mapper"
)

// DefaultMediaType is the media type advertised when none is configured.
const DefaultMediaType = "application/json;charset=UTF-8"

var (
	// ErrUnsupportedMediaType is reported for a request body the converter
	// does not accept.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	// ErrNotAcceptable is reported when no acceptable representation exists.
	ErrNotAcceptable = errors.New("not acceptable")
)

type mediaType struct {
	typ, sub string
}

func parseMediaType(s string) (mediaType, map[string]string, bool) {
	mt, params, err := mime.ParseMediaType(s)
	if err != nil {
		return mediaType{}, nil, false
	}
	typ, sub, ok := strings.Cut(mt, "/")
	if !ok {
		return mediaType{}, nil, false
	}
	return mediaType{typ: typ, sub: sub}, params, true
}

func (m mediaType) includes(o mediaType) bool {
	return (m.typ == "*" || o.typ == "*" || m.typ == o.typ) &&
		(m.sub == "*" || o.sub == "*" || m.sub == o.sub)
}

// MessageConverter reads request bodies and writes response bodies through
// an ObjectMapper.
type MessageConverter struct {
	mapper     *mapper.ObjectMapper
	raw        []string
	mediaTypes []mediaType
}

// NewMessageConverter returns a converter for m advertising mediaTypes, or
// DefaultMediaType when none are given. Entries that do not parse are
// ignored. A nil m uses mapper.New().
func NewMessageConverter(m *mapper.ObjectMapper, mediaTypes ...string) *MessageConverter {
	if m == nil {
		m = mapper.New()
	}
	if len(mediaTypes) == 0 {
		mediaTypes = []string{DefaultMediaType}
	}
	c := &MessageConverter{mapper: m}
	for _, s := range mediaTypes {
		if mt, _, ok := parseMediaType(s); ok {
			c.raw = append(c.raw, s)
			c.mediaTypes = append(c.mediaTypes, mt)
		}
	}
	if len(c.raw) == 0 {
		mt, _, _ := parseMediaType(DefaultMediaType)
		c.raw = []string{DefaultMediaType}
		c.mediaTypes = []mediaType{mt}
	}
	return c
}

// Mapper returns the underlying ObjectMapper.
func (c *MessageConverter) Mapper() *mapper.ObjectMapper { return c.mapper }

// MediaTypes returns the advertised media types.
func (c *MessageConverter) MediaTypes() []string { return append([]string(nil), c.raw...) }

// canRead reports whether a body of contentType is accepted. An empty content
// type is accepted.
func (c *MessageConverter) canRead(contentType string) bool {
	if contentType == "" {
		return true
	}
	mt, _, ok := parseMediaType(contentType)
	if !ok {
		return false
	}
	for _, s := range c.mediaTypes {
		if s.includes(mt) {
			return true
		}
	}
	return false
}

// canWrite reports whether any entry of an Accept header matches an
// advertised media type. An empty header accepts anything.
func (c *MessageConverter) canWrite(accept string) bool {
	if strings.TrimSpace(accept) == "" {
		return true
	}
	for _, part := range strings.Split(accept, ",") {
		mt, params, ok := parseMediaType(strings.TrimSpace(part))
		if !ok {
			continue
		}
		if q, err := strconv.ParseFloat(params["q"], 64); err == nil && q <= 0 {
			continue
		}
		for _, s := range c.mediaTypes {
			if s.includes(mt) {
				return true
			}
		}
	}
	return false
}

// CanRead reports whether a body of contentType can be read as t.
func (c *MessageConverter) CanRead(t reflect.Type, contentType string) bool {
	if !c.canRead(contentType) {
		return false
	}
	return c.mapper.IsSupportedForReading(t)
}

// CanWrite reports whether t can be written for a client sending accept.
func (c *MessageConverter) CanWrite(t reflect.Type, accept string) bool {
	if !c.canWrite(accept) {
		return false
	}
	return c.mapper.IsSupportedForWriting(t)
}

// Read decodes the body of r as t. Data failures are returned as a
// *restcodec.ParseError; an unaccepted content type or a type without a
// reader yields a 415 StatusError.
func (c *MessageConverter) Read(t reflect.Type, r *http.Request) (any, error) {
	if ct := r.Header.Get("Content-Type"); !c.canRead(ct) {
		return nil, WithStatus(errors.Wrapf(ErrUnsupportedMediaType, "content type %q", ct), http.StatusUnsupportedMediaType)
	}
	v, err := c.mapper.Read(t, r.Body)
	if errors.Is(err, mapper.ErrUnsupportedType) {
		return nil, WithStatus(err, http.StatusUnsupportedMediaType)
	}
	return v, err
}

// Write encodes v with status. t selects the codec; nil uses the dynamic type
// of v. The body is encoded before anything is sent, so a failed write leaves
// w untouched.
func (c *MessageConverter) Write(w http.ResponseWriter, status int, v any, t reflect.Type) error {
	return c.write(w, status, nil, v, t)
}

// write encodes v before touching w; header is copied only once encoding
// succeeded.
func (c *MessageConverter) write(w http.ResponseWriter, status int, header http.Header, v any, t reflect.Type) error {
	var buf bytes.Buffer
	if err := c.mapper.Write(&buf, v, t); err != nil {
		if errors.Is(err, mapper.ErrUnsupportedType) {
			return WithStatus(err, http.StatusNotAcceptable)
		}
		return err
	}
	for k, vs := range header {
		w.Header()[k] = vs
	}
	w.Header().Set("Content-Type", c.raw[0])
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return errors.WithStack(err)
}

// Bind reads the body of r as a T.
func Bind[T any](c *MessageConverter, r *http.Request) (T, error) {
	var zero T
	v, err := c.Read(reflect.TypeOf((*T)(nil)).Elem(), r)
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

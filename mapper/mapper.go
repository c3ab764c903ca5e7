// Package mapper resolves codecs for Go types by naming convention and caches
// the outcome.
//
// For a type N declared in package P the mapper looks up the reader factory
// "P/json/reader.NReaderFactory" and the writer factory
// "P/json/writer.NWriterFactory" in a Registry. Slice types are served by the
// codec of their element type; a named slice type such as
//
//	type Pets []Pet
//
// is treated as []Pet. Every lookup result, positive or negative, is cached
// per direction, so a registry is consulted at most once per type.
package mapper

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/reoring/restcodec"
)

// Option configures an ObjectMapper.
type Option func(*ObjectMapper)

// WithRegistry sets the registry factories are looked up in. The default is
// DefaultRegistry.
func WithRegistry(r Registry) Option {
	return func(m *ObjectMapper) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *ObjectMapper) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithParseOpt applies depth and size limits to every read.
func WithParseOpt(opt restcodec.ParseOpt) Option {
	return func(m *ObjectMapper) { m.parseOpt = opt }
}

// WithDriver pins the JSON driver used by Read. The default follows
// restcodec.SetJSONDriver.
func WithDriver(d restcodec.JSONDriver) Option {
	return func(m *ObjectMapper) { m.driver = d }
}

// ObjectMapper reads and writes values of registered types. It is safe for
// concurrent use.
type ObjectMapper struct {
	registry Registry
	logger   *slog.Logger
	parseOpt restcodec.ParseOpt
	driver   restcodec.JSONDriver

	normalized sync.Map // reflect.Type -> reflect.Type

	readers                 sync.Map // reflect.Type -> restcodec.AnyReader
	unsupportedReaders      sync.Map // reflect.Type -> struct{}
	arrayReaders            sync.Map // reflect.Type -> restcodec.AnyReader
	unsupportedArrayReaders sync.Map

	writers                 sync.Map // reflect.Type -> restcodec.AnyWriter
	unsupportedWriters      sync.Map
	arrayWriters            sync.Map
	unsupportedArrayWriters sync.Map

	readGroup  singleflight.Group
	writeGroup singleflight.Group
}

// New returns a mapper configured by opts.
func New(opts ...Option) *ObjectMapper {
	m := &ObjectMapper{registry: DefaultRegistry, logger: slog.Default()}
	for _, o := range opts {
		o(m)
	}
	return m
}

// normalize maps named slice types to the unnamed slice of their element.
func (m *ObjectMapper) normalize(t reflect.Type) reflect.Type {
	if v, ok := m.normalized.Load(t); ok {
		return v.(reflect.Type)
	}
	n := t
	if t.Kind() == reflect.Slice && t.Name() != "" {
		n = reflect.SliceOf(t.Elem())
	}
	m.normalized.Store(t, n)
	return n
}

// codecCandidate reports whether t can have a registered codec at all.
func codecCandidate(t reflect.Type) bool {
	if t.Name() == "" || t.PkgPath() == "" {
		return false
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.Pointer, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return false
	}
	return true
}

func (m *ObjectMapper) trace(msg string, t reflect.Type) {
	m.logger.Log(context.Background(), restcodec.LevelTrace, msg, slog.String("type", typeName(t)))
}

func (m *ObjectMapper) objectReaderFor(t reflect.Type) restcodec.AnyReader {
	if r, ok := m.readers.Load(t); ok {
		return r.(restcodec.AnyReader)
	}
	if _, ok := m.unsupportedReaders.Load(t); ok {
		return nil
	}
	if !codecCandidate(t) {
		m.unsupportedReaders.Store(t, struct{}{})
		m.trace("unsupported type", t)
		return nil
	}
	name := ReaderFactoryName(t)
	v, _, _ := m.readGroup.Do(name, func() (any, error) {
		if r, ok := m.readers.Load(t); ok {
			return r, nil
		}
		if _, ok := m.unsupportedReaders.Load(t); ok {
			return nil, nil
		}
		raw, found := m.registry.Lookup(name)
		if !found {
			m.unsupportedReaders.Store(t, struct{}{})
			m.trace("unsupported type", t)
			return nil, nil
		}
		f, ok := raw.(restcodec.ReaderFactory)
		var r restcodec.AnyReader
		if ok {
			r = f.JSONReader()
		}
		if r == nil || r.Type() != t {
			m.unsupportedReaders.Store(t, struct{}{})
			m.logger.Warn("factory does not provide a reader for the type",
				slog.String("factory", name), slog.String("type", typeName(t)))
			return nil, nil
		}
		m.readers.Store(t, r)
		return r, nil
	})
	r, _ := v.(restcodec.AnyReader)
	return r
}

func (m *ObjectMapper) arrayReaderFor(t reflect.Type) restcodec.AnyReader {
	if r, ok := m.arrayReaders.Load(t); ok {
		return r.(restcodec.AnyReader)
	}
	if _, ok := m.unsupportedArrayReaders.Load(t); ok {
		return nil
	}
	r := m.objectReaderFor(t.Elem())
	if r == nil {
		m.unsupportedArrayReaders.Store(t, struct{}{})
		m.trace("unsupported array type", t)
		return nil
	}
	m.arrayReaders.Store(t, r)
	return r
}

func (m *ObjectMapper) objectWriterFor(t reflect.Type) restcodec.AnyWriter {
	if w, ok := m.writers.Load(t); ok {
		return w.(restcodec.AnyWriter)
	}
	if _, ok := m.unsupportedWriters.Load(t); ok {
		return nil
	}
	if !codecCandidate(t) {
		m.unsupportedWriters.Store(t, struct{}{})
		m.trace("unsupported type", t)
		return nil
	}
	name := WriterFactoryName(t)
	v, _, _ := m.writeGroup.Do(name, func() (any, error) {
		if w, ok := m.writers.Load(t); ok {
			return w, nil
		}
		if _, ok := m.unsupportedWriters.Load(t); ok {
			return nil, nil
		}
		raw, found := m.registry.Lookup(name)
		if !found {
			m.unsupportedWriters.Store(t, struct{}{})
			m.trace("unsupported type", t)
			return nil, nil
		}
		f, ok := raw.(restcodec.WriterFactory)
		var w restcodec.AnyWriter
		if ok {
			w = f.JSONWriter()
		}
		if w == nil || w.Type() != t {
			m.unsupportedWriters.Store(t, struct{}{})
			m.logger.Warn("factory does not provide a writer for the type",
				slog.String("factory", name), slog.String("type", typeName(t)))
			return nil, nil
		}
		m.writers.Store(t, w)
		return w, nil
	})
	w, _ := v.(restcodec.AnyWriter)
	return w
}

func (m *ObjectMapper) arrayWriterFor(t reflect.Type) restcodec.AnyWriter {
	if w, ok := m.arrayWriters.Load(t); ok {
		return w.(restcodec.AnyWriter)
	}
	if _, ok := m.unsupportedArrayWriters.Load(t); ok {
		return nil
	}
	w := m.objectWriterFor(t.Elem())
	if w == nil {
		m.unsupportedArrayWriters.Store(t, struct{}{})
		m.trace("unsupported array type", t)
		return nil
	}
	m.arrayWriters.Store(t, w)
	return w
}

// IsSupportedForReading reports whether values of type t can be read.
func (m *ObjectMapper) IsSupportedForReading(t reflect.Type) bool {
	if t == nil {
		return false
	}
	n := m.normalize(t)
	if n.Kind() == reflect.Slice {
		return m.arrayReaderFor(n) != nil
	}
	return m.objectReaderFor(n) != nil
}

// IsSupportedForWriting reports whether values of type t can be written.
func (m *ObjectMapper) IsSupportedForWriting(t reflect.Type) bool {
	if t == nil {
		return false
	}
	n := m.normalize(t)
	if n.Kind() == reflect.Slice {
		return m.arrayWriterFor(n) != nil
	}
	return m.objectWriterFor(n) != nil
}

func (m *ObjectMapper) newSource(in io.Reader) restcodec.Source {
	if m.driver != nil {
		return m.driver.NewReader(in)
	}
	return restcodec.JSONReader(in)
}

// Read decodes a value of type t from in. Data failures are returned as a
// *restcodec.ParseError; a type without a reader yields an error matching
// ErrUnsupportedType.
func (m *ObjectMapper) Read(t reflect.Type, in io.Reader) (any, error) {
	return m.ReadFrom(t, m.newSource(in))
}

// ReadFrom is like Read but takes an existing Source.
func (m *ObjectMapper) ReadFrom(t reflect.Type, src restcodec.Source) (any, error) {
	if t == nil {
		return nil, unsupported(t)
	}
	n := m.normalize(t)
	src = restcodec.EnforceSource(src, m.parseOpt)
	logOpt := restcodec.WithLogger(m.logger)
	if n.Kind() == reflect.Slice {
		r := m.arrayReaderFor(n)
		if r == nil {
			return nil, unsupported(n)
		}
		v, err := restcodec.ReadValueFrom(src, r.ReadAnyArray, restcodec.TokenBeginArray, logOpt)
		if err != nil {
			return nil, err
		}
		if t != n {
			return reflect.ValueOf(v).Convert(t).Interface(), nil
		}
		return v, nil
	}
	r := m.objectReaderFor(n)
	if r == nil {
		return nil, unsupported(n)
	}
	return restcodec.ReadValueFrom(src, r.ReadAny, restcodec.TokenBeginObject, logOpt)
}

// Write encodes v as compact JSON to out. t selects the codec; nil means the
// dynamic type of v, with pointers dereferenced.
func (m *ObjectMapper) Write(out io.Writer, v any, t reflect.Type) error {
	return m.write(restcodec.NewGenerator(out), v, t)
}

// WriteString encodes v as pretty-printed JSON.
func (m *ObjectMapper) WriteString(v any, t reflect.Type) (string, error) {
	var buf bytes.Buffer
	if err := m.write(restcodec.NewPrettyGenerator(&buf), v, t); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (m *ObjectMapper) write(g *restcodec.Generator, v any, t reflect.Type) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && (t == nil || rv.Type().Elem() == t) {
		rv = rv.Elem()
	}
	if t == nil {
		if !rv.IsValid() {
			return unsupported(nil)
		}
		t = rv.Type()
	}
	n := m.normalize(t)
	if n.Kind() == reflect.Slice {
		if !rv.IsValid() || rv.Kind() != reflect.Slice {
			return notASlice(v)
		}
		w := m.arrayWriterFor(n)
		if w == nil {
			return unsupported(n)
		}
		if rv.Type() != n {
			if !rv.Type().ConvertibleTo(n) {
				return notASlice(v)
			}
			rv = rv.Convert(n)
		}
		if err := w.WriteAnyArray(g, rv.Interface()); err != nil {
			return err
		}
		return errors.WithStack(g.Close())
	}
	w := m.objectWriterFor(n)
	if w == nil {
		return unsupported(n)
	}
	if !rv.IsValid() {
		return errors.Errorf("mapper: cannot write nil as %v", n)
	}
	if err := w.WriteAny(g, rv.Interface()); err != nil {
		return err
	}
	return errors.WithStack(g.Close())
}

// ReadAs reads a T from in.
func ReadAs[T any](m *ObjectMapper, in io.Reader) (T, error) {
	var zero T
	v, err := m.Read(reflect.TypeOf((*T)(nil)).Elem(), in)
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// WriteAs writes v using the codec for T.
func WriteAs[T any](m *ObjectMapper, out io.Writer, v T) error {
	return m.Write(out, v, reflect.TypeOf((*T)(nil)).Elem())
}

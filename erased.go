package restcodec

import (
	"fmt"
	"reflect"
)

// AnyReader is a type-erased ObjectReader used by registries and the mapper.
type AnyReader interface {
	// Type is the Go type the reader produces.
	Type() reflect.Type
	// ReadAny reads one object; the value has dynamic type Type().
	ReadAny(s *Session) (any, bool)
	// ReadAnyArray reads an array of objects; the value is a []Type().
	ReadAnyArray(s *Session) (any, bool)
}

// AnyWriter is a type-erased ObjectWriter used by registries and the mapper.
type AnyWriter interface {
	Type() reflect.Type
	// WriteAny writes v, which must have dynamic type Type().
	WriteAny(g *Generator, v any) error
	// WriteAnyArray writes v, which must be a []Type().
	WriteAnyArray(g *Generator, v any) error
}

// ReaderFactory is the registration contract for generated reader packages.
type ReaderFactory interface {
	JSONReader() AnyReader
}

// WriterFactory is the registration contract for generated writer packages.
type WriterFactory interface {
	JSONWriter() AnyWriter
}

// EraseReader wraps r as an AnyReader.
func EraseReader[T any](r ObjectReader[T]) AnyReader { return erasedReader[T]{r: r} }

// EraseWriter wraps w as an AnyWriter.
func EraseWriter[T any](w ObjectWriter[T]) AnyWriter { return erasedWriter[T]{w: w} }

type erasedReader[T any] struct{ r ObjectReader[T] }

func (e erasedReader[T]) Type() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

func (e erasedReader[T]) ReadAny(s *Session) (any, bool) {
	v, ok := e.r.ReadRequiredObject(s)
	if !ok {
		return nil, false
	}
	return v, true
}

func (e erasedReader[T]) ReadAnyArray(s *Session) (any, bool) {
	v, ok := ReadRequiredArray(s, e.r)
	if !ok {
		return nil, false
	}
	return v, true
}

type erasedWriter[T any] struct{ w ObjectWriter[T] }

func (e erasedWriter[T]) Type() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

func (e erasedWriter[T]) WriteAny(g *Generator, v any) error {
	tv, ok := v.(T)
	if !ok {
		return fmt.Errorf("restcodec: writer for %v cannot write %T", e.Type(), v)
	}
	return e.w.WriteObject(g, tv)
}

func (e erasedWriter[T]) WriteAnyArray(g *Generator, v any) error {
	tv, ok := v.([]T)
	if !ok {
		return fmt.Errorf("restcodec: writer for %v cannot write %T", e.Type(), v)
	}
	return WriteArray(g, e.w, tv)
}

type readerFactory struct{ r AnyReader }

func (f readerFactory) JSONReader() AnyReader { return f.r }

type writerFactory struct{ w AnyWriter }

func (f writerFactory) JSONWriter() AnyWriter { return f.w }

// NewReaderFactory returns a ReaderFactory serving r.
func NewReaderFactory[T any](r ObjectReader[T]) ReaderFactory {
	return readerFactory{r: EraseReader(r)}
}

// NewWriterFactory returns a WriterFactory serving w.
func NewWriterFactory[T any](w ObjectWriter[T]) WriterFactory {
	return writerFactory{w: EraseWriter(w)}
}

package restcodec

import (
	"bytes"
	"io"
)

// ObjectWriter writes a value of type T as a JSON object.
type ObjectWriter[T any] interface {
	WriteObject(g *Generator, v T) error
}

// ObjectWriterFunc adapts a function to ObjectWriter.
type ObjectWriterFunc[T any] func(g *Generator, v T) error

func (f ObjectWriterFunc[T]) WriteObject(g *Generator, v T) error { return f(g, v) }

// Integer lists the integer kinds accepted by the generic field helpers.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func writeInt[N Integer](g *Generator, v N) error {
	if v < 0 {
		return g.WriteInt64(int64(v))
	}
	return g.WriteUint64(uint64(v))
}

// WriteStringField writes "name": v.
func WriteStringField(g *Generator, name, v string) error {
	if err := g.WriteFieldName(name); err != nil {
		return err
	}
	return g.WriteString(v)
}

// WriteBoolField writes "name": v.
func WriteBoolField(g *Generator, name string, v bool) error {
	if err := g.WriteFieldName(name); err != nil {
		return err
	}
	return g.WriteBool(v)
}

// WriteInt64Field writes "name": v.
func WriteInt64Field(g *Generator, name string, v int64) error {
	if err := g.WriteFieldName(name); err != nil {
		return err
	}
	return g.WriteInt64(v)
}

// WriteIntField writes "name": v for any integer kind.
func WriteIntField[N Integer](g *Generator, name string, v N) error {
	if err := g.WriteFieldName(name); err != nil {
		return err
	}
	return writeInt(g, v)
}

// WriteFloat64Field writes "name": v.
func WriteFloat64Field(g *Generator, name string, v float64) error {
	if err := g.WriteFieldName(name); err != nil {
		return err
	}
	return g.WriteFloat64(v)
}

// WriteNullField writes "name": null.
func WriteNullField(g *Generator, name string) error {
	if err := g.WriteFieldName(name); err != nil {
		return err
	}
	return g.WriteNull()
}

// WriteNullableStringField writes "name": null when v is nil.
func WriteNullableStringField(g *Generator, name string, v *string) error {
	if v == nil {
		return WriteNullField(g, name)
	}
	return WriteStringField(g, name, *v)
}

// WriteNullableBoolField writes "name": null when v is nil.
func WriteNullableBoolField(g *Generator, name string, v *bool) error {
	if v == nil {
		return WriteNullField(g, name)
	}
	return WriteBoolField(g, name, *v)
}

// WriteNullableIntField writes "name": null when v is nil.
func WriteNullableIntField[N Integer](g *Generator, name string, v *N) error {
	if v == nil {
		return WriteNullField(g, name)
	}
	return WriteIntField(g, name, *v)
}

// WriteNullableFloat64Field writes "name": null when v is nil.
func WriteNullableFloat64Field(g *Generator, name string, v *float64) error {
	if v == nil {
		return WriteNullField(g, name)
	}
	return WriteFloat64Field(g, name, *v)
}

func writeArrayField[E any](g *Generator, name string, values []E, write func(E) error) error {
	if err := g.WriteFieldName(name); err != nil {
		return err
	}
	if err := g.WriteStartArray(); err != nil {
		return err
	}
	for _, v := range values {
		if err := write(v); err != nil {
			return err
		}
	}
	return g.WriteEndArray()
}

// WriteStringArrayField writes "name": [values...].
func WriteStringArrayField(g *Generator, name string, values []string) error {
	return writeArrayField(g, name, values, g.WriteString)
}

// WriteBoolArrayField writes "name": [values...].
func WriteBoolArrayField(g *Generator, name string, values []bool) error {
	return writeArrayField(g, name, values, g.WriteBool)
}

// WriteIntArrayField writes "name": [values...] for any integer kind.
func WriteIntArrayField[N Integer](g *Generator, name string, values []N) error {
	return writeArrayField(g, name, values, func(v N) error { return writeInt(g, v) })
}

// WriteFloat64ArrayField writes "name": [values...].
func WriteFloat64ArrayField(g *Generator, name string, values []float64) error {
	return writeArrayField(g, name, values, g.WriteFloat64)
}

// WriteObjectField writes "name": followed by v through w.
func WriteObjectField[T any](g *Generator, w ObjectWriter[T], name string, v T) error {
	if err := g.WriteFieldName(name); err != nil {
		return err
	}
	return w.WriteObject(g, v)
}

// WriteNullableObjectField writes "name": null when v is nil.
func WriteNullableObjectField[T any](g *Generator, w ObjectWriter[T], name string, v *T) error {
	if v == nil {
		return WriteNullField(g, name)
	}
	return WriteObjectField(g, w, name, *v)
}

// WriteArray writes values as a JSON array of objects.
func WriteArray[T any](g *Generator, w ObjectWriter[T], values []T) error {
	if err := g.WriteStartArray(); err != nil {
		return err
	}
	for _, v := range values {
		if err := w.WriteObject(g, v); err != nil {
			return err
		}
	}
	return g.WriteEndArray()
}

// WriteArrayField writes "name": followed by values as an array of objects.
func WriteArrayField[T any](g *Generator, w ObjectWriter[T], name string, values []T) error {
	if err := g.WriteFieldName(name); err != nil {
		return err
	}
	return WriteArray(g, w, values)
}

// WriteJSON writes v as compact JSON to out.
func WriteJSON[T any](out io.Writer, v T, w ObjectWriter[T]) error {
	g := NewGenerator(out)
	if err := w.WriteObject(g, v); err != nil {
		return err
	}
	return g.Close()
}

// WriteJSONArray writes values as a compact JSON array to out.
func WriteJSONArray[T any](out io.Writer, values []T, w ObjectWriter[T]) error {
	g := NewGenerator(out)
	if err := WriteArray(g, w, values); err != nil {
		return err
	}
	return g.Close()
}

// ToJSONString returns v as pretty-printed JSON.
func ToJSONString[T any](v T, w ObjectWriter[T]) (string, error) {
	var buf bytes.Buffer
	g := NewPrettyGenerator(&buf)
	if err := w.WriteObject(g, v); err != nil {
		return "", err
	}
	if err := g.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToJSONArrayString returns values as a pretty-printed JSON array.
func ToJSONArrayString[T any](values []T, w ObjectWriter[T]) (string, error) {
	var buf bytes.Buffer
	g := NewPrettyGenerator(&buf)
	if err := WriteArray(g, w, values); err != nil {
		return "", err
	}
	if err := g.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

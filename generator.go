package restcodec

import (
	"bufio"
	"errors"
	"io"
	"strconv"

	j "github.com/goccy/go-json"
)

// Generator errors for structural misuse.
var (
	ErrFieldNameExpected = errors.New("restcodec: expected a field name inside an object")
	ErrValueExpected     = errors.New("restcodec: expected a value after the field name")
	ErrNotInObject       = errors.New("restcodec: field name outside an object")
	ErrUnbalancedEnd     = errors.New("restcodec: end token does not match an open container")
	ErrIncomplete        = errors.New("restcodec: generator closed with open containers")
)

type genFrame struct {
	object bool
	n      int // entries written
}

// Generator writes JSON tokens to an io.Writer. The zero value is not usable;
// create one with NewGenerator or NewPrettyGenerator. The first error sticks
// and is returned by every later call.
//
// Pretty output indents object entries by two spaces per open object and
// keeps array values on one line: {"a":[{}]} renders as
//
//	{
//	  "a" : [ { } ]
//	}
type Generator struct {
	w       *bufio.Writer
	pretty  bool
	stack   []genFrame
	named   bool // a field name was written and awaits its value
	objects int  // open objects, for pretty indentation
	err     error
}

// NewGenerator returns a compact generator.
func NewGenerator(w io.Writer) *Generator {
	return &Generator{w: bufio.NewWriter(w)}
}

// NewPrettyGenerator returns a generator with pretty output.
func NewPrettyGenerator(w io.Writer) *Generator {
	return &Generator{w: bufio.NewWriter(w), pretty: true}
}

// Pretty reports whether the generator indents its output.
func (g *Generator) Pretty() bool { return g.pretty }

// Err returns the first error the generator encountered.
func (g *Generator) Err() error { return g.err }

func (g *Generator) top() *genFrame {
	if len(g.stack) == 0 {
		return nil
	}
	return &g.stack[len(g.stack)-1]
}

// beforeValue writes the separator required before a value and validates that
// a value is allowed here.
func (g *Generator) beforeValue() error {
	if g.err != nil {
		return g.err
	}
	f := g.top()
	switch {
	case f == nil:
	case f.object:
		if !g.named {
			return g.fail(ErrFieldNameExpected)
		}
		g.named = false
	default:
		if f.n > 0 {
			g.writeString(",")
			if g.pretty {
				g.writeByte(' ')
			}
		} else if g.pretty {
			g.writeByte(' ')
		}
		f.n++
	}
	return nil
}

func (g *Generator) fail(err error) error {
	if g.err == nil {
		g.err = err
	}
	return g.err
}

func (g *Generator) writeByte(c byte) {
	if g.err == nil {
		if err := g.w.WriteByte(c); err != nil {
			g.err = err
		}
	}
}

func (g *Generator) writeString(s string) {
	if g.err == nil {
		if _, err := g.w.WriteString(s); err != nil {
			g.err = err
		}
	}
}

func (g *Generator) write(b []byte) {
	if g.err == nil {
		if _, err := g.w.Write(b); err != nil {
			g.err = err
		}
	}
}

func (g *Generator) indent() {
	g.writeByte('\n')
	for i := 0; i < g.objects; i++ {
		g.writeString("  ")
	}
}

// WriteStartObject opens an object.
func (g *Generator) WriteStartObject() error {
	if err := g.beforeValue(); err != nil {
		return err
	}
	g.writeByte('{')
	g.stack = append(g.stack, genFrame{object: true})
	g.objects++
	return g.err
}

// WriteEndObject closes the innermost object.
func (g *Generator) WriteEndObject() error {
	if g.err != nil {
		return g.err
	}
	f := g.top()
	if f == nil || !f.object || g.named {
		return g.fail(ErrUnbalancedEnd)
	}
	n := f.n
	g.stack = g.stack[:len(g.stack)-1]
	g.objects--
	if g.pretty {
		if n > 0 {
			g.indent()
		} else {
			g.writeByte(' ')
		}
	}
	g.writeByte('}')
	return g.err
}

// WriteStartArray opens an array.
func (g *Generator) WriteStartArray() error {
	if err := g.beforeValue(); err != nil {
		return err
	}
	g.writeByte('[')
	g.stack = append(g.stack, genFrame{})
	return g.err
}

// WriteEndArray closes the innermost array.
func (g *Generator) WriteEndArray() error {
	if g.err != nil {
		return g.err
	}
	f := g.top()
	if f == nil || f.object {
		return g.fail(ErrUnbalancedEnd)
	}
	g.stack = g.stack[:len(g.stack)-1]
	if g.pretty {
		g.writeByte(' ')
	}
	g.writeByte(']')
	return g.err
}

// WriteFieldName writes the name of the next object entry.
func (g *Generator) WriteFieldName(name string) error {
	if g.err != nil {
		return g.err
	}
	f := g.top()
	if f == nil || !f.object {
		return g.fail(ErrNotInObject)
	}
	if g.named {
		return g.fail(ErrValueExpected)
	}
	if f.n > 0 {
		g.writeByte(',')
	}
	if g.pretty {
		g.indent()
	}
	f.n++
	if err := g.quote(name); err != nil {
		return err
	}
	if g.pretty {
		g.writeString(" : ")
	} else {
		g.writeByte(':')
	}
	g.named = true
	return g.err
}

func (g *Generator) quote(s string) error {
	b, err := j.MarshalWithOption(s, j.DisableHTMLEscape())
	if err != nil {
		return g.fail(err)
	}
	g.write(b)
	return g.err
}

// WriteString writes a string value.
func (g *Generator) WriteString(s string) error {
	if err := g.beforeValue(); err != nil {
		return err
	}
	return g.quote(s)
}

// WriteBool writes a boolean value.
func (g *Generator) WriteBool(v bool) error {
	if err := g.beforeValue(); err != nil {
		return err
	}
	g.writeString(strconv.FormatBool(v))
	return g.err
}

// WriteInt64 writes a signed integer value.
func (g *Generator) WriteInt64(v int64) error {
	if err := g.beforeValue(); err != nil {
		return err
	}
	g.writeString(strconv.FormatInt(v, 10))
	return g.err
}

// WriteUint64 writes an unsigned integer value.
func (g *Generator) WriteUint64(v uint64) error {
	if err := g.beforeValue(); err != nil {
		return err
	}
	g.writeString(strconv.FormatUint(v, 10))
	return g.err
}

// WriteFloat64 writes a floating point value. NaN and infinities are errors.
func (g *Generator) WriteFloat64(v float64) error {
	if err := g.beforeValue(); err != nil {
		return err
	}
	b, err := j.Marshal(v)
	if err != nil {
		return g.fail(err)
	}
	g.write(b)
	return g.err
}

// WriteNull writes a null value.
func (g *Generator) WriteNull() error {
	if err := g.beforeValue(); err != nil {
		return err
	}
	g.writeString("null")
	return g.err
}

// WriteRaw writes pre-encoded JSON as a single value. The caller guarantees
// raw is valid JSON.
func (g *Generator) WriteRaw(raw []byte) error {
	if err := g.beforeValue(); err != nil {
		return err
	}
	g.write(raw)
	return g.err
}

// Flush writes buffered output to the underlying writer.
func (g *Generator) Flush() error {
	if g.err != nil {
		return g.err
	}
	if err := g.w.Flush(); err != nil {
		return g.fail(err)
	}
	return nil
}

// Close flushes the output and reports containers left open.
func (g *Generator) Close() error {
	if err := g.Flush(); err != nil {
		return err
	}
	if len(g.stack) > 0 || g.named {
		return g.fail(ErrIncomplete)
	}
	return nil
}

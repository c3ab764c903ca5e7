package restcodec_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/reoring/restcodec"
)

func TestWriteJSON_Compact(t *testing.T) {
	var buf bytes.Buffer
	if err := restcodec.WriteJSON(&buf, empty{}, emptyWriter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "{}" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestWriteJSONArray_Compact(t *testing.T) {
	var buf bytes.Buffer
	if err := restcodec.WriteJSONArray(&buf, []empty{{}, {}}, emptyWriter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "[{},{}]" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestToJSONString_Pretty(t *testing.T) {
	s, err := restcodec.ToJSONString(empty{}, emptyWriter{})
	if err != nil || s != "{ }" {
		t.Fatalf("got %q %v", s, err)
	}
	s, err = restcodec.ToJSONArrayString([]empty{{}, {}}, emptyWriter{})
	if err != nil || s != "[ { }, { } ]" {
		t.Fatalf("got %q %v", s, err)
	}
	s, err = restcodec.ToJSONArrayString([]empty{}, emptyWriter{})
	if err != nil || s != "[ ]" {
		t.Fatalf("got %q %v", s, err)
	}
}

func TestToJSONString_PrettyEntity(t *testing.T) {
	e := entity{ID: "a", Count: 2, Tags: []string{"x", "y"}}
	s, err := restcodec.ToJSONString(e, entityWriter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "{\n  \"id\" : \"a\",\n  \"count\" : 2,\n  \"tags\" : [ \"x\", \"y\" ],\n  \"score\" : null\n}"
	if s != want {
		t.Fatalf("want\n%s\ngot\n%s", want, s)
	}
}

func TestWriteJSON_CompactEntityRoundTrip(t *testing.T) {
	score := 0.25
	e := entity{ID: "<a&b>", Count: -3, Tags: []string{"日本"}, Score: &score}
	var buf bytes.Buffer
	if err := restcodec.WriteJSON(&buf, e, entityWriter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"id":"<a&b>","count":-3,"tags":["日本"],"score":0.25}`
	if buf.String() != want {
		t.Fatalf("want %s, got %s", want, buf.String())
	}
	back, err := restcodec.ReadObjectBytes(buf.Bytes(), entityReader{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.ID != e.ID || back.Count != e.Count || *back.Score != score {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestPrettyNestedObjectsInArray(t *testing.T) {
	var buf bytes.Buffer
	g := restcodec.NewPrettyGenerator(&buf)
	_ = g.WriteStartObject()
	_ = g.WriteFieldName("a")
	_ = g.WriteStartArray()
	_ = g.WriteStartObject()
	_ = restcodec.WriteInt64Field(g, "b", 1)
	_ = g.WriteEndObject()
	_ = g.WriteEndArray()
	_ = g.WriteEndObject()
	if err := g.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "{\n  \"a\" : [ {\n    \"b\" : 1\n  } ]\n}"
	if buf.String() != want {
		t.Fatalf("want\n%s\ngot\n%s", want, buf.String())
	}
}

func TestWriter_ErrorsPropagate(t *testing.T) {
	var buf bytes.Buffer
	if err := restcodec.WriteJSON(&buf, empty{}, failingWriter{}); !errors.Is(err, errBoom) {
		t.Fatalf("want errBoom, got %v", err)
	}
	if err := restcodec.WriteJSONArray(&buf, []empty{{}}, failingWriter{}); !errors.Is(err, errBoom) {
		t.Fatalf("want errBoom, got %v", err)
	}
	if _, err := restcodec.ToJSONString(empty{}, failingWriter{}); !errors.Is(err, errBoom) {
		t.Fatalf("want errBoom, got %v", err)
	}
	if _, err := restcodec.ToJSONArrayString([]empty{{}}, failingWriter{}); !errors.Is(err, errBoom) {
		t.Fatalf("want errBoom, got %v", err)
	}
}

func TestGenerator_StructuralMisuse(t *testing.T) {
	var buf bytes.Buffer

	g := restcodec.NewGenerator(&buf)
	_ = g.WriteStartObject()
	if err := g.WriteString("x"); !errors.Is(err, restcodec.ErrFieldNameExpected) {
		t.Fatalf("want ErrFieldNameExpected, got %v", err)
	}

	g = restcodec.NewGenerator(&buf)
	if err := g.WriteFieldName("x"); !errors.Is(err, restcodec.ErrNotInObject) {
		t.Fatalf("want ErrNotInObject at the root, got %v", err)
	}

	g = restcodec.NewGenerator(&buf)
	_ = g.WriteStartArray()
	if err := g.WriteFieldName("x"); !errors.Is(err, restcodec.ErrNotInObject) {
		t.Fatalf("want ErrNotInObject inside an array, got %v", err)
	}

	g = restcodec.NewGenerator(&buf)
	_ = g.WriteStartObject()
	_ = g.WriteFieldName("x")
	if err := g.WriteFieldName("y"); !errors.Is(err, restcodec.ErrValueExpected) {
		t.Fatalf("want ErrValueExpected, got %v", err)
	}

	g = restcodec.NewGenerator(&buf)
	_ = g.WriteStartObject()
	if err := g.WriteEndArray(); !errors.Is(err, restcodec.ErrUnbalancedEnd) {
		t.Fatalf("want ErrUnbalancedEnd, got %v", err)
	}
	if err := g.WriteEndObject(); !errors.Is(err, restcodec.ErrUnbalancedEnd) {
		t.Fatalf("first error must stick, got %v", err)
	}

	g = restcodec.NewGenerator(&buf)
	_ = g.WriteStartArray()
	if err := g.Close(); !errors.Is(err, restcodec.ErrIncomplete) {
		t.Fatalf("want ErrIncomplete, got %v", err)
	}

	g = restcodec.NewGenerator(&buf)
	if err := g.WriteFloat64(math.NaN()); err == nil {
		t.Fatalf("NaN must be rejected")
	}
}

func TestFieldHelpers(t *testing.T) {
	var buf bytes.Buffer
	g := restcodec.NewGenerator(&buf)
	var nilInt *int8
	five := uint16(5)
	yes := true
	name := "n"
	_ = g.WriteStartObject()
	_ = restcodec.WriteNullableIntField(g, "a", nilInt)
	_ = restcodec.WriteNullableIntField(g, "b", &five)
	_ = restcodec.WriteNullableBoolField(g, "c", &yes)
	_ = restcodec.WriteNullableStringField(g, "d", &name)
	_ = restcodec.WriteNullableStringField(g, "e", nil)
	_ = restcodec.WriteBoolArrayField(g, "f", []bool{true, false})
	_ = restcodec.WriteIntArrayField(g, "g", []int64{1, -2})
	_ = restcodec.WriteFloat64ArrayField(g, "h", []float64{1.5})
	_ = restcodec.WriteNullableObjectField[empty](g, emptyWriter{}, "i", nil)
	_ = restcodec.WriteArrayField[empty](g, emptyWriter{}, "j", []empty{{}})
	_ = restcodec.WriteObjectField[empty](g, emptyWriter{}, "k", empty{})
	_ = g.WriteEndObject()
	if err := g.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"a":null,"b":5,"c":true,"d":"n","e":null,"f":[true,false],"g":[1,-2],"h":[1.5],"i":null,"j":[{}],"k":{}}`
	if buf.String() != want {
		t.Fatalf("want %s, got %s", want, buf.String())
	}
}

type brokenPipe struct{}

func (brokenPipe) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriteJSON_OutputError(t *testing.T) {
	err := restcodec.WriteJSON(brokenPipe{}, empty{}, emptyWriter{})
	if err == nil || !strings.Contains(err.Error(), "broken pipe") {
		t.Fatalf("want broken pipe, got %v", err)
	}
}

package restcodec_test

import (
	"testing"

	"github.com/reoring/restcodec"
)

func readEntity(t *testing.T, in string) (entity, *restcodec.ParseError) {
	t.Helper()
	e, err := restcodec.ReadObjectBytes([]byte(in), entityReader{})
	if err == nil {
		return e, nil
	}
	return e, mustParseError(t, err)
}

func TestReadFields_RepeatedField(t *testing.T) {
	_, pe := readEntity(t, `{"id":"a","id":"b"}`)
	if pe == nil || len(pe.Failures) != 1 {
		t.Fatalf("want one failure, got %v", pe)
	}
	if got := pe.Failures[0].String(); got != "[1:16] Repeated field name: id" {
		t.Fatalf("got %q", got)
	}
}

func TestReadFields_MissingRequired(t *testing.T) {
	_, pe := readEntity(t, `{"count":1}`)
	if pe == nil || pe.Failures[0].String() != "[1:11] Expected field name: id" {
		t.Fatalf("got %v", pe)
	}
}

func TestReadFields_TypeMismatch(t *testing.T) {
	_, pe := readEntity(t, `{"id":"a","count":"x"}`)
	if pe == nil || pe.Failures[0].String() != "[1:19] Expected VALUE_NUMBER_INT but was VALUE_STRING" {
		t.Fatalf("got %v", pe)
	}
}

func TestReadFields_MismatchedContainerIsSkipped(t *testing.T) {
	_, pe := readEntity(t, `{"id":"a","count":{"x":[1]},"tags":"t"}`)
	if pe == nil || len(pe.Failures) != 2 {
		t.Fatalf("want two failures, got %v", pe)
	}
	if pe.Failures[0].Message != "Expected VALUE_NUMBER_INT but was START_OBJECT" {
		t.Fatalf("got %q", pe.Failures[0].Message)
	}
	if pe.Failures[1].Message != "Expected START_ARRAY but was VALUE_STRING" {
		t.Fatalf("got %q", pe.Failures[1].Message)
	}
}

func TestReadFields_UnterminatedObject(t *testing.T) {
	s := restcodec.NewSession(restcodec.StdJSONDriver().NewBytes([]byte(`{"id":"a"`)))
	s.Next()
	if _, ok := (entityReader{}).ReadRequiredObject(s); ok {
		t.Fatalf("expected failure")
	}
	fs := s.Failures()
	if len(fs) != 1 || fs[0].Message != "Expected END_OBJECT but was EOF" {
		t.Fatalf("unexpected failures %v", fs)
	}
}

func TestFieldSet(t *testing.T) {
	var fs restcodec.FieldSet
	fs.Set(0)
	fs.Set(63)
	if !fs.Has(0) || !fs.Has(63) || fs.Has(1) || fs.Len() != 2 {
		t.Fatalf("unexpected set %b", fs)
	}
}

func TestNewFields_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate field")
		}
	}()
	restcodec.NewFields("a", "a")
}

func TestFields_Lookup(t *testing.T) {
	f := restcodec.NewFields("a", "b")
	if i, ok := f.Index("b"); !ok || i != 1 || f.Name(i) != "b" || f.Len() != 2 {
		t.Fatalf("unexpected lookup result")
	}
	if _, ok := f.Index("c"); ok {
		t.Fatalf("unknown name must not resolve")
	}
}

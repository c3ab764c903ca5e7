package json_test

import (
	"errors"
	"io"
	"testing"

	eng "github.com/reoring/restcodec/internal/engine"
	jsonsrc "github.com/reoring/restcodec/source/json"
)

func TestTokens(t *testing.T) {
	src := jsonsrc.NewBytes([]byte("{\"a\":\"b\",\n \"c\":[1.5,true,null,\"d\"]}"))
	want := []struct {
		kind      eng.Kind
		text      string
		line, col int
	}{
		{eng.KindBeginObject, "", 1, 1},
		{eng.KindKey, "a", 1, 2},
		{eng.KindString, "b", 1, 6},
		{eng.KindKey, "c", 2, 2},
		{eng.KindBeginArray, "", 2, 6},
		{eng.KindNumber, "1.5", 2, 7},
		{eng.KindBool, "", 2, 11},
		{eng.KindNull, "", 2, 16},
		{eng.KindString, "d", 2, 21},
		{eng.KindEndArray, "", 2, 24},
		{eng.KindEndObject, "", 2, 25},
	}
	for i, w := range want {
		tok, err := src.NextToken()
		if err != nil {
			t.Fatalf("token %d: %v", i, err)
		}
		text := tok.String
		if tok.Kind == eng.KindNumber {
			text = tok.Number
		}
		if tok.Kind != w.kind || text != w.text || tok.Line != w.line || tok.Column != w.col {
			t.Fatalf("token %d: want %v %q %d:%d, got %v %q %d:%d", i, w.kind, w.text, w.line, w.col, tok.Kind, text, tok.Line, tok.Column)
		}
	}
	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		t.Fatalf("want io.EOF, got %v", err)
	}
}

func TestTruncatedInputIsEOF(t *testing.T) {
	src := jsonsrc.NewBytes([]byte("[1,"))
	var err error
	for i := 0; i < 5 && err == nil; i++ {
		_, err = src.NextToken()
	}
	if !errors.Is(err, io.EOF) {
		t.Fatalf("want io.EOF, got %v", err)
	}
}

package restcodec

import (
	"io"
	"strings"
	"sync"

	eng "github.com/reoring/restcodec/internal/engine"
	gojsonsrc "github.com/reoring/restcodec/source/gojson"
	jsonsrc "github.com/reoring/restcodec/source/json"
)

// tokenKind enumerates JSON token kinds.
type tokenKind int

const (
	_tokenBeginObject tokenKind = iota
	_tokenEndObject
	_tokenBeginArray
	_tokenEndArray
	_tokenKey
	_tokenString
	_tokenNumber
	_tokenBool
	_tokenNull
	_tokenEOF
)

// Exported aliases so generated code can reference token kinds without relying
// on unstable APIs.
type TokenKind = tokenKind

const (
	TokenBeginObject TokenKind = _tokenBeginObject
	TokenEndObject   TokenKind = _tokenEndObject
	TokenBeginArray  TokenKind = _tokenBeginArray
	TokenEndArray    TokenKind = _tokenEndArray
	TokenKey         TokenKind = _tokenKey
	TokenString      TokenKind = _tokenString
	TokenNumber      TokenKind = _tokenNumber
	TokenBool        TokenKind = _tokenBool
	TokenNull        TokenKind = _tokenNull
	TokenEOF         TokenKind = _tokenEOF
)

// String renders the kind the way failure messages name it.
func (k tokenKind) String() string {
	switch k {
	case _tokenBeginObject:
		return "START_OBJECT"
	case _tokenEndObject:
		return "END_OBJECT"
	case _tokenBeginArray:
		return "START_ARRAY"
	case _tokenEndArray:
		return "END_ARRAY"
	case _tokenKey:
		return "FIELD_NAME"
	case _tokenString:
		return "VALUE_STRING"
	case _tokenNumber:
		return "VALUE_NUMBER"
	case _tokenBool:
		return "VALUE_BOOLEAN"
	case _tokenNull:
		return "VALUE_NULL"
	default:
		return "EOF"
	}
}

// Token describes a token in the input stream.
type Token struct {
	Kind   tokenKind
	String string // Stored for key/string tokens.
	Number string // Stored as text; readers parse it to the field's width.
	Bool   bool
	Offset int64 // Byte offset of the token start (-1 when unknown).
	Line   int   // 1-based line of the token start.
	Column int   // 1-based column of the token start; 0 before any input.
}

// Describe names the token for failure messages. Booleans render as
// VALUE_TRUE/VALUE_FALSE and numbers as VALUE_NUMBER_INT/VALUE_NUMBER_FLOAT.
func (t Token) Describe() string {
	switch t.Kind {
	case _tokenBool:
		if t.Bool {
			return "VALUE_TRUE"
		}
		return "VALUE_FALSE"
	case _tokenNumber:
		if strings.ContainsAny(t.Number, ".eE") {
			return numberFloat
		}
		return numberInt
	}
	return t.Kind.String()
}

const (
	numberInt   = "VALUE_NUMBER_INT"
	numberFloat = "VALUE_NUMBER_FLOAT"
)

// Source abstracts over polymorphic input sources.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source via a pluggable SPI. The default
// implementation is based on goccy/go-json and may be swapped with SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = goJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default go-json backed driver.
func UseDefaultJSONDriver() { SetJSONDriver(goJSONDriver{}) }

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// GoJSONDriver returns the goccy/go-json backed driver (the default).
func GoJSONDriver() JSONDriver { return goJSONDriver{} }

// StdJSONDriver returns a driver backed by encoding/json.
func StdJSONDriver() JSONDriver { return stdJSONDriver{} }

// DriverByName resolves "go-json" or "encoding/json".
func DriverByName(name string) (JSONDriver, bool) {
	switch name {
	case "", goJSONDriver{}.Name():
		return goJSONDriver{}, true
	case stdJSONDriver{}.Name():
		return stdJSONDriver{}, true
	}
	return nil, false
}

type goJSONDriver struct{}

func (goJSONDriver) NewReader(r io.Reader) Source { return SourceFromEngine(gojsonsrc.NewReader(r)) }
func (goJSONDriver) NewBytes(b []byte) Source     { return SourceFromEngine(gojsonsrc.NewBytes(b)) }
func (goJSONDriver) Name() string                 { return "go-json" }

type stdJSONDriver struct{}

func (stdJSONDriver) NewReader(r io.Reader) Source { return SourceFromEngine(jsonsrc.NewReader(r)) }
func (stdJSONDriver) NewBytes(b []byte) Source     { return SourceFromEngine(jsonsrc.NewBytes(b)) }
func (stdJSONDriver) Name() string                 { return "encoding/json" }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return getJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return getJSONDriver().NewBytes(b) }

// SourceFromEngine wraps an engine.TokenSource as a restcodec.Source.
func SourceFromEngine(inner eng.TokenSource) Source {
	return &engineSourceAdapter{inner: inner}
}

// EnforceSource wraps a Source with depth and size limits taken from opt.
// Limit violations surface from NextToken as errors and are recorded by the
// session as failures.
func EnforceSource(s Source, opt ParseOpt) Source {
	if opt.MaxDepth <= 0 && opt.MaxBytes <= 0 {
		return s
	}
	var inner eng.TokenSource
	if ea, ok := s.(*engineSourceAdapter); ok {
		inner = ea.inner
	} else {
		inner = &tokenSourceAdapter{inner: s}
	}
	return SourceFromEngine(eng.WrapWithEnforcement(inner, eng.EnforceOptions{
		MaxDepth: opt.MaxDepth,
		MaxBytes: opt.MaxBytes,
	}))
}

type engineSourceAdapter struct {
	inner eng.TokenSource
}

func (s *engineSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{
		Kind:   fromEngineKind(t.Kind),
		String: t.String,
		Number: t.Number,
		Bool:   t.Bool,
		Offset: t.Offset,
		Line:   t.Line,
		Column: t.Column,
	}, nil
}

func (s *engineSourceAdapter) Location() int64 { return s.inner.Location() }

func (s *engineSourceAdapter) Position() (line, column int) {
	if p, ok := s.inner.(eng.Positioner); ok {
		return p.Position()
	}
	return 1, 0
}

func (s *engineSourceAdapter) Path() string {
	if p, ok := s.inner.(eng.PathTracker); ok {
		return p.Path()
	}
	return ""
}

// tokenSourceAdapter exposes a foreign Source to the engine.
type tokenSourceAdapter struct {
	inner Source
}

func (a *tokenSourceAdapter) NextToken() (eng.Token, error) {
	t, err := a.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{
		Kind:   toEngineKind(t.Kind),
		String: t.String,
		Number: t.Number,
		Bool:   t.Bool,
		Offset: t.Offset,
		Line:   t.Line,
		Column: t.Column,
	}, nil
}

func (a *tokenSourceAdapter) Location() int64 { return a.inner.Location() }

func (a *tokenSourceAdapter) Position() (line, column int) {
	if p, ok := a.inner.(eng.Positioner); ok {
		return p.Position()
	}
	return 1, 0
}

func fromEngineKind(k eng.Kind) tokenKind {
	switch k {
	case eng.KindBeginObject:
		return _tokenBeginObject
	case eng.KindEndObject:
		return _tokenEndObject
	case eng.KindBeginArray:
		return _tokenBeginArray
	case eng.KindEndArray:
		return _tokenEndArray
	case eng.KindKey:
		return _tokenKey
	case eng.KindString:
		return _tokenString
	case eng.KindNumber:
		return _tokenNumber
	case eng.KindBool:
		return _tokenBool
	case eng.KindNull:
		return _tokenNull
	default:
		return _tokenEOF
	}
}

func toEngineKind(k tokenKind) eng.Kind {
	switch k {
	case _tokenBeginObject:
		return eng.KindBeginObject
	case _tokenEndObject:
		return eng.KindEndObject
	case _tokenBeginArray:
		return eng.KindBeginArray
	case _tokenEndArray:
		return eng.KindEndArray
	case _tokenKey:
		return eng.KindKey
	case _tokenString:
		return eng.KindString
	case _tokenNumber:
		return eng.KindNumber
	case _tokenBool:
		return eng.KindBool
	case _tokenNull:
		return eng.KindNull
	default:
		return eng.KindEOF
	}
}

package engine

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
	// KindEOF marks the end of input. Sources never return it from NextToken;
	// callers synthesize it when NextToken reports io.EOF.
	KindEOF
)

// Token represents a streaming token with its input position.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	// Offset is the byte offset of the first byte of the token (-1 when unknown).
	Offset int64
	// Line and Column are 1-based and locate the first character of the token.
	// A zero Column means no character has been consumed on that line yet.
	Line   int
	Column int
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	// Location returns the byte offset just past the last token (-1 if unknown).
	Location() int64
}

// Positioner is implemented by sources that can report the line and column
// reached so far, used to place end-of-input failures.
type Positioner interface {
	Position() (line, column int)
}

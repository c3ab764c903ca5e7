package restcodec

import (
	"errors"
	"strconv"
	"strings"
)

// parseErrorPrefix heads every ParseError message.
const parseErrorPrefix = "The following error(s) were found in the content being parsed:\n\t"

// Failure is a single data failure recorded while reading.
type Failure struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Path    string `json:"path,omitempty"` // JSON Pointer of the offending token when known.
	Message string `json:"message"`
}

// String renders the failure as "[line:column] message".
func (f Failure) String() string {
	var b strings.Builder
	b.Grow(len(f.Message) + 12)
	b.WriteByte('[')
	b.WriteString(strconv.Itoa(f.Line))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(f.Column))
	b.WriteString("] ")
	b.WriteString(f.Message)
	return b.String()
}

// ParseError carries every failure collected while reading a document.
// Only the top-level read entry points return it.
type ParseError struct {
	Failures []Failure
}

func (e *ParseError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.String()
	}
	return parseErrorPrefix + strings.Join(msgs, "\n\t")
}

// Messages returns the rendered failures in the order they were recorded.
func (e *ParseError) Messages() []string {
	out := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		out[i] = f.String()
	}
	return out
}

// AsParseError extracts a *ParseError from err using errors.As.
func AsParseError(err error) (*ParseError, bool) {
	if err == nil {
		return nil, false
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

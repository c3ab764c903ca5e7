package restcodec

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/reoring/restcodec/i18n"
	eng "github.com/reoring/restcodec/internal/engine"
)

// LevelTrace is the slog level used for high-volume diagnostics such as
// type probes. It sits below slog.LevelDebug.
const LevelTrace = slog.Level(-8)

// Session walks a token stream on behalf of generated readers and collects
// data failures. A Session is created per top-level read and is not safe for
// concurrent use.
type Session struct {
	src      Source
	cur      Token
	eof      bool
	failures []Failure
	logger   *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger used for diagnostics. nil keeps slog.Default().
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession returns a session positioned before the first token. Call Next to
// move to the first token.
func NewSession(src Source, opts ...SessionOption) *Session {
	s := &Session{
		src:    src,
		cur:    Token{Kind: _tokenEOF, Offset: -1, Line: 1},
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Next advances to the next token and returns it. At end of input, and after
// a tokenizer error, it keeps returning an EOF token.
func (s *Session) Next() Token {
	if s.eof {
		return s.cur
	}
	tok, err := s.src.NextToken()
	if err != nil {
		s.eof = true
		s.cur = s.eofToken()
		if !errors.Is(err, io.EOF) {
			s.recordTokenError(err)
		}
		return s.cur
	}
	s.cur = tok
	return tok
}

// Current returns the token the session is positioned on.
func (s *Session) Current() Token { return s.cur }

// AtEOF reports whether the input has been exhausted.
func (s *Session) AtEOF() bool { return s.eof }

// Logger returns the session's logger.
func (s *Session) Logger() *slog.Logger { return s.logger }

// HandleValidationFailure records msg at the location of the current token.
func (s *Session) HandleValidationFailure(msg string) {
	s.failures = append(s.failures, Failure{
		Line:    s.cur.Line,
		Column:  s.cur.Column,
		Path:    s.path(),
		Message: msg,
	})
}

// Fail is shorthand for HandleValidationFailure.
func (s *Session) Fail(msg string) { s.HandleValidationFailure(msg) }

// Unexpected records "Expected <expected> but was <current token>".
func (s *Session) Unexpected(expected string) {
	s.Fail(i18n.T(i18n.CodeUnexpectedToken, map[string]string{
		"expected": expected,
		"actual":   s.cur.Describe(),
	}))
}

// Expect reports whether the current token has kind k and records an
// unexpected-token failure otherwise.
func (s *Session) Expect(k TokenKind) bool {
	if s.cur.Kind == k {
		return true
	}
	s.Unexpected(k.String())
	return false
}

// HasFailures reports whether any failure has been recorded.
func (s *Session) HasFailures() bool { return len(s.failures) > 0 }

// FailureCount returns the number of recorded failures.
func (s *Session) FailureCount() int { return len(s.failures) }

// Failures returns a copy of the recorded failures.
func (s *Session) Failures() []Failure {
	out := make([]Failure, len(s.failures))
	copy(out, s.failures)
	return out
}

// Err returns nil when no failure was recorded and a *ParseError otherwise.
func (s *Session) Err() error {
	if len(s.failures) == 0 {
		return nil
	}
	return &ParseError{Failures: s.Failures()}
}

// SkipValue consumes the value the session is positioned on. For containers it
// stops on the matching end token, or on EOF when the input is truncated.
func (s *Session) SkipValue() {
	switch s.cur.Kind {
	case _tokenBeginObject, _tokenBeginArray:
	default:
		return
	}
	depth := 1
	for depth > 0 {
		switch s.Next().Kind {
		case _tokenBeginObject, _tokenBeginArray:
			depth++
		case _tokenEndObject, _tokenEndArray:
			depth--
		case _tokenEOF:
			return
		}
	}
}

func (s *Session) debug(msg string, args ...any) {
	if s.logger.Enabled(context.Background(), slog.LevelDebug) {
		s.logger.Debug(msg, args...)
	}
}

func (s *Session) eofToken() Token {
	t := Token{Kind: _tokenEOF, Offset: s.src.Location(), Line: s.cur.Line, Column: s.cur.Column}
	if p, ok := s.src.(eng.Positioner); ok {
		t.Line, t.Column = p.Position()
	}
	return t
}

func (s *Session) recordTokenError(err error) {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		s.Fail(ie.Message)
		return
	}
	s.Fail(i18n.T(i18n.CodeMalformed, map[string]string{"detail": malformedDetail(err)}))
}

func (s *Session) path() string {
	if p, ok := s.src.(eng.PathTracker); ok {
		return p.Path()
	}
	return ""
}

// malformedDetail trims the tokenizer prefix so the failure reads naturally.
func malformedDetail(err error) string {
	return strings.TrimPrefix(err.Error(), "json: ")
}

package engine

import (
	"strconv"
	"strings"
)

// Enforcement wrapper for TokenSource to apply max depth checks and max bytes
// truncation in a streaming fashion.

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	MaxDepth int
	MaxBytes int64
	// IssueSink is an optional callback to receive issues before they are
	// returned as errors.
	IssueSink func(SimpleIssue)
}

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

// WrapWithEnforcement returns a TokenSource that enforces maximum nesting
// depth and maximum consumed bytes. It returns inner unchanged when both
// limits are disabled.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	if opt.MaxDepth <= 0 && opt.MaxBytes <= 0 {
		return inner
	}
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
	depth int
	path  string
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	path := e.currentPathForToken(tok)
	npath := normalizeIssuePath(path)

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		kind := kindArray
		if tok.Kind == KindBeginObject {
			kind = kindObject
		}
		e.stack = append(e.stack, frame{kind: kind, expectingKey: kind == kindObject, path: path})
		e.depth++
		if e.opt.MaxDepth > 0 && e.depth > e.opt.MaxDepth {
			return Token{}, e.fail(SimpleIssue{Code: "max_depth", Path: npath, Message: "maximum nesting depth of " + strconv.Itoa(e.opt.MaxDepth) + " exceeded"})
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		if e.depth > 0 {
			e.depth--
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			top.expectingKey = false
			top.pendingKey = tok.String
		}
	case KindString, KindNumber, KindBool, KindNull:
		e.valueDone()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off >= 0 && off > e.opt.MaxBytes {
			return Token{}, e.fail(SimpleIssue{Code: "max_bytes", Path: npath, Message: "maximum content length of " + strconv.FormatInt(e.opt.MaxBytes, 10) + " bytes exceeded"})
		}
	}

	return tok, nil
}

func (e *enforcingTokenSource) fail(si SimpleIssue) error {
	if e.opt.IssueSink != nil {
		e.opt.IssueSink(si)
	}
	return IssueError{si}
}

func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}
}

func (e *enforcingTokenSource) currentPathForToken(tok Token) string {
	if len(e.stack) == 0 {
		e.path = ""
		return ""
	}

	var path string
	top := &e.stack[len(e.stack)-1]
	switch tok.Kind {
	case KindKey:
		path = joinJSONPointer(top.path, tok.String)
	case KindBeginObject, KindBeginArray, KindString, KindNumber, KindBool, KindNull:
		switch {
		case top.kind == kindArray:
			path = joinJSONPointer(top.path, strconv.Itoa(top.nextIndex))
			top.nextIndex++
		case !top.expectingKey:
			path = joinJSONPointer(top.path, top.pendingKey)
		default:
			path = top.path
		}
	default:
		path = top.path
	}

	e.path = path
	return path
}

// Path returns the JSON Pointer of the most recent token.
func (e *enforcingTokenSource) Path() string { return normalizeIssuePath(e.path) }

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }

// Position forwards to the wrapped source when it tracks positions.
func (e *enforcingTokenSource) Position() (line, column int) {
	if p, ok := e.inner.(Positioner); ok {
		return p.Position()
	}
	return 1, 0
}

// PathTracker is implemented by sources that know the JSON Pointer of the
// most recent token.
type PathTracker interface {
	Path() string
}

func normalizeIssuePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapeJSONPointerToken(s string) string {
	return jsonPointerEscaper.Replace(s)
}

func joinJSONPointer(base, token string) string {
	if base == "" {
		return "/" + escapeJSONPointerToken(token)
	}
	return base + "/" + escapeJSONPointerToken(token)
}

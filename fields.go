package restcodec

import (
	"fmt"
	"log/slog"
	"math/bits"

	"github.com/reoring/restcodec/i18n"
)

// FieldSet is a bitset of field indexes seen in one object.
type FieldSet uint64

// Has reports whether field i is set.
func (fs FieldSet) Has(i int) bool { return fs&(1<<uint(i)) != 0 }

// Set marks field i.
func (fs *FieldSet) Set(i int) { *fs |= 1 << uint(i) }

// Len returns the number of fields set.
func (fs FieldSet) Len() int { return bits.OnesCount64(uint64(fs)) }

// Fields describes the known fields of an object type. Generated readers build
// one per type at package initialisation and share it between goroutines.
type Fields struct {
	names    []string
	index    map[string]int
	required FieldSet
}

// MaxFields is the number of fields a single Fields can track.
const MaxFields = 64

// NewFields returns the field table for names, in index order. It panics on
// duplicates or when there are more than MaxFields names.
func NewFields(names ...string) *Fields {
	if len(names) > MaxFields {
		panic(fmt.Sprintf("restcodec: %d fields exceed the limit of %d", len(names), MaxFields))
	}
	f := &Fields{names: names, index: make(map[string]int, len(names))}
	for i, n := range names {
		if _, dup := f.index[n]; dup {
			panic("restcodec: duplicate field " + n)
		}
		f.index[n] = i
	}
	return f
}

// Require marks names as required and returns f. It panics on unknown names.
func (f *Fields) Require(names ...string) *Fields {
	for _, n := range names {
		i, ok := f.index[n]
		if !ok {
			panic("restcodec: unknown field " + n)
		}
		f.required.Set(i)
	}
	return f
}

// Index returns the index of name.
func (f *Fields) Index(name string) (int, bool) {
	i, ok := f.index[name]
	return i, ok
}

// Name returns the name of field i.
func (f *Fields) Name(i int) string { return f.names[i] }

// Len returns the number of fields.
func (f *Fields) Len() int { return len(f.names) }

// ReadFields iterates over the entries of the object the session is
// positioned on and calls handle with the session positioned on each known
// field's value. handle must consume exactly that value.
//
// Repeated fields are reported and their later values skipped. Unknown fields
// are skipped and logged at debug level. Required fields missing at the end of
// the object are reported. ReadFields returns false when the session holds
// failures.
func ReadFields(s *Session, f *Fields, handle func(s *Session, field int)) bool {
	if !BeginObject(s) {
		return false
	}
	var seen FieldSet
	for {
		tok := s.Next()
		switch tok.Kind {
		case _tokenEndObject:
			for i := range f.names {
				if f.required.Has(i) && !seen.Has(i) {
					s.Fail(i18n.T(i18n.CodeMissingField, map[string]string{"name": f.names[i]}))
				}
			}
			return !s.HasFailures()
		case _tokenKey:
		case _tokenEOF:
			s.Unexpected(TokenEndObject.String())
			return false
		default:
			s.Unexpected(TokenKey.String())
			s.SkipValue()
			continue
		}

		name := tok.String
		s.Next()
		i, known := f.index[name]
		if !known {
			s.debug("ignoring unexpected field name",
				slog.Int("line", tok.Line), slog.Int("column", tok.Column), slog.String("field", name))
			s.SkipValue()
			continue
		}
		if seen.Has(i) {
			s.Fail(i18n.T(i18n.CodeRepeatedField, map[string]string{"name": name}))
			s.SkipValue()
			continue
		}
		seen.Set(i)
		handle(s, i)
	}
}

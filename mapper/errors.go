package mapper

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/reoring/restcodec/i18n"
)

// ErrUnsupportedType matches, via errors.Is, every error returned for a type
// without a usable codec.
var ErrUnsupportedType = errors.New("unsupported type")

// UnsupportedTypeError names the type that has no usable codec.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return i18n.T(i18n.CodeUnsupportedType, map[string]string{"type": typeName(e.Type)})
}

// Is reports whether target is ErrUnsupportedType.
func (e *UnsupportedTypeError) Is(target error) bool { return target == ErrUnsupportedType }

func unsupported(t reflect.Type) error {
	return errors.WithStack(&UnsupportedTypeError{Type: t})
}

func notASlice(v any) error {
	return errors.New(i18n.T(i18n.CodeNotASlice, map[string]string{"type": typeName(reflect.TypeOf(v))}))
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}

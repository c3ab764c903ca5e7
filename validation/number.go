package validation

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/reoring/restcodec/i18n"
)

// Number is the set of numeric kinds a RangeValidator accepts.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// RangeValidator checks that a value lies within an inclusive range.
type RangeValidator[N Number] struct {
	min, max N
}

// NewRangeValidator returns a validator for values in [min, max].
func NewRangeValidator[N Number](min, max N) (*RangeValidator[N], error) {
	if min > max {
		return nil, errors.New(i18n.T(i18n.CodeMinExceedsMax, map[string]string{
			"minName": "minimumValue",
			"min":     fmt.Sprint(min),
			"maxName": "maximumValue",
			"max":     fmt.Sprint(max),
		}))
	}
	return &RangeValidator[N]{min: min, max: max}, nil
}

// MustRangeValidator is like NewRangeValidator but panics on error.
func MustRangeValidator[N Number](min, max N) *RangeValidator[N] {
	v, err := NewRangeValidator(min, max)
	if err != nil {
		panic(err)
	}
	return v
}

// NewByteValidator returns a validator for 8-bit integers.
func NewByteValidator(min, max int8) (*RangeValidator[int8], error) { return NewRangeValidator(min, max) }

// NewShortValidator returns a validator for 16-bit integers.
func NewShortValidator(min, max int16) (*RangeValidator[int16], error) {
	return NewRangeValidator(min, max)
}

// NewIntValidator returns a validator for 32-bit integers.
func NewIntValidator(min, max int32) (*RangeValidator[int32], error) { return NewRangeValidator(min, max) }

// NewLongValidator returns a validator for 64-bit integers.
func NewLongValidator(min, max int64) (*RangeValidator[int64], error) { return NewRangeValidator(min, max) }

// NewFloatValidator returns a validator for 32-bit floats.
func NewFloatValidator(min, max float32) (*RangeValidator[float32], error) {
	return NewRangeValidator(min, max)
}

// NewDoubleValidator returns a validator for 64-bit floats.
func NewDoubleValidator(min, max float64) (*RangeValidator[float64], error) {
	return NewRangeValidator(min, max)
}

// Min returns the inclusive lower bound.
func (v *RangeValidator[N]) Min() N { return v.min }

// Max returns the inclusive upper bound.
func (v *RangeValidator[N]) Max() N { return v.max }

// check returns the failure message for value, or "" when it is in range.
// NaN is outside every range.
func (v *RangeValidator[N]) check(value N) string {
	if !(value >= v.min) {
		return i18n.T(i18n.CodeTooSmall, map[string]string{"value": fmt.Sprint(value), "min": fmt.Sprint(v.min)})
	}
	if value > v.max {
		return i18n.T(i18n.CodeTooBig, map[string]string{"value": fmt.Sprint(value), "max": fmt.Sprint(v.max)})
	}
	return ""
}

// RequireValidValue returns value, or an *InvalidArgumentError when it is out
// of range.
func (v *RangeValidator[N]) RequireValidValue(param string, value N) (N, error) {
	if msg := v.check(value); msg != "" {
		return 0, invalid(param, msg)
	}
	return value, nil
}

// RequireValidValueOrNull accepts nil and otherwise behaves as
// RequireValidValue.
func (v *RangeValidator[N]) RequireValidValueOrNull(param string, value *N) (*N, error) {
	if value == nil {
		return nil, nil
	}
	if _, err := v.RequireValidValue(param, *value); err != nil {
		return nil, err
	}
	return value, nil
}

// ValidateValue reports an out of range value to h.
func (v *RangeValidator[N]) ValidateValue(value N, h Handler) bool {
	if msg := v.check(value); msg != "" {
		h.HandleValidationFailure(msg)
		return false
	}
	return true
}

// ValidateValueOrNull accepts nil and otherwise behaves as ValidateValue.
func (v *RangeValidator[N]) ValidateValueOrNull(value *N, h Handler) bool {
	if value == nil {
		return true
	}
	return v.ValidateValue(*value, h)
}

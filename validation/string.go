package validation

import (
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/reoring/restcodec/i18n"
)

// StringValidator checks a string's length in code points and that the whole
// value matches a regular expression.
type StringValidator struct {
	minLength int
	maxLength int
	pattern   string
	re        *regexp.Regexp
}

// NewStringValidator returns a validator for values between minLength and
// maxLength code points that match pattern in full.
func NewStringValidator(minLength, maxLength int, pattern string) (*StringValidator, error) {
	if minLength < 1 {
		return nil, errors.New(i18n.T(i18n.CodeMinLength, map[string]string{
			"name":  "minimumLength",
			"value": strconv.Itoa(minLength),
			"min":   "1",
		}))
	}
	if minLength > maxLength {
		return nil, errors.New(i18n.T(i18n.CodeMinExceedsMax, map[string]string{
			"minName": "minimumLength",
			"min":     strconv.Itoa(minLength),
			"maxName": "maximumLength",
			"max":     strconv.Itoa(maxLength),
		}))
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid pattern %q", pattern)
	}
	return &StringValidator{minLength: minLength, maxLength: maxLength, pattern: pattern, re: re}, nil
}

// MustStringValidator is like NewStringValidator but panics on error. It is
// meant for package-level variables in generated code.
func MustStringValidator(minLength, maxLength int, pattern string) *StringValidator {
	v, err := NewStringValidator(minLength, maxLength, pattern)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *StringValidator) tooShort(s string) string {
	return i18n.T(i18n.CodeTooShort, map[string]string{"value": s, "min": strconv.Itoa(v.minLength)})
}

func (v *StringValidator) tooLong(s string) string {
	return i18n.T(i18n.CodeTooLong, map[string]string{"value": s, "max": strconv.Itoa(v.maxLength)})
}

func (v *StringValidator) mismatch(s string) string {
	return i18n.T(i18n.CodePattern, map[string]string{"value": s, "pattern": v.pattern})
}

// RequireValidValue returns value, or an *InvalidArgumentError describing the
// first problem found.
func (v *StringValidator) RequireValidValue(param, value string) (string, error) {
	n := utf8.RuneCountInString(value)
	switch {
	case n < v.minLength:
		return "", invalid(param, v.tooShort(value))
	case n > v.maxLength:
		return "", invalid(param, v.tooLong(value))
	case !v.re.MatchString(value):
		return "", invalid(param, v.mismatch(value))
	}
	return value, nil
}

// RequireValidValueOrEmpty accepts the empty string and otherwise behaves as
// RequireValidValue.
func (v *StringValidator) RequireValidValueOrEmpty(param, value string) (string, error) {
	if value == "" {
		return value, nil
	}
	return v.RequireValidValue(param, value)
}

// ValidateValue reports problems with value to h. A length problem and a
// pattern mismatch are reported independently.
func (v *StringValidator) ValidateValue(value string, h Handler) bool {
	valid := true
	n := utf8.RuneCountInString(value)
	if n < v.minLength {
		valid = false
		h.HandleValidationFailure(v.tooShort(value))
	} else if n > v.maxLength {
		valid = false
		h.HandleValidationFailure(v.tooLong(value))
	}
	if !v.re.MatchString(value) {
		valid = false
		h.HandleValidationFailure(v.mismatch(value))
	}
	return valid
}

// ValidateValueOrEmpty accepts the empty string and otherwise behaves as
// ValidateValue.
func (v *StringValidator) ValidateValueOrEmpty(value string, h Handler) bool {
	if value == "" {
		return true
	}
	return v.ValidateValue(value, h)
}

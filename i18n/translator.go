package i18n

import (
	"strings"
	"sync"
)

// Message codes shared by readers, validators and the mapper.
const (
	CodeUnexpectedToken = "unexpected_token"
	CodeMalformed       = "malformed"
	CodeRepeatedField   = "repeated_field"
	CodeMissingField    = "missing_field"
	CodeOutOfRange      = "out_of_range"
	CodeInvalidArgument = "invalid_argument"
	CodeTooSmall        = "too_small"
	CodeTooBig          = "too_big"
	CodeTooShort        = "too_short"
	CodeTooLong         = "too_long"
	CodePattern         = "pattern"
	CodeBlank           = "blank"
	CodeInvalidTime     = "invalid_time"
	CodeUnsupportedType = "unsupported_type"
	CodeNotASlice       = "not_a_slice"
	CodeMinExceedsMax   = "min_exceeds_max"
	CodeMinLength       = "min_length"
	CodeAsyncTimeout    = "async_timeout"
)

// Translator retrieves localized messages for message codes.
// data provides the values substituted for {name} placeholders.
type Translator interface {
	Message(code string, data map[string]string) string
}

var catalogs = map[string]map[string]string{
	"en": {
		CodeUnexpectedToken: "Expected {expected} but was {actual}",
		CodeMalformed:       "Malformed JSON: {detail}",
		CodeRepeatedField:   "Repeated field name: {name}",
		CodeMissingField:    "Expected field name: {name}",
		CodeOutOfRange:      "Numeric value ({value}) out of range of {type}",
		CodeInvalidArgument: "Invalid argument for parameter {parameter}: {message}",
		CodeTooSmall:        "{value} is less than the minimum permitted value of {min}",
		CodeTooBig:          "{value} is greater than the maximum permitted value of {max}",
		CodeTooShort:        "'{value}' is shorter than the minimum permitted length of {min}",
		CodeTooLong:         "'{value}' is longer than the maximum permitted length of {max}",
		CodePattern:         "'{value}' does not match pattern '{pattern}'",
		CodeBlank:           "Value must not be blank string: '{value}'",
		CodeInvalidTime:     "'{value}' is not a valid RFC 3339 timestamp",
		CodeUnsupportedType: "Unsupported type {type}",
		CodeNotASlice:       "Expected slice but was {type}",
		CodeMinExceedsMax:   "Parameter '{minName}' ({min}) must be less than or equal to parameter '{maxName}' ({max})",
		CodeMinLength:       "Parameter '{name}' ({value}) must be greater than or equal to {min}",
		CodeAsyncTimeout:    "asynchronous request timed out",
	},
	"ja": {
		CodeUnexpectedToken: "{expected} が必要ですが {actual} でした",
		CodeMalformed:       "JSON の形式が不正です: {detail}",
		CodeRepeatedField:   "フィールド名が重複しています: {name}",
		CodeMissingField:    "必須フィールドがありません: {name}",
		CodeOutOfRange:      "数値 ({value}) は {type} の範囲外です",
		CodeInvalidArgument: "パラメータ {parameter} の引数が不正です: {message}",
		CodeTooSmall:        "{value} は最小値 {min} を下回っています",
		CodeTooBig:          "{value} は最大値 {max} を上回っています",
		CodeTooShort:        "'{value}' は最小長 {min} より短いです",
		CodeTooLong:         "'{value}' は最大長 {max} より長いです",
		CodePattern:         "'{value}' はパターン '{pattern}' に一致しません",
		CodeBlank:           "空白のみの文字列は指定できません: '{value}'",
		CodeInvalidTime:     "'{value}' は RFC 3339 形式の日時ではありません",
		CodeUnsupportedType: "未対応の型です: {type}",
		CodeNotASlice:       "スライスが必要ですが {type} でした",
		CodeMinExceedsMax:   "パラメータ '{minName}' ({min}) はパラメータ '{maxName}' ({max}) 以下である必要があります",
		CodeMinLength:       "パラメータ '{name}' ({value}) は {min} 以上である必要があります",
		CodeAsyncTimeout:    "非同期リクエストがタイムアウトしました",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := catalogs[t.lang][code]
	if !ok {
		if tmpl, ok = catalogs["en"][code]; !ok {
			return code
		}
	}
	return Expand(tmpl, data)
}

// Expand substitutes {name} placeholders in tmpl with values from data.
// Unknown placeholders are left as is.
func Expand(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}

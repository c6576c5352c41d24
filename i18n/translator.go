package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional values to embed in the message (for example,
// "min", "max" or "field").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"invalid_type":   "invalid type",
		"required":       "value is required",
		"unknown_key":    "unknown field {field}",
		"too_short":      "shorter than {min}",
		"too_long":       "longer than {max}",
		"too_small":      "less than {min}",
		"too_big":        "greater than {max}",
		"pattern":        "does not match {pattern}",
		"invalid_enum":   "not one of the allowed values",
		"invalid_format": "invalid format",
		"uniqueness":     "duplicate value",
		"parse_error":    "parse error",
		"duplicate_key":  "duplicate key {key}",
	},
	"ja": {
		"invalid_type":   "型が不正です",
		"required":       "値が必要です",
		"unknown_key":    "未知のフィールドです: {field}",
		"too_short":      "{min} より短いです",
		"too_long":       "{max} より長いです",
		"too_small":      "{min} より小さいです",
		"too_big":        "{max} より大きいです",
		"pattern":        "{pattern} に一致しません",
		"invalid_enum":   "許可された値ではありません",
		"invalid_format": "形式が不正です",
		"uniqueness":     "値が重複しています",
		"parse_error":    "解析エラー",
		"duplicate_key":  "キーが重複しています: {key}",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }

package i18n

import "strings"

// Message ids. Validation issue codes reuse these, with the member variants
// distinguishing per-element failures.
const (
	InvalidType       = "invalid_type"
	InvalidMemberType = "invalid_member_type"
	Required          = "required"
	InvalidEnum       = "invalid_enum"
	TooSmall          = "too_small"
	TooBig            = "too_big"
	TooShort          = "too_short"
	TooLong           = "too_long"
	Pattern           = "pattern"
	InvalidPattern    = "invalid_pattern"
	BoundsInverted    = "bounds_inverted"
)

// Translator retrieves messages for message ids. data holds the values
// substituted into {placeholders} (for example "name", "expected", "value").
type Translator interface {
	Message(id string, data map[string]string) string
}

// dictTranslator is the built-in template-based Translator.
type dictTranslator struct {
	templates map[string]string
}

var english = map[string]string{
	InvalidType:       `The value for "{name}" is not of type "{expected}": {value}`,
	InvalidMemberType: `The value "{value}" for "{name}" is not of type "{expected}".`,
	Required:          `The value for "{name}" is required.`,
	InvalidEnum:       `The value "{value}" for "{name}" not in enumeration {enum}.`,
	TooSmall:          `The value of "{value}" for "{name}" fails min of {bound}.`,
	TooBig:            `The value of "{value}" for "{name}" fails max of {bound}.`,
	TooShort:          `The length of "{value}" for "{name}" fails min of {bound}.`,
	TooLong:           `The length of "{value}" for "{name}" fails max of {bound}.`,
	Pattern:           `Value "{value}" for {name} does not meet regex: {pattern}`,
	InvalidPattern:    `The value for "{name}" is not a valid regex: {value}`,
	BoundsInverted:    `The value for "{name}" is greater than "{other}": {value} > {bound}`,
}

var japanese = map[string]string{
	InvalidType:       `"{name}" の値が型 "{expected}" ではありません: {value}`,
	InvalidMemberType: `"{name}" の要素 "{value}" が型 "{expected}" ではありません。`,
	Required:          `"{name}" の値は必須です。`,
	InvalidEnum:       `"{name}" の値 "{value}" は列挙 {enum} に含まれていません。`,
	TooSmall:          `"{name}" の値 "{value}" が最小値 {bound} を下回っています。`,
	TooBig:            `"{name}" の値 "{value}" が最大値 {bound} を超えています。`,
	TooShort:          `"{name}" の値 "{value}" の長さが最小 {bound} を下回っています。`,
	TooLong:           `"{name}" の値 "{value}" の長さが最大 {bound} を超えています。`,
	Pattern:           `{name} の値 "{value}" が正規表現に一致しません: {pattern}`,
	InvalidPattern:    `"{name}" の値は正しい正規表現ではありません: {value}`,
	BoundsInverted:    `"{name}" の値が "{other}" より大きくなっています: {value} > {bound}`,
}

func (t dictTranslator) Message(id string, data map[string]string) string {
	tmpl, ok := t.templates[id]
	if !ok {
		return id
	}
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var currentTranslator Translator = dictTranslator{templates: english}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang == "ja" {
		currentTranslator = dictTranslator{templates: japanese}
		return
	}
	currentTranslator = dictTranslator{templates: english}
}

// SetTranslator replaces the Translator implementation. nil restores the
// built-in English templates.
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{templates: english}
		return
	}
	currentTranslator = tr
}

// T renders a message for the given id using the current Translator.
func T(id string, data map[string]string) string { return currentTranslator.Message(id, data) }

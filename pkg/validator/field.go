package validator

import (
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// Result is the verdict of one evaluation. Error is empty iff Valid.
type Result struct {
	Valid bool
	Error string
}

var validResult = Result{Valid: true}

func invalid(msg string) Result {
	return Result{Valid: false, Error: msg}
}

// ValueLookup returns the current value of a field.
type ValueLookup func(name FieldName) string

// MapLookup adapts a plain map to a ValueLookup. Missing keys read as "".
func MapLookup(values map[FieldName]string) ValueLookup {
	return func(name FieldName) string {
		return values[name]
	}
}

// Validate evaluates value against the rule for name.
// lookup resolves MatchField at call time; a nil lookup reads every other
// field as empty.
func (t Table) Validate(name FieldName, value string, lookup ValueLookup) Result {
	rule, ok := t.rules[name]
	if !ok {
		return validResult
	}

	if trimSpace(value) == "" {
		if rule.Required {
			return invalid(FormatFieldName(string(name)) + " is required")
		}
		return validResult
	}

	length := textLength(value)
	if rule.MinLength > 0 && length < rule.MinLength {
		return invalid(rule.ErrorMessage)
	}
	if rule.MaxLength > 0 && length > rule.MaxLength {
		return invalid(rule.ErrorMessage)
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
		return invalid(rule.ErrorMessage)
	}
	if rule.MatchField != "" {
		var other string
		if lookup != nil {
			other = lookup(rule.MatchField)
		}
		if value != other {
			return invalid(rule.ErrorMessage)
		}
	}

	return validResult
}

// ValidateAll evaluates every field in definition order using values from
// lookup and returns ValidationErrors when any field fails.
func (t Table) ValidateAll(lookup ValueLookup) error {
	if lookup == nil {
		lookup = func(FieldName) string { return "" }
	}

	var errs ValidationErrors
	for _, name := range t.order {
		if res := t.Validate(name, lookup(name), lookup); !res.Valid {
			errs.Add(ValidationError{Field: string(name), Message: res.Error})
		}
	}

	if errs.IsEmpty() {
		return nil
	}
	return errs
}

// FormatFieldName turns a camelCase field name into a label:
// a space goes before every ASCII capital, the first character is
// upper-cased and the result is trimmed.
//
//	FormatFieldName("confirmPassword") // "Confirm Password"
func FormatFieldName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)

	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	out := b.String()
	if first, size := utf8.DecodeRuneInString(out); size > 0 && first != utf8.RuneError {
		out = strings.ToUpper(string(first)) + out[size:]
	}
	return trimSpace(out)
}

// isSpace reports whether r is whitespace as browsers define it for \s and
// String.prototype.trim: the Z categories, ASCII controls \t through \r and
// U+FEFF. Unlike unicode.IsSpace it excludes U+0085.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\ufeff':
		return true
	}
	return unicode.In(r, unicode.Zs, unicode.Zl, unicode.Zp)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// textLength counts UTF-16 code units, the unit input lengths are measured
// in by the browser. Characters outside the BMP count twice.
func textLength(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

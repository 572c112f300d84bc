package validator

import (
	"fmt"
	"regexp"
)

// FieldName identifies a form field. The same name addresses the input
// element in the document.
type FieldName string

// Signup form fields in definition order.
const (
	Username        FieldName = "username"
	Email           FieldName = "email"
	Password        FieldName = "password"
	ConfirmPassword FieldName = "confirmPassword"
	Phone           FieldName = "phone"
	Terms           FieldName = "terms"
)

func (n FieldName) String() string {
	return string(n)
}

// FieldRule is the static constraint set of one field.
// Zero MinLength and MaxLength mean the bound is not checked.
type FieldRule struct {
	Name         FieldName
	Required     bool
	MinLength    int
	MaxLength    int
	Pattern      Pattern
	MatchField   FieldName
	ErrorMessage string
}

// Table is an immutable ordered mapping from field name to rule.
type Table struct {
	order []FieldName
	rules map[FieldName]FieldRule
}

// NewTable builds a table preserving the order of rules.
// It rejects empty or duplicate names and match references that point to
// the rule itself or to a field missing from the table.
func NewTable(rules ...FieldRule) (Table, error) {
	t := Table{
		order: make([]FieldName, 0, len(rules)),
		rules: make(map[FieldName]FieldRule, len(rules)),
	}

	for _, r := range rules {
		if r.Name == "" {
			return Table{}, ErrEmptyFieldName
		}
		if _, exists := t.rules[r.Name]; exists {
			return Table{}, fmt.Errorf("%w: %s", ErrDuplicateField, r.Name)
		}
		t.order = append(t.order, r.Name)
		t.rules[r.Name] = r
	}

	for _, name := range t.order {
		match := t.rules[name].MatchField
		switch {
		case match == "":
		case match == name:
			return Table{}, fmt.Errorf("%w: %s", ErrSelfMatch, name)
		case !t.Has(match):
			return Table{}, fmt.Errorf("%w: %s references %s", ErrUnknownMatchField, name, match)
		}
	}

	return t, nil
}

// MustTable is like NewTable but panics on an invalid rule set.
// Intended for package-level tables built at startup.
func MustTable(rules ...FieldRule) Table {
	t, err := NewTable(rules...)
	if err != nil {
		panic(fmt.Sprintf("validator: invalid rule table: %v", err))
	}
	return t
}

// Fields returns field names in definition order.
func (t Table) Fields() []FieldName {
	out := make([]FieldName, len(t.order))
	copy(out, t.order)
	return out
}

// Rule returns the rule registered for name.
func (t Table) Rule(name FieldName) (FieldRule, bool) {
	r, ok := t.rules[name]
	return r, ok
}

// Has reports whether name has a rule.
func (t Table) Has(name FieldName) bool {
	_, ok := t.rules[name]
	return ok
}

// Len returns the number of rules.
func (t Table) Len() int {
	return len(t.order)
}

// spaceClass is the body of a character class matching what isSpace
// accepts. RE2's \s is ASCII-only.
const spaceClass = `\t\n\v\f\r\p{Z}\x{feff}`

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[^` + spaceClass + `@]+@[^` + spaceClass + `@]+\.[^` + spaceClass + `@]+$`)
	phonePattern    = regexp.MustCompile(`^[0-9]{10}$`)

	// RE2 has no lookahead, so "contains an uppercase letter, a digit and a
	// special character" is a conjunction of three searches.
	passwordPattern = AllOf(
		regexp.MustCompile(`[A-Z]`),
		regexp.MustCompile(`[0-9]`),
		regexp.MustCompile(`[!@#$%^&*]`),
	)

	defaultTable = MustTable(
		FieldRule{
			Name:         Username,
			Required:     true,
			MinLength:    3,
			MaxLength:    20,
			Pattern:      usernamePattern,
			ErrorMessage: "Username must be 3-20 characters and contain only letters, numbers, and underscores",
		},
		FieldRule{
			Name:         Email,
			Required:     true,
			Pattern:      emailPattern,
			ErrorMessage: "Please enter a valid email address",
		},
		FieldRule{
			Name:         Password,
			Required:     true,
			MinLength:    8,
			Pattern:      passwordPattern,
			ErrorMessage: "Password must be at least 8 characters with uppercase, number, and special character",
		},
		FieldRule{
			Name:         ConfirmPassword,
			Required:     true,
			MatchField:   Password,
			ErrorMessage: "Passwords do not match",
		},
		FieldRule{
			Name:         Phone,
			Required:     false,
			Pattern:      phonePattern,
			ErrorMessage: "Phone number must be 10 digits",
		},
		FieldRule{
			Name:         Terms,
			Required:     true,
			ErrorMessage: "You must agree to the terms and conditions",
		},
	)
)

// Default returns the built-in signup rule table.
func Default() Table {
	return defaultTable
}

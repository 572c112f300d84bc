package validator

import (
	"regexp"
	"strings"
)

// Pattern reports whether a value has the expected shape.
// *regexp.Regexp satisfies it.
type Pattern interface {
	MatchString(s string) bool
}

// allOf matches when every sub-pattern matches.
type allOf []*regexp.Regexp

// AllOf combines expressions that must all find a match in the value.
func AllOf(exprs ...*regexp.Regexp) Pattern {
	return allOf(exprs)
}

func (p allOf) MatchString(s string) bool {
	for _, re := range p {
		if !re.MatchString(s) {
			return false
		}
	}
	return true
}

func (p allOf) String() string {
	parts := make([]string, len(p))
	for i, re := range p {
		parts[i] = re.String()
	}
	return "all(" + strings.Join(parts, ", ") + ")"
}

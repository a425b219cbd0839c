// Package validation holds the validator tags shared by the settings and
// workspace layers.
package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	lengthPattern = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d+)?|\.\d+)(?:[eE][+-]?\d+)?(` +
		`%|px|cm|mm|q|in|pt|pc|` +
		`r?em|r?ex|r?cap|r?ch|r?ic|r?lh|` +
		`[sld]?v(?:w|h|i|b|min|max)|` +
		`cq(?:w|h|i|b|min|max))$`)
	zeroPattern     = regexp.MustCompile(`^[+-]?(?:0+(?:\.0+)?|\.0+)$`)
	functionPattern = regexp.MustCompile(`^(?:calc|min|max|clamp|var|env|fit-content)\(`)

	keywords = map[string]struct{}{
		"auto": {}, "inherit": {}, "initial": {}, "unset": {}, "revert": {},
		"revert-layer": {}, "fit-content": {}, "min-content": {}, "max-content": {},
	}
)

// IsCSSLength reports whether s is usable as a CSS height: a keyword, a
// dimension or percentage, a bare zero, or a length function with balanced
// parentheses.
func IsCSSLength(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return false
	}
	if _, ok := keywords[s]; ok {
		return true
	}
	if lengthPattern.MatchString(s) || zeroPattern.MatchString(s) {
		return true
	}
	if functionPattern.MatchString(s) {
		return balanced(s)
	}
	return false
}

// balanced checks that s ends where its first parenthesis closes and that no
// group is empty.
func balanced(s string) bool {
	var opens []int
	for i, r := range s {
		switch r {
		case '(':
			opens = append(opens, i)
		case ')':
			if len(opens) == 0 {
				return false
			}
			start := opens[len(opens)-1]
			opens = opens[:len(opens)-1]
			if strings.TrimSpace(s[start+1:i]) == "" {
				return false
			}
			if len(opens) == 0 && i != len(s)-1 {
				return false
			}
		}
	}
	return len(opens) == 0
}

// Register adds the csslength tag to v.
func Register(v *validator.Validate) error {
	return v.RegisterValidation("csslength", func(fl validator.FieldLevel) bool {
		return IsCSSLength(fl.Field().String())
	})
}

// New returns a validator with the shared tags registered.
func New() *validator.Validate {
	v := validator.New()
	_ = Register(v)
	return v
}

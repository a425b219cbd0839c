package code

import (
	"strings"
)

// Editor chrome selectors, relative to the editor root "&".
const (
	SelectorRoot            = "&"
	SelectorFocused         = "&.cm-editor.cm-focused"
	SelectorActiveLine      = ".cm-activeLine"
	SelectorErrorLine       = ".cm-errorLine"
	SelectorMatchingBracket = ".cm-matchingBracket, .cm-nonmatchingBracket"
	SelectorContent         = ".cm-content"
	SelectorScroller        = ".cm-scroller"
	SelectorGutters         = ".cm-gutters"
	SelectorLineNumbers     = ".cm-gutter.cm-lineNumbers"
	SelectorGutterElement   = ".cm-lineNumbers .cm-gutterElement"
	SelectorLine            = ".cm-line"
)

// Declaration is a single CSS property and value.
type Declaration struct {
	Property string
	Value    string
}

// Rule pairs a selector with its declarations, in order.
type Rule struct {
	Selector     string
	Declarations []Declaration
}

// Get returns the value of property within the rule.
func (r Rule) Get(property string) (string, bool) {
	for _, d := range r.Declarations {
		if d.Property == property {
			return d.Value, true
		}
	}
	return "", false
}

// Stylesheet is an ordered list of chrome rules.
type Stylesheet []Rule

// Rule returns the rule for selector.
func (s Stylesheet) Rule(selector string) (Rule, bool) {
	for _, r := range s {
		if r.Selector == selector {
			return r, true
		}
	}
	return Rule{}, false
}

// Value returns the value of property under selector, or "".
func (s Stylesheet) Value(selector, property string) string {
	r, ok := s.Rule(selector)
	if !ok {
		return ""
	}
	v, _ := r.Get(property)
	return v
}

// CSS renders the stylesheet with "&" replaced by scope. Relative selectors
// are nested under scope.
func (s Stylesheet) CSS(scope string) string {
	var b strings.Builder
	for _, r := range s {
		parts := strings.Split(r.Selector, ",")
		for i, part := range parts {
			part = strings.TrimSpace(part)
			if strings.HasPrefix(part, "&") {
				parts[i] = scope + strings.TrimPrefix(part, "&")
			} else {
				parts[i] = scope + " " + part
			}
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(" {\n")
		for _, d := range r.Declarations {
			b.WriteString("  ")
			b.WriteString(d.Property)
			b.WriteString(": ")
			b.WriteString(d.Value)
			b.WriteString(";\n")
		}
		b.WriteString("}\n")
	}
	return b.String()
}

// EditorChrome builds the editor frame stylesheet for a theme.
func EditorChrome(t Theme) Stylesheet {
	textColor := t.Syntax.Plain.Style().Color
	if textColor == "" {
		textColor = t.Palette.ActiveText
	}

	return Stylesheet{
		{SelectorRoot, []Declaration{
			{"background-color", t.Palette.DefaultBackground},
			{"color", textColor},
			{"padding", "16px 0"},
			{"height", "calc(100% - 40px)"},
		}},
		{SelectorFocused, []Declaration{
			{"outline", "none"},
		}},
		{SelectorActiveLine, []Declaration{
			{"background-color", ToRGBA(t.Palette.ActiveBackground, 0.5)},
		}},
		{SelectorErrorLine, []Declaration{
			{"background-color", ToRGBA(t.Palette.ErrorBackground, 0.2)},
		}},
		{SelectorMatchingBracket, []Declaration{
			{"color", "inherit"},
			{"background", t.Palette.ActiveBackground},
		}},
		{SelectorContent, []Declaration{
			{"padding", "0"},
			{"caret-color", t.Palette.ActiveText},
		}},
		{SelectorScroller, []Declaration{
			{"font-family", t.Typography.MonoFont},
			{"line-height", t.Typography.LineHeight},
		}},
		{SelectorGutters, []Declaration{
			{"background-color", t.Palette.DefaultBackground},
			{"color", t.Palette.DefaultText},
			{"border", "none"},
		}},
		{SelectorLineNumbers, []Declaration{
			{"padding-left", "4px"},
			{"padding-right", "4px"},
		}},
		{SelectorGutterElement, []Declaration{
			{"padding", "0"},
		}},
		{SelectorLine, []Declaration{
			{"padding", "0 12px"},
		}},
	}
}

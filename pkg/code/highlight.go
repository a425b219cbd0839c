package code

// TokenKind classifies a lexical span for highlighting.
type TokenKind string

const (
	TokenLink               TokenKind = "link"
	TokenEmphasis           TokenKind = "emphasis"
	TokenStrong             TokenKind = "strong"
	TokenKeyword            TokenKind = "keyword"
	TokenAtom               TokenKind = "atom"
	TokenNumber             TokenKind = "number"
	TokenBool               TokenKind = "bool"
	TokenTagName            TokenKind = "tagName"
	TokenVariableName       TokenKind = "variableName"
	TokenFunctionCall       TokenKind = "function(variableName)"
	TokenFunctionDefinition TokenKind = "definition(function(variableName))"
	TokenPropertyName       TokenKind = "propertyName"
	TokenLiteral            TokenKind = "literal"
	TokenInserted           TokenKind = "inserted"
	TokenPunctuation        TokenKind = "punctuation"
	TokenComment            TokenKind = "comment"
)

// StyleRule applies a resolved style to one or more token kinds.
type StyleRule struct {
	Kinds []TokenKind
	Style SyntaxStyle
}

// SyntaxHighlight builds the ordered token style rules for a theme.
func SyntaxHighlight(t Theme) []StyleRule {
	s := t.Syntax
	return []StyleRule{
		{Kinds: []TokenKind{TokenLink}, Style: SyntaxStyle{TextDecoration: "underline"}},
		{Kinds: []TokenKind{TokenEmphasis}, Style: SyntaxStyle{FontStyle: "italic"}},
		{Kinds: []TokenKind{TokenStrong}, Style: SyntaxStyle{FontWeight: "bold"}},

		{Kinds: []TokenKind{TokenKeyword}, Style: s.Keyword.Style()},
		{Kinds: []TokenKind{TokenAtom, TokenNumber, TokenBool}, Style: s.Static.Style()},
		{Kinds: []TokenKind{TokenTagName}, Style: s.Tag.Style()},
		{Kinds: []TokenKind{TokenVariableName}, Style: s.Plain.Style()},
		{Kinds: []TokenKind{TokenFunctionCall}, Style: s.Definition.Style()},
		// function definitions share the call style but keep their own rule
		{Kinds: []TokenKind{TokenFunctionDefinition}, Style: s.Definition.Style()},
		{Kinds: []TokenKind{TokenPropertyName}, Style: s.Property.Style()},
		{Kinds: []TokenKind{TokenLiteral, TokenInserted}, Style: s.StringOrStatic().Style()},
		{Kinds: []TokenKind{TokenPunctuation}, Style: s.Punctuation.Style()},
		{Kinds: []TokenKind{TokenComment}, Style: s.Comment.Style()},
	}
}

// StyleFor returns the style the rules assign to kind. Later rules win.
func StyleFor(rules []StyleRule, kind TokenKind) (SyntaxStyle, bool) {
	var (
		found SyntaxStyle
		ok    bool
	)
	for _, r := range rules {
		for _, k := range r.Kinds {
			if k == kind {
				found, ok = r.Style, true
			}
		}
	}
	return found, ok
}

// IsItalic reports whether the style requests italic text.
func (s SyntaxStyle) IsItalic() bool {
	return s.FontStyle == "italic"
}

// IsBold reports whether the style requests a bold weight.
func (s SyntaxStyle) IsBold() bool {
	switch s.FontWeight {
	case "bold", "600", "700", "800", "900":
		return true
	}
	return false
}

// IsUnderlined reports whether the style requests an underline.
func (s SyntaxStyle) IsUnderlined() bool {
	return s.TextDecoration == "underline" || s.TextDecoration == "underline line-through"
}

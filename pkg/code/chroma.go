package code

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
)

// chromaTypes lists the chroma token types each kind covers.
var chromaTypes = map[TokenKind][]chroma.TokenType{
	TokenLink:               {chroma.GenericUnderline},
	TokenEmphasis:           {chroma.GenericEmph},
	TokenStrong:             {chroma.GenericStrong},
	TokenKeyword:            {chroma.Keyword},
	TokenAtom:               {chroma.NameConstant, chroma.NameBuiltinPseudo},
	TokenNumber:             {chroma.LiteralNumber},
	TokenBool:               {chroma.KeywordConstant},
	TokenTagName:            {chroma.NameTag},
	TokenVariableName:       {chroma.Name, chroma.NameVariable, chroma.NameOther},
	TokenFunctionCall:       {chroma.NameFunction},
	TokenFunctionDefinition: {chroma.NameFunctionMagic},
	TokenPropertyName:       {chroma.NameAttribute, chroma.NameProperty},
	TokenLiteral:            {chroma.Literal, chroma.LiteralString},
	TokenInserted:           {chroma.GenericInserted},
	TokenPunctuation:        {chroma.Punctuation},
	TokenComment:            {chroma.Comment},
}

// KindOf classifies a chroma token type.
func KindOf(tt chroma.TokenType) (TokenKind, bool) {
	switch {
	case tt == chroma.GenericUnderline:
		return TokenLink, true
	case tt == chroma.GenericEmph:
		return TokenEmphasis, true
	case tt == chroma.GenericStrong:
		return TokenStrong, true
	case tt == chroma.GenericInserted:
		return TokenInserted, true
	case tt == chroma.KeywordConstant:
		return TokenBool, true
	case tt.InCategory(chroma.Keyword):
		return TokenKeyword, true
	case tt.InSubCategory(chroma.LiteralNumber):
		return TokenNumber, true
	case tt.InCategory(chroma.Literal):
		return TokenLiteral, true
	case tt == chroma.NameTag:
		return TokenTagName, true
	case tt == chroma.NameFunction:
		return TokenFunctionCall, true
	case tt == chroma.NameFunctionMagic:
		return TokenFunctionDefinition, true
	case tt == chroma.NameAttribute, tt == chroma.NameProperty:
		return TokenPropertyName, true
	case tt == chroma.NameConstant, tt == chroma.NameBuiltinPseudo:
		return TokenAtom, true
	case tt == chroma.Name, tt == chroma.NameOther, tt == chroma.NameVariable,
		tt == chroma.NameVariableAnonymous, tt == chroma.NameVariableClass,
		tt == chroma.NameVariableGlobal, tt == chroma.NameVariableInstance,
		tt == chroma.NameVariableMagic:
		return TokenVariableName, true
	case tt.InCategory(chroma.Punctuation):
		return TokenPunctuation, true
	case tt.InCategory(chroma.Comment):
		return TokenComment, true
	}
	return "", false
}

// ChromaStyle builds a chroma style from the theme's chrome and syntax rules.
func ChromaStyle(name string, t Theme) (*chroma.Style, error) {
	chrome := EditorChrome(t)
	builder := chroma.NewStyleBuilder(name)

	background := []string{}
	if bg, err := ParseColor(chrome.Value(SelectorRoot, "background-color")); err == nil {
		background = append(background, "bg:"+hexString(bg))
	}
	if fg, err := ParseColor(chrome.Value(SelectorRoot, "color")); err == nil {
		background = append(background, hexString(fg))
	}
	builder.Add(chroma.Background, strings.Join(background, " "))

	if fg, err := ParseColor(t.Palette.DefaultText); err == nil {
		builder.Add(chroma.LineNumbers, hexString(fg))
	}
	if hl, err := ParseColor(t.Palette.ActiveBackground); err == nil {
		builder.Add(chroma.LineHighlight, "bg:"+hexString(hl))
	}

	for _, rule := range SyntaxHighlight(t) {
		entry := styleEntry(rule.Style)
		if entry == "" {
			continue
		}
		for _, kind := range rule.Kinds {
			for _, tt := range chromaTypes[kind] {
				builder.Add(tt, entry)
			}
		}
	}

	style, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build chroma style %s: %w", name, err)
	}
	return style, nil
}

// styleEntry renders a syntax style in chroma's style entry notation.
func styleEntry(s SyntaxStyle) string {
	var parts []string
	if s.Color != "" {
		if c, err := ParseColor(s.Color); err == nil {
			parts = append(parts, hexString(c))
		}
	}
	switch s.FontStyle {
	case "italic":
		parts = append(parts, "italic")
	case "normal":
		parts = append(parts, "noitalic")
	}
	if s.FontWeight != "" {
		if s.IsBold() {
			parts = append(parts, "bold")
		} else {
			parts = append(parts, "nobold")
		}
	}
	if s.IsUnderlined() {
		parts = append(parts, "underline")
	}
	return strings.Join(parts, " ")
}

// HighlightHTML writes source as a standalone HTML document highlighted
// with the theme.
func HighlightHTML(w io.Writer, source, fileType string, t Theme) error {
	style, err := ChromaStyle("sandpad", t)
	if err != nil {
		return err
	}

	iterator, err := LexerFor(fileType).Tokenise(nil, source)
	if err != nil {
		return fmt.Errorf("failed to tokenise source: %w", err)
	}

	formatter := html.New(html.Standalone(true), html.WithLineNumbers(true), html.TabWidth(2))
	return formatter.Format(w, style, iterator)
}

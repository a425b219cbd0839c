package code

import (
	"bytes"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntaxHighlightOrder(t *testing.T) {
	rules := SyntaxHighlight(MustLookup(ThemeLight))
	require.Len(t, rules, 13)

	var kinds [][]TokenKind
	for _, r := range rules {
		kinds = append(kinds, r.Kinds)
	}
	assert.Equal(t, [][]TokenKind{
		{TokenLink},
		{TokenEmphasis},
		{TokenStrong},
		{TokenKeyword},
		{TokenAtom, TokenNumber, TokenBool},
		{TokenTagName},
		{TokenVariableName},
		{TokenFunctionCall},
		{TokenFunctionDefinition},
		{TokenPropertyName},
		{TokenLiteral, TokenInserted},
		{TokenPunctuation},
		{TokenComment},
	}, kinds)
}

func TestSyntaxHighlightStyles(t *testing.T) {
	rules := SyntaxHighlight(MustLookup(ThemeLight))

	style, ok := StyleFor(rules, TokenLink)
	require.True(t, ok)
	assert.True(t, style.IsUnderlined())

	style, _ = StyleFor(rules, TokenKeyword)
	assert.Equal(t, SyntaxStyle{Color: "#0971F1"}, style)

	style, _ = StyleFor(rules, TokenBool)
	assert.Equal(t, "#FF453A", style.Color)

	style, _ = StyleFor(rules, TokenLiteral)
	assert.Equal(t, "#BF5AF2", style.Color)

	style, _ = StyleFor(rules, TokenComment)
	assert.Equal(t, SyntaxStyle{Color: "#999", FontStyle: "italic"}, style)
	assert.True(t, style.IsItalic())

	_, ok = StyleFor(rules, TokenKind("unknown"))
	assert.False(t, ok)
}

func TestSyntaxHighlightLiteralFallsBackToStatic(t *testing.T) {
	theme := MustLookup(ThemeLight)
	theme.Syntax.String = SyntaxValue{}

	style, _ := StyleFor(SyntaxHighlight(theme), TokenInserted)
	assert.Equal(t, "#FF453A", style.Color)
}

func TestKindOf(t *testing.T) {
	cases := map[chroma.TokenType]TokenKind{
		chroma.KeywordDeclaration:  TokenKeyword,
		chroma.KeywordConstant:     TokenBool,
		chroma.LiteralNumberFloat:  TokenNumber,
		chroma.LiteralStringDouble: TokenLiteral,
		chroma.NameTag:             TokenTagName,
		chroma.NameVariable:        TokenVariableName,
		chroma.NameFunction:        TokenFunctionCall,
		chroma.NameAttribute:       TokenPropertyName,
		chroma.Punctuation:         TokenPunctuation,
		chroma.CommentSingle:       TokenComment,
		chroma.GenericInserted:     TokenInserted,
	}
	for tt, want := range cases {
		got, ok := KindOf(tt)
		require.True(t, ok, tt.String())
		assert.Equal(t, want, got, tt.String())
	}

	_, ok := KindOf(chroma.Text)
	assert.False(t, ok)
}

func TestChromaStyle(t *testing.T) {
	style, err := ChromaStyle("test", MustLookup(ThemeLight))
	require.NoError(t, err)

	keyword := style.Get(chroma.Keyword)
	assert.Equal(t, "#0971f1", keyword.Colour.String())

	comment := style.Get(chroma.CommentSingle)
	assert.Equal(t, "#999999", comment.Colour.String())
	assert.Equal(t, chroma.Yes, comment.Italic)

	bg := style.Get(chroma.Background)
	assert.Equal(t, "#f8f9fb", bg.Background.String())
}

func TestHighlightHTML(t *testing.T) {
	var buf bytes.Buffer
	err := HighlightHTML(&buf, "const msg = 'hi';\n", "js", MustLookup(ThemeDark))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "<html>")
	assert.Contains(t, out, "msg")
	assert.Contains(t, out, "#77b7d7")
}

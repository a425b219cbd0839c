package code

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ResolveLanguage maps a file type or extension to the highlighting
// language used for it. Unknown types resolve to javascript.
func ResolveLanguage(fileType string) string {
	switch fileType {
	case "ts", "tsx":
		return "typescript"
	case "html", "svelte", "vue":
		return "html"
	case "css", "less", "scss":
		return "css"
	default:
		return "javascript"
	}
}

// LexerFor returns the chroma lexer for a file type.
func LexerFor(fileType string) chroma.Lexer {
	lexer := lexers.Get(ResolveLanguage(fileType))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

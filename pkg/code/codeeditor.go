package code

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/alecthomas/chroma/v2"
)

// CodeEditor is a single-buffer editor. Editable buffers use an entry,
// read-only buffers render highlighted rich text.
type CodeEditor struct {
	widget.BaseWidget

	content     *codeEntry
	richContent *widget.RichText
	lineNumbers *widget.Label
	body        *fyne.Container
	override    *container.ThemeOverride

	theme    Theme
	fileType string
	lexer    chroma.Lexer
	rules    []StyleRule
	options  Options
	readOnly bool

	settingText     bool
	lastHighlighted string

	onTextChanged func(string)
}

// NewCodeEditor creates an editor for a buffer of the given file type.
func NewCodeEditor(t Theme, fileType string) *CodeEditor {
	e := &CodeEditor{
		theme:    t,
		fileType: fileType,
		lexer:    LexerFor(fileType),
		rules:    SyntaxHighlight(t),
		options:  DefaultOptions(),
	}
	e.ExtendBaseWidget(e)
	e.createUI()
	return e
}

func (e *CodeEditor) createUI() {
	e.content = newCodeEntry(func() int { return e.options.TabSize })
	e.content.TextStyle = fyne.TextStyle{Monospace: true}
	e.content.OnChanged = func(text string) {
		e.updateLineNumbers()
		e.lastHighlighted = ""
		if e.settingText || e.onTextChanged == nil {
			return
		}
		e.onTextChanged(text)
	}

	e.richContent = widget.NewRichText()
	e.richContent.Wrapping = fyne.TextWrapOff

	e.lineNumbers = widget.NewLabel("1")
	e.lineNumbers.TextStyle = fyne.TextStyle{Monospace: true}
	e.lineNumbers.Alignment = fyne.TextAlignTrailing
	e.lineNumbers.Importance = widget.LowImportance

	e.body = container.NewStack()
	e.override = container.NewThemeOverride(e.body, e.fyneTheme())
	e.updateBody()
	e.updateLineNumbers()
}

// codeEntry is a multi-line entry that indents with spaces.
type codeEntry struct {
	widget.Entry

	tabSize func() int
}

func newCodeEntry(tabSize func() int) *codeEntry {
	c := &codeEntry{tabSize: tabSize}
	c.MultiLine = true
	c.Wrapping = fyne.TextWrapOff
	c.ExtendBaseWidget(c)
	return c
}

// AcceptsTab keeps Tab inside the buffer instead of moving focus.
func (c *codeEntry) AcceptsTab() bool {
	return true
}

// TypedKey inserts tab size spaces for Tab and defers everything else.
func (c *codeEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name != fyne.KeyTab {
		c.Entry.TypedKey(key)
		return
	}
	n := c.tabSize()
	if n < 1 {
		n = DefaultOptions().TabSize
	}
	for range n {
		c.TypedRune(' ')
	}
}

func (e *CodeEditor) fyneTheme() fyne.Theme {
	return NewFyneTheme(e.theme).WithTextSize(e.options.FontSize)
}

// SetTheme re-applies chrome and syntax colors.
func (e *CodeEditor) SetTheme(t Theme) {
	e.theme = t
	e.rules = SyntaxHighlight(t)
	e.lastHighlighted = ""
	e.override.Theme = e.fyneTheme()
	if e.readOnly {
		e.highlight()
	}
	e.override.Refresh()
}

// Theme returns the active theme.
func (e *CodeEditor) Theme() Theme {
	return e.theme
}

// SetFileType switches the lexer used for highlighting.
func (e *CodeEditor) SetFileType(fileType string) {
	e.fileType = fileType
	e.lexer = LexerFor(fileType)
	e.lastHighlighted = ""
	if e.readOnly {
		e.highlight()
	}
}

// FileType returns the file type the buffer is highlighted as.
func (e *CodeEditor) FileType() string {
	return e.fileType
}

// Language returns the editor language resolved from the file type.
func (e *CodeEditor) Language() string {
	return ResolveLanguage(e.fileType)
}

// SetText replaces the buffer without notifying the change callback.
func (e *CodeEditor) SetText(text string) {
	e.settingText = true
	e.content.SetText(text)
	e.settingText = false
	if e.readOnly {
		e.highlight()
	}
}

// Text returns the buffer content.
func (e *CodeEditor) Text() string {
	return e.content.Text
}

// SetOnTextChanged sets the callback for user edits.
func (e *CodeEditor) SetOnTextChanged(fn func(string)) {
	e.onTextChanged = fn
}

// SetReadOnly switches between the entry and the highlighted view.
func (e *CodeEditor) SetReadOnly(readOnly bool) {
	if e.readOnly == readOnly {
		return
	}
	e.readOnly = readOnly
	if readOnly {
		e.highlight()
	}
	e.updateBody()
}

// ReadOnly reports whether the buffer is shown as a read-only view.
func (e *CodeEditor) ReadOnly() bool {
	return e.readOnly
}

// SetOptions applies display preferences.
func (e *CodeEditor) SetOptions(o Options) {
	o.FontSize = ClampFontSize(o.FontSize)
	e.options = o

	wrap := fyne.TextWrapOff
	if o.WordWrap {
		wrap = fyne.TextWrapWord
	}
	e.content.Wrapping = wrap
	e.richContent.Wrapping = wrap

	e.override.Theme = e.fyneTheme()
	e.updateLineNumbers()
	e.updateBody()
}

// Options returns the display preferences in use.
func (e *CodeEditor) Options() Options {
	return e.options
}

// LineCount returns the number of lines in the buffer.
func (e *CodeEditor) LineCount() int {
	return strings.Count(e.content.Text, "\n") + 1
}

// Segments returns the rich text segments of the read-only view.
func (e *CodeEditor) Segments() []widget.RichTextSegment {
	return e.richContent.Segments
}

func (e *CodeEditor) updateBody() {
	var main fyne.CanvasObject
	if e.readOnly {
		main = container.NewScroll(e.richContent)
	} else {
		main = e.content
	}

	if e.options.ShowLineNumbers {
		e.body.Objects = []fyne.CanvasObject{container.NewBorder(nil, nil, e.lineNumbers, nil, main)}
	} else {
		e.body.Objects = []fyne.CanvasObject{main}
	}
	e.body.Refresh()
}

func (e *CodeEditor) updateLineNumbers() {
	if !e.options.ShowLineNumbers {
		return
	}
	count := e.LineCount()
	numbers := make([]string, count)
	for i := range numbers {
		numbers[i] = fmt.Sprintf("%3d", i+1)
	}
	e.lineNumbers.SetText(strings.Join(numbers, "\n"))
}

func (e *CodeEditor) highlight() {
	text := e.content.Text
	if text == e.lastHighlighted && len(e.richContent.Segments) > 0 {
		return
	}
	e.richContent.Segments = segments(e.lexer, text, e.rules)
	e.lastHighlighted = text
	e.richContent.Refresh()
}

// HighlightSegments tokenizes source and returns rich text segments colored
// through SyntaxColorName.
func HighlightSegments(source, fileType string, t Theme) []widget.RichTextSegment {
	return segments(LexerFor(fileType), source, SyntaxHighlight(t))
}

func segments(lexer chroma.Lexer, text string, rules []StyleRule) []widget.RichTextSegment {
	plain := func(s string) []widget.RichTextSegment {
		return []widget.RichTextSegment{&widget.TextSegment{Text: s, Style: codeStyle(theme.ColorNameForeground)}}
	}
	if text == "" {
		return plain(text)
	}

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return plain(text)
	}

	var out []widget.RichTextSegment
	for token := iterator(); token != chroma.EOF; token = iterator() {
		style := codeStyle(theme.ColorNameForeground)
		if kind, ok := KindOf(token.Type); ok {
			style.ColorName = SyntaxColorName(kind)
			if s, ok := StyleFor(rules, kind); ok {
				style.TextStyle.Bold = s.IsBold()
				style.TextStyle.Italic = s.IsItalic()
				style.TextStyle.Underline = s.IsUnderlined()
			}
		}
		out = append(out, &widget.TextSegment{Text: token.Value, Style: style})
	}

	// lexers configured with EnsureNL append a newline the buffer never had
	if n := len(out); n > 0 && !strings.HasSuffix(text, "\n") {
		last := out[n-1].(*widget.TextSegment)
		last.Text = strings.TrimSuffix(last.Text, "\n")
		if last.Text == "" {
			out = out[:n-1]
		}
	}
	return out
}

func codeStyle(name fyne.ThemeColorName) widget.RichTextStyle {
	return widget.RichTextStyle{
		ColorName: name,
		Inline:    true,
		SizeName:  theme.SizeNameText,
		TextStyle: fyne.TextStyle{Monospace: true},
	}
}

// CreateRenderer creates the widget renderer.
func (e *CodeEditor) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(e.override)
}

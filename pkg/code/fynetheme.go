package code

import (
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Extra color names resolved by FyneTheme.
const (
	ColorNameActiveLine fyne.ThemeColorName = "sandpad.activeLine"
	ColorNameErrorLine  fyne.ThemeColorName = "sandpad.errorLine"
	ColorNameGutter     fyne.ThemeColorName = "sandpad.gutter"
)

// SyntaxColorName returns the theme color name used for a token kind.
func SyntaxColorName(kind TokenKind) fyne.ThemeColorName {
	return fyne.ThemeColorName("sandpad.syntax." + string(kind))
}

// FyneTheme adapts an editor Theme to fyne. Colors the editor does not
// define come from the fallback theme.
type FyneTheme struct {
	source   Theme
	colors   map[fyne.ThemeColorName]color.Color
	textSize float32
	fallback fyne.Theme
}

var _ fyne.Theme = (*FyneTheme)(nil)

// NewFyneTheme builds the adapter from the chrome stylesheet and syntax rules.
func NewFyneTheme(t Theme) *FyneTheme {
	f := &FyneTheme{
		source:   t,
		colors:   map[fyne.ThemeColorName]color.Color{},
		textSize: parsePixels(t.Typography.FontSize),
		fallback: theme.DefaultTheme(),
	}

	chrome := EditorChrome(t)
	f.set(chrome.Value(SelectorRoot, "background-color"),
		theme.ColorNameBackground, theme.ColorNameInputBackground)
	f.set(chrome.Value(SelectorRoot, "color"), theme.ColorNameForeground)
	f.set(t.Palette.InputBackground,
		theme.ColorNameHeaderBackground, theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground)
	f.set(t.Palette.Accent, theme.ColorNamePrimary)
	f.set(chrome.Value(SelectorActiveLine, "background-color"),
		ColorNameActiveLine, theme.ColorNameHover, theme.ColorNameFocus)
	f.set(chrome.Value(SelectorMatchingBracket, "background"), theme.ColorNameSelection)
	f.set(chrome.Value(SelectorErrorLine, "background-color"), ColorNameErrorLine)
	f.set(t.Palette.ErrorForeground, theme.ColorNameError)
	f.set(chrome.Value(SelectorGutters, "color"),
		ColorNameGutter, theme.ColorNamePlaceHolder, theme.ColorNameDisabled, theme.ColorNameScrollBar)
	f.set(t.Palette.InactiveText, theme.ColorNameInputBorder, theme.ColorNameSeparator)

	rules := SyntaxHighlight(t)
	for _, rule := range rules {
		for _, kind := range rule.Kinds {
			style, _ := StyleFor(rules, kind)
			f.set(style.Color, SyntaxColorName(kind))
		}
	}
	return f
}

func (f *FyneTheme) set(css string, names ...fyne.ThemeColorName) {
	c, err := ParseColor(css)
	if err != nil {
		return
	}
	for _, name := range names {
		f.colors[name] = c
	}
}

// Source returns the editor theme the adapter was built from.
func (f *FyneTheme) Source() Theme {
	return f.source
}

// WithTextSize returns a copy using size for body text. Zero keeps the
// typography size.
func (f *FyneTheme) WithTextSize(size float32) *FyneTheme {
	if size <= 0 {
		return f
	}
	out := *f
	out.textSize = size
	return &out
}

func (f *FyneTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if c, ok := f.colors[name]; ok {
		return c
	}
	if strings.HasPrefix(string(name), "sandpad.") {
		return f.Color(theme.ColorNameForeground, variant)
	}
	return f.fallback.Color(name, variant)
}

func (f *FyneTheme) Font(style fyne.TextStyle) fyne.Resource {
	return f.fallback.Font(style)
}

func (f *FyneTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return f.fallback.Icon(name)
}

func (f *FyneTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameText && f.textSize > 0 {
		return f.textSize
	}
	return f.fallback.Size(name)
}

// parsePixels reads a CSS pixel length such as "14px".
func parsePixels(v string) float32 {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	n, err := strconv.ParseFloat(v, 32)
	if err != nil || n <= 0 {
		return 0
	}
	return float32(n)
}

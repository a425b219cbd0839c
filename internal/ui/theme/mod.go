package theme

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/ispapp/sandpad/pkg/code"
)

// AppTheme styles the application chrome after the active editor theme:
// the accent drives the primary color and the editor background picks the
// light or dark variant of everything else.
type AppTheme struct {
	mu     sync.RWMutex
	editor *code.FyneTheme
	dark   bool
}

var _ fyne.Theme = (*AppTheme)(nil)

// New creates an application theme following t.
func New(t code.Theme) *AppTheme {
	m := &AppTheme{}
	m.SetEditorTheme(t)
	return m
}

// SetEditorTheme follows a new editor theme.
func (m *AppTheme) SetEditorTheme(t code.Theme) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editor = code.NewFyneTheme(t)
	m.dark = IsDark(t)
}

// Dark reports whether the chrome uses the dark variant.
func (m *AppTheme) Dark() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dark
}

// IsDark reports whether the editor background of t is dark.
func IsDark(t code.Theme) bool {
	c, err := code.ParseColor(t.Palette.DefaultBackground)
	if err != nil {
		return false
	}
	// Rec. 601 luma
	luma := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
	return luma < 128
}

func (m *AppTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (m *AppTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (m *AppTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	m.mu.RLock()
	editor, dark := m.editor, m.dark
	m.mu.RUnlock()

	variant := theme.VariantLight
	if dark {
		variant = theme.VariantDark
	}
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus, theme.ColorNameSelection:
		return editor.Color(name, variant)
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (m *AppTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}

// ApplyTheme installs the theme on the app.
func (m *AppTheme) ApplyTheme(a fyne.App) {
	a.Settings().SetTheme(m)
	a.SetIcon(theme.DocumentIcon())
}

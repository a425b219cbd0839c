package code

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// ErrUnknownTheme is returned when a theme name is outside the predefined set.
var ErrUnknownTheme = errors.New("unknown theme")

// ThemeName identifies one of the predefined editor themes
type ThemeName string

const (
	ThemeLight        ThemeName = "light"
	ThemeDark         ThemeName = "dark"
	ThemeSandpackDark ThemeName = "sandpack-dark"
	ThemeNightOwl     ThemeName = "night-owl"
	ThemeAquaBlue     ThemeName = "aqua-blue"
	ThemeGithubLight  ThemeName = "github-light"
	ThemeMonokaiPro   ThemeName = "monokai-pro"
)

var themeNames = []ThemeName{
	ThemeLight,
	ThemeDark,
	ThemeSandpackDark,
	ThemeNightOwl,
	ThemeAquaBlue,
	ThemeGithubLight,
	ThemeMonokaiPro,
}

// ThemeNames returns the predefined theme names in declaration order.
func ThemeNames() []ThemeName {
	out := make([]ThemeName, len(themeNames))
	copy(out, themeNames)
	return out
}

// Valid reports whether n names a predefined theme.
func (n ThemeName) Valid() bool {
	_, ok := predefinedThemes[n]
	return ok
}

// Palette holds the chrome colors of a theme
type Palette struct {
	ActiveText        string `json:"activeText" validate:"required"`
	DefaultText       string `json:"defaultText" validate:"required"`
	InactiveText      string `json:"inactiveText" validate:"required"`
	ActiveBackground  string `json:"activeBackground" validate:"required"`
	DefaultBackground string `json:"defaultBackground" validate:"required"`
	InputBackground   string `json:"inputBackground" validate:"required"`
	Accent            string `json:"accent" validate:"required"`
	ErrorBackground   string `json:"errorBackground" validate:"required"`
	ErrorForeground   string `json:"errorForeground" validate:"required"`
}

// Syntax holds the token colors of a theme. String is optional and falls
// back to Static wherever it is consumed.
type Syntax struct {
	Plain       SyntaxValue `json:"plain"`
	Comment     SyntaxValue `json:"comment"`
	Keyword     SyntaxValue `json:"keyword"`
	Definition  SyntaxValue `json:"definition"`
	Punctuation SyntaxValue `json:"punctuation"`
	Property    SyntaxValue `json:"property"`
	Tag         SyntaxValue `json:"tag"`
	Static      SyntaxValue `json:"static"`
	String      SyntaxValue `json:"string,omitzero"`
}

// StringOrStatic returns the literal style, falling back to Static.
func (s Syntax) StringOrStatic() SyntaxValue {
	if s.String.IsZero() {
		return s.Static
	}
	return s.String
}

// Typography holds font settings as CSS values
type Typography struct {
	BodyFont   string `json:"bodyFont" validate:"required"`
	MonoFont   string `json:"monoFont" validate:"required"`
	FontSize   string `json:"fontSize" validate:"required"`
	LineHeight string `json:"lineHeight" validate:"required"`
}

// Theme is an immutable visual theme record
type Theme struct {
	Palette    Palette    `json:"palette"`
	Syntax     Syntax     `json:"syntax"`
	Typography Typography `json:"typography"`
}

// Lookup returns the predefined theme registered under name.
func Lookup(name ThemeName) (Theme, error) {
	theme, ok := predefinedThemes[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, string(name))
	}
	return theme, nil
}

// MustLookup is like Lookup but panics for names outside the predefined set.
func MustLookup(name ThemeName) Theme {
	theme, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return theme
}

// Validate checks that every palette and typography field is present and
// that the mandatory syntax entries are set.
func (t Theme) Validate() error {
	if err := validator.New().Struct(t); err != nil {
		return fmt.Errorf("invalid theme: %w", err)
	}

	required := []struct {
		key   string
		value SyntaxValue
	}{
		{"plain", t.Syntax.Plain},
		{"comment", t.Syntax.Comment},
		{"keyword", t.Syntax.Keyword},
		{"definition", t.Syntax.Definition},
		{"punctuation", t.Syntax.Punctuation},
		{"property", t.Syntax.Property},
		{"tag", t.Syntax.Tag},
		{"static", t.Syntax.Static},
	}
	for _, entry := range required {
		if entry.value.IsZero() {
			return fmt.Errorf("invalid theme: syntax.%s is required", entry.key)
		}
	}
	return nil
}

// LoadThemeFile loads a custom theme from a JSON file
func LoadThemeFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("failed to read theme file: %w", err)
	}

	var theme Theme
	if err := json.Unmarshal(data, &theme); err != nil {
		return Theme{}, fmt.Errorf("failed to parse theme file: %w", err)
	}

	if err := theme.Validate(); err != nil {
		return Theme{}, err
	}
	return theme, nil
}

// SaveThemeFile writes a theme to a JSON file
func SaveThemeFile(theme Theme, path string) error {
	data, err := json.MarshalIndent(theme, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal theme: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

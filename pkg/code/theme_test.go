package code

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupAllThemes(t *testing.T) {
	names := ThemeNames()
	require.Len(t, names, 7)

	for _, name := range names {
		theme, err := Lookup(name)
		require.NoError(t, err, name)
		require.NoError(t, theme.Validate(), name)

		p := theme.Palette
		for _, v := range []string{p.ActiveText, p.DefaultText, p.InactiveText, p.ActiveBackground,
			p.DefaultBackground, p.InputBackground, p.Accent, p.ErrorBackground, p.ErrorForeground} {
			assert.NotEmpty(t, v, name)
		}
		ty := theme.Typography
		for _, v := range []string{ty.BodyFont, ty.MonoFont, ty.FontSize, ty.LineHeight} {
			assert.NotEmpty(t, v, name)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("solarized")
	require.ErrorIs(t, err, ErrUnknownTheme)
	assert.False(t, ThemeName("solarized").Valid())
	assert.True(t, ThemeDark.Valid())

	assert.Panics(t, func() { MustLookup("nope") })
}

func TestThemeNamesIsCopy(t *testing.T) {
	names := ThemeNames()
	names[0] = "changed"
	assert.Equal(t, ThemeLight, ThemeNames()[0])
}

func TestStringFallsBackToStatic(t *testing.T) {
	theme := MustLookup(ThemeLight)
	assert.Equal(t, "#BF5AF2", theme.Syntax.StringOrStatic().Style().Color)

	theme.Syntax.String = SyntaxValue{}
	assert.Equal(t, "#FF453A", theme.Syntax.StringOrStatic().Style().Color)
}

func TestSyntaxValueJSON(t *testing.T) {
	data, err := json.Marshal(MustLookup(ThemeNightOwl).Syntax)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "#d6deeb", raw["plain"])
	assert.Equal(t, map[string]any{"color": "#c792ea", "fontStyle": "italic"}, raw["keyword"])

	var back Syntax
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Plain.IsBare())
	assert.False(t, back.Keyword.IsBare())
	assert.Equal(t, SyntaxStyle{Color: "#c792ea", FontStyle: "italic"}, back.Keyword.Style())
}

func TestSyntaxValueOmitsUnsetString(t *testing.T) {
	s := MustLookup(ThemeDark).Syntax
	s.String = SyntaxValue{}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"string"`)
}

func TestSyntaxValueRejectsNumbers(t *testing.T) {
	var v SyntaxValue
	require.Error(t, json.Unmarshal([]byte(`42`), &v))
}

func TestThemeFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	theme := MustLookup(ThemeMonokaiPro)

	require.NoError(t, SaveThemeFile(theme, path))
	loaded, err := LoadThemeFile(path)
	require.NoError(t, err)
	assert.Equal(t, theme, loaded)
}

func TestLoadThemeFileValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	theme := MustLookup(ThemeLight)
	theme.Syntax.Keyword = SyntaxValue{}
	require.NoError(t, SaveThemeFile(theme, path))

	_, err := LoadThemeFile(path)
	require.ErrorContains(t, err, "syntax.keyword")

	theme = MustLookup(ThemeLight)
	theme.Palette.Accent = ""
	require.NoError(t, SaveThemeFile(theme, path))
	_, err = LoadThemeFile(path)
	require.Error(t, err)
}

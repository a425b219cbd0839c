package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ispapp/sandpad/pkg/code"
)

func useTempPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sandpad", "settings.json")
	prev, prevCurrent := settingsPath, Current
	SetPath(path)
	t.Cleanup(func() {
		SetPath(prev)
		Current = prevCurrent
	})
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	assert.NoError(t, DefaultSettings().Validate())
	assert.Equal(t, code.ThemeLight, DefaultSettings().ThemeName())
}

func TestInitializeCreatesFile(t *testing.T) {
	path := useTempPath(t)

	require.NoError(t, Initialize())
	assert.FileExists(t, path)
	assert.Equal(t, DefaultSettings(), Current)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "light", raw["theme"])
	assert.Contains(t, string(data), "\n  \"theme\"")
}

func TestSaveAndLoad(t *testing.T) {
	useTempPath(t)
	require.NoError(t, Initialize())

	Current.Theme = string(code.ThemeNightOwl)
	Current.FontSize = 16
	Current.PreviewHeight = "800px"
	require.NoError(t, Save())

	Current = nil
	require.NoError(t, Load())
	assert.Equal(t, "night-owl", Current.Theme)
	assert.Equal(t, float32(16), Current.FontSize)
	assert.Equal(t, "800px", Current.PreviewHeight)
	assert.Equal(t, 2, Current.TabSize)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := useTempPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`{"theme": "dark"}`), 0644))

	s, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", s.Theme)
	assert.True(t, s.ShowLineNumbers)
	assert.Equal(t, "500px", s.PreviewHeight)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := useTempPath(t)
	require.NoError(t, Write(DefaultSettings(), path))

	t.Setenv("SANDPAD_THEME", "monokai-pro")
	t.Setenv("SANDPAD_TAB_SIZE", "4")
	t.Setenv("SANDPAD_WORD_WRAP", "true")

	s, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "monokai-pro", s.Theme)
	assert.Equal(t, 4, s.TabSize)
	assert.True(t, s.WordWrap)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRefreshCurrentFallsBackToDefaults(t *testing.T) {
	useTempPath(t)
	Current = nil
	assert.Equal(t, DefaultSettings(), RefreshCurrent())
}

func TestValidate(t *testing.T) {
	s := DefaultSettings()
	s.Theme = "solarized"
	s.FontSize = 100
	s.TabSize = 0
	s.PreviewHeight = "tall"
	s.PreviewAddr = "nowhere"
	s.LogLevel = "loud"

	problems := s.Problems()
	assert.Len(t, problems, 6)
	assert.Contains(t, problems[0], `Theme "solarized"`)

	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid settings")
	assert.Contains(t, err.Error(), "Preview height \"tall\" is not a CSS length")
}

func TestValidateAcceptsListenAddress(t *testing.T) {
	s := DefaultSettings()
	s.PreviewAddr = "localhost:5173"
	s.PreviewHeight = "50vh"
	assert.NoError(t, s.Validate())
}

func TestValidateAcceptsLengthFunctions(t *testing.T) {
	for _, h := range []string{"calc(100vh - 40px)", "60ch", "12pt", ".5em", "100dvh", "auto"} {
		s := DefaultSettings()
		s.PreviewHeight = h
		assert.NoError(t, s.Validate(), h)
	}
}

func TestEditorOptions(t *testing.T) {
	s := DefaultSettings()
	s.FontSize = 4
	s.WordWrap = true

	o := s.EditorOptions()
	assert.Equal(t, code.MinFontSize, o.FontSize)
	assert.Equal(t, 2, o.TabSize)
	assert.True(t, o.WordWrap)

	o.FontSize = 20
	o.ShowLineNumbers = false
	s.SetEditorOptions(o)
	assert.Equal(t, float32(20), s.FontSize)
	assert.False(t, s.ShowLineNumbers)
}

func TestLoadTheme(t *testing.T) {
	s := DefaultSettings()
	s.Theme = "dark"
	th, err := s.LoadTheme()
	require.NoError(t, err)
	assert.Equal(t, code.MustLookup(code.ThemeDark), th)

	path := filepath.Join(t.TempDir(), "custom.json")
	custom := code.MustLookup(code.ThemeNightOwl)
	require.NoError(t, code.SaveThemeFile(custom, path))
	s.ThemeFile = path
	th, err = s.LoadTheme()
	require.NoError(t, err)
	assert.Equal(t, custom, th)
}

func TestStringHelpers(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, "", s.GetFontSizeString())
	require.NoError(t, s.SetFontSizeString("15.5"))
	assert.Equal(t, "15.5", s.GetFontSizeString())
	require.NoError(t, s.SetFontSizeString(" "))
	assert.Zero(t, s.FontSize)
	assert.Error(t, s.SetFontSizeString("big"))

	require.NoError(t, s.SetTabSizeString("8"))
	assert.Equal(t, "8", s.GetTabSizeString())
	assert.Error(t, s.SetTabSizeString("x"))
}

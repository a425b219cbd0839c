package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ispapp/sandpad/internal/data"
	"github.com/ispapp/sandpad/internal/logger"
	"github.com/ispapp/sandpad/internal/settings"
	"github.com/ispapp/sandpad/pkg/code"
	"github.com/ispapp/sandpad/pkg/sandbox"
	"github.com/ispapp/sandpad/pkg/sfc"
)

func executeCommand(t *testing.T, ctx context.Context, launch Launcher, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd(launch)
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(&bytes.Buffer{})
	// keep subcommands away from the user's settings file
	root.SetArgs(append([]string{"--settings", filepath.Join(t.TempDir(), "settings.json")}, args...))

	if ctx == nil {
		ctx = context.Background()
	}
	err := root.ExecuteContext(ctx)
	return buf.String(), err
}

func TestThemesListsEveryTheme(t *testing.T) {
	out, err := executeCommand(t, nil, nil, "themes")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(code.ThemeNames()))
	for i, name := range code.ThemeNames() {
		assert.Contains(t, lines[i], string(name))
		assert.Contains(t, lines[i], code.MustLookup(name).Palette.Accent)
	}
}

func TestThemesCSS(t *testing.T) {
	out, err := executeCommand(t, nil, nil, "themes", "--css", "dark", "--scope", "#editor")
	require.NoError(t, err)

	dark := code.MustLookup(code.ThemeDark)
	assert.True(t, strings.HasPrefix(out, "#editor {\n"))
	assert.Contains(t, out, "background-color: "+dark.Palette.DefaultBackground+";")
	assert.Contains(t, out, "#editor .cm-activeLine {")
}

func TestThemesCSSUnknownTheme(t *testing.T) {
	_, err := executeCommand(t, nil, nil, "themes", "--css", "solarized")
	require.ErrorIs(t, err, code.ErrUnknownTheme)
}

func TestLanguage(t *testing.T) {
	out, err := executeCommand(t, nil, nil, "language", "vue", "tsx", "scss", "md")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"vue", "html"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"tsx", "typescript"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"scss", "css"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"md", "javascript"}, strings.Fields(lines[3]))
}

func TestLanguageRequiresType(t *testing.T) {
	_, err := executeCommand(t, nil, nil, "language")
	require.Error(t, err)
}

func TestNormalizeWithoutNode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "App.vue")
	require.NoError(t, os.WriteFile(path, []byte("<script setup>\n</script>"), 0644))

	_, err := executeCommand(t, nil, nil, "normalize", "--node", filepath.Join(t.TempDir(), "missing-node"), path)
	require.ErrorIs(t, err, sfc.ErrNodeUnavailable)
}

func TestNormalizeMissingFile(t *testing.T) {
	_, err := executeCommand(t, nil, nil, "normalize", filepath.Join(t.TempDir(), "App.vue"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read component")
}

func TestProjectDefaults(t *testing.T) {
	out, err := executeCommand(t, nil, nil, "project")
	require.NoError(t, err)

	var p sandbox.Project
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, sandbox.DefaultEntry, p.Entry)
	assert.Len(t, p.Files, 3)
	assert.Contains(t, p.Files, "/App.vue")
	assert.Contains(t, p.Files, "/main.js")
	assert.Contains(t, p.Files, "/index.html")
	assert.Equal(t, sandbox.DefaultDependencies(), p.Dependencies)
}

func TestProjectSetupIncludesOptions(t *testing.T) {
	out, err := executeCommand(t, nil, nil, "project", "--setup")
	require.NoError(t, err)

	var s sandbox.Setup
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, "500px", s.Options.Height)
	assert.Len(t, s.Project.Files, 3)
}

func TestProjectFromManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "App.vue"), []byte("<template><p>hi</p></template>"), 0644))
	manifest := `entry: ./src/index.js
dependencies:
  vue: ^3.2.0
files:
  - name: App.vue
    path: App.vue
  - name: src/index.js
    value: import App from '../App.vue'
`
	path := filepath.Join(dir, "sandpad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0644))

	out, err := executeCommand(t, nil, nil, "project", "--manifest", path)
	require.NoError(t, err)

	var p sandbox.Project
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "./src/index.js", p.Entry)
	assert.Equal(t, map[string]string{"vue": "^3.2.0"}, p.Dependencies)
	assert.Equal(t, "<template><p>hi</p></template>", p.Files["/App.vue"].Code)
	assert.Equal(t, "import App from '../App.vue'", p.Files["/src/index.js"].Code)
}

func TestProjectNormalizeWithoutNode(t *testing.T) {
	_, err := executeCommand(t, nil, nil, "project", "--normalize", "--node", filepath.Join(t.TempDir(), "missing-node"))
	require.ErrorIs(t, err, sfc.ErrNodeUnavailable)
}

func TestServeStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	out, err := executeCommand(t, ctx, nil, "serve", "--addr", "127.0.0.1:0")
	require.NoError(t, err)
	assert.Contains(t, out, "Preview available at http://127.0.0.1:")
}

func TestHighlight(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.js")
	require.NoError(t, os.WriteFile(path, []byte("const answer = 42;\n"), 0644))

	out, err := executeCommand(t, nil, nil, "highlight", "--theme", "dark", path)
	require.NoError(t, err)
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "answer")

	target := filepath.Join(dir, "main.html")
	out, err = executeCommand(t, nil, nil, "highlight", "-o", target, path)
	require.NoError(t, err)
	assert.Empty(t, out)

	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(written), "<html")
}

func TestHighlightUnknownTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.js")
	require.NoError(t, os.WriteFile(path, []byte("1"), 0644))

	_, err := executeCommand(t, nil, nil, "highlight", "--theme", "neon", path)
	require.ErrorIs(t, err, code.ErrUnknownTheme)
}

func TestVersion(t *testing.T) {
	out, err := executeCommand(t, nil, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sandpad dev")
}

func writeGUISettings(t *testing.T) string {
	t.Helper()

	prevPath, prevCurrent := settings.Path(), settings.Current
	t.Cleanup(func() {
		settings.SetPath(prevPath)
		settings.Current = prevCurrent
	})

	dir := t.TempDir()
	s := settings.DefaultSettings()
	s.DatabasePath = filepath.Join(dir, "workspace.db")
	s.NormalizeScriptSetup = false
	s.LogLevel = "error"

	path := filepath.Join(dir, "settings.json")
	require.NoError(t, settings.Write(s, path))
	return path
}

func TestRootLaunchesStoredWorkspace(t *testing.T) {
	path := writeGUISettings(t)

	var launched *data.Workspace
	first := func(_ context.Context, ws *data.Workspace, _ *logger.Logger) error {
		launched = ws
		require.NoError(t, ws.Update(0, "<template>edited</template>"))
		return ws.Save()
	}

	root := NewRootCmd(first)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--settings", path})
	require.NoError(t, root.Execute())

	require.NotNil(t, launched)
	assert.NotNil(t, launched.Store)
	assert.Nil(t, launched.Normalizer)
	assert.Equal(t, 3, launched.Files.Len())

	var restored string
	second := func(_ context.Context, ws *data.Workspace, _ *logger.Logger) error {
		f, err := ws.Files.At(0)
		require.NoError(t, err)
		restored = f.Value
		return nil
	}

	root = NewRootCmd(second)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--settings", path})
	require.NoError(t, root.Execute())
	assert.Equal(t, "<template>edited</template>", restored)
}

func TestRootRejectsInvalidSettings(t *testing.T) {
	path := writeGUISettings(t)
	s, err := settings.Read(path)
	require.NoError(t, err)
	s.TabSize = 0
	require.NoError(t, settings.Write(s, path))

	called := false
	root := NewRootCmd(func(context.Context, *data.Workspace, *logger.Logger) error {
		called = true
		return nil
	})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--settings", path})

	err = root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid settings")
	assert.False(t, called)
}

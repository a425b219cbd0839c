package data

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ispapp/sandpad/internal/database"
	"github.com/ispapp/sandpad/internal/settings"
	"github.com/ispapp/sandpad/pkg/code"
	"github.com/ispapp/sandpad/pkg/files"
	"github.com/ispapp/sandpad/pkg/sandbox"
	"github.com/ispapp/sandpad/pkg/sfc"
)

// setupCompiler reports a script-setup block for sources containing
// "<script setup>" and compiles them to a fixed component.
type setupCompiler struct {
	err error
}

func (c *setupCompiler) Parse(_ context.Context, source string) (*sfc.Descriptor, error) {
	if c.err != nil {
		return nil, c.err
	}
	d := &sfc.Descriptor{Source: source, Template: &sfc.Block{Type: "template", Content: "<h1>{{ msg }}</h1>"}}
	if strings.Contains(source, "<script setup>") {
		d.ScriptSetup = &sfc.Block{Type: "script", Content: "const msg = 'hi'"}
	}
	return d, nil
}

func (c *setupCompiler) CompileScript(context.Context, *sfc.Descriptor) (*sfc.ScriptBlock, error) {
	return &sfc.ScriptBlock{Content: "export default {}", Setup: true}, nil
}

func newWorkspace(t *testing.T) *Workspace {
	t.Helper()
	test.NewTempApp(t)
	w, err := New(settings.DefaultSettings(), nil, nil)
	require.NoError(t, err)
	return w
}

func withStore(t *testing.T, w *Workspace) {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "ws.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	w.Store = db
}

func TestNewUsesDefaults(t *testing.T) {
	w := newWorkspace(t)

	assert.Equal(t, 3, w.Files.Len())
	assert.Equal(t, code.MustLookup(code.ThemeLight), w.Theme())
	assert.Equal(t, sandbox.DefaultEntry, w.Entry())

	names, err := w.Bindings.FileNames.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"App.vue", "main.js", "index.html"}, names)

	theme, err := w.Bindings.ThemeName.Get()
	require.NoError(t, err)
	assert.Equal(t, "light", theme)
}

func TestNewRejectsBadThemeFile(t *testing.T) {
	s := settings.DefaultSettings()
	s.ThemeFile = filepath.Join(t.TempDir(), "missing.json")
	_, err := New(s, nil, nil)
	assert.Error(t, err)
}

func TestProjectWithoutNormalizer(t *testing.T) {
	w := newWorkspace(t)

	p := w.Project(context.Background())
	require.NoError(t, p.Validate())
	assert.Equal(t, files.AppVue, p.Files["/App.vue"].Code)
	assert.Equal(t, "./main.js", p.Entry)
	assert.Equal(t, sandbox.DefaultDependencies(), p.Dependencies)
}

func TestProjectNormalizesVueFiles(t *testing.T) {
	w := newWorkspace(t)
	w.Normalizer = sfc.New(&setupCompiler{})

	p := w.Project(context.Background())
	assert.Equal(t,
		"<template>\n<h1>{{ msg }}</h1>\n</template>\n<script>\nexport default {}\n</script>",
		p.Files["/App.vue"].Code)
	assert.Equal(t, files.MainJS, p.Files["/main.js"].Code)

	f, err := w.Files.At(0)
	require.NoError(t, err)
	assert.Equal(t, files.AppVue, f.Value, "the buffer itself is not rewritten")
}

func TestProjectNormalizationDisabled(t *testing.T) {
	w := newWorkspace(t)
	w.Normalizer = sfc.New(&setupCompiler{})
	w.Settings.NormalizeScriptSetup = false

	p := w.Project(context.Background())
	assert.Equal(t, files.AppVue, p.Files["/App.vue"].Code)
}

func TestProjectForwardsRawSourceOnCompilerError(t *testing.T) {
	w := newWorkspace(t)
	w.Normalizer = sfc.New(&setupCompiler{err: errors.New("boom")})

	p := w.Project(context.Background())
	assert.Equal(t, files.AppVue, p.Files["/App.vue"].Code)
}

func TestSetupCarriesPreviewHeight(t *testing.T) {
	w := newWorkspace(t)
	w.Settings.PreviewHeight = "800px"

	s := w.Setup(context.Background())
	assert.Equal(t, "800px", s.Options.Height)
	assert.NoError(t, s.Validate())
}

func TestPreviewOptions(t *testing.T) {
	s := settings.DefaultSettings()
	s.PreviewHeight = "calc(100vh - 40px)"
	assert.Equal(t, sandbox.Options{Height: "calc(100vh - 40px)"}, PreviewOptions(s))
	assert.Equal(t, sandbox.Options{}, PreviewOptions(nil))
}

func TestSetTheme(t *testing.T) {
	w := newWorkspace(t)

	require.NoError(t, w.SetTheme(code.ThemeNightOwl))
	assert.Equal(t, code.MustLookup(code.ThemeNightOwl), w.Theme())
	assert.Equal(t, "night-owl", w.Settings.Theme)

	err := w.SetTheme("solarized")
	assert.ErrorIs(t, err, code.ErrUnknownTheme)
	assert.Equal(t, code.MustLookup(code.ThemeNightOwl), w.Theme())

	w.SetCustomTheme(code.MustLookup(code.ThemeDark))
	label, _ := w.Bindings.ThemeName.Get()
	assert.Equal(t, CustomThemeLabel, label)
}

func TestUpdateAndAddFile(t *testing.T) {
	w := newWorkspace(t)
	assert.False(t, w.Dirty())

	require.NoError(t, w.Update(1, "console.log(1)"))
	assert.True(t, w.Dirty())
	assert.ErrorIs(t, w.Update(9, "x"), files.ErrIndexOutOfRange)

	index, err := w.AddFile("util.js", "export const one = 1")
	require.NoError(t, err)
	assert.Equal(t, 3, index)

	f, err := w.Files.At(index)
	require.NoError(t, err)
	assert.Equal(t, "js", f.Type)

	_, err = w.AddFile("util.js", "")
	assert.ErrorIs(t, err, files.ErrDuplicateName)

	names, _ := w.Bindings.FileNames.Get()
	assert.Len(t, names, 4)
}

func TestSaveWithoutStore(t *testing.T) {
	w := newWorkspace(t)
	assert.ErrorIs(t, w.Save(), ErrNoStore)
	_, err := w.Load()
	assert.ErrorIs(t, err, ErrNoStore)
}

func TestSaveAndLoad(t *testing.T) {
	w := newWorkspace(t)
	withStore(t, w)

	loaded, err := w.Load()
	require.NoError(t, err)
	assert.False(t, loaded)

	require.NoError(t, w.Update(1, "console.log('saved')"))
	require.NoError(t, w.SetTheme(code.ThemeDark))
	w.SetEntry("./main.js")
	require.NoError(t, w.Save())
	assert.False(t, w.Dirty())

	other, err := New(settings.DefaultSettings(), nil, nil)
	require.NoError(t, err)
	other.Store = w.Store

	loaded, err = other.Load()
	require.NoError(t, err)
	assert.True(t, loaded)

	f, err := other.Files.At(1)
	require.NoError(t, err)
	assert.Equal(t, "console.log('saved')", f.Value)
	assert.Equal(t, code.MustLookup(code.ThemeDark), other.Theme())
}

func TestSaveAndLoadDependencies(t *testing.T) {
	w := newWorkspace(t)
	withStore(t, w)

	w.SetDependencies(map[string]string{"vue": "^3.4.0", "pinia": "^2.1.0"})
	require.NoError(t, w.Save())

	other, err := New(settings.DefaultSettings(), nil, nil)
	require.NoError(t, err)
	other.Store = w.Store

	loaded, err := other.Load()
	require.NoError(t, err)
	require.True(t, loaded)
	assert.Equal(t, map[string]string{"vue": "^3.4.0", "pinia": "^2.1.0"}, other.Dependencies())
	assert.Equal(t, "^2.1.0", other.Project(context.Background()).Dependencies["pinia"])
}

func TestLoadRejectsCorruptDependencies(t *testing.T) {
	w := newWorkspace(t)
	withStore(t, w)
	require.NoError(t, w.Save())
	require.NoError(t, w.Store.SaveSetting(database.KeyDependencies, "{not json"))

	_, err := w.Load()
	assert.ErrorContains(t, err, "stored dependencies are invalid")
}

func TestAutoSaveReturnsUpdateErrors(t *testing.T) {
	w := newWorkspace(t)
	path := filepath.Join(t.TempDir(), "ws.db")
	db, err := database.New(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	w.Store = db
	w.Settings.AutoSave = true
	require.NoError(t, w.Save())

	// updates fail while full rewrites still succeed
	raw, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer raw.Close()
	_, err = raw.Exec(`CREATE TRIGGER files_read_only BEFORE UPDATE ON files
	BEGIN SELECT RAISE(ABORT, 'files are read only'); END`)
	require.NoError(t, err)

	err = w.Update(1, "console.log('lost')")
	require.Error(t, err)
	assert.NotErrorIs(t, err, sql.ErrNoRows)
	assert.ErrorContains(t, err, "files are read only")
	assert.True(t, w.Dirty())

	stored, err := db.LoadFiles()
	require.NoError(t, err)
	assert.NotEqual(t, "console.log('lost')", stored[1].Value)
}

func TestAutoSaveWritesThrough(t *testing.T) {
	w := newWorkspace(t)
	withStore(t, w)
	require.NoError(t, w.Save())

	require.NoError(t, w.Update(0, "<template />"))
	assert.False(t, w.Dirty())

	stored, err := w.Store.LoadFiles()
	require.NoError(t, err)
	assert.Equal(t, "<template />", stored[0].Value)

	index, err := w.AddFile("extra.js", "")
	require.NoError(t, err)
	require.NoError(t, w.Update(index, "1"))

	count, err := w.Store.FileCount()
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestManifestRoundTrip(t *testing.T) {
	w := newWorkspace(t)
	path := filepath.Join(t.TempDir(), "sandpad.yaml")
	require.NoError(t, w.SaveManifest(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "entry: ./main.js")

	other := newWorkspace(t)
	require.NoError(t, other.Files.Replace([]files.File{{Name: "x.js", Value: "1", Visible: true}}))
	require.NoError(t, other.LoadManifest(path))
	assert.Equal(t, w.Files.Snapshot(), other.Files.Snapshot())
	assert.Equal(t, w.Dependencies(), other.Dependencies())
}

package widgets

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ispapp/sandpad/internal/settings"
	"github.com/ispapp/sandpad/pkg/files"
)

func TestFilesTableCells(t *testing.T) {
	test.NewTempApp(t)
	ft := NewFilesTable(files.MustList(files.Defaults()...))

	assert.Equal(t, "Name", ft.CellText(0, ColName))
	assert.Equal(t, "App.vue", ft.CellText(1, ColName))
	assert.Equal(t, "js", ft.CellText(2, ColType))
	assert.Equal(t, "☑", ft.CellText(3, ColVisible))
	assert.Equal(t, "", ft.CellText(9, ColName))

	rows, cols := ft.Length()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 5, cols)
}

func TestFilesTableTap(t *testing.T) {
	test.NewTempApp(t)
	list := files.MustList(files.Defaults()...)
	ft := NewFilesTable(list)

	opened, changed := -1, -1
	ft.OnOpen = func(i int) { opened = i }
	ft.OnFlagsChanged = func(i int) { changed = i }

	ft.Tap(2, ColName)
	assert.Equal(t, 1, opened)

	ft.Tap(3, ColVisible)
	assert.Equal(t, 2, changed)
	f, err := list.At(2)
	require.NoError(t, err)
	assert.False(t, f.Visible)
	assert.True(t, f.Editable)
	assert.Equal(t, "☐", ft.CellText(3, ColVisible))

	ft.Tap(1, ColEditable)
	f, _ = list.At(0)
	assert.False(t, f.Editable)

	changed = -1
	ft.Tap(0, ColVisible)
	assert.Equal(t, -1, changed, "header row does nothing")
}

func TestSettingsFormApply(t *testing.T) {
	test.NewTempApp(t)
	s := settings.DefaultSettings()
	form := NewSettingsForm(s)

	form.themeSelect.SetSelected("night-owl")
	form.fontSizeEntry.SetText("18")
	form.heightEntry.SetText("800px")
	form.wordWrapCheck.SetChecked(true)

	assert.Empty(t, form.Apply())
	assert.Equal(t, "night-owl", s.Theme)
	assert.Equal(t, float32(18), s.FontSize)
	assert.Equal(t, "800px", s.PreviewHeight)
	assert.True(t, s.WordWrap)
}

func TestSettingsFormReportsProblems(t *testing.T) {
	test.NewTempApp(t)
	form := NewSettingsForm(settings.DefaultSettings())

	form.tabSizeEntry.SetText("wide")
	form.heightEntry.SetText("tall")

	problems := form.Apply()
	require.Len(t, problems, 2)
	assert.Contains(t, problems[0], "Invalid tab size")
}

func TestSettingsFormReset(t *testing.T) {
	test.NewTempApp(t)
	s := settings.DefaultSettings()
	s.Theme = "dark"
	form := NewSettingsForm(settings.DefaultSettings())

	form.Reset(s)
	assert.Equal(t, "dark", form.themeSelect.Selected)
	assert.Equal(t, "2", form.tabSizeEntry.Text)
}

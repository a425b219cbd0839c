package windows

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenReusesKind(t *testing.T) {
	a := test.NewTempApp(t)
	wm := NewWindowManager(a)

	first, err := wm.Open(KindPreview, "Preview", widget.NewLabel("one"), fyne.NewSize(400, 300))
	require.NoError(t, err)
	second, err := wm.Open(KindPreview, "Preview 2", widget.NewLabel("two"), fyne.NewSize(400, 300))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "Preview 2", second.Title)
	assert.Equal(t, 1, wm.Count())

	_, err = wm.Open(KindSource, "App.vue", widget.NewLabel("src"), fyne.NewSize(400, 300))
	require.NoError(t, err)
	assert.Equal(t, 2, wm.Count())

	list := wm.List()
	require.Len(t, list, 2)
	assert.Equal(t, KindPreview, list[0].Kind)
}

func TestCloseForgetsWindow(t *testing.T) {
	a := test.NewTempApp(t)
	wm := NewWindowManager(a)

	var closed []string
	wm.SetOnWindowClose(func(info *WindowInfo) { closed = append(closed, info.Kind) })

	_, err := wm.Open(KindSource, "main.js", widget.NewLabel("src"), fyne.NewSize(200, 200))
	require.NoError(t, err)

	assert.True(t, wm.Close(KindSource))
	assert.False(t, wm.Close(KindSource))
	assert.Equal(t, []string{KindSource}, closed)

	_, ok := wm.Get(KindSource)
	assert.False(t, ok)
}

func TestCloseAll(t *testing.T) {
	a := test.NewTempApp(t)
	wm := NewWindowManager(a)
	wm.SetMainWindow(a.NewWindow("main"))

	_, _ = wm.Open(KindPreview, "Preview", widget.NewLabel(""), fyne.NewSize(1, 1))
	_, _ = wm.Open(KindSource, "Source", widget.NewLabel(""), fyne.NewSize(1, 1))
	wm.CloseAll()

	assert.Zero(t, wm.Count())
	assert.NotNil(t, wm.MainWindow())
}

func TestOpenWithoutApp(t *testing.T) {
	wm := NewWindowManager(nil)
	_, err := wm.Open(KindPreview, "x", widget.NewLabel(""), fyne.NewSize(1, 1))
	assert.Error(t, err)
}

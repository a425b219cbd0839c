package code

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const zoomStep float32 = 2

// ZoomIn grows the editor font by one step.
func (e *Editor) ZoomIn() {
	e.zoom(zoomStep)
}

// ZoomOut shrinks the editor font by one step.
func (e *Editor) ZoomOut() {
	e.zoom(-zoomStep)
}

// ZoomReset returns to the theme typography size.
func (e *Editor) ZoomReset() {
	o := e.options
	o.FontSize = 0
	e.SetOptions(o)
}

func (e *Editor) zoom(delta float32) {
	o := e.options
	size := o.FontSize
	if size == 0 {
		size = parsePixels(e.theme.Typography.FontSize)
		if size == 0 {
			size = DefaultFontSize
		}
	}
	o.FontSize = ClampFontSize(size + delta)
	e.SetOptions(o)
}

// AddShortcuts registers the editor key bindings on a window canvas.
// onSave may be nil.
func AddShortcuts(c fyne.Canvas, e *Editor, onSave func()) {
	bind := func(key fyne.KeyName, fn func()) {
		c.AddShortcut(&desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault},
			func(fyne.Shortcut) { fn() })
	}

	bind(fyne.KeyEqual, e.ZoomIn)
	bind(fyne.KeyMinus, e.ZoomOut)
	bind(fyne.Key0, e.ZoomReset)
	if onSave != nil {
		bind(fyne.KeyS, onSave)
	}
}

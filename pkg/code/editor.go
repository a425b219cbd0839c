package code

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ispapp/sandpad/pkg/files"
)

// Editor shows one tab per visible file of a list and reports edits with
// the file's index in the full list.
type Editor struct {
	widget.BaseWidget

	list     *files.List
	theme    Theme
	options  Options
	onChange func(index int, value string)

	tabs    *container.AppTabs
	editors map[int]*CodeEditor
	items   map[int]*container.TabItem
}

// NewEditor creates an editor over list. onChange may be nil.
func NewEditor(list *files.List, t Theme, onChange func(index int, value string)) *Editor {
	e := &Editor{
		list:     list,
		theme:    t,
		options:  DefaultOptions(),
		onChange: onChange,
		tabs:     container.NewAppTabs(),
		editors:  map[int]*CodeEditor{},
		items:    map[int]*container.TabItem{},
	}
	e.ExtendBaseWidget(e)
	e.Reload()
	return e
}

// Reload syncs tabs with the list. New visible files get a tab, and tabs
// whose file was renamed, retyped or changed outside the editor follow it.
func (e *Editor) Reload() {
	visible := e.list.Visible()
	keep := make(map[int]bool, len(visible))
	retitled := false

	for _, entry := range visible {
		keep[entry.Index] = true
		ed, ok := e.editors[entry.Index]
		if !ok {
			ed = e.newCodeEditor(entry.Index, entry.File)
			e.editors[entry.Index] = ed
			item := container.NewTabItem(entry.File.Name, ed)
			e.items[entry.Index] = item
			e.tabs.Append(item)
		}
		if item := e.items[entry.Index]; item.Text != entry.File.Name {
			item.Text = entry.File.Name
			retitled = true
		}
		if ed.FileType() != entry.File.Type {
			ed.SetFileType(entry.File.Type)
		}
		ed.SetReadOnly(!entry.File.Editable)
		if ed.Text() != entry.File.Value {
			ed.SetText(entry.File.Value)
		}
	}

	for index, item := range e.items {
		if !keep[index] {
			e.tabs.Remove(item)
			delete(e.items, index)
			delete(e.editors, index)
		}
	}
	if retitled {
		e.tabs.Refresh()
	}
}

func (e *Editor) newCodeEditor(index int, f files.File) *CodeEditor {
	ed := NewCodeEditor(e.theme, f.Type)
	ed.SetOptions(e.options)
	ed.SetText(f.Value)
	ed.SetReadOnly(!f.Editable)
	ed.SetOnTextChanged(func(text string) {
		if e.onChange != nil {
			e.onChange(index, text)
		}
	})
	return ed
}

// SetTheme applies a theme to every open buffer.
func (e *Editor) SetTheme(t Theme) {
	e.theme = t
	for _, ed := range e.editors {
		ed.SetTheme(t)
	}
}

// Theme returns the active theme.
func (e *Editor) Theme() Theme {
	return e.theme
}

// SetOptions applies display preferences to every open buffer.
func (e *Editor) SetOptions(o Options) {
	e.options = o
	for _, ed := range e.editors {
		ed.SetOptions(o)
	}
}

// Options returns the display preferences in use.
func (e *Editor) Options() Options {
	return e.options
}

// CodeEditor returns the buffer widget for the file at index.
func (e *Editor) CodeEditor(index int) (*CodeEditor, bool) {
	ed, ok := e.editors[index]
	return ed, ok
}

// TabCount returns the number of open tabs.
func (e *Editor) TabCount() int {
	return len(e.tabs.Items)
}

// Select shows the tab of the file at index.
func (e *Editor) Select(index int) {
	if item, ok := e.items[index]; ok {
		e.tabs.Select(item)
	}
}

// Selected returns the list index of the shown file, or -1.
func (e *Editor) Selected() int {
	current := e.tabs.Selected()
	for index, item := range e.items {
		if item == current {
			return index
		}
	}
	return -1
}

// CreateRenderer creates the widget renderer.
func (e *Editor) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(e.tabs)
}

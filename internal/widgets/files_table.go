package widgets

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/ispapp/sandpad/pkg/files"
)

var fileTableHeaders = []string{"Name", "Type", "Lines", "Visible", "Editable"}

// Column indexes of the files table.
const (
	ColName = iota
	ColType
	ColLines
	ColVisible
	ColEditable
)

// FilesTable lists the workspace files. Tapping a name calls OnOpen with
// the file index, tapping the Visible or Editable cell toggles the flag.
type FilesTable struct {
	*widget.Table

	list *files.List

	// OnOpen is called with the list index of a tapped file name
	OnOpen func(index int)

	// OnFlagsChanged is called after a visible or editable toggle
	OnFlagsChanged func(index int)
}

// NewFilesTable creates a table over list.
func NewFilesTable(list *files.List) *FilesTable {
	ft := &FilesTable{list: list}

	ft.Table = widget.NewTable(
		func() (int, int) {
			return list.Len() + 1, len(fileTableHeaders) // +1 for header row
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			label.TextStyle.Bold = id.Row == 0
			label.SetText(ft.CellText(id.Row, id.Col))
		})

	ft.Table.SetColumnWidth(ColName, 180)
	ft.Table.OnSelected = func(id widget.TableCellID) {
		ft.Table.Unselect(id)
		ft.Tap(id.Row, id.Col)
	}

	list.Subscribe(func(int, files.File) {
		fyne.Do(ft.Table.Refresh)
	})
	return ft
}

// CellText returns the text shown at row and col. Row 0 is the header.
func (ft *FilesTable) CellText(row, col int) string {
	if row == 0 {
		if col < len(fileTableHeaders) {
			return fileTableHeaders[col]
		}
		return ""
	}

	f, err := ft.list.At(row - 1)
	if err != nil {
		return ""
	}
	switch col {
	case ColName:
		return f.Name
	case ColType:
		return f.Type
	case ColLines:
		return strconv.Itoa(strings.Count(f.Value, "\n") + 1)
	case ColVisible:
		return check(f.Visible)
	case ColEditable:
		return check(f.Editable)
	}
	return ""
}

func check(on bool) string {
	if on {
		return "☑"
	}
	return "☐"
}

// Tap performs the action of a cell.
func (ft *FilesTable) Tap(row, col int) {
	if row == 0 {
		return
	}
	index := row - 1
	f, err := ft.list.At(index)
	if err != nil {
		return
	}

	switch col {
	case ColName:
		if ft.OnOpen != nil {
			ft.OnOpen(index)
		}
	case ColVisible, ColEditable:
		editable, visible := f.Editable, f.Visible
		if col == ColVisible {
			visible = !visible
		} else {
			editable = !editable
		}
		if err := ft.list.SetFlags(index, editable, visible); err != nil {
			return
		}
		if ft.OnFlagsChanged != nil {
			ft.OnFlagsChanged(index)
		}
	}
}

package dialogs

import (
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ispapp/sandpad/internal/data"
	"github.com/ispapp/sandpad/pkg/files"
)

// FileNameValidator rejects empty names, names with path separators and
// names already open in list.
func FileNameValidator(list *files.List) fyne.StringValidator {
	return func(name string) error {
		name = strings.TrimSpace(name)
		switch {
		case name == "":
			return files.ErrEmptyName
		case strings.ContainsAny(name, `/\`):
			return errors.New("file name cannot contain a path separator")
		case list.IndexOf(name) >= 0:
			return fmt.Errorf("%w: %s", files.ErrDuplicateName, name)
		}
		return nil
	}
}

// ShowAddFileDialog asks for a file name and appends an empty file to the
// workspace. onAdded receives the index of the new file.
func ShowAddFileDialog(parent fyne.Window, ws *data.Workspace, onAdded func(index int)) {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Component.vue")
	nameEntry.Validator = FileNameValidator(ws.Files)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Name:", Widget: nameEntry, HintText: "The extension picks the highlighting"},
		},
	}

	d := dialog.NewCustomConfirm("Add File", "Add", "Cancel",
		container.NewVBox(form), func(confirmed bool) {
			if !confirmed {
				return
			}
			index, err := ws.AddFile(strings.TrimSpace(nameEntry.Text), "")
			if err != nil {
				dialog.ShowError(err, parent)
				return
			}
			if onAdded != nil {
				onAdded(index)
			}
		}, parent)
	d.Resize(fyne.NewSize(400, 200))
	d.Show()
}

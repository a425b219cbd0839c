package dialogs

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/ispapp/sandpad/internal/data"
	"github.com/ispapp/sandpad/pkg/code"
)

// ShowManifestImportDialog replaces the workspace files with a YAML
// manifest. onLoaded runs after a successful import.
func ShowManifestImportDialog(parent fyne.Window, ws *data.Workspace, onLoaded func()) {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, parent)
			return
		}
		if reader == nil {
			return // User cancelled
		}
		path := reader.URI().Path()
		reader.Close()

		if err := ws.LoadManifest(path); err != nil {
			dialog.ShowError(fmt.Errorf("failed to import manifest: %w", err), parent)
			return
		}
		if onLoaded != nil {
			onLoaded()
		}
	}, parent)

	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".yaml", ".yml"}))
	fileDialog.Show()
}

// ShowThemeImportDialog loads a JSON theme file and applies it.
func ShowThemeImportDialog(parent fyne.Window, ws *data.Workspace, onApplied func(code.Theme)) {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, parent)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		th, err := code.LoadThemeFile(path)
		if err != nil {
			dialog.ShowError(err, parent)
			return
		}
		ws.SetCustomTheme(th)
		ws.Settings.ThemeFile = path
		if onApplied != nil {
			onApplied(th)
		}
	}, parent)

	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	fileDialog.Show()
}

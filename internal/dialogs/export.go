package dialogs

import (
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/ispapp/sandpad/internal/data"
	"github.com/ispapp/sandpad/pkg/code"
)

// WriteHTML renders the file at index as a standalone highlighted page.
func WriteHTML(w io.Writer, ws *data.Workspace, index int) error {
	f, err := ws.Files.At(index)
	if err != nil {
		return err
	}
	return code.HighlightHTML(w, f.Value, f.Type, ws.Theme())
}

// ShowHTMLExportDialog saves the file at index as highlighted HTML
func ShowHTMLExportDialog(parent fyne.Window, ws *data.Workspace, index int) {
	f, err := ws.Files.At(index)
	if err != nil {
		dialog.ShowError(err, parent)
		return
	}

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, parent)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if err := WriteHTML(writer, ws, index); err != nil {
			dialog.ShowError(fmt.Errorf("failed to export %s: %w", f.Name, err), parent)
			return
		}
		dialog.ShowInformation("Export Successful", fmt.Sprintf("Exported %s to %s", f.Name, writer.URI().Name()), parent)
	}, parent)

	fileDialog.SetFileName(f.Name + ".html")
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".html"}))
	fileDialog.Show()
}

// ShowManifestExportDialog saves the workspace as a YAML manifest
func ShowManifestExportDialog(parent fyne.Window, ws *data.Workspace) {
	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, parent)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := ws.SaveManifest(path); err != nil {
			dialog.ShowError(err, parent)
			return
		}
		dialog.ShowInformation("Export Successful",
			fmt.Sprintf("Exported %d files to %s", ws.Files.Len(), writer.URI().Name()), parent)
	}, parent)

	fileDialog.SetFileName("sandpad.yaml")
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".yaml", ".yml"}))
	fileDialog.Show()
}

package data

import (
	"fyne.io/fyne/v2/data/binding"

	"github.com/ispapp/sandpad/pkg/files"
)

// Bindings exposes workspace state to widgets.
type Bindings struct {
	// FileNames lists every file name in order
	FileNames binding.StringList

	// ThemeName holds the active theme name, or CustomThemeLabel
	ThemeName binding.String

	// Status holds the last sandbox or store status message
	Status binding.String
}

// NewBindings creates empty bindings.
func NewBindings() *Bindings {
	return &Bindings{
		FileNames: binding.NewStringList(),
		ThemeName: binding.NewString(),
		Status:    binding.NewString(),
	}
}

func (b *Bindings) setFiles(list []files.File) {
	names := make([]string, len(list))
	for i, f := range list {
		names[i] = f.Name
	}
	_ = b.FileNames.Set(names)
}

func (b *Bindings) setTheme(name string) {
	_ = b.ThemeName.Set(name)
}

// SetStatus updates the status line.
func (b *Bindings) SetStatus(msg string) {
	_ = b.Status.Set(msg)
}

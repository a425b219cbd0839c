package widgets

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ispapp/sandpad/internal/settings"
	"github.com/ispapp/sandpad/pkg/code"
)

// SettingsForm edits an AppSettings value. Apply copies the form into the
// settings and validates them without saving.
type SettingsForm struct {
	s *settings.AppSettings

	themeSelect      *widget.Select
	fontSizeEntry    *widget.Entry
	tabSizeEntry     *widget.Entry
	wordWrapCheck    *widget.Check
	lineNumbersCheck *widget.Check
	heightEntry      *widget.Entry
	addrEntry        *widget.Entry
	nodePathEntry    *widget.Entry
	nodeModulesEntry *widget.Entry
	normalizeCheck   *widget.Check
	dbPathEntry      *widget.Entry
	autoSaveCheck    *widget.Check
	logLevelSelect   *widget.Select
}

// NewSettingsForm creates a form showing s.
func NewSettingsForm(s *settings.AppSettings) *SettingsForm {
	names := make([]string, 0, len(code.ThemeNames()))
	for _, n := range code.ThemeNames() {
		names = append(names, string(n))
	}

	f := &SettingsForm{
		s:                s,
		themeSelect:      widget.NewSelect(names, nil),
		fontSizeEntry:    widget.NewEntry(),
		tabSizeEntry:     widget.NewEntry(),
		wordWrapCheck:    widget.NewCheck("Wrap long lines", nil),
		lineNumbersCheck: widget.NewCheck("Show line numbers", nil),
		heightEntry:      widget.NewEntry(),
		addrEntry:        widget.NewEntry(),
		nodePathEntry:    widget.NewEntry(),
		nodeModulesEntry: widget.NewEntry(),
		normalizeCheck:   widget.NewCheck("Compile <script setup> components before preview", nil),
		dbPathEntry:      widget.NewEntry(),
		autoSaveCheck:    widget.NewCheck("Save edits to the workspace database", nil),
		logLevelSelect:   widget.NewSelect([]string{"trace", "debug", "info", "warn", "error"}, nil),
	}
	f.fontSizeEntry.SetPlaceHolder("theme default")
	f.addrEntry.SetPlaceHolder("127.0.0.1:0")
	f.nodePathEntry.SetPlaceHolder("node")
	f.Reset(s)
	return f
}

// Reset shows the values of s.
func (f *SettingsForm) Reset(s *settings.AppSettings) {
	f.s = s
	f.themeSelect.SetSelected(s.Theme)
	f.fontSizeEntry.SetText(s.GetFontSizeString())
	f.tabSizeEntry.SetText(s.GetTabSizeString())
	f.wordWrapCheck.SetChecked(s.WordWrap)
	f.lineNumbersCheck.SetChecked(s.ShowLineNumbers)
	f.heightEntry.SetText(s.PreviewHeight)
	f.addrEntry.SetText(s.PreviewAddr)
	f.nodePathEntry.SetText(s.NodePath)
	f.nodeModulesEntry.SetText(s.NodeModules)
	f.normalizeCheck.SetChecked(s.NormalizeScriptSetup)
	f.dbPathEntry.SetText(s.DatabasePath)
	f.autoSaveCheck.SetChecked(s.AutoSave)
	f.logLevelSelect.SetSelected(s.LogLevel)
}

// Apply copies the form into the settings and returns every problem found.
func (f *SettingsForm) Apply() []string {
	var problems []string

	s := f.s
	s.Theme = f.themeSelect.Selected
	if err := s.SetFontSizeString(f.fontSizeEntry.Text); err != nil {
		problems = append(problems, "Invalid font size: "+err.Error())
	}
	if err := s.SetTabSizeString(f.tabSizeEntry.Text); err != nil {
		problems = append(problems, "Invalid tab size: "+err.Error())
	}
	s.WordWrap = f.wordWrapCheck.Checked
	s.ShowLineNumbers = f.lineNumbersCheck.Checked
	s.PreviewHeight = strings.TrimSpace(f.heightEntry.Text)
	s.PreviewAddr = strings.TrimSpace(f.addrEntry.Text)
	s.NodePath = strings.TrimSpace(f.nodePathEntry.Text)
	s.NodeModules = strings.TrimSpace(f.nodeModulesEntry.Text)
	s.NormalizeScriptSetup = f.normalizeCheck.Checked
	s.DatabasePath = strings.TrimSpace(f.dbPathEntry.Text)
	s.AutoSave = f.autoSaveCheck.Checked
	s.LogLevel = f.logLevelSelect.Selected

	return append(problems, s.Problems()...)
}

// CreateSettingsTab creates the settings tab content for s. onApplied runs
// after the settings were validated and saved.
func CreateSettingsTab(parentWindow fyne.Window, s *settings.AppSettings, onApplied func(*settings.AppSettings)) *container.Scroll {
	form := NewSettingsForm(s)

	dbPathBtn := widget.NewButton("Browse", func() {
		fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, parentWindow)
				return
			}
			if writer == nil {
				return // User cancelled
			}
			defer writer.Close()

			form.dbPathEntry.SetText(writer.URI().Path())
		}, parentWindow)

		fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".db"}))
		fileDialog.SetFileName("workspace.db")
		fileDialog.Show()
	})

	saveBtn := widget.NewButton("Save Settings", func() {
		if problems := form.Apply(); len(problems) > 0 {
			errorMsg := "Please fix the following errors:\n\n"
			for _, p := range problems {
				errorMsg += "• " + p + "\n"
			}
			dialog.ShowError(fmt.Errorf("%s", errorMsg), parentWindow)
			return
		}

		settings.Current = s
		if err := settings.Save(); err != nil {
			dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), parentWindow)
			return
		}
		if onApplied != nil {
			onApplied(s)
		}
		dialog.ShowInformation("Settings Saved", "All settings have been saved successfully!", parentWindow)
	})

	resetBtn := widget.NewButton("Reset to Defaults", func() {
		dialog.ShowConfirm("Reset Settings",
			"Are you sure you want to reset all settings to their default values?",
			func(confirmed bool) {
				if !confirmed {
					return
				}
				*s = *settings.DefaultSettings()
				form.Reset(s)
				dialog.ShowInformation("Settings Reset", "All settings have been reset to default values.", parentWindow)
			}, parentWindow)
	})

	editorSection := widget.NewCard("Editor Settings", "", container.NewVBox(
		container.NewGridWithColumns(2,
			widget.NewLabel("Theme:"), form.themeSelect,
			widget.NewLabel("Font Size:"), form.fontSizeEntry,
			widget.NewLabel("Tab Size:"), form.tabSizeEntry,
		),
		form.wordWrapCheck,
		form.lineNumbersCheck,
	))

	previewSection := widget.NewCard("Preview Settings", "", container.NewVBox(
		container.NewGridWithColumns(2,
			widget.NewLabel("Preview Height (CSS):"), form.heightEntry,
			widget.NewLabel("Listen Address:"), form.addrEntry,
			widget.NewLabel("Node Executable:"), form.nodePathEntry,
			widget.NewLabel("node_modules Directory:"), form.nodeModulesEntry,
		),
		form.normalizeCheck,
	))

	storageSection := widget.NewCard("Storage Settings", "", container.NewVBox(
		container.NewGridWithColumns(2,
			widget.NewLabel("Database Path:"), container.NewBorder(nil, nil, nil, dbPathBtn, form.dbPathEntry),
			widget.NewLabel("Log Level:"), form.logLevelSelect,
		),
		form.autoSaveCheck,
	))

	content := container.NewVBox(
		widget.NewLabel("Application Settings"),
		widget.NewSeparator(),
		editorSection,
		previewSection,
		storageSection,
		widget.NewSeparator(),
		container.NewHBox(saveBtn, resetBtn),
	)

	return container.NewScroll(content)
}

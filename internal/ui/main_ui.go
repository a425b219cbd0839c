package ui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ispapp/sandpad/internal/data"
	"github.com/ispapp/sandpad/internal/dialogs"
	"github.com/ispapp/sandpad/internal/logger"
	"github.com/ispapp/sandpad/internal/settings"
	apptheme "github.com/ispapp/sandpad/internal/ui/theme"
	"github.com/ispapp/sandpad/internal/widgets"
	"github.com/ispapp/sandpad/internal/windows"
	"github.com/ispapp/sandpad/pkg/code"
	"github.com/ispapp/sandpad/pkg/sandbox"
)

// refreshDelay batches keystrokes before the project is re-sent.
const refreshDelay = 400 * time.Millisecond

// MainUI is the main window: the editor and the sandbox side by side.
type MainUI struct {
	App       fyne.App
	Window    fyne.Window
	Workspace *data.Workspace
	Editor    *code.Editor
	Sandbox   *sandbox.Sandbox
	Server    *sandbox.Server
	Files     *widgets.FilesTable
	Windows   *windows.WindowManager
	Theme     *apptheme.AppTheme

	log *logger.Logger

	mu        sync.Mutex
	pending   *time.Timer
	closeOnce sync.Once
}

// NewMainUI builds the window and starts the preview server.
func NewMainUI(app fyne.App, ws *data.Workspace, log *logger.Logger) (*MainUI, error) {
	m := &MainUI{
		App:       app,
		Workspace: ws,
		Windows:   windows.NewWindowManager(app),
		Theme:     apptheme.New(ws.Theme()),
		log:       log.With("ui"),
	}
	m.Theme.ApplyTheme(app)

	m.Window = app.NewWindow("sandpad")
	m.Windows.SetMainWindow(m.Window)

	m.Editor = code.NewEditor(ws.Files, ws.Theme(), m.onEdit)
	m.Editor.SetOptions(ws.Settings.EditorOptions())

	m.Server = sandbox.NewServer(sandbox.ServerOptions{
		Addr: ws.Settings.PreviewAddr,
		Log:  log,
	})
	m.Sandbox = sandbox.New(m.Server, ws.Project(context.Background()), data.PreviewOptions(ws.Settings))
	m.Sandbox.SetLogger(log)
	m.Server.SetConsole(m.Sandbox.Console())

	if err := m.Server.Listen(); err != nil {
		return nil, fmt.Errorf("failed to start preview server: %w", err)
	}
	if err := m.Sandbox.SetURL(m.Server.URL()); err != nil {
		return nil, err
	}
	if err := m.Sandbox.Update(context.Background()); err != nil {
		m.log.Error(err, "initial project rejected")
	}

	m.Files = widgets.NewFilesTable(ws.Files)
	m.Files.OnOpen = m.Editor.Select
	m.Files.OnFlagsChanged = func(int) { m.Editor.Reload() }

	statusLabel := widget.NewLabelWithData(ws.Bindings.Status)
	statusLabel.Importance = widget.LowImportance

	split := container.NewHSplit(m.Editor, m.Sandbox)
	split.Offset = 0.55

	tabs := container.NewAppTabs(
		container.NewTabItem("Workspace", split),
		container.NewTabItem("Files", m.Files),
		container.NewTabItem("Settings", widgets.CreateSettingsTab(m.Window, ws.Settings, m.ApplySettings)),
	)

	m.Window.SetMainMenu(m.mainMenu())
	m.Window.SetContent(container.NewBorder(nil, statusLabel, nil, nil, tabs))
	m.Window.Resize(fyne.NewSize(float32(ws.Settings.WindowWidth), float32(ws.Settings.WindowHeight)))
	m.Window.SetPadded(true)
	code.AddShortcuts(m.Window.Canvas(), m.Editor, m.save)

	m.Window.SetOnClosed(m.Close)
	return m, nil
}

func (m *MainUI) mainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Add File…", func() {
			dialogs.ShowAddFileDialog(m.Window, m.Workspace, func(index int) {
				m.Editor.Reload()
				m.Editor.Select(index)
				m.scheduleRefresh()
			})
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Manifest…", func() {
			dialogs.ShowManifestImportDialog(m.Window, m.Workspace, func() {
				m.Editor.Reload()
				m.scheduleRefresh()
			})
		}),
		fyne.NewMenuItem("Export Manifest…", func() {
			dialogs.ShowManifestExportDialog(m.Window, m.Workspace)
		}),
		fyne.NewMenuItem("Export Highlighted HTML…", func() {
			if index := m.Editor.Selected(); index >= 0 {
				dialogs.ShowHTMLExportDialog(m.Window, m.Workspace, index)
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Workspace", m.save),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Theme…", func() {
			dialogs.ShowThemeDialog(m.Window, m.Workspace.Settings.ThemeName(), func(name code.ThemeName) {
				if err := m.ApplyTheme(name); err != nil {
					dialog.ShowError(err, m.Window)
				}
			})
		}),
		fyne.NewMenuItem("Load Theme File…", func() {
			dialogs.ShowThemeImportDialog(m.Window, m.Workspace, m.applyTheme)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Zoom In", m.Editor.ZoomIn),
		fyne.NewMenuItem("Zoom Out", m.Editor.ZoomOut),
		fyne.NewMenuItem("Reset Zoom", m.Editor.ZoomReset),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Source Window", m.openSourceWindow),
		fyne.NewMenuItem("Open Preview Window", m.openPreviewWindow),
		fyne.NewMenuItem("Open Preview in Browser", m.Sandbox.OpenPreview),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			dialog.ShowInformation("About", "sandpad: a themed editor with a live Vue sandbox", m.Window)
		}),
	)

	return fyne.NewMainMenu(fileMenu, viewMenu, helpMenu)
}

func (m *MainUI) onEdit(index int, value string) {
	if err := m.Workspace.Update(index, value); err != nil {
		m.log.Error(err, "failed to store edit")
		m.Workspace.Bindings.SetStatus("save failed: " + err.Error())
	}
	m.scheduleRefresh()
}

func (m *MainUI) scheduleRefresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending != nil {
		m.pending.Stop()
	}
	m.pending = time.AfterFunc(refreshDelay, func() {
		ctx := context.Background()
		project := m.Workspace.Project(ctx)
		fyne.Do(func() {
			_ = m.Sandbox.SetProject(ctx, project)
		})
	})
}

// Refresh rebuilds the project from the workspace and dispatches it.
func (m *MainUI) Refresh(ctx context.Context) error {
	return m.Sandbox.SetProject(ctx, m.Workspace.Project(ctx))
}

// ApplyTheme switches the editor and the window chrome to a predefined theme.
func (m *MainUI) ApplyTheme(name code.ThemeName) error {
	if err := m.Workspace.SetTheme(name); err != nil {
		return err
	}
	m.applyTheme(m.Workspace.Theme())
	return nil
}

func (m *MainUI) applyTheme(t code.Theme) {
	m.Editor.SetTheme(t)
	m.Theme.SetEditorTheme(t)
	m.App.Settings().SetTheme(m.Theme)
}

// ApplySettings pushes saved settings to the running widgets.
func (m *MainUI) ApplySettings(s *settings.AppSettings) {
	m.Workspace.Settings = s
	m.Editor.SetOptions(s.EditorOptions())

	if th, err := s.LoadTheme(); err == nil {
		if s.ThemeFile != "" {
			m.Workspace.SetCustomTheme(th)
			m.applyTheme(th)
		} else if err := m.ApplyTheme(s.ThemeName()); err != nil {
			m.log.Error(err, "failed to apply theme")
		}
	} else {
		m.log.Error(err, "failed to load theme")
	}

	if err := m.Sandbox.SetOptions(context.Background(), data.PreviewOptions(s)); err != nil {
		m.Workspace.Bindings.SetStatus("preview: " + err.Error())
	}
}

func (m *MainUI) save() {
	if err := m.Workspace.Save(); err != nil {
		if errors.Is(err, data.ErrNoStore) {
			return
		}
		dialog.ShowError(err, m.Window)
		return
	}
	m.Workspace.Bindings.SetStatus("saved " + time.Now().Format(time.Kitchen))
}

func (m *MainUI) openSourceWindow() {
	index := m.Editor.Selected()
	f, err := m.Workspace.Files.At(index)
	if err != nil {
		return
	}

	view := code.NewCodeEditor(m.Workspace.Theme(), f.Type)
	view.SetOptions(m.Editor.Options())
	view.SetText(f.Value)
	view.SetReadOnly(true)

	if _, err := m.Windows.Open(windows.KindSource, f.Name, view, fyne.NewSize(640, 480)); err != nil {
		dialog.ShowError(err, m.Window)
	}
}

// openPreviewWindow shows where the preview is served and what it runs.
func (m *MainUI) openPreviewWindow() {
	setup, version, _ := m.Server.Current()
	height := setup.Options.Height
	if height == "" {
		height = "100%"
	}

	raw := m.Server.URL()
	var link fyne.CanvasObject = widget.NewLabel(raw)
	if u, err := url.Parse(raw); err == nil && raw != "" {
		link = widget.NewHyperlink(raw, u)
	}
	form := widget.NewForm(
		widget.NewFormItem("URL", link),
		widget.NewFormItem("Entry", widget.NewLabel(setup.Project.Entry)),
		widget.NewFormItem("Files", widget.NewLabel(strconv.Itoa(len(setup.Project.Files)))),
		widget.NewFormItem("Height", widget.NewLabel(height)),
		widget.NewFormItem("Version", widget.NewLabel(strconv.Itoa(version))),
		widget.NewFormItem("Clients", widget.NewLabel(strconv.Itoa(m.Server.Peers()))),
	)
	open := widget.NewButton("Open in Browser", m.Sandbox.OpenPreview)

	content := container.NewBorder(nil, open, nil, nil, form)
	if _, err := m.Windows.Open(windows.KindPreview, "Preview", content, fyne.NewSize(420, 260)); err != nil {
		dialog.ShowError(err, m.Window)
	}
}

// Close saves pending edits and stops the preview server.
func (m *MainUI) Close() {
	m.closeOnce.Do(m.close)
}

func (m *MainUI) close() {
	m.mu.Lock()
	if m.pending != nil {
		m.pending.Stop()
	}
	m.mu.Unlock()

	if m.Workspace.Store != nil && m.Workspace.Dirty() {
		if err := m.Workspace.Save(); err != nil {
			m.log.Error(err, "failed to save workspace")
		}
	}
	m.Windows.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.Server.Shutdown(ctx); err != nil {
		m.log.Error(err, "failed to stop preview server")
	}
	_ = m.Sandbox.Close()
}

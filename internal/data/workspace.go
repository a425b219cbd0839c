// Package data holds the state the host application owns: the open files,
// the active theme and the settings they were opened with.
package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/ispapp/sandpad/internal/database"
	"github.com/ispapp/sandpad/internal/logger"
	"github.com/ispapp/sandpad/internal/settings"
	"github.com/ispapp/sandpad/pkg/code"
	"github.com/ispapp/sandpad/pkg/files"
	"github.com/ispapp/sandpad/pkg/sandbox"
	"github.com/ispapp/sandpad/pkg/sfc"
)

// ErrNoStore is returned by persistence calls on a workspace without a store.
var ErrNoStore = errors.New("workspace has no store")

// Workspace is the host-owned state the editor and the sandbox render.
type Workspace struct {
	Files    *files.List
	Settings *settings.AppSettings

	// Normalizer rewrites .vue sources before they reach the sandbox.
	// Nil forwards them as they are.
	Normalizer *sfc.Normalizer

	// Store persists files and theme choice. Nil keeps everything in memory.
	Store *database.DB

	Bindings *Bindings

	log *logger.Logger

	mu           sync.Mutex
	theme        code.Theme
	entry        string
	dependencies map[string]string
	dirty        bool
}

// New creates a workspace over list. A nil list starts from files.Defaults.
func New(s *settings.AppSettings, list *files.List, log *logger.Logger) (*Workspace, error) {
	if s == nil {
		s = settings.DefaultSettings()
	}
	if list == nil {
		list = files.MustList(files.Defaults()...)
	}

	th, err := s.LoadTheme()
	if err != nil {
		return nil, fmt.Errorf("failed to load theme: %w", err)
	}

	w := &Workspace{
		Files:        list,
		Settings:     s,
		Bindings:     NewBindings(),
		log:          log.With("workspace"),
		theme:        th,
		entry:        sandbox.DefaultEntry,
		dependencies: sandbox.DefaultDependencies(),
	}
	list.Subscribe(func(int, files.File) {
		w.Bindings.setFiles(list.Snapshot())
	})
	w.Bindings.setFiles(list.Snapshot())
	w.Bindings.setTheme(themeLabel(s))
	return w, nil
}

// Theme returns the active theme.
func (w *Workspace) Theme() code.Theme {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.theme
}

// SetTheme switches to a predefined theme and records the choice.
func (w *Workspace) SetTheme(name code.ThemeName) error {
	th, err := code.Lookup(name)
	if err != nil {
		return err
	}
	w.applyTheme(th)
	w.Settings.Theme = string(name)
	w.Settings.ThemeFile = ""
	w.Bindings.setTheme(string(name))

	if w.Store != nil {
		if err := w.Store.SaveSetting(database.KeyTheme, string(name)); err != nil {
			return fmt.Errorf("failed to save theme: %w", err)
		}
	}
	return nil
}

// SetCustomTheme applies a theme that is not one of the predefined ones.
func (w *Workspace) SetCustomTheme(th code.Theme) {
	w.applyTheme(th)
	w.Bindings.setTheme(CustomThemeLabel)
}

func (w *Workspace) applyTheme(th code.Theme) {
	w.mu.Lock()
	w.theme = th
	w.mu.Unlock()
	w.log.WithFields(map[string]any{"accent": th.Palette.Accent}).Debug("theme applied")
}

// CustomThemeLabel is shown for themes loaded from a file.
const CustomThemeLabel = "custom"

func themeLabel(s *settings.AppSettings) string {
	if s.ThemeFile != "" {
		return CustomThemeLabel
	}
	return s.Theme
}

// Entry returns the entry module handed to the sandbox.
func (w *Workspace) Entry() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.entry
}

// Dependencies returns a copy of the project dependencies.
func (w *Workspace) Dependencies() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return maps.Clone(w.dependencies)
}

// SetDependencies replaces the project dependencies.
func (w *Workspace) SetDependencies(deps map[string]string) {
	w.mu.Lock()
	w.dependencies = maps.Clone(deps)
	w.dirty = true
	w.mu.Unlock()
}

// SetEntry changes the entry module.
func (w *Workspace) SetEntry(entry string) {
	w.mu.Lock()
	w.entry = entry
	w.dirty = true
	w.mu.Unlock()
}

// Update stores an edit made at index of the full list. With auto save on,
// the new content is written through to the store.
func (w *Workspace) Update(index int, value string) error {
	if err := w.Files.Update(index, value); err != nil {
		return err
	}
	w.mu.Lock()
	w.dirty = true
	w.mu.Unlock()

	if w.Store != nil && w.Settings.AutoSave {
		f, err := w.Files.At(index)
		if err != nil {
			return err
		}
		err = w.Store.UpdateFileValue(f.Name, value)
		if errors.Is(err, sql.ErrNoRows) {
			// the file was added after the last full save
			return w.Save()
		}
		if err != nil {
			return err
		}
		w.markClean()
	}
	return nil
}

// AddFile appends a new file and returns its index.
func (w *Workspace) AddFile(name, value string) (int, error) {
	index, err := w.Files.Add(files.File{
		Name:     name,
		Type:     files.TypeFromName(name),
		Value:    value,
		Editable: true,
		Visible:  true,
	})
	if err != nil {
		return -1, err
	}
	w.mu.Lock()
	w.dirty = true
	w.mu.Unlock()
	return index, nil
}

// Dirty reports unsaved changes.
func (w *Workspace) Dirty() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dirty
}

func (w *Workspace) markClean() {
	w.mu.Lock()
	w.dirty = false
	w.mu.Unlock()
}

// Project builds the sandbox descriptor from the current files. When
// script-setup normalization is enabled, .vue sources go through the
// normalizer; a failure is logged and the raw source is forwarded.
func (w *Workspace) Project(ctx context.Context) sandbox.Project {
	list := w.Files.Snapshot()

	if w.Normalizer != nil && w.Settings.NormalizeScriptSetup {
		for i, f := range list {
			if f.Type != "vue" {
				continue
			}
			out, err := w.Normalizer.Normalize(ctx, f.Value)
			if err != nil {
				w.log.WithFields(map[string]any{"file": f.Name}).Error(err, "failed to normalize component")
				continue
			}
			list[i].Value = out
		}
	}

	w.mu.Lock()
	entry, deps := w.entry, maps.Clone(w.dependencies)
	w.mu.Unlock()

	return sandbox.FromFiles(list, entry, deps)
}

// Setup pairs Project with the preview options from the settings.
func (w *Workspace) Setup(ctx context.Context) sandbox.Setup {
	return sandbox.Setup{
		Project: w.Project(ctx),
		Options: PreviewOptions(w.Settings),
	}
}

// PreviewOptions maps the preview fields of s to sandbox options.
func PreviewOptions(s *settings.AppSettings) sandbox.Options {
	if s == nil {
		return sandbox.Options{}
	}
	return sandbox.Options{Height: s.PreviewHeight}
}

// Save writes the files, entry, dependencies and theme to the store.
func (w *Workspace) Save() error {
	if w.Store == nil {
		return ErrNoStore
	}
	if err := w.Store.SaveFiles(w.Files.Snapshot()); err != nil {
		return err
	}
	if err := w.Store.SaveSetting(database.KeyEntry, w.Entry()); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	deps, err := json.Marshal(w.Dependencies())
	if err != nil {
		return fmt.Errorf("failed to encode dependencies: %w", err)
	}
	if err := w.Store.SaveSetting(database.KeyDependencies, string(deps)); err != nil {
		return fmt.Errorf("failed to save dependencies: %w", err)
	}
	if err := w.Store.SaveSetting(database.KeyTheme, w.Settings.Theme); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	w.markClean()
	w.log.Info("workspace saved")
	return nil
}

// Load replaces the files with the stored ones. It reports false when the
// store holds no workspace yet.
func (w *Workspace) Load() (bool, error) {
	if w.Store == nil {
		return false, ErrNoStore
	}
	stored, err := w.Store.LoadFiles()
	if err != nil {
		return false, err
	}
	if len(stored) == 0 {
		return false, nil
	}
	if err := w.Files.Replace(stored); err != nil {
		return false, fmt.Errorf("stored workspace is invalid: %w", err)
	}

	if entry, err := w.Store.LoadSetting(database.KeyEntry); err == nil && entry != "" {
		w.mu.Lock()
		w.entry = entry
		w.mu.Unlock()
	}
	raw, err := w.Store.LoadSetting(database.KeyDependencies)
	if err != nil {
		return false, err
	}
	if raw != "" {
		var deps map[string]string
		if err := json.Unmarshal([]byte(raw), &deps); err != nil {
			return false, fmt.Errorf("stored dependencies are invalid: %w", err)
		}
		w.mu.Lock()
		w.dependencies = deps
		w.mu.Unlock()
	}
	if name, err := w.Store.LoadSetting(database.KeyTheme); err == nil && name != "" && w.Settings.ThemeFile == "" {
		if th, err := code.Lookup(code.ThemeName(name)); err == nil {
			w.Settings.Theme = name
			w.applyTheme(th)
			w.Bindings.setTheme(name)
		}
	}

	w.markClean()
	w.log.WithFields(map[string]any{"files": len(stored)}).Info("workspace loaded")
	return true, nil
}

// LoadManifest replaces files, entry and dependencies from a YAML manifest.
func (w *Workspace) LoadManifest(path string) error {
	m, list, err := files.LoadManifest(path)
	if err != nil {
		return err
	}
	if err := w.Files.Replace(list); err != nil {
		return err
	}

	w.mu.Lock()
	w.entry = m.Entry
	if w.entry == "" {
		w.entry = sandbox.DefaultEntry
	}
	if m.Dependencies != nil {
		w.dependencies = m.Dependencies
	}
	w.dirty = true
	w.mu.Unlock()
	return nil
}

// SaveManifest writes the workspace as a YAML manifest with inline files.
func (w *Workspace) SaveManifest(path string) error {
	return files.NewManifest(w.Entry(), w.Dependencies(), w.Files.Snapshot()).Save(path)
}

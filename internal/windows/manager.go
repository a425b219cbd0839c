package windows

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"github.com/google/uuid"
)

// Window kinds opened next to the main window.
const (
	KindPreview = "preview"
	KindSource  = "source"
)

// WindowInfo holds information about a managed window
type WindowInfo struct {
	ID        string
	Title     string
	Kind      string
	Window    fyne.Window
	CreatedAt time.Time
}

// WindowManager manages the secondary windows of the application. At most
// one window per kind is open; opening a kind again focuses it.
type WindowManager struct {
	mu            sync.RWMutex
	windows       map[string]*WindowInfo
	app           fyne.App
	mainWindow    fyne.Window
	onWindowClose func(info *WindowInfo)
}

// NewWindowManager creates a new window manager instance
func NewWindowManager(app fyne.App) *WindowManager {
	return &WindowManager{
		windows: make(map[string]*WindowInfo),
		app:     app,
	}
}

// SetMainWindow sets the main application window
func (wm *WindowManager) SetMainWindow(window fyne.Window) {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	wm.mainWindow = window
}

// MainWindow returns the main application window
func (wm *WindowManager) MainWindow() fyne.Window {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return wm.mainWindow
}

// SetOnWindowClose sets a callback run after a managed window closed
func (wm *WindowManager) SetOnWindowClose(callback func(info *WindowInfo)) {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	wm.onWindowClose = callback
}

// Open shows content in the window of the given kind, creating it when
// none is open.
func (wm *WindowManager) Open(kind, title string, content fyne.CanvasObject, size fyne.Size) (*WindowInfo, error) {
	if wm.app == nil {
		return nil, fmt.Errorf("no app instance available")
	}

	wm.mu.Lock()
	if info := wm.byKind(kind); info != nil {
		wm.mu.Unlock()
		info.Window.SetTitle(title)
		info.Window.SetContent(content)
		info.Title = title
		info.Window.RequestFocus()
		return info, nil
	}

	info := &WindowInfo{
		ID:        uuid.NewString(),
		Title:     title,
		Kind:      kind,
		Window:    wm.app.NewWindow(title),
		CreatedAt: time.Now(),
	}
	wm.windows[info.ID] = info
	wm.mu.Unlock()

	info.Window.SetContent(content)
	info.Window.Resize(size)
	info.Window.SetOnClosed(func() {
		wm.forget(info.ID)
	})
	info.Window.Show()
	return info, nil
}

func (wm *WindowManager) byKind(kind string) *WindowInfo {
	for _, info := range wm.windows {
		if info.Kind == kind {
			return info
		}
	}
	return nil
}

func (wm *WindowManager) forget(id string) {
	wm.mu.Lock()
	info, ok := wm.windows[id]
	delete(wm.windows, id)
	callback := wm.onWindowClose
	wm.mu.Unlock()

	if ok && callback != nil {
		callback(info)
	}
}

// Close closes the window of the given kind. It reports whether one was open.
func (wm *WindowManager) Close(kind string) bool {
	wm.mu.RLock()
	info := wm.byKind(kind)
	wm.mu.RUnlock()
	if info == nil {
		return false
	}
	info.Window.Close()
	wm.forget(info.ID)
	return true
}

// CloseAll closes every managed window.
func (wm *WindowManager) CloseAll() {
	for _, info := range wm.List() {
		info.Window.Close()
		wm.forget(info.ID)
	}
}

// Get returns the window of the given kind.
func (wm *WindowManager) Get(kind string) (*WindowInfo, bool) {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	info := wm.byKind(kind)
	return info, info != nil
}

// List returns the managed windows, oldest first.
func (wm *WindowManager) List() []*WindowInfo {
	wm.mu.RLock()
	out := make([]*WindowInfo, 0, len(wm.windows))
	for _, info := range wm.windows {
		out = append(out, info)
	}
	wm.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Count returns the number of open managed windows.
func (wm *WindowManager) Count() int {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return len(wm.windows)
}

// Package files models the editor buffers a host application keeps open.
package files

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
)

var (
	ErrIndexOutOfRange = errors.New("file index out of range")
	ErrDuplicateName   = errors.New("duplicate file name")
	ErrEmptyName       = errors.New("file name is empty")
)

// File is one open editor buffer.
type File struct {
	Value    string `json:"value"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Editable bool   `json:"editable"`
	Visible  bool   `json:"visible"`
}

// TypeFromName derives the file type tag from a file name extension.
func TypeFromName(name string) string {
	return strings.TrimPrefix(path.Ext(name), ".")
}

// Entry is a file together with its position in the list.
type Entry struct {
	Index int
	File  File
}

// ChangeFunc is notified after a file at index changed or was added.
type ChangeFunc func(index int, f File)

// List is the ordered set of open files owned by the host application.
type List struct {
	mu          sync.RWMutex
	files       []File
	subscribers []ChangeFunc
}

// NewList creates a list holding the given files.
func NewList(initial ...File) (*List, error) {
	l := &List{}
	for _, f := range initial {
		if err := l.check(f); err != nil {
			return nil, err
		}
		l.files = append(l.files, f)
	}
	return l, nil
}

// MustList is like NewList but panics on invalid input.
func MustList(initial ...File) *List {
	l, err := NewList(initial...)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *List) check(f File) error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyName
	}
	for _, existing := range l.files {
		if existing.Name == f.Name {
			return fmt.Errorf("%w: %s", ErrDuplicateName, f.Name)
		}
	}
	return nil
}

// Subscribe registers fn for change notifications.
func (l *List) Subscribe(fn ChangeFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subscribers = append(l.subscribers, fn)
}

// Len returns the number of files.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.files)
}

// At returns the file at index.
func (l *List) At(index int) (File, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if index < 0 || index >= len(l.files) {
		return File{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return l.files[index], nil
}

// IndexOf returns the index of the named file, or -1.
func (l *List) IndexOf(name string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i, f := range l.files {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Update replaces the content of the file at index in place.
func (l *List) Update(index int, value string) error {
	l.mu.Lock()
	if index < 0 || index >= len(l.files) {
		l.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	l.files[index].Value = value
	f := l.files[index]
	subscribers := append([]ChangeFunc(nil), l.subscribers...)
	l.mu.Unlock()

	for _, fn := range subscribers {
		fn(index, f)
	}
	return nil
}

// SetFlags changes whether the file at index is editable and visible.
func (l *List) SetFlags(index int, editable, visible bool) error {
	l.mu.Lock()
	if index < 0 || index >= len(l.files) {
		l.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	l.files[index].Editable = editable
	l.files[index].Visible = visible
	f := l.files[index]
	subscribers := append([]ChangeFunc(nil), l.subscribers...)
	l.mu.Unlock()

	for _, fn := range subscribers {
		fn(index, f)
	}
	return nil
}

// Add appends a file and returns its index.
func (l *List) Add(f File) (int, error) {
	l.mu.Lock()
	if err := l.check(f); err != nil {
		l.mu.Unlock()
		return -1, err
	}
	l.files = append(l.files, f)
	index := len(l.files) - 1
	subscribers := append([]ChangeFunc(nil), l.subscribers...)
	l.mu.Unlock()

	for _, fn := range subscribers {
		fn(index, f)
	}
	return index, nil
}

// Visible returns the visible files with their list indexes.
func (l *List) Visible() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Entry
	for i, f := range l.files {
		if f.Visible {
			out = append(out, Entry{Index: i, File: f})
		}
	}
	return out
}

// Snapshot returns a copy of all files in order.
func (l *List) Snapshot() []File {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]File, len(l.files))
	copy(out, l.files)
	return out
}

// Replace swaps the whole content of the list, keeping subscribers.
func (l *List) Replace(next []File) error {
	fresh := &List{}
	for _, f := range next {
		if err := fresh.check(f); err != nil {
			return err
		}
		fresh.files = append(fresh.files, f)
	}

	l.mu.Lock()
	l.files = fresh.files
	subscribers := append([]ChangeFunc(nil), l.subscribers...)
	files := append([]File(nil), l.files...)
	l.mu.Unlock()

	for i, f := range files {
		for _, fn := range subscribers {
			fn(i, f)
		}
	}
	return nil
}

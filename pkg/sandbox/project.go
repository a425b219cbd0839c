// Package sandbox builds project descriptors and forwards them to an
// execution client that bundles and runs them in a browser.
package sandbox

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ispapp/sandpad/pkg/files"
)

// ErrInvalidProject is returned when a project or its options are malformed.
var ErrInvalidProject = errors.New("invalid sandbox project")

// DefaultEntry is the entry module of new projects.
const DefaultEntry = "./main.js"

// DefaultDependencies returns the packages every Vue project starts with.
func DefaultDependencies() map[string]string {
	return map[string]string{
		"core-js":               "^3.6.5",
		"vue":                   "^3.0.0-0",
		"@vue/cli-plugin-babel": "4.5.0",
	}
}

// ProjectFile is one file handed to the execution client.
type ProjectFile struct {
	Code string `json:"code"`
}

// Project is the descriptor the execution client consumes.
type Project struct {
	Files        map[string]ProjectFile `json:"files" validate:"required,min=1,dive,keys,startswith=/,endkeys"`
	Entry        string                 `json:"entry" validate:"required"`
	Dependencies map[string]string      `json:"dependencies"`
}

// Options configures the preview surface. Height is any CSS length and is
// forwarded to the page as given.
type Options struct {
	Height string `json:"height,omitempty"`
}

// Setup is what a Client receives: the project and the preview options.
type Setup struct {
	Project Project `json:"project"`
	Options Options `json:"options"`
}

// FromFiles keys every file by "/" + name. An empty entry uses DefaultEntry
// and nil dependencies use DefaultDependencies.
func FromFiles(list []files.File, entry string, deps map[string]string) Project {
	if entry == "" {
		entry = DefaultEntry
	}
	if deps == nil {
		deps = DefaultDependencies()
	}

	p := Project{
		Files:        make(map[string]ProjectFile, len(list)),
		Entry:        entry,
		Dependencies: deps,
	}
	for _, f := range list {
		p.Files["/"+f.Name] = ProjectFile{Code: f.Value}
	}
	return p
}

var validate = validator.New()

// Validate checks the descriptor shape and that the entry is one of the
// project's files.
func (p Project) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProject, err)
	}
	if _, ok := p.Files[EntryPath(p.Entry)]; !ok {
		return fmt.Errorf("%w: entry %s is not a project file", ErrInvalidProject, p.Entry)
	}
	return nil
}

// Validate checks the project. Options are not checked; the page applies
// them as they are.
func (s Setup) Validate() error {
	return s.Project.Validate()
}

// EntryPath maps an entry such as "./main.js" to its file key "/main.js".
func EntryPath(entry string) string {
	return "/" + strings.TrimPrefix(strings.TrimPrefix(entry, "."), "/")
}

package files

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest describes a project on disk: its files, entry and dependencies.
type Manifest struct {
	Entry        string            `yaml:"entry,omitempty"`
	Dependencies map[string]string `yaml:"dependencies,omitempty"`
	Files        []ManifestFile    `yaml:"files"`
}

// ManifestFile declares one file either inline or by path relative to the
// manifest. Editable and Visible default to true.
type ManifestFile struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type,omitempty"`
	Path     string `yaml:"path,omitempty"`
	Value    string `yaml:"value,omitempty"`
	Editable *bool  `yaml:"editable,omitempty"`
	Visible  *bool  `yaml:"visible,omitempty"`
}

// LoadManifest reads a YAML manifest and resolves path entries.
func LoadManifest(path string) (*Manifest, []File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	out, err := m.resolve(filepath.Dir(path))
	if err != nil {
		return nil, nil, err
	}
	return &m, out, nil
}

func (m *Manifest) resolve(dir string) ([]File, error) {
	out := make([]File, 0, len(m.Files))
	for _, mf := range m.Files {
		if mf.Name == "" {
			return nil, ErrEmptyName
		}

		f := File{
			Name:     mf.Name,
			Type:     mf.Type,
			Value:    mf.Value,
			Editable: mf.Editable == nil || *mf.Editable,
			Visible:  mf.Visible == nil || *mf.Visible,
		}
		if f.Type == "" {
			f.Type = TypeFromName(f.Name)
		}
		if mf.Path != "" {
			p := mf.Path
			if !filepath.IsAbs(p) {
				p = filepath.Join(dir, p)
			}
			data, err := os.ReadFile(p)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", mf.Name, err)
			}
			f.Value = string(data)
		}
		out = append(out, f)
	}
	return out, nil
}

// NewManifest builds a manifest holding every file inline.
func NewManifest(entry string, deps map[string]string, list []File) *Manifest {
	m := &Manifest{Entry: entry, Dependencies: deps}
	for _, f := range list {
		editable, visible := f.Editable, f.Visible
		m.Files = append(m.Files, ManifestFile{
			Name:     f.Name,
			Type:     f.Type,
			Value:    f.Value,
			Editable: &editable,
			Visible:  &visible,
		})
	}
	return m
}

// Save writes the manifest as YAML.
func (m *Manifest) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

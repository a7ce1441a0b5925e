// Package yaml reads docset manifests: YAML files describing the metadata
// of a docset build.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/gendocsets"
	"gopkg.in/yaml.v3"
)

// Manifest is the decoded form of a manifest file.
//
//	name: Python 2.7.3
//	platform_family: python
//	keywords: [python, py]
//	icon: python.png
//
// At most gendocsets.MaxKeywords keywords are accepted, the first written
// as the docset keyword and the second as the plugin keyword.
type Manifest struct {
	gendocsets.Docset `yaml:",inline"`

	// Icon is the path of a PNG copied to the bundle root. Relative paths
	// are resolved against the manifest directory.
	Icon string `yaml:"icon"`
}

// LoadManifest reads the manifest at path.
// Returns ENOTFOUND if the file does not exist and EINVALID if it is not a
// valid manifest. Unknown keys are rejected.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, gendocsets.Errorf(gendocsets.ENOTFOUND, "manifest %s not found", path)
		}
		return nil, err
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	if m.Icon != "" && !filepath.IsAbs(m.Icon) {
		m.Icon = filepath.Join(filepath.Dir(path), m.Icon)
	}
	return m, nil
}

// ParseManifest decodes manifest data. An empty document yields an empty
// manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, gendocsets.Errorf(gendocsets.EINVALID, "invalid manifest: %v", err)
	}
	if len(m.Keywords) > gendocsets.MaxKeywords {
		return nil, gendocsets.Errorf(gendocsets.EINVALID, "invalid manifest: %d keywords, at most %d are supported", len(m.Keywords), gendocsets.MaxKeywords)
	}
	return &m, nil
}

// Apply copies the manifest fields that are set onto d, leaving the others
// unchanged.
func (m *Manifest) Apply(d *gendocsets.Docset) {
	if m.Name != "" {
		d.Name = m.Name
	}
	if m.Identifier != "" {
		d.Identifier = m.Identifier
	}
	if m.PlatformFamily != "" {
		d.PlatformFamily = m.PlatformFamily
	}
	if m.Title != "" {
		d.Title = m.Title
	}
	if m.Version != "" {
		d.Version = m.Version
	}
	if len(m.Keywords) > 0 {
		d.Keywords = m.Keywords
	}
	if m.IndexFilePath != "" {
		d.IndexFilePath = m.IndexFilePath
	}
	if m.JavaScriptEnabled {
		d.JavaScriptEnabled = true
	}
}

package gendocsets

import (
	"context"
	"path"
	"strings"
)

// Paths inside a docset bundle, relative to the bundle root.
const (
	InfoPlistPath = "Contents/Info.plist"
	ResourcesDir  = "Contents/Resources"
	DocumentsDir  = "Contents/Resources/Documents"
	IndexPath     = "Contents/Resources/docSet.dsidx"
	IconPath      = "icon.png"
)

// BundleExt is the directory suffix of a docset bundle.
const BundleExt = ".docset"

// MaxKeywords is the number of keywords Info.plist has keys for:
// DashDocSetKeyword and DashDocSetPluginKeyword.
const MaxKeywords = 2

// Docset holds the metadata written to a bundle's Info.plist.
type Docset struct {
	Name           string   `json:"name" yaml:"name"`
	Identifier     string   `json:"identifier" yaml:"identifier"`
	PlatformFamily string   `json:"platformFamily" yaml:"platform_family"`
	Title          string   `json:"title" yaml:"title"`
	Version        string   `json:"version" yaml:"version"`
	Keywords       []string `json:"keywords" yaml:"keywords"`

	// IndexFilePath is the landing page, relative to Documents/.
	IndexFilePath string `json:"indexFilePath" yaml:"index_file"`

	JavaScriptEnabled bool `json:"javaScriptEnabled" yaml:"javascript_enabled"`
}

// Validate returns an error if the docset metadata contains invalid fields.
func (d *Docset) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return Errorf(EINVALID, "docset name required")
	}
	if strings.ContainsAny(d.Name, `/\`) {
		return Errorf(EINVALID, "docset name %q must not contain path separators", d.Name)
	}
	if len(d.Keywords) > MaxKeywords {
		return Errorf(EINVALID, "docset %q has %d keywords, at most %d are supported", d.Name, len(d.Keywords), MaxKeywords)
	}
	return nil
}

// Normalize fills identifier, platform family and title from the name
// when they are empty.
func (d *Docset) Normalize() {
	if d.Identifier == "" {
		d.Identifier = d.Name
	}
	if d.PlatformFamily == "" {
		d.PlatformFamily = d.Name
	}
	if d.Title == "" {
		d.Title = d.Name
	}
}

// AllKeywords returns the keywords a search query prefix can match:
// the platform family followed by the explicit keywords, without duplicates.
func (d *Docset) AllKeywords() []string {
	var out []string
	seen := make(map[string]bool)
	for _, kw := range append([]string{d.PlatformFamily}, d.Keywords...) {
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}

// BundleName returns the directory name of the docset bundle.
func BundleName(name string) string {
	return name + BundleExt
}

// DocumentPath joins a page path onto the Documents directory.
func DocumentPath(rel string) string {
	return path.Join(DocumentsDir, rel)
}

// SplitFragment splits a document path into its page and #fragment,
// without the '#'.
func SplitFragment(docPath string) (page, fragment string) {
	page, fragment, _ = strings.Cut(docPath, "#")
	return page, fragment
}

// DocumentStore writes the files of a docset bundle.
// Implementations stage writes and make them visible on Commit.
type DocumentStore interface {
	// CopyTree copies srcDir into the Documents directory. Entries for which
	// skip returns true are not copied; skipping a directory skips its
	// contents. rel uses forward slashes.
	CopyTree(ctx context.Context, srcDir string, skip func(rel string, isDir bool) bool) error

	// WriteFile writes data at rel, relative to the bundle root, creating
	// parent directories as needed.
	WriteFile(ctx context.Context, rel string, data []byte) error

	// CopyFile copies the file at src to rel, relative to the bundle root.
	CopyFile(ctx context.Context, src, rel string) error

	// Path returns the staged filesystem path of rel.
	Path(rel string) string

	// Commit makes the staged bundle visible, replacing any previous one.
	Commit() error

	// Abort discards the staged bundle.
	Abort() error
}

// MetadataCodec encodes and decodes docset metadata (Info.plist).
type MetadataCodec interface {
	EncodeMetadata(d *Docset) ([]byte, error)
	DecodeMetadata(data []byte) (*Docset, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// ExtractResult holds the main content of a documentation page.
type ExtractResult struct {
	Title       string
	ContentHTML string
}

// Extractor selects the main content of a whole page, dropping navigation
// and other boilerplate. It is used for symbols that point at a page
// rather than an element on it.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

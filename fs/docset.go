package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/gendocsets"
)

// Locate resolves path to an existing docset bundle directory. The
// ".docset" suffix may be omitted.
func Locate(path string) (string, error) {
	candidates := []string{path}
	if !strings.HasSuffix(path, gendocsets.BundleExt) {
		candidates = append(candidates, path+gendocsets.BundleExt)
	}
	for _, dir := range candidates {
		info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(gendocsets.InfoPlistPath)))
		if err == nil && info.Mode().IsRegular() {
			return dir, nil
		}
	}
	return "", gendocsets.Errorf(gendocsets.ENOTFOUND, "docset %q not found", path)
}

// IndexPath returns the filesystem path of the bundle's search index.
func IndexPath(dir string) string {
	return filepath.Join(dir, filepath.FromSlash(gendocsets.IndexPath))
}

// ReadFile reads rel, relative to the bundle root at dir.
func ReadFile(dir, rel string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if os.IsNotExist(err) {
		return nil, gendocsets.Errorf(gendocsets.ENOTFOUND, "%s not found in %s", rel, dir)
	}
	return data, err
}

// ReadPage reads the page a symbol path points at, ignoring its fragment.
func ReadPage(dir, docPath string) ([]byte, error) {
	page, _ := gendocsets.SplitFragment(docPath)
	if page == "" {
		return nil, gendocsets.Errorf(gendocsets.EINVALID, "empty document path")
	}
	return ReadFile(dir, gendocsets.DocumentPath(page))
}

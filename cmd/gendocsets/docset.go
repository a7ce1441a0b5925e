package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/fwojciec/gendocsets"
	gdfs "github.com/fwojciec/gendocsets/fs"
	"github.com/fwojciec/gendocsets/sqlite"
)

// openedDocset is an installed bundle with its index open for reading.
type openedDocset struct {
	Dir    string
	Docset *gendocsets.Docset
	DB     *sqlite.DB
}

// openDocset locates the bundle at path, decodes its Info.plist and opens
// its index read-only. The caller closes DB.
func openDocset(deps *Dependencies, path string) (*openedDocset, error) {
	dir, err := gdfs.Locate(path)
	if err != nil {
		return nil, err
	}

	data, err := gdfs.ReadFile(dir, gendocsets.InfoPlistPath)
	if err != nil {
		return nil, err
	}
	docset, err := deps.Metadata.DecodeMetadata(data)
	if err != nil {
		return nil, err
	}

	indexPath := gdfs.IndexPath(dir)
	if _, err := os.Stat(indexPath); errors.Is(err, fs.ErrNotExist) {
		return nil, gendocsets.Errorf(gendocsets.ENOTFOUND, "docset %s has no index", dir)
	}
	db := sqlite.NewDB(indexPath)
	db.ReadOnly = true
	if err := db.Open(); err != nil {
		return nil, err
	}

	return &openedDocset{Dir: dir, Docset: docset, DB: db}, nil
}

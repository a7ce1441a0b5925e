package goquery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/gendocsets"
	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return dir
}

// symbolRow is the comparable part of a recorded symbol.
type symbolRow struct {
	Type   string
	Name   string
	Path   string
	Parent int64
}

func rows(symbols []*gendocsets.Symbol) []symbolRow {
	out := make([]symbolRow, len(symbols))
	for i, s := range symbols {
		out[i] = symbolRow{Type: s.Type, Name: s.Name, Path: s.Path}
		if s.ParentID != nil {
			out[i].Parent = *s.ParentID
		}
	}
	return out
}

func ptr[T any](v T) *T { return &v }

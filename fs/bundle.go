// Package fs provides the on-disk docset bundle layout.
package fs

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/gendocsets"
	"github.com/google/uuid"
)

// Ensure Bundle implements gendocsets.DocumentStore at compile time.
var _ gendocsets.DocumentStore = (*Bundle)(nil)

// Bundle implements gendocsets.DocumentStore with atomic update semantics.
// Files are written to a uniquely named staging directory next to the
// bundle and moved into place on Commit.
type Bundle struct {
	baseDir string
	name    string
	staging string
}

// NewBundle creates the staging directory for the docset bundle
// baseDir/<name>.docset, including the empty Documents directory.
func NewBundle(baseDir, name string) (*Bundle, error) {
	b := &Bundle{
		baseDir: baseDir,
		name:    gendocsets.BundleName(name),
	}
	b.staging = filepath.Join(baseDir, b.name+"."+uuid.New().String()+".tmp")

	if err := os.MkdirAll(filepath.Join(b.staging, filepath.FromSlash(gendocsets.DocumentsDir)), 0755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	return b, nil
}

// FinalDir returns the directory the bundle is moved to on Commit.
func (b *Bundle) FinalDir() string {
	return filepath.Join(b.baseDir, b.name)
}

// Path returns the staged filesystem path of rel.
func (b *Bundle) Path(rel string) string {
	return filepath.Join(b.staging, filepath.FromSlash(rel))
}

// WriteFile writes data at rel, relative to the bundle root.
func (b *Bundle) WriteFile(ctx context.Context, rel string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	full, err := b.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0644)
}

// CopyFile copies the file at src to rel, relative to the bundle root.
func (b *Bundle) CopyFile(ctx context.Context, src, rel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	full, err := b.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	return copyFile(src, full)
}

// CopyTree copies srcDir into the Documents directory. The staging
// directory is never copied into itself.
func (b *Bundle) CopyTree(ctx context.Context, srcDir string, skip func(rel string, isDir bool) bool) error {
	staging, err := filepath.Abs(b.staging)
	if err != nil {
		return err
	}
	docs := b.Path(gendocsets.DocumentsDir)

	return filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == srcDir {
				return gendocsets.Errorf(gendocsets.ENOTFOUND, "corpus directory %q not found", srcDir)
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if abs, err := filepath.Abs(path); err == nil && abs == staging {
				return filepath.SkipDir
			}
		}

		slashRel := filepath.ToSlash(rel)
		if skip != nil && skip(slashRel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		dst := filepath.Join(docs, rel)
		switch {
		case d.IsDir():
			return os.MkdirAll(dst, 0755)
		case d.Type().IsRegular():
			return copyFile(path, dst)
		case d.Type()&fs.ModeSymlink != 0:
			// Linked files are copied by content; linked directories are
			// not followed.
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				return nil
			}
			return copyFile(path, dst)
		default:
			return nil
		}
	})
}

// Commit replaces any previous bundle with the staged one.
func (b *Bundle) Commit() error {
	if err := os.RemoveAll(b.FinalDir()); err != nil {
		return err
	}
	return os.Rename(b.staging, b.FinalDir())
}

// Abort removes the staging directory. It is safe to call after Commit.
func (b *Bundle) Abort() error {
	return os.RemoveAll(b.staging)
}

// resolve maps rel onto the staging directory, rejecting paths that
// escape it.
func (b *Bundle) resolve(rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", gendocsets.Errorf(gendocsets.EINVALID, "path traversal in %q", rel)
	}
	return filepath.Join(b.staging, clean), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		if os.IsNotExist(err) {
			return gendocsets.Errorf(gendocsets.ENOTFOUND, "file %q not found", src)
		}
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

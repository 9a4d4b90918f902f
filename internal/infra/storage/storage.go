// Package storage owns the on-disk layout of generated artifacts.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	QRDirName    = "qr_codes"
	LabelDirName = "labels"
	BatchDirName = "batch_labels"
)

// Paths is injected wherever generated files are read or written, so tests
// can point the pipeline at a temporary directory.
type Paths struct {
	Root     string
	QRDir    string
	LabelDir string
	BatchDir string
}

func NewPaths(root string) Paths {
	return Paths{
		Root:     root,
		QRDir:    filepath.Join(root, QRDirName),
		LabelDir: filepath.Join(root, LabelDirName),
		BatchDir: filepath.Join(root, BatchDirName),
	}
}

// Rel returns p relative to the public root, with forward slashes.
func (p Paths) Rel(abs string) string {
	rel, err := filepath.Rel(p.Root, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

// EnsureDir creates dir and its parents; an existing directory is fine.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}

// RemoveIfExists deletes path. A missing file is not an error; removed tells
// the caller whether anything was deleted.
func RemoveIfExists(path string) (removed bool, err error) {
	err = os.Remove(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// WriteAtomic streams write's output into a hidden temp file next to path and
// renames it into place only when write succeeds. A failed write leaves
// nothing at path.
func WriteAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if err = write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// Exists reports whether path is a regular file with content.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Size() > 0
}

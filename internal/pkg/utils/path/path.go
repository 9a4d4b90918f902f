package path

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	ErrEmptyName     = errors.New("file name cannot be empty")
	ErrInvalidName   = errors.New("file name format is invalid")
	ErrPathTraversal = errors.New("file name contains directory traversal")
)

// ValidateFileName accepts a single path segment naming a file inside a
// served directory. Separators, dot segments, hidden names and null bytes
// are rejected.
func ValidateFileName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if strings.Contains(name, "..") {
		return ErrPathTraversal
	}
	if strings.ContainsAny(name, `/\`) {
		return ErrPathTraversal
	}
	if strings.HasPrefix(name, ".") {
		return ErrInvalidName
	}
	if strings.Contains(name, "\x00") {
		return ErrInvalidName
	}
	return nil
}

// SafeJoin validates name and joins it onto dir.
func SafeJoin(dir, name string) (string, error) {
	if err := ValidateFileName(name); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// HasExt reports whether name ends in ext, ignoring case.
func HasExt(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}

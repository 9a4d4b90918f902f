// Package cleaner reconciles generated files against live asset records.
package cleaner

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type FileError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

type Report struct {
	Deleted []string    `json:"deleted"`
	Errors  []FileError `json:"errors"`
}

func (r *Report) merge(o Report) {
	r.Deleted = append(r.Deleted, o.Deleted...)
	r.Errors = append(r.Errors, o.Errors...)
}

// IdentifierOf maps a file name to the identifier it belongs to.
func IdentifierOf(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// CleanOrphans deletes every file in dirs whose identifier is not in valid.
// Hidden files are in-flight writes and are left alone. A failing file is
// reported and the scan moves on.
func CleanOrphans(dirs []string, valid map[string]struct{}) Report {
	return CleanOrphansBefore(dirs, valid, time.Time{})
}

// CleanOrphansBefore is CleanOrphans restricted to files last modified before
// cutoff, so artifacts written after valid was read survive. A zero cutoff
// disables the restriction.
func CleanOrphansBefore(dirs []string, valid map[string]struct{}, cutoff time.Time) Report {
	var report Report
	for _, dir := range dirs {
		report.merge(sweep(dir, func(e fs.DirEntry) bool {
			if _, ok := valid[IdentifierOf(e.Name())]; ok {
				return false
			}
			if cutoff.IsZero() {
				return true
			}
			info, err := e.Info()
			return err == nil && info.ModTime().Before(cutoff)
		}))
	}
	return report
}

// PurgeStale deletes files in dir last modified more than maxAge before now.
func PurgeStale(dir string, maxAge time.Duration, now time.Time) Report {
	cutoff := now.Add(-maxAge)
	var statErrs []FileError
	report := sweep(dir, func(e fs.DirEntry) bool {
		info, err := e.Info()
		if err != nil {
			statErrs = append(statErrs, FileError{Path: filepath.Join(dir, e.Name()), Message: err.Error()})
			return false
		}
		return info.ModTime().Before(cutoff)
	})
	report.Errors = append(report.Errors, statErrs...)
	return report
}

func sweep(dir string, shouldDelete func(fs.DirEntry) bool) Report {
	var report Report

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			report.Errors = append(report.Errors, FileError{Path: dir, Message: err.Error()})
		}
		return report
	}

	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !shouldDelete(e) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			report.Errors = append(report.Errors, FileError{Path: path, Message: err.Error()})
			continue
		}
		report.Deleted = append(report.Deleted, path)
	}
	return report
}

// Package fileops implements domain.FileStore on the local filesystem.
//
// Writes go through a temporary file in the destination directory
// followed by a rename, so a failed write leaves the destination either
// complete or unchanged. Backups are timestamped sibling copies created
// before any destructive write.
package fileops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Distinguishable failure kinds for file operations.
var (
	ErrNotFound       = errors.New("file not found")
	ErrPermission     = errors.New("permission denied")
	ErrNotRegularFile = errors.New("path is not a regular file")
	ErrNotDirectory   = errors.New("path is not a directory")
)

// Directories never descended into when enumerating Python files.
var skipDirs = map[string]bool{
	".git":          true,
	".hg":           true,
	".venv":         true,
	"venv":          true,
	"node_modules":  true,
	"__pycache__":   true,
	".mypy_cache":   true,
	".ruff_cache":   true,
	".pytest_cache": true,
	"dist":          true,
	"build":         true,
}

// Store is a local-filesystem implementation of domain.FileStore.
type Store struct{}

func New() *Store {
	return &Store{}
}

// Read returns the content of an existing regular file.
func (s *Store) Read(path string) (string, error) {
	if err := requireRegularFile(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", classify("reading", path, err)
	}
	return string(data), nil
}

// Write stores content at path, creating parent directories as needed.
// The content lands via temp-file-plus-rename: on failure the
// destination keeps its previous content.
func (s *Store) Write(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return classify("creating directory for", path, err)
	}

	tmp, err := os.CreateTemp(dir, ".pyqa-write-*")
	if err != nil {
		return classify("writing", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return classify("writing", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return classify("writing", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return classify("writing", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return classify("writing", path, err)
	}
	return nil
}

// CreateBackup copies an existing regular file to a sibling named
// <stem>.backup_<YYYYMMDD_HHMMSS><ext> and returns the backup path.
// The original file is untouched.
func (s *Store) CreateBackup(path string) (string, error) {
	content, err := s.Read(path)
	if err != nil {
		return "", fmt.Errorf("creating backup: %w", err)
	}

	backupPath := BackupPath(path, time.Now())
	if err := s.Write(backupPath, content); err != nil {
		return "", fmt.Errorf("creating backup for %s: %w", path, err)
	}
	return backupPath, nil
}

// BackupPath derives the deterministic backup name for a file at a
// given moment. Timestamp resolution is one second.
func BackupPath(path string, at time.Time) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	name := fmt.Sprintf("%s.backup_%s%s", stem, at.Format("20060102_150405"), ext)
	return filepath.Join(filepath.Dir(path), name)
}

// Delete removes an existing regular file.
func (s *Store) Delete(path string) error {
	if err := requireRegularFile(path); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return classify("deleting", path, err)
	}
	return nil
}

// Exists reports whether path names an existing regular file.
func (s *Store) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Size returns the size in bytes of an existing regular file.
func (s *Store) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, classify("sizing", path, err)
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}
	return info.Size(), nil
}

// ModTime returns the last modification time of an existing file.
func (s *Store) ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, classify("inspecting", path, err)
	}
	return info.ModTime(), nil
}

// IsPythonFile reports whether path carries a .py extension.
func IsPythonFile(path string) bool {
	return filepath.Ext(path) == ".py"
}

// FindPythonFiles walks dir recursively and returns every Python file,
// skipping virtualenv, VCS and cache directories.
func (s *Store) FindPythonFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, classify("listing", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if IsPythonFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, classify("listing", dir, err)
	}
	return files, nil
}

func requireRegularFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return classify("inspecting", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}
	return nil
}

// classify maps os-level failures onto the package's error kinds while
// keeping the underlying cause in the chain.
func classify(verb, path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s %s", ErrPermission, verb, path)
	default:
		return fmt.Errorf("%s %s: %w", verb, path, err)
	}
}

package fileops_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/pyqa/pyqa/internal/adapters/outbound/fileops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestStore_ReadWrite(t *testing.T) {
	dir := t.TempDir()
	store := fileops.New()

	path := filepath.Join(dir, "sub", "nested", "module.py")
	require.NoError(t, store.Write(path, "import os\n"))

	content, err := store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "import os\n", content)
}

func TestStore_Write_Overwrites(t *testing.T) {
	dir := t.TempDir()
	store := fileops.New()
	path := writeFixture(t, dir, "a.py", "old")

	require.NoError(t, store.Write(path, "new"))
	content, err := store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "new", content)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_Read_NotFound(t *testing.T) {
	store := fileops.New()
	_, err := store.Read(filepath.Join(t.TempDir(), "missing.py"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fileops.ErrNotFound)
}

func TestStore_Read_Directory(t *testing.T) {
	dir := t.TempDir()
	store := fileops.New()
	_, err := store.Read(dir)
	assert.ErrorIs(t, err, fileops.ErrNotRegularFile)
}

func TestStore_CreateBackup(t *testing.T) {
	dir := t.TempDir()
	store := fileops.New()
	path := writeFixture(t, dir, "script.py", "original content")

	backupPath, err := store.CreateBackup(path)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(backupPath), "backup lives beside the original")
	assert.Regexp(t, regexp.MustCompile(`^script\.backup_\d{8}_\d{6}\.py$`), filepath.Base(backupPath))

	backup, err := store.Read(backupPath)
	require.NoError(t, err)
	assert.Equal(t, "original content", backup)

	original, err := store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "original content", original, "original must be untouched")
}

func TestStore_CreateBackup_NoExtension(t *testing.T) {
	dir := t.TempDir()
	store := fileops.New()
	path := writeFixture(t, dir, "Makefile", "all:\n")

	backupPath, err := store.CreateBackup(path)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^Makefile\.backup_\d{8}_\d{6}$`), filepath.Base(backupPath))
}

func TestStore_CreateBackup_Missing(t *testing.T) {
	store := fileops.New()
	_, err := store.CreateBackup(filepath.Join(t.TempDir(), "nope.py"))
	assert.ErrorIs(t, err, fileops.ErrNotFound)
}

func TestBackupPath_Deterministic(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	got := fileops.BackupPath(filepath.Join("src", "app.py"), at)
	assert.Equal(t, filepath.Join("src", "app.backup_20260314_092653.py"), got)
}

func TestStore_Delete(t *testing.T) {
	dir := t.TempDir()
	store := fileops.New()
	path := writeFixture(t, dir, "gone.py", "x")

	require.NoError(t, store.Delete(path))
	assert.False(t, store.Exists(path))

	err := store.Delete(path)
	assert.ErrorIs(t, err, fileops.ErrNotFound)
}

func TestStore_Exists(t *testing.T) {
	dir := t.TempDir()
	store := fileops.New()

	assert.False(t, store.Exists(filepath.Join(dir, "missing.py")))
	assert.False(t, store.Exists(dir), "directories are not regular files")

	path := writeFixture(t, dir, "here.py", "")
	assert.True(t, store.Exists(path))
}

func TestStore_SizeAndModTime(t *testing.T) {
	dir := t.TempDir()
	store := fileops.New()
	path := writeFixture(t, dir, "sized.py", "12345")

	size, err := store.Size(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	mtime, err := store.ModTime(path)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), mtime, time.Minute)

	_, err = store.Size(filepath.Join(dir, "missing.py"))
	assert.ErrorIs(t, err, fileops.ErrNotFound)
}

func TestIsPythonFile(t *testing.T) {
	assert.True(t, fileops.IsPythonFile("a.py"))
	assert.True(t, fileops.IsPythonFile(filepath.Join("pkg", "mod.py")))
	assert.False(t, fileops.IsPythonFile("a.txt"))
	assert.False(t, fileops.IsPythonFile("py"))
}

func TestStore_FindPythonFiles(t *testing.T) {
	dir := t.TempDir()
	store := fileops.New()

	writeFixture(t, dir, "main.py", "")
	writeFixture(t, dir, "README.md", "")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pkg"), 0755))
	writeFixture(t, filepath.Join(dir, "pkg"), "util.py", "")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".venv", "lib"), 0755))
	writeFixture(t, filepath.Join(dir, ".venv", "lib"), "site.py", "")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "__pycache__"), 0755))
	writeFixture(t, filepath.Join(dir, "__pycache__"), "main.cpython-312.py", "")

	files, err := store.FindPythonFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Contains(t, files, filepath.Join(dir, "main.py"))
	assert.Contains(t, files, filepath.Join(dir, "pkg", "util.py"))
}

func TestStore_FindPythonFiles_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	store := fileops.New()
	path := writeFixture(t, dir, "file.py", "")

	_, err := store.FindPythonFiles(path)
	assert.ErrorIs(t, err, fileops.ErrNotDirectory)

	_, err = store.FindPythonFiles(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, fileops.ErrNotFound)
}

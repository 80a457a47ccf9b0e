package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenameMovesWithinDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "old.txt")
	e := Entry{Path: filepath.Join(dir, "old.txt"), Name: "old.txt"}

	require.NoError(t, Rename(e, "new.txt"))

	_, err := os.Stat(filepath.Join(dir, "new.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "old.txt"))
	assert.Error(t, err)
}

func TestRenameRefusesExistingTarget(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt")
	writeFile(t, dir, "b.txt")
	e := Entry{Path: filepath.Join(dir, "a.txt"), Name: "a.txt"}

	err := Rename(e, "b.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRenameRejectsBadNames(t *testing.T) {
	e := Entry{Path: "/tmp/x", Name: "x"}
	assert.Error(t, Rename(e, ""))
	assert.Error(t, Rename(e, ".."))
	assert.Error(t, Rename(e, "a/b"))
}

func TestDeleteRemovesFilesAndDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "f.txt")
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(filepath.Join(sub, "nested"), 0o755))

	require.NoError(t, Delete(Entry{Path: filepath.Join(dir, "f.txt"), Name: "f.txt"}))
	require.NoError(t, Delete(Entry{Path: sub, Name: "sub", IsDir: true}))

	entries, err := List(dir, nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateFileAndDir(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, CreateFile(dir, "notes.md"))
	require.NoError(t, CreateDir(dir, "docs"))

	assert.ErrorContains(t, CreateFile(dir, "notes.md"), "already exists")
	assert.ErrorContains(t, CreateDir(dir, "docs"), "already exists")

	entries, err := List(dir, nil)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "docs", entries[0].Name)
	assert.Equal(t, "notes.md", entries[1].Name)
}

func TestPreviewReadsTextAndRejectsBinary(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "t.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("hello\nworld\n"), 0o644))

	binPath := filepath.Join(dir, "b.bin")
	require.NoError(t, os.WriteFile(binPath, []byte{0x7f, 'E', 'L', 'F', 0, 0, 1, 2}, 0o644))

	text, ok := Preview(textPath)
	require.True(t, ok)
	assert.Equal(t, "hello\nworld\n", text)

	_, ok = Preview(binPath)
	assert.False(t, ok)

	_, ok = Preview(dir)
	assert.False(t, ok)
}

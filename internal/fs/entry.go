package fs

import (
	"os"
	"path/filepath"
	"sort"
)

// Entry represents a single file or directory materialized for display.
// Identity is Path: two entries refer to the same object exactly when
// their canonical paths are equal.
type Entry struct {
	Path  string // canonical, absolute
	Name  string // NFC-normalized base name
	IsDir bool
}

// Canonicalize resolves "." and ".." lexically, without touching the
// filesystem. Relative paths are anchored at the working directory.
func Canonicalize(path string) string {
	if !filepath.IsAbs(path) {
		if wd, err := os.Getwd(); err == nil {
			path = filepath.Join(wd, path)
		}
	}
	return filepath.Clean(path)
}

// Resolve canonicalizes path at the filesystem level (symlinks resolved).
// It falls back to the lexical form when the path does not exist yet, so
// it is safe to call on targets of pending create/rename operations.
func Resolve(path string) string {
	canonical := Canonicalize(path)
	resolved, err := filepath.EvalSymlinks(canonical)
	if err != nil {
		return canonical
	}
	return resolved
}

// Less is the default ordering: directories before files, then
// lexicographic by canonical path.
func Less(a, b Entry) bool {
	if a.IsDir != b.IsDir {
		return a.IsDir
	}
	return a.Path < b.Path
}

// SortDefault sorts entries in place into the default ordering.
func SortDefault(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool { return Less(entries[i], entries[j]) })
}

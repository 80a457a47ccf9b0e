package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"golang.org/x/text/unicode/norm"
)

// List reads the immediate children of dir. Entries whose base names match
// one of the ignore globs are dropped. Symlinks are stat'd so that links to
// directories navigate like directories.
//
// Permission failures stay distinguishable from generic I/O failures:
// errors.Is(err, io/fs.ErrPermission) holds for the former.
func List(dir string, ignore []glob.Glob) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if matchesAny(ignore, name) {
			continue
		}

		fullPath := Canonicalize(filepath.Join(dir, name))
		isDir := de.IsDir()
		if de.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(fullPath); err == nil {
				isDir = info.IsDir()
			}
		}

		entries = append(entries, Entry{
			Path:  fullPath,
			Name:  norm.NFC.String(name),
			IsDir: isDir,
		})
	}

	SortDefault(entries)
	return entries, nil
}

func matchesAny(patterns []glob.Glob, name string) bool {
	for _, p := range patterns {
		if p != nil && p.Match(name) {
			return true
		}
	}
	return false
}

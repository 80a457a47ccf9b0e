package state

import "github.com/vindfm/vind/internal/fs"

// The cursor is stored as a path, never an index: indices are invalidated
// whenever the directory changes or the search filter narrows the list, so
// the effective index is re-derived by linear search on every operation
// and every snapshot.

// EnsureSelection recomputes the effective cursor index for entries. When
// the persisted path is no longer present the selection resets to the
// first entry ("" when the list is empty); that reset counts as a
// mutation. Returns the effective index, -1 for an empty list.
func (s *Session) EnsureSelection(entries []fs.Entry) int {
	if len(entries) == 0 {
		if s.SelectedPath != "" {
			s.SelectedPath = ""
			s.MarkDirty()
		}
		return -1
	}
	for i, e := range entries {
		if e.Path == s.SelectedPath {
			return i
		}
	}
	if s.SelectedPath != entries[0].Path {
		s.SelectedPath = entries[0].Path
		s.MarkDirty()
	}
	return 0
}

// MoveCursor applies the pure index transform f to the recomputed cursor
// index and persists the path at the result. No-op on an empty list.
func (s *Session) MoveCursor(entries []fs.Entry, f func(i, n int) int) {
	n := len(entries)
	if n == 0 {
		return
	}
	i := s.EnsureSelection(entries)
	j := f(i, n)
	if entries[j].Path != s.SelectedPath {
		s.SelectedPath = entries[j].Path
		s.MarkDirty()
	}
}

// CursorDown moves k rows down, wrapping at the end of the list.
func (s *Session) CursorDown(entries []fs.Entry, k int) {
	s.MoveCursor(entries, func(i, n int) int { return euclidMod(i+k, n) })
}

// CursorUp moves k rows up, wrapping at the top of the list.
func (s *Session) CursorUp(entries []fs.Entry, k int) {
	s.MoveCursor(entries, func(i, n int) int { return euclidMod(i-k, n) })
}

// CursorTop jumps to the first entry.
func (s *Session) CursorTop(entries []fs.Entry) {
	s.MoveCursor(entries, func(int, int) int { return 0 })
}

// CursorToLineOrBottom jumps to the 1-based line number when a count
// modifier is present (clamped into range rather than rejected) and to the
// last entry otherwise.
func (s *Session) CursorToLineOrBottom(entries []fs.Entry, line int, hasLine bool) {
	s.MoveCursor(entries, func(_, n int) int {
		if !hasLine {
			return n - 1
		}
		target := line - 1
		if target < 0 {
			target = 0
		}
		if target > n-1 {
			target = n - 1
		}
		return target
	})
}

// Selected returns the entry under the cursor.
func (s *Session) Selected(entries []fs.Entry) (fs.Entry, bool) {
	i := s.EnsureSelection(entries)
	if i < 0 {
		return fs.Entry{}, false
	}
	return entries[i], true
}

func euclidMod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

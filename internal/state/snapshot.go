package state

import "github.com/vindfm/vind/internal/fs"

// Snapshot is the read-only view handed to the renderer once per idle
// iteration. Cursor indexes into Entries; Visible is the slice of rows
// [Offset, Offset+Height).
type Snapshot struct {
	Dir         string
	Mode        Mode
	Entries     []fs.Entry
	Visible     []fs.Entry
	Cursor      int // -1 when the list is empty
	Offset      int
	Height      int
	PendingText string
	Status      string
	Popup       *Popup
	Marked      map[string]bool
	Preview     string
}

// BuildSnapshot freezes the session against the current ranked entry list.
func BuildSnapshot(s *Session, entries []fs.Entry, height, slack int) Snapshot {
	cursor := s.EnsureSelection(entries)

	offset := 0
	if cursor >= 0 {
		offset = ScrollOffset(len(entries), cursor, height, slack)
	}
	end := offset + height
	if end > len(entries) {
		end = len(entries)
	}
	visible := entries[offset:end]

	marked := make(map[string]bool, len(s.marks))
	for p := range s.marks {
		marked[p] = true
	}

	return Snapshot{
		Dir:         s.Dir,
		Mode:        s.Mode(),
		Entries:     entries,
		Visible:     visible,
		Cursor:      cursor,
		Offset:      offset,
		Height:      height,
		PendingText: s.PendingText,
		Status:      s.Status,
		Popup:       s.Popup,
		Marked:      marked,
	}
}

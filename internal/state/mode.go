package state

import "github.com/vindfm/vind/internal/fs"

// Mode is the modal state. Exactly one of the concrete types below is
// active at a time. Quitting is terminal: once entered, no further
// dispatch happens and the host loop exits.
type Mode interface {
	mode()
}

// Normal is the default navigation mode.
type Normal struct{}

// Quitting ends the session.
type Quitting struct{}

// TextKind selects what committing a TextInput does.
type TextKind int

const (
	TextSearch TextKind = iota
	TextRunCommand
)

// TextInput is the line-editing mode: Search filters the listing as the
// query grows, RunCommand collects a command line to execute on commit.
type TextInput struct {
	Kind TextKind
}

// OverlayPayload carries the data an overlay operates on. It is bound once
// at mode entry and immutable for the overlay's lifetime.
type OverlayPayload interface {
	payload()
	// Textual reports whether the overlay accepts typed text, which makes
	// the digester treat digits as literal content.
	Textual() bool
	// Title is the popup heading the renderer shows.
	Title() string
}

// RenamePayload renames the entry captured at overlay entry.
type RenamePayload struct {
	Old fs.Entry
}

// DeleteConfirmPayload asks for confirmation before deleting Targets.
type DeleteConfirmPayload struct {
	Targets []fs.Entry
}

// CreateFilePayload collects a name for a new file.
type CreateFilePayload struct{}

// CreateDirectoryPayload collects a name for a new directory.
type CreateDirectoryPayload struct{}

// Overlay is a popup over a simple background mode. Background is never
// itself Overlay or Quitting.
type Overlay struct {
	Background Mode
	Payload    OverlayPayload
}

func (Normal) mode()    {}
func (Quitting) mode()  {}
func (TextInput) mode() {}
func (Overlay) mode()   {}

func (RenamePayload) payload()          {}
func (DeleteConfirmPayload) payload()   {}
func (CreateFilePayload) payload()      {}
func (CreateDirectoryPayload) payload() {}

func (RenamePayload) Textual() bool          { return true }
func (DeleteConfirmPayload) Textual() bool   { return false }
func (CreateFilePayload) Textual() bool      { return true }
func (CreateDirectoryPayload) Textual() bool { return true }

func (p RenamePayload) Title() string        { return "Rename " + p.Old.Name }
func (p DeleteConfirmPayload) Title() string { return "Delete?" }
func (CreateFilePayload) Title() string      { return "New file" }
func (CreateDirectoryPayload) Title() string { return "New directory" }

// IsTextMode reports whether typed text is literal in mode m, so digits
// must not be interpreted as count modifiers.
func IsTextMode(m Mode) bool {
	switch m := m.(type) {
	case TextInput:
		return true
	case Overlay:
		return m.Payload.Textual()
	}
	return false
}

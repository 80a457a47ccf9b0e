// Package state owns the browsing session: current directory, selection,
// modal state, transient text, marks, and the dirty flag that drives the
// redraw cadence.
package state

import (
	"github.com/vindfm/vind/internal/fs"
)

// Popup is a dismissible error box (listing failures and the like).
type Popup struct {
	Title string
	Body  string
}

// Session is the single source of truth. It has exactly one owner, the
// host loop, which grants an action exclusive mutable access for the
// duration of one dispatch call; nothing here needs locking.
type Session struct {
	Dir          string // canonical current directory
	SelectedPath string // canonical path identity of the cursor, "" = none
	PendingText  string

	mode  Mode
	marks map[string]fs.Entry // delete marks, keyed by canonical path

	Status string // transient one-line status/error
	Popup  *Popup

	dirty bool
}

// NewSession starts a Normal-mode session rooted at dir.
func NewSession(dir string) *Session {
	return &Session{
		Dir:   fs.Canonicalize(dir),
		mode:  Normal{},
		marks: make(map[string]fs.Entry),
	}
}

// Mode returns the active mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// SetMode transitions the state machine. Entering any mode other than
// Normal or Quitting resets the pending text buffer so stale input never
// leaks between mode activations; entering a delete confirmation consumes
// the mark set (the payload captured it already).
func (s *Session) SetMode(m Mode) {
	switch m := m.(type) {
	case TextInput:
		s.PendingText = ""
	case Overlay:
		s.PendingText = ""
		if _, ok := m.Payload.(DeleteConfirmPayload); ok {
			s.ClearMarks()
		}
	}
	s.mode = m
	s.MarkDirty()
}

// Quitting reports whether the terminal state has been reached.
func (s *Session) Quitting() bool {
	_, ok := s.mode.(Quitting)
	return ok
}

// MarkDirty records that observable state changed; the next poll uses a
// zero timeout so the redraw happens immediately.
func (s *Session) MarkDirty() {
	s.dirty = true
}

// ConsumeDirty returns the dirty flag and clears it. Called once per loop
// iteration.
func (s *Session) ConsumeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}

// SetStatus replaces the transient status line.
func (s *Session) SetStatus(msg string) {
	s.Status = msg
	s.MarkDirty()
}

// SetPopup raises a dismissible error popup.
func (s *Session) SetPopup(title, body string) {
	s.Popup = &Popup{Title: title, Body: body}
	s.MarkDirty()
}

// ClearTransients dismisses the status line and popup. Runs on every key
// press, so errors never outlive the next input.
func (s *Session) ClearTransients() {
	if s.Status == "" && s.Popup == nil {
		return
	}
	s.Status = ""
	s.Popup = nil
	s.MarkDirty()
}

// AppendText adds literal input to the pending text buffer.
func (s *Session) AppendText(text string) {
	if text == "" {
		return
	}
	s.PendingText += text
	s.MarkDirty()
}

// DeleteLastChar removes the final rune of the pending text buffer.
func (s *Session) DeleteLastChar() {
	if s.PendingText == "" {
		return
	}
	runes := []rune(s.PendingText)
	s.PendingText = string(runes[:len(runes)-1])
	s.MarkDirty()
}

// ToggleMark flips the delete mark on e.
func (s *Session) ToggleMark(e fs.Entry) {
	if _, ok := s.marks[e.Path]; ok {
		delete(s.marks, e.Path)
	} else {
		s.marks[e.Path] = e
	}
	s.MarkDirty()
}

// IsMarked reports whether the path carries a delete mark.
func (s *Session) IsMarked(path string) bool {
	_, ok := s.marks[path]
	return ok
}

// MarkedEntries returns the marked entries in default order.
func (s *Session) MarkedEntries() []fs.Entry {
	out := make([]fs.Entry, 0, len(s.marks))
	for _, e := range s.marks {
		out = append(out, e)
	}
	fs.SortDefault(out)
	return out
}

// ClearMarks drops all delete marks.
func (s *Session) ClearMarks() {
	if len(s.marks) == 0 {
		return
	}
	s.marks = make(map[string]fs.Entry)
	s.MarkDirty()
}

// ChangeDir moves the session to dir (canonicalized) and selects the given
// path, usually the first entry or the directory just left.
func (s *Session) ChangeDir(dir, selectPath string) {
	s.Dir = fs.Canonicalize(dir)
	s.SelectedPath = selectPath
	s.MarkDirty()
}

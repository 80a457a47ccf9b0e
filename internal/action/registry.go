// Package action holds the named operation tables and the key-sequence
// dispatch protocol that resolves digested input against them.
package action

import (
	"errors"
	"fmt"

	"github.com/vindfm/vind/internal/fs"
	"github.com/vindfm/vind/internal/state"
)

// Func executes one operation with exclusive access to the session for the
// duration of the call. A nil return is valid; a non-nil error is the
// domain-level "invalid" outcome and its message becomes the status line.
type Func func(ctx *Context) error

// Env groups the collaborators actions may call out to. The screen owner
// implements it.
type Env interface {
	// RunForeground suspends terminal capture, runs argv with dir as the
	// working directory, waits for completion (or an interrupt, which
	// kills the child), and resumes capture.
	RunForeground(argv []string, dir string) error
	// EditorArgv renders the configured editor template for path.
	EditorArgv(path string) ([]string, error)
}

// Context is what an action sees during one dispatch.
type Context struct {
	Session     *state.Session
	Entries     []fs.Entry // current ranked listing
	Modifier    int
	HasModifier bool
	Env         Env
}

// Count returns the modifier as a repeat count, defaulting to 1.
func (c *Context) Count() int {
	if c.HasModifier {
		return c.Modifier
	}
	return 1
}

// Selected returns the entry under the cursor or an "invalid" error.
func (c *Context) Selected() (fs.Entry, error) {
	e, ok := c.Session.Selected(c.Entries)
	if !ok {
		return fs.Entry{}, errors.New("nothing is selected")
	}
	return e, nil
}

// Registry maps action names, as they appear in binding tables, to
// functions. Tables are built once at startup; nothing here is a
// process-wide mutable global.
type Registry map[string]Func

// GlobalRegistry holds the operations reachable from every mode.
func GlobalRegistry() Registry {
	return Registry{
		"quit": quit,
	}
}

// NormalRegistry holds navigation, marking and mode-entry operations.
func NormalRegistry() Registry {
	return Registry{
		"down":                   down,
		"up":                     up,
		"left":                   left,
		"right":                  right,
		"go_to_top":              goToTop,
		"go_to_or_go_to_bottom":  goToOrBottom,
		"toggle_mark":            toggleMark,
		"search":                 enterSearch,
		"run_command":            enterRunCommand,
		"rename":                 enterRename,
		"delete":                 enterDeleteConfirm,
		"new_file":               enterCreateFile,
		"new_directory":          enterCreateDirectory,
		"edit":                   editSelected,
		"open":                   openSelected,
		"yank_path":              yankPath,
	}
}

// TextRegistry holds the line-editing operations shared by TextInput and
// every overlay.
func TextRegistry() Registry {
	return Registry{
		"commit":           commit,
		"delete_last_char": deleteLastChar,
		"cancel":           cancel,
		"noop":             noop,
	}
}

// Bindings are the flat key-sequence-to-action-name tables loaded from the
// configuration file.
type Bindings struct {
	Global map[string]string
	Normal map[string]string
	Text   map[string]string
}

// Validate checks every bound action name against the registry tier its
// table resolves in, so a typo in the config fails at startup instead of
// at key-press time.
func (b Bindings) Validate() error {
	tiers := []struct {
		table    map[string]string
		registry Registry
		name     string
	}{
		{b.Global, GlobalRegistry(), "global"},
		{b.Normal, NormalRegistry(), "normal"},
		{b.Text, TextRegistry(), "text_input"},
	}
	for _, tier := range tiers {
		for key, action := range tier.table {
			if key == "" {
				return fmt.Errorf("%s bindings: empty key sequence bound to %q", tier.name, action)
			}
			if _, ok := tier.registry[action]; !ok {
				return fmt.Errorf("%s bindings: %q is bound to unknown action %q", tier.name, key, action)
			}
		}
	}
	return nil
}

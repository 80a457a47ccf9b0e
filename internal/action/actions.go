package action

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/skratchdot/open-golang/open"

	"github.com/vindfm/vind/internal/fs"
	"github.com/vindfm/vind/internal/state"
)

func quit(ctx *Context) error {
	ctx.Session.SetMode(state.Quitting{})
	return nil
}

func down(ctx *Context) error {
	ctx.Session.CursorDown(ctx.Entries, ctx.Count())
	return nil
}

func up(ctx *Context) error {
	ctx.Session.CursorUp(ctx.Entries, ctx.Count())
	return nil
}

func goToTop(ctx *Context) error {
	ctx.Session.CursorTop(ctx.Entries)
	return nil
}

func goToOrBottom(ctx *Context) error {
	ctx.Session.CursorToLineOrBottom(ctx.Entries, ctx.Modifier, ctx.HasModifier)
	return nil
}

func left(ctx *Context) error {
	s := ctx.Session
	parent := filepath.Dir(s.Dir)
	if parent == s.Dir {
		return errors.New("already at the filesystem root")
	}
	// Leave the cursor on the directory we just came from.
	s.ChangeDir(parent, s.Dir)
	return nil
}

func right(ctx *Context) error {
	e, err := ctx.Selected()
	if err != nil {
		return err
	}
	if !e.IsDir {
		return fmt.Errorf("%s is not a directory", e.Name)
	}
	ctx.Session.ChangeDir(e.Path, "")
	return nil
}

func toggleMark(ctx *Context) error {
	e, err := ctx.Selected()
	if err != nil {
		return err
	}
	ctx.Session.ToggleMark(e)
	return nil
}

func enterSearch(ctx *Context) error {
	ctx.Session.SetMode(state.TextInput{Kind: state.TextSearch})
	return nil
}

func enterRunCommand(ctx *Context) error {
	ctx.Session.SetMode(state.TextInput{Kind: state.TextRunCommand})
	return nil
}

func enterRename(ctx *Context) error {
	e, err := ctx.Selected()
	if err != nil {
		return err
	}
	ctx.Session.SetMode(state.Overlay{
		Background: state.Normal{},
		Payload:    state.RenamePayload{Old: e},
	})
	return nil
}

func enterDeleteConfirm(ctx *Context) error {
	targets := ctx.Session.MarkedEntries()
	if len(targets) == 0 {
		e, err := ctx.Selected()
		if err != nil {
			return err
		}
		targets = []fs.Entry{e}
	}
	ctx.Session.SetMode(state.Overlay{
		Background: state.Normal{},
		Payload:    state.DeleteConfirmPayload{Targets: targets},
	})
	return nil
}

func enterCreateFile(ctx *Context) error {
	ctx.Session.SetMode(state.Overlay{Background: state.Normal{}, Payload: state.CreateFilePayload{}})
	return nil
}

func enterCreateDirectory(ctx *Context) error {
	ctx.Session.SetMode(state.Overlay{Background: state.Normal{}, Payload: state.CreateDirectoryPayload{}})
	return nil
}

func editSelected(ctx *Context) error {
	e, err := ctx.Selected()
	if err != nil {
		return err
	}
	if e.IsDir {
		return fmt.Errorf("%s is a directory", e.Name)
	}
	argv, err := ctx.Env.EditorArgv(e.Path)
	if err != nil {
		return err
	}
	ctx.Session.MarkDirty()
	if err := ctx.Env.RunForeground(argv, ctx.Session.Dir); err != nil {
		return fmt.Errorf("editor: %v", err)
	}
	return nil
}

func openSelected(ctx *Context) error {
	e, err := ctx.Selected()
	if err != nil {
		return err
	}
	if err := open.Run(e.Path); err != nil {
		return fmt.Errorf("open %s: %v", e.Name, err)
	}
	return nil
}

func yankPath(ctx *Context) error {
	e, err := ctx.Selected()
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(e.Path); err != nil {
		return fmt.Errorf("clipboard: %v", err)
	}
	ctx.Session.SetStatus("copied " + e.Path)
	return nil
}

// commit is the ENTER operation of every text-accepting mode. The effect
// depends on the active mode's payload; whatever the outcome, the session
// returns to Normal (failures surface as the status line, never as a
// stuck mode).
func commit(ctx *Context) error {
	s := ctx.Session
	text := s.PendingText

	switch m := s.Mode().(type) {
	case state.TextInput:
		switch m.Kind {
		case state.TextSearch:
			if len(ctx.Entries) > 0 {
				s.SelectedPath = ctx.Entries[0].Path
			}
			backToNormal(s)
			return nil
		case state.TextRunCommand:
			backToNormal(s)
			argv := strings.Fields(text)
			if len(argv) == 0 {
				return nil
			}
			if err := ctx.Env.RunForeground(argv, s.Dir); err != nil {
				return fmt.Errorf("%s: %v", argv[0], err)
			}
			return nil
		}
		return nil

	case state.Overlay:
		backToNormal(s)
		switch p := m.Payload.(type) {
		case state.RenamePayload:
			return fs.Rename(p.Old, text)
		case state.DeleteConfirmPayload:
			return deleteAll(p.Targets)
		case state.CreateFilePayload:
			return fs.CreateFile(s.Dir, text)
		case state.CreateDirectoryPayload:
			return fs.CreateDir(s.Dir, text)
		}
		return nil
	}

	return errors.New("nothing to commit")
}

func deleteAll(targets []fs.Entry) error {
	var firstErr error
	for _, e := range targets {
		if err := fs.Delete(e); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func deleteLastChar(ctx *Context) error {
	ctx.Session.DeleteLastChar()
	return nil
}

func cancel(ctx *Context) error {
	backToNormal(ctx.Session)
	return nil
}

func noop(*Context) error {
	return nil
}

func backToNormal(s *state.Session) {
	s.PendingText = ""
	s.SetMode(state.Normal{})
}

package app

import (
	"errors"
	iofs "io/fs"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vindfm/vind/internal/fs"
	"github.com/vindfm/vind/internal/input"
	"github.com/vindfm/vind/internal/logging"
	"github.com/vindfm/vind/internal/search"
	"github.com/vindfm/vind/internal/state"
	"github.com/vindfm/vind/internal/ui/render"
)

// Run executes the poll loop until the session quits. Each iteration
// re-reads the directory, ranks it against the live search query, then
// waits for either an event or the render deadline; the deadline is zero
// whenever the previous iteration changed observable state, so dirty
// frames draw immediately and idle iterations coalesce into one redraw
// per tick.
func (app *Application) Run() error {
	defer app.screen.Fini()

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				// Screen finalized; the loop is done with us.
				return
			}
			events <- ev
		}
	}()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for !app.session.Quitting() {
		entries := app.visibleEntries()

		timeout := app.tick
		if app.session.ConsumeDirty() {
			timeout = 0
		}
		resetTimer(timer, timeout)

		select {
		case ev := <-events:
			app.handleEvent(ev, entries)
		case <-timer.C:
			app.render(entries)
		}
	}

	logging.Infof("session ended in %s", app.session.Dir)
	return nil
}

// visibleEntries lists the current directory and applies the active search
// ranking. A listing failure raises a popup and shows an empty list; the
// session stays alive so the user can navigate away.
func (app *Application) visibleEntries() []fs.Entry {
	entries, err := fs.List(app.session.Dir, app.settings.IgnoreGlobs())
	if err != nil {
		app.showListError(err)
		entries = nil
	}
	return search.Rank(entries, app.searchQuery())
}

// searchQuery returns the pending text when search mode is live, else "".
func (app *Application) searchQuery() string {
	if ti, ok := app.session.Mode().(state.TextInput); ok && ti.Kind == state.TextSearch {
		return app.session.PendingText
	}
	return ""
}

func (app *Application) showListError(err error) {
	title := "could not read directory"
	if errors.Is(err, iofs.ErrPermission) {
		title = "permission denied"
	}
	body := err.Error()

	// The listing fails again on every pass until the user navigates away;
	// re-posting an identical popup would keep the dirty flag set and spin
	// the loop.
	if p := app.session.Popup; p != nil && p.Title == title && p.Body == body {
		return
	}
	logging.Warnf("list %s: %v", app.session.Dir, err)
	app.session.SetPopup(title, body)
}

func (app *Application) handleEvent(ev tcell.Event, entries []fs.Entry) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			app.session.SetMode(state.Quitting{})
			return
		}
		app.dispatcher.HandleKey(app.session, entries, input.FromEvent(ev))
	case *tcell.EventResize:
		app.screen.Sync()
		app.session.MarkDirty()
	}
}

func (app *Application) render(entries []fs.Entry) {
	_, h := app.screen.Size()
	snap := state.BuildSnapshot(app.session, entries, render.ListHeight(h), app.settings.CursorSlack)
	snap.Preview = app.previewFor(entries, snap.Cursor)
	app.renderer.Render(snap)
}

// previewFor produces the preview text for the cursor entry: a bounded
// head of regular files, nothing for directories or binary content.
func (app *Application) previewFor(entries []fs.Entry, cursor int) string {
	if cursor < 0 || cursor >= len(entries) {
		return ""
	}
	entry := entries[cursor]
	if entry.IsDir {
		return ""
	}
	text, ok := fs.Preview(entry.Path)
	if !ok {
		return "(binary file)"
	}
	return text
}

// resetTimer rearms t for d, draining a stale fire first.
func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

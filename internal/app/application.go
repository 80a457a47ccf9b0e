// Package app hosts the running browser: it owns the terminal screen, the
// session, and the poll loop that alternates between handling input and
// redrawing.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vindfm/vind/internal/action"
	"github.com/vindfm/vind/internal/config"
	"github.com/vindfm/vind/internal/logging"
	"github.com/vindfm/vind/internal/state"
	"github.com/vindfm/vind/internal/ui/render"
)

// Application wires the screen, session, dispatcher and renderer together.
type Application struct {
	screen     tcell.Screen
	session    *state.Session
	dispatcher *action.Dispatcher
	renderer   *render.Renderer
	settings   *config.Settings
	tick       time.Duration
}

// New initializes the terminal and builds an application rooted at
// startDir. The caller must eventually call Run, which finalizes the
// screen on exit.
func New(settings *config.Settings, bindings action.Bindings, startDir string) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	app, err := newWithScreen(screen, settings, bindings, startDir)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

func newWithScreen(screen tcell.Screen, settings *config.Settings, bindings action.Bindings, startDir string) (*Application, error) {
	info, err := os.Stat(startDir)
	if err != nil {
		return nil, fmt.Errorf("start directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("start directory %s: not a directory", startDir)
	}

	app := &Application{
		screen:   screen,
		session:  state.NewSession(startDir),
		renderer: render.NewRenderer(screen),
		settings: settings,
		tick:     time.Duration(settings.RenderTimeoutMillis) * time.Millisecond,
	}
	app.dispatcher = action.NewDispatcher(bindings, app)

	// Force the first pass through the loop to draw immediately.
	app.session.MarkDirty()
	return app, nil
}

// CurrentDir returns the directory the session ended in, for the shell
// integration handoff.
func (app *Application) CurrentDir() string {
	return app.session.Dir
}

// RunForeground suspends the screen, runs argv in dir with the terminal
// attached, and resumes. SIGINT/SIGTERM kill the child, not the browser.
func (app *Application) RunForeground(argv []string, dir string) (err error) {
	if len(argv) == 0 {
		return errors.New("empty command")
	}
	if err := app.screen.Suspend(); err != nil {
		return err
	}
	defer func() {
		if resumeErr := app.screen.Resume(); resumeErr != nil && err == nil {
			err = resumeErr
		}
		app.screen.Sync()
		app.session.MarkDirty()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logging.Debugf("run foreground: %v (in %s)", argv, dir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", argv[0], err)
	}
	return nil
}

// EditorArgv renders the configured editor command for path.
func (app *Application) EditorArgv(path string) ([]string, error) {
	return app.settings.EditorArgv(path)
}

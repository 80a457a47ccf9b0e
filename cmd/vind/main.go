package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/vindfm/vind/internal/action"
	"github.com/vindfm/vind/internal/app"
	"github.com/vindfm/vind/internal/config"
	"github.com/vindfm/vind/internal/logging"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath  string
		startDir string
		debug    bool
	)

	cmd := &cobra.Command{
		Use:     "vind [flags]",
		Short:   "Keyboard-driven modal file browser",
		Version: version,
		Args:    cobra.NoArgs,
		// Flag errors should print usage; runtime errors should not.
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(debug)
			return run(cfgPath, startDir)
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/vind/config.yaml)")
	cmd.Flags().StringVarP(&startDir, "dir", "d", ".", "directory to start browsing in")
	cmd.Flags().BoolVar(&debug, "debug", false, "verbose logging")
	return cmd
}

func run(cfgPath, startDir string) error {
	settings, err := config.Load(config.DefaultPaths(cfgPath))
	if err != nil {
		return err
	}

	bindings := action.Bindings{
		Global: settings.GlobalKeyBindings,
		Normal: settings.NormalModeKeyBindings,
		Text:   settings.TextInputModeKeyBindings,
	}
	if err := bindings.Validate(); err != nil {
		return err
	}

	// Fallback encoding so non-UTF-8 locales still show Unicode names.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	application, err := app.New(settings, bindings, startDir)
	if err != nil {
		return err
	}
	if err := application.Run(); err != nil {
		return err
	}

	writeResultFile(application.CurrentDir())
	return nil
}

// writeResultFile records the final directory for the optional shell
// wrapper that cd's into it after vind exits. The PID keeps concurrent
// instances from clobbering each other.
func writeResultFile(dir string) {
	if dir == "" {
		return
	}
	path := filepath.Join(os.TempDir(), fmt.Sprintf("vind_result_%d.txt", os.Getpid()))
	if err := os.WriteFile(path, []byte(dir), 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not write result file: %v\n", err)
	}
}

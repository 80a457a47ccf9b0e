// Package config loads the settings and key-binding tables from the first
// existing YAML file among an ordered list of candidate paths.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

const fileToken = "<FILE>"

// Settings is the on-disk configuration. Binding tables map canonical key
// sequences (verb tokens joined by single spaces, e.g. "g g" or "ENTER")
// to action names.
type Settings struct {
	RenderTimeoutMillis int      `yaml:"render_timeout_ms"`
	CursorSlack         int      `yaml:"cursor_slack"`
	Editor              []string `yaml:"editor"`
	Ignore              []string `yaml:"ignore"`

	GlobalKeyBindings        map[string]string `yaml:"global_key_bindings"`
	NormalModeKeyBindings    map[string]string `yaml:"normal_mode_key_bindings"`
	TextInputModeKeyBindings map[string]string `yaml:"text_input_mode_key_bindings"`

	ignoreGlobs []glob.Glob
}

// DefaultPaths returns the candidate config locations in lookup order.
// An explicit path (from the command line) short-circuits the search.
func DefaultPaths(explicit string) []string {
	if explicit != "" {
		return []string{explicit}
	}
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "vind", "config.yaml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "vind", "config.yaml"))
	}
	paths = append(paths, filepath.Join("/etc", "vind", "config.yaml"))
	return paths
}

// Load reads the first existing candidate. A missing file (all candidates)
// or malformed content is an error; the caller treats it as fatal.
func Load(paths []string) (*Settings, error) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		s, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("no config file found (looked at %v)", paths)
}

func parse(data []byte) (*Settings, error) {
	var s Settings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	s.applyDefaults()
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) applyDefaults() {
	if s.RenderTimeoutMillis <= 0 {
		s.RenderTimeoutMillis = 250
	}
	if s.CursorSlack <= 0 {
		s.CursorSlack = 4
	}
	if len(s.Editor) == 0 {
		s.Editor = []string{"vi", fileToken}
	}
}

func (s *Settings) validate() error {
	if len(s.GlobalKeyBindings) == 0 {
		return errors.New("global_key_bindings is missing or empty")
	}
	if len(s.NormalModeKeyBindings) == 0 {
		return errors.New("normal_mode_key_bindings is missing or empty")
	}
	if len(s.TextInputModeKeyBindings) == 0 {
		return errors.New("text_input_mode_key_bindings is missing or empty")
	}

	hasFileToken := false
	for _, arg := range s.Editor {
		if arg == fileToken {
			hasFileToken = true
		}
	}
	if !hasFileToken {
		return fmt.Errorf("editor command must contain the %s placeholder", fileToken)
	}

	s.ignoreGlobs = s.ignoreGlobs[:0]
	for _, pattern := range s.Ignore {
		g, err := glob.Compile(pattern)
		if err != nil {
			return fmt.Errorf("ignore pattern %q: %w", pattern, err)
		}
		s.ignoreGlobs = append(s.ignoreGlobs, g)
	}
	return nil
}

// IgnoreGlobs returns the compiled ignore patterns.
func (s *Settings) IgnoreGlobs() []glob.Glob {
	return s.ignoreGlobs
}

// EditorArgv renders the editor template for path.
func (s *Settings) EditorArgv(path string) ([]string, error) {
	if len(s.Editor) == 0 {
		return nil, errors.New("no editor configured")
	}
	argv := make([]string, len(s.Editor))
	for i, arg := range s.Editor {
		if arg == fileToken {
			arg = path
		}
		argv[i] = arg
	}
	return argv, nil
}

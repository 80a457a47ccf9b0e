package action

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vindfm/vind/internal/fs"
	"github.com/vindfm/vind/internal/input"
	"github.com/vindfm/vind/internal/state"
)

type fakeEnv struct {
	ranArgv []string
	ranDir  string
	runErr  error
}

func (f *fakeEnv) RunForeground(argv []string, dir string) error {
	f.ranArgv = argv
	f.ranDir = dir
	return f.runErr
}

func (f *fakeEnv) EditorArgv(path string) ([]string, error) {
	return []string{"editor", path}, nil
}

func testBindings() Bindings {
	return Bindings{
		Global: map[string]string{
			"q": "quit",
		},
		Normal: map[string]string{
			"j":         "down",
			"k":         "up",
			"g g":       "go_to_top",
			"G":         "go_to_or_go_to_bottom",
			"/":         "search",
			":":         "run_command",
			"r":         "rename",
			"d":         "delete",
			"n":         "new_file",
			"N":         "new_directory",
			"m":         "toggle_mark",
			"l":         "right",
			"h":         "left",
			"ENTER":     "right",
			"BACKSPACE": "left",
		},
		Text: map[string]string{
			"ENTER":     "commit",
			"BACKSPACE": "delete_last_char",
			"ESC":       "cancel",
		},
	}
}

func newFixture(t *testing.T, n int) (*Dispatcher, *state.Session, []fs.Entry, *fakeEnv) {
	t.Helper()
	env := &fakeEnv{}
	d := NewDispatcher(testBindings(), env)
	s := state.NewSession("/d")

	entries := make([]fs.Entry, n)
	for i := range entries {
		entries[i] = fs.Entry{Path: filepath.Join("/d", string(rune('a'+i))), Name: string(rune('a' + i))}
	}
	return d, s, entries, env
}

func press(d *Dispatcher, s *state.Session, entries []fs.Entry, keys ...input.Key) {
	for _, k := range keys {
		d.HandleKey(s, entries, k)
	}
}

func runes(text string) []input.Key {
	keys := make([]input.Key, 0, len(text))
	for _, r := range text {
		keys = append(keys, input.Key{Kind: input.KeyRune, Rune: r})
	}
	return keys
}

var (
	enter     = input.Key{Kind: input.KeyEnter}
	escape    = input.Key{Kind: input.KeyEscape}
	backspace = input.Key{Kind: input.KeyBackspace}
)

func TestValidateBindings(t *testing.T) {
	require.NoError(t, testBindings().Validate())

	bad := testBindings()
	bad.Normal["z"] = "warp_drive"
	assert.ErrorContains(t, bad.Validate(), "warp_drive")

	empty := testBindings()
	empty.Global[""] = "quit"
	assert.ErrorContains(t, empty.Validate(), "empty key sequence")
}

func TestCountModifierDispatchesExactlyOnce(t *testing.T) {
	d, s, entries, _ := newFixture(t, 20)
	s.SelectedPath = entries[0].Path
	s.ConsumeDirty()

	press(d, s, entries, runes("12")...)
	assert.Equal(t, entries[0].Path, s.SelectedPath, "no action may fire on digits alone")
	assert.False(t, s.ConsumeDirty())

	press(d, s, entries, runes("j")...)
	assert.Equal(t, entries[12].Path, s.SelectedPath, "down must move (i+12) mod N")

	// Buffers were cleared: a bare j moves by one.
	press(d, s, entries, runes("j")...)
	assert.Equal(t, entries[13].Path, s.SelectedPath)
}

func TestPrefixSequenceWaitsThenFires(t *testing.T) {
	d, s, entries, _ := newFixture(t, 5)
	s.SelectedPath = entries[3].Path

	press(d, s, entries, runes("g")...)
	assert.Equal(t, "", s.Status, "prefix match must not raise an error")
	assert.Equal(t, entries[3].Path, s.SelectedPath)

	press(d, s, entries, runes("g")...)
	assert.Equal(t, entries[0].Path, s.SelectedPath, "second g completes g g -> go_to_top")

	// Buffers cleared by the dispatch: g is pending again, j is a dead end
	// continuation of nothing.
	press(d, s, entries, runes("g")...)
	press(d, s, entries, runes("j")...)
	assert.Contains(t, s.Status, "could not recognise")
}

func TestDeadEndSequenceInNormalModeReportsStatus(t *testing.T) {
	d, s, entries, _ := newFixture(t, 3)

	press(d, s, entries, runes("x")...)
	assert.Contains(t, s.Status, "could not recognise that sequence: x")

	// Buffers cleared: a following bound key works normally.
	press(d, s, entries, runes("j")...)
	assert.Equal(t, entries[1].Path, s.SelectedPath)
}

func TestDeadEndInTextModeFlushesLiterals(t *testing.T) {
	d, s, entries, _ := newFixture(t, 3)

	press(d, s, entries, runes("/")...)
	require.IsType(t, state.TextInput{}, s.Mode())

	press(d, s, entries, runes("a1b")...)
	assert.Equal(t, "a1b", s.PendingText, "digits are literal content in text modes")
	assert.Equal(t, "", s.Status)
}

func TestModifierAfterVerbSurfacesProtocolError(t *testing.T) {
	d, s, entries, _ := newFixture(t, 3)

	press(d, s, entries, runes("g")...)
	press(d, s, entries, runes("5")...)
	assert.Contains(t, s.Status, "count modifier")

	// Both buffers were cleared; the next key starts a fresh sequence.
	press(d, s, entries, runes("j")...)
	assert.Equal(t, entries[1].Path, s.SelectedPath)
}

func TestGlobalTableIsConsultedAfterModeTable(t *testing.T) {
	d, s, entries, _ := newFixture(t, 3)

	press(d, s, entries, runes("q")...)
	assert.True(t, s.Quitting())

	// Quitting is terminal: further keys do nothing.
	press(d, s, entries, runes("j")...)
	assert.True(t, s.Quitting())
	assert.Equal(t, "", s.SelectedPath)
}

func TestTextModeCapturesKeysBoundOnlyGlobally(t *testing.T) {
	d, s, entries, _ := newFixture(t, 3)

	press(d, s, entries, runes("/")...)
	press(d, s, entries, runes("q")...)
	// q is not bound in the text table and is no prefix there; it flushes
	// into the query instead of quitting.
	assert.False(t, s.Quitting())
	assert.Equal(t, "q", s.PendingText)
}

func TestStatusClearsOnNextKeyPress(t *testing.T) {
	d, s, entries, _ := newFixture(t, 3)

	press(d, s, entries, runes("x")...)
	require.NotEqual(t, "", s.Status)

	press(d, s, entries, runes("j")...)
	assert.Equal(t, "", s.Status)
}

func TestInvalidActionOutcomeSurfacesAndSequenceEnds(t *testing.T) {
	d, s, entries, _ := newFixture(t, 2)
	s.SelectedPath = entries[0].Path // a plain file

	press(d, s, entries, runes("l")...)
	assert.Contains(t, s.Status, "not a directory")

	// The failed dispatch cleared the buffers.
	press(d, s, entries, runes("j")...)
	assert.Equal(t, entries[1].Path, s.SelectedPath)
}

func TestRenameOverlayEndToEnd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.txt"), []byte("x"), 0o644))

	entries, err := fs.List(dir, nil)
	require.NoError(t, err)

	d, s, _, _ := newFixture(t, 0)
	s.ChangeDir(dir, entries[0].Path)

	press(d, s, entries, runes("r")...)
	overlay, ok := s.Mode().(state.Overlay)
	require.True(t, ok)
	assert.Equal(t, "old.txt", overlay.Payload.(state.RenamePayload).Old.Name)

	press(d, s, entries, runes("new.txt")...)
	assert.Equal(t, "new.txt", s.PendingText)

	press(d, s, entries, enter)
	assert.IsType(t, state.Normal{}, s.Mode())
	assert.Equal(t, "", s.Status)

	after, err := fs.List(dir, nil)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "new.txt", after[0].Name)
}

func TestRenameFailureReturnsToNormalWithStatus(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("x"), 0o644))

	entries, err := fs.List(dir, nil)
	require.NoError(t, err)

	d, s, _, _ := newFixture(t, 0)
	s.ChangeDir(dir, entries[0].Path)

	press(d, s, entries, runes("r")...)
	press(d, s, entries, runes("b.txt")...)
	press(d, s, entries, enter)

	assert.IsType(t, state.Normal{}, s.Mode(), "mode must not stick on failure")
	assert.Contains(t, s.Status, "already exists")
}

func TestDeleteConfirmActsOnMarkedSet(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	entries, err := fs.List(dir, nil)
	require.NoError(t, err)

	d, s, _, _ := newFixture(t, 0)
	s.ChangeDir(dir, entries[0].Path)

	press(d, s, entries, runes("m")...) // mark a.txt
	press(d, s, entries, runes("j")...)
	press(d, s, entries, runes("m")...) // mark b.txt
	press(d, s, entries, runes("d")...)

	overlay, ok := s.Mode().(state.Overlay)
	require.True(t, ok)
	targets := overlay.Payload.(state.DeleteConfirmPayload).Targets
	require.Len(t, targets, 2)

	press(d, s, entries, enter)
	assert.IsType(t, state.Normal{}, s.Mode())

	after, err := fs.List(dir, nil)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "c.txt", after[0].Name)
}

func TestDeleteConfirmCancelKeepsFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))
	entries, err := fs.List(dir, nil)
	require.NoError(t, err)

	d, s, _, _ := newFixture(t, 0)
	s.ChangeDir(dir, entries[0].Path)

	press(d, s, entries, runes("d")...)
	press(d, s, entries, escape)

	assert.IsType(t, state.Normal{}, s.Mode())
	after, err := fs.List(dir, nil)
	require.NoError(t, err)
	assert.Len(t, after, 1)
}

func TestCreateFileOverlay(t *testing.T) {
	dir := t.TempDir()
	d, s, _, _ := newFixture(t, 0)
	s.ChangeDir(dir, "")

	press(d, s, nil, runes("n")...)
	press(d, s, nil, runes("notes.md")...)
	press(d, s, nil, backspace, backspace, backspace)
	assert.Equal(t, "notes", s.PendingText)
	press(d, s, nil, runes(".md")...)
	press(d, s, nil, enter)

	after, err := fs.List(dir, nil)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "notes.md", after[0].Name)
}

func TestRunCommandCommitUsesRunner(t *testing.T) {
	d, s, entries, env := newFixture(t, 1)
	s.ChangeDir("/work", "")

	press(d, s, entries, runes(":")...)
	press(d, s, entries, runes("make test")...)
	press(d, s, entries, enter)

	assert.Equal(t, []string{"make", "test"}, env.ranArgv)
	assert.Equal(t, "/work", env.ranDir)
	assert.IsType(t, state.Normal{}, s.Mode())
}

func TestSearchCommitSelectsTopRankedEntry(t *testing.T) {
	d, s, entries, _ := newFixture(t, 4)
	s.SelectedPath = entries[3].Path

	press(d, s, entries, runes("/")...)
	ranked := []fs.Entry{entries[1], entries[2]} // what the ranker kept
	press(d, s, ranked, enter)

	assert.Equal(t, entries[1].Path, s.SelectedPath)
	assert.IsType(t, state.Normal{}, s.Mode())
	assert.Equal(t, "", s.PendingText)
}

func TestLeftNavigatesToParentAndSelectsIt(t *testing.T) {
	d, s, _, _ := newFixture(t, 0)
	s.ChangeDir("/home/user/docs", "")

	press(d, s, nil, backspace)
	assert.Equal(t, "/home/user", s.Dir)
	assert.Equal(t, "/home/user/docs", s.SelectedPath)
}

func TestEditRunsEditorWithSelectedFile(t *testing.T) {
	bindings := testBindings()
	bindings.Normal["e"] = "edit"
	env := &fakeEnv{}
	d := NewDispatcher(bindings, env)
	s := state.NewSession("/d")
	entries := []fs.Entry{{Path: "/d/f.txt", Name: "f.txt"}}
	s.SelectedPath = entries[0].Path

	press(d, s, entries, runes("e")...)
	assert.Equal(t, []string{"editor", "/d/f.txt"}, env.ranArgv)
	assert.Equal(t, "/d", env.ranDir)
}

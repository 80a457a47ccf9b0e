package action

import (
	"strings"

	"github.com/vindfm/vind/internal/fs"
	"github.com/vindfm/vind/internal/input"
	"github.com/vindfm/vind/internal/state"
)

// Dispatcher owns the input digester and resolves digested key sequences
// against the binding tables: exact match in the active mode's table, then
// the global table; otherwise a prefix check decides between waiting for
// more input and declaring a dead end.
type Dispatcher struct {
	digester input.Digester
	bindings Bindings
	global   Registry
	normal   Registry
	text     Registry
	env      Env
}

// NewDispatcher builds the dispatch tables once. Callers should have run
// bindings.Validate() already; an unbound name found at dispatch time is
// reported on the status line rather than panicking.
func NewDispatcher(bindings Bindings, env Env) *Dispatcher {
	return &Dispatcher{
		bindings: bindings,
		global:   GlobalRegistry(),
		normal:   NormalRegistry(),
		text:     TextRegistry(),
		env:      env,
	}
}

// HandleKey digests one key event and runs the resolution protocol. Any
// visible outcome (cursor motion, mode change, status message) marks the
// session dirty through the session's own methods.
func (d *Dispatcher) HandleKey(s *state.Session, entries []fs.Entry, k input.Key) {
	if s.Quitting() {
		return
	}

	// A key press dismisses whatever transient error is showing.
	s.ClearTransients()

	mode := s.Mode()
	textual := state.IsTextMode(mode)

	if err := d.digester.Digest(k, textual); err != nil {
		s.SetStatus(err.Error())
		return
	}
	if !d.digester.HasVerbs() {
		// Only count digits so far; the sequence cannot resolve yet.
		return
	}

	modeTable := d.bindingTableFor(mode)
	modeRegistry := d.registryFor(mode)
	key := d.digester.CanonicalKey()

	if name, ok := modeTable[key]; ok {
		d.invoke(modeRegistry[name], name, s, entries)
		return
	}
	if name, ok := d.bindings.Global[key]; ok {
		d.invoke(d.global[name], name, s, entries)
		return
	}

	if hasBindingWithPrefix(modeTable, key) || hasBindingWithPrefix(d.bindings.Global, key) {
		// Incomplete sequence: keep the buffers and await more input.
		return
	}

	// Dead end.
	if textual {
		s.AppendText(d.digester.VerbLiterals())
	} else {
		s.SetStatus("could not recognise that sequence: " + key)
	}
	d.digester.Clear()
}

// invoke runs the resolved action and unconditionally clears the input
// buffers: success and failure both terminate the sequence.
func (d *Dispatcher) invoke(fn Func, name string, s *state.Session, entries []fs.Entry) {
	defer d.digester.Clear()

	if fn == nil {
		s.SetStatus("unknown action: " + name)
		return
	}

	modifier, hasModifier := d.digester.Modifier()
	ctx := &Context{
		Session:     s,
		Entries:     entries,
		Modifier:    modifier,
		HasModifier: hasModifier,
		Env:         d.env,
	}
	if err := fn(ctx); err != nil {
		s.SetStatus(err.Error())
	}
}

func (d *Dispatcher) bindingTableFor(mode state.Mode) map[string]string {
	switch mode.(type) {
	case state.TextInput, state.Overlay:
		return d.bindings.Text
	default:
		return d.bindings.Normal
	}
}

func (d *Dispatcher) registryFor(mode state.Mode) Registry {
	switch mode.(type) {
	case state.TextInput, state.Overlay:
		return d.text
	default:
		return d.normal
	}
}

// hasBindingWithPrefix reports whether any bound sequence strictly extends
// key. Exact matches were tried already, so a plain prefix test suffices.
func hasBindingWithPrefix(table map[string]string, key string) bool {
	for bound := range table {
		if len(bound) > len(key) && strings.HasPrefix(bound, key) {
			return true
		}
	}
	return false
}

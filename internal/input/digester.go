// Package input accumulates raw key events into a modifier string and a
// verb-token sequence, and renders the canonical lookup key used by the
// binding tables.
package input

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// ErrModifierAfterVerb is returned when a count digit arrives after the
// verb sequence has started. The digester clears itself before returning
// it; the half-typed sequence is unrecoverable.
var ErrModifierAfterVerb = errors.New("can not have a count modifier after a verb")

// Digester accumulates key events between dispatches.
type Digester struct {
	modifierDigits string
	verbTokens     []string
}

// Digest folds one key into the buffers. forceVerb must be true when the
// active mode treats typed text literally: it makes digits land in the verb
// sequence so they can be typed as content.
func (d *Digester) Digest(k Key, forceVerb bool) error {
	switch k.Kind {
	case KeyRune:
		if !forceVerb && unicode.IsDigit(k.Rune) {
			if len(d.verbTokens) > 0 {
				d.Clear()
				return ErrModifierAfterVerb
			}
			d.modifierDigits += string(k.Rune)
			return nil
		}
		d.verbTokens = append(d.verbTokens, string(k.Rune))
	case KeyEscape:
		d.verbTokens = append(d.verbTokens, TokenEscape)
	case KeyBackspace:
		d.verbTokens = append(d.verbTokens, TokenBackspace)
	case KeyEnter:
		d.verbTokens = append(d.verbTokens, TokenEnter)
	case KeyIgnored:
	}
	return nil
}

// Clear empties both buffers.
func (d *Digester) Clear() {
	d.modifierDigits = ""
	d.verbTokens = nil
}

// CanonicalKey renders the verb tokens as the space-joined lookup key.
func (d *Digester) CanonicalKey() string {
	return strings.Join(d.verbTokens, " ")
}

// HasVerbs reports whether any verb token has been digested yet.
func (d *Digester) HasVerbs() bool {
	return len(d.verbTokens) > 0
}

// Modifier parses the accumulated digits. ok is false when no digits were
// typed or the value overflows an int.
func (d *Digester) Modifier() (n int, ok bool) {
	if d.modifierDigits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(d.modifierDigits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// VerbLiterals concatenates the verb tokens for flushing a dead-end
// sequence into a text buffer.
func (d *Digester) VerbLiterals() string {
	return strings.Join(d.verbTokens, "")
}

package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Kind classifies a key event for the digester.
type Kind int

const (
	// KeyIgnored covers events the digester has no use for (function keys,
	// arrows, modifiers on their own).
	KeyIgnored Kind = iota
	KeyRune
	KeyEscape
	KeyBackspace
	KeyEnter
)

// Pseudo-tokens emitted for non-character keys. These are the spellings
// binding tables use.
const (
	TokenEscape    = "ESC"
	TokenBackspace = "BACKSPACE"
	TokenEnter     = "ENTER"
)

// Key is a digestible key event.
type Key struct {
	Kind Kind
	Rune rune
}

// FromEvent translates a tcell key event into a Key.
func FromEvent(ev *tcell.EventKey) Key {
	switch ev.Key() {
	case tcell.KeyEscape:
		return Key{Kind: KeyEscape}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Key{Kind: KeyBackspace}
	case tcell.KeyEnter:
		return Key{Kind: KeyEnter}
	case tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModShift != 0 {
			// Normalize shifted alphabetic runes to reflect user intent.
			r = unicode.ToUpper(r)
		}
		return Key{Kind: KeyRune, Rune: r}
	default:
		return Key{Kind: KeyIgnored}
	}
}

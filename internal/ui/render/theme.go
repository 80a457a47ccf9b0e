package render

import "github.com/gdamore/tcell/v2"

// Theme groups the styles the renderer draws with.
type Theme struct {
	Header    tcell.Style
	File      tcell.Style
	Directory tcell.Style
	Cursor    tcell.Style
	Marked    tcell.Style
	Preview   tcell.Style
	Status    tcell.Style
	Prompt    tcell.Style
	PopupBox  tcell.Style
	PopupHead tcell.Style
}

// DefaultTheme returns the default color scheme.
func DefaultTheme() Theme {
	base := tcell.StyleDefault
	box := base.Background(tcell.Color234).Foreground(tcell.Color252)
	return Theme{
		Header:    base.Bold(true),
		File:      base,
		Directory: base.Foreground(tcell.Color33),
		Cursor:    base.Background(tcell.Color33).Foreground(tcell.ColorWhite),
		Marked:    base.Foreground(tcell.Color208),
		Preview:   base.Foreground(tcell.Color246),
		Status:    base.Foreground(tcell.Color203),
		Prompt:    base,
		PopupBox:  box,
		PopupHead: box.Bold(true),
	}
}

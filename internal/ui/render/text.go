package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawText writes text at (x, y), clipping to maxWidth cells. It returns
// the x position after the last cell written.
func drawText(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) int {
	startX := x
	for _, ru := range text {
		w := runewidth.RuneWidth(ru)
		if w <= 0 {
			continue
		}
		if x-startX+w > maxWidth {
			break
		}
		screen.SetContent(x, y, ru, nil, style)
		for pad := 1; pad < w; pad++ {
			screen.SetContent(x+pad, y, ' ', nil, style)
		}
		x += w
	}
	return x
}

// fillLine paints width cells starting at (x, y) with spaces.
func fillLine(screen tcell.Screen, x, y, width int, style tcell.Style) {
	for i := 0; i < width; i++ {
		screen.SetContent(x+i, y, ' ', nil, style)
	}
}

// truncateToWidth fits text into maxWidth cells, replacing the overflow
// with a trailing ellipsis.
func truncateToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if runewidth.StringWidth(text) <= maxWidth {
		return text
	}

	const ellipsis = "…"
	available := maxWidth - runewidth.StringWidth(ellipsis)
	if available <= 0 {
		return ellipsis
	}

	var b strings.Builder
	width := 0
	for _, ru := range text {
		w := runewidth.RuneWidth(ru)
		if w < 0 {
			w = 0
		}
		if width+w > available {
			break
		}
		b.WriteRune(ru)
		width += w
	}
	b.WriteString(ellipsis)
	return b.String()
}

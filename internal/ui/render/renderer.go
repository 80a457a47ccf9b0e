// Package render draws session snapshots onto a tcell screen: header,
// entry list with cursor and delete marks, text preview, the prompt/status
// line, and modal popups.
package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/vindfm/vind/internal/state"
)

const (
	headerRows = 1
	statusRows = 1
	previewGap = 2
	// Below this width the preview pane is not worth the cells it takes.
	minWidthForPreview = 60
)

// ListHeight returns the number of list rows available on a screen of the
// given height. The loop uses it to size the viewport before snapshotting.
func ListHeight(screenHeight int) int {
	h := screenHeight - headerRows - statusRows
	if h < 1 {
		h = 1
	}
	return h
}

// Renderer draws snapshots. It holds no session state of its own.
type Renderer struct {
	screen tcell.Screen
	theme  Theme
}

// NewRenderer creates a renderer bound to screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, theme: DefaultTheme()}
}

// Render draws one snapshot and flushes it to the terminal.
func (r *Renderer) Render(snap state.Snapshot) {
	r.screen.Clear()
	w, h := r.screen.Size()

	listWidth := w
	if w >= minWidthForPreview {
		listWidth = w / 2
	}

	r.drawHeader(snap, w)
	r.drawList(snap, listWidth)
	if listWidth < w {
		r.drawPreview(snap, listWidth+previewGap, w, h)
	}
	r.drawBottomLine(snap, w, h)

	if snap.Popup != nil {
		r.drawBox(snap.Popup.Title, []string{snap.Popup.Body, "", "press any key"}, w, h)
	} else if overlay, ok := snap.Mode.(state.Overlay); ok {
		r.drawBox(overlay.Payload.Title(), overlayLines(overlay, snap.PendingText), w, h)
	}

	r.screen.Show()
}

func (r *Renderer) drawHeader(snap state.Snapshot, w int) {
	x := drawText(r.screen, 0, 0, w, snap.Dir, r.theme.Header)
	fillLine(r.screen, x, 0, w-x, r.theme.Header)
}

func (r *Renderer) drawList(snap state.Snapshot, width int) {
	if len(snap.Entries) == 0 {
		drawText(r.screen, 0, headerRows, width, "(empty)", r.theme.Preview)
		return
	}

	for i, entry := range snap.Visible {
		y := headerRows + i
		idx := snap.Offset + i

		style := r.theme.File
		switch {
		case idx == snap.Cursor:
			style = r.theme.Cursor
		case snap.Marked[entry.Path]:
			style = r.theme.Marked
		case entry.IsDir:
			style = r.theme.Directory
		}

		mark := "  "
		if snap.Marked[entry.Path] {
			mark = "* "
		}
		name := entry.Name
		if entry.IsDir {
			name += "/"
		}

		x := drawText(r.screen, 0, y, width, truncateToWidth(mark+name, width), style)
		if idx == snap.Cursor {
			fillLine(r.screen, x, y, width-x, style)
		}
	}
}

func (r *Renderer) drawPreview(snap state.Snapshot, startX, w, h int) {
	width := w - startX
	if width <= 0 || snap.Preview == "" {
		return
	}
	lines := strings.Split(snap.Preview, "\n")
	maxLines := ListHeight(h)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	for i, line := range lines {
		drawText(r.screen, startX, headerRows+i, width, truncateToWidth(line, width), r.theme.Preview)
	}
}

// drawBottomLine shows, in order of precedence, the transient status, the
// live text prompt, or a plain listing summary.
func (r *Renderer) drawBottomLine(snap state.Snapshot, w, h int) {
	y := h - 1

	if snap.Status != "" {
		drawText(r.screen, 0, y, w, truncateToWidth(snap.Status, w), r.theme.Status)
		return
	}

	if ti, ok := snap.Mode.(state.TextInput); ok {
		prefix := "/"
		if ti.Kind == state.TextRunCommand {
			prefix = ":"
		}
		drawText(r.screen, 0, y, w, truncateToWidth(prefix+snap.PendingText, w), r.theme.Prompt)
		return
	}

	summary := fmt.Sprintf("%d entries", len(snap.Entries))
	if n := len(snap.Marked); n > 0 {
		summary += fmt.Sprintf(", %d marked", n)
	}
	drawText(r.screen, 0, y, w, summary, r.theme.Prompt)
}

// overlayLines builds the popup body for an overlay mode: an input echo
// for textual payloads, the doomed targets for a delete confirmation.
func overlayLines(overlay state.Overlay, pending string) []string {
	if overlay.Payload.Textual() {
		return []string{
			"> " + pending,
			"",
			"ENTER to accept, ESC to cancel",
		}
	}

	var lines []string
	if confirm, ok := overlay.Payload.(state.DeleteConfirmPayload); ok {
		const maxShown = 5
		for i, target := range confirm.Targets {
			if i == maxShown {
				lines = append(lines, fmt.Sprintf("  … and %d more", len(confirm.Targets)-maxShown))
				break
			}
			name := target.Name
			if target.IsDir {
				name += "/"
			}
			lines = append(lines, "  "+name)
		}
	}
	lines = append(lines, "", "ENTER to delete, ESC to cancel")
	return lines
}

// boxWidth sizes a popup to its widest row, measured in terminal cells.
func boxWidth(title string, lines []string, screenWidth int) int {
	width := runewidth.StringWidth(title)
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > width {
			width = w
		}
	}
	width += 4
	if width > screenWidth-2 {
		width = screenWidth - 2
	}
	if width < 20 && screenWidth >= 22 {
		width = 20
	}
	return width
}

// drawBox draws a centered popup with a title row and body lines.
func (r *Renderer) drawBox(title string, lines []string, w, h int) {
	width := boxWidth(title, lines, w)
	height := len(lines) + 3
	if height > h {
		height = h
	}

	x0 := (w - width) / 2
	y0 := (h - height) / 2
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}

	for y := y0; y < y0+height; y++ {
		fillLine(r.screen, x0, y, width, r.theme.PopupBox)
	}
	drawText(r.screen, x0+2, y0+1, width-4, truncateToWidth(title, width-4), r.theme.PopupHead)
	for i, line := range lines {
		drawText(r.screen, x0+2, y0+2+i, width-4, truncateToWidth(line, width-4), r.theme.PopupBox)
	}
}

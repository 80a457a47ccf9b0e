package state

// ScrollOffset computes the first visible row for a list of total entries
// shown in a viewport of height rows, keeping at least slack rows of
// lookahead below the cursor. Slack is clamped into [1, height] so the
// cursor is always inside the visible window. The window never scrolls
// past the point where the last page is fully shown.
func ScrollOffset(total, cursor, height, slack int) int {
	if height <= 0 || total <= height {
		return 0
	}
	if slack < 1 {
		slack = 1
	}
	if slack > height {
		slack = height
	}
	if cursor+slack < height {
		return 0
	}
	off := cursor + slack - height
	if max := total - height; off > max {
		off = max
	}
	return off
}

package tui

import (
	xansi "github.com/charmbracelet/x/ansi"
)

// fitLine truncates a styled line to width terminal columns (ANSI-aware, so
// escape sequences don't count) and marks the cut with an ellipsis.
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return xansi.Cut(s, 0, 1)
	}
	return xansi.Cut(s, 0, width-1) + "…"
}

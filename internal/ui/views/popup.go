package views

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayAt splices the lines of top into base with its top-left corner at
// column x of line y, keeping whatever base shows left and right of the box
func overlayAt(base, top string, x, y int) string {
	baseLines := strings.Split(base, "\n")
	topLines := strings.Split(top, "\n")
	for len(baseLines) < y+len(topLines) {
		baseLines = append(baseLines, "")
	}

	for i, line := range topLines {
		row := baseLines[y+i]
		w := ansi.StringWidth(line)
		left := ansi.Truncate(row, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ""
		if ansi.StringWidth(row) > x+w {
			right = ansi.TruncateLeft(row, x+w, "")
		}
		baseLines[y+i] = left + line + right
	}
	return strings.Join(baseLines, "\n")
}

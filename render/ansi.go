package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	ClearScreen = "\033[2J"
	ClearLine   = "\033[K" // erase to end of line
	CursorHome  = "\033[H"
	CursorHide  = "\033[?25l"
	CursorShow  = "\033[?25h"

	cursorFarCorner = "\033[999C\033[999B"
	cursorReport    = "\033[6n"
)

// CursorTo returns the sequence moving the cursor to a 1-based row and column.
func CursorTo(row, col int) string {
	return fmt.Sprintf("\033[%d;%dH", row, col)
}

// centerPad returns the left padding that centers s in width columns.
func centerPad(s string, width int) int {
	pad := (width - runewidth.StringWidth(s)) / 2
	if pad < 0 {
		return 0
	}
	return pad
}

// clip cuts s to at most width columns.
func clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "")
}

// StripANSI removes ANSI escape sequences from a string.
func StripANSI(s string) string {
	var sb strings.Builder
	inEscape := false

	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '~' {
				inEscape = false
			}
			continue
		}
		sb.WriteRune(r)
	}

	return sb.String()
}

// Package wrap splits styled text into width-limited physical lines.
package wrap

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Lines wraps text to width visible cells and returns the physical lines.
// ANSI escape sequences do not count toward the width. An empty string
// yields one empty line so that blank logical lines still occupy a row.
//
// A grapheme wider than width (a double-width rune at width 1) cannot fit
// any line and is emitted on a line of its own.
func Lines(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	// A bare \r would move the cursor on a real terminal.
	text = strings.ReplaceAll(text, "\r", "")

	if text == "" {
		return []string{""}
	}

	var out []string
	for _, logical := range strings.Split(text, "\n") {
		out = append(out, wrapLine(logical, width)...)
	}
	return out
}

// wrapLine wraps a single logical line. ansi.Wrap can overrun width around
// hyphens and leave blank rows behind, so overlong rows are hard wrapped and
// zero-width rows are folded into their neighbour.
func wrapLine(line string, width int) []string {
	if ansi.StringWidth(line) <= width {
		return []string{line}
	}

	var out []string
	var carry string
	for _, row := range strings.Split(ansi.Wrap(line, width, ""), "\n") {
		if ansi.StringWidth(row) > width {
			row = ansi.Hardwrap(row, width, true)
		}
		for _, part := range strings.Split(row, "\n") {
			if ansi.StringWidth(part) == 0 {
				carry += part
				continue
			}
			out = append(out, carry+part)
			carry = ""
		}
	}

	if len(out) == 0 {
		return []string{carry}
	}
	out[len(out)-1] += carry
	return out
}

// Width returns the number of terminal cells text occupies.
func Width(text string) int {
	return ansi.StringWidth(text)
}

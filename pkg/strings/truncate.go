// Package strings holds text helpers for CLI output.
package strings

import (
	"strings"
)

// minCellWidth leaves room for one character plus "...".
const minCellWidth = 4

// Cell flattens s to a single line, collapsing runs of whitespace, and cuts it
// to at most width runes with a trailing "..." when it is too long. Widths
// below 4 are raised to 4.
func Cell(s string, width int) string {
	if width < minCellWidth {
		width = minCellWidth
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-3]) + "..."
	}
	return s
}

// Argv renders a command line for display. Arguments containing whitespace
// are double quoted so the boundaries stay visible.
func Argv(args []string) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		if arg == "" || strings.ContainsAny(arg, " \t\n") {
			parts[i] = `"` + arg + `"`
			continue
		}
		parts[i] = arg
	}
	return strings.Join(parts, " ")
}

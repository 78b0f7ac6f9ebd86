// Package render provides text helpers for fixed-width terminal rows.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Sanitize drops control characters and invalid UTF-8 from catalog
// metadata and turns non-breaking spaces into plain spaces.
func Sanitize(s string) string {
	if utf8.ValidString(s) && strings.IndexFunc(s, needsMapping) < 0 {
		return s
	}
	s = strings.ToValidUTF8(s, "")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\u00a0':
			return ' '
		case r != '\t' && unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, s)
}

func needsMapping(r rune) bool {
	return r == '\u00a0' || (r != '\t' && unicode.IsControl(r))
}

// Truncate shortens s to maxWidth cells, ending with "..." when cut.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "...")
}

// Pad fills s with spaces up to width cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// TruncateAndPad returns s at exactly width cells.
func TruncateAndPad(s string, width int) string {
	return Pad(Truncate(s, width), width)
}

// Columns lays out left and a right-aligned right in exactly width cells.
// The left part is truncated first; right is dropped when nothing else fits.
func Columns(left, right string, width int) string {
	right = Sanitize(right)
	rw := runewidth.StringWidth(right)
	if right == "" || rw+2 > width {
		return TruncateAndPad(left, width)
	}
	return TruncateAndPad(left, width-rw-1) + " " + right
}

// Separator returns a horizontal line of width cells.
func Separator(width int) string {
	return strings.Repeat("─", max(width, 0))
}

// Divider returns a separator with label inset near the left edge.
func Divider(label string, width int) string {
	if label == "" {
		return Separator(width)
	}
	head := "── " + Truncate(label, max(width-4, 0)) + " "
	return head + Separator(width-runewidth.StringWidth(head))
}

// EmptyLine returns width spaces.
func EmptyLine(width int) string {
	return strings.Repeat(" ", max(width, 0))
}

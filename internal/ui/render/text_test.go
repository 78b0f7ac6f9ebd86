package render

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean string untouched", "Bohemian Rhapsody", "Bohemian Rhapsody"},
		{"control characters dropped", "Line\x00One\x1b", "LineOne"},
		{"tab kept", "a\tb", "a\tb"},
		{"nbsp becomes space", "a\u00a0b", "a b"},
		{"invalid utf8 dropped", "caf\xe9", "caf"},
		{"wide characters kept", "東京", "東京"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"cut with ellipsis", "hello world", 8, "hello..."},
		{"empty", "", 4, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxWidth); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateAndPad_ExactWidth(t *testing.T) {
	for _, s := range []string{"", "short", "a much longer title than fits", "東京の夜"} {
		if w := runewidth.StringWidth(TruncateAndPad(s, 12)); w != 12 {
			t.Errorf("TruncateAndPad(%q, 12) width = %d", s, w)
		}
	}
}

func TestColumns(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		right string
		width int
		want  string
	}{
		{"both fit", "Song", "3:45", 12, "Song    3:45"},
		{"left truncated first", "A very long song", "3:45", 12, "A ve... 3:45"},
		{"no right", "Song", "", 6, "Song  "},
		{"right dropped when too narrow", "Song", "12:34:56", 8, "Song    "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Columns(tt.left, tt.right, tt.width)
			if got != tt.want {
				t.Errorf("Columns() = %q, want %q", got, tt.want)
			}
			if w := runewidth.StringWidth(got); w != tt.width {
				t.Errorf("Columns() width = %d, want %d", w, tt.width)
			}
		})
	}
}

func TestDivider(t *testing.T) {
	got := Divider("Up next", 20)
	if w := runewidth.StringWidth(got); w != 20 {
		t.Errorf("Divider width = %d, want 20", w)
	}
	if got[:len("── Up next ")] != "── Up next " {
		t.Errorf("Divider = %q", got)
	}

	if Divider("", 3) != "───" {
		t.Errorf("empty label should give a plain separator")
	}
}

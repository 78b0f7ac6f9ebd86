// Package cursor tracks a selection and scroll offset over a list whose
// items do not map one-to-one to display lines.
package cursor

// Cursor holds the selected item and the first visible line. Item counts
// and viewport heights change between frames, so they are passed in rather
// than stored.
type Cursor struct {
	pos    int // selected item
	offset int // first visible line
	margin int // lines kept visible around the selected line
}

// New creates a cursor keeping margin lines around the selection.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Pos returns the selected item.
func (c Cursor) Pos() int {
	return c.pos
}

// Offset returns the first visible line.
func (c Cursor) Offset() int {
	return c.offset
}

// Move shifts the selection by delta within n items.
func (c *Cursor) Move(delta, n int) {
	c.Jump(c.pos+delta, n)
}

// Jump selects item pos, clamped to n items.
func (c *Cursor) Jump(pos, n int) {
	if n <= 0 {
		c.pos = 0
		return
	}
	c.pos = clamp(pos, n-1)
}

// Clamp keeps the selection inside n items after the list shrank.
// Returns true if the selection moved.
func (c *Cursor) Clamp(n int) bool {
	old := c.pos
	c.Jump(c.pos, n)
	return c.pos != old
}

// HandleKey applies the common list navigation keys over n items, page
// being the viewport height. Returns true if the key was handled.
func (c *Cursor) HandleKey(key string, n, page int) bool {
	switch key {
	case "j", "down":
		c.Move(1, n)
	case "k", "up":
		c.Move(-1, n)
	case "g", "home":
		c.Jump(0, n)
		c.offset = 0
	case "G", "end":
		c.Jump(n-1, n)
	case "ctrl+d":
		c.Move(max(page/2, 1), n)
	case "ctrl+u":
		c.Move(-max(page/2, 1), n)
	default:
		return false
	}
	return true
}

// Scroll adjusts the offset so that line stays visible with the margin,
// given the total line count and the viewport height.
func (c *Cursor) Scroll(line, lines, height int) {
	if height <= 0 || lines == 0 {
		c.offset = 0
		return
	}
	margin := min(c.margin, (height-1)/2)

	if line < c.offset+margin {
		c.offset = line - margin
	}
	if line >= c.offset+height-margin {
		c.offset = line - height + margin + 1
	}
	c.offset = clamp(c.offset, max(lines-height, 0))
}

// VisibleRange returns the visible lines [start, end).
func (c Cursor) VisibleRange(lines, height int) (start, end int) {
	if lines == 0 || height <= 0 {
		return 0, 0
	}
	start = min(c.offset, lines)
	return start, min(start+height, lines)
}

func clamp(v, maxVal int) int {
	return max(0, min(v, maxVal))
}

package cursor

import "testing"

func TestJumpAndMove(t *testing.T) {
	tests := []struct {
		name  string
		start int
		delta int
		n     int
		want  int
	}{
		{"down", 0, 1, 5, 1},
		{"up clamps", 1, -3, 5, 0},
		{"down clamps", 3, 9, 5, 4},
		{"empty list", 3, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(0)
			c.Jump(tt.start, 10)
			c.Move(tt.delta, tt.n)
			if c.Pos() != tt.want {
				t.Errorf("pos = %d, want %d", c.Pos(), tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	c := New(0)
	c.Jump(7, 10)

	if !c.Clamp(3) {
		t.Error("Clamp(3) should report a move")
	}
	if c.Pos() != 2 {
		t.Errorf("pos = %d, want 2", c.Pos())
	}
	if c.Clamp(3) {
		t.Error("second Clamp(3) should not move")
	}
}

func TestHandleKey(t *testing.T) {
	tests := []struct {
		key     string
		start   int
		want    int
		handled bool
	}{
		{"j", 2, 3, true},
		{"down", 2, 3, true},
		{"k", 2, 1, true},
		{"g", 5, 0, true},
		{"G", 0, 9, true},
		{"ctrl+d", 0, 2, true},
		{"ctrl+u", 5, 3, true},
		{"x", 4, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c := New(0)
			c.Jump(tt.start, 10)
			handled := c.HandleKey(tt.key, 10, 4)
			if handled != tt.handled {
				t.Errorf("handled = %v, want %v", handled, tt.handled)
			}
			if c.Pos() != tt.want {
				t.Errorf("pos = %d, want %d", c.Pos(), tt.want)
			}
		})
	}
}

func TestScroll(t *testing.T) {
	tests := []struct {
		name       string
		margin     int
		offset     int
		line       int
		lines      int
		height     int
		wantOffset int
	}{
		{"visible line keeps offset", 1, 0, 2, 20, 5, 0},
		{"below viewport scrolls down", 1, 0, 6, 20, 5, 3},
		{"above viewport scrolls up", 1, 10, 4, 20, 5, 3},
		{"clamped to last page", 1, 0, 19, 20, 5, 15},
		{"short list never scrolls", 2, 0, 3, 4, 10, 0},
		{"margin capped by height", 5, 0, 3, 20, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.margin)
			c.offset = tt.offset
			c.Scroll(tt.line, tt.lines, tt.height)
			if c.Offset() != tt.wantOffset {
				t.Errorf("offset = %d, want %d", c.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestVisibleRange(t *testing.T) {
	c := New(0)
	c.offset = 3

	start, end := c.VisibleRange(10, 4)
	if start != 3 || end != 7 {
		t.Errorf("VisibleRange = [%d,%d), want [3,7)", start, end)
	}

	start, end = c.VisibleRange(5, 4)
	if start != 3 || end != 5 {
		t.Errorf("VisibleRange = [%d,%d), want [3,5)", start, end)
	}

	start, end = c.VisibleRange(0, 4)
	if start != 0 || end != 0 {
		t.Errorf("VisibleRange on empty = [%d,%d), want [0,0)", start, end)
	}
}

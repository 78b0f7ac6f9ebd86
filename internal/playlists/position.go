package playlists

import "sort"

// positionCalculator plans the row updates that move a selection of
// entries by delta inside one membership table.
type positionCalculator struct {
	sorted []int // sorted positions to move
	count  int   // total entry count
	delta  int   // movement amount (negative = up, positive = down)
}

func newPositionCalculator(positions []int, count, delta int) *positionCalculator {
	sorted := make([]int, len(positions))
	copy(sorted, positions)
	sort.Ints(sorted)
	return &positionCalculator{sorted: sorted, count: count, delta: delta}
}

// canMove returns false when there is nothing to move or the selection
// would leave [0, count).
func (c *positionCalculator) canMove() bool {
	if len(c.sorted) == 0 || c.delta == 0 {
		return false
	}
	if c.sorted[0] < 0 || c.sorted[len(c.sorted)-1] >= c.count {
		return false
	}
	if c.delta < 0 {
		return c.sorted[0]+c.delta >= 0
	}
	return c.sorted[len(c.sorted)-1]+c.delta < c.count
}

// newPositions returns the positions after the move, in input order.
func (c *positionCalculator) newPositions(originalPositions []int) []int {
	result := make([]int, len(originalPositions))
	for i, pos := range originalPositions {
		result[i] = pos + c.delta
	}
	return result
}

// shiftRange is a run of unselected entries that slides by one.
type shiftRange struct {
	start int // inclusive
	end   int // exclusive
	delta int // +1 or -1
}

func (c *positionCalculator) shiftRanges() []shiftRange {
	if !c.canMove() {
		return nil
	}

	var ranges []shiftRange
	if c.delta < 0 {
		for _, pos := range c.sorted {
			ranges = append(ranges, shiftRange{start: pos + c.delta, end: pos, delta: 1})
		}
	} else {
		for i := len(c.sorted) - 1; i >= 0; i-- {
			pos := c.sorted[i]
			ranges = append(ranges, shiftRange{start: pos + 1, end: pos + c.delta + 1, delta: -1})
		}
	}
	return ranges
}

// positionUpdate rewrites the row at from to position to.
type positionUpdate struct {
	from, to int
}

// steps returns single-row updates that perform the move without two rows
// ever sharing a position. The selection is parked at negative positions
// while the others slide.
func (c *positionCalculator) steps() []positionUpdate {
	if !c.canMove() {
		return nil
	}

	var out []positionUpdate
	for i, pos := range c.sorted {
		out = append(out, positionUpdate{from: pos, to: -(i + 1)})
	}
	for _, r := range c.shiftRanges() {
		if r.delta > 0 {
			for pos := r.end - 1; pos >= r.start; pos-- {
				out = append(out, positionUpdate{from: pos, to: pos + 1})
			}
		} else {
			for pos := r.start; pos < r.end; pos++ {
				out = append(out, positionUpdate{from: pos, to: pos - 1})
			}
		}
	}
	for i, pos := range c.sorted {
		out = append(out, positionUpdate{from: -(i + 1), to: pos + c.delta})
	}
	return out
}

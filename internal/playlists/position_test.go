package playlists

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionCalculator_canMove(t *testing.T) {
	tests := []struct {
		name      string
		positions []int
		count     int
		delta     int
		want      bool
	}{
		{"empty positions", []int{}, 5, 1, false},
		{"zero delta", []int{1, 2}, 5, 0, false},
		{"move up valid", []int{2, 3}, 5, -1, true},
		{"move up at boundary", []int{0, 1}, 5, -1, false},
		{"move down valid", []int{1, 2}, 5, 1, true},
		{"move down at boundary", []int{3, 4}, 5, 1, false},
		{"unsorted input", []int{3, 1, 2}, 5, -1, true},
		{"position out of range", []int{7}, 5, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := newPositionCalculator(tt.positions, tt.count, tt.delta)
			assert.Equal(t, tt.want, calc.canMove())
		})
	}
}

func TestPositionCalculator_newPositions(t *testing.T) {
	calc := newPositionCalculator([]int{3, 1}, 5, -1)
	assert.Equal(t, []int{2, 0}, calc.newPositions([]int{3, 1}))
}

func TestPositionCalculator_shiftRanges(t *testing.T) {
	tests := []struct {
		name      string
		positions []int
		delta     int
		want      []shiftRange
	}{
		{"cannot move", []int{0}, -1, nil},
		{"up single", []int{2}, -1, []shiftRange{{1, 2, 1}}},
		{"up by two", []int{3}, -2, []shiftRange{{1, 3, 1}}},
		{"down single", []int{2}, 1, []shiftRange{{3, 4, -1}}},
		{"down multiple", []int{1, 2}, 1, []shiftRange{{3, 4, -1}, {2, 3, -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := newPositionCalculator(tt.positions, 5, tt.delta)
			assert.Equal(t, tt.want, calc.shiftRanges())
		})
	}
}

// applySteps runs the planned updates on an in-memory list, failing on any
// position collision the way UNIQUE(playlist_id, position) would.
func applySteps(t *testing.T, n int, steps []positionUpdate) []int {
	t.Helper()
	at := make(map[int]int, n) // position -> original index
	for i := range n {
		at[i] = i
	}
	for _, s := range steps {
		v, ok := at[s.from]
		if !ok {
			t.Fatalf("no row at %d", s.from)
		}
		if _, taken := at[s.to]; taken {
			t.Fatalf("position %d already taken", s.to)
		}
		delete(at, s.from)
		at[s.to] = v
	}
	out := make([]int, n)
	for i := range n {
		v, ok := at[i]
		if !ok {
			t.Fatalf("hole at %d", i)
		}
		out[i] = v
	}
	return out
}

func TestPositionCalculator_steps(t *testing.T) {
	tests := []struct {
		name      string
		positions []int
		delta     int
		want      []int
	}{
		{"up one", []int{2}, -1, []int{0, 2, 1, 3, 4}},
		{"down one", []int{1}, 1, []int{0, 2, 1, 3, 4}},
		{"block up", []int{2, 3}, -1, []int{0, 2, 3, 1, 4}},
		{"block down by two", []int{0, 1}, 2, []int{2, 3, 0, 1, 4}},
		{"scattered up", []int{4, 2}, -1, []int{0, 2, 1, 4, 3}},
		{"blocked", []int{0}, -1, []int{0, 1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := newPositionCalculator(tt.positions, 5, tt.delta)
			assert.Equal(t, tt.want, applySteps(t, 5, calc.steps()))
		})
	}
}

func TestPositionCalculator_doesNotMutateInput(t *testing.T) {
	positions := []int{3, 1, 2}

	newPositionCalculator(positions, 5, -1).steps()

	assert.Equal(t, []int{3, 1, 2}, positions)
}

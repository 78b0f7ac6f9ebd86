package testutil

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "plain", StripANSI("\x1b[1;35mplain\x1b[0m"))
}

func TestLinesAndFindLine(t *testing.T) {
	out := "one\n\x1b[2mtwo\x1b[0m\n\n  \n"

	assert.Equal(t, []string{"one", "two"}, Lines(out))
	assert.Equal(t, "two", FindLine(out, "tw"))
	assert.Empty(t, FindLine(out, "three"))
}

func TestKey(t *testing.T) {
	for _, name := range []string{"enter", "esc", "up", "down", "left", "right", "backspace", "delete", " ", "j", "G"} {
		assert.Equal(t, name, Key(name).String())
	}
}

type pingMsg int

func TestRun_FlattensBatches(t *testing.T) {
	cmd := tea.Batch(
		func() tea.Msg { return pingMsg(1) },
		tea.Batch(func() tea.Msg { return pingMsg(2) }, nil),
		func() tea.Msg { return nil },
	)

	assert.ElementsMatch(t, []tea.Msg{pingMsg(1), pingMsg(2)}, Run(cmd))
	assert.Nil(t, Run(nil))
}

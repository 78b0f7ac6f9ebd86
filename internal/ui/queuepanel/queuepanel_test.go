package queuepanel

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/upnext/internal/media"
	"github.com/llehouerou/upnext/internal/player"
	"github.com/llehouerou/upnext/internal/queueview"
	"github.com/llehouerou/upnext/internal/suggest"
	"github.com/llehouerou/upnext/internal/ui/action"
	"github.com/llehouerou/upnext/internal/ui/testutil"
)

type stubCatalog struct {
	mu    sync.Mutex
	calls int
	items []media.Item
}

func (c *stubCatalog) Next(context.Context, media.Item) ([]media.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.items, nil
}

func song(id string) media.Item {
	return media.Item{ID: id, Title: "Song " + id, Artist: "Artist " + id, DurationText: "3:45", Kind: media.KindMusic}
}

type harness struct {
	engine  *player.Memory
	catalog *stubCatalog
	panel   Model
}

func newHarness(t *testing.T, width, height int, items ...media.Item) *harness {
	t.Helper()
	h := &harness{engine: player.NewMemory(), catalog: &stubCatalog{}}
	h.engine.SetItems(items, 0)

	view := queueview.New(h.engine, suggest.NewFetcher(h.catalog, zerolog.Nop()), nil, queueview.Options{SwipeToRemove: true})
	h.panel = New(context.Background(), view)
	h.panel.SetFocused(true)
	h.panel.SetSize(width, height)
	return h
}

// send delivers msg and runs the resulting commands, feeding suggestion
// results back. It returns the other messages produced.
func (h *harness) send(msg tea.Msg) []tea.Msg {
	var cmd tea.Cmd
	h.panel, cmd = h.panel.Update(msg)

	var out []tea.Msg
	for _, m := range testutil.Run(cmd) {
		if res, ok := m.(SuggestionsMsg); ok {
			out = append(out, h.send(res)...)
			continue
		}
		out = append(out, m)
	}
	return out
}

func (h *harness) key(k string) []tea.Msg {
	return h.send(testutil.Key(k))
}

func (h *harness) ids() []string {
	var out []string
	for _, w := range h.engine.Windows() {
		out = append(out, w.Item.ID)
	}
	return out
}

func actions(msgs []tea.Msg) []action.Action {
	var out []action.Action
	for _, m := range msgs {
		if a, ok := m.(action.Msg); ok {
			out = append(out, a.Action)
		}
	}
	return out
}

func TestView_EmptyQueue(t *testing.T) {
	h := newHarness(t, 60, 12)
	h.send(SyncMsg{})

	out := testutil.StripANSI(h.panel.View())
	assert.Contains(t, out, "Queue (0/0)")
	assert.Contains(t, out, "Nothing queued")
	assert.Contains(t, out, "empty")
	assert.NotContains(t, out, "Up next")
}

func TestView_ZeroSize(t *testing.T) {
	h := newHarness(t, 0, 0, song("S1"))
	assert.Empty(t, h.panel.View())
}

func TestView_RowsAndPlaceholders(t *testing.T) {
	h := newHarness(t, 70, 14, song("S1"), song("S2"), song("S3"))
	h.panel.view.Sync()

	out := h.panel.View()
	assert.Contains(t, testutil.FindLine(out, "Song S1"), "▶")
	assert.NotContains(t, testutil.FindLine(out, "Song S2"), "▶")
	assert.Contains(t, testutil.FindLine(out, "Song S2"), "3:45")
	assert.Contains(t, testutil.StripANSI(out), "Queue (1/3)")
	assert.Contains(t, testutil.StripANSI(out), "3 songs")
	assert.NotEmpty(t, testutil.FindLine(out, "Up next"))
	assert.NotEmpty(t, testutil.FindLine(out, "░"), "pending suggestions show placeholders")
	assert.Contains(t, testutil.FindLine(out, "Queue"), "⏸")
}

func TestUpdate_FetchesAndShowsSuggestions(t *testing.T) {
	h := newHarness(t, 70, 14, song("S1"), song("S2"), song("S3"))
	h.catalog.items = []media.Item{song("S2"), song("S4"), song("S5")}

	h.send(SyncMsg{})

	assert.Equal(t, 1, h.catalog.calls)
	out := h.panel.View()
	assert.NotEmpty(t, testutil.FindLine(out, "+ Song S4"))
	assert.NotEmpty(t, testutil.FindLine(out, "+ Song S5"))
	assert.Empty(t, testutil.FindLine(out, "+ Song S2"))
	assert.Empty(t, testutil.FindLine(out, "░"))

	h.send(SyncMsg{})
	assert.Equal(t, 1, h.catalog.calls, "same active entry is fetched once")
}

func TestUpdate_NoSuggestionsNotice(t *testing.T) {
	h := newHarness(t, 70, 14, song("S1"))
	h.send(SyncMsg{})

	assert.NotEmpty(t, testutil.FindLine(h.panel.View(), "No suggestions"))
}

func TestUpdate_FetchWaitsUntilSectionVisible(t *testing.T) {
	items := make([]media.Item, 12)
	for i := range items {
		items[i] = song(string(rune('a' + i)))
	}
	// 10 rows tall leaves 4 list lines.
	h := newHarness(t, 60, 10, items...)
	h.catalog.items = []media.Item{song("x")}

	h.send(SyncMsg{})
	assert.Zero(t, h.catalog.calls)

	h.key("G")
	assert.Equal(t, 1, h.catalog.calls)
}

func TestUpdate_EnterPlaysRow(t *testing.T) {
	h := newHarness(t, 60, 14, song("S1"), song("S2"))
	h.send(SyncMsg{})

	h.key("j")
	msgs := h.key("enter")

	assert.Equal(t, 1, h.engine.CurrentIndex())
	assert.True(t, h.engine.PlayWhenReady())
	assert.Contains(t, actions(msgs), action.Action(QueueChanged{}))
	assert.Contains(t, testutil.FindLine(h.panel.View(), "Queue"), "♪")
}

func TestUpdate_RemovePlayingRefused(t *testing.T) {
	h := newHarness(t, 60, 14, song("S1"), song("S2"))
	h.send(SyncMsg{})

	acts := actions(h.key("d"))
	require.Len(t, acts, 1)
	failed, ok := acts[0].(Failed)
	require.True(t, ok)
	assert.ErrorIs(t, failed.Err, queueview.ErrRemovePlaying)
	assert.Equal(t, []string{"S1", "S2"}, h.ids())

	h.key("j")
	h.key("d")
	assert.Equal(t, []string{"S1"}, h.ids())
}

func TestUpdate_DragAndDrop(t *testing.T) {
	h := newHarness(t, 60, 14, song("S1"), song("S2"), song("S3"))
	h.send(SyncMsg{})

	h.key(" ")
	h.key("j")
	h.key("j")

	out := h.panel.View()
	assert.Contains(t, testutil.StripANSI(out), "enter: drop")
	assert.Equal(t, []string{"S1", "S2", "S3"}, h.ids(), "engine untouched while dragging")
	lines := testutil.Lines(out)
	require.Greater(t, len(lines), 5)
	assert.Contains(t, lines[5], "Song S1", "dragged row drawn at its target")

	acts := actions(h.key("enter"))
	assert.Equal(t, []action.Action{QueueChanged{}}, acts)
	assert.Equal(t, []string{"S2", "S3", "S1"}, h.ids())
	assert.False(t, h.panel.view.Dragging())
	assert.Equal(t, 2, h.panel.cursor.Pos(), "cursor stays on the dropped entry")
}

func TestUpdate_DragCancel(t *testing.T) {
	h := newHarness(t, 60, 14, song("S1"), song("S2"))
	h.send(SyncMsg{})

	h.key(" ")
	h.key("j")
	assert.Empty(t, actions(h.key("esc")))

	assert.False(t, h.panel.view.Dragging())
	assert.Equal(t, []string{"S1", "S2"}, h.ids())
}

func TestUpdate_SuggestionKeys(t *testing.T) {
	h := newHarness(t, 70, 16, song("S1"), song("S2"))
	h.catalog.items = []media.Item{song("A"), song("B")}
	h.send(SyncMsg{})

	h.key("G") // last suggestion: B
	h.key("e")
	assert.Equal(t, []string{"S1", "S2", "B"}, h.ids())

	h.key("G") // only A is left
	h.key("n")
	assert.Equal(t, []string{"S1", "A", "S2", "B"}, h.ids())
	assert.NotEmpty(t, testutil.FindLine(h.panel.View(), "No suggestions"))
}

func TestUpdate_PlaylistMenuScope(t *testing.T) {
	h := newHarness(t, 70, 16, song("S1"), song("S2"))
	h.catalog.items = []media.Item{song("A")}
	h.send(SyncMsg{})

	acts := actions(h.key("p"))
	require.Len(t, acts, 1)
	assert.Equal(t, OpenPlaylistMenu{Scope: queueview.WholeQueue(), Label: "2 entries"}, acts[0])

	h.key("G")
	acts = actions(h.key("p"))
	require.Len(t, acts, 1)
	assert.Equal(t, OpenPlaylistMenu{Scope: queueview.Suggestion(0), Label: "Song A"}, acts[0])
}

func TestUpdate_KeepLocalAndListKeys(t *testing.T) {
	h := newHarness(t, 70, 16, song("S1"), song("S2"))
	h.catalog.items = []media.Item{song("A")}
	h.send(SyncMsg{})

	h.key("j")
	assert.Equal(t, []action.Action{KeepLocal{Item: song("S2")}}, actions(h.key("m")))

	h.key("G")
	assert.Equal(t, []action.Action{KeepLocal{Item: song("A")}}, actions(h.key("m")))

	assert.Equal(t, []action.Action{OpenLocalSongs{}}, actions(h.key("L")))
	assert.Equal(t, []action.Action{OpenPlaylists{}}, actions(h.key("P")))
}

func TestUpdate_KeepLocalNeedsSelection(t *testing.T) {
	h := newHarness(t, 70, 16)
	assert.Empty(t, actions(h.key("m")))
}

func TestUpdate_LoopAndShuffle(t *testing.T) {
	h := newHarness(t, 60, 14, song("S1"), song("S2"), song("S3"))
	h.send(SyncMsg{})

	h.key("l")
	assert.Equal(t, player.RepeatAll, h.engine.RepeatMode())
	out := testutil.StripANSI(h.panel.View())
	assert.Contains(t, out, "3 songs · loop")
	assert.Contains(t, testutil.FindLine(out, "Queue"), "↻")

	h.key("j")
	h.key("enter")
	h.key("s")
	assert.Equal(t, 0, h.engine.CurrentIndex())
	assert.Equal(t, "S2", h.engine.Windows()[0].Item.ID)
	assert.Equal(t, 0, h.panel.cursor.Pos())
}

func TestView_EpisodeCount(t *testing.T) {
	h := newHarness(t, 60, 14,
		media.Item{ID: "E1", Title: "One", Kind: media.KindEpisode, PodcastID: "P"},
		media.Item{ID: "E2", Title: "Two", Kind: media.KindEpisode, PodcastID: "P"},
	)
	h.send(SyncMsg{})

	out := testutil.StripANSI(h.panel.View())
	assert.Contains(t, out, "2 episodes")
	assert.Contains(t, out, "No suggestions")
	assert.Zero(t, h.catalog.calls)
}

func TestUpdate_IgnoresKeysWhenUnfocused(t *testing.T) {
	h := newHarness(t, 60, 14, song("S1"), song("S2"))
	h.send(SyncMsg{})
	h.panel.SetFocused(false)

	h.key("j")
	h.key("enter")

	assert.Equal(t, 0, h.engine.CurrentIndex())
	assert.False(t, strings.Contains(testutil.StripANSI(h.panel.View()), "♪"))
}

package player

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/upnext/internal/media"
)

func songs(ids ...string) []media.Item {
	items := make([]media.Item, len(ids))
	for i, id := range ids {
		items[i] = media.Item{ID: id, Title: "Song " + id, Kind: media.KindMusic}
	}
	return items
}

func ids(ws []Window) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Item.ID
	}
	return out
}

// recorder counts listener callbacks.
type recorder struct {
	timelines   [][]Window
	transitions []*Window
	playFlags   []bool
	states      []State
	errs        []error
}

func (r *recorder) listener() Listener {
	return Listener{
		TimelineChanged:      func(ws []Window) { r.timelines = append(r.timelines, ws) },
		MediaItemTransition:  func(w *Window) { r.transitions = append(r.transitions, w) },
		PlayWhenReadyChanged: func(v bool) { r.playFlags = append(r.playFlags, v) },
		PlaybackStateChanged: func(s State) { r.states = append(r.states, s) },
		PlayerError:          func(err error) { r.errs = append(r.errs, err) },
	}
}

func TestNewMemory_Empty(t *testing.T) {
	m := NewMemory()

	assert.Equal(t, -1, m.CurrentIndex())
	assert.Empty(t, m.Windows())
	assert.Equal(t, StateIdle, m.State())
	assert.False(t, m.PlayWhenReady())
}

func TestMemory_AddItems_SetsCurrentAndNotifies(t *testing.T) {
	m := NewMemory()
	var r recorder
	m.AddListener(r.listener())

	m.AddItems(songs("a", "b")...)

	assert.Equal(t, 0, m.CurrentIndex())
	require.Len(t, r.timelines, 1)
	assert.Equal(t, []string{"a", "b"}, ids(r.timelines[0]))
	require.Len(t, r.transitions, 1)
	assert.Equal(t, "a", r.transitions[0].Item.ID)
	assert.Equal(t, []State{StateReady}, r.states)
}

func TestMemory_WindowsHaveStableUIDsAndIndices(t *testing.T) {
	m := NewMemory()
	m.AddItems(songs("a", "b", "c")...)
	before := m.Windows()

	require.NoError(t, m.Move(0, 2))
	after := m.Windows()

	assert.Equal(t, []string{"b", "c", "a"}, ids(after))
	assert.Equal(t, before[0].UID, after[2].UID)
	for i, w := range after {
		assert.Equal(t, i, w.Index)
	}
}

func TestMemory_AddNext_InsertsAfterCurrent(t *testing.T) {
	m := NewMemory()
	m.AddItems(songs("a", "b", "c")...)
	require.NoError(t, m.SeekToDefaultPosition(1))

	m.AddNext(songs("x")...)

	assert.Equal(t, []string{"a", "b", "x", "c"}, ids(m.Windows()))
	assert.Equal(t, 1, m.CurrentIndex())
}

func TestMemory_Move_CurrentFollowsEntry(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		from, to int
		want     int
	}{
		{"move current", 1, 1, 3, 3},
		{"move before current to after", 2, 0, 3, 1},
		{"move after current to before", 1, 3, 0, 2},
		{"unrelated move", 0, 2, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMemory()
			m.AddItems(songs("a", "b", "c", "d")...)
			require.NoError(t, m.SeekToDefaultPosition(tt.current))
			currentID := m.Windows()[tt.current].Item.ID

			require.NoError(t, m.Move(tt.from, tt.to))

			assert.Equal(t, tt.want, m.CurrentIndex())
			assert.Equal(t, currentID, m.Windows()[m.CurrentIndex()].Item.ID)
		})
	}
}

func TestMemory_Move_OutOfRange(t *testing.T) {
	m := NewMemory()
	m.AddItems(songs("a", "b")...)

	err := m.Move(0, 5)

	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	assert.Equal(t, []string{"a", "b"}, ids(m.Windows()))
}

func TestMemory_RemoveAt(t *testing.T) {
	m := NewMemory()
	m.AddItems(songs("a", "b", "c")...)
	require.NoError(t, m.SeekToDefaultPosition(2))
	var r recorder
	m.AddListener(r.listener())

	require.NoError(t, m.RemoveAt(0))
	assert.Equal(t, 1, m.CurrentIndex())
	assert.Empty(t, r.transitions, "current entry did not change")

	// Removing the current (last) entry clamps to the new last entry.
	require.NoError(t, m.RemoveAt(1))
	assert.Equal(t, 0, m.CurrentIndex())
	require.Len(t, r.transitions, 1)
	assert.Equal(t, "b", r.transitions[0].Item.ID)

	require.NoError(t, m.RemoveAt(0))
	assert.Equal(t, -1, m.CurrentIndex())
	assert.Equal(t, StateIdle, m.State())
	require.Len(t, r.transitions, 2)
	assert.Nil(t, r.transitions[1])

	assert.True(t, errors.Is(m.RemoveAt(0), ErrIndexOutOfRange))
}

func TestMemory_PlayPause_NotifiesOnChangeOnly(t *testing.T) {
	m := NewMemory()
	var r recorder
	m.AddListener(r.listener())

	m.Play()
	m.Play()
	m.Pause()

	assert.Equal(t, []bool{true, false}, r.playFlags)
}

func TestMemory_NextAndPrevious(t *testing.T) {
	m := NewMemory()
	m.AddItems(songs("a", "b")...)

	require.NoError(t, m.Next())
	assert.Equal(t, 1, m.CurrentIndex())
	assert.True(t, errors.Is(m.Next(), ErrIndexOutOfRange))

	m.SetRepeatMode(RepeatAll)
	require.NoError(t, m.Next())
	assert.Equal(t, 0, m.CurrentIndex())
	require.NoError(t, m.Previous())
	assert.Equal(t, 1, m.CurrentIndex())

	m.SetRepeatMode(RepeatOff)
	require.NoError(t, m.Previous())
	assert.True(t, errors.Is(m.Previous(), ErrIndexOutOfRange))
}

func TestMemory_Finish(t *testing.T) {
	m := NewMemory()
	m.AddItems(songs("a", "b")...)
	var r recorder
	m.AddListener(r.listener())

	m.Finish()
	assert.Equal(t, 1, m.CurrentIndex())

	m.Finish()
	assert.Equal(t, 1, m.CurrentIndex())
	assert.Equal(t, StateEnded, m.State())

	m.SetRepeatMode(RepeatOne)
	require.NoError(t, m.SeekToDefaultPosition(0))
	assert.Equal(t, StateReady, m.State())
	m.Finish()
	assert.Equal(t, 0, m.CurrentIndex())
	last := r.transitions[len(r.transitions)-1]
	assert.Equal(t, "a", last.Item.ID)
}

func TestMemory_Shuffle_KeepsCurrentFirst(t *testing.T) {
	m := NewMemory()
	m.shuffle = func(n int, swap func(i, j int)) {
		// reverse
		for i := range n / 2 {
			swap(i, n-1-i)
		}
	}
	m.AddItems(songs("a", "b", "c", "d")...)
	require.NoError(t, m.SeekToDefaultPosition(2))

	m.Shuffle()

	assert.Equal(t, []string{"c", "d", "b", "a"}, ids(m.Windows()))
	assert.Equal(t, 0, m.CurrentIndex())
}

func TestMemory_SetItems(t *testing.T) {
	m := NewMemory()
	m.SetItems(songs("a", "b", "c"), 7)

	assert.Equal(t, 2, m.CurrentIndex())

	m.SetItems(nil, 0)
	assert.Equal(t, -1, m.CurrentIndex())
}

func TestMemory_ReportError(t *testing.T) {
	m := NewMemory()
	var r recorder
	m.AddListener(r.listener())

	m.ReportError(nil)
	m.ReportError(errors.New("decoder failed"))

	require.Len(t, r.errs, 1)
	assert.EqualError(t, r.errs[0], "decoder failed")
}

func TestHandle_Release(t *testing.T) {
	m := NewMemory()
	var r recorder
	h := m.AddListener(r.listener())

	h.Release()
	h.Release()
	m.AddItems(songs("a")...)

	assert.Empty(t, r.timelines)

	var nilHandle *Handle
	nilHandle.Release()
	NopHandle().Release()
}

func TestMemory_ListenerMayReadEngine(t *testing.T) {
	m := NewMemory()
	var seen int
	m.AddListener(Listener{
		TimelineChanged: func([]Window) {
			// Must not deadlock: callbacks run outside the engine lock.
			seen = m.CurrentIndex()
		},
	})

	m.AddItems(songs("a")...)

	assert.Equal(t, 0, seen)
}

func TestMemory_Timeline(t *testing.T) {
	m := NewMemory()
	ws, current := m.Timeline()
	assert.Empty(t, ws)
	assert.Equal(t, -1, current)

	m.AddItems(songs("a", "b")...)
	require.NoError(t, m.SeekToDefaultPosition(1))

	ws, current = m.Timeline()
	require.Len(t, ws, 2)
	assert.Equal(t, 1, current)
	assert.Equal(t, "b", ws[current].Item.ID)
}

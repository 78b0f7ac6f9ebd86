package queueview

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/llehouerou/upnext/internal/library"
	"github.com/llehouerou/upnext/internal/media"
	"github.com/llehouerou/upnext/internal/player"
	"github.com/llehouerou/upnext/internal/playlists"
	"github.com/llehouerou/upnext/internal/reorder"
	"github.com/llehouerou/upnext/internal/state"
	"github.com/llehouerou/upnext/internal/suggest"
)

func song(id string) media.Item {
	return media.Item{ID: id, Title: "Song " + id, Artist: "Artist", Kind: media.KindMusic}
}

func episode(id, podcastID string) media.Item {
	return media.Item{ID: id, Title: "Episode " + id, Kind: media.KindEpisode, PodcastID: podcastID}
}

func ids(items []media.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

type stubCatalog struct {
	mu    sync.Mutex
	calls []string
	items []media.Item
	err   error
}

func (c *stubCatalog) Next(_ context.Context, seed media.Item) ([]media.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, seed.ID)
	return c.items, c.err
}

type fixture struct {
	engine  *player.Memory
	catalog *stubCatalog
	db      *sql.DB
	model   *Model
}

func newFixture(t *testing.T, opts Options, items ...media.Item) *fixture {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, state.Init(db))

	f := &fixture{engine: player.NewMemory(), catalog: &stubCatalog{}, db: db}
	f.engine.SetItems(items, 0)

	fetcher := suggest.NewFetcher(f.catalog, zerolog.Nop())
	sink := playlists.NewSink(playlists.New(db), library.New(db), zerolog.Nop())
	f.model = New(f.engine, fetcher, sink, opts)

	r := f.model.Reader()
	h1 := r.Attach(f.model.OnSnapshot)
	h2 := r.AttachPlayback(f.model.SetPlaying)
	t.Cleanup(func() {
		h1.Release()
		h2.Release()
	})
	return f
}

// runFetch issues the pending fetch and applies its result.
func (f *fixture) runFetch(t *testing.T) bool {
	t.Helper()
	ticket, ok := f.model.BeginFetch()
	require.True(t, ok, "a fetch should be pending")
	return f.model.ApplyResult(f.model.Fetch(context.Background(), ticket))
}

func TestModel_MergesFetchedSuggestions(t *testing.T) {
	f := newFixture(t, Options{}, song("S1"), song("S2"), song("S3"))
	f.catalog.items = []media.Item{song("S2"), song("S4"), song("S5")}
	f.model.SetWantSuggestions(true)

	require.True(t, f.runFetch(t))

	status, ok := f.model.SuggestionStatus()
	assert.True(t, ok)
	assert.Equal(t, suggest.StatusReady, status)
	assert.Equal(t, []string{"S4", "S5"}, ids(f.model.Suggestions()))
	assert.Equal(t, []string{"S1"}, f.catalog.calls)
}

func TestModel_FetchWaitsForVisibleRows(t *testing.T) {
	f := newFixture(t, Options{}, song("S1"))

	assert.False(t, f.model.NeedsFetch())
	_, ok := f.model.BeginFetch()
	assert.False(t, ok)

	f.model.SetWantSuggestions(true)
	assert.True(t, f.model.NeedsFetch())

	_, ok = f.model.BeginFetch()
	require.True(t, ok)
	assert.False(t, f.model.NeedsFetch(), "one fetch per active entry")
	_, ok = f.model.BeginFetch()
	assert.False(t, ok)
}

func TestModel_StaleResultDiscardedAfterTransition(t *testing.T) {
	f := newFixture(t, Options{}, song("S1"), song("S2"), song("S3"))
	f.catalog.items = []media.Item{song("S9")}
	f.model.SetWantSuggestions(true)

	ticket, ok := f.model.BeginFetch()
	require.True(t, ok)

	require.NoError(t, f.engine.Next())
	assert.Equal(t, "S2", f.model.Snapshot().ActiveID())

	late := f.model.Fetch(context.Background(), ticket)
	assert.False(t, f.model.ApplyResult(late))

	status, _ := f.model.SuggestionStatus()
	assert.Equal(t, suggest.StatusPending, status)
	assert.Empty(t, f.model.Suggestions())
	assert.True(t, f.model.NeedsFetch(), "the new active entry gets its own fetch")

	require.True(t, f.runFetch(t))
	assert.Equal(t, []string{"S9"}, ids(f.model.Suggestions()))
	assert.Equal(t, []string{"S1", "S2"}, f.catalog.calls)
}

func TestModel_SameActiveKeepsSuggestions(t *testing.T) {
	f := newFixture(t, Options{}, song("S1"), song("S2"))
	f.catalog.items = []media.Item{song("S3"), song("S4")}
	f.model.SetWantSuggestions(true)
	require.True(t, f.runFetch(t))

	f.engine.AddItems(song("S3"))

	assert.False(t, f.model.NeedsFetch())
	assert.Equal(t, []string{"S4"}, ids(f.model.Suggestions()), "newly queued items drop out")
}

func TestModel_EpisodeNeverCallsCatalog(t *testing.T) {
	f := newFixture(t, Options{}, episode("E1", "P1"), episode("E2", "P1"))
	f.catalog.items = []media.Item{episode("E3", "P1")}
	f.model.SetWantSuggestions(true)

	require.True(t, f.runFetch(t))

	assert.Empty(t, f.model.Suggestions())
	assert.Empty(t, f.catalog.calls)
}

func TestModel_FetchFailureDegradesToEmpty(t *testing.T) {
	f := newFixture(t, Options{}, song("S1"))
	f.catalog.err = errors.New("catalog down")
	f.model.SetWantSuggestions(true)

	require.True(t, f.runFetch(t))

	status, _ := f.model.SuggestionStatus()
	assert.Equal(t, suggest.StatusFailed, status)
	assert.Empty(t, f.model.Suggestions())
}

func TestModel_EmptiedQueueInvalidates(t *testing.T) {
	f := newFixture(t, Options{}, song("S1"))
	f.model.SetWantSuggestions(true)
	ticket, ok := f.model.BeginFetch()
	require.True(t, ok)

	f.engine.SetItems(nil, 0)

	_, ok = f.model.SuggestionStatus()
	assert.False(t, ok)
	assert.False(t, f.model.NeedsFetch())
	assert.False(t, f.model.ApplyResult(f.model.Fetch(context.Background(), ticket)))
}

func TestModel_VisibleCapsSuggestions(t *testing.T) {
	f := newFixture(t, Options{Visible: 2}, song("S1"))
	f.catalog.items = []media.Item{song("A"), song("B"), song("C")}
	f.model.SetWantSuggestions(true)
	require.True(t, f.runFetch(t))

	assert.Equal(t, []string{"A", "B"}, ids(f.model.Suggestions()))
}

func TestModel_PlayAt(t *testing.T) {
	f := newFixture(t, Options{}, song("S1"), song("S2"))
	assert.False(t, f.model.Playing())

	require.NoError(t, f.model.PlayAt(0))
	assert.True(t, f.model.Playing(), "selecting the active entry toggles playback")

	require.NoError(t, f.model.PlayAt(0))
	assert.False(t, f.model.Playing())

	require.NoError(t, f.model.PlayAt(1))
	assert.Equal(t, 1, f.model.Snapshot().Active)
	assert.True(t, f.model.Playing())

	assert.ErrorIs(t, f.model.PlayAt(5), player.ErrIndexOutOfRange)
}

func TestModel_Remove(t *testing.T) {
	f := newFixture(t, Options{SwipeToRemove: true}, song("S1"), song("S2"), song("S3"))

	assert.ErrorIs(t, f.model.Remove(0), ErrRemovePlaying)

	require.NoError(t, f.model.Remove(2))
	assert.Equal(t, []string{"S1", "S2"}, ids(f.model.Snapshot().Items()))
}

func TestModel_RemoveDisabled(t *testing.T) {
	f := newFixture(t, Options{SwipeToRemove: false}, song("S1"), song("S2"))

	assert.ErrorIs(t, f.model.Remove(1), ErrRemoveDisabled)
	assert.Equal(t, 2, f.model.Snapshot().Len())
}

func TestModel_AddNextAndEnqueue(t *testing.T) {
	f := newFixture(t, Options{}, song("S1"), song("S2"))
	f.catalog.items = []media.Item{song("A"), song("B")}
	f.model.SetWantSuggestions(true)
	require.True(t, f.runFetch(t))

	require.NoError(t, f.model.Enqueue(1))
	assert.Equal(t, []string{"S1", "S2", "B"}, ids(f.model.Snapshot().Items()))
	assert.Equal(t, []string{"A"}, ids(f.model.Suggestions()))

	require.NoError(t, f.model.AddNext(0))
	assert.Equal(t, []string{"S1", "A", "S2", "B"}, ids(f.model.Snapshot().Items()))
	assert.Empty(t, f.model.Suggestions())

	assert.ErrorIs(t, f.model.AddNext(0), ErrNoSuggestion)
}

func TestModel_EnqueueAndPlayNextItems(t *testing.T) {
	f := newFixture(t, Options{}, song("S1"), song("S2"))

	require.NoError(t, f.model.EnqueueItems(song("L1"), song("L2")))
	assert.Equal(t, []string{"S1", "S2", "L1", "L2"}, ids(f.model.Snapshot().Items()))

	require.NoError(t, f.model.PlayNextItems(song("N1"), song("N2")))
	assert.Equal(t, []string{"S1", "N1", "N2", "S2", "L1", "L2"}, ids(f.model.Snapshot().Items()))

	require.NoError(t, f.model.EnqueueItems())
	assert.Equal(t, 6, f.model.Snapshot().Len())
}

func TestModel_ShuffleKeepsActiveFirst(t *testing.T) {
	f := newFixture(t, Options{}, song("S1"), song("S2"), song("S3"), song("S4"))
	require.NoError(t, f.model.PlayAt(2))

	require.NoError(t, f.model.ShuffleQueue())

	snap := f.model.Snapshot()
	assert.Equal(t, 0, snap.Active)
	assert.Equal(t, "S3", snap.ActiveID())
	assert.ElementsMatch(t, []string{"S1", "S2", "S3", "S4"}, ids(snap.Items()))
}

func TestModel_ToggleLoop(t *testing.T) {
	f := newFixture(t, Options{}, song("S1"))
	assert.False(t, f.model.Loop())

	on, err := f.model.ToggleLoop()
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, player.RepeatAll, f.engine.RepeatMode())

	on, err = f.model.ToggleLoop()
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, player.RepeatOff, f.engine.RepeatMode())

	f.engine.SetRepeatMode(player.RepeatOne)
	on, err = f.model.ToggleLoop()
	require.NoError(t, err)
	assert.True(t, on)
}

func TestModel_Counts(t *testing.T) {
	f := newFixture(t, Options{}, song("S1"), episode("E1", "P1"), song("S2"))

	songs, episodes := f.model.Counts()
	assert.Equal(t, 2, songs)
	assert.Equal(t, 1, episodes)
}

func TestModel_DragRowsAndDrop(t *testing.T) {
	f := newFixture(t, Options{}, song("S1"), song("S2"), song("S3"))

	require.NoError(t, f.model.StartDrag(0))
	f.model.ShiftDrag(1)

	rows := f.model.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "S2", rows[0].ID)
	assert.Equal(t, "S1", rows[1].ID)
	assert.True(t, rows[1].Dragged)
	assert.True(t, rows[1].Active)
	assert.Equal(t, []string{"S1", "S2", "S3"}, ids(f.model.Snapshot().Items()), "snapshot untouched while dragging")

	assert.ErrorIs(t, f.model.ShuffleQueue(), ErrDragInProgress)

	moved, err := f.model.Drop()
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, reorder.Idle, f.model.DragState())
	assert.Equal(t, []string{"S2", "S1", "S3"}, ids(f.model.Snapshot().Items()))
	assert.Equal(t, "S1", f.model.Snapshot().ActiveID())
}

func TestModel_DropInPlaceIssuesNoMove(t *testing.T) {
	f := newFixture(t, Options{}, song("S1"), song("S2"))
	var timelineChanges int
	h := f.engine.AddListener(player.Listener{
		TimelineChanged: func([]player.Window) { timelineChanges++ },
	})
	defer h.Release()

	require.NoError(t, f.model.StartDrag(1))
	f.model.ShiftDrag(-1)
	f.model.ShiftDrag(1)

	moved, err := f.model.Drop()
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Zero(t, timelineChanges)
}

func TestModel_DragCancelledWhenEntryRemovedExternally(t *testing.T) {
	f := newFixture(t, Options{}, song("S1"), song("S2"), song("S3"))
	require.NoError(t, f.model.StartDrag(2))

	require.NoError(t, f.engine.RemoveAt(2))

	assert.False(t, f.model.Dragging())
	_, err := f.model.Drop()
	assert.ErrorIs(t, err, reorder.ErrNotDragging)
}

func TestModel_DragFollowsEntryMovedExternally(t *testing.T) {
	f := newFixture(t, Options{}, song("S1"), song("S2"), song("S3"))
	require.NoError(t, f.model.StartDrag(2))
	f.model.ShiftDrag(-1)

	f.engine.AddNext(song("N"))

	require.True(t, f.model.Dragging())
	assert.Equal(t, 2, f.model.DragTarget())

	moved, err := f.model.Drop()
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"S1", "N", "S3", "S2"}, ids(f.model.Snapshot().Items()))
}

func TestModel_AddQueueToNewPlaylist(t *testing.T) {
	f := newFixture(t, Options{},
		song("S1"), song("S2"), song("S3"),
		media.Item{ID: "E1", Title: "Orphan", Kind: media.KindEpisode},
	)

	job, err := f.model.AddToPlaylist(playlists.NewPlaylist("Mix"), WholeQueue())
	require.NoError(t, err)

	res, err := job(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Songs)
	assert.Zero(t, res.Episodes)
	require.Len(t, res.Skipped, 1)
	assert.ErrorIs(t, res.Skipped[0].Err, media.ErrMissingPodcastID)

	var songRows, episodeRows int
	require.NoError(t, f.db.QueryRow(`SELECT COUNT(*) FROM song_playlist_map WHERE playlist_id = ?`, res.PlaylistID).Scan(&songRows))
	require.NoError(t, f.db.QueryRow(`SELECT COUNT(*) FROM episode_playlist_map WHERE playlist_id = ?`, res.PlaylistID).Scan(&episodeRows))
	assert.Equal(t, 3, songRows)
	assert.Zero(t, episodeRows)
}

func TestModel_AddSuggestionToPlaylist(t *testing.T) {
	f := newFixture(t, Options{}, song("S1"))
	f.catalog.items = []media.Item{song("A"), song("B")}
	f.model.SetWantSuggestions(true)
	require.True(t, f.runFetch(t))

	_, err := f.model.AddToPlaylist(playlists.NewPlaylist("One"), Suggestion(5))
	assert.ErrorIs(t, err, ErrNoSuggestion)

	job, err := f.model.AddToPlaylist(playlists.NewPlaylist("One"), Suggestion(1))
	require.NoError(t, err)
	res, err := job(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Songs)

	var id string
	require.NoError(t, f.db.QueryRow(`SELECT song_id FROM song_playlist_map WHERE playlist_id = ?`, res.PlaylistID).Scan(&id))
	assert.Equal(t, "B", id)
}

func TestModel_WithoutEngine(t *testing.T) {
	m := New(nil, suggest.NewFetcher(nil, zerolog.Nop()), nil, Options{SwipeToRemove: true})
	m.Sync()

	assert.Zero(t, m.Snapshot().Len())
	assert.False(t, m.Playing())
	assert.Empty(t, m.Rows())
	assert.False(t, m.Loop())

	assert.ErrorIs(t, m.Toggle(), ErrNoEngine)
	assert.ErrorIs(t, m.PlayAt(0), ErrNoEngine)
	assert.ErrorIs(t, m.Remove(0), ErrNoEngine)
	assert.ErrorIs(t, m.ShuffleQueue(), ErrNoEngine)
	assert.ErrorIs(t, m.StartDrag(0), ErrNoEngine)
	assert.ErrorIs(t, m.EnqueueItems(song("A")), ErrNoEngine)
	assert.ErrorIs(t, m.PlayNextItems(song("A")), ErrNoEngine)
	_, err := m.ToggleLoop()
	assert.ErrorIs(t, err, ErrNoEngine)
	_, err = m.AddToPlaylist(playlists.NewPlaylist("x"), WholeQueue())
	assert.ErrorIs(t, err, ErrNoPlaylistStore)
}

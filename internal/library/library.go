// Package library stores the songs, podcasts and episodes the user has
// played or saved.
package library

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbutil "github.com/llehouerou/upnext/internal/db"
	"github.com/llehouerou/upnext/internal/media"
)

// Song is a row of the songs table.
type Song struct {
	ID            string
	Title         string
	Artists       string
	Album         string
	DurationText  string
	ThumbnailURL  string
	Explicit      bool
	Local         bool
	TotalPlayTime time.Duration
	AddedAt       int64
}

// Item converts the song for playback.
func (s Song) Item() media.Item {
	it := media.Item{
		ID:           s.ID,
		Title:        s.Title,
		Artist:       s.Artists,
		Album:        s.Album,
		ArtworkURL:   s.ThumbnailURL,
		DurationText: s.DurationText,
		Kind:         media.KindMusic,
		Explicit:     s.Explicit,
	}
	if d, ok := media.ParseDurationText(s.DurationText); ok {
		it.Duration = d
	}
	return it
}

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Library struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Library {
	return &Library{db: db, now: time.Now}
}

// Writer returns the upsert operations bound to ex, typically a
// transaction owned by the caller.
func (l *Library) Writer(ex Execer) Writer {
	return Writer{ex: ex, now: l.now}
}

// UpsertSong inserts or refreshes a song outside any transaction.
func (l *Library) UpsertSong(ctx context.Context, it media.Item) error {
	return l.Writer(l.db).UpsertSong(ctx, it)
}

// UpsertEpisode inserts or refreshes an episode and its podcast stub.
func (l *Library) UpsertEpisode(ctx context.Context, it media.Item) error {
	return dbutil.WithTxContext(ctx, l.db, func(tx *sql.Tx) error {
		return l.Writer(tx).UpsertEpisode(ctx, it)
	})
}

// UpsertPodcast inserts or refreshes a podcast.
func (l *Library) UpsertPodcast(ctx context.Context, p Podcast) error {
	return l.Writer(l.db).UpsertPodcast(ctx, p)
}

// Upsert stores it in the table matching its kind.
func (l *Library) Upsert(ctx context.Context, it media.Item) error {
	switch it.Kind {
	case media.KindMusic:
		return l.UpsertSong(ctx, it)
	case media.KindEpisode:
		return l.UpsertEpisode(ctx, it)
	default:
		return fmt.Errorf("upsert %s: %w", it.ID, media.ErrUnknownKind)
	}
}

// MarkLocal flags a song as available offline.
func (l *Library) MarkLocal(ctx context.Context, id string, local bool) error {
	_, err := l.db.ExecContext(ctx, `UPDATE songs SET is_local = ? WHERE id = ?`, local, id)
	return err
}

// AddPlayTime credits d to the song's total play time.
func (l *Library) AddPlayTime(ctx context.Context, id string, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	_, err := l.db.ExecContext(ctx, `
		UPDATE songs SET total_play_time_ms = total_play_time_ms + ? WHERE id = ?
	`, d.Milliseconds(), id)
	return err
}

// Song returns one song by id.
func (l *Library) Song(ctx context.Context, id string) (*Song, error) {
	row := l.db.QueryRowContext(ctx, `SELECT `+songColumns+` FROM songs WHERE id = ?`, id)
	s, err := scanSong(row)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

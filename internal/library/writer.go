package library

import (
	"context"
	"fmt"
	"time"

	dbutil "github.com/llehouerou/upnext/internal/db"
	"github.com/llehouerou/upnext/internal/media"
)

// Podcast is a row of the podcasts table.
type Podcast struct {
	ID           string
	Title        string
	Author       string
	ThumbnailURL string
}

// Writer performs upserts through an Execer.
type Writer struct {
	ex  Execer
	now func() time.Time
}

// UpsertSong inserts the song or refreshes its metadata. Play time, the
// local flag and the added date of an existing row are kept.
func (w Writer) UpsertSong(ctx context.Context, it media.Item) error {
	if it.ID == "" {
		return media.ErrMissingID
	}
	switch it.Kind {
	case media.KindMusic:
	case media.KindEpisode:
		return fmt.Errorf("upsert song %s: is an episode", it.ID)
	default:
		return fmt.Errorf("upsert song %s: %w", it.ID, media.ErrUnknownKind)
	}

	_, err := w.ex.ExecContext(ctx, `
		INSERT INTO songs (id, title, artists_text, album, duration_text, thumbnail_url, explicit, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			artists_text = excluded.artists_text,
			album = excluded.album,
			duration_text = COALESCE(excluded.duration_text, songs.duration_text),
			thumbnail_url = COALESCE(excluded.thumbnail_url, songs.thumbnail_url),
			explicit = excluded.explicit
	`, it.ID, it.Title, dbutil.NullString(it.Artist), dbutil.NullString(it.Album),
		dbutil.NullString(it.DisplayDuration()), dbutil.NullString(it.ArtworkURL),
		it.Explicit, w.now().Unix())
	return err
}

// UpsertPodcast inserts the podcast or refreshes its metadata.
func (w Writer) UpsertPodcast(ctx context.Context, p Podcast) error {
	if p.ID == "" {
		return media.ErrMissingPodcastID
	}
	_, err := w.ex.ExecContext(ctx, `
		INSERT INTO podcasts (id, title, author, thumbnail_url, added_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			author = COALESCE(excluded.author, podcasts.author),
			thumbnail_url = COALESCE(excluded.thumbnail_url, podcasts.thumbnail_url)
	`, p.ID, p.Title, dbutil.NullString(p.Author), dbutil.NullString(p.ThumbnailURL), w.now().Unix())
	return err
}

// UpsertEpisode stores an episode. The podcast row is created as a stub
// when missing; an existing podcast is left untouched.
func (w Writer) UpsertEpisode(ctx context.Context, it media.Item) error {
	switch it.Kind {
	case media.KindEpisode:
	case media.KindMusic:
		return fmt.Errorf("upsert episode %s: is a song", it.ID)
	default:
		return fmt.Errorf("upsert episode %s: %w", it.ID, media.ErrUnknownKind)
	}
	if err := it.Validate(); err != nil {
		return err
	}

	now := w.now().Unix()
	title := it.Artist
	if title == "" {
		title = it.PodcastID
	}
	if _, err := w.ex.ExecContext(ctx, `
		INSERT INTO podcasts (id, title, added_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, it.PodcastID, title, now); err != nil {
		return err
	}

	_, err := w.ex.ExecContext(ctx, `
		INSERT INTO podcast_episodes (id, podcast_id, title, duration_text, thumbnail_url, added_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			podcast_id = excluded.podcast_id,
			title = excluded.title,
			duration_text = COALESCE(excluded.duration_text, podcast_episodes.duration_text),
			thumbnail_url = COALESCE(excluded.thumbnail_url, podcast_episodes.thumbnail_url)
	`, it.ID, it.PodcastID, it.Title, dbutil.NullString(it.DisplayDuration()),
		dbutil.NullString(it.ArtworkURL), now)
	return err
}

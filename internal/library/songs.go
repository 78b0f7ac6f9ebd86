package library

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbutil "github.com/llehouerou/upnext/internal/db"
	"github.com/llehouerou/upnext/internal/media"
)

// SongSortBy selects the ordering of the local songs list.
type SongSortBy int

const (
	SortByPlayTime SongSortBy = iota
	SortByTitle
	SortByDateAdded
	SortByArtist
)

func (s SongSortBy) String() string {
	switch s {
	case SortByPlayTime:
		return "Play time"
	case SortByTitle:
		return "Title"
	case SortByDateAdded:
		return "Date added"
	case SortByArtist:
		return "Artist"
	default:
		return "Unknown"
	}
}

// Next cycles to the following sort key.
func (s SongSortBy) Next() SongSortBy {
	return (s + 1) % (SortByArtist + 1)
}

func (s SongSortBy) column() (string, error) {
	switch s {
	case SortByPlayTime:
		return "total_play_time_ms", nil
	case SortByTitle:
		return "title COLLATE NOCASE", nil
	case SortByDateAdded:
		return "added_at", nil
	case SortByArtist:
		return "artists_text COLLATE NOCASE", nil
	default:
		return "", fmt.Errorf("unknown song sort %d", s)
	}
}

const songColumns = `id, title, artists_text, album, duration_text, thumbnail_url,
	explicit, is_local, total_play_time_ms, added_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSong(r rowScanner) (Song, error) {
	var s Song
	var artists, album, durationText, thumb sql.NullString
	var playMs int64
	if err := r.Scan(&s.ID, &s.Title, &artists, &album, &durationText, &thumb,
		&s.Explicit, &s.Local, &playMs, &s.AddedAt); err != nil {
		return Song{}, err
	}
	s.Artists = dbutil.NullStringValue(artists)
	s.Album = dbutil.NullStringValue(album)
	s.DurationText = dbutil.NullStringValue(durationText)
	s.ThumbnailURL = dbutil.NullStringValue(thumb)
	s.TotalPlayTime = time.Duration(playMs) * time.Millisecond
	return s, nil
}

// LocalSongs lists the songs available offline. Songs whose duration is
// unknown ("0:00") are left out.
func (l *Library) LocalSongs(ctx context.Context, sortBy SongSortBy, order dbutil.SortOrder) ([]Song, error) {
	col, err := sortBy.column()
	if err != nil {
		return nil, err
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT `+songColumns+`
		FROM songs
		WHERE is_local = 1 AND COALESCE(duration_text, '') != ?
		ORDER BY `+col+` `+order.SQL()+`, id
	`, media.UnknownDuration)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []Song
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

// ToggleLocal stores the song if needed and flips its local flag. It
// returns the new flag.
func (l *Library) ToggleLocal(ctx context.Context, it media.Item) (bool, error) {
	if err := l.UpsertSong(ctx, it); err != nil {
		return false, err
	}
	s, err := l.Song(ctx, it.ID)
	if err != nil {
		return false, err
	}
	local := !s.Local
	if err := l.MarkLocal(ctx, it.ID, local); err != nil {
		return false, err
	}
	return local, nil
}

package state

import (
	"database/sql"
	"errors"
)

// Preferences are the sort choices of the playlist picker and the local
// songs list. Values are the int forms of the playlists and library sort
// enums.
type Preferences struct {
	PlaylistSortBy    int
	PlaylistSortOrder int
	SongSortBy        int
	SongSortOrder     int
}

// DefaultPreferences lists playlists newest first and local songs by play
// time, most played first.
func DefaultPreferences() Preferences {
	return Preferences{
		PlaylistSortBy:    1,
		PlaylistSortOrder: 1,
		SongSortBy:        0,
		SongSortOrder:     1,
	}
}

func getPreferences(db *sql.DB) (Preferences, error) {
	var p Preferences
	err := db.QueryRow(`
		SELECT playlist_sort_by, playlist_sort_order, song_sort_by, song_sort_order
		FROM preferences WHERE id = 1
	`).Scan(&p.PlaylistSortBy, &p.PlaylistSortOrder, &p.SongSortBy, &p.SongSortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultPreferences(), nil
	}
	if err != nil {
		return Preferences{}, err
	}
	return p, nil
}

func savePreferences(db *sql.DB, p Preferences) error {
	_, err := db.Exec(`
		INSERT INTO preferences (id, playlist_sort_by, playlist_sort_order, song_sort_by, song_sort_order)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			playlist_sort_by = excluded.playlist_sort_by,
			playlist_sort_order = excluded.playlist_sort_order,
			song_sort_by = excluded.song_sort_by,
			song_sort_order = excluded.song_sort_order
	`, p.PlaylistSortBy, p.PlaylistSortOrder, p.SongSortBy, p.SongSortOrder)
	return err
}

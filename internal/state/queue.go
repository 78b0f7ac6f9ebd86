package state

import (
	"database/sql"
	"errors"

	dbutil "github.com/llehouerou/upnext/internal/db"
	"github.com/llehouerou/upnext/internal/media"
)

// QueueState represents the saved queue.
type QueueState struct {
	CurrentIndex int
	RepeatMode   int
	Items        []media.Item
}

func getQueue(db *sql.DB) (*QueueState, error) {
	var currentIndex, repeatMode int
	row := db.QueryRow(`SELECT current_index, repeat_mode FROM queue_state WHERE id = 1`)
	err := row.Scan(&currentIndex, &repeatMode)
	if errors.Is(err, sql.ErrNoRows) {
		return &QueueState{CurrentIndex: -1}, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`
		SELECT item_id, kind, title, artist, album, artwork_url, duration_text, podcast_id, explicit
		FROM queue_items
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []media.Item
	for rows.Next() {
		var it media.Item
		var kind int
		var artist, album, artwork, durationText, podcastID sql.NullString

		err := rows.Scan(&it.ID, &kind, &it.Title, &artist, &album, &artwork,
			&durationText, &podcastID, &it.Explicit)
		if err != nil {
			return nil, err
		}

		it.Kind = media.Kind(kind)
		if !it.Kind.Valid() {
			continue
		}
		it.Artist = dbutil.NullStringValue(artist)
		it.Album = dbutil.NullStringValue(album)
		it.ArtworkURL = dbutil.NullStringValue(artwork)
		it.DurationText = dbutil.NullStringValue(durationText)
		it.PodcastID = dbutil.NullStringValue(podcastID)
		if d, ok := media.ParseDurationText(it.DurationText); ok {
			it.Duration = d
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if currentIndex >= len(items) {
		currentIndex = len(items) - 1
	}

	return &QueueState{
		CurrentIndex: currentIndex,
		RepeatMode:   repeatMode,
		Items:        items,
	}, nil
}

func saveQueue(sqlDB *sql.DB, state QueueState) error {
	return dbutil.WithTx(sqlDB, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM queue_items`); err != nil {
			return err
		}

		_, err := tx.Exec(`
			INSERT INTO queue_state (id, current_index, repeat_mode)
			VALUES (1, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				current_index = excluded.current_index,
				repeat_mode = excluded.repeat_mode
		`, state.CurrentIndex, state.RepeatMode)
		if err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO queue_items
				(position, item_id, kind, title, artist, album, artwork_url, duration_text, podcast_id, explicit)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, it := range state.Items {
			_, err = stmt.Exec(i, it.ID, int(it.Kind), it.Title,
				dbutil.NullString(it.Artist), dbutil.NullString(it.Album),
				dbutil.NullString(it.ArtworkURL), dbutil.NullString(it.DisplayDuration()),
				dbutil.NullString(it.PodcastID), it.Explicit)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

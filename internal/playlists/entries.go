package playlists

import (
	"context"
	"database/sql"
	"fmt"

	dbutil "github.com/llehouerou/upnext/internal/db"
	"github.com/llehouerou/upnext/internal/media"
)

// membership is one of the two playlist membership tables.
type membership int

const (
	songMembership membership = iota
	episodeMembership
)

func (m membership) table() string {
	switch m {
	case songMembership:
		return "song_playlist_map"
	case episodeMembership:
		return "episode_playlist_map"
	default:
		panic(fmt.Sprintf("unknown membership %d", m))
	}
}

func membershipFor(k media.Kind) (membership, error) {
	switch k {
	case media.KindMusic:
		return songMembership, nil
	case media.KindEpisode:
		return episodeMembership, nil
	default:
		return 0, media.ErrUnknownKind
	}
}

// Entry is one playlist member at its position.
type Entry struct {
	Position int
	Item     media.Item
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// nextPosition returns the first position after the existing members.
func nextPosition(ctx context.Context, q querier, m membership, playlistID int64) (int, error) {
	var maxPos sql.NullInt64
	err := q.QueryRowContext(ctx,
		`SELECT MAX(position) FROM `+m.table()+` WHERE playlist_id = ?`, playlistID,
	).Scan(&maxPos)
	if err != nil {
		return 0, err
	}
	if !maxPos.Valid {
		return 0, nil
	}
	return int(maxPos.Int64) + 1, nil
}

// Songs returns the songs of a playlist in order.
func (p *Playlists) Songs(ctx context.Context, playlistID int64) ([]Entry, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT m.position, s.id, s.title, s.artists_text, s.album, s.duration_text, s.thumbnail_url, s.explicit
		FROM song_playlist_map m
		JOIN songs s ON m.song_id = s.id
		WHERE m.playlist_id = ?
		ORDER BY m.position
	`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var artists, album, durationText, thumb sql.NullString
		if err := rows.Scan(&e.Position, &e.Item.ID, &e.Item.Title, &artists, &album,
			&durationText, &thumb, &e.Item.Explicit); err != nil {
			return nil, err
		}
		e.Item.Kind = media.KindMusic
		e.Item.Artist = dbutil.NullStringValue(artists)
		e.Item.Album = dbutil.NullStringValue(album)
		e.Item.ArtworkURL = dbutil.NullStringValue(thumb)
		setDuration(&e.Item, dbutil.NullStringValue(durationText))
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Episodes returns the episodes of a playlist in order.
func (p *Playlists) Episodes(ctx context.Context, playlistID int64) ([]Entry, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT m.position, e.id, e.title, e.podcast_id, pc.title, e.duration_text, e.thumbnail_url
		FROM episode_playlist_map m
		JOIN podcast_episodes e ON m.episode_id = e.id
		JOIN podcasts pc ON e.podcast_id = pc.id
		WHERE m.playlist_id = ?
		ORDER BY m.position
	`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var durationText, thumb sql.NullString
		if err := rows.Scan(&e.Position, &e.Item.ID, &e.Item.Title, &e.Item.PodcastID,
			&e.Item.Artist, &durationText, &thumb); err != nil {
			return nil, err
		}
		e.Item.Kind = media.KindEpisode
		e.Item.ArtworkURL = dbutil.NullStringValue(thumb)
		setDuration(&e.Item, dbutil.NullStringValue(durationText))
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func setDuration(it *media.Item, text string) {
	it.DurationText = text
	if d, ok := media.ParseDurationText(text); ok {
		it.Duration = d
	}
}

func (p *Playlists) count(ctx context.Context, m membership, playlistID int64) (int, error) {
	var n int
	err := p.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+m.table()+` WHERE playlist_id = ?`, playlistID,
	).Scan(&n)
	return n, err
}

// RemoveSong removes the song at position and closes the gap.
func (p *Playlists) RemoveSong(ctx context.Context, playlistID int64, position int) error {
	return p.remove(ctx, songMembership, playlistID, position)
}

// RemoveEpisode removes the episode at position and closes the gap.
func (p *Playlists) RemoveEpisode(ctx context.Context, playlistID int64, position int) error {
	return p.remove(ctx, episodeMembership, playlistID, position)
}

func (p *Playlists) remove(ctx context.Context, m membership, playlistID int64, position int) error {
	return dbutil.WithTxContext(ctx, p.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM `+m.table()+` WHERE playlist_id = ? AND position = ?`,
			playlistID, position); err != nil {
			return err
		}

		// One row at a time, lowest first, to keep positions unique.
		rows, err := tx.QueryContext(ctx,
			`SELECT position FROM `+m.table()+` WHERE playlist_id = ? AND position > ? ORDER BY position`,
			playlistID, position)
		if err != nil {
			return err
		}
		var after []int
		for rows.Next() {
			var pos int
			if err := rows.Scan(&pos); err != nil {
				rows.Close()
				return err
			}
			after = append(after, pos)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, pos := range after {
			if _, err := tx.ExecContext(ctx,
				`UPDATE `+m.table()+` SET position = position - 1 WHERE playlist_id = ? AND position = ?`,
				playlistID, pos); err != nil {
				return err
			}
		}
		return nil
	})
}

// MoveSongs moves the songs at positions by delta.
// Returns the new positions, or the input when the move is out of bounds.
func (p *Playlists) MoveSongs(ctx context.Context, playlistID int64, positions []int, delta int) ([]int, error) {
	return p.move(ctx, songMembership, playlistID, positions, delta)
}

// MoveEpisodes moves the episodes at positions by delta.
func (p *Playlists) MoveEpisodes(ctx context.Context, playlistID int64, positions []int, delta int) ([]int, error) {
	return p.move(ctx, episodeMembership, playlistID, positions, delta)
}

func (p *Playlists) move(ctx context.Context, m membership, playlistID int64, positions []int, delta int) ([]int, error) {
	if len(positions) == 0 || delta == 0 {
		return positions, nil
	}

	count, err := p.count(ctx, m, playlistID)
	if err != nil {
		return nil, err
	}

	calc := newPositionCalculator(positions, count, delta)
	if !calc.canMove() {
		return positions, nil
	}

	err = dbutil.WithTxContext(ctx, p.db, func(tx *sql.Tx) error {
		for _, s := range calc.steps() {
			if _, err := tx.ExecContext(ctx,
				`UPDATE `+m.table()+` SET position = ? WHERE playlist_id = ? AND position = ?`,
				s.to, playlistID, s.from); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return calc.newPositions(positions), nil
}

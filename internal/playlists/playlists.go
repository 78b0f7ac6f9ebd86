// Package playlists stores user playlists of songs and podcast episodes.
package playlists

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	dbutil "github.com/llehouerou/upnext/internal/db"
)

var (
	ErrEmptyName = errors.New("playlist name is empty")
	ErrNotFound  = errors.New("playlist not found")
)

// Playlist represents a playlist metadata (without entries).
// Timestamps are Unix milliseconds.
type Playlist struct {
	ID         int64
	Name       string
	CreatedAt  int64
	LastUsedAt int64
}

// Preview is a playlist with its entry counts, as listed by the picker.
type Preview struct {
	Playlist
	SongCount    int
	EpisodeCount int
}

// Created returns the creation time.
func (p Playlist) Created() time.Time {
	return time.UnixMilli(p.CreatedAt)
}

// SortBy selects the ordering of playlist previews.
type SortBy int

const (
	SortByName SortBy = iota
	SortByDateAdded
	SortBySongCount
)

func (s SortBy) String() string {
	switch s {
	case SortByName:
		return "Name"
	case SortByDateAdded:
		return "Date added"
	case SortBySongCount:
		return "Song count"
	default:
		return "Unknown"
	}
}

// Next cycles to the following sort key.
func (s SortBy) Next() SortBy {
	return (s + 1) % (SortBySongCount + 1)
}

func (s SortBy) column() (string, error) {
	switch s {
	case SortByName:
		return "p.name COLLATE NOCASE", nil
	case SortByDateAdded:
		return "p.created_at", nil
	case SortBySongCount:
		return "(song_count + episode_count)", nil
	default:
		return "", fmt.Errorf("unknown playlist sort %d", s)
	}
}

// Playlists provides database operations for playlists.
type Playlists struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new Playlists instance.
func New(db *sql.DB) *Playlists {
	return &Playlists{db: db, now: time.Now}
}

// Create creates a new playlist.
func (p *Playlists) Create(ctx context.Context, name string) (int64, error) {
	return createPlaylist(ctx, p.db, name, p.now())
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func createPlaylist(ctx context.Context, ex execer, name string, now time.Time) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrEmptyName
	}
	result, err := ex.ExecContext(ctx, `
		INSERT INTO playlists (name, created_at, last_used_at)
		VALUES (?, ?, ?)
	`, name, now.UnixMilli(), now.UnixMilli())
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// Rename renames a playlist.
func (p *Playlists) Rename(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	res, err := p.db.ExecContext(ctx, `UPDATE playlists SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete deletes a playlist and all its entries.
func (p *Playlists) Delete(ctx context.Context, id int64) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = ?`, id)
	return err
}

// Get returns a playlist by its ID.
func (p *Playlists) Get(ctx context.Context, id int64) (*Playlist, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, last_used_at
		FROM playlists
		WHERE id = ?
	`, id)

	var pl Playlist
	err := row.Scan(&pl.ID, &pl.Name, &pl.CreatedAt, &pl.LastUsedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pl, nil
}

// Previews lists every playlist with its entry counts.
func (p *Playlists) Previews(ctx context.Context, sortBy SortBy, order dbutil.SortOrder) ([]Preview, error) {
	col, err := sortBy.column()
	if err != nil {
		return nil, err
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.created_at, p.last_used_at,
			(SELECT COUNT(*) FROM song_playlist_map s WHERE s.playlist_id = p.id) AS song_count,
			(SELECT COUNT(*) FROM episode_playlist_map e WHERE e.playlist_id = p.id) AS episode_count
		FROM playlists p
		ORDER BY `+col+` `+order.SQL()+`, p.id `+order.SQL())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var previews []Preview
	for rows.Next() {
		var pv Preview
		if err := rows.Scan(&pv.ID, &pv.Name, &pv.CreatedAt, &pv.LastUsedAt,
			&pv.SongCount, &pv.EpisodeCount); err != nil {
			return nil, err
		}
		previews = append(previews, pv)
	}
	return previews, rows.Err()
}

// UpdateLastUsed updates the last_used_at timestamp for a playlist.
func (p *Playlists) UpdateLastUsed(ctx context.Context, id int64) error {
	return touchPlaylist(ctx, p.db, id, p.now())
}

func touchPlaylist(ctx context.Context, ex execer, id int64, now time.Time) error {
	res, err := ex.ExecContext(ctx, `UPDATE playlists SET last_used_at = ? WHERE id = ?`, now.UnixMilli(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

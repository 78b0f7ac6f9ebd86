package playlists

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	dbutil "github.com/llehouerou/upnext/internal/db"
	"github.com/llehouerou/upnext/internal/library"
	"github.com/llehouerou/upnext/internal/media"
)

// Target names the playlist a batch is written to: an existing one, or one
// created in the same transaction.
type Target struct {
	ID     int64
	Name   string
	create bool
}

// Existing targets a stored playlist.
func Existing(id int64, name string) Target {
	return Target{ID: id, Name: name}
}

// NewPlaylist targets a playlist created with the given name.
func NewPlaylist(name string) Target {
	return Target{Name: name, create: true}
}

// Creates reports whether the target asks for a new playlist.
func (t Target) Creates() bool {
	return t.create
}

// Skipped is an entry that could not be added.
type Skipped struct {
	Item media.Item
	Err  error
}

// Result summarises one Add.
type Result struct {
	PlaylistID int64
	Songs      int
	Episodes   int
	Skipped    []Skipped
}

// Added returns the number of rows written.
func (r Result) Added() int {
	return r.Songs + r.Episodes
}

// Sink appends batches of queue entries to playlists.
type Sink struct {
	playlists *Playlists
	lib       *library.Library
	logger    zerolog.Logger
}

func NewSink(p *Playlists, lib *library.Library, logger zerolog.Logger) *Sink {
	return &Sink{
		playlists: p,
		lib:       lib,
		logger:    logger.With().Str("component", "playlist_sink").Logger(),
	}
}

// Add writes items to target in one transaction. A new playlist is created
// first, even for an empty batch. Each entry runs in its own savepoint: an
// entry that fails is rolled back alone and reported in Result.Skipped.
// New rows are appended after the existing members of their table.
func (s *Sink) Add(ctx context.Context, target Target, items []media.Item) (Result, error) {
	var res Result
	now := s.playlists.now()

	err := dbutil.WithTxContext(ctx, s.playlists.db, func(tx *sql.Tx) error {
		res = Result{}

		id := target.ID
		if target.create {
			var err error
			if id, err = createPlaylist(ctx, tx, target.Name, now); err != nil {
				return fmt.Errorf("create playlist: %w", err)
			}
		} else if err := touchPlaylist(ctx, tx, id, now); err != nil {
			return err
		}
		res.PlaylistID = id

		nextSong, err := nextPosition(ctx, tx, songMembership, id)
		if err != nil {
			return err
		}
		nextEpisode, err := nextPosition(ctx, tx, episodeMembership, id)
		if err != nil {
			return err
		}

		w := s.lib.Writer(tx)
		for i, it := range items {
			var m membership
			err := dbutil.Savepoint(tx, fmt.Sprintf("entry_%d", i), func() error {
				var err error
				if m, err = membershipFor(it.Kind); err != nil {
					return err
				}
				switch m {
				case songMembership:
					if err := w.UpsertSong(ctx, it); err != nil {
						return err
					}
					return insertMember(ctx, tx, m, id, it.ID, nextSong)
				case episodeMembership:
					if err := w.UpsertEpisode(ctx, it); err != nil {
						return err
					}
					return insertMember(ctx, tx, m, id, it.ID, nextEpisode)
				}
				return nil
			})
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn().Err(err).
					Str("item", it.ID).
					Str("kind", it.Kind.String()).
					Int64("playlist", id).
					Msg("skip playlist entry")
				res.Skipped = append(res.Skipped, Skipped{Item: it, Err: err})
				continue
			}

			switch m {
			case songMembership:
				nextSong++
				res.Songs++
			case episodeMembership:
				nextEpisode++
				res.Episodes++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.logger.Info().
		Int64("playlist", res.PlaylistID).
		Int("songs", res.Songs).
		Int("episodes", res.Episodes).
		Int("skipped", len(res.Skipped)).
		Msg("added to playlist")
	return res, nil
}

func insertMember(ctx context.Context, tx *sql.Tx, m membership, playlistID int64, itemID string, position int) error {
	col := "song_id"
	if m == episodeMembership {
		col = "episode_id"
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO `+m.table()+` (playlist_id, `+col+`, position) VALUES (?, ?, ?)`,
		playlistID, itemID, position)
	return err
}

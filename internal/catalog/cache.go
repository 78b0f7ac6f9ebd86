package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog"

	dbutil "github.com/llehouerou/upnext/internal/db"
	"github.com/llehouerou/upnext/internal/media"
)

// Cache decorates a Client with a SQLite cache of recommendations.
// Cache failures are logged and never fail a lookup.
type Cache struct {
	next    Client
	db      *sql.DB
	ttlDays int
	logger  zerolog.Logger
	now     func() time.Time
}

// NewCache wraps next with a cache stored in db.
func NewCache(next Client, db *sql.DB, ttlDays int, logger zerolog.Logger) *Cache {
	return &Cache{
		next:    next,
		db:      db,
		ttlDays: ttlDays,
		logger:  logger.With().Str("component", "catalog_cache").Logger(),
		now:     time.Now,
	}
}

// Next implements Client.
func (c *Cache) Next(ctx context.Context, seed media.Item) ([]media.Item, error) {
	cached, err := c.get(ctx, seed.ID)
	if err != nil {
		c.logger.Warn().Err(err).Str("seed", seed.ID).Msg("read cache")
	} else if cached != nil {
		return cached, nil
	}

	items, err := c.next.Next(ctx, seed)
	if err != nil {
		return nil, err
	}

	if err := c.set(ctx, seed.ID, items); err != nil {
		c.logger.Warn().Err(err).Str("seed", seed.ID).Msg("write cache")
	}
	return items, nil
}

// isExpired checks if a cached entry is expired.
func (c *Cache) isExpired(fetchedAt int64) bool {
	expiry := c.now().AddDate(0, 0, -c.ttlDays).Unix()
	return fetchedAt < expiry
}

// get returns cached items for seedID, nil if absent or expired. A seed
// answered with no candidates yields an empty, non-nil slice.
func (c *Cache) get(ctx context.Context, seedID string) ([]media.Item, error) {
	var fetchedAt int64
	err := c.db.QueryRowContext(ctx,
		`SELECT fetched_at FROM catalog_next_seeds WHERE seed_id = ?`, seedID,
	).Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if c.isExpired(fetchedAt) {
		return nil, nil
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT item_id, kind, title, artist, album, artwork_url, duration_text, podcast_id
		FROM catalog_next
		WHERE seed_id = ?
		ORDER BY position
	`, seedID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []media.Item{}
	for rows.Next() {
		var it media.Item
		var kind int
		var album, artwork, durationText, podcastID sql.NullString
		if err := rows.Scan(&it.ID, &kind, &it.Title, &it.Artist, &album, &artwork,
			&durationText, &podcastID); err != nil {
			return nil, err
		}

		it.Kind = media.Kind(kind)
		it.Album = dbutil.NullStringValue(album)
		it.ArtworkURL = dbutil.NullStringValue(artwork)
		it.DurationText = dbutil.NullStringValue(durationText)
		it.PodcastID = dbutil.NullStringValue(podcastID)
		if d, ok := media.ParseDurationText(it.DurationText); ok {
			it.Duration = d
		}
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// set replaces the cached items for seedID and stamps the seed, so an
// empty answer is remembered too.
func (c *Cache) set(ctx context.Context, seedID string, items []media.Item) error {
	now := c.now().Unix()
	return dbutil.WithTxContext(ctx, c.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_next WHERE seed_id = ?`, seedID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO catalog_next_seeds (seed_id, fetched_at) VALUES (?, ?)
			ON CONFLICT(seed_id) DO UPDATE SET fetched_at = excluded.fetched_at
		`, seedID, now); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO catalog_next
				(seed_id, position, item_id, kind, title, artist, album, artwork_url, duration_text, podcast_id, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, it := range items {
			if _, err := stmt.ExecContext(ctx, seedID, i, it.ID, int(it.Kind), it.Title, it.Artist,
				it.Album, it.ArtworkURL, it.DisplayDuration(), it.PodcastID, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// CleanExpired removes all expired cache entries.
func (c *Cache) CleanExpired(ctx context.Context) error {
	expiry := c.now().AddDate(0, 0, -c.ttlDays).Unix()
	return dbutil.WithTxContext(ctx, c.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_next WHERE fetched_at < ?`, expiry); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM catalog_next_seeds WHERE fetched_at < ?`, expiry)
		return err
	})
}

package state

import (
	"database/sql"
	"strings"
)

const currentSchemaVersion = 1

var pragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
}

// dsnPragmas are applied by the driver to every connection it opens.
var dsnPragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
	"journal_mode(WAL)",
}

// DSN returns the sqlite data source name for the database file at path.
func DSN(path string) string {
	return "file:" + path + "?_pragma=" + strings.Join(dsnPragmas, "&_pragma=")
}

// applyPragmas sets the pragmas on the connection that runs it. Databases
// opened through DSN already carry them on every connection.
func applyPragmas(db *sql.DB) error {
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS preferences (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			playlist_sort_by INTEGER NOT NULL DEFAULT 1,
			playlist_sort_order INTEGER NOT NULL DEFAULT 1,
			song_sort_by INTEGER NOT NULL DEFAULT 0,
			song_sort_order INTEGER NOT NULL DEFAULT 1
		);

		CREATE TABLE IF NOT EXISTS songs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			artists_text TEXT,
			album TEXT,
			duration_text TEXT,
			thumbnail_url TEXT,
			explicit INTEGER NOT NULL DEFAULT 0,
			is_local INTEGER NOT NULL DEFAULT 0,
			total_play_time_ms INTEGER NOT NULL DEFAULT 0,
			added_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_songs_local ON songs(is_local);

		CREATE TABLE IF NOT EXISTS podcasts (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT,
			thumbnail_url TEXT,
			added_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS podcast_episodes (
			id TEXT PRIMARY KEY,
			podcast_id TEXT NOT NULL REFERENCES podcasts(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			duration_text TEXT,
			thumbnail_url TEXT,
			added_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS playlists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			last_used_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS song_playlist_map (
			playlist_id INTEGER NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
			song_id TEXT NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			UNIQUE(playlist_id, position)
		);

		CREATE TABLE IF NOT EXISTS episode_playlist_map (
			playlist_id INTEGER NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
			episode_id TEXT NOT NULL REFERENCES podcast_episodes(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			UNIQUE(playlist_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_playlists_last_used ON playlists(last_used_at DESC);

		CREATE TABLE IF NOT EXISTS catalog_next (
			seed_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			item_id TEXT NOT NULL,
			kind INTEGER NOT NULL,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			album TEXT,
			artwork_url TEXT,
			duration_text TEXT,
			podcast_id TEXT,
			fetched_at INTEGER NOT NULL,
			PRIMARY KEY (seed_id, position)
		);

		CREATE TABLE IF NOT EXISTS catalog_next_seeds (
			seed_id TEXT PRIMARY KEY,
			fetched_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS queue_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			current_index INTEGER NOT NULL DEFAULT -1,
			repeat_mode INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS queue_items (
			position INTEGER PRIMARY KEY,
			item_id TEXT NOT NULL,
			kind INTEGER NOT NULL,
			title TEXT NOT NULL,
			artist TEXT,
			album TEXT,
			artwork_url TEXT,
			duration_text TEXT,
			podcast_id TEXT,
			explicit INTEGER NOT NULL DEFAULT 0
		);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}

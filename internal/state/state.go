// Package state owns the application database: it opens it, creates the
// schema and persists the queue and view preferences between runs.
package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "upnext"
	dbFileName   = "upnext.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Preferences
}

// Open opens the database at path, or at the default data location when
// path is empty.
func Open(path string) (*Manager, error) {
	if path == "" {
		p, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, err
	}

	m, err := newManager(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return m, nil
}

func newManager(db *sql.DB) (*Manager, error) {
	if err := Init(db); err != nil {
		return nil, err
	}
	return &Manager{db: db}, nil
}

// Init applies the connection pragmas and creates the schema on db.
func Init(db *sql.DB) error {
	if err := applyPragmas(db); err != nil {
		return err
	}
	return initSchema(db)
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	if pending != nil {
		_ = savePreferences(m.db, *pending)
	}

	return m.db.Close()
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

func (m *Manager) GetPreferences() (Preferences, error) {
	m.saveMu.Lock()
	pending := m.pending
	m.saveMu.Unlock()
	if pending != nil {
		return *pending, nil
	}
	return getPreferences(m.db)
}

// SavePreferences stores p after a short delay; later calls within the
// delay replace earlier ones.
func (m *Manager) SavePreferences(p Preferences) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &p

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = savePreferences(m.db, *pending)
		}
	})
}

func (m *Manager) GetQueue() (*QueueState, error) {
	return getQueue(m.db)
}

func (m *Manager) SaveQueue(s QueueState) error {
	return saveQueue(m.db, s)
}

// DefaultDBPath returns the database location under the XDG data dir.
func DefaultDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

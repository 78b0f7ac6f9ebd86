package state

import "database/sql"

// Mock is a test double for Manager.
type Mock struct {
	prefs      Preferences
	queueState *QueueState
	saved      []QueueState
	closed     bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{prefs: DefaultPreferences()}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) GetPreferences() (Preferences, error) { return m.prefs, nil }

func (m *Mock) SavePreferences(p Preferences) { m.prefs = p }

func (m *Mock) SaveQueue(s QueueState) error {
	m.saved = append(m.saved, s)
	return nil
}

func (m *Mock) GetQueue() (*QueueState, error) {
	if m.queueState == nil {
		return &QueueState{CurrentIndex: -1}, nil
	}
	return m.queueState, nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetQueue(state *QueueState) { m.queueState = state }

func (m *Mock) SavedQueues() []QueueState { return m.saved }

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)

package player

import (
	"math/rand/v2"
	"sync"

	"github.com/llehouerou/upnext/internal/media"
)

// Memory is an in-memory Engine. It models the timeline, the current index
// and the play-when-ready flag without producing audio; a real backend drives
// it through Finish and ReportError.
type Memory struct {
	mu            sync.Mutex
	tl            timeline
	current       int // -1 if the timeline is empty
	playWhenReady bool
	state         State
	repeat        RepeatMode
	shuffle       func(n int, swap func(i, j int))

	ls listeners
}

// NewMemory creates an empty in-memory engine.
func NewMemory() *Memory {
	return &Memory{
		current: -1,
		state:   StateIdle,
		shuffle: rand.Shuffle,
	}
}

// AddListener registers l and returns its handle.
func (m *Memory) AddListener(l Listener) *Handle {
	return m.ls.add(l)
}

// Windows returns a copy of the timeline.
func (m *Memory) Windows() []Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tl.copyWindows()
}

// Timeline returns a copy of the timeline together with the current index,
// read under one lock.
func (m *Memory) Timeline() ([]Window, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tl.copyWindows(), m.current
}

// CurrentIndex returns the index of the current window, -1 if none.
func (m *Memory) CurrentIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// PlayWhenReady returns the play-when-ready flag.
func (m *Memory) PlayWhenReady() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playWhenReady
}

// State returns the playback state.
func (m *Memory) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// RepeatMode returns the repeat mode.
func (m *Memory) RepeatMode() RepeatMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.repeat
}

// SetRepeatMode sets the repeat mode.
func (m *Memory) SetRepeatMode(mode RepeatMode) {
	m.mu.Lock()
	m.repeat = mode
	m.mu.Unlock()
}

// Play sets play-when-ready.
func (m *Memory) Play() {
	m.setPlayWhenReady(true)
}

// Pause clears play-when-ready.
func (m *Memory) Pause() {
	m.setPlayWhenReady(false)
}

func (m *Memory) setPlayWhenReady(v bool) {
	m.mu.Lock()
	if m.playWhenReady == v {
		m.mu.Unlock()
		return
	}
	m.playWhenReady = v
	m.mu.Unlock()

	m.ls.dispatch([]event{playWhenReadyEvent(v)})
}

// SeekToDefaultPosition makes the window at index current.
func (m *Memory) SeekToDefaultPosition(index int) error {
	m.mu.Lock()
	if index < 0 || index >= m.tl.len() {
		m.mu.Unlock()
		return ErrIndexOutOfRange
	}
	events := m.changeCurrentLocked(index)
	m.mu.Unlock()

	m.ls.dispatch(events)
	return nil
}

// Next moves to the following window, wrapping around when the queue loops.
func (m *Memory) Next() error {
	m.mu.Lock()
	next, ok := m.nextIndexLocked(false)
	if !ok {
		m.mu.Unlock()
		return ErrIndexOutOfRange
	}
	events := m.changeCurrentLocked(next)
	m.mu.Unlock()

	m.ls.dispatch(events)
	return nil
}

// Previous moves to the preceding window.
func (m *Memory) Previous() error {
	m.mu.Lock()
	prev := m.current - 1
	if prev < 0 {
		if m.repeat != RepeatAll || m.tl.len() == 0 {
			m.mu.Unlock()
			return ErrIndexOutOfRange
		}
		prev = m.tl.len() - 1
	}
	events := m.changeCurrentLocked(prev)
	m.mu.Unlock()

	m.ls.dispatch(events)
	return nil
}

// Finish simulates the current item playing to its end.
func (m *Memory) Finish() {
	m.mu.Lock()
	if m.current < 0 {
		m.mu.Unlock()
		return
	}
	next, ok := m.nextIndexLocked(true)
	var events []event
	if ok {
		events = m.changeCurrentLocked(next)
		if m.repeat == RepeatOne {
			// Same window again: still a transition for listeners.
			events = append(events, transitionEvent(m.tl.at(next)))
		}
	} else {
		events = m.setStateLocked(StateEnded)
	}
	m.mu.Unlock()

	m.ls.dispatch(events)
}

// ReportError delivers a playback error to the listeners.
func (m *Memory) ReportError(err error) {
	if err == nil {
		return
	}
	m.ls.dispatch([]event{errorEvent(err)})
}

func (m *Memory) nextIndexLocked(auto bool) (int, bool) {
	n := m.tl.len()
	if n == 0 {
		return 0, false
	}
	if auto && m.repeat == RepeatOne {
		return m.current, true
	}
	next := m.current + 1
	if next < n {
		return next, true
	}
	if m.repeat == RepeatAll {
		return 0, true
	}
	return 0, false
}

// AddItems appends items at the end of the timeline.
func (m *Memory) AddItems(items ...media.Item) {
	if len(items) == 0 {
		return
	}
	m.mu.Lock()
	m.tl.insert(m.tl.len(), items...)
	events := m.afterTimelineChangeLocked(m.currentUIDLocked())
	m.mu.Unlock()

	m.ls.dispatch(events)
}

// AddNext inserts items right after the current window.
func (m *Memory) AddNext(items ...media.Item) {
	if len(items) == 0 {
		return
	}
	m.mu.Lock()
	m.tl.insert(m.current+1, items...)
	events := m.afterTimelineChangeLocked(m.currentUIDLocked())
	m.mu.Unlock()

	m.ls.dispatch(events)
}

// SetItems replaces the timeline and makes current the active window.
func (m *Memory) SetItems(items []media.Item, current int) {
	m.mu.Lock()
	prev := m.currentUIDLocked()
	m.tl.clear()
	m.tl.insert(0, items...)
	if len(items) == 0 {
		m.current = -1
	} else {
		m.current = max(0, min(current, len(items)-1))
	}
	events := m.afterTimelineChangeLocked(prev)
	m.mu.Unlock()

	m.ls.dispatch(events)
}

// RemoveAt removes the window at index.
// Removing the current window makes the following one current.
func (m *Memory) RemoveAt(index int) error {
	m.mu.Lock()
	prev := m.currentUIDLocked()
	if !m.tl.remove(index) {
		m.mu.Unlock()
		return ErrIndexOutOfRange
	}

	if m.current > index {
		m.current--
	} else if m.current == index && m.current >= m.tl.len() {
		m.current = m.tl.len() - 1
	}

	events := m.afterTimelineChangeLocked(prev)
	m.mu.Unlock()

	m.ls.dispatch(events)
	return nil
}

// Move moves the window at from to to; the current window follows its entry.
func (m *Memory) Move(from, to int) error {
	m.mu.Lock()
	prev := m.currentUIDLocked()
	if !m.tl.move(from, to) {
		m.mu.Unlock()
		return ErrIndexOutOfRange
	}

	switch {
	case from == m.current:
		m.current = to
	case from < m.current && to >= m.current:
		m.current--
	case from > m.current && to <= m.current:
		m.current++
	}

	events := m.afterTimelineChangeLocked(prev)
	m.mu.Unlock()

	m.ls.dispatch(events)
	return nil
}

// Shuffle randomises the timeline, keeping the current window first.
func (m *Memory) Shuffle() {
	m.mu.Lock()
	if m.tl.len() < 2 {
		m.mu.Unlock()
		return
	}
	prev := m.currentUIDLocked()
	if m.current > 0 {
		m.tl.move(m.current, 0)
	}
	start := 0
	if m.current >= 0 {
		m.current = 0
		start = 1
	}
	rest := m.tl.windows[start:]
	m.shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })

	events := m.afterTimelineChangeLocked(prev)
	m.mu.Unlock()

	m.ls.dispatch(events)
}

func (m *Memory) currentUIDLocked() string {
	if w := m.tl.at(m.current); w != nil {
		return w.UID
	}
	return ""
}

// afterTimelineChangeLocked normalises the current index and builds the
// events for a timeline mutation.
func (m *Memory) afterTimelineChangeLocked(prevUID string) []event {
	n := m.tl.len()
	if n == 0 {
		m.current = -1
	} else if m.current < 0 {
		m.current = 0
	}

	events := []event{timelineEvent(m.tl.copyWindows())}
	if uid := m.currentUIDLocked(); uid != prevUID {
		events = append(events, transitionEvent(m.tl.at(m.current)))
	}

	switch {
	case n == 0:
		events = append(events, m.setStateLocked(StateIdle)...)
	case m.state == StateIdle:
		events = append(events, m.setStateLocked(StateReady)...)
	}
	return events
}

func (m *Memory) changeCurrentLocked(index int) []event {
	prev := m.currentUIDLocked()
	m.current = index
	var events []event
	if w := m.tl.at(index); w != nil && w.UID != prev {
		events = append(events, transitionEvent(w))
	}
	if m.state == StateEnded || m.state == StateIdle {
		events = append(events, m.setStateLocked(StateReady)...)
	}
	return events
}

func (m *Memory) setStateLocked(s State) []event {
	if m.state == s {
		return nil
	}
	m.state = s
	return []event{stateEvent(s)}
}

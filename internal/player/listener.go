package player

import "sync"

// Listener receives engine events. Nil callbacks are skipped.
type Listener struct {
	TimelineChanged      func(windows []Window)
	MediaItemTransition  func(window *Window) // nil when the timeline became empty
	PlayWhenReadyChanged func(playWhenReady bool)
	PlaybackStateChanged func(state State)
	PlayerError          func(err error)
}

// Handle is a disposable listener registration.
type Handle struct {
	once    sync.Once
	release func()
}

func newHandle(release func()) *Handle {
	return &Handle{release: release}
}

// NopHandle returns a handle that releases nothing, for absent engines.
func NopHandle() *Handle {
	return &Handle{}
}

// Release unregisters the listener. Safe to call more than once and on nil.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		if h.release != nil {
			h.release()
		}
	})
}

type registration struct {
	id uint64
	l  Listener
}

// listeners keeps registrations in subscription order.
type listeners struct {
	mu     sync.Mutex
	nextID uint64
	regs   []registration
}

func (ls *listeners) add(l Listener) *Handle {
	ls.mu.Lock()
	ls.nextID++
	id := ls.nextID
	ls.regs = append(ls.regs, registration{id: id, l: l})
	ls.mu.Unlock()

	return newHandle(func() { ls.remove(id) })
}

func (ls *listeners) remove(id uint64) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	for i, r := range ls.regs {
		if r.id == id {
			ls.regs = append(ls.regs[:i], ls.regs[i+1:]...)
			return
		}
	}
}

func (ls *listeners) snapshot() []Listener {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	out := make([]Listener, len(ls.regs))
	for i, r := range ls.regs {
		out[i] = r.l
	}
	return out
}

// event is a deferred callback invocation, fired after the engine lock is released.
type event func(l Listener)

func (ls *listeners) dispatch(events []event) {
	if len(events) == 0 {
		return
	}
	for _, l := range ls.snapshot() {
		for _, e := range events {
			e(l)
		}
	}
}

func timelineEvent(ws []Window) event {
	return func(l Listener) {
		if l.TimelineChanged != nil {
			l.TimelineChanged(ws)
		}
	}
}

func transitionEvent(w *Window) event {
	return func(l Listener) {
		if l.MediaItemTransition != nil {
			l.MediaItemTransition(w)
		}
	}
}

func playWhenReadyEvent(v bool) event {
	return func(l Listener) {
		if l.PlayWhenReadyChanged != nil {
			l.PlayWhenReadyChanged(v)
		}
	}
}

func stateEvent(s State) event {
	return func(l Listener) {
		if l.PlaybackStateChanged != nil {
			l.PlaybackStateChanged(s)
		}
	}
}

func errorEvent(err error) event {
	return func(l Listener) {
		if l.PlayerError != nil {
			l.PlayerError(err)
		}
	}
}

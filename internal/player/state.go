// internal/player/state.go
package player

// State is the engine's playback state.
//
//	┌──────┐  items set   ┌───────────┐  ready   ┌───────┐
//	│ Idle │ ───────────▶ │ Buffering │ ───────▶ │ Ready │
//	└──────┘              └───────────┘          └───────┘
//	    ▲                                          │    ▲
//	    │ queue emptied                   last item│    │ seek / next
//	    │                                   ended  ▼    │
//	    └──────────────────────────────────────  ┌───────┐
//	                                             │ Ended │
//	                                             └───────┘
//
// The in-memory engine has no loading phase and moves straight from Idle to
// Ready. Buffering exists for engines backed by a network stream.
type State int

const (
	StateIdle State = iota
	StateBuffering
	StateReady
	StateEnded
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateBuffering:
		return "Buffering"
	case StateReady:
		return "Ready"
	case StateEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// ShouldBePlaying reports whether audio is (or is about to be) audible.
func ShouldBePlaying(playWhenReady bool, s State) bool {
	return playWhenReady && (s == StateReady || s == StateBuffering)
}

// RepeatMode controls what happens when an item ends.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll            // queue loop
	RepeatOne
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "Off"
	case RepeatAll:
		return "All"
	case RepeatOne:
		return "One"
	default:
		return "Unknown"
	}
}

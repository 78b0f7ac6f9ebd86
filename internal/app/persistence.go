package app

import (
	"github.com/llehouerou/upnext/internal/player"
	"github.com/llehouerou/upnext/internal/state"
)

// SaveQueue stores the engine's timeline, current index and repeat mode.
func SaveQueue(s state.Interface, e player.Engine) error {
	if e == nil {
		return nil
	}
	ws, current := e.Timeline()
	qs := state.QueueState{
		CurrentIndex: current,
		RepeatMode:   int(e.RepeatMode()),
	}
	for _, w := range ws {
		qs.Items = append(qs.Items, w.Item)
	}
	return s.SaveQueue(qs)
}

// RestoreQueue loads the saved queue into e without starting playback.
// loop forces the queue to repeat regardless of the saved mode.
func RestoreQueue(s state.Interface, e player.Engine, loop bool) error {
	qs, err := s.GetQueue()
	if err != nil {
		return err
	}
	mode := player.RepeatMode(qs.RepeatMode)
	if loop {
		mode = player.RepeatAll
	}
	e.SetRepeatMode(mode)
	if len(qs.Items) > 0 {
		e.SetItems(qs.Items, max(qs.CurrentIndex, 0))
	}
	return nil
}

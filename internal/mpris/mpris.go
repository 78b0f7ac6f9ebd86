//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog"

	"github.com/llehouerou/upnext/internal/player"
)

// Adapter connects the playback engine to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(engine player.Engine, logger zerolog.Logger) (*Adapter, error) {
	logger = logger.With().Str("component", "mpris").Logger()

	a := &Adapter{
		server: server.NewServer("upnext", &rootAdapter{}, &playerAdapter{engine: engine}),
	}

	go func() {
		if err := a.server.Listen(); err != nil {
			logger.Warn().Err(err).Msg("mpris server stopped")
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // the app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Upnext", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/mp4", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and optional interfaces.
type playerAdapter struct {
	engine player.Engine
}

func (p *playerAdapter) Next() error {
	return p.engine.Next()
}

func (p *playerAdapter) Previous() error {
	return p.engine.Previous()
}

func (p *playerAdapter) Pause() error {
	p.engine.Pause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	if p.engine.PlayWhenReady() {
		p.engine.Pause()
	} else {
		p.engine.Play()
	}
	return nil
}

// Stop pauses: the queue keeps its current entry.
func (p *playerAdapter) Stop() error {
	p.engine.Pause()
	return nil
}

func (p *playerAdapter) Play() error {
	p.engine.Play()
	return nil
}

func (p *playerAdapter) Seek(_ types.Microseconds) error {
	return nil // Not supported
}

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error {
	return nil // Not supported
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch {
	case p.engine.CurrentIndex() < 0:
		return types.PlaybackStatusStopped, nil
	case player.ShouldBePlaying(p.engine.PlayWhenReady(), p.engine.State()):
		return types.PlaybackStatusPlaying, nil
	default:
		return types.PlaybackStatusPaused, nil
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) current() (player.Window, bool) {
	ws, i := p.engine.Timeline()
	if i < 0 || i >= len(ws) {
		return player.Window{}, false
	}
	return ws[i], true
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	w, ok := p.current()
	if !ok {
		return types.Metadata{}, nil
	}

	it := w.Item
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(w.UID)),
		Length:  types.Microseconds(it.Duration.Microseconds()),
		Title:   it.Title,
		Album:   it.Album,
		ArtUrl:  ArtURL(it.ArtworkURL),
	}
	if it.Artist != "" {
		meta.Artist = []string{it.Artist}
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil // Volume control not exposed by the engine
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return 0, nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	ws, i := p.engine.Timeline()
	return i >= 0 && (i+1 < len(ws) || p.engine.RepeatMode() == player.RepeatAll), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	i := p.engine.CurrentIndex()
	return i > 0 || (i == 0 && p.engine.RepeatMode() == player.RepeatAll), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.engine.CurrentIndex() >= 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	switch p.engine.RepeatMode() {
	case player.RepeatOne:
		return types.LoopStatusTrack, nil
	case player.RepeatAll:
		return types.LoopStatusPlaylist, nil
	case player.RepeatOff:
		return types.LoopStatusNone, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	switch status {
	case types.LoopStatusNone:
		p.engine.SetRepeatMode(player.RepeatOff)
	case types.LoopStatusTrack:
		p.engine.SetRepeatMode(player.RepeatOne)
	case types.LoopStatusPlaylist:
		p.engine.SetRepeatMode(player.RepeatAll)
	}
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle. Shuffling
// is a one-off reorder here, so the property always reads false.
func (p *playerAdapter) Shuffle() (bool, error) {
	return false, nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	if shuffle {
		p.engine.Shuffle()
	}
	return nil
}

func formatTrackID(uid string) string {
	h := fnv.New64a()
	h.Write([]byte(uid))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}

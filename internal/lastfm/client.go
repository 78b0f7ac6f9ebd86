package lastfm

import (
	"errors"
	"fmt"

	"github.com/shkh/lastfm-go/lastfm"
)

// ErrNoSeed is returned when a lookup lacks the artist or track name.
var ErrNoSeed = errors.New("artist and track are required")

// Client wraps the Last.fm API for recommendation lookups.
type Client struct {
	api *lastfm.Api
}

// New creates a new Last.fm client with the given API credentials.
func New(apiKey, apiSecret string) *Client {
	return &Client{
		api: lastfm.New(apiKey, apiSecret),
	}
}

// GetSimilarTracks fetches tracks similar to artist/track, best match first.
func (c *Client) GetSimilarTracks(artist, track string, limit int) ([]SimilarTrack, error) {
	if artist == "" || track == "" {
		return nil, ErrNoSeed
	}

	params := lastfm.P{
		"artist":      artist,
		"track":       track,
		"autocorrect": 1,
	}
	if limit > 0 {
		params["limit"] = limit
	}

	result, err := c.api.Track.GetSimilar(params)
	if err != nil {
		return nil, fmt.Errorf("get similar tracks: %w", err)
	}

	tracks := make([]SimilarTrack, 0, len(result.Tracks))
	for _, t := range result.Tracks {
		tracks = append(tracks, SimilarTrack{
			Name:   t.Name,
			Artist: t.Artist.Name,
			MBID:   t.Mbid,
		})
	}

	return tracks, nil
}

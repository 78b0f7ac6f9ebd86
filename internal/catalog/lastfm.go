package catalog

import (
	"context"
	"strings"

	"github.com/llehouerou/upnext/internal/lastfm"
	"github.com/llehouerou/upnext/internal/media"
)

const defaultLimit = 25

type similarSource interface {
	GetSimilarTracks(artist, track string, limit int) ([]lastfm.SimilarTrack, error)
}

// Lastfm recommends tracks through Last.fm's track.getSimilar.
type Lastfm struct {
	src   similarSource
	limit int
}

// NewLastfm creates a catalog backed by a Last.fm client.
func NewLastfm(client *lastfm.Client, limit int) *Lastfm {
	return newLastfm(client, limit)
}

func newLastfm(src similarSource, limit int) *Lastfm {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Lastfm{src: src, limit: limit}
}

// Next implements Client.
func (l *Lastfm) Next(ctx context.Context, seed media.Item) ([]media.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	similar, err := l.src.GetSimilarTracks(seed.Artist, seed.Title, l.limit)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := make([]media.Item, 0, len(similar))
	for _, t := range similar {
		if t.Name == "" {
			continue
		}
		items = append(items, media.Item{
			ID:     TrackID(t.Artist, t.Name, t.MBID),
			Title:  t.Name,
			Artist: t.Artist,
			Kind:   media.KindMusic,
		})
	}
	return items, nil
}

// TrackID derives a stable identifier for a Last.fm track.
// Recordings with a MusicBrainz ID use it; others fall back to the
// normalised artist and title.
func TrackID(artist, title, mbid string) string {
	if mbid != "" {
		return "mbid:" + strings.ToLower(mbid)
	}
	return "lastfm:" + normalize(artist) + ":" + normalize(title)
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

package lastfm

// SimilarTrack is a track Last.fm considers close to a seed track.
type SimilarTrack struct {
	Name   string
	Artist string
	MBID   string // MusicBrainz recording ID, may be empty
}

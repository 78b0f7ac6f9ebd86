//go:build linux

package mpris

import (
	"os"
	"path/filepath"
	"strings"
)

// coverNames lists common album art filenames in priority order.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"album.jpg", "album.png", "album.jpeg",
	"front.jpg", "front.png", "front.jpeg",
}

// ArtURL turns an item's artwork reference into an mpris:artUrl.
// Remote URLs pass through. A local image file is used as is; a local
// directory is searched for a cover file. Returns "" when nothing fits.
func ArtURL(artwork string) string {
	switch {
	case artwork == "":
		return ""
	case strings.HasPrefix(artwork, "http://"),
		strings.HasPrefix(artwork, "https://"),
		strings.HasPrefix(artwork, "file://"):
		return artwork
	}

	info, err := os.Stat(artwork)
	if err != nil {
		return ""
	}
	if !info.IsDir() {
		return "file://" + artwork
	}
	if p := FindAlbumArt(artwork); p != "" {
		return "file://" + p
	}
	return ""
}

// FindAlbumArt looks for album art in dir.
// Returns the path to the art file, or empty string if not found.
func FindAlbumArt(dir string) string {
	for _, name := range coverNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

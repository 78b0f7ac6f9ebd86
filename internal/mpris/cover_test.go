//go:build linux

package mpris

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindAlbumArt(t *testing.T) {
	dir := t.TempDir()
	coverPath := filepath.Join(dir, "cover.jpg")
	if err := os.WriteFile(coverPath, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}

	got := FindAlbumArt(dir)
	if got != coverPath {
		t.Errorf("FindAlbumArt() = %q, want %q", got, coverPath)
	}
}

func TestFindAlbumArt_Priority(t *testing.T) {
	dir := t.TempDir()

	// folder.jpg ranks below cover.jpg
	for _, name := range []string{"folder.jpg", "cover.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("fake"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	want := filepath.Join(dir, "cover.jpg")
	if got := FindAlbumArt(dir); got != want {
		t.Errorf("FindAlbumArt() = %q, want %q (higher priority)", got, want)
	}
}

func TestArtURL(t *testing.T) {
	dir := t.TempDir()
	image := filepath.Join(dir, "art.png")
	if err := os.WriteFile(image, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}
	album := filepath.Join(dir, "album")
	if err := os.Mkdir(album, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(album, "front.png"), []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		artwork string
		want    string
	}{
		{"empty", "", ""},
		{"remote", "https://img.example/a.jpg", "https://img.example/a.jpg"},
		{"file url", "file:///tmp/a.jpg", "file:///tmp/a.jpg"},
		{"local image", image, "file://" + image},
		{"album dir", album, "file://" + filepath.Join(album, "front.png")},
		{"dir without cover", dir, ""},
		{"missing", filepath.Join(dir, "nope.jpg"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArtURL(tt.artwork); got != tt.want {
				t.Errorf("ArtURL(%q) = %q, want %q", tt.artwork, got, tt.want)
			}
		})
	}
}

// Command suggest prints the "up next" suggestions for one track, the way
// the queue screen would show them under a queue holding only that track.
//
//	suggest "Artist" "Title"
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/upnext/internal/catalog"
	"github.com/llehouerou/upnext/internal/config"
	"github.com/llehouerou/upnext/internal/lastfm"
	"github.com/llehouerou/upnext/internal/media"
	"github.com/llehouerou/upnext/internal/player"
	"github.com/llehouerou/upnext/internal/queue"
	"github.com/llehouerou/upnext/internal/state"
	"github.com/llehouerou/upnext/internal/suggest"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: suggest ARTIST TITLE")
		os.Exit(2)
	}
	artist, title := os.Args[1], os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if !cfg.HasLastfmConfig() {
		logger.Fatal().Msg("lastfm.api_key and lastfm.api_secret must be set")
	}

	stateMgr, err := state.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer stateMgr.Close()

	sugg := cfg.GetSuggestionsConfig()
	client := catalog.NewCache(
		catalog.NewLastfm(lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret), sugg.Limit),
		stateMgr.DB(), sugg.CacheTTLDays, logger,
	)

	seed := media.Item{
		ID:     catalog.TrackID(artist, title, ""),
		Title:  title,
		Artist: artist,
		Kind:   media.KindMusic,
	}
	engine := player.NewMemory()
	engine.SetItems([]media.Item{seed}, 0)
	snap := queue.NewReader(engine).Read()

	fetcher := suggest.NewFetcher(client, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	res := fetcher.Fetch(ctx, fetcher.Begin(seed))
	if !fetcher.Accept(res) {
		logger.Fatal().Msg("result went stale")
	}
	set := suggest.FromResult(res)
	if set.Status == suggest.StatusFailed {
		logger.Fatal().Msg("fetch failed, see log above")
	}

	items := set.Items(snap)
	logger.Info().Int("count", len(items)).Str("seed", seed.ID).Msg("suggestions")
	for i, it := range items {
		fmt.Printf("%2d. %s - %s  %s\n", i+1, it.Artist, it.Title, it.DisplayDuration())
	}
}

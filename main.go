package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/upnext/internal/app"
	"github.com/llehouerou/upnext/internal/catalog"
	"github.com/llehouerou/upnext/internal/config"
	"github.com/llehouerou/upnext/internal/lastfm"
	"github.com/llehouerou/upnext/internal/library"
	"github.com/llehouerou/upnext/internal/logging"
	"github.com/llehouerou/upnext/internal/mpris"
	"github.com/llehouerou/upnext/internal/player"
	"github.com/llehouerou/upnext/internal/playlists"
	"github.com/llehouerou/upnext/internal/queue"
	"github.com/llehouerou/upnext/internal/queueview"
	"github.com/llehouerou/upnext/internal/state"
	"github.com/llehouerou/upnext/internal/suggest"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, logFile, err := logging.Open(cfg.Log.File, cfg.LogLevel())
	if err != nil {
		// Logs are best effort; the UI owns the terminal.
		logger = zerolog.New(io.Discard)
	} else {
		defer logFile.Close()
	}

	stateMgr, err := state.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer stateMgr.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db := stateMgr.DB()
	lib := library.New(db)
	store := playlists.New(db)
	sink := playlists.NewSink(store, lib, logger)

	engine := player.NewMemory()
	if err := app.RestoreQueue(stateMgr, engine, cfg.Queue.Loop); err != nil {
		logger.Warn().Err(err).Msg("restore queue")
	}

	fetcher := suggest.NewFetcher(newCatalog(ctx, cfg, db, logger), logger)
	sugg := cfg.GetSuggestionsConfig()
	view := queueview.New(engine, fetcher, sink, queueview.Options{
		SwipeToRemove: cfg.SwipeToRemove(),
		Visible:       sugg.Visible,
	})

	tracker := library.NewPlayTracker(lib, logger)
	defer tracker.Flush(context.Background())
	releaseTracker := attachTracker(ctx, view.Reader(), tracker)
	defer releaseTracker()

	if adapter, err := mpris.New(engine, logger); err != nil {
		logger.Warn().Err(err).Msg("start mpris")
	} else {
		defer adapter.Close()
	}

	m := app.New(ctx, app.Deps{
		Engine:    engine,
		View:      view,
		Playlists: store,
		Library:   lib,
		State:     stateMgr,
		Logger:    logger,
	})
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := p.Run()

	if err := app.SaveQueue(stateMgr, engine); err != nil {
		logger.Error().Err(err).Msg("save queue")
	}
	if runErr != nil {
		return fmt.Errorf("run: %w", runErr)
	}
	return nil
}

// newCatalog returns the suggestion source: Last.fm behind the local cache
// when credentials are configured, nothing otherwise.
func newCatalog(ctx context.Context, cfg *config.Config, db *sql.DB, logger zerolog.Logger) catalog.Client {
	if !cfg.HasLastfmConfig() {
		logger.Info().Msg("last.fm not configured, suggestions disabled")
		return nil
	}
	sugg := cfg.GetSuggestionsConfig()
	src := catalog.NewLastfm(lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret), sugg.Limit)
	cache := catalog.NewCache(src, db, sugg.CacheTTLDays, logger)
	if err := cache.CleanExpired(ctx); err != nil {
		logger.Warn().Err(err).Msg("clean suggestion cache")
	}
	return cache
}

// attachTracker feeds the play tracker from engine callbacks.
func attachTracker(ctx context.Context, r *queue.Reader, t *library.PlayTracker) func() {
	h1 := r.Attach(func(s queue.Snapshot) {
		e, ok := s.ActiveEntry()
		t.SetActive(ctx, e.Item, ok)
	})
	h2 := r.AttachPlayback(t.SetPlaying)
	return func() {
		h1.Release()
		h2.Release()
	}
}

// Package main seeds the chord catalog from a fixed caption list.
// The sync is idempotent, so the command can run on every deploy;
// existing rows are reused and only missing ones are inserted.
package main

import (
	"context"
	"os"
	"time"

	"github.com/chordbase/chordbase-api/internal/config"
	"github.com/chordbase/chordbase-api/internal/database"
	"github.com/chordbase/chordbase-api/internal/logging"
	"github.com/chordbase/chordbase-api/internal/models"
	"github.com/chordbase/chordbase-api/internal/repository"
	"github.com/chordbase/chordbase-api/internal/service"
	"github.com/chordbase/chordbase-api/internal/version"
)

// seedCaptions is the caption timeline for the intro lesson video.
// Chords repeat across the progression; the sync collapses them to one
// variation per chord name and one position per name/fret pair.
var seedCaptions = []models.ChordCaption{
	{ChordName: "Am", FretPosition: "pos1", StartTime: 0, EndTime: 4},
	{ChordName: "C", FretPosition: "pos1", StartTime: 4, EndTime: 8},
	{ChordName: "G", FretPosition: "pos1", StartTime: 8, EndTime: 12},
	{ChordName: "Am", FretPosition: "pos1", StartTime: 12, EndTime: 16},
	{ChordName: "Em", FretPosition: "pos1", StartTime: 16, EndTime: 20},
	{ChordName: "C", FretPosition: "pos3", StartTime: 20, EndTime: 24},
	{ChordName: "F", FretPosition: "pos1", StartTime: 24, EndTime: 28},
	{ChordName: "G", FretPosition: "pos1", StartTime: 28, EndTime: 32},
	{ChordName: "Dm", FretPosition: "pos1", StartTime: 32, EndTime: 36},
}

func main() {
	logger := logging.SetDefault()

	v := version.Get()
	logger.Info("starting seed-chords", "version", v.Version, "commit", v.Commit)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := database.MigrateWithLogger(db, logger); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	repos := repository.NewRepositories(db)
	services, err := service.NewServices(cfg, repos, logger)
	if err != nil {
		logger.Error("failed to initialize services", "error", err)
		os.Exit(1)
	}

	if services.Storage.IsEnabled() {
		logger.Info("diagram storage enabled, uploaded assets will resolve")
	} else {
		logger.Info("diagram storage disabled, positions carry derived asset URLs only")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := services.Chord.SyncCaptions(ctx, seedCaptions)
	if err != nil {
		logger.Error("catalog sync failed", "error", err)
		os.Exit(1)
	}

	logger.Info("catalog sync complete",
		"variations_created", result.VariationsCreated,
		"variations_reused", result.VariationsReused,
		"positions_created", result.PositionsCreated,
		"positions_skipped", result.PositionsSkipped,
	)

	if err := services.Chord.VerifySync(ctx, seedCaptions); err != nil {
		logger.Error("catalog verification failed", "error", err)
		os.Exit(1)
	}
}

// Package main writes the feature_gates setting from a JSON document.
// The document is validated before it is stored; a malformed document
// would otherwise silently push every tier back to its defaults when
// the API next refreshes.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"time"

	"github.com/chordbase/chordbase-api/internal/config"
	"github.com/chordbase/chordbase-api/internal/constants"
	"github.com/chordbase/chordbase-api/internal/database"
	"github.com/chordbase/chordbase-api/internal/logging"
	"github.com/chordbase/chordbase-api/internal/models"
	"github.com/chordbase/chordbase-api/internal/repository"
	"github.com/chordbase/chordbase-api/internal/version"
)

func main() {
	file := flag.String("file", "-", "path to the gates JSON document, or - for stdin")
	flag.Parse()

	logger := logging.SetDefault()

	v := version.Get()
	logger.Info("starting set-feature-gates", "version", v.Version, "commit", v.Commit)

	var raw []byte
	var err error
	if *file == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(*file)
	}
	if err != nil {
		logger.Error("failed to read gates document", "error", err)
		os.Exit(1)
	}

	limits, err := constants.ParseFeatureGates(string(raw))
	if err != nil {
		logger.Error("gates document is not valid", "error", err)
		os.Exit(1)
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos := repository.NewRepositories(db)
	if err := repos.Settings.UpsertSetting(ctx, models.FeatureGatesSettingKey, string(raw)); err != nil {
		logger.Error("failed to write feature gates", "error", err)
		os.Exit(1)
	}

	for _, tier := range constants.TierNames {
		logger.Info("feature gates updated",
			"tier", tier,
			"daily_searches", limits.SearchLimit(tier),
			"daily_watch_mins", limits.WatchTimeLimit(tier),
			"favorites", limits.FavoriteLimit(tier),
		)
	}
}

// Package service contains the business logic layer.
// Note: Authentication, sessions, and passwords are handled by the
// external auth provider. The UserID in services references provider
// user IDs (e.g., "user_xxx").
package service

import (
	"fmt"
	"log/slog"

	"github.com/chordbase/chordbase-api/internal/config"
	"github.com/chordbase/chordbase-api/internal/constants"
	"github.com/chordbase/chordbase-api/internal/repository"
)

// Services holds all service instances.
type Services struct {
	Chord   *ChordService
	Profile *ProfileService
	Storage *StorageService
	Gates   *constants.FeatureGateLoader
}

// NewServices creates all service instances.
func NewServices(cfg *config.Config, repos *repository.Repositories, logger *slog.Logger) (*Services, error) {
	storageSvc, err := NewStorageService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage service: %w", err)
	}

	gates := constants.NewFeatureGateLoader(repos.Settings, cfg.GateRefreshInterval, logger)

	return &Services{
		Chord:   NewChordService(repos, storageSvc, logger),
		Profile: NewProfileService(repos, gates, logger),
		Storage: storageSvc,
		Gates:   gates,
	}, nil
}

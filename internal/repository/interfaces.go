// Package repository defines repository interfaces for data access.
// Lookups return (nil, nil) when no row matches; any non-nil error is a
// real store failure.
package repository

import (
	"context"
	"database/sql"

	"github.com/chordbase/chordbase-api/internal/models"
)

// ChordVariationRepository defines methods for chord variation data access.
type ChordVariationRepository interface {
	Create(ctx context.Context, v *models.ChordVariation) error
	// GetByName returns the variation with the given chord name, or (nil, nil).
	GetByName(ctx context.Context, chordName string) (*models.ChordVariation, error)
	// ListAll returns every variation ordered by chord name.
	ListAll(ctx context.Context) ([]*models.ChordVariation, error)
}

// ChordPositionRepository defines methods for chord position data access.
type ChordPositionRepository interface {
	Create(ctx context.Context, p *models.ChordPosition) error
	// GetByNameAndFret returns the position matching both chord name and
	// fret position, or (nil, nil).
	GetByNameAndFret(ctx context.Context, chordName, fretPosition string) (*models.ChordPosition, error)
	// GetByFullName returns the position with the given full name, or (nil, nil).
	GetByFullName(ctx context.Context, fullName string) (*models.ChordPosition, error)
	// ListAll returns every position ordered by full name.
	ListAll(ctx context.Context) ([]*models.ChordPosition, error)
	ListByVariationID(ctx context.Context, variationID string) ([]*models.ChordPosition, error)
}

// ProfileRepository defines methods for user profile data access.
// IncrementSearchUsage and ResetDailySearches mirror the two remote
// procedures the clients used to invoke directly.
type ProfileRepository interface {
	Create(ctx context.Context, p *models.UserProfile) error
	GetByID(ctx context.Context, id string) (*models.UserProfile, error)
	GetByStripeCustomerID(ctx context.Context, customerID string) (*models.UserProfile, error)
	Delete(ctx context.Context, id string) error
	// UpdateSubscription sets the tier and status reported by billing.
	UpdateSubscription(ctx context.Context, id, tier, status string) error
	SetStripeCustomerID(ctx context.Context, id, customerID string) error
	// IncrementSearchUsage adds one to the user's daily search counter.
	IncrementSearchUsage(ctx context.Context, id string) error
	// ResetDailySearches zeroes the counter for every profile whose reset
	// date is older than today, returning the number of profiles reset.
	ResetDailySearches(ctx context.Context) (int64, error)
}

// SettingsRepository defines methods for app_settings data access.
type SettingsRepository interface {
	// GetSetting returns the row for key, or (nil, nil).
	GetSetting(ctx context.Context, key string) (*models.AppSetting, error)
	// UpsertSetting writes the JSON value for key, inserting or replacing.
	UpsertSetting(ctx context.Context, key, value string) error
}

// Repositories holds all repository instances.
type Repositories struct {
	ChordVariation ChordVariationRepository
	ChordPosition  ChordPositionRepository
	Profile        ProfileRepository
	Settings       SettingsRepository
}

// NewRepositories creates all repository instances.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		ChordVariation: NewSQLiteChordVariationRepository(db),
		ChordPosition:  NewSQLiteChordPositionRepository(db),
		Profile:        NewSQLiteProfileRepository(db),
		Settings:       NewSQLiteSettingsRepository(db),
	}
}

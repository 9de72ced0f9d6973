package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chordbase/chordbase-api/internal/constants"
	"github.com/chordbase/chordbase-api/internal/models"
	"github.com/chordbase/chordbase-api/internal/repository"
)

// ErrProfileNotFound is returned when an operation targets a user with
// no profile row.
var ErrProfileNotFound = errors.New("profile not found")

// ErrSearchLimitReached is returned when a user has exhausted today's
// search allowance for their tier.
var ErrSearchLimitReached = errors.New("daily search limit reached")

// ProfileService manages user profiles and their daily usage counters.
type ProfileService struct {
	profiles repository.ProfileRepository
	gates    *constants.FeatureGateLoader
	logger   *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(repos *repository.Repositories, gates *constants.FeatureGateLoader, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		profiles: repos.Profile,
		gates:    gates,
		logger:   logger,
	}
}

// Load returns the user's profile, or (nil, nil) when none exists.
//
// The daily search counter resets lazily: there is no scheduler, so the
// first load on a new calendar day sweeps every stale counter back to
// zero before returning.
func (s *ProfileService) Load(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, nil
	}

	if profile.NeedsDailyReset(time.Now()) {
		reset, err := s.profiles.ResetDailySearches(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to reset daily searches: %w", err)
		}
		s.logger.Info("daily search counters reset", "profiles", reset)

		profile, err = s.profiles.GetByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload profile: %w", err)
		}
	}

	return profile, nil
}

// Limits returns the currently resolved feature limits for all tiers.
func (s *ProfileService) Limits(ctx context.Context) constants.FeatureLimits {
	return s.gates.Resolve(ctx)
}

// SearchLimit returns the daily search allowance for a tier.
func (s *ProfileService) SearchLimit(ctx context.Context, tier string) int {
	return s.gates.Resolve(ctx).SearchLimit(tier)
}

// CheckDailySearchLimit reports whether the profile has searches
// remaining today: the resolved limit is unlimited or the used count is
// still below it.
func (s *ProfileService) CheckDailySearchLimit(ctx context.Context, profile *models.UserProfile) bool {
	limit := s.SearchLimit(ctx, profile.SubscriptionTier)
	return constants.WithinLimit(profile.DailySearchesUsed, limit)
}

// RecordSearch consumes one search from the user's daily allowance and
// returns the updated profile. It fails with ErrSearchLimitReached when
// the allowance is already spent, without incrementing the counter.
func (s *ProfileService) RecordSearch(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	if !s.CheckDailySearchLimit(ctx, profile) {
		return nil, ErrSearchLimitReached
	}

	if err := s.profiles.IncrementSearchUsage(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to increment search usage: %w", err)
	}

	// Re-fetch so the returned counter reflects the store, including
	// searches recorded concurrently from other devices.
	updated, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload profile: %w", err)
	}
	if updated == nil {
		return nil, ErrProfileNotFound
	}
	return updated, nil
}

// CreateFromAuthEvent provisions a profile for a newly signed-up user.
// A profile that already exists is left untouched, so replayed webhook
// deliveries are harmless.
func (s *ProfileService) CreateFromAuthEvent(ctx context.Context, userID, email, fullName string) error {
	existing, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check for existing profile: %w", err)
	}
	if existing != nil {
		s.logger.Debug("profile already exists, skipping create", "user_id", userID)
		return nil
	}

	profile := &models.UserProfile{
		ID:       userID,
		Email:    email,
		FullName: fullName,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	s.logger.Info("profile created", "user_id", userID)
	return nil
}

// DeleteProfile removes a user's profile after account deletion.
func (s *ProfileService) DeleteProfile(ctx context.Context, userID string) error {
	if err := s.profiles.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	s.logger.Info("profile deleted", "user_id", userID)
	return nil
}

// LinkStripeCustomer records the billing customer ID for a user.
func (s *ProfileService) LinkStripeCustomer(ctx context.Context, userID, customerID string) error {
	if err := s.profiles.SetStripeCustomerID(ctx, userID, customerID); err != nil {
		return fmt.Errorf("failed to link stripe customer: %w", err)
	}
	return nil
}

// ApplySubscriptionChange updates the tier and status for the profile
// linked to a billing customer. An unknown customer is logged and
// skipped rather than failing the webhook delivery.
func (s *ProfileService) ApplySubscriptionChange(ctx context.Context, customerID, tier, status string) error {
	profile, err := s.profiles.GetByStripeCustomerID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("failed to look up profile for customer: %w", err)
	}
	if profile == nil {
		s.logger.Warn("subscription change for unknown customer", "customer_id", customerID)
		return nil
	}

	if err := s.profiles.UpdateSubscription(ctx, profile.ID, tier, status); err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	s.logger.Info("subscription updated",
		"user_id", profile.ID,
		"tier", tier,
		"status", status,
	)
	return nil
}

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/chordbase/chordbase-api/internal/models"
	"github.com/chordbase/chordbase-api/internal/service"
)

// ProfileHandler serves the authenticated user's profile and usage
// operations.
type ProfileHandler struct {
	profileSvc *service.ProfileService
	logger     *slog.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileSvc *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc, logger: logger}
}

// ProfileView is a profile row enriched with the derived access flags
// clients previously computed locally.
type ProfileView struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	FullName           string    `json:"full_name"`
	SubscriptionTier   string    `json:"subscription_tier"`
	SubscriptionStatus string    `json:"subscription_status"`
	DailySearchesUsed  int       `json:"daily_searches_used"`
	LastSearchReset    time.Time `json:"last_search_reset"`
	IsPremium          bool      `json:"is_premium"`
	HasPlanAccess      bool      `json:"has_plan_access"`
	CanSearch          bool      `json:"can_search"`
	SearchLimit        int       `json:"search_limit"`
	WithinSearchLimit  bool      `json:"within_search_limit"`
}

// GetProfileOutput represents the profile response.
type GetProfileOutput struct {
	Body ProfileView
}

// GetProfile returns the caller's profile with derived access flags.
// Loading triggers the lazy daily counter reset when a new calendar day
// has started.
func (h *ProfileHandler) GetProfile(ctx context.Context, input *struct{}) (*GetProfileOutput, error) {
	userID := getUserID(ctx)

	profile, err := h.profileSvc.Load(ctx, userID)
	if err != nil {
		h.logger.Error("failed to load profile", "user_id", userID, "error", err)
		return nil, err
	}
	if profile == nil {
		return nil, huma.Error404NotFound("profile not found")
	}

	return &GetProfileOutput{Body: h.view(ctx, profile)}, nil
}

// RecordSearchOutput represents the search-usage response.
type RecordSearchOutput struct {
	Body ProfileView
}

// RecordSearch consumes one search from the caller's daily allowance.
// Returns 403 when the allowance is already spent.
func (h *ProfileHandler) RecordSearch(ctx context.Context, input *struct{}) (*RecordSearchOutput, error) {
	userID := getUserID(ctx)

	profile, err := h.profileSvc.RecordSearch(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			return nil, huma.Error404NotFound("profile not found")
		case errors.Is(err, service.ErrSearchLimitReached):
			return nil, huma.Error403Forbidden("daily search limit reached")
		default:
			h.logger.Error("failed to record search", "user_id", userID, "error", err)
			return nil, err
		}
	}

	return &RecordSearchOutput{Body: h.view(ctx, profile)}, nil
}

func (h *ProfileHandler) view(ctx context.Context, profile *models.UserProfile) ProfileView {
	return ProfileView{
		ID:                 profile.ID,
		Email:              profile.Email,
		FullName:           profile.FullName,
		SubscriptionTier:   profile.SubscriptionTier,
		SubscriptionStatus: profile.SubscriptionStatus,
		DailySearchesUsed:  profile.DailySearchesUsed,
		LastSearchReset:    profile.LastSearchReset,
		IsPremium:          profile.IsPremium(),
		HasPlanAccess:      profile.HasPlanAccess(),
		CanSearch:          profile.CanSearch(),
		SearchLimit:        h.profileSvc.SearchLimit(ctx, profile.SubscriptionTier),
		WithinSearchLimit:  h.profileSvc.CheckDailySearchLimit(ctx, profile),
	}
}

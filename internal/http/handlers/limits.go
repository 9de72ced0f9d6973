package handlers

import (
	"context"
	"log/slog"

	"github.com/chordbase/chordbase-api/internal/constants"
	"github.com/chordbase/chordbase-api/internal/service"
)

// LimitsHandler serves the per-tier feature limit tables.
type LimitsHandler struct {
	profileSvc *service.ProfileService
	logger     *slog.Logger
}

// NewLimitsHandler creates a new limits handler.
func NewLimitsHandler(profileSvc *service.ProfileService, logger *slog.Logger) *LimitsHandler {
	return &LimitsHandler{profileSvc: profileSvc, logger: logger}
}

// TierLimits is the limit set for one subscription tier.
type TierLimits struct {
	Tier               string `json:"tier"`
	DailySearchLimit   int    `json:"daily_search_limit"`
	DailyWatchTimeMins int    `json:"daily_watch_time_minutes"`
	FavoriteLimit      int    `json:"favorite_limit"`
}

// ListLimitsOutput represents the limits listing response.
type ListLimitsOutput struct {
	Body struct {
		Tiers []TierLimits `json:"tiers"`
	}
}

// ListLimits returns the currently resolved limits for every tier.
// Unlimited allowances are reported as -1.
func (h *LimitsHandler) ListLimits(ctx context.Context, input *struct{}) (*ListLimitsOutput, error) {
	limits := h.profileSvc.Limits(ctx)

	out := &ListLimitsOutput{}
	for _, tier := range constants.TierNames {
		out.Body.Tiers = append(out.Body.Tiers, TierLimits{
			Tier:               tier,
			DailySearchLimit:   limits.SearchLimit(tier),
			DailyWatchTimeMins: limits.WatchTimeLimit(tier),
			FavoriteLimit:      limits.FavoriteLimit(tier),
		})
	}
	return out, nil
}

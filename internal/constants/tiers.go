// Package constants defines centralized configuration for subscription
// tiers and feature-gate limits. Change values here to update limits
// across the entire application.
package constants

// Tier names
const (
	TierFreebird = "freebird"
	TierRoadie   = "roadie"
	TierHero     = "hero"
)

// TierNames lists all known tiers in display order.
var TierNames = []string{TierFreebird, TierRoadie, TierHero}

// Unlimited is the sentinel limit value meaning "no cap".
const Unlimited = -1

// FeatureLimits holds the per-tier numeric limits for each gated feature.
// Each map is keyed by tier name; a value of Unlimited (-1) means no cap.
type FeatureLimits struct {
	// DailySearchLimits caps chord searches per day.
	DailySearchLimits map[string]int `json:"daily_search_limits"`
	// DailyWatchTimeLimits caps lesson watch time per day, in minutes.
	DailyWatchTimeLimits map[string]int `json:"daily_watch_time_limits"`
	// FavoriteLimits caps saved favorites.
	FavoriteLimits map[string]int `json:"favorite_limits"`
}

// DefaultFeatureLimits returns the hard-coded fallback limits used when the
// feature_gates setting is absent or unreadable. Returns fresh maps so
// callers can't mutate the defaults.
func DefaultFeatureLimits() FeatureLimits {
	return FeatureLimits{
		DailySearchLimits: map[string]int{
			TierFreebird: 8,
			TierRoadie:   24,
			TierHero:     100,
		},
		DailyWatchTimeLimits: map[string]int{
			TierFreebird: 60,
			TierRoadie:   180,
			TierHero:     480,
		},
		FavoriteLimits: map[string]int{
			TierFreebird: 0,
			TierRoadie:   12,
			TierHero:     Unlimited,
		},
	}
}

// SearchLimit returns the daily search limit for a tier, 0 if the tier is
// unknown.
func (l FeatureLimits) SearchLimit(tier string) int {
	return l.DailySearchLimits[tier]
}

// WatchTimeLimit returns the daily watch-time limit (minutes) for a tier,
// 0 if the tier is unknown.
func (l FeatureLimits) WatchTimeLimit(tier string) int {
	return l.DailyWatchTimeLimits[tier]
}

// FavoriteLimit returns the favorites cap for a tier, 0 if the tier is
// unknown.
func (l FeatureLimits) FavoriteLimit(tier string) int {
	return l.FavoriteLimits[tier]
}

// WithinLimit reports whether a usage count is within a limit. An Unlimited
// limit always passes; otherwise the count must be strictly below the limit.
func WithinLimit(used, limit int) bool {
	if limit == Unlimited {
		return true
	}
	return used < limit
}

package constants

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chordbase/chordbase-api/internal/models"
)

// SettingsSource fetches a single settings row by key. It returns (nil, nil)
// when the row does not exist.
type SettingsSource interface {
	GetSetting(ctx context.Context, key string) (*models.AppSetting, error)
}

// featureGatesJSON is the stored shape of the feature_gates setting. Each
// category is optional; an absent category keeps its hard-coded default.
type featureGatesJSON struct {
	DailySearchLimits    map[string]int `json:"daily_search_limits"`
	DailyWatchTimeLimits map[string]int `json:"daily_watch_time_limits"`
	FavoriteLimits       map[string]int `json:"favorite_limits"`
}

// ParseFeatureGates parses a feature_gates JSON document into
// FeatureLimits. Each category overrides independently; absent
// categories keep their defaults. On a parse error the defaults are
// returned alongside the error.
func ParseFeatureGates(value string) (FeatureLimits, error) {
	limits := DefaultFeatureLimits()

	var gates featureGatesJSON
	if err := json.Unmarshal([]byte(value), &gates); err != nil {
		return limits, fmt.Errorf("failed to parse feature gates JSON: %w", err)
	}

	if gates.DailySearchLimits != nil {
		limits.DailySearchLimits = gates.DailySearchLimits
	}
	if gates.DailyWatchTimeLimits != nil {
		limits.DailyWatchTimeLimits = gates.DailyWatchTimeLimits
	}
	if gates.FavoriteLimits != nil {
		limits.FavoriteLimits = gates.FavoriteLimits
	}
	return limits, nil
}

// FeatureGateLoader resolves FeatureLimits from the app_settings row keyed
// "feature_gates", caching the result in-process for a TTL. It never fails:
// a missing row, a missing category, or a fetch error falls back to the
// defaults from DefaultFeatureLimits.
type FeatureGateLoader struct {
	source SettingsSource
	ttl    time.Duration
	logger *slog.Logger

	mu        sync.RWMutex
	limits    FeatureLimits
	fetchedAt time.Time
}

// NewFeatureGateLoader creates a loader reading from source with the given
// cache TTL. The loader starts on defaults until the first Resolve.
func NewFeatureGateLoader(source SettingsSource, ttl time.Duration, logger *slog.Logger) *FeatureGateLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeatureGateLoader{
		source: source,
		ttl:    ttl,
		logger: logger,
		limits: DefaultFeatureLimits(),
	}
}

// Resolve returns the current FeatureLimits, refreshing from the store when
// the cached value is older than the TTL. The returned maps are shared;
// callers must treat them as read-only.
func (l *FeatureGateLoader) Resolve(ctx context.Context) FeatureLimits {
	l.mu.RLock()
	fresh := !l.fetchedAt.IsZero() && time.Since(l.fetchedAt) < l.ttl
	limits := l.limits
	l.mu.RUnlock()

	if fresh {
		return limits
	}
	return l.refresh(ctx)
}

// refresh re-reads the feature_gates row and rebuilds the cached limits.
func (l *FeatureGateLoader) refresh(ctx context.Context) FeatureLimits {
	limits := DefaultFeatureLimits()

	setting, err := l.source.GetSetting(ctx, models.FeatureGatesSettingKey)
	switch {
	case err != nil:
		// Whole fetch failed: every category falls back together.
		l.logger.Error("failed to fetch feature gates, using defaults", "error", err)
	case setting == nil:
		l.logger.Warn("feature_gates setting not found, using defaults")
	default:
		parsed, err := ParseFeatureGates(setting.Value)
		if err != nil {
			l.logger.Error("failed to parse feature gates, using defaults", "error", err)
			break
		}
		limits = parsed
	}

	l.mu.Lock()
	l.limits = limits
	l.fetchedAt = time.Now()
	l.mu.Unlock()

	return limits
}

package constants

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chordbase/chordbase-api/internal/models"
)

// fakeSettingsSource returns a canned setting, error, or not-found.
type fakeSettingsSource struct {
	value string
	err   error
	calls int
}

func (f *fakeSettingsSource) GetSetting(_ context.Context, key string) (*models.AppSetting, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.value == "" {
		return nil, nil
	}
	return &models.AppSetting{Key: key, Value: f.value}, nil
}

func TestParseFeatureGates(t *testing.T) {
	limits, err := ParseFeatureGates(`{"daily_search_limits":{"freebird":5,"roadie":50,"hero":500}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := limits.SearchLimit(TierRoadie); got != 50 {
		t.Errorf("SearchLimit(roadie) = %d, want 50", got)
	}
	// Absent categories keep their defaults.
	if got := limits.FavoriteLimit(TierHero); got != Unlimited {
		t.Errorf("FavoriteLimit(hero) = %d, want %d", got, Unlimited)
	}
}

func TestParseFeatureGates_InvalidJSON(t *testing.T) {
	limits, err := ParseFeatureGates("not json")
	if err == nil {
		t.Fatal("expected error for malformed document")
	}
	// Defaults come back alongside the error so callers always hold a
	// usable table.
	if got := limits.SearchLimit(TierFreebird); got != 8 {
		t.Errorf("SearchLimit(freebird) = %d, want 8", got)
	}
}

func TestFeatureGateLoader_RemoteOverridesAllCategories(t *testing.T) {
	src := &fakeSettingsSource{value: `{
		"daily_search_limits": {"freebird": 5, "roadie": 50, "hero": 500},
		"daily_watch_time_limits": {"freebird": 30, "roadie": 300, "hero": -1},
		"favorite_limits": {"freebird": 1, "roadie": 20, "hero": -1}
	}`}
	loader := NewFeatureGateLoader(src, time.Minute, nil)

	limits := loader.Resolve(context.Background())
	if got := limits.SearchLimit(TierFreebird); got != 5 {
		t.Errorf("SearchLimit(freebird) = %d, want 5 (remote value)", got)
	}
	if got := limits.WatchTimeLimit(TierHero); got != Unlimited {
		t.Errorf("WatchTimeLimit(hero) = %d, want -1 (remote value)", got)
	}
	if got := limits.FavoriteLimit(TierRoadie); got != 20 {
		t.Errorf("FavoriteLimit(roadie) = %d, want 20 (remote value)", got)
	}
}

func TestFeatureGateLoader_MissingCategoryKeepsDefault(t *testing.T) {
	// Only search limits are overridden; the other categories must fall
	// back independently.
	src := &fakeSettingsSource{value: `{"daily_search_limits": {"freebird": 3}}`}
	loader := NewFeatureGateLoader(src, time.Minute, nil)

	limits := loader.Resolve(context.Background())
	if got := limits.SearchLimit(TierFreebird); got != 3 {
		t.Errorf("SearchLimit(freebird) = %d, want 3 (remote value)", got)
	}
	if got := limits.WatchTimeLimit(TierRoadie); got != 180 {
		t.Errorf("WatchTimeLimit(roadie) = %d, want 180 (default)", got)
	}
	if got := limits.FavoriteLimit(TierHero); got != Unlimited {
		t.Errorf("FavoriteLimit(hero) = %d, want -1 (default)", got)
	}
}

func TestFeatureGateLoader_FetchErrorFallsBackToDefaults(t *testing.T) {
	src := &fakeSettingsSource{err: errors.New("connection refused")}
	loader := NewFeatureGateLoader(src, time.Minute, nil)

	limits := loader.Resolve(context.Background())
	want := DefaultFeatureLimits()
	for _, tier := range TierNames {
		if limits.SearchLimit(tier) != want.SearchLimit(tier) {
			t.Errorf("SearchLimit(%q) = %d, want default %d", tier, limits.SearchLimit(tier), want.SearchLimit(tier))
		}
		if limits.WatchTimeLimit(tier) != want.WatchTimeLimit(tier) {
			t.Errorf("WatchTimeLimit(%q) = %d, want default %d", tier, limits.WatchTimeLimit(tier), want.WatchTimeLimit(tier))
		}
		if limits.FavoriteLimit(tier) != want.FavoriteLimit(tier) {
			t.Errorf("FavoriteLimit(%q) = %d, want default %d", tier, limits.FavoriteLimit(tier), want.FavoriteLimit(tier))
		}
	}
}

func TestFeatureGateLoader_MissingRowFallsBackToDefaults(t *testing.T) {
	src := &fakeSettingsSource{}
	loader := NewFeatureGateLoader(src, time.Minute, nil)

	limits := loader.Resolve(context.Background())
	if got := limits.SearchLimit(TierFreebird); got != 8 {
		t.Errorf("SearchLimit(freebird) = %d, want 8 (default)", got)
	}
}

func TestFeatureGateLoader_InvalidJSONFallsBackToDefaults(t *testing.T) {
	src := &fakeSettingsSource{value: `{not json`}
	loader := NewFeatureGateLoader(src, time.Minute, nil)

	limits := loader.Resolve(context.Background())
	if got := limits.FavoriteLimit(TierRoadie); got != 12 {
		t.Errorf("FavoriteLimit(roadie) = %d, want 12 (default)", got)
	}
}

func TestFeatureGateLoader_CachesWithinTTL(t *testing.T) {
	src := &fakeSettingsSource{value: `{"daily_search_limits": {"freebird": 3}}`}
	loader := NewFeatureGateLoader(src, time.Minute, nil)

	loader.Resolve(context.Background())
	loader.Resolve(context.Background())
	loader.Resolve(context.Background())

	if src.calls != 1 {
		t.Errorf("GetSetting called %d times within TTL, want 1", src.calls)
	}
}

func TestFeatureGateLoader_RefreshesAfterTTL(t *testing.T) {
	src := &fakeSettingsSource{value: `{"daily_search_limits": {"freebird": 3}}`}
	loader := NewFeatureGateLoader(src, time.Nanosecond, nil)

	loader.Resolve(context.Background())
	time.Sleep(time.Millisecond)
	loader.Resolve(context.Background())

	if src.calls != 2 {
		t.Errorf("GetSetting called %d times across TTL expiry, want 2", src.calls)
	}
}

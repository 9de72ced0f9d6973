package constants

import "testing"

// ========================================
// Default Limits Tests
// ========================================

func TestDefaultFeatureLimits(t *testing.T) {
	limits := DefaultFeatureLimits()

	wantSearch := map[string]int{TierFreebird: 8, TierRoadie: 24, TierHero: 100}
	wantWatch := map[string]int{TierFreebird: 60, TierRoadie: 180, TierHero: 480}
	wantFav := map[string]int{TierFreebird: 0, TierRoadie: 12, TierHero: Unlimited}

	for tier, want := range wantSearch {
		if got := limits.SearchLimit(tier); got != want {
			t.Errorf("SearchLimit(%q) = %d, want %d", tier, got, want)
		}
	}
	for tier, want := range wantWatch {
		if got := limits.WatchTimeLimit(tier); got != want {
			t.Errorf("WatchTimeLimit(%q) = %d, want %d", tier, got, want)
		}
	}
	for tier, want := range wantFav {
		if got := limits.FavoriteLimit(tier); got != want {
			t.Errorf("FavoriteLimit(%q) = %d, want %d", tier, got, want)
		}
	}
}

func TestDefaultFeatureLimitsReturnsFreshMaps(t *testing.T) {
	a := DefaultFeatureLimits()
	a.DailySearchLimits[TierFreebird] = 9999

	b := DefaultFeatureLimits()
	if b.SearchLimit(TierFreebird) != 8 {
		t.Error("mutating one DefaultFeatureLimits() result leaked into another")
	}
}

func TestSearchLimitUnknownTier(t *testing.T) {
	limits := DefaultFeatureLimits()
	if got := limits.SearchLimit("shredlord"); got != 0 {
		t.Errorf("SearchLimit(unknown) = %d, want 0", got)
	}
	if got := limits.SearchLimit(""); got != 0 {
		t.Errorf("SearchLimit(empty) = %d, want 0", got)
	}
}

// ========================================
// WithinLimit Tests
// ========================================

func TestWithinLimit(t *testing.T) {
	tests := []struct {
		name  string
		used  int
		limit int
		want  bool
	}{
		{"unlimited ignores usage", 10000, Unlimited, true},
		{"under limit", 7, 8, true},
		{"at limit", 8, 8, false},
		{"over limit", 9, 8, false},
		{"zero limit blocks", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinLimit(tt.used, tt.limit); got != tt.want {
				t.Errorf("WithinLimit(%d, %d) = %v, want %v", tt.used, tt.limit, got, tt.want)
			}
		})
	}
}

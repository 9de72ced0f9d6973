package repository

import (
	"context"
	"testing"
	"time"

	"github.com/chordbase/chordbase-api/internal/constants"
	"github.com/chordbase/chordbase-api/internal/models"
)

// ========================================
// ProfileRepository Tests
// ========================================

func TestProfileRepository_CreateDefaults(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	p := &models.UserProfile{
		ID:    "user_2abc",
		Email: "jimi@example.com",
	}
	if err := repos.Profile.Create(ctx, p); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	fetched, err := repos.Profile.GetByID(ctx, "user_2abc")
	if err != nil {
		t.Fatalf("failed to fetch profile: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected profile, got nil")
	}
	if fetched.SubscriptionTier != constants.TierFreebird {
		t.Errorf("SubscriptionTier = %q, want %q", fetched.SubscriptionTier, constants.TierFreebird)
	}
	if fetched.SubscriptionStatus != models.SubscriptionStatusActive {
		t.Errorf("SubscriptionStatus = %q, want %q", fetched.SubscriptionStatus, models.SubscriptionStatusActive)
	}
	if fetched.DailySearchesUsed != 0 {
		t.Errorf("DailySearchesUsed = %d, want 0", fetched.DailySearchesUsed)
	}
	if fetched.NeedsDailyReset(time.Now()) {
		t.Error("fresh profile should not need a daily reset")
	}
}

func TestProfileRepository_GetByID_NotFound(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	p, err := repos.Profile.GetByID(ctx, "user_nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Error("expected nil for nonexistent profile")
	}
}

func TestProfileRepository_UpdateSubscription(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	p := &models.UserProfile{ID: "user_sub", Email: "sub@example.com"}
	if err := repos.Profile.Create(ctx, p); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	if err := repos.Profile.UpdateSubscription(ctx, "user_sub", constants.TierHero, models.SubscriptionStatusActive); err != nil {
		t.Fatalf("failed to update subscription: %v", err)
	}

	fetched, err := repos.Profile.GetByID(ctx, "user_sub")
	if err != nil {
		t.Fatalf("failed to fetch profile: %v", err)
	}
	if fetched.SubscriptionTier != constants.TierHero {
		t.Errorf("SubscriptionTier = %q, want %q", fetched.SubscriptionTier, constants.TierHero)
	}
}

func TestProfileRepository_StripeCustomerLink(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	p := &models.UserProfile{ID: "user_stripe", Email: "stripe@example.com"}
	if err := repos.Profile.Create(ctx, p); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	if err := repos.Profile.SetStripeCustomerID(ctx, "user_stripe", "cus_123"); err != nil {
		t.Fatalf("failed to set stripe customer: %v", err)
	}

	fetched, err := repos.Profile.GetByStripeCustomerID(ctx, "cus_123")
	if err != nil {
		t.Fatalf("failed to fetch by customer ID: %v", err)
	}
	if fetched == nil || fetched.ID != "user_stripe" {
		t.Errorf("GetByStripeCustomerID returned %+v, want user_stripe", fetched)
	}

	missing, err := repos.Profile.GetByStripeCustomerID(ctx, "cus_unknown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown customer ID")
	}
}

func TestProfileRepository_IncrementSearchUsage(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	p := &models.UserProfile{ID: "user_inc", Email: "inc@example.com"}
	if err := repos.Profile.Create(ctx, p); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := repos.Profile.IncrementSearchUsage(ctx, "user_inc"); err != nil {
			t.Fatalf("failed to increment: %v", err)
		}
	}

	fetched, err := repos.Profile.GetByID(ctx, "user_inc")
	if err != nil {
		t.Fatalf("failed to fetch profile: %v", err)
	}
	if fetched.DailySearchesUsed != 3 {
		t.Errorf("DailySearchesUsed = %d, want 3", fetched.DailySearchesUsed)
	}
}

func TestProfileRepository_IncrementSearchUsage_MissingProfileNoError(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	if err := repos.Profile.IncrementSearchUsage(ctx, "user_ghost"); err != nil {
		t.Errorf("increment for missing profile returned error: %v", err)
	}
}

func TestProfileRepository_ResetDailySearches(t *testing.T) {
	db := setupTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	yesterday := time.Now().AddDate(0, 0, -1).Format(dateLayout)
	today := time.Now().Format(dateLayout)

	InsertTestProfile(t, db, "user_stale", "stale@example.com", "freebird", "active", 8, yesterday)
	InsertTestProfile(t, db, "user_fresh", "fresh@example.com", "roadie", "active", 5, today)

	reset, err := repos.Profile.ResetDailySearches(ctx)
	if err != nil {
		t.Fatalf("failed to reset daily searches: %v", err)
	}
	if reset != 1 {
		t.Errorf("reset count = %d, want 1 (only the stale profile)", reset)
	}

	stale, err := repos.Profile.GetByID(ctx, "user_stale")
	if err != nil {
		t.Fatalf("failed to fetch profile: %v", err)
	}
	if stale.DailySearchesUsed != 0 {
		t.Errorf("stale DailySearchesUsed = %d, want 0", stale.DailySearchesUsed)
	}
	if stale.NeedsDailyReset(time.Now()) {
		t.Error("stale profile should have today's reset date after reset")
	}

	fresh, err := repos.Profile.GetByID(ctx, "user_fresh")
	if err != nil {
		t.Fatalf("failed to fetch profile: %v", err)
	}
	if fresh.DailySearchesUsed != 5 {
		t.Errorf("fresh DailySearchesUsed = %d, want 5 (untouched)", fresh.DailySearchesUsed)
	}
}

func TestProfileRepository_Delete(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	p := &models.UserProfile{ID: "user_del", Email: "del@example.com"}
	if err := repos.Profile.Create(ctx, p); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	if err := repos.Profile.Delete(ctx, "user_del"); err != nil {
		t.Fatalf("failed to delete profile: %v", err)
	}

	fetched, err := repos.Profile.GetByID(ctx, "user_del")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetched != nil {
		t.Error("expected nil after delete")
	}
}

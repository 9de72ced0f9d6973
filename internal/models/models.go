// Package models defines the domain models for the application.
// Note: Account credentials, sessions, and OAuth are handled by the auth
// provider. The UserProfile.ID fields reference auth-provider user IDs.
package models

import (
	"fmt"
	"time"
)

// ChordCaption is a single timed chord annotation on a lesson video.
// Captions are the input to the chord catalog sync; they are not persisted
// by it, only their chord_name and fret_position are used.
type ChordCaption struct {
	ChordName    string  `json:"chord_name"`
	FretPosition string  `json:"fret_position"`
	StartTime    float64 `json:"start_time"`
	EndTime      float64 `json:"end_time"`
}

// ChordVariation is a named chord independent of fretboard position.
// chord_name is unique across the table.
type ChordVariation struct {
	ID        string    `json:"id"`
	ChordName string    `json:"chord_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChordPosition is a specific fret-position rendering of a variation,
// unique by (chord_name, fret_position). FullName is the display key
// "{chord_name}-{fret_position}" and is also unique.
type ChordPosition struct {
	ID               string    `json:"id"`
	ChordVariationID string    `json:"chord_variation_id"`
	ChordName        string    `json:"chord_name"`
	FretPosition     string    `json:"fret_position"`
	FullName         string    `json:"chord_position_full_name"`
	DiagramURLLight  string    `json:"diagram_url_light"`
	DiagramURLDark   string    `json:"diagram_url_dark"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PositionFullName derives the unique display name for a (chord, fret) pair.
func PositionFullName(chordName, fretPosition string) string {
	return fmt.Sprintf("%s-%s", chordName, fretPosition)
}

// Subscription statuses as reported by billing.
const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
)

// UserProfile is the per-user account row. ID is the auth-provider user ID.
// DailySearchesUsed counts chord searches since LastSearchReset; the counter
// is reset lazily when a profile load observes a stale reset date.
type UserProfile struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	FullName           string    `json:"full_name"`
	SubscriptionTier   string    `json:"subscription_tier"`
	SubscriptionStatus string    `json:"subscription_status"`
	StripeCustomerID   string    `json:"-"`
	DailySearchesUsed  int       `json:"daily_searches_used"`
	LastSearchReset    time.Time `json:"last_search_reset"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// IsPremium reports whether the profile is on the legacy "premium" tier.
// TODO: "premium" predates the freebird/roadie/hero tier names; confirm the
// mapping with billing before changing or removing this check.
func (p *UserProfile) IsPremium() bool {
	return p != nil && p.SubscriptionTier == "premium"
}

// HasPlanAccess reports whether the profile has any active paid-feature
// access: a tier is set and the subscription is active.
func (p *UserProfile) HasPlanAccess() bool {
	return p != nil && p.SubscriptionTier != "" && p.SubscriptionStatus == SubscriptionStatusActive
}

// CanSearch reports whether the plan itself grants search access: any
// paid tier with an active subscription. Free-tier users search through
// the daily allowance instead, so this flag is false for them.
func (p *UserProfile) CanSearch() bool {
	return p != nil && p.SubscriptionTier != "freebird" && p.SubscriptionStatus == SubscriptionStatusActive
}

// NeedsDailyReset reports whether the usage counter is stale relative to
// now: the reset date (ignoring time-of-day) differs from today.
func (p *UserProfile) NeedsDailyReset(now time.Time) bool {
	if p == nil {
		return false
	}
	y1, m1, d1 := p.LastSearchReset.Date()
	y2, m2, d2 := now.Date()
	return y1 != y2 || m1 != m2 || d1 != d2
}

// AppSetting is a single row of the app_settings key/value table.
// Value holds raw JSON interpreted by the reader.
type AppSetting struct {
	Key       string    `json:"setting_key"`
	Value     string    `json:"setting_value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeatureGatesSettingKey is the app_settings key carrying the per-tier
// limit tables.
const FeatureGatesSettingKey = "feature_gates"

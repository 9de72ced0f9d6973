package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/chordbase/chordbase-api/internal/constants"
	"github.com/chordbase/chordbase-api/internal/models"
)

// dateLayout is the storage format for last_search_reset. Date only: the
// daily reset compares calendar days, never time-of-day.
const dateLayout = "2006-01-02"

// SQLiteProfileRepository implements ProfileRepository for SQLite/libsql.
type SQLiteProfileRepository struct {
	db *sql.DB
}

// NewSQLiteProfileRepository creates a new SQLite profile repository.
func NewSQLiteProfileRepository(db *sql.DB) *SQLiteProfileRepository {
	return &SQLiteProfileRepository{db: db}
}

// Create inserts a new user profile. The ID is the auth-provider user ID
// and must be set by the caller. Tier and reset date get defaults when
// unset.
func (r *SQLiteProfileRepository) Create(ctx context.Context, p *models.UserProfile) error {
	now := time.Now()
	if p.SubscriptionTier == "" {
		p.SubscriptionTier = constants.TierFreebird
	}
	if p.SubscriptionStatus == "" {
		p.SubscriptionStatus = models.SubscriptionStatusActive
	}
	if p.LastSearchReset.IsZero() {
		p.LastSearchReset = now
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_profiles (
			id, email, full_name, subscription_tier, subscription_status,
			stripe_customer_id, daily_searches_used, last_search_reset,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID,
		p.Email,
		p.FullName,
		p.SubscriptionTier,
		p.SubscriptionStatus,
		p.StripeCustomerID,
		p.DailySearchesUsed,
		p.LastSearchReset.Format(dateLayout),
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)

	return err
}

// GetByID retrieves a profile by user ID.
func (r *SQLiteProfileRepository) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, full_name, subscription_tier, subscription_status,
			   stripe_customer_id, daily_searches_used, last_search_reset,
			   created_at, updated_at
		FROM user_profiles
		WHERE id = ?
	`, id)

	return scanProfile(row)
}

// GetByStripeCustomerID retrieves a profile by its Stripe customer ID.
func (r *SQLiteProfileRepository) GetByStripeCustomerID(ctx context.Context, customerID string) (*models.UserProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, full_name, subscription_tier, subscription_status,
			   stripe_customer_id, daily_searches_used, last_search_reset,
			   created_at, updated_at
		FROM user_profiles
		WHERE stripe_customer_id = ?
	`, customerID)

	return scanProfile(row)
}

// Delete removes a profile by user ID.
func (r *SQLiteProfileRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_profiles WHERE id = ?`, id)
	return err
}

// UpdateSubscription sets the tier and status reported by billing.
func (r *SQLiteProfileRepository) UpdateSubscription(ctx context.Context, id, tier, status string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE user_profiles SET
			subscription_tier = ?,
			subscription_status = ?,
			updated_at = ?
		WHERE id = ?
	`, tier, status, time.Now().Format(time.RFC3339), id)
	return err
}

// SetStripeCustomerID links a profile to its Stripe customer.
func (r *SQLiteProfileRepository) SetStripeCustomerID(ctx context.Context, id, customerID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE user_profiles SET stripe_customer_id = ?, updated_at = ? WHERE id = ?
	`, customerID, time.Now().Format(time.RFC3339), id)
	return err
}

// IncrementSearchUsage adds one to the user's daily search counter.
// A missing profile is a no-op, matching the remote procedure it replaces.
func (r *SQLiteProfileRepository) IncrementSearchUsage(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE user_profiles SET
			daily_searches_used = daily_searches_used + 1,
			updated_at = ?
		WHERE id = ?
	`, time.Now().Format(time.RFC3339), id)
	return err
}

// ResetDailySearches zeroes the counter for every profile whose reset date
// is older than today. Dates are stored YYYY-MM-DD so string comparison
// orders correctly.
func (r *SQLiteProfileRepository) ResetDailySearches(ctx context.Context) (int64, error) {
	today := time.Now().Format(dateLayout)
	res, err := r.db.ExecContext(ctx, `
		UPDATE user_profiles SET
			daily_searches_used = 0,
			last_search_reset = ?,
			updated_at = ?
		WHERE last_search_reset < ?
	`, today, time.Now().Format(time.RFC3339), today)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// scanProfile scans a single row into a UserProfile.
func scanProfile(row *sql.Row) (*models.UserProfile, error) {
	var p models.UserProfile
	var fullName, stripeCustomerID sql.NullString
	var lastReset, createdAt, updatedAt string

	err := row.Scan(
		&p.ID,
		&p.Email,
		&fullName,
		&p.SubscriptionTier,
		&p.SubscriptionStatus,
		&stripeCustomerID,
		&p.DailySearchesUsed,
		&lastReset,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.FullName = fullName.String
	p.StripeCustomerID = stripeCustomerID.String
	p.LastSearchReset, _ = time.Parse(dateLayout, lastReset)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &p, nil
}

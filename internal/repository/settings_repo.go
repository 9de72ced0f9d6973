package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/chordbase/chordbase-api/internal/models"
)

// SQLiteSettingsRepository implements SettingsRepository for SQLite/libsql.
type SQLiteSettingsRepository struct {
	db *sql.DB
}

// NewSQLiteSettingsRepository creates a new SQLite settings repository.
func NewSQLiteSettingsRepository(db *sql.DB) *SQLiteSettingsRepository {
	return &SQLiteSettingsRepository{db: db}
}

// GetSetting retrieves a settings row by key.
func (r *SQLiteSettingsRepository) GetSetting(ctx context.Context, key string) (*models.AppSetting, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT setting_key, setting_value, updated_at
		FROM app_settings
		WHERE setting_key = ?
	`, key)

	var s models.AppSetting
	var updatedAt string
	err := row.Scan(&s.Key, &s.Value, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &s, nil
}

// UpsertSetting writes the JSON value for key, inserting or replacing.
func (r *SQLiteSettingsRepository) UpsertSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO app_settings (setting_key, setting_value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(setting_key) DO UPDATE SET
			setting_value = excluded.setting_value,
			updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

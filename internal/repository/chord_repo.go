package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/chordbase/chordbase-api/internal/models"
)

// SQLiteChordVariationRepository implements ChordVariationRepository for SQLite/libsql.
type SQLiteChordVariationRepository struct {
	db *sql.DB
}

// NewSQLiteChordVariationRepository creates a new SQLite chord variation repository.
func NewSQLiteChordVariationRepository(db *sql.DB) *SQLiteChordVariationRepository {
	return &SQLiteChordVariationRepository{db: db}
}

// Create inserts a new chord variation, generating an ID if unset.
func (r *SQLiteChordVariationRepository) Create(ctx context.Context, v *models.ChordVariation) error {
	now := time.Now()
	if v.ID == "" {
		v.ID = ulid.Make().String()
	}
	v.CreatedAt = now
	v.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chord_variations (id, chord_name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`,
		v.ID,
		v.ChordName,
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)

	return err
}

// GetByName retrieves a variation by chord name.
func (r *SQLiteChordVariationRepository) GetByName(ctx context.Context, chordName string) (*models.ChordVariation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, chord_name, created_at, updated_at
		FROM chord_variations
		WHERE chord_name = ?
	`, chordName)

	return scanVariation(row)
}

// ListAll returns all variations ordered by chord name.
func (r *SQLiteChordVariationRepository) ListAll(ctx context.Context) ([]*models.ChordVariation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, chord_name, created_at, updated_at
		FROM chord_variations
		ORDER BY chord_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variations []*models.ChordVariation
	for rows.Next() {
		var v models.ChordVariation
		var createdAt, updatedAt string
		if err := rows.Scan(&v.ID, &v.ChordName, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		v.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		v.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		variations = append(variations, &v)
	}

	return variations, rows.Err()
}

// scanVariation scans a single row into a ChordVariation.
func scanVariation(row *sql.Row) (*models.ChordVariation, error) {
	var v models.ChordVariation
	var createdAt, updatedAt string

	err := row.Scan(&v.ID, &v.ChordName, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	v.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	v.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &v, nil
}

// SQLiteChordPositionRepository implements ChordPositionRepository for SQLite/libsql.
type SQLiteChordPositionRepository struct {
	db *sql.DB
}

// NewSQLiteChordPositionRepository creates a new SQLite chord position repository.
func NewSQLiteChordPositionRepository(db *sql.DB) *SQLiteChordPositionRepository {
	return &SQLiteChordPositionRepository{db: db}
}

// Create inserts a new chord position, generating an ID if unset.
func (r *SQLiteChordPositionRepository) Create(ctx context.Context, p *models.ChordPosition) error {
	now := time.Now()
	if p.ID == "" {
		p.ID = ulid.Make().String()
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chord_positions (
			id, chord_variation_id, chord_name, fret_position,
			chord_position_full_name, diagram_url_light, diagram_url_dark,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID,
		p.ChordVariationID,
		p.ChordName,
		p.FretPosition,
		p.FullName,
		p.DiagramURLLight,
		p.DiagramURLDark,
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)

	return err
}

// GetByNameAndFret retrieves a position by its (chord_name, fret_position) pair.
func (r *SQLiteChordPositionRepository) GetByNameAndFret(ctx context.Context, chordName, fretPosition string) (*models.ChordPosition, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, chord_variation_id, chord_name, fret_position,
			   chord_position_full_name, diagram_url_light, diagram_url_dark,
			   created_at, updated_at
		FROM chord_positions
		WHERE chord_name = ? AND fret_position = ?
	`, chordName, fretPosition)

	return scanPosition(row)
}

// GetByFullName retrieves a position by its unique full name.
func (r *SQLiteChordPositionRepository) GetByFullName(ctx context.Context, fullName string) (*models.ChordPosition, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, chord_variation_id, chord_name, fret_position,
			   chord_position_full_name, diagram_url_light, diagram_url_dark,
			   created_at, updated_at
		FROM chord_positions
		WHERE chord_position_full_name = ?
	`, fullName)

	return scanPosition(row)
}

// ListAll returns all positions ordered by full name.
func (r *SQLiteChordPositionRepository) ListAll(ctx context.Context) ([]*models.ChordPosition, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, chord_variation_id, chord_name, fret_position,
			   chord_position_full_name, diagram_url_light, diagram_url_dark,
			   created_at, updated_at
		FROM chord_positions
		ORDER BY chord_position_full_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPositions(rows)
}

// ListByVariationID returns all positions belonging to a variation.
func (r *SQLiteChordPositionRepository) ListByVariationID(ctx context.Context, variationID string) ([]*models.ChordPosition, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, chord_variation_id, chord_name, fret_position,
			   chord_position_full_name, diagram_url_light, diagram_url_dark,
			   created_at, updated_at
		FROM chord_positions
		WHERE chord_variation_id = ?
		ORDER BY chord_position_full_name
	`, variationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPositions(rows)
}

// scanPosition scans a single row into a ChordPosition.
func scanPosition(row *sql.Row) (*models.ChordPosition, error) {
	var p models.ChordPosition
	var urlLight, urlDark sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(
		&p.ID,
		&p.ChordVariationID,
		&p.ChordName,
		&p.FretPosition,
		&p.FullName,
		&urlLight,
		&urlDark,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.DiagramURLLight = urlLight.String
	p.DiagramURLDark = urlDark.String
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &p, nil
}

// scanPositions scans multiple rows into a ChordPosition slice.
func scanPositions(rows *sql.Rows) ([]*models.ChordPosition, error) {
	var positions []*models.ChordPosition

	for rows.Next() {
		var p models.ChordPosition
		var urlLight, urlDark sql.NullString
		var createdAt, updatedAt string

		err := rows.Scan(
			&p.ID,
			&p.ChordVariationID,
			&p.ChordName,
			&p.FretPosition,
			&p.FullName,
			&urlLight,
			&urlDark,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, err
		}

		p.DiagramURLLight = urlLight.String
		p.DiagramURLDark = urlDark.String
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		positions = append(positions, &p)
	}

	return positions, rows.Err()
}

// Package service contains the business logic layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/chordbase/chordbase-api/internal/models"
	"github.com/chordbase/chordbase-api/internal/repository"
)

// ErrPositionNotFound is returned when a diagram operation targets a
// full name with no catalog row.
var ErrPositionNotFound = errors.New("chord position not found")

// ChordService manages the chord catalog: variations (one row per chord
// name) and positions (one row per chord name + fret position pair).
type ChordService struct {
	variations repository.ChordVariationRepository
	positions  repository.ChordPositionRepository
	storage    *StorageService
	logger     *slog.Logger
}

// NewChordService creates a new chord service.
func NewChordService(repos *repository.Repositories, storage *StorageService, logger *slog.Logger) *ChordService {
	return &ChordService{
		variations: repos.ChordVariation,
		positions:  repos.ChordPosition,
		storage:    storage,
		logger:     logger,
	}
}

// SyncResult reports what a catalog sync actually changed.
type SyncResult struct {
	VariationsCreated int
	VariationsReused  int
	PositionsCreated  int
	PositionsSkipped  int
}

// SyncCaptions upserts the catalog rows implied by a caption list. The
// sync is idempotent: rows that already exist are reused, never
// duplicated, so it is safe to run against a populated database.
//
// Variations are processed first so that every position row can carry
// its parent variation's ID. Lookups use the natural keys (chord name,
// and chord name + fret position) rather than row IDs, which are
// generated fresh on insert.
func (s *ChordService) SyncCaptions(ctx context.Context, captions []models.ChordCaption) (*SyncResult, error) {
	result := &SyncResult{}

	// Distinct chord names, preserving first-seen order.
	var names []string
	seen := make(map[string]bool)
	for _, c := range captions {
		if !seen[c.ChordName] {
			seen[c.ChordName] = true
			names = append(names, c.ChordName)
		}
	}

	variationIDs := make(map[string]string, len(names))
	for _, name := range names {
		existing, err := s.variations.GetByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to look up variation %q: %w", name, err)
		}
		if existing != nil {
			variationIDs[name] = existing.ID
			result.VariationsReused++
			continue
		}

		v := &models.ChordVariation{ChordName: name}
		if err := s.variations.Create(ctx, v); err != nil {
			return nil, fmt.Errorf("failed to create variation %q: %w", name, err)
		}
		variationIDs[name] = v.ID
		result.VariationsCreated++
		s.logger.Debug("created chord variation", "chord_name", name, "id", v.ID)
	}

	// Distinct (chord name, fret position) pairs, preserving first-seen order.
	type pair struct {
		name string
		fret string
	}
	var pairs []pair
	seenPair := make(map[string]bool)
	for _, c := range captions {
		key := models.PositionFullName(c.ChordName, c.FretPosition)
		if !seenPair[key] {
			seenPair[key] = true
			pairs = append(pairs, pair{name: c.ChordName, fret: c.FretPosition})
		}
	}

	for _, pr := range pairs {
		existing, err := s.positions.GetByNameAndFret(ctx, pr.name, pr.fret)
		if err != nil {
			return nil, fmt.Errorf("failed to look up position %s/%s: %w", pr.name, pr.fret, err)
		}
		if existing != nil {
			result.PositionsSkipped++
			continue
		}

		fullName := models.PositionFullName(pr.name, pr.fret)
		p := &models.ChordPosition{
			ChordVariationID: variationIDs[pr.name],
			ChordName:        pr.name,
			FretPosition:     pr.fret,
			FullName:         fullName,
			DiagramURLLight:  s.storage.DiagramURL(fullName, DiagramVariantLight),
			DiagramURLDark:   s.storage.DiagramURL(fullName, DiagramVariantDark),
		}
		if err := s.positions.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to create position %s: %w", fullName, err)
		}
		result.PositionsCreated++
		s.logger.Debug("created chord position", "full_name", fullName, "id", p.ID)
	}

	return result, nil
}

// VerifySync re-reads both tables and confirms every distinct chord name
// and every distinct name/fret pair from the caption list is present. A
// missing row means an earlier sync partially failed.
func (s *ChordService) VerifySync(ctx context.Context, captions []models.ChordCaption) error {
	variations, err := s.variations.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list variations: %w", err)
	}
	haveVariation := make(map[string]bool, len(variations))
	variationNames := make([]string, 0, len(variations))
	for _, v := range variations {
		haveVariation[v.ChordName] = true
		variationNames = append(variationNames, v.ChordName)
	}

	positions, err := s.positions.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list positions: %w", err)
	}
	havePosition := make(map[string]bool, len(positions))
	positionNames := make([]string, 0, len(positions))
	for _, p := range positions {
		havePosition[p.FullName] = true
		positionNames = append(positionNames, p.FullName)
	}

	var missing []string
	for _, c := range captions {
		if !haveVariation[c.ChordName] {
			missing = append(missing, "variation:"+c.ChordName)
			haveVariation[c.ChordName] = true // report each once
		}
		fullName := models.PositionFullName(c.ChordName, c.FretPosition)
		if !havePosition[fullName] {
			missing = append(missing, "position:"+fullName)
			havePosition[fullName] = true
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("catalog verification failed, %d row(s) missing: %v", len(missing), missing)
	}

	s.logger.Info("catalog verified",
		"variations", len(variations),
		"positions", len(positions),
		"chord_names", variationNames,
		"position_names", positionNames,
	)
	return nil
}

// UploadPositionDiagram stores a diagram SVG for an existing position.
// The object key is derived from the full name and variant, so the
// position's stored diagram URLs resolve to the new asset immediately.
func (s *ChordService) UploadPositionDiagram(ctx context.Context, fullName, variant string, diagram io.Reader) (*models.ChordPosition, error) {
	pos, err := s.positions.GetByFullName(ctx, fullName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up position %s: %w", fullName, err)
	}
	if pos == nil {
		return nil, ErrPositionNotFound
	}

	if err := s.storage.UploadDiagram(ctx, fullName, variant, diagram); err != nil {
		return nil, err
	}

	s.logger.Info("uploaded position diagram", "full_name", fullName, "variant", variant)
	return pos, nil
}

// RemovePositionDiagrams deletes both diagram variants for an existing
// position. The catalog row is kept; its URLs go back to dangling until
// new diagrams are uploaded.
func (s *ChordService) RemovePositionDiagrams(ctx context.Context, fullName string) error {
	pos, err := s.positions.GetByFullName(ctx, fullName)
	if err != nil {
		return fmt.Errorf("failed to look up position %s: %w", fullName, err)
	}
	if pos == nil {
		return ErrPositionNotFound
	}

	if err := s.storage.DeleteDiagrams(ctx, fullName); err != nil {
		return err
	}

	s.logger.Info("removed position diagrams", "full_name", fullName)
	return nil
}

// CatalogEntry is one chord variation with all of its positions.
type CatalogEntry struct {
	Variation *models.ChordVariation  `json:"variation"`
	Positions []*models.ChordPosition `json:"positions"`
}

// ListCatalog returns the full catalog grouped by variation, ordered by
// chord name.
func (s *ChordService) ListCatalog(ctx context.Context) ([]*CatalogEntry, error) {
	variations, err := s.variations.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list variations: %w", err)
	}
	positions, err := s.positions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	byVariation := make(map[string][]*models.ChordPosition)
	for _, p := range positions {
		byVariation[p.ChordVariationID] = append(byVariation[p.ChordVariationID], p)
	}

	entries := make([]*CatalogEntry, 0, len(variations))
	for _, v := range variations {
		entries = append(entries, &CatalogEntry{
			Variation: v,
			Positions: byVariation[v.ID],
		})
	}
	return entries, nil
}

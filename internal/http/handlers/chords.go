package handlers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	"github.com/danielgtaylor/huma/v2"

	"github.com/chordbase/chordbase-api/internal/models"
	"github.com/chordbase/chordbase-api/internal/service"
)

// ChordHandler serves the public chord catalog.
type ChordHandler struct {
	chordSvc *service.ChordService
	logger   *slog.Logger
}

// NewChordHandler creates a new chord handler.
func NewChordHandler(chordSvc *service.ChordService, logger *slog.Logger) *ChordHandler {
	return &ChordHandler{chordSvc: chordSvc, logger: logger}
}

// ListChordsOutput represents the catalog listing response.
type ListChordsOutput struct {
	Body struct {
		Chords []*service.CatalogEntry `json:"chords"`
		Count  int                     `json:"count"`
	}
}

// ListChords returns every chord variation with its positions, ordered
// by chord name.
func (h *ChordHandler) ListChords(ctx context.Context, input *struct{}) (*ListChordsOutput, error) {
	entries, err := h.chordSvc.ListCatalog(ctx)
	if err != nil {
		h.logger.Error("failed to list chord catalog", "error", err)
		return nil, err
	}

	out := &ListChordsOutput{}
	out.Body.Chords = entries
	out.Body.Count = len(entries)
	return out, nil
}

// UploadDiagramInput represents a diagram upload request.
type UploadDiagramInput struct {
	FullName string `path:"fullName" maxLength:"64" doc:"Position full name, e.g. Am-pos1"`
	Variant  string `query:"variant" enum:"light,dark" default:"light" doc:"Color scheme variant"`
	RawBody  []byte `contentType:"image/svg+xml"`
}

// UploadDiagramOutput represents the diagram upload response.
type UploadDiagramOutput struct {
	Body struct {
		Position *models.ChordPosition `json:"position"`
	}
}

// UploadDiagram stores a diagram SVG for an existing chord position.
// The position's diagram URLs already point at the derived object key,
// so a successful upload makes them resolve.
func (h *ChordHandler) UploadDiagram(ctx context.Context, input *UploadDiagramInput) (*UploadDiagramOutput, error) {
	if len(input.RawBody) == 0 {
		return nil, huma.Error400BadRequest("diagram body is empty")
	}

	pos, err := h.chordSvc.UploadPositionDiagram(ctx, input.FullName, input.Variant, bytes.NewReader(input.RawBody))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPositionNotFound):
			return nil, huma.Error404NotFound("chord position not found")
		case errors.Is(err, service.ErrStorageDisabled):
			return nil, huma.Error503ServiceUnavailable("diagram storage is not configured")
		default:
			h.logger.Error("failed to upload diagram", "full_name", input.FullName, "error", err)
			return nil, err
		}
	}

	out := &UploadDiagramOutput{}
	out.Body.Position = pos
	return out, nil
}

// DeleteDiagramInput represents a diagram removal request.
type DeleteDiagramInput struct {
	FullName string `path:"fullName" maxLength:"64" doc:"Position full name, e.g. Am-pos1"`
}

// DeleteDiagramOutput represents the diagram removal response.
type DeleteDiagramOutput struct {
	Body struct {
		FullName string `json:"chord_position_full_name"`
		Deleted  bool   `json:"deleted"`
	}
}

// DeleteDiagram removes both diagram variants for an existing position.
func (h *ChordHandler) DeleteDiagram(ctx context.Context, input *DeleteDiagramInput) (*DeleteDiagramOutput, error) {
	if err := h.chordSvc.RemovePositionDiagrams(ctx, input.FullName); err != nil {
		switch {
		case errors.Is(err, service.ErrPositionNotFound):
			return nil, huma.Error404NotFound("chord position not found")
		case errors.Is(err, service.ErrStorageDisabled):
			return nil, huma.Error503ServiceUnavailable("diagram storage is not configured")
		default:
			h.logger.Error("failed to delete diagrams", "full_name", input.FullName, "error", err)
			return nil, err
		}
	}

	out := &DeleteDiagramOutput{}
	out.Body.FullName = input.FullName
	out.Body.Deleted = true
	return out, nil
}

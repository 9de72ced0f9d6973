// Package routes provides shared route registration for the chordbase
// API, so the main server and the OpenAPI generator stay in sync.
package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/chordbase/chordbase-api/internal/http/handlers"
	"github.com/chordbase/chordbase-api/internal/http/mw"
)

// Handlers bundles the handler implementations the routes need.
type Handlers struct {
	Chord   *handlers.ChordHandler
	Limits  *handlers.LimitsHandler
	Profile *handlers.ProfileHandler
	DB      handlers.DBPinger
}

// Register registers all API routes with the given Huma API instance.
func Register(api huma.API, h *Handlers) {
	// =========================================================================
	// Public Routes (no auth required)
	// =========================================================================

	mw.PublicGet(api, "/api/v1/health", handlers.HealthCheck,
		mw.WithTags("Health"),
		mw.WithSummary("Health check"),
		mw.WithOperationID("healthCheck"))

	mw.PublicGet(api, "/api/v1/limits", h.Limits.ListLimits,
		mw.WithTags("Limits"),
		mw.WithSummary("List per-tier feature limits"),
		mw.WithDescription("Returns the daily search, watch time, and favorite limits for every subscription tier. A value of -1 means unlimited."),
		mw.WithOperationID("listLimits"))

	mw.PublicGet(api, "/api/v1/chords", h.Chord.ListChords,
		mw.WithTags("Chords"),
		mw.WithSummary("List chord catalog"),
		mw.WithDescription("Returns every chord variation with its fretboard positions and diagram URLs."),
		mw.WithOperationID("listChords"))

	// Kubernetes probes (hidden from docs - internal use only)
	mw.HiddenGet(api, "/healthz", handlers.Livez)
	mw.HiddenGet(api, "/readyz", handlers.NewReadyz(h.DB))

	// =========================================================================
	// Protected Routes (require bearer auth)
	// =========================================================================

	mw.ProtectedGet(api, "/api/v1/profile", h.Profile.GetProfile,
		mw.WithTags("Profile"),
		mw.WithSummary("Get own profile"),
		mw.WithDescription("Returns the caller's profile with derived access flags. Loading resets the daily search counter when a new day has started."),
		mw.WithOperationID("getProfile"))

	mw.ProtectedPost(api, "/api/v1/profile/search-usage", h.Profile.RecordSearch,
		mw.WithTags("Profile"),
		mw.WithSummary("Record a chord search"),
		mw.WithDescription("Consumes one search from the caller's daily allowance. Responds 403 when the tier's limit is already spent."),
		mw.WithOperationID("recordSearch"))

	mw.ProtectedPost(api, "/api/v1/chords/{fullName}/diagram", h.Chord.UploadDiagram,
		mw.WithTags("Chords"),
		mw.WithSummary("Upload a position diagram"),
		mw.WithDescription("Stores an SVG diagram for an existing chord position. Responds 503 when no storage bucket is configured."),
		mw.WithOperationID("uploadDiagram"))

	mw.ProtectedDelete(api, "/api/v1/chords/{fullName}/diagram", h.Chord.DeleteDiagram,
		mw.WithTags("Chords"),
		mw.WithSummary("Remove a position's diagrams"),
		mw.WithDescription("Deletes both diagram variants for an existing chord position. The catalog row is kept."),
		mw.WithOperationID("deleteDiagram"))
}

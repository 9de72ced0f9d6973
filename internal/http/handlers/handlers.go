// Package handlers contains HTTP handlers for the API.
package handlers

import (
	"context"

	"github.com/chordbase/chordbase-api/internal/http/mw"
	"github.com/chordbase/chordbase-api/internal/version"
)

// HealthCheckOutput represents health check response.
type HealthCheckOutput struct {
	Body struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
}

// HealthCheck returns the health status of the API.
func HealthCheck(ctx context.Context, input *struct{}) (*HealthCheckOutput, error) {
	out := &HealthCheckOutput{}
	out.Body.Status = "healthy"
	out.Body.Version = version.Get().Version
	return out, nil
}

// DBPinger is the minimal database interface the readiness probe needs.
type DBPinger interface {
	Ping() error
}

// LivezOutput represents the liveness probe response.
type LivezOutput struct {
	Body struct {
		Status string `json:"status"`
	}
}

// Livez reports process liveness for Kubernetes probes.
func Livez(ctx context.Context, input *struct{}) (*LivezOutput, error) {
	out := &LivezOutput{}
	out.Body.Status = "ok"
	return out, nil
}

// ReadyzOutput represents the readiness probe response.
type ReadyzOutput struct {
	Body struct {
		Status string `json:"status"`
	}
}

// NewReadyz returns a readiness probe handler bound to the database.
func NewReadyz(db DBPinger) func(ctx context.Context, input *struct{}) (*ReadyzOutput, error) {
	return func(ctx context.Context, input *struct{}) (*ReadyzOutput, error) {
		if err := db.Ping(); err != nil {
			return nil, err
		}
		out := &ReadyzOutput{}
		out.Body.Status = "ok"
		return out, nil
	}
}

// getUserID extracts user ID from context.
func getUserID(ctx context.Context) string {
	claims := mw.GetUserClaims(ctx)
	if claims == nil {
		return ""
	}
	return claims.UserID
}

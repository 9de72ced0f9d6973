package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	svix "github.com/svix/svix-webhooks/go"

	"github.com/chordbase/chordbase-api/internal/config"
	"github.com/chordbase/chordbase-api/internal/service"
)

// AuthWebhookHandler handles user lifecycle events from the auth
// provider. Deliveries are signed with Svix.
type AuthWebhookHandler struct {
	cfg        *config.Config
	profileSvc *service.ProfileService
	logger     *slog.Logger
}

// NewAuthWebhookHandler creates a new auth webhook handler.
func NewAuthWebhookHandler(cfg *config.Config, profileSvc *service.ProfileService, logger *slog.Logger) *AuthWebhookHandler {
	return &AuthWebhookHandler{
		cfg:        cfg,
		profileSvc: profileSvc,
		logger:     logger,
	}
}

// AuthWebhookEvent represents an auth-provider webhook event.
type AuthWebhookEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// UserEventData represents user data from the auth provider.
type UserEventData struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// HandleWebhook processes incoming auth-provider webhooks.
func (h *AuthWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	const maxBodySize = 65536 // 64KB

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("failed to read webhook body", "error", err)
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	headers := http.Header{}
	headers.Set("svix-id", r.Header.Get("svix-id"))
	headers.Set("svix-timestamp", r.Header.Get("svix-timestamp"))
	headers.Set("svix-signature", r.Header.Get("svix-signature"))

	wh, err := svix.NewWebhook(h.cfg.AuthWebhookSecret)
	if err != nil {
		h.logger.Error("failed to create webhook verifier", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := wh.Verify(payload, headers); err != nil {
		h.logger.Error("failed to verify webhook signature", "error", err)
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	var event AuthWebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		h.logger.Error("failed to parse webhook event", "error", err)
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	if err := h.handleEvent(r.Context(), event); err != nil {
		h.logger.Error("failed to handle webhook event", "type", event.Type, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// handleEvent routes events to appropriate handlers.
func (h *AuthWebhookHandler) handleEvent(ctx context.Context, event AuthWebhookEvent) error {
	h.logger.Info("received auth webhook", "type", event.Type)

	switch event.Type {
	case "user.created":
		var user UserEventData
		if err := json.Unmarshal(event.Data, &user); err != nil {
			return fmt.Errorf("failed to unmarshal user data: %w", err)
		}
		if user.ID == "" {
			return fmt.Errorf("user.created event has no user ID")
		}
		return h.profileSvc.CreateFromAuthEvent(ctx, user.ID, user.Email, user.FullName)

	case "user.deleted":
		var user UserEventData
		if err := json.Unmarshal(event.Data, &user); err != nil {
			return fmt.Errorf("failed to unmarshal user data: %w", err)
		}
		if user.ID == "" {
			return fmt.Errorf("user.deleted event has no user ID")
		}
		return h.profileSvc.DeleteProfile(ctx, user.ID)

	default:
		h.logger.Debug("unhandled webhook event type", "type", event.Type)
		return nil
	}
}

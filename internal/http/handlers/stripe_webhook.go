package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"

	"github.com/chordbase/chordbase-api/internal/config"
	"github.com/chordbase/chordbase-api/internal/constants"
	"github.com/chordbase/chordbase-api/internal/models"
	"github.com/chordbase/chordbase-api/internal/service"
)

// StripeWebhookHandler handles Stripe webhook events.
type StripeWebhookHandler struct {
	cfg        *config.Config
	profileSvc *service.ProfileService
	logger     *slog.Logger
}

// NewStripeWebhookHandler creates a new Stripe webhook handler.
func NewStripeWebhookHandler(cfg *config.Config, profileSvc *service.ProfileService, logger *slog.Logger) *StripeWebhookHandler {
	stripe.Key = cfg.StripeSecretKey

	return &StripeWebhookHandler{
		cfg:        cfg,
		profileSvc: profileSvc,
		logger:     logger,
	}
}

// HandleWebhook processes incoming Stripe webhooks.
// This is a raw HTTP handler since signature verification needs the
// unparsed body.
func (h *StripeWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	const maxBodySize = 65536 // 64KB

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("failed to read webhook body", "error", err)
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	sigHeader := r.Header.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sigHeader, h.cfg.StripeWebhookSecret)
	if err != nil {
		h.logger.Error("failed to verify webhook signature", "error", err)
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	if err := h.handleEvent(r.Context(), event); err != nil {
		h.logger.Error("failed to handle webhook event", "type", event.Type, "error", err)
		// Return 200 so Stripe does not retry; the failure is logged for
		// manual reconciliation.
		w.WriteHeader(http.StatusOK)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// handleEvent routes events to appropriate handlers.
func (h *StripeWebhookHandler) handleEvent(ctx context.Context, event stripe.Event) error {
	h.logger.Info("received Stripe webhook", "type", event.Type, "id", event.ID)

	switch event.Type {
	case "checkout.session.completed":
		return h.handleCheckoutComplete(ctx, event)

	case "customer.subscription.updated":
		return h.handleSubscriptionUpdated(ctx, event)

	case "customer.subscription.deleted":
		return h.handleSubscriptionCanceled(ctx, event)

	default:
		h.logger.Debug("unhandled webhook event type", "type", event.Type)
		return nil
	}
}

// handleCheckoutComplete links the new Stripe customer to the user and
// applies the purchased tier.
func (h *StripeWebhookHandler) handleCheckoutComplete(ctx context.Context, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("failed to unmarshal checkout session: %w", err)
	}

	userID, ok := session.Metadata["user_id"]
	if !ok || userID == "" {
		h.logger.Warn("checkout session missing user_id", "session_id", session.ID)
		return nil
	}

	tier, ok := session.Metadata["tier"]
	if !ok || tier == "" {
		tier = constants.TierRoadie
	}

	if session.Customer != nil {
		if err := h.profileSvc.LinkStripeCustomer(ctx, userID, session.Customer.ID); err != nil {
			return fmt.Errorf("failed to link customer: %w", err)
		}
		if err := h.profileSvc.ApplySubscriptionChange(ctx, session.Customer.ID, tier, models.SubscriptionStatusActive); err != nil {
			return fmt.Errorf("failed to apply checkout subscription: %w", err)
		}
	}

	h.logger.Info("checkout completed", "user_id", userID, "tier", tier)
	return nil
}

// handleSubscriptionUpdated applies tier and status changes reported by
// billing, including past_due on failed payments.
func (h *StripeWebhookHandler) handleSubscriptionUpdated(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("failed to unmarshal subscription: %w", err)
	}
	if sub.Customer == nil {
		return fmt.Errorf("subscription %s has no customer", sub.ID)
	}

	tier, ok := sub.Metadata["tier"]
	if !ok || tier == "" {
		tier = constants.TierRoadie
	}

	return h.profileSvc.ApplySubscriptionChange(ctx, sub.Customer.ID, tier, mapSubscriptionStatus(sub.Status))
}

// handleSubscriptionCanceled drops the user back to the free tier.
func (h *StripeWebhookHandler) handleSubscriptionCanceled(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("failed to unmarshal subscription: %w", err)
	}
	if sub.Customer == nil {
		return fmt.Errorf("subscription %s has no customer", sub.ID)
	}

	return h.profileSvc.ApplySubscriptionChange(ctx, sub.Customer.ID, constants.TierFreebird, models.SubscriptionStatusCanceled)
}

// mapSubscriptionStatus maps Stripe subscription statuses onto the three
// states profiles track.
func mapSubscriptionStatus(status stripe.SubscriptionStatus) string {
	switch status {
	case stripe.SubscriptionStatusActive, stripe.SubscriptionStatusTrialing:
		return models.SubscriptionStatusActive
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusUnpaid:
		return models.SubscriptionStatusPastDue
	default:
		return models.SubscriptionStatusCanceled
	}
}

package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/corestudios/rolebridge/app/models"
	"github.com/corestudios/rolebridge/internal/pkg/billing"
	"github.com/corestudios/rolebridge/internal/pkg/discord"
	"github.com/corestudios/rolebridge/internal/pkg/metrics"
)

// NotificationHandler processes one payment notification.
type NotificationHandler interface {
	HandleNotification(ctx context.Context, n models.PaymentNotification) (billing.Result, error)
}

// BillingController receives payment provider webhooks.
type BillingController struct {
	handler NotificationHandler
	metrics *metrics.Metrics
	timeout time.Duration
}

// NewBillingController creates the webhook controller.
func NewBillingController(handler NotificationHandler, m *metrics.Metrics) *BillingController {
	return &BillingController{
		handler: handler,
		metrics: m,
		timeout: outboundTimeout,
	}
}

// HandlePaymentWebhook answers 200 for every handled notification, approved
// or not, and 500 when the grant chain fails. There is no retry.
func (bc *BillingController) HandlePaymentWebhook(c *fiber.Ctx) error {
	deliveryID := firstHeaderValue(c, "X-Request-Id", "X-Idempotency-Key")
	if deliveryID == "" {
		deliveryID = uuid.NewString()
	}

	// Bodies with another content type are not parsed and count as empty.
	var notification models.PaymentNotification
	if c.Is("json") {
		n, err := models.DecodePaymentNotification(c.Body())
		if err != nil {
			bc.metrics.WebhookNotifications.WithLabelValues(metrics.WebhookInvalid).Inc()
			log.Warnf("[Webhook] %s: invalid payload: %v", deliveryID, err)
			return c.SendStatus(fiber.StatusBadRequest)
		}
		notification = n
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), bc.timeout)
	defer cancel()

	res, err := bc.handler.HandleNotification(ctx, notification)
	if err != nil {
		bc.metrics.WebhookNotifications.WithLabelValues(metrics.WebhookFailed).Inc()
		log.Errorf("[Webhook] %s: erro no webhook (reference=%q kind=%s): %v",
			deliveryID, notification.ExternalReference, failureKind(err), err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	switch res.Outcome {
	case billing.OutcomeGranted:
		bc.metrics.WebhookNotifications.WithLabelValues(metrics.WebhookGranted).Inc()
		log.Infof("[Webhook] %s: [OK] Cargo aplicado e log enviado para %s (%s)", deliveryID, res.Reference.UserID, res.Reference.Plan)
	case billing.OutcomeIgnored:
		bc.metrics.WebhookNotifications.WithLabelValues(metrics.WebhookIgnored).Inc()
		log.Debugf("[Webhook] %s: ignoring status %q", deliveryID, notification.Status)
	}

	return c.SendStatus(fiber.StatusOK)
}

// failureKind names the error class for logs.
func failureKind(err error) string {
	switch {
	case errors.Is(err, billing.ErrMalformedReference):
		return "malformed_reference"
	case errors.Is(err, billing.ErrUnknownPlan):
		return "unknown_plan"
	case errors.Is(err, discord.ErrGuildNotFound):
		return lookupKind("guild", err)
	case errors.Is(err, discord.ErrMemberNotFound):
		return lookupKind("member", err)
	case errors.Is(err, discord.ErrChannelNotFound):
		return lookupKind("channel", err)
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "upstream"
	}
}

// lookupKind separates a resource Discord does not know from a lookup that
// failed for another reason (permissions, rate limit, outage).
func lookupKind(resource string, err error) string {
	if discord.IsUnknownResource(err) {
		return resource + "_not_found"
	}
	return resource + "_lookup_failed"
}

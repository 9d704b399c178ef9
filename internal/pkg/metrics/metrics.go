package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rolebridge"

// Webhook outcome labels.
const (
	WebhookIgnored = "ignored"
	WebhookGranted = "granted"
	WebhookFailed  = "failed"
	WebhookInvalid = "invalid"
)

// Metrics holds the application's prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	WebhookNotifications *prometheus.CounterVec
	OAuthLogins          *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		WebhookNotifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_notifications_total",
			Help:      "Payment notifications received, by outcome.",
		}, []string{"outcome"}),
		OAuthLogins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oauth_logins_total",
			Help:      "OAuth callback attempts, by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.WebhookNotifications, m.OAuthLogins)
	return m
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

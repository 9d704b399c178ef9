package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.WebhookNotifications.WithLabelValues(WebhookGranted).Inc()
	m.WebhookNotifications.WithLabelValues(WebhookGranted).Inc()
	m.OAuthLogins.WithLabelValues("success").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.WebhookNotifications.WithLabelValues(WebhookGranted)))

	app := fiber.New()
	app.Get("/metrics", m.Handler())
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `rolebridge_webhook_notifications_total{outcome="granted"} 2`)
	assert.Contains(t, string(body), `rolebridge_oauth_logins_total{result="success"} 1`)
}

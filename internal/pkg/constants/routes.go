package constants

// Route constants
const (
	HomeRoute          = "/"
	WebhookRoute       = "/webhook"
	LoginRoute         = "/login"
	OAuthCallbackRoute = "/auth/discord/callback"
	DashboardRoute     = "/dashboard"
	LogoutRoute        = "/logout"

	HealthRoute            = "/healthz"
	MetricsRoute           = "/metrics"
	PrometheusMetricsRoute = "/metrics/prometheus"
)

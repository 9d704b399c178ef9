package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/corestudios/rolebridge/app/controllers"
	"github.com/corestudios/rolebridge/internal/pkg/constants"
	"github.com/corestudios/rolebridge/internal/pkg/middleware"
)

// loginRateLimit is the number of login and callback requests a client may
// make per minute.
const loginRateLimit = 30

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get(constants.HomeRoute, controllers.HandleStart)

	// Payment provider webhook (no auth, no signature check)
	app.Post(constants.WebhookRoute, h.billing.HandlePaymentWebhook)

	// Discord OAuth
	// Keyed on c.IP(), which reads PROXY_HEADER when the app runs behind a proxy.
	authLimiter := limiter.New(limiter.Config{
		Max:        loginRateLimit,
		Expiration: time.Minute,
	})
	app.Get(constants.LoginRoute, authLimiter, h.oauth.HandleLogin)
	app.Get(constants.OAuthCallbackRoute, authLimiter, h.oauth.HandleOAuthCallback)

	// Profile
	app.Get(constants.DashboardRoute, middleware.RequireAuth, h.auth.HandleDashboard)
	app.Get(constants.LogoutRoute, h.auth.HandleAuthLogout)
}

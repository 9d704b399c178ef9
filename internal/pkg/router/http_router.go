package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/corestudios/rolebridge/app/controllers"
	"github.com/corestudios/rolebridge/internal/pkg/middleware"
)

type HttpRouter struct {
	deps    Dependencies
	billing *controllers.BillingController
	oauth   *controllers.OAuthController
	auth    *controllers.AuthController
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware(h.deps.Sessions))

	h.registerPublicRoutes(app)
}

func NewHttpRouter(deps Dependencies) *HttpRouter {
	return &HttpRouter{
		deps:    deps,
		billing: controllers.NewBillingController(deps.Payments, deps.Metrics),
		oauth:   controllers.NewOAuthController(deps.Auth, deps.Sessions, deps.Metrics),
		auth:    controllers.NewAuthController(deps.Sessions),
	}
}

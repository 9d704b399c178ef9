package router

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/corestudios/rolebridge/app/controllers"
	"github.com/corestudios/rolebridge/internal/pkg/config"
	"github.com/corestudios/rolebridge/internal/pkg/metrics"
	"github.com/corestudios/rolebridge/internal/pkg/session"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// Dependencies are the process-scoped objects handlers are built from.
type Dependencies struct {
	Config    *config.Config
	Sessions  session.Store
	Payments  controllers.NotificationHandler
	Auth      controllers.Authenticator
	Bot       controllers.ReadyChecker
	PingCache func(ctx context.Context) error
	Metrics   *metrics.Metrics
	// OpenAPIFile is served under /docs/api when set.
	OpenAPIFile string
}

func InstallRouter(app *fiber.App, deps Dependencies) {
	// The HttpRouter installs the user context middleware, so it goes first.
	setup(app, NewHttpRouter(deps), NewOpsRouter(deps))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}

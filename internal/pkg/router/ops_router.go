package router

import (
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/monitor"

	"github.com/corestudios/rolebridge/app/controllers"
	"github.com/corestudios/rolebridge/internal/pkg/constants"
)

// OpsRouter serves health, metrics and API docs.
type OpsRouter struct {
	deps Dependencies
}

func (o OpsRouter) InstallRouter(app *fiber.App) {
	health := controllers.NewHealthController(o.deps.Bot, o.deps.PingCache)
	app.Get(constants.HealthRoute, health.HandleHealth)

	if o.deps.Config.Metrics.Enabled() {
		metricsAuth := basicauth.New(basicauth.Config{
			Users: map[string]string{
				o.deps.Config.Metrics.User: o.deps.Config.Metrics.Password,
			},
		})
		app.Get(constants.MetricsRoute, metricsAuth, monitor.New())
		app.Get(constants.PrometheusMetricsRoute, metricsAuth, o.deps.Metrics.Handler())
	} else {
		log.Info("[Metrics] METRICS_USER/METRICS_PASSWORD not set, metrics routes disabled")
	}

	// SWAGGER / OPENAPI
	if o.deps.OpenAPIFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/docs/api/",
			FilePath: o.deps.OpenAPIFile,
			Path:     "v1",
			Title:    "rolebridge API",
		}))
	}
}

func NewOpsRouter(deps Dependencies) *OpsRouter {
	return &OpsRouter{deps: deps}
}

package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// ReadyChecker reports whether the bot gateway is connected.
type ReadyChecker interface {
	Ready() bool
}

// HealthController reports the state of the bot connection and the cache.
type HealthController struct {
	bot       ReadyChecker
	pingCache func(ctx context.Context) error
}

func NewHealthController(bot ReadyChecker, pingCache func(ctx context.Context) error) *HealthController {
	return &HealthController{bot: bot, pingCache: pingCache}
}

func (hc *HealthController) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	discordState := "ready"
	if !hc.bot.Ready() {
		discordState = "connecting"
		status = fiber.StatusServiceUnavailable
	}

	cacheState := "ok"
	if hc.pingCache != nil {
		if err := hc.pingCache(ctx); err != nil {
			log.Warnf("[Cache] Health check ping failed: %v", err)
			cacheState = "unavailable"
			status = fiber.StatusServiceUnavailable
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"ok":      status == fiber.StatusOK,
		"discord": discordState,
		"cache":   cacheState,
	})
}

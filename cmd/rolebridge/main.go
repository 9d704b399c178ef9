package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/corestudios/rolebridge/internal/pkg/billing"
	"github.com/corestudios/rolebridge/internal/pkg/cache"
	"github.com/corestudios/rolebridge/internal/pkg/config"
	"github.com/corestudios/rolebridge/internal/pkg/discord"
	"github.com/corestudios/rolebridge/internal/pkg/env"
	"github.com/corestudios/rolebridge/internal/pkg/metrics"
	"github.com/corestudios/rolebridge/internal/pkg/oauth"
	"github.com/corestudios/rolebridge/internal/pkg/router"
	"github.com/corestudios/rolebridge/internal/pkg/session"
)

func main() {
	env.SetupEnvFile()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	bot, err := discord.New(cfg.Discord)
	if err != nil {
		log.Fatal(err)
	}
	if err := bot.Open(); err != nil {
		log.Fatalf("[Discord] Could not open gateway connection: %v", err)
	}

	app := NewApplication(cfg, bot)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down")
		if err := app.Shutdown(); err != nil {
			log.Errorf("Shutdown error: %v", err)
		}
	}()

	if err := app.Listen(cfg.ListenAddr()); err != nil {
		log.Errorf("Listen error: %v", err)
	}

	if err := bot.Close(); err != nil {
		log.Errorf("[Discord] Close error: %v", err)
	}
}

func NewApplication(cfg *config.Config, bot *discord.Client) *fiber.App {
	cacheClient := cache.NewClient(cfg.Cache)

	// Define possible base paths
	basePaths := []string{
		"./",     // Current directory
		"../../", // From cmd/rolebridge to project root
	}

	// Find the API document, swagger stays off without it
	openAPIFile := ""
	for _, path := range basePaths {
		if _, err := os.Stat(path + "docs/openapi.yml"); !os.IsNotExist(err) {
			openAPIFile = path + "docs/openapi.yml"
			break
		}
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName:     "rolebridge",
		BodyLimit:   1 << 20,
		ProxyHeader: cfg.ProxyHeader,
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// ROUTER
	router.InstallRouter(app, router.Dependencies{
		Config:   cfg,
		Sessions: session.NewStore(cfg, cacheClient),
		Payments: billing.NewService(bot, billing.DefaultPlanRoles(), cfg.Discord.GuildID, cfg.Discord.LogChannelID),
		Auth:     oauth.NewDiscordClient(cfg.OAuth),
		Bot:      bot,
		PingCache: func(ctx context.Context) error {
			return cache.Ping(ctx, cacheClient)
		},
		Metrics:     metrics.New(),
		OpenAPIFile: openAPIFile,
	})

	return app
}

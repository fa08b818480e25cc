package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katakuxiko/askai/internal/config"
	"github.com/katakuxiko/askai/internal/service"
)

// NewApp returns a Fiber app with the common middleware installed.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "askai",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	return app
}

// RegisterRoutes mounts the API and, last, the static front-end so API
// paths always win over files.
func RegisterRoutes(app *fiber.App, cfg *config.Config, ask *service.AskService, history HistoryLister, gatherer prometheus.Gatherer) {
	h := NewHandler(ask, history)

	app.Get("/health", h.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	app.Post("/ask-ai", h.AskAI)
	app.Get("/ask-ai/history", h.History)

	app.Static("/", cfg.StaticDir, fiber.Static{Index: cfg.IndexFile})
}

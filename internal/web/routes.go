package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers all HTTP routes on the Fiber app.
func RegisterRoutes(app *fiber.App, h *Handler) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/", h.Page)
	app.Post("/theme", h.ToggleTheme)
	app.Post("/refresh", h.Refresh)

	v1 := app.Group("/api/v1")
	v1.Get("/assets", h.Assets)
	v1.Get("/pairs", h.Pairs)
}

package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/tutor-api/internal/config"
	"github.com/noah-isme/tutor-api/internal/handler"
	"github.com/noah-isme/tutor-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	LessonHandler *handler.LessonHandler
	TutorHandler  *handler.TutorHandler
	SeedHandler   *handler.SeedHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	if deps.LessonHandler != nil {
		deps.LessonHandler.Register(app.Group("/lessons"))
	}

	// The front-end posts to the tutor endpoints at the root.
	if deps.TutorHandler != nil {
		deps.TutorHandler.Register(app)
	}

	if deps.SeedHandler != nil {
		deps.SeedHandler.Register(app)
	}
}

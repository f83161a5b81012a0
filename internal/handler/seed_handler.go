package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tutor-api/internal/service"
	"github.com/noah-isme/tutor-api/internal/utils"
)

// SeedHandler exposes development tooling for creating sample data.
type SeedHandler struct {
	service service.SeedService
	logger  zerolog.Logger
}

// NewSeedHandler constructs a seed handler.
func NewSeedHandler(service service.SeedService, logger zerolog.Logger) *SeedHandler {
	return &SeedHandler{
		service: service,
		logger:  logger.With().Str("component", "seed_handler").Logger(),
	}
}

// Register wires seed routes.
func (h *SeedHandler) Register(router fiber.Router) {
	router.Post("/create-test-lesson", h.createTestLesson)
}

func (h *SeedHandler) createTestLesson(c *fiber.Ctx) error {
	response, err := h.service.CreateTestLesson(c.UserContext(), c.Get("X-Seed-Token"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSeedDisabled):
			return utils.SendError(c, fiber.StatusForbidden, "seeding disabled")
		case errors.Is(err, service.ErrSeedUnauthorized):
			return utils.SendError(c, fiber.StatusForbidden, "invalid token")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to create test lesson")
			return utils.SendError(c, fiber.StatusInternalServerError, "Error creating test lesson")
		}
	}

	return utils.SendJSON(c, fiber.StatusOK, response)
}

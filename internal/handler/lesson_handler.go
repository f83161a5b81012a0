package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tutor-api/internal/dto"
	"github.com/noah-isme/tutor-api/internal/service"
	"github.com/noah-isme/tutor-api/internal/utils"
)

// LessonHandler exposes the lesson catalogue.
type LessonHandler struct {
	service   service.LessonService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewLessonHandler constructs a lesson handler.
func NewLessonHandler(service service.LessonService, validator *validator.Validate, logger zerolog.Logger) *LessonHandler {
	return &LessonHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "lesson_handler").Logger(),
	}
}

// Register wires lesson routes.
func (h *LessonHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:lesson_id", h.get)
	router.Get("/:lesson_id/questions", h.questions)
}

func (h *LessonHandler) list(c *fiber.Ctx) error {
	var query dto.LessonListRequest
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid grade")
	}
	if err := h.validator.Struct(query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	lessons, err := h.service.List(c.UserContext(), query)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list lessons")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list lessons")
	}

	return utils.SendJSON(c, fiber.StatusOK, lessons)
}

func (h *LessonHandler) get(c *fiber.Ctx) error {
	lesson, err := h.service.Get(c.UserContext(), c.Params("lesson_id"))
	if err != nil {
		return h.handleError(c, err, "failed to fetch lesson")
	}
	return utils.SendJSON(c, fiber.StatusOK, lesson)
}

func (h *LessonHandler) questions(c *fiber.Ctx) error {
	listing, err := h.service.Questions(c.UserContext(), c.Params("lesson_id"))
	if err != nil {
		return h.handleError(c, err, "failed to fetch questions")
	}
	return utils.SendJSON(c, fiber.StatusOK, listing)
}

func (h *LessonHandler) handleError(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, service.ErrLessonNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "Lesson not found")
	}
	requestLogger(h.logger, c).Error().Err(err).Str("lesson_id", c.Params("lesson_id")).Msg(message)
	return utils.SendError(c, fiber.StatusInternalServerError, message)
}

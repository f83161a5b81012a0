package handler

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tutor-api/internal/dto"
	"github.com/noah-isme/tutor-api/internal/service"
	"github.com/noah-isme/tutor-api/internal/utils"
	"github.com/noah-isme/tutor-api/pkg/ai"
)

// TutorHandler exposes question generation, answer submission and feedback.
type TutorHandler struct {
	generation service.QuestionGenerationService
	feedback   service.FeedbackService
	submission service.SubmissionService
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewTutorHandler constructs the tutor handler.
func NewTutorHandler(generation service.QuestionGenerationService, feedback service.FeedbackService, submission service.SubmissionService, validator *validator.Validate, logger zerolog.Logger) *TutorHandler {
	return &TutorHandler{
		generation: generation,
		feedback:   feedback,
		submission: submission,
		validator:  validator,
		logger:     logger.With().Str("component", "tutor_handler").Logger(),
	}
}

// Register wires tutor routes.
func (h *TutorHandler) Register(router fiber.Router) {
	router.Post("/generate-questions", h.generateQuestions)
	router.Post("/submit-answers", h.submitAnswers)
	router.Post("/feedback", h.evaluate)
}

func (h *TutorHandler) generateQuestions(c *fiber.Ctx) error {
	var payload dto.GenerateQuestionsRequest
	if message, ok := h.bind(c, &payload); !ok {
		return utils.SendError(c, fiber.StatusBadRequest, message)
	}

	pairs, err := h.generation.Generate(c.UserContext(), payload.LessonTitle)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLessonNotFound):
			return utils.SendError(c, fiber.StatusNotFound, fmt.Sprintf("Lesson '%s' not found.", payload.LessonTitle))
		case errors.Is(err, service.ErrNoQuestionsGenerated):
			return utils.SendError(c, fiber.StatusNotFound, "No questions could be generated for this lesson")
		default:
			h.logProviderError(c, err, "failed to generate questions")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to generate questions")
		}
	}

	return utils.SendJSON(c, fiber.StatusOK, pairs)
}

func (h *TutorHandler) submitAnswers(c *fiber.Ctx) error {
	var payload dto.SubmitAnswersRequest
	if message, ok := h.bind(c, &payload); !ok {
		return utils.SendError(c, fiber.StatusBadRequest, message)
	}

	return utils.SendJSON(c, fiber.StatusOK, h.submission.Submit(c.UserContext(), payload))
}

func (h *TutorHandler) evaluate(c *fiber.Ctx) error {
	var payload dto.FeedbackRequest
	if message, ok := h.bind(c, &payload); !ok {
		return utils.SendError(c, fiber.StatusBadRequest, message)
	}

	response, err := h.feedback.Evaluate(c.UserContext(), payload.LessonTitle, payload.QnA)
	if err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, fmt.Sprintf("Lesson '%s' not found.", payload.LessonTitle))
		}
		h.logProviderError(c, err, "failed to evaluate answers")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to evaluate answers")
	}

	return utils.SendJSON(c, fiber.StatusOK, response)
}

// bind decodes and validates the body, returning the client-facing message on failure.
func (h *TutorHandler) bind(c *fiber.Ctx, target interface{}) (string, bool) {
	if err := c.BodyParser(target); err != nil {
		return "invalid payload", false
	}
	if err := h.validator.Struct(target); err != nil {
		if isValidationError(err) {
			return validationMessage(err), false
		}
		return "invalid payload", false
	}
	return "", true
}

func (h *TutorHandler) logProviderError(c *fiber.Ctx, err error, message string) {
	event := requestLogger(h.logger, c).Error().Err(err)
	var providerErr *ai.ProviderError
	if errors.As(err, &providerErr) {
		event = event.Str("provider", providerErr.Provider).Str("kind", string(providerErr.Kind))
	}
	event.Msg(message)
}

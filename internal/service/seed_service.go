package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tutor-api/internal/dto"
	"github.com/noah-isme/tutor-api/internal/models"
	"github.com/noah-isme/tutor-api/internal/repository"
)

// CatalogueInvalidator drops cached lesson listings.
type CatalogueInvalidator interface {
	Invalidate(ctx context.Context)
}

// SeedService creates the sample lessons used for development.
type SeedService interface {
	// CreateTestLesson backs the development endpoint and is guarded by configuration.
	CreateTestLesson(ctx context.Context, token string) (dto.CreateTestLessonResponse, error)
	// SeedSamples creates every sample lesson that does not exist yet and returns how
	// many were created.
	SeedSamples(ctx context.Context) (int, error)
}

type seedService struct {
	lessons   repository.LessonRepository
	catalogue CatalogueInvalidator
	enabled   bool
	token     string
	logger    zerolog.Logger
}

// NewSeedService constructs a seeding service. catalogue may be nil.
func NewSeedService(lessons repository.LessonRepository, catalogue CatalogueInvalidator, enabled bool, token string, logger zerolog.Logger) SeedService {
	return &seedService{
		lessons:   lessons,
		catalogue: catalogue,
		enabled:   enabled,
		token:     token,
		logger:    logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) CreateTestLesson(ctx context.Context, token string) (dto.CreateTestLessonResponse, error) {
	if !s.enabled {
		return dto.CreateTestLessonResponse{}, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return dto.CreateTestLessonResponse{}, ErrSeedUnauthorized
	}

	lesson, created, err := s.ensureLesson(ctx, testLesson)
	if err != nil {
		return dto.CreateTestLessonResponse{}, err
	}

	message := "Test lesson already exists"
	if created {
		message = "Test lesson created successfully"
		s.invalidate(ctx)
	}
	return dto.CreateTestLessonResponse{Message: message, LessonID: lesson.ID}, nil
}

func (s *seedService) SeedSamples(ctx context.Context) (int, error) {
	created := 0
	for _, sample := range sampleLessons {
		_, isNew, err := s.ensureLesson(ctx, sample)
		if err != nil {
			return created, err
		}
		if isNew {
			created++
		}
	}
	if created > 0 {
		s.invalidate(ctx)
	}
	s.logger.Info().Int("created", created).Msg("sample lessons seeded")
	return created, nil
}

func (s *seedService) ensureLesson(ctx context.Context, sample sampleLesson) (models.Lesson, bool, error) {
	existing, err := s.lessons.GetByTitle(ctx, sample.Title)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Lesson{}, false, err
	}

	lesson := models.Lesson{
		Title:      sample.Title,
		Content:    sample.Content,
		GradeLevel: sample.GradeLevel,
	}
	questions := make([]models.Question, 0, len(sample.Questions))
	for i, pair := range sample.Questions {
		questions = append(questions, models.Question{
			QuestionType:  models.QuestionTypeShortAnswer,
			QuestionText:  pair.Question,
			CorrectAnswer: pair.Answer,
			Position:      i,
		})
	}
	if err := s.lessons.CreateWithQuestions(ctx, &lesson, questions); err != nil {
		return models.Lesson{}, false, err
	}

	s.logger.Info().Str("lesson_id", lesson.ID).Str("title", lesson.Title).Int("questions", len(questions)).Msg("sample lesson created")
	return lesson, true, nil
}

func (s *seedService) invalidate(ctx context.Context) {
	if s.catalogue != nil {
		s.catalogue.Invalidate(ctx)
	}
}

// validateToken accepts any token when none is configured.
func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.TrimSpace(token))) == 1
}

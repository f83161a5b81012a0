package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tutor-api/internal/events"
	"github.com/noah-isme/tutor-api/internal/models"
	"github.com/noah-isme/tutor-api/internal/qna"
	"github.com/noah-isme/tutor-api/internal/repository"
)

// QuestionService appends reference questions to lessons.
type QuestionService interface {
	// AddFromPairs stores each pair as a short-answer question of the titled lesson and
	// returns the number inserted. An unknown title inserts nothing and is not an error.
	AddFromPairs(ctx context.Context, pairs qna.Pairs, lessonTitle string) (int, error)
}

type questionService struct {
	lessons   repository.LessonRepository
	questions repository.QuestionRepository
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewQuestionService constructs a question service.
func NewQuestionService(lessons repository.LessonRepository, questions repository.QuestionRepository, publisher events.Publisher, logger zerolog.Logger) QuestionService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &questionService{
		lessons:   lessons,
		questions: questions,
		publisher: publisher,
		logger:    logger.With().Str("component", "question_service").Logger(),
	}
}

func (s *questionService) AddFromPairs(ctx context.Context, pairs qna.Pairs, lessonTitle string) (int, error) {
	lesson, err := s.lessons.GetByTitle(ctx, lessonTitle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn().Str("lesson_title", lessonTitle).Msg("lesson not found, no questions added")
			return 0, nil
		}
		return 0, err
	}

	position, err := s.questions.NextPosition(ctx, lesson.ID)
	if err != nil {
		return 0, err
	}

	batch := make([]models.Question, 0, len(pairs))
	for _, pair := range pairs {
		text := strings.TrimSpace(pair.Question)
		if text == "" {
			continue
		}
		batch = append(batch, models.Question{
			LessonID:      lesson.ID,
			QuestionType:  models.QuestionTypeShortAnswer,
			QuestionText:  text,
			CorrectAnswer: strings.TrimSpace(pair.Answer),
			Position:      position,
		})
		position++
	}

	if err := s.questions.CreateBatch(ctx, batch); err != nil {
		return 0, err
	}

	if len(batch) > 0 {
		if err := s.publisher.Publish(ctx, events.Event{
			Type:        events.TypeQuestionsImported,
			LessonTitle: lesson.Title,
			Count:       len(batch),
		}); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish import event")
		}
	}

	s.logger.Info().Str("lesson_id", lesson.ID).Int("questions", len(batch)).Msg("questions added")
	return len(batch), nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/tutor-api/internal/events"
	"github.com/noah-isme/tutor-api/internal/observability"
	"github.com/noah-isme/tutor-api/internal/parser"
	"github.com/noah-isme/tutor-api/internal/prompt"
	"github.com/noah-isme/tutor-api/internal/qna"
	"github.com/noah-isme/tutor-api/internal/repository"
	"github.com/noah-isme/tutor-api/pkg/ai"
)

// QuestionGenerationService asks the model for new questions about a stored lesson.
type QuestionGenerationService interface {
	Generate(ctx context.Context, lessonTitle string) (qna.Pairs, error)
}

type questionGenerationService struct {
	lessons   repository.LessonRepository
	questions repository.QuestionRepository
	invoker   ai.Invoker
	publisher events.Publisher
	tracer    trace.Tracer
	logger    zerolog.Logger
}

// NewQuestionGenerationService constructs the generation service. invoker is normally a
// worker.Pool.
func NewQuestionGenerationService(lessons repository.LessonRepository, questions repository.QuestionRepository, invoker ai.Invoker, publisher events.Publisher, logger zerolog.Logger) QuestionGenerationService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &questionGenerationService{
		lessons:   lessons,
		questions: questions,
		invoker:   invoker,
		publisher: publisher,
		tracer:    otel.Tracer("github.com/noah-isme/tutor-api/internal/service/generation"),
		logger:    logger.With().Str("component", "question_generation_service").Logger(),
	}
}

func (s *questionGenerationService) Generate(ctx context.Context, lessonTitle string) (qna.Pairs, error) {
	ctx, span := s.tracer.Start(ctx, "questions.generate", trace.WithAttributes(
		attribute.String("lesson_title", lessonTitle),
	))
	defer span.End()

	lesson, err := s.lessons.GetByTitle(ctx, lessonTitle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}

	samples, err := s.questions.ListByLesson(ctx, lesson.ID, "")
	if err != nil {
		return nil, err
	}

	input := prompt.GenerationInput{
		LessonTitle:     lesson.Title,
		LessonContent:   lesson.Content,
		GradeLevel:      lesson.GradeLevel,
		SampleQuestions: make([]string, 0, len(samples)),
		SampleAnswers:   make([]string, 0, len(samples)),
	}
	for _, sample := range samples {
		input.SampleQuestions = append(input.SampleQuestions, sample.QuestionText)
		input.SampleAnswers = append(input.SampleAnswers, sample.CorrectAnswer)
	}

	rendered, err := prompt.BuildGenerationPrompt(input)
	if err != nil {
		return nil, err
	}

	raw, err := s.invoker.Invoke(ctx, rendered)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	pairs, err := parser.ParseQuestionAnswers(raw)
	if err != nil {
		observability.ParseFailures().WithLabelValues("generation").Inc()
		s.logger.Warn().Err(err).Str("lesson_id", lesson.ID).Int("raw_chars", len(raw)).Msg("discarding unusable generation output")
	}

	pairs = sanitizePairs(pairs)
	span.SetAttributes(attribute.Int("questions", len(pairs)))
	if len(pairs) == 0 {
		return nil, ErrNoQuestionsGenerated
	}

	if err := s.publisher.Publish(ctx, events.Event{
		Type:        events.TypeQuestionsGenerated,
		LessonTitle: lesson.Title,
		Count:       len(pairs),
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish generation event")
	}

	s.logger.Info().Str("lesson_id", lesson.ID).Int("questions", len(pairs)).Msg("questions generated")
	return pairs, nil
}

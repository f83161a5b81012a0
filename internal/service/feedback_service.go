package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/tutor-api/internal/dto"
	"github.com/noah-isme/tutor-api/internal/events"
	"github.com/noah-isme/tutor-api/internal/observability"
	"github.com/noah-isme/tutor-api/internal/parser"
	"github.com/noah-isme/tutor-api/internal/prompt"
	"github.com/noah-isme/tutor-api/internal/qna"
	"github.com/noah-isme/tutor-api/internal/repository"
	"github.com/noah-isme/tutor-api/pkg/ai"
)

const (
	// FallbackScore is awarded to every answer when the model reply is unusable.
	FallbackScore = 70
	// FallbackFeedback accompanies FallbackScore.
	FallbackFeedback = "Thank you for your response. Your tutor will review this and provide detailed feedback."

	missingReferenceAnswer = "No sample answer is available; judge the answer against the lesson."
	scoreScale             = 20
)

// FeedbackService grades a student's answers with the model.
type FeedbackService interface {
	Evaluate(ctx context.Context, lessonTitle string, submitted qna.Pairs) (dto.FeedbackResponse, error)
}

type feedbackService struct {
	lessons   repository.LessonRepository
	questions repository.QuestionRepository
	invoker   ai.Invoker
	publisher events.Publisher
	tracer    trace.Tracer
	logger    zerolog.Logger
}

// NewFeedbackService constructs the feedback service. invoker is normally a worker.Pool.
func NewFeedbackService(lessons repository.LessonRepository, questions repository.QuestionRepository, invoker ai.Invoker, publisher events.Publisher, logger zerolog.Logger) FeedbackService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &feedbackService{
		lessons:   lessons,
		questions: questions,
		invoker:   invoker,
		publisher: publisher,
		tracer:    otel.Tracer("github.com/noah-isme/tutor-api/internal/service/feedback"),
		logger:    logger.With().Str("component", "feedback_service").Logger(),
	}
}

func (s *feedbackService) Evaluate(ctx context.Context, lessonTitle string, submitted qna.Pairs) (dto.FeedbackResponse, error) {
	ctx, span := s.tracer.Start(ctx, "feedback.evaluate", trace.WithAttributes(
		attribute.String("lesson_title", lessonTitle),
		attribute.Int("answers", len(submitted)),
	))
	defer span.End()

	lesson, err := s.lessons.GetByTitle(ctx, lessonTitle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FeedbackResponse{}, ErrLessonNotFound
		}
		return dto.FeedbackResponse{}, err
	}

	if len(submitted) == 0 {
		return ShapeFeedback(submitted, nil), nil
	}

	stored, err := s.questions.ListByLesson(ctx, lesson.ID, "")
	if err != nil {
		return dto.FeedbackResponse{}, err
	}
	references := make(map[string]string, len(stored))
	for _, question := range stored {
		references[question.QuestionText] = question.CorrectAnswer
	}

	input := prompt.EvaluationInput{
		GradeLevel:     lesson.GradeLevel,
		Reference:      make(qna.Pairs, 0, len(submitted)),
		StudentAnswers: submitted.Answers(),
	}
	for _, pair := range submitted {
		reference, ok := references[pair.Question]
		if !ok || reference == "" {
			reference = missingReferenceAnswer
		}
		input.Reference = append(input.Reference, qna.Pair{Question: pair.Question, Answer: reference})
	}

	rendered, err := prompt.BuildEvaluationPrompt(input)
	if err != nil {
		return dto.FeedbackResponse{}, err
	}

	raw, err := s.invoker.Invoke(ctx, rendered)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return dto.FeedbackResponse{}, fmt.Errorf("evaluate answers: %w", err)
	}

	results, err := parser.ParseEvaluations(raw)
	if err != nil {
		observability.ParseFailures().WithLabelValues("evaluation").Inc()
		s.logger.Warn().Err(err).Str("lesson_id", lesson.ID).Int("raw_chars", len(raw)).Msg("discarding unusable evaluation output")
	}

	response := ShapeFeedback(submitted, results)
	if response.Fallback {
		observability.FeedbackFallbacks().Inc()
	}
	span.SetAttributes(attribute.Int("score", response.Score), attribute.Bool("fallback", response.Fallback))

	score := response.Score
	if err := s.publisher.Publish(ctx, events.Event{
		Type:        events.TypeFeedbackEvaluated,
		LessonTitle: lesson.Title,
		Count:       len(response.Feedback),
		Score:       &score,
		Fallback:    response.Fallback,
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish feedback event")
	}

	return response, nil
}

// ShapeFeedback converts model results into the response students see. Result i is
// paired with submitted pair i; missing pairs get "Question N" and "No answer provided".
// Scores move from the 0-5 scale to 0-100. With no results, every submitted answer gets
// FallbackScore and FallbackFeedback.
func ShapeFeedback(submitted qna.Pairs, results []parser.EvaluationResult) dto.FeedbackResponse {
	if len(results) == 0 {
		items := make([]dto.FeedbackItem, 0, len(submitted))
		for i, pair := range submitted {
			items = append(items, dto.FeedbackItem{
				QuestionID: i + 1,
				Question:   pair.Question,
				Answer:     pair.Answer,
				Feedback:   FallbackFeedback,
				Score:      FallbackScore,
			})
		}
		return dto.FeedbackResponse{Feedback: items, Score: FallbackScore, Fallback: true}
	}

	items := make([]dto.FeedbackItem, 0, len(results))
	total := 0
	for i, result := range results {
		item := dto.FeedbackItem{
			QuestionID: i + 1,
			Question:   fmt.Sprintf("Question %d", i+1),
			Answer:     "No answer provided",
			Feedback:   sanitizeModelText(result.Feedback),
			Score:      result.Score * scoreScale,
		}
		if i < len(submitted) {
			item.Question = submitted[i].Question
			item.Answer = submitted[i].Answer
		}
		items = append(items, item)
		total += result.Score
	}

	return dto.FeedbackResponse{
		Feedback: items,
		Score:    AggregateScore(total, len(results)),
	}
}

// AggregateScore is round(mean * 20) with halves rounded to the even neighbour: 12.5
// becomes 12 and 17.5 becomes 18.
func AggregateScore(total, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.RoundToEven(float64(total) * scoreScale / float64(count)))
}

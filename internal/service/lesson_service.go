package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tutor-api/internal/dto"
	"github.com/noah-isme/tutor-api/internal/models"
	"github.com/noah-isme/tutor-api/internal/observability"
	"github.com/noah-isme/tutor-api/internal/repository"
)

const lessonCatalogueKey = "lessons:v1"

// LessonService exposes read operations for lessons and their stored questions.
type LessonService interface {
	List(ctx context.Context, req dto.LessonListRequest) ([]dto.LessonSummary, error)
	Get(ctx context.Context, id string) (dto.LessonDetail, error)
	Questions(ctx context.Context, id string) (dto.LessonQuestionsResponse, error)
	// Invalidate drops the cached catalogue after lessons are added.
	Invalidate(ctx context.Context)
}

type lessonService struct {
	lessons   repository.LessonRepository
	questions repository.QuestionRepository
	cache     *redis.Client
	ttl       time.Duration
	logger    zerolog.Logger
}

// NewLessonService constructs the lesson service. A nil cache disables catalogue caching.
func NewLessonService(lessons repository.LessonRepository, questions repository.QuestionRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) LessonService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &lessonService{
		lessons:   lessons,
		questions: questions,
		cache:     cache,
		ttl:       ttl,
		logger:    logger.With().Str("component", "lesson_service").Logger(),
	}
}

func (s *lessonService) List(ctx context.Context, req dto.LessonListRequest) ([]dto.LessonSummary, error) {
	field := "all"
	if req.Grade > 0 {
		field = "grade:" + strconv.Itoa(req.Grade)
	}

	if cached, ok := s.fetchCache(ctx, field); ok {
		observability.LessonCacheRequests().WithLabelValues("hit").Inc()
		return cached, nil
	}

	var err error
	var lessons []models.Lesson
	if req.Grade > 0 {
		lessons, err = s.lessons.ListByGrade(ctx, req.Grade)
	} else {
		lessons, err = s.lessons.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.LessonSummary, 0, len(lessons))
	for _, lesson := range lessons {
		items = append(items, dto.NewLessonSummary(lesson))
	}

	s.writeCache(ctx, field, items)
	observability.LessonCacheRequests().WithLabelValues("miss").Inc()

	return items, nil
}

func (s *lessonService) Get(ctx context.Context, id string) (dto.LessonDetail, error) {
	lesson, err := s.lessons.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LessonDetail{}, ErrLessonNotFound
		}
		return dto.LessonDetail{}, err
	}
	return dto.NewLessonDetail(lesson), nil
}

func (s *lessonService) Questions(ctx context.Context, id string) (dto.LessonQuestionsResponse, error) {
	lesson, err := s.lessons.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LessonQuestionsResponse{}, ErrLessonNotFound
		}
		return dto.LessonQuestionsResponse{}, err
	}

	questions, err := s.questions.ListByLesson(ctx, lesson.ID, "")
	if err != nil {
		return dto.LessonQuestionsResponse{}, err
	}

	items := make([]dto.LessonQuestion, 0, len(questions))
	for i, question := range questions {
		items = append(items, dto.LessonQuestion{
			ID:       i + 1,
			Question: question.QuestionText,
			Type:     dto.DisplayQuestionType(question.QuestionType),
		})
	}

	return dto.LessonQuestionsResponse{
		Lesson:    dto.NewLessonSummary(lesson),
		Questions: items,
	}, nil
}

func (s *lessonService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, lessonCatalogueKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate lesson cache")
	}
}

func (s *lessonService) fetchCache(ctx context.Context, field string) ([]dto.LessonSummary, bool) {
	if s.cache == nil {
		return nil, false
	}
	payload, err := s.cache.HGet(ctx, lessonCatalogueKey, field).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read lesson cache")
		}
		return nil, false
	}

	var items []dto.LessonSummary
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		s.logger.Warn().Err(err).Msg("failed to decode lesson cache")
		return nil, false
	}
	return items, true
}

func (s *lessonService) writeCache(ctx context.Context, field string, items []dto.LessonSummary) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(items)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode lesson cache")
		return
	}

	pipe := s.cache.TxPipeline()
	pipe.HSet(ctx, lessonCatalogueKey, field, payload)
	pipe.Expire(ctx, lessonCatalogueKey, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store lesson cache")
	}
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/tutor-api/internal/models"
)

const questionBatchSize = 100

// QuestionRepository persists lesson questions.
type QuestionRepository interface {
	// ListByLesson returns the lesson's questions in insertion order. An empty
	// questionType returns every kind.
	ListByLesson(ctx context.Context, lessonID string, questionType string) ([]models.Question, error)
	// NextPosition returns the ordinal the next appended question of the lesson should take.
	NextPosition(ctx context.Context, lessonID string) (int, error)
	CreateBatch(ctx context.Context, questions []models.Question) error
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository constructs a question repository.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) ListByLesson(ctx context.Context, lessonID string, questionType string) ([]models.Question, error) {
	query := r.db.WithContext(ctx).Where("lesson_id = ?", lessonID)
	if questionType != "" {
		query = query.Where("question_type = ?", questionType)
	}

	var questions []models.Question
	err := query.Order("position ASC, id ASC").Find(&questions).Error
	return questions, err
}

func (r *questionRepository) NextPosition(ctx context.Context, lessonID string) (int, error) {
	var next int
	err := r.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("lesson_id = ?", lessonID).
		Select("COALESCE(MAX(position) + 1, 0)").
		Scan(&next).Error
	return next, err
}

func (r *questionRepository) CreateBatch(ctx context.Context, questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(&questions, questionBatchSize).Error
}

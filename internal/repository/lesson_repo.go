package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/tutor-api/internal/models"
)

// LessonRepository persists lessons.
type LessonRepository interface {
	List(ctx context.Context) ([]models.Lesson, error)
	ListByGrade(ctx context.Context, gradeLevel int) ([]models.Lesson, error)
	GetByID(ctx context.Context, id string) (models.Lesson, error)
	GetByTitle(ctx context.Context, title string) (models.Lesson, error)
	Create(ctx context.Context, lesson *models.Lesson) error
	// CreateWithQuestions stores a lesson and its questions atomically. Each question's
	// LessonID is set to the new lesson's ID.
	CreateWithQuestions(ctx context.Context, lesson *models.Lesson, questions []models.Question) error
}

type lessonRepository struct {
	db *gorm.DB
}

// NewLessonRepository constructs a lesson repository.
func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) List(ctx context.Context) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := r.db.WithContext(ctx).Order("grade_level ASC, title ASC").Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepository) ListByGrade(ctx context.Context, gradeLevel int) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := r.db.WithContext(ctx).
		Where("grade_level = ?", gradeLevel).
		Order("title ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepository) GetByID(ctx context.Context, id string) (models.Lesson, error) {
	var lesson models.Lesson
	err := r.db.WithContext(ctx).Where("id = ?", strings.TrimSpace(id)).First(&lesson).Error
	return lesson, err
}

func (r *lessonRepository) GetByTitle(ctx context.Context, title string) (models.Lesson, error) {
	var lesson models.Lesson
	err := r.db.WithContext(ctx).Where("title = ?", strings.TrimSpace(title)).First(&lesson).Error
	return lesson, err
}

func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	return r.db.WithContext(ctx).Create(lesson).Error
}

func (r *lessonRepository) CreateWithQuestions(ctx context.Context, lesson *models.Lesson, questions []models.Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lesson).Error; err != nil {
			return err
		}

		if len(questions) == 0 {
			return nil
		}
		for i := range questions {
			questions[i].LessonID = lesson.ID
		}

		return tx.CreateInBatches(&questions, questionBatchSize).Error
	})
}

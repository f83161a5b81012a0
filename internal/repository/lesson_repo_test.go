package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/tutor-api/internal/models"
)

func TestLessonRepositoryLookups(t *testing.T) {
	db := setupTutorTestDB(t)
	repo := NewLessonRepository(db)
	ctx := context.Background()

	lessons := []models.Lesson{
		{Title: "The Tinkling Bells", Content: "Chinna lost the money...", GradeLevel: 4},
		{Title: "  Introduction to Shakespeare ", Content: "William Shakespeare...", GradeLevel: 4},
		{Title: "The Best Christmas Present in the World", Content: "A roll-top desk...", GradeLevel: 8},
	}
	for i := range lessons {
		require.NoError(t, repo.Create(ctx, &lessons[i]))
		require.Len(t, lessons[i].ID, 36)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "Introduction to Shakespeare", all[0].Title)

	grade4, err := repo.ListByGrade(ctx, 4)
	require.NoError(t, err)
	require.Len(t, grade4, 2)

	byTitle, err := repo.GetByTitle(ctx, "Introduction to Shakespeare")
	require.NoError(t, err)
	require.Equal(t, lessons[1].ID, byTitle.ID)

	byID, err := repo.GetByID(ctx, lessons[2].ID)
	require.NoError(t, err)
	require.Equal(t, 8, byID.GradeLevel)

	_, err = repo.GetByID(ctx, "missing")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = repo.GetByTitle(ctx, "Missing Lesson")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestLessonRepositoryRejectsDuplicateTitle(t *testing.T) {
	db := setupTutorTestDB(t)
	repo := NewLessonRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Lesson{Title: "Duplicate", Content: "a", GradeLevel: 3}))
	require.Error(t, repo.Create(ctx, &models.Lesson{Title: "Duplicate", Content: "b", GradeLevel: 3}))
}

func TestLessonRepositoryCreateWithQuestionsRollsBack(t *testing.T) {
	db := setupTutorTestDB(t)
	lessons := NewLessonRepository(db)
	questions := NewQuestionRepository(db)
	ctx := context.Background()

	broken := models.Lesson{Title: "Atomic", Content: "content", GradeLevel: 5}
	err := lessons.CreateWithQuestions(ctx, &broken, []models.Question{
		{ID: "dup", QuestionText: "First?", CorrectAnswer: "One.", Position: 0},
		{ID: "dup", QuestionText: "Second?", CorrectAnswer: "Two.", Position: 1},
	})
	require.Error(t, err)

	_, err = lessons.GetByTitle(ctx, "Atomic")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	lesson := models.Lesson{Title: "Atomic", Content: "content", GradeLevel: 5}
	require.NoError(t, lessons.CreateWithQuestions(ctx, &lesson, []models.Question{
		{QuestionText: "First?", CorrectAnswer: "One.", Position: 0},
		{QuestionText: "Second?", CorrectAnswer: "Two.", Position: 1},
	}))

	stored, err := questions.ListByLesson(ctx, lesson.ID, "")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	require.Equal(t, lesson.ID, stored[0].LessonID)
	require.Equal(t, models.QuestionTypeShortAnswer, stored[1].QuestionType)
}

func TestQuestionRepositoryOrderingAndTypeFilter(t *testing.T) {
	db := setupTutorTestDB(t)
	lessons := NewLessonRepository(db)
	questions := NewQuestionRepository(db)
	ctx := context.Background()

	lesson := models.Lesson{Title: "Sample", Content: "content", GradeLevel: 8}
	require.NoError(t, lessons.Create(ctx, &lesson))

	next, err := questions.NextPosition(ctx, lesson.ID)
	require.NoError(t, err)
	require.Equal(t, 0, next)

	batch := []models.Question{
		{LessonID: lesson.ID, QuestionType: "short_answer", QuestionText: "What is the main theme?", CorrectAnswer: "Love and hope.", Position: 0},
		{LessonID: lesson.ID, QuestionType: "essay", QuestionText: "How are letters important?", CorrectAnswer: "They bridge people.", Position: 1},
		{LessonID: lesson.ID, QuestionType: "unknown", QuestionText: "What does Christmas teach?", CorrectAnswer: "Togetherness.", Position: 2},
	}
	require.NoError(t, questions.CreateBatch(ctx, batch))
	require.NoError(t, questions.CreateBatch(ctx, nil))

	all, err := questions.ListByLesson(ctx, lesson.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "What is the main theme?", all[0].QuestionText)
	require.Equal(t, "How are letters important?", all[1].QuestionText)
	require.Equal(t, models.QuestionTypeShortAnswer, all[2].QuestionType)

	essays, err := questions.ListByLesson(ctx, lesson.ID, models.QuestionTypeEssay)
	require.NoError(t, err)
	require.Len(t, essays, 1)

	next, err = questions.NextPosition(ctx, lesson.ID)
	require.NoError(t, err)
	require.Equal(t, 3, next)
}

func TestQuestionRepositoryRequiresExistingLesson(t *testing.T) {
	db := setupTutorTestDB(t)
	questions := NewQuestionRepository(db)

	err := questions.CreateBatch(context.Background(), []models.Question{
		{LessonID: "00000000-0000-0000-0000-000000000000", QuestionText: "orphan"},
	})
	require.Error(t, err)
}

func setupTutorTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Lesson{}, &models.Question{}))
	return db
}

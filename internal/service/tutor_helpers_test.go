package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/tutor-api/internal/events"
	"github.com/noah-isme/tutor-api/internal/models"
	"github.com/noah-isme/tutor-api/internal/qna"
	"github.com/noah-isme/tutor-api/internal/repository"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Lesson{}, &models.Question{}))
	return db
}

func createLessonWithQuestions(t *testing.T, db *gorm.DB, title string, grade int, pairs qna.Pairs) models.Lesson {
	t.Helper()
	ctx := context.Background()
	lesson := models.Lesson{Title: title, Content: title + " content", GradeLevel: grade}
	require.NoError(t, repository.NewLessonRepository(db).Create(ctx, &lesson))

	questions := make([]models.Question, 0, len(pairs))
	for i, pair := range pairs {
		questions = append(questions, models.Question{
			LessonID:      lesson.ID,
			QuestionType:  models.QuestionTypeShortAnswer,
			QuestionText:  pair.Question,
			CorrectAnswer: pair.Answer,
			Position:      i,
		})
	}
	require.NoError(t, repository.NewQuestionRepository(db).CreateBatch(ctx, questions))
	return lesson
}

type recordingInvoker struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (r *recordingInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts = append(r.prompts, prompt)
	return r.reply, r.err
}

func (r *recordingInvoker) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.prompts)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

type countingInvalidator struct {
	count int
}

func (c *countingInvalidator) Invalidate(context.Context) {
	c.count++
}

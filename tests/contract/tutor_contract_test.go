package contract_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutor-api/internal/database"
	"github.com/noah-isme/tutor-api/internal/events"
	"github.com/noah-isme/tutor-api/internal/handler"
	"github.com/noah-isme/tutor-api/internal/models"
	"github.com/noah-isme/tutor-api/internal/repository"
	"github.com/noah-isme/tutor-api/internal/service"
	"github.com/noah-isme/tutor-api/internal/worker"
	"github.com/noah-isme/tutor-api/pkg/ai"
)

const lessonTitle = "The Tinkling Bells"

func compileSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()
	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", name))
	require.NoError(t, err)

	schema, err := jsonschema.NewCompiler().Compile("file://" + schemaPath)
	require.NoError(t, err)
	return schema
}

// newTutorApp wires the real services over an in-memory store, with reply standing in
// for the model.
func newTutorApp(t *testing.T, reply string) *fiber.App {
	t.Helper()
	logger := zerolog.Nop()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect("sqlite", fmt.Sprintf("file:contract_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	lessons := repository.NewLessonRepository(db)
	questions := repository.NewQuestionRepository(db)

	ctx := context.Background()
	lesson := models.Lesson{Title: lessonTitle, Content: "The bells rang all through the night.", GradeLevel: 4}
	require.NoError(t, lessons.Create(ctx, &lesson))
	require.NoError(t, questions.CreateBatch(ctx, []models.Question{
		{LessonID: lesson.ID, QuestionText: "Why did the bells ring?", CorrectAnswer: "It was Christmas.", Position: 0},
		{LessonID: lesson.ID, QuestionText: "Who heard them?", CorrectAnswer: "The villagers.", Position: 1},
	}))

	model := ai.InvokerFunc(func(context.Context, string) (string, error) { return reply, nil })
	pool := worker.NewPool(model, 2, 0, logger)

	h := handler.NewTutorHandler(
		service.NewQuestionGenerationService(lessons, questions, pool, events.Nop{}, logger),
		service.NewFeedbackService(lessons, questions, pool, events.Nop{}, logger),
		service.NewSubmissionService(logger),
		validator.New(),
		logger,
	)

	app := fiber.New()
	h.Register(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) interface{} {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var payload interface{}
	require.NoError(t, json.Unmarshal(data, &payload))
	return payload
}

func TestFeedbackContract(t *testing.T) {
	schema := compileSchema(t, "feedback.schema.json")

	cases := map[string]string{
		"graded":      "```json\n[{\"score\": 4, \"feedback\": \"Good.\"}, {\"score\": 5, \"feedback\": \"Excellent.\"}]\n```",
		"fallback":    `[{"score": 9, "feedback": "Too generous."}]`,
		"unparseable": "I am unable to grade these answers.",
	}

	body := `{"lesson_title":"` + lessonTitle + `","qna":{"Why did the bells ring?":"Because it was Christmas.","Who heard them?":"Everyone."}}`
	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			app := newTutorApp(t, reply)
			payload := postJSON(t, app, "/feedback", body)
			require.NoError(t, schema.Validate(payload))
		})
	}
}

func TestGenerateQuestionsContract(t *testing.T) {
	schema := compileSchema(t, "generated_questions.schema.json")

	reply := "Here you go:\n{\"Q3\": \"A3\", \"Q1\": \"A1\", \"Q2\": \"A2\"}"
	app := newTutorApp(t, reply)

	payload := postJSON(t, app, "/generate-questions", `{"lesson_title":"`+lessonTitle+`"}`)
	require.NoError(t, schema.Validate(payload))
}

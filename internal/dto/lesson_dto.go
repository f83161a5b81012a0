package dto

import "github.com/noah-isme/tutor-api/internal/models"

// LessonSummary is the catalogue view of a lesson.
type LessonSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	GradeLevel int    `json:"grade_level"`
}

// LessonDetail includes the lesson text.
type LessonDetail struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	GradeLevel int    `json:"grade_level"`
}

// LessonListRequest filters the catalogue. A zero grade lists every lesson.
type LessonListRequest struct {
	Grade int `query:"grade" validate:"gte=0,lte=12"`
}

// LessonQuestion is a stored question as shown to students. ID is its 1-based position
// within the lesson, not the database identifier.
type LessonQuestion struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Type     string `json:"type"`
}

// LessonQuestionsResponse lists a lesson's stored questions.
type LessonQuestionsResponse struct {
	Lesson    LessonSummary    `json:"lesson"`
	Questions []LessonQuestion `json:"questions"`
}

// NewLessonSummary maps a lesson model to its catalogue view.
func NewLessonSummary(lesson models.Lesson) LessonSummary {
	return LessonSummary{
		ID:         lesson.ID,
		Title:      lesson.Title,
		GradeLevel: lesson.GradeLevel,
	}
}

// NewLessonDetail maps a lesson model to its detail view.
func NewLessonDetail(lesson models.Lesson) LessonDetail {
	return LessonDetail{
		ID:         lesson.ID,
		Title:      lesson.Title,
		Content:    lesson.Content,
		GradeLevel: lesson.GradeLevel,
	}
}

// DisplayQuestionType maps stored kinds onto the two labels the front-end renders.
func DisplayQuestionType(questionType string) string {
	if questionType == models.QuestionTypeShortAnswer {
		return "short"
	}
	return "essay"
}

package dto

import "github.com/noah-isme/tutor-api/internal/qna"

// GenerateQuestionsRequest asks for new questions about a lesson.
type GenerateQuestionsRequest struct {
	LessonTitle string `json:"lesson_title" validate:"required,max=200"`
}

// SubmitAnswersRequest carries a student's answers keyed by question.
type SubmitAnswersRequest struct {
	LessonTitle string    `json:"lesson_title" validate:"required,max=200"`
	Answers     qna.Pairs `json:"answers" validate:"required"`
}

// SubmitAnswersResponse echoes the received answers.
type SubmitAnswersResponse struct {
	Received qna.Pairs `json:"received"`
}

// FeedbackRequest carries the questions a student answered, keyed by question text.
type FeedbackRequest struct {
	LessonTitle string    `json:"lesson_title" validate:"required,max=200"`
	QnA         qna.Pairs `json:"qna" validate:"required"`
}

// FeedbackItem is the grade for a single answer on a 0-100 scale.
type FeedbackItem struct {
	QuestionID int    `json:"questionId"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Feedback   string `json:"feedback"`
	Score      int    `json:"score"`
}

// FeedbackResponse is the graded submission. Fallback is set when the model reply was
// unusable and placeholder scores were returned.
type FeedbackResponse struct {
	Feedback []FeedbackItem `json:"feedback"`
	Score    int            `json:"score"`
	Fallback bool           `json:"fallback"`
}

// CreateTestLessonResponse reports the development lesson.
type CreateTestLessonResponse struct {
	Message  string `json:"message"`
	LessonID string `json:"lesson_id"`
}

package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question kinds. Short answers expect a 30-50 word response; essays are longer and free-form.
const (
	QuestionTypeShortAnswer = "short_answer"
	QuestionTypeEssay       = "essay"
)

// Question is a stored prompt with its reference answer. Questions double as few-shot
// samples for generation and as grading references for feedback.
type Question struct {
	ID            string         `gorm:"primaryKey;size:36"`
	LessonID      string         `gorm:"size:36;not null;index"`
	QuestionType  string         `gorm:"size:20;not null"`
	QuestionText  string         `gorm:"type:text;not null"`
	Options       datatypes.JSON `gorm:"column:options"`
	CorrectAnswer string         `gorm:"type:text"`
	Position      int            `gorm:"not null;default:0"`
}

// BeforeCreate assigns an identifier and normalises the question type.
func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(q.ID) == "" {
		q.ID = uuid.NewString()
	}
	q.QuestionType = NormalizeQuestionType(q.QuestionType)
	return nil
}

// NormalizeQuestionType maps free-form kinds onto the supported set, defaulting to short answer.
func NormalizeQuestionType(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case QuestionTypeEssay:
		return QuestionTypeEssay
	default:
		return QuestionTypeShortAnswer
	}
}

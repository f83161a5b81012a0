package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lesson is a reading passage students answer questions about.
type Lesson struct {
	ID         string     `gorm:"primaryKey;size:36"`
	Title      string     `gorm:"size:200;not null;uniqueIndex"`
	Content    string     `gorm:"type:text;not null"`
	GradeLevel int        `gorm:"not null;index"`
	Questions  []Question `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns an identifier and trims the title.
func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(l.ID) == "" {
		l.ID = uuid.NewString()
	}
	l.Title = strings.TrimSpace(l.Title)
	return nil
}

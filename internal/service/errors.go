package service

import "errors"

var (
	// ErrLessonNotFound indicates no lesson matches the requested id or title.
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrNoQuestionsGenerated indicates the model reply yielded no usable questions.
	ErrNoQuestionsGenerated = errors.New("no questions could be generated for this lesson")
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/tutor-api/internal/dto"
	"github.com/noah-isme/tutor-api/internal/qna"
)

// SubmissionService accepts a student's answers. Answers are acknowledged, not stored.
type SubmissionService interface {
	Submit(ctx context.Context, req dto.SubmitAnswersRequest) dto.SubmitAnswersResponse
}

type submissionService struct {
	logger zerolog.Logger
}

// NewSubmissionService constructs a submission service.
func NewSubmissionService(logger zerolog.Logger) SubmissionService {
	return &submissionService{
		logger: logger.With().Str("component", "submission_service").Logger(),
	}
}

func (s *submissionService) Submit(ctx context.Context, req dto.SubmitAnswersRequest) dto.SubmitAnswersResponse {
	received := req.Answers
	if received == nil {
		received = qna.Pairs{}
	}
	s.logger.Info().Str("lesson_title", req.LessonTitle).Int("answers", len(received)).Msg("answers received")
	return dto.SubmitAnswersResponse{Received: received}
}

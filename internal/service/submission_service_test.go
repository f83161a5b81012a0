package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutor-api/internal/dto"
	"github.com/noah-isme/tutor-api/internal/qna"
)

func TestSubmissionServiceEchoesAnswers(t *testing.T) {
	svc := NewSubmissionService(zerolog.Nop())
	answers := qna.Pairs{{Question: "Q2", Answer: "b"}, {Question: "Q1", Answer: "a"}}

	resp := svc.Submit(context.Background(), dto.SubmitAnswersRequest{LessonTitle: "Any", Answers: answers})
	require.Equal(t, answers, resp.Received)

	empty := svc.Submit(context.Background(), dto.SubmitAnswersRequest{LessonTitle: "Any"})
	require.NotNil(t, empty.Received)
	require.Empty(t, empty.Received)
}

func TestSanitizeModelText(t *testing.T) {
	require.Equal(t, "Why was Chinna upset?", sanitizeModelText("  <b>Why was Chinna upset?</b> "))
	require.Equal(t, "Shakespeare's plays & sonnets", sanitizeModelText("Shakespeare's plays & sonnets"))
	require.Equal(t, "", sanitizeModelText("<script>alert(1)</script>"))
}

func TestSanitizePairsDropsEmptyQuestions(t *testing.T) {
	out := sanitizePairs(qna.Pairs{
		{Question: "<p>One</p>", Answer: "first"},
		{Question: "<br/>", Answer: "dropped"},
		{Question: "One", Answer: "second"},
	})
	require.Equal(t, qna.Pairs{{Question: "One", Answer: "second"}}, out)
}

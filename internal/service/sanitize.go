package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/noah-isme/tutor-api/internal/qna"
)

// modelTextPolicy strips every tag from model-produced text.
var modelTextPolicy = bluemonday.StrictPolicy()

func sanitizeModelText(value string) string {
	return strings.TrimSpace(html.UnescapeString(modelTextPolicy.Sanitize(value)))
}

// sanitizePairs cleans generated pairs, dropping any whose question is empty afterwards.
// Questions that collapse onto an earlier one keep the earlier position.
func sanitizePairs(pairs qna.Pairs) qna.Pairs {
	out := make(qna.Pairs, 0, len(pairs))
	index := make(map[string]int, len(pairs))
	for _, pair := range pairs {
		question := sanitizeModelText(pair.Question)
		if question == "" {
			continue
		}
		answer := sanitizeModelText(pair.Answer)
		if pos, seen := index[question]; seen {
			out[pos].Answer = answer
			continue
		}
		index[question] = len(out)
		out = append(out, qna.Pair{Question: question, Answer: answer})
	}
	return out
}

// Package parser turns raw language-model output into validated tutor values. Model
// output is untrusted: every failure yields an empty result together with an error that
// callers log and otherwise treat as "nothing usable came back".
package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/noah-isme/tutor-api/internal/qna"
)

var (
	// ErrEmptyOutput indicates the model returned nothing but whitespace.
	ErrEmptyOutput = errors.New("model output is empty")
	// ErrNoPayload indicates the output holds no JSON value of the expected kind.
	ErrNoPayload = errors.New("model output holds no JSON payload")
)

const evaluationSchemaURL = "https://tutor-api.local/schemas/evaluation.json"

const evaluationSchemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["score", "feedback"],
    "properties": {
      "score": {"type": "integer", "minimum": 0, "maximum": 5},
      "feedback": {"type": "string"}
    }
  }
}`

var evaluationSchema = mustCompileSchema(evaluationSchemaURL, evaluationSchemaJSON)

// EvaluationResult is the model's grade for one student answer.
type EvaluationResult struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// ParseQuestionAnswers decodes a generation response: a JSON object mapping question text
// to answer text. Pairs come back in the order their keys appear in the model output.
// When the output holds several JSON objects the first one of the right shape is used.
func ParseQuestionAnswers(raw string) (qna.Pairs, error) {
	if strings.TrimSpace(raw) == "" {
		return qna.Pairs{}, ErrEmptyOutput
	}

	candidates := jsonCandidates(raw, "{")
	if len(candidates) == 0 {
		return qna.Pairs{}, fmt.Errorf("parse generated questions: %w", ErrNoPayload)
	}

	var firstErr error
	for _, payload := range candidates {
		pairs, err := qna.Decode([]byte(payload))
		if err == nil {
			return pairs, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	return qna.Pairs{}, fmt.Errorf("parse generated questions: %w", firstErr)
}

// ParseEvaluations decodes an evaluation response: a JSON array of {"score", "feedback"}
// objects. Validation is all-or-nothing; a single out-of-range, fractional or missing
// field rejects the whole batch. Integral floats such as 4.0 are accepted as 4. When the
// output holds several JSON arrays the first one that validates is used.
func ParseEvaluations(raw string) ([]EvaluationResult, error) {
	if strings.TrimSpace(raw) == "" {
		return []EvaluationResult{}, ErrEmptyOutput
	}

	candidates := jsonCandidates(raw, "[")
	if len(candidates) == 0 {
		return []EvaluationResult{}, fmt.Errorf("parse evaluations: %w", ErrNoPayload)
	}

	var firstErr error
	for _, payload := range candidates {
		results, err := decodeEvaluations(payload)
		if err == nil {
			return results, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	return []EvaluationResult{}, firstErr
}

func decodeEvaluations(payload string) ([]EvaluationResult, error) {
	doc, err := decodeDocument(payload)
	if err != nil {
		return nil, fmt.Errorf("parse evaluations: %w", err)
	}

	if err := evaluationSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate evaluations: %w", err)
	}

	var items []struct {
		Score    json.Number `json:"score"`
		Feedback string      `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("parse evaluations: %w", err)
	}

	results := make([]EvaluationResult, 0, len(items))
	for i, item := range items {
		score, err := item.Score.Float64()
		if err != nil {
			return nil, fmt.Errorf("evaluation %d: %w", i, err)
		}
		results = append(results, EvaluationResult{
			Score:    int(score),
			Feedback: item.Feedback,
		})
	}

	return results, nil
}

func decodeDocument(payload string) (interface{}, error) {
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after payload")
	}
	return doc, nil
}

func mustCompileSchema(url, source string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, strings.NewReader(source)); err != nil {
		panic(fmt.Sprintf("parser: load schema %s: %v", url, err))
	}
	return compiler.MustCompile(url)
}

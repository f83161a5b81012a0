// Package prompt renders the instructions sent to the language model.
package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/noah-isme/tutor-api/internal/qna"
)

// DefaultGradeLevel is used when a lesson carries no usable grade.
const DefaultGradeLevel = 4

// GeneratedQuestionCount is the number of new questions requested per generation.
const GeneratedQuestionCount = 5

const generationText = `
You are an expert tutor/ question generator. Given the following lesson text and some sample questions, generate {{.Count}} new short_answer questions that are similar to the examples provided. Ensure that their answer can be given in 30-50 words by a {{ordinal .GradeLevel}} grade level student. The level of the questions and answers should be such that a {{ordinal .GradeLevel}} grade level student living in rural India can answer it.

Give the output as a JSON object with questions as keys and answers as values.

Lesson content:
{{.LessonTitle}}

{{.LessonContent}}

Lesson sample questions:
{{lines .SampleQuestions}}

Answers to the sample questions:
{{lines .SampleAnswers}}
`

const evaluationText = `
You are an expert evaluator of student answers at the {{ordinal .GradeLevel}} grade level. The students come from rural Indian villages. Keep in mind that English is not their first language. Given the questions and a student's answers, assess the quality of the answers based on the following criteria:
    1. Relevance: Does the answer directly address the question?
    2. Completeness: Is the answer sufficiently detailed for a {{ordinal .GradeLevel}} grade response (30-50 words)?
    3. Clarity: Is the answer clearly written and easy to understand?
    4. Language Level: Is the language appropriate for a {{ordinal .GradeLevel}} grade student?

You have been provided with the sample answers to the questions as well. Evaluate the student's answers by comparing them with the sample answers.

You should provide positive constructive feedback. The feedback should be encouraging and peppy. Explain what is done well, what is incorrect (if there is anything), and what can be improved. You must assess the grammar and syntax along with the correctness of the response. Give your feedback in at most 100 words.

Provide your evaluation in this JSON format:
{
    "score": <marks out of 5>,
    "feedback": "<comment explaining the score (max 100 words)>"
}

Return a JSON array (list) of such objects, one for each student answer, in the same order as the questions.

Questions and sample answers:
{{range .Reference}}Q: {{.Question}}
A: {{.Answer}}
{{end}}
Student's answers:
{{range $i, $answer := .StudentAnswers}}Q: {{question $.Reference $i}}
Student Answer: {{$answer}}
{{end}}`

var funcs = template.FuncMap{
	"ordinal": ordinal,
	"lines": func(items []string) string {
		return strings.Join(items, "\n")
	},
	"question": func(pairs qna.Pairs, i int) string {
		if i < len(pairs) {
			return pairs[i].Question
		}
		return fmt.Sprintf("Question %d", i+1)
	},
}

var (
	generationTemplate = template.Must(template.New("generation").Funcs(funcs).Parse(generationText))
	evaluationTemplate = template.Must(template.New("evaluation").Funcs(funcs).Parse(evaluationText))
)

// GenerationInput carries a lesson and its stored sample questions. SampleQuestions and
// SampleAnswers are aligned by index; their lengths are not checked.
type GenerationInput struct {
	LessonTitle     string
	LessonContent   string
	GradeLevel      int
	SampleQuestions []string
	SampleAnswers   []string
}

// EvaluationInput carries reference pairs and the student's answers, aligned by index.
type EvaluationInput struct {
	GradeLevel     int
	Reference      qna.Pairs
	StudentAnswers []string
}

// BuildGenerationPrompt renders the question generation prompt.
func BuildGenerationPrompt(input GenerationInput) (string, error) {
	data := struct {
		GenerationInput
		Count int
	}{GenerationInput: input, Count: GeneratedQuestionCount}
	data.GradeLevel = gradeOrDefault(input.GradeLevel)

	var b strings.Builder
	if err := generationTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render generation prompt: %w", err)
	}
	return b.String(), nil
}

// BuildEvaluationPrompt renders the answer evaluation prompt.
func BuildEvaluationPrompt(input EvaluationInput) (string, error) {
	input.GradeLevel = gradeOrDefault(input.GradeLevel)

	var b strings.Builder
	if err := evaluationTemplate.Execute(&b, input); err != nil {
		return "", fmt.Errorf("render evaluation prompt: %w", err)
	}
	return b.String(), nil
}

func gradeOrDefault(grade int) int {
	if grade <= 0 {
		return DefaultGradeLevel
	}
	return grade
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

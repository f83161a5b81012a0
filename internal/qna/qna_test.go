package qna

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodePreservesSourceOrder(t *testing.T) {
	pairs, err := Decode([]byte(`{"Why was Chinna upset?": "He lost the money.", "Who helped him?": "Kamala.", "A question": "An answer"}`))
	require.NoError(t, err)
	require.Equal(t, []string{"Why was Chinna upset?", "Who helped him?", "A question"}, pairs.Questions())
	require.Equal(t, []string{"He lost the money.", "Kamala.", "An answer"}, pairs.Answers())
}

func TestDecodeDuplicateKeyKeepsFirstPositionLastValue(t *testing.T) {
	pairs, err := Decode([]byte(`{"q1": "first", "q2": "two", "q1": "last"}`))
	require.NoError(t, err)
	require.Equal(t, Pairs{{Question: "q1", Answer: "last"}, {Question: "q2", Answer: "two"}}, pairs)
}

func TestDecodeRejectsInvalidShapes(t *testing.T) {
	cases := map[string]string{
		"empty":          ``,
		"array":          `["a", "b"]`,
		"number value":   `{"q": 4}`,
		"nested value":   `{"q": {"a": "b"}}`,
		"null value":     `{"q": null}`,
		"trailing data":  `{"q": "a"} {"r": "b"}`,
		"unterminated":   `{"q": "a"`,
		"plain text":     `not json at all`,
		"string payload": `"question"`,
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			pairs, err := Decode([]byte(input))
			require.Error(t, err)
			require.Nil(t, pairs)
		})
	}
}

func TestDecodeEmptyObject(t *testing.T) {
	pairs, err := Decode([]byte(` { } `))
	require.NoError(t, err)
	require.Empty(t, pairs)
}

func TestPairsJSONKeepsOrderThroughStructs(t *testing.T) {
	var payload struct {
		LessonTitle string `json:"lesson_title"`
		Answers     Pairs  `json:"answers"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"lesson_title":"L","answers":{"z":"1","a":"2"}}`), &payload))
	require.Equal(t, []string{"z", "a"}, payload.Answers.Questions())

	encoded, err := json.Marshal(payload.Answers)
	require.NoError(t, err)
	require.JSONEq(t, `{"z":"1","a":"2"}`, string(encoded))
	require.Equal(t, `{"z":"1","a":"2"}`, string(encoded))

	empty, err := json.Marshal(Pairs{})
	require.NoError(t, err)
	require.Equal(t, `{}`, string(empty))

	require.Equal(t, map[string]string{"z": "1", "a": "2"}, payload.Answers.Map())
}

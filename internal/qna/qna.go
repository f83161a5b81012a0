// Package qna holds the question/answer value objects exchanged between the store, the
// prompt builder, the model output parser and the HTTP layer.
package qna

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotObject is returned when a payload is not a JSON object.
var ErrNotObject = errors.New("qna: payload is not a JSON object")

// Pair is a single question with its answer.
type Pair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Pairs is an ordered question→answer list. Its JSON form is an object whose keys are
// questions and whose values are answers. Decoding keeps the order in which keys appear
// in the source text; a repeated key keeps its first position and takes the last value.
type Pairs []Pair

// Questions returns the question texts in order.
func (p Pairs) Questions() []string {
	out := make([]string, len(p))
	for i, pair := range p {
		out[i] = pair.Question
	}
	return out
}

// Answers returns the answer texts in order.
func (p Pairs) Answers() []string {
	out := make([]string, len(p))
	for i, pair := range p {
		out[i] = pair.Answer
	}
	return out
}

// Map returns the pairs as an unordered map.
func (p Pairs) Map() map[string]string {
	out := make(map[string]string, len(p))
	for _, pair := range p {
		out[pair.Question] = pair.Answer
	}
	return out
}

// MarshalJSON encodes the pairs as a JSON object, preserving order.
func (p Pairs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pair := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(pair.Question)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(pair.Answer)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of string values, preserving key order.
func (p *Pairs) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

// Decode parses data as a JSON object of string values. Anything else (arrays, nested
// values, numbers, trailing content) is rejected.
func Decode(data []byte) (Pairs, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("qna: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	pairs := Pairs{}
	index := map[string]int{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("qna: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("qna: unexpected key token %v", keyTok)
		}

		valueTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("qna: %w", err)
		}
		value, ok := valueTok.(string)
		if !ok {
			return nil, fmt.Errorf("qna: value for %q is not a string", key)
		}

		if pos, seen := index[key]; seen {
			pairs[pos].Answer = value
			continue
		}
		index[key] = len(pairs)
		pairs = append(pairs, Pair{Question: key, Answer: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("qna: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("qna: unexpected data after object")
	}

	return pairs, nil
}

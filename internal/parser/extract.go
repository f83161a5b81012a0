package parser

import (
	"encoding/json"
	"strings"
)

// jsonCandidates isolates JSON payloads in raw model output. Code fences, bare fences and
// prose around a payload are dropped. It returns, in order, every top-level balanced span
// of raw that opens with one of openers and is valid JSON. Scanning skips string literals,
// so brackets quoted inside the payload do not end it. A bracket in surrounding prose such
// as "[5]" or "{see below}" is its own candidate and does not hide the payload after it.
func jsonCandidates(raw, openers string) []string {
	text := strings.TrimSpace(raw)

	var candidates []string
	for offset := 0; offset < len(text); {
		idx := strings.IndexAny(text[offset:], openers)
		if idx < 0 {
			break
		}
		start := offset + idx

		end := matchingClose(text, start)
		if end < 0 {
			offset = start + 1
			continue
		}

		span := text[start : end+1]
		if json.Valid([]byte(span)) {
			candidates = append(candidates, span)
		}
		offset = end + 1
	}

	return candidates
}

// matchingClose returns the index of the bracket closing text[start], or -1.
func matchingClose(text string, start int) int {
	stack := make([]byte, 0, 8)
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != ch {
				return -1
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i
			}
		}
	}

	return -1
}

package review

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"reqdojo/internal/session"
)

// ErrMalformedPayload means the evaluation text held no parseable JSON, even
// after fenced-block extraction.
var ErrMalformedPayload = errors.New("review: malformed evaluation payload")

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// Payload is the structured evaluation the completion service returns.
type Payload struct {
	Scores      map[string]int    `json:"scores"`
	Feedback    map[string]string `json:"feedback"`
	Suggestions []string          `json:"suggestions"`
	Overall     string            `json:"overall"`
}

// ParsePayload parses raw evaluation text. It tries the whole text as JSON
// first, then falls back to extracting a fenced JSON block from free text.
// Pure: no transport involved, so the two-stage parse is testable on its own.
func ParsePayload(raw []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err == nil {
		return p, nil
	}
	m := fencedJSON.FindSubmatch(raw)
	if m == nil {
		return Payload{}, ErrMalformedPayload
	}
	if err := json.Unmarshal(m[1], &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return p, nil
}

// Normalize converts a parsed payload into a ReviewResult with every score
// clamped to an integer in [1,100]. Absent axes resolve to the lower bound.
func Normalize(p Payload) session.ReviewResult {
	feedback := p.Feedback
	if feedback == nil {
		feedback = map[string]string{}
	}
	suggestions := p.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	return session.ReviewResult{
		Scores: session.Scores{
			Insight:         clamp(p.Scores["insight"]),
			Logic:           clamp(p.Scores["logic"]),
			AIFirst:         clamp(p.Scores["aiFirst"]),
			Professionalism: clamp(p.Scores["professionalism"]),
			Feasibility:     clamp(p.Scores["feasibility"]),
		},
		Feedback:    feedback,
		Suggestions: suggestions,
		Overall:     p.Overall,
	}
}

func clamp(v int) int {
	if v < 1 {
		return 1
	}
	if v > 100 {
		return 100
	}
	return v
}

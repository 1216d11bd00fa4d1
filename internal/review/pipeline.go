// Package review turns a finished session into a five-axis evaluation.
// Unlike the dialogue path, a failure here is fatal to the attempt: a wrong
// grade is worse than a visible error, so the pipeline never fabricates
// scores outside an explicitly requested mock.
package review

import (
	"context"
	"errors"
	"fmt"

	"reqdojo/internal/completion"
	"reqdojo/internal/session"
)

const (
	reviewTemperature = 0.3
	reviewMaxTokens   = 2000
)

// ErrReviewUnavailable wraps any transport or parse failure of an evaluation
// attempt. The caller decides whether to retry or to downgrade to Mock.
var ErrReviewUnavailable = errors.New("review: evaluation unavailable")

// Result pairs the normalized review with upstream usage accounting.
type Result struct {
	Review session.ReviewResult
	Usage  *completion.Usage
}

// Pipeline requests and validates structured evaluations.
type Pipeline struct {
	client completion.Client
}

func New(client completion.Client) *Pipeline {
	return &Pipeline{client: client}
}

// Evaluate serializes the session's artifacts into one evaluation prompt,
// invokes the completion service, and parses the structured payload. Both a
// transport failure and a double parse failure surface as
// ErrReviewUnavailable; partial scores are never returned.
func (p *Pipeline) Evaluate(ctx context.Context, sess *session.Session) (Result, error) {
	prompt := buildPrompt(sess)

	resp, err := p.client.Complete(ctx, completion.Request{
		Messages:    []completion.Message{{Role: completion.RoleUser, Content: prompt}},
		Temperature: reviewTemperature,
		MaxTokens:   reviewMaxTokens,
		JSONOnly:    true,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrReviewUnavailable, err)
	}

	payload, err := ParsePayload([]byte(resp.Content))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrReviewUnavailable, err)
	}
	return Result{Review: Normalize(payload), Usage: resp.Usage}, nil
}

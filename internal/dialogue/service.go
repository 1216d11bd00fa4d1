// Package dialogue orchestrates one chat exchange between the trainee and
// the simulated stakeholder.
package dialogue

import (
	"context"
	"errors"
	"strings"

	"reqdojo/internal/completion"
	"reqdojo/internal/persona"
	"reqdojo/internal/session"
)

// Chat call parameters matching the upstream contract.
const (
	chatTemperature = 0.7
	chatTopP        = 0.9
	chatMaxTokens   = 500
)

// ErrEmptyMessage rejects empty or whitespace-only input. Nothing is mutated.
var ErrEmptyMessage = errors.New("dialogue: message is empty")

// Outcome is the terminal state of one turn submission.
type Outcome int

const (
	// Succeeded: the completion service produced the reply.
	Succeeded Outcome = iota
	// FailedRecovered: the completion service failed and a canned fallback
	// reply was substituted. Non-fatal; the notice explains why.
	FailedRecovered
)

// TurnResult is what one SubmitTurn produces. On FailedRecovered, Notice
// carries the upstream failure as a non-blocking advisory for display.
type TurnResult struct {
	Reply   session.Turn
	Outcome Outcome
	Notice  string
	Usage   *completion.Usage
}

// Service drives the interview turn by turn.
type Service struct {
	client   completion.Client
	fallback *fallbackReplies
}

func New(client completion.Client) *Service {
	return &Service{client: client, fallback: newFallbackReplies()}
}

// BuildMessages assembles the ordered message sequence for one exchange:
// system instruction, prior turns in log order, then the new user message.
// round is taken from the history length, so derivation stays stateless.
func BuildMessages(industry, tier string, history []session.Turn, userText string) []completion.Message {
	instruction := persona.Instruction(industry, tier, len(history))
	messages := make([]completion.Message, 0, len(history)+2)
	messages = append(messages, completion.Message{Role: completion.RoleSystem, Content: instruction})
	for _, t := range history {
		role := completion.RoleAssistant
		if t.Role == session.RoleUser {
			role = completion.RoleUser
		}
		messages = append(messages, completion.Message{Role: role, Content: t.Content})
	}
	return append(messages, completion.Message{Role: completion.RoleUser, Content: userText})
}

// NewChatRequest wraps a message sequence with the chat call parameters.
func NewChatRequest(messages []completion.Message) completion.Request {
	return completion.Request{
		Messages:    messages,
		Temperature: chatTemperature,
		TopP:        chatTopP,
		MaxTokens:   chatMaxTokens,
	}
}

// SubmitTurn appends the user's message, asks the completion service for the
// stakeholder's reply, and appends it. An upstream failure never fails the
// caller: a canned reply keyed by persona tier is appended instead and the
// failure reason is surfaced as an advisory.
func (s *Service) SubmitTurn(ctx context.Context, sess *session.Session, userText string) (TurnResult, error) {
	userText = strings.TrimSpace(userText)
	if userText == "" {
		return TurnResult{}, ErrEmptyMessage
	}

	messages := BuildMessages(sess.Industry, sess.PersonaTier, sess.Conversation.Turns(), userText)
	sess.Conversation.Append(session.RoleUser, userText)

	resp, err := s.client.Complete(ctx, NewChatRequest(messages))
	if err != nil {
		reply := sess.Conversation.Append(session.RoleStakeholder, s.fallback.pick(sess.PersonaTier))
		return TurnResult{
			Reply:   reply,
			Outcome: FailedRecovered,
			Notice:  "stakeholder simulation is temporarily offline: " + err.Error(),
		}, nil
	}

	reply := sess.Conversation.Append(session.RoleStakeholder, strings.TrimSpace(resp.Content))
	return TurnResult{Reply: reply, Outcome: Succeeded, Usage: resp.Usage}, nil
}

// Opening returns the stakeholder's scripted first message for a session that
// has just entered the chat phase.
func Opening(sess *session.Session) string {
	return "Oh hey, it has been such a hectic week... anyway, there is something I wanted to run by you. " +
		sess.TaskBackground + " Any thoughts on what we could do?"
}

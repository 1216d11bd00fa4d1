package dialogue

import (
	"context"
	"errors"
	"strings"
	"testing"

	"reqdojo/internal/completion"
	"reqdojo/internal/persona"
	"reqdojo/internal/session"
)

type stubClient struct {
	reply   string
	err     error
	lastReq completion.Request
}

func (s *stubClient) Name() string { return "stub" }
func (s *stubClient) Close() error { return nil }
func (s *stubClient) Complete(ctx context.Context, req completion.Request) (completion.Response, error) {
	s.lastReq = req
	if s.err != nil {
		return completion.Response{}, s.err
	}
	return completion.Response{Content: s.reply}, nil
}

func chatSession(t *testing.T, tier string) *session.Session {
	t.Helper()
	s := session.New("s1")
	if err := s.SetIndustry(session.IndustryFinance); err != nil {
		t.Fatalf("SetIndustry() error = %v", err)
	}
	if err := s.SetPersonaTier(tier); err != nil {
		t.Fatalf("SetPersonaTier() error = %v", err)
	}
	if err := s.Transition(session.PhaseChat); err != nil {
		t.Fatalf("Transition(chat) error = %v", err)
	}
	return s
}

func TestSubmitTurnRejectsEmptyMessage(t *testing.T) {
	stub := &stubClient{reply: "ok"}
	svc := New(stub)
	sess := chatSession(t, persona.TierBeginner)
	sess.Conversation.Append(session.RoleStakeholder, "opening")
	before := sess.Conversation.Len()

	for _, msg := range []string{"", "   ", "\n\t"} {
		if _, err := svc.SubmitTurn(context.Background(), sess, msg); !errors.Is(err, ErrEmptyMessage) {
			t.Fatalf("SubmitTurn(%q) error = %v, want ErrEmptyMessage", msg, err)
		}
	}
	if sess.Conversation.Len() != before {
		t.Fatalf("conversation length changed on rejected input: %d -> %d", before, sess.Conversation.Len())
	}
}

func TestSubmitTurnAppendsBothTurns(t *testing.T) {
	stub := &stubClient{reply: "the process has three steps"}
	svc := New(stub)
	sess := chatSession(t, persona.TierBeginner)

	result, err := svc.SubmitTurn(context.Background(), sess, "what is the exact process?")
	if err != nil {
		t.Fatalf("SubmitTurn() error = %v", err)
	}
	if result.Outcome != Succeeded {
		t.Fatalf("Outcome = %v, want Succeeded", result.Outcome)
	}
	if result.Reply.Role != session.RoleStakeholder || result.Reply.Content != "the process has three steps" {
		t.Fatalf("Reply = %+v", result.Reply)
	}

	turns := sess.Conversation.Turns()
	if len(turns) != 2 {
		t.Fatalf("len(turns) = %d, want 2", len(turns))
	}
	if turns[0].Role != session.RoleUser || turns[1].Role != session.RoleStakeholder {
		t.Fatalf("turn roles = %s, %s", turns[0].Role, turns[1].Role)
	}
}

func TestSubmitTurnMessageOrdering(t *testing.T) {
	stub := &stubClient{reply: "sure"}
	svc := New(stub)
	sess := chatSession(t, persona.TierRealistic)
	sess.Conversation.Append(session.RoleStakeholder, "opening complaint")
	sess.Conversation.Append(session.RoleUser, "first question")
	sess.Conversation.Append(session.RoleStakeholder, "vague answer")

	if _, err := svc.SubmitTurn(context.Background(), sess, "second question"); err != nil {
		t.Fatalf("SubmitTurn() error = %v", err)
	}

	msgs := stub.lastReq.Messages
	if len(msgs) != 5 {
		t.Fatalf("len(messages) = %d, want 5", len(msgs))
	}
	if msgs[0].Role != completion.RoleSystem {
		t.Fatalf("messages[0].Role = %s, want system", msgs[0].Role)
	}
	if !strings.Contains(msgs[0].Content, "exactly 2 core pain points") {
		t.Fatalf("system instruction does not match realistic tier:\n%s", msgs[0].Content)
	}
	wantRoles := []string{completion.RoleSystem, completion.RoleAssistant, completion.RoleUser, completion.RoleAssistant, completion.RoleUser}
	for i, want := range wantRoles {
		if msgs[i].Role != want {
			t.Fatalf("messages[%d].Role = %s, want %s", i, msgs[i].Role, want)
		}
	}
	if msgs[4].Content != "second question" {
		t.Fatalf("last message = %q", msgs[4].Content)
	}
	if stub.lastReq.Temperature != 0.7 || stub.lastReq.MaxTokens != 500 {
		t.Fatalf("chat params = temp %v, max %d", stub.lastReq.Temperature, stub.lastReq.MaxTokens)
	}
}

func TestSubmitTurnFallsBackOnTransportFailure(t *testing.T) {
	stub := &stubClient{err: errors.New("connection refused")}
	svc := New(stub)
	sess := chatSession(t, persona.TierRealistic)

	result, err := svc.SubmitTurn(context.Background(), sess, "hello?")
	if err != nil {
		t.Fatalf("SubmitTurn() error = %v, want recovered", err)
	}
	if result.Outcome != FailedRecovered {
		t.Fatalf("Outcome = %v, want FailedRecovered", result.Outcome)
	}
	if !strings.Contains(result.Notice, "connection refused") {
		t.Fatalf("Notice = %q, want the failure reason", result.Notice)
	}
	if result.Reply.Role != session.RoleStakeholder || result.Reply.Content == "" {
		t.Fatalf("fallback reply = %+v", result.Reply)
	}

	found := false
	for _, canned := range realisticFallbacks {
		if result.Reply.Content == canned {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("fallback reply %q not drawn from the realistic canned set", result.Reply.Content)
	}
	if sess.Conversation.Len() != 2 {
		t.Fatalf("Len() = %d, want user turn + fallback turn", sess.Conversation.Len())
	}
}

func TestOpeningMentionsTaskBackground(t *testing.T) {
	sess := chatSession(t, persona.TierRealistic)
	opening := Opening(sess)
	if !strings.Contains(opening, sess.TaskBackground) {
		t.Fatalf("Opening() = %q, does not mention the task background", opening)
	}
}

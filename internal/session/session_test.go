package session

import (
	"errors"
	"reflect"
	"testing"
)

func TestTransitionForwardOrder(t *testing.T) {
	s := New("s1")
	order := []Phase{PhaseChat, PhaseDocumenting, PhaseDesign, PhaseReview}
	for _, next := range order {
		if err := s.Transition(next); err != nil {
			t.Fatalf("Transition(%s) error = %v", next, err)
		}
		if s.Phase != next {
			t.Fatalf("Phase = %s, want %s", s.Phase, next)
		}
	}
}

func TestTransitionRejectsSkipsAndBackwards(t *testing.T) {
	cases := []struct {
		name   string
		from   Phase
		target Phase
	}{
		{"skip ahead", PhaseInit, PhaseDocumenting},
		{"skip to review", PhaseChat, PhaseReview},
		{"backwards", PhaseDesign, PhaseChat},
		{"self", PhaseChat, PhaseChat},
		{"past review", PhaseReview, PhaseReview + 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := New("s1")
			for p := PhaseInit + 1; p <= tc.from; p++ {
				if err := s.Transition(p); err != nil {
					t.Fatalf("setup Transition(%s) error = %v", p, err)
				}
			}
			before := *s
			beforeTurns := s.Conversation.Turns()

			err := s.Transition(tc.target)
			if !errors.Is(err, ErrIllegalTransition) {
				t.Fatalf("Transition(%s) error = %v, want ErrIllegalTransition", tc.target, err)
			}
			if s.Phase != before.Phase || s.Industry != before.Industry || s.TaskBackground != before.TaskBackground {
				t.Fatalf("session mutated by rejected transition")
			}
			if !reflect.DeepEqual(s.Conversation.Turns(), beforeTurns) {
				t.Fatalf("conversation mutated by rejected transition")
			}
		})
	}
}

func TestTaskBackgroundFixedOnLeavingInit(t *testing.T) {
	s := New("s1")
	if err := s.SetIndustry(IndustryFinance); err != nil {
		t.Fatalf("SetIndustry() error = %v", err)
	}
	if s.TaskBackground != "" {
		t.Fatalf("TaskBackground set before leaving INIT")
	}
	if err := s.Transition(PhaseChat); err != nil {
		t.Fatalf("Transition(chat) error = %v", err)
	}
	want := TaskBackground(IndustryFinance)
	if s.TaskBackground != want {
		t.Fatalf("TaskBackground = %q, want %q", s.TaskBackground, want)
	}
}

func TestSettersAreGatedByPhase(t *testing.T) {
	s := New("s1")
	if err := s.SetDocument(Document{BusinessGoals: "g"}); !errors.Is(err, ErrIllegalMutation) {
		t.Fatalf("SetDocument in INIT error = %v, want ErrIllegalMutation", err)
	}
	if err := s.SetDesign("d", "ai"); !errors.Is(err, ErrIllegalMutation) {
		t.Fatalf("SetDesign in INIT error = %v, want ErrIllegalMutation", err)
	}
	if err := s.SetReview(ReviewResult{}); !errors.Is(err, ErrIllegalMutation) {
		t.Fatalf("SetReview in INIT error = %v, want ErrIllegalMutation", err)
	}

	if err := s.SetIndustry(IndustryEcommerce); err != nil {
		t.Fatalf("SetIndustry() error = %v", err)
	}
	if err := s.SetPersonaTier("realistic"); err != nil {
		t.Fatalf("SetPersonaTier() error = %v", err)
	}
	if err := s.Transition(PhaseChat); err != nil {
		t.Fatalf("Transition(chat) error = %v", err)
	}

	// Selections are frozen once the interview starts.
	if err := s.SetIndustry(IndustryFinance); !errors.Is(err, ErrIllegalMutation) {
		t.Fatalf("SetIndustry in CHAT error = %v, want ErrIllegalMutation", err)
	}
	if err := s.SetPersonaTier("beginner"); !errors.Is(err, ErrIllegalMutation) {
		t.Fatalf("SetPersonaTier in CHAT error = %v, want ErrIllegalMutation", err)
	}

	if err := s.Transition(PhaseDocumenting); err != nil {
		t.Fatalf("Transition(documenting) error = %v", err)
	}
	if err := s.SetDocument(Document{BusinessGoals: "goal"}); err != nil {
		t.Fatalf("SetDocument() error = %v", err)
	}
	if err := s.Transition(PhaseDesign); err != nil {
		t.Fatalf("Transition(design) error = %v", err)
	}
	// Document is frozen once designing begins.
	if err := s.SetDocument(Document{BusinessGoals: "late"}); !errors.Is(err, ErrIllegalMutation) {
		t.Fatalf("SetDocument in DESIGN error = %v, want ErrIllegalMutation", err)
	}
	if s.Document.BusinessGoals != "goal" {
		t.Fatalf("Document mutated by rejected setter")
	}
}

func TestResetRestoresInitDefaults(t *testing.T) {
	s := New("s1")
	_ = s.SetIndustry(IndustryHealthcare)
	_ = s.SetPersonaTier("beginner")
	_ = s.Transition(PhaseChat)
	s.Conversation.Append(RoleUser, "hello")
	_ = s.Transition(PhaseDocumenting)
	_ = s.SetDocument(Document{BusinessGoals: "g", PainPoints: []string{"p"}})
	_ = s.Transition(PhaseDesign)
	_ = s.SetDesign("design", "ai plan")
	_ = s.Transition(PhaseReview)
	_ = s.SetReview(ReviewResult{Overall: "fine"})

	if err := s.Transition(PhaseInit); err != nil {
		t.Fatalf("Transition(init) error = %v", err)
	}

	if s.Phase != PhaseInit {
		t.Fatalf("Phase = %s, want init", s.Phase)
	}
	if s.Industry != "" || s.PersonaTier != "" || s.TaskBackground != "" {
		t.Fatalf("selections not cleared: %q %q %q", s.Industry, s.PersonaTier, s.TaskBackground)
	}
	if s.Conversation.Len() != 0 {
		t.Fatalf("Conversation.Len() = %d, want 0", s.Conversation.Len())
	}
	if !reflect.DeepEqual(s.Document, Document{}) {
		t.Fatalf("Document not cleared: %+v", s.Document)
	}
	if s.DesignSolution != "" || s.AIPlan != "" {
		t.Fatalf("design artifacts not cleared")
	}
	if s.Review != nil {
		t.Fatalf("Review not cleared")
	}
}

func TestParsePhaseRoundTrip(t *testing.T) {
	for p := PhaseInit; p <= PhaseReview; p++ {
		got, err := ParsePhase(p.String())
		if err != nil {
			t.Fatalf("ParsePhase(%q) error = %v", p.String(), err)
		}
		if got != p {
			t.Fatalf("ParsePhase(%q) = %s, want %s", p.String(), got, p)
		}
	}
	if _, err := ParsePhase("nonsense"); err == nil {
		t.Fatalf("ParsePhase(nonsense) error = nil, want error")
	}
}

func TestTaskBackgroundUnknownIndustry(t *testing.T) {
	if bg := TaskBackground("aviation"); bg == "" {
		t.Fatalf("TaskBackground(unknown) = empty, want generic seed")
	}
	if ValidIndustry("aviation") {
		t.Fatalf("ValidIndustry(aviation) = true, want false")
	}
	if !ValidIndustry(IndustrySports) {
		t.Fatalf("ValidIndustry(sports) = false, want true")
	}
}

package session

import (
	"errors"
	"fmt"
	"strings"
)

// Phase is the stage of a training session. Phases advance strictly forward;
// the only way back is a full reset to PhaseInit.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseChat
	PhaseDocumenting
	PhaseDesign
	PhaseReview
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseChat:
		return "chat"
	case PhaseDocumenting:
		return "documenting"
	case PhaseDesign:
		return "design"
	case PhaseReview:
		return "review"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ParsePhase maps the wire name back to a Phase.
func ParsePhase(s string) (Phase, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "init":
		return PhaseInit, nil
	case "chat":
		return PhaseChat, nil
	case "documenting":
		return PhaseDocumenting, nil
	case "design":
		return PhaseDesign, nil
	case "review":
		return PhaseReview, nil
	default:
		return PhaseInit, fmt.Errorf("session: unknown phase %q", s)
	}
}

var (
	ErrIllegalTransition = errors.New("session: illegal phase transition")
	ErrIllegalMutation   = errors.New("session: field is frozen in current phase")
)

// Document is the requirement document authored during the documenting phase.
type Document struct {
	BusinessGoals string   `json:"businessGoals"`
	PainPoints    []string `json:"painPoints"`
	CoreFeatures  []string `json:"coreFeatures"`
}

// ReviewResult is the normalized five-axis evaluation. All five score keys
// are always present and within [1,100] once a result exists.
type ReviewResult struct {
	Scores      Scores            `json:"scores"`
	Feedback    map[string]string `json:"feedback"`
	Suggestions []string          `json:"suggestions"`
	Overall     string            `json:"overall"`
}

type Scores struct {
	Insight         int `json:"insight"`
	Logic           int `json:"logic"`
	AIFirst         int `json:"aiFirst"`
	Professionalism int `json:"professionalism"`
	Feasibility     int `json:"feasibility"`
}

// Session holds the full state of one requirement-gathering exercise.
// It is a plain value owned by the caller; components take it by pointer and
// mutate it through the phase-gated setters below.
type Session struct {
	ID             string
	Phase          Phase
	Industry       string
	PersonaTier    string
	TaskBackground string
	Conversation   Log
	Document       Document
	DesignSolution string
	AIPlan         string
	Review         *ReviewResult
}

// New returns a session at its INIT-time defaults.
func New(id string) *Session {
	return &Session{ID: strings.TrimSpace(id), Phase: PhaseInit}
}

// Transition advances to the next phase in the fixed order, or resets the
// whole session when target is PhaseInit. Anything else fails with
// ErrIllegalTransition and leaves the session untouched.
func (s *Session) Transition(target Phase) error {
	if target == PhaseInit {
		s.reset()
		return nil
	}
	if target != s.Phase+1 || target > PhaseReview {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s.Phase, target)
	}
	if s.Phase == PhaseInit {
		// taskBackground is fixed for the session the moment it leaves INIT.
		s.TaskBackground = TaskBackground(s.Industry)
	}
	s.Phase = target
	return nil
}

// reset clears every field back to its INIT-time default. The conversation
// log keeps its id counter so turn ids are never reused within the session
// value's lifetime.
func (s *Session) reset() {
	s.Phase = PhaseInit
	s.Industry = ""
	s.PersonaTier = ""
	s.TaskBackground = ""
	s.Conversation.clear()
	s.Document = Document{}
	s.DesignSolution = ""
	s.AIPlan = ""
	s.Review = nil
}

// SetIndustry records the industry selection. Only legal while in INIT;
// overwrites any prior selection.
func (s *Session) SetIndustry(industry string) error {
	if s.Phase != PhaseInit {
		return fmt.Errorf("%w: industry is settable only in %s", ErrIllegalMutation, PhaseInit)
	}
	s.Industry = strings.TrimSpace(industry)
	return nil
}

// SetPersonaTier records the persona difficulty selection. Only legal in INIT.
func (s *Session) SetPersonaTier(tier string) error {
	if s.Phase != PhaseInit {
		return fmt.Errorf("%w: persona tier is settable only in %s", ErrIllegalMutation, PhaseInit)
	}
	s.PersonaTier = strings.TrimSpace(tier)
	return nil
}

// SetDocument replaces the requirement document. Only legal while documenting;
// the document freezes when the session moves on.
func (s *Session) SetDocument(doc Document) error {
	if s.Phase != PhaseDocumenting {
		return fmt.Errorf("%w: document is settable only in %s", ErrIllegalMutation, PhaseDocumenting)
	}
	s.Document = doc
	return nil
}

// SetDesign records the design solution and the AI integration plan. Only
// legal during the design phase.
func (s *Session) SetDesign(solution, aiPlan string) error {
	if s.Phase != PhaseDesign {
		return fmt.Errorf("%w: design is settable only in %s", ErrIllegalMutation, PhaseDesign)
	}
	s.DesignSolution = solution
	s.AIPlan = aiPlan
	return nil
}

// SetReview stores the evaluation outcome. Only legal in the review phase.
func (s *Session) SetReview(r ReviewResult) error {
	if s.Phase != PhaseReview {
		return fmt.Errorf("%w: review is settable only in %s", ErrIllegalMutation, PhaseReview)
	}
	s.Review = &r
	return nil
}

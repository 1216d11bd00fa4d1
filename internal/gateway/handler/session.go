package handler

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strings"

	"reqdojo/internal/dialogue"
	"reqdojo/internal/persona"
	"reqdojo/internal/review"
	"reqdojo/internal/session"
)

// SessionHandler exposes the stateful training flow. The session id comes
// from the X-Session-Id header (or session_id query); absent ids share the
// default single-user session.
type SessionHandler struct {
	store    *session.Store
	dialogue *dialogue.Service
	reviews  *review.Pipeline
}

func NewSessionHandler(store *session.Store, d *dialogue.Service, p *review.Pipeline) *SessionHandler {
	return &SessionHandler{store: store, dialogue: d, reviews: p}
}

func (h *SessionHandler) lookup(r *http.Request) *session.Session {
	id := strings.TrimSpace(r.Header.Get("X-Session-Id"))
	if id == "" {
		id = strings.TrimSpace(r.URL.Query().Get("session_id"))
	}
	return h.store.Get(id)
}

type sessionSnapshot struct {
	ID             string                `json:"id"`
	Phase          string                `json:"phase"`
	Industry       string                `json:"industry,omitempty"`
	Persona        string                `json:"persona,omitempty"`
	TaskBackground string                `json:"taskBackground,omitempty"`
	Conversation   []session.Turn        `json:"conversation"`
	Document       session.Document      `json:"document"`
	DesignSolution string                `json:"designSolution,omitempty"`
	AIIntegration  string                `json:"aiIntegration,omitempty"`
	Review         *session.ReviewResult `json:"review,omitempty"`
}

func snapshot(s *session.Session) sessionSnapshot {
	return sessionSnapshot{
		ID:             s.ID,
		Phase:          s.Phase.String(),
		Industry:       s.Industry,
		Persona:        s.PersonaTier,
		TaskBackground: s.TaskBackground,
		Conversation:   s.Conversation.Turns(),
		Document:       s.Document,
		DesignSolution: s.DesignSolution,
		AIIntegration:  s.AIPlan,
		Review:         s.Review,
	}
}

func writeSession(w http.ResponseWriter, s *session.Session, extra map[string]any) {
	out := map[string]any{"success": true, "session": snapshot(s)}
	for k, v := range extra {
		out[k] = v
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	writeSession(w, h.lookup(r), nil)
}

// HandleReset clears every field back to the INIT defaults.
func (h *SessionHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	sess := h.lookup(r)
	if err := sess.Transition(session.PhaseInit); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeSession(w, sess, nil)
}

// HandleStart records the industry and persona selections and moves the
// session into the interview, seeding the stakeholder's opening message.
func (h *SessionHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Industry string `json:"industry"`
		Persona  string `json:"persona"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if !session.ValidIndustry(in.Industry) {
		writeError(w, http.StatusBadRequest, "unknown industry")
		return
	}
	if !persona.ValidTier(in.Persona) {
		writeError(w, http.StatusBadRequest, "unknown persona")
		return
	}

	sess := h.lookup(r)
	if err := sess.SetIndustry(in.Industry); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err := sess.SetPersonaTier(in.Persona); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err := sess.Transition(session.PhaseChat); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	sess.Conversation.Append(session.RoleStakeholder, dialogue.Opening(sess))
	writeSession(w, sess, nil)
}

func (h *SessionHandler) HandleTurn(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	sess := h.lookup(r)
	if sess.Phase != session.PhaseChat {
		writeError(w, http.StatusConflict, "session is not in the interview phase")
		return
	}
	result, err := h.dialogue.SubmitTurn(r.Context(), sess, in.Message)
	if err != nil {
		if errors.Is(err, dialogue.ErrEmptyMessage) {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	extra := map[string]any{"reply": result.Reply}
	if result.Outcome == dialogue.FailedRecovered {
		extra["notice"] = result.Notice
	}
	if result.Usage != nil {
		extra["usage"] = result.Usage
	}
	writeSession(w, sess, extra)
}

// HandleDocument advances the session out of the interview on first use and
// stores the requirement document. Repeated posts while documenting keep
// updating it; the document freezes when the design phase begins.
func (h *SessionHandler) HandleDocument(w http.ResponseWriter, r *http.Request) {
	var in session.Document
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	sess := h.lookup(r)
	if sess.Phase == session.PhaseChat {
		if err := sess.Transition(session.PhaseDocumenting); err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
	}
	if err := sess.SetDocument(in); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeSession(w, sess, nil)
}

func (h *SessionHandler) HandleDesign(w http.ResponseWriter, r *http.Request) {
	var in struct {
		DesignSolution string `json:"designSolution"`
		AIIntegration  string `json:"aiIntegration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	sess := h.lookup(r)
	if sess.Phase == session.PhaseDocumenting {
		if err := sess.Transition(session.PhaseDesign); err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
	}
	if err := sess.SetDesign(in.DesignSolution, in.AIIntegration); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeSession(w, sess, nil)
}

// HandleReview enters the review phase and runs the scoring pipeline. A
// failed evaluation blocks with 502; the caller may either retry or re-post
// with {"mock": true} to explicitly downgrade to a local mock evaluation.
func (h *SessionHandler) HandleReview(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Mock bool `json:"mock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	sess := h.lookup(r)
	if sess.Phase == session.PhaseDesign {
		if err := sess.Transition(session.PhaseReview); err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
	}
	if sess.Phase != session.PhaseReview {
		writeError(w, http.StatusConflict, "session is not ready for review")
		return
	}

	if in.Mock {
		mock := review.Mock(rand.New(rand.NewSource(rand.Int63())))
		if err := sess.SetReview(mock); err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeSession(w, sess, map[string]any{"mock": true})
		return
	}

	result, err := h.reviews.Evaluate(r.Context(), sess)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if err := sess.SetReview(result.Review); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	extra := map[string]any{}
	if result.Usage != nil {
		extra["usage"] = result.Usage
	}
	writeSession(w, sess, extra)
}

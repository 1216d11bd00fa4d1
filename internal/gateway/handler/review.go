package handler

import (
	"encoding/json"
	"net/http"

	"reqdojo/internal/review"
	"reqdojo/internal/session"
)

// ReviewHandler serves the stateless review contract: the caller ships the
// full transcript and artifacts in one request.
type ReviewHandler struct {
	pipeline *review.Pipeline
}

func NewReviewHandler(pipeline *review.Pipeline) *ReviewHandler {
	return &ReviewHandler{pipeline: pipeline}
}

type reviewRequest struct {
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	DocumentContent session.Document `json:"documentContent"`
	DesignSolution  string           `json:"designSolution"`
	AIIntegration   string           `json:"aiIntegration"`
}

func (h *ReviewHandler) HandleReview(w http.ResponseWriter, r *http.Request) {
	var in reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	// A scratch session carries the caller's artifacts through the pipeline.
	sess := session.New("")
	for _, m := range in.Messages {
		role := session.RoleStakeholder
		if m.Role == session.RoleUser {
			role = session.RoleUser
		}
		sess.Conversation.Append(role, m.Content)
	}
	sess.Document = in.DocumentContent
	sess.DesignSolution = in.DesignSolution
	sess.AIPlan = in.AIIntegration

	result, err := h.pipeline.Evaluate(r.Context(), sess)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	out := map[string]any{"success": true, "review": result.Review}
	if result.Usage != nil {
		out["usage"] = result.Usage
	}
	writeJSON(w, http.StatusOK, out)
}

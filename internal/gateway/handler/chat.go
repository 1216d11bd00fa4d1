package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"reqdojo/internal/completion"
	"reqdojo/internal/dialogue"
	"reqdojo/internal/session"
)

// ChatHandler serves the stateless dialogue-turn contract. The caller carries
// the conversation history; failures mirror the upstream status instead of
// falling back (the stateful session flow owns the fallback behavior).
type ChatHandler struct {
	client completion.Client
}

func NewChatHandler(client completion.Client) *ChatHandler {
	return &ChatHandler{client: client}
}

type chatRequest struct {
	Message             string `json:"message"`
	Persona             string `json:"persona"`
	Industry            string `json:"industry"`
	ConversationHistory []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"conversationHistory"`
}

func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var in chatRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if strings.TrimSpace(in.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	history := make([]session.Turn, 0, len(in.ConversationHistory))
	for _, m := range in.ConversationHistory {
		role := session.RoleStakeholder
		if m.Role == session.RoleUser {
			role = session.RoleUser
		}
		history = append(history, session.Turn{Role: role, Content: m.Content})
	}

	messages := dialogue.BuildMessages(in.Industry, in.Persona, history, in.Message)
	resp, err := h.client.Complete(r.Context(), dialogue.NewChatRequest(messages))
	if err != nil {
		writeError(w, upstreamStatus(err), err.Error())
		return
	}

	out := map[string]any{"success": true, "reply": resp.Content}
	if resp.Usage != nil {
		out["usage"] = resp.Usage
	}
	writeJSON(w, http.StatusOK, out)
}

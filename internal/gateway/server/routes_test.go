package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"reqdojo/internal/completion"
	"reqdojo/internal/dialogue"
	"reqdojo/internal/gateway/handler"
	"reqdojo/internal/review"
	"reqdojo/internal/session"
)

func newTestMux() http.Handler {
	client := completion.NewFakeClient()
	pipeline := review.New(client)
	return NewMux(
		handler.NewChatHandler(client),
		handler.NewReviewHandler(pipeline),
		handler.NewSessionHandler(session.NewStore(), dialogue.New(client), pipeline),
	)
}

func TestPreflightPermitsCrossOriginPost(t *testing.T) {
	mux := newTestMux()
	for _, path := range []string{"/api/chat", "/api/review"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		req.Header.Set("Origin", "https://dojo.example")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://dojo.example" {
			t.Fatalf("%s Allow-Origin = %q", path, got)
		}
		if got := w.Header().Get("Access-Control-Allow-Methods"); got == "" {
			t.Fatalf("%s preflight missing Allow-Methods", path)
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestMux()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d, want 200", w.Code)
	}
}

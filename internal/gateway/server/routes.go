package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"reqdojo/internal/gateway/handler"
	"reqdojo/internal/gateway/middleware"
)

func NewMux(chat *handler.ChatHandler, review *handler.ReviewHandler, sess *handler.SessionHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS)

	// Stateless contract endpoints.
	r.Post("/api/chat", chat.HandleChat)
	r.Post("/api/review", review.HandleReview)

	// Stateful session flow.
	r.Route("/api/session", func(r chi.Router) {
		r.Get("/", sess.HandleGet)
		r.Post("/reset", sess.HandleReset)
		r.Post("/start", sess.HandleStart)
		r.Post("/turn", sess.HandleTurn)
		r.Post("/document", sess.HandleDocument)
		r.Post("/design", sess.HandleDesign)
		r.Post("/review", sess.HandleReview)
	})

	return r
}

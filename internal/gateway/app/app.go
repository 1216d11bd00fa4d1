package app

import (
	"context"
	"fmt"

	"reqdojo/internal/completion"
	"reqdojo/internal/dialogue"
	"reqdojo/internal/gateway/config"
	"reqdojo/internal/gateway/handler"
	"reqdojo/internal/gateway/server"
	"reqdojo/internal/review"
	"reqdojo/internal/session"
)

type App struct {
	server *server.Server
	client completion.Client
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	client, err := completion.New(ctx, cfg.Completion)
	if err != nil {
		// A missing credential is a configuration error: fatal and
		// immediately reported, never retried.
		return nil, fmt.Errorf("failed to init completion client: %w", err)
	}
	client = completion.Chain(client, completion.WithLogging())

	store := session.NewStore()
	dialogueSvc := dialogue.New(client)
	reviewPipeline := review.New(client)

	chatHandler := handler.NewChatHandler(client)
	reviewHandler := handler.NewReviewHandler(reviewPipeline)
	sessionHandler := handler.NewSessionHandler(store, dialogueSvc, reviewPipeline)

	mux := server.NewMux(chatHandler, reviewHandler, sessionHandler)
	srv := server.New(cfg.Port, mux)

	return &App{server: srv, client: client}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	defer a.client.Close()
	return a.server.Shutdown(ctx)
}

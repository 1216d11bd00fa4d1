// Package completion wraps the external text-completion service behind a
// single request/response contract. Providers only implement the API call
// itself; cross-cutting concerns (logging) are layered on via Middleware.
package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Chat roles on the wire.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	// ErrMissingAPIKey is a configuration error: fatal, never retried.
	ErrMissingAPIKey = errors.New("completion: API key is not configured")
	// ErrEmptyResponse means the provider answered 2xx with no usable content.
	ErrEmptyResponse = errors.New("completion: empty response from provider")
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is one non-streaming completion call. JSONOnly asks the provider
// for a machine-parseable JSON payload.
type Request struct {
	Messages    []Message
	Temperature float32
	TopP        float32
	MaxTokens   int
	JSONOnly    bool
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type Response struct {
	Content string
	Usage   *Usage
}

// Client is the black-box completion service. One in-flight call at a time,
// request/response, no partial results.
type Client interface {
	Name() string
	Complete(ctx context.Context, req Request) (Response, error)
	Close() error
}

// PermanentError marks a failure that must not be retried by any layer.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) *PermanentError {
	return &PermanentError{Err: err}
}

// Provider names accepted by New.
const (
	ProviderOpenAICompat = "openai-compat"
	ProviderGemini       = "gemini"
	ProviderFake         = "fake"
)

// Config selects and parameterizes a provider.
type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

// New builds the configured provider. A missing credential for a real
// provider fails immediately with ErrMissingAPIKey.
func New(ctx context.Context, cfg Config) (Client, error) {
	switch strings.TrimSpace(cfg.Provider) {
	case "", ProviderOpenAICompat:
		return NewOpenAICompatClient(cfg.APIKey, cfg.BaseURL, cfg.Model)
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
	case ProviderFake:
		return NewFakeClient(), nil
	default:
		return nil, fmt.Errorf("completion: unknown provider %q", cfg.Provider)
	}
}

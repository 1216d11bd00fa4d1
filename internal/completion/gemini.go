package completion

import (
	"context"
	"fmt"
	"os"
	"strings"

	genai "google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiClient is a thin wrapper around the official genai client, offered as
// an alternative provider. It flattens the chat transcript into one prompt
// since the dialogue is single in-flight, request/response anyway.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("completion: init gemini client: %w", err)
	}
	if strings.TrimSpace(model) == "" {
		model = defaultGeminiModel
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }
func (g *GeminiClient) Close() error { return nil }

func (g *GeminiClient) Complete(ctx context.Context, req Request) (Response, error) {
	var sb strings.Builder
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			sb.WriteString("[SYSTEM]\n")
		case RoleAssistant:
			sb.WriteString("[ASSISTANT]\n")
		default:
			sb.WriteString("[USER]\n")
		}
		sb.WriteString(m.Content)
		sb.WriteString("\n\n")
	}

	cfg := &genai.GenerateContentConfig{Temperature: &req.Temperature}
	if req.JSONOnly {
		cfg.ResponseMIMEType = "application/json"
	}
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: sb.String()}}}},
		cfg,
	)
	if err != nil {
		return Response{}, fmt.Errorf("completion: gemini call failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Response{}, ErrEmptyResponse
	}
	return Response{Content: resp.Candidates[0].Content.Parts[0].Text}, nil
}

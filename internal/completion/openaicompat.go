package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/chat/completions"
	defaultModel   = "deepseek-v3.2"
)

// OpenAICompatClient calls any OpenAI-compatible chat completions endpoint.
// The default target is the DashScope compatible-mode DeepSeek deployment.
type OpenAICompatClient struct {
	http    *http.Client
	apiKey  string
	model   string
	baseURL string
}

// NewOpenAICompatClient creates the client. If apiKey is empty it falls back
// to the DEEPSEEK_API_KEY env var; if that is empty too, construction fails
// with ErrMissingAPIKey.
func NewOpenAICompatClient(apiKey, baseURL, model string) (*OpenAICompatClient, error) {
	if apiKey == "" {
		apiKey = os.Getenv("DEEPSEEK_API_KEY")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	return &OpenAICompatClient{
		http:    &http.Client{Timeout: 60 * time.Second},
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
	}, nil
}

func (c *OpenAICompatClient) Name() string { return "OpenAICompat:" + c.model }
func (c *OpenAICompatClient) Close() error { return nil }

type chatReq struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	Temperature    float32           `json:"temperature,omitempty"`
	TopP           float32           `json:"top_p,omitempty"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatResp struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *Usage `json:"usage"`
}

// StatusError carries the upstream HTTP status so the gateway can mirror it.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("completion: unexpected status %d: %s", e.StatusCode, e.Body)
}

func (c *OpenAICompatClient) Complete(ctx context.Context, req Request) (Response, error) {
	body := chatReq{
		Model:       c.model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONOnly {
		body.ResponseFormat = map[string]string{"type": "json_object"}
	}
	b, _ := json.Marshal(body)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(b))
	if err != nil {
		return Response{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("completion: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		const max = 2048
		if len(raw) > max {
			raw = raw[:max]
		}
		sErr := &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
		// Context length exhaustion is permanent; retrying cannot help.
		if resp.StatusCode == 400 && strings.Contains(string(raw), `"code":"context_length_exceeded"`) {
			return Response{}, NewPermanentError(sErr)
		}
		return Response{}, sErr
	}

	var out chatResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("completion: decode response: %w", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return Response{}, ErrEmptyResponse
	}
	return Response{Content: out.Choices[0].Message.Content, Usage: out.Usage}, nil
}

package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

const (
	anthropicBaseURL = "https://api.anthropic.com/v1/messages"
	anthropicModel   = "claude-3-5-haiku-latest"
	anthropicVersion = "2023-06-01"
	maxAnswerTokens  = 64
)

const systemPrompt = `You are an assistant that helps users prioritize their tasks based on the task description.

Analyze the task description and determine the appropriate priority for the task.

If the description contains keywords such as "urgent", "critical", "ASAP", or "important", then the priority should be "high".
If the description contains keywords such as "should", "eventually", or "when", then the priority should be "low".
Otherwise, the priority should be "medium".

Answer with JSON only, in the form {"priority": "low" | "medium" | "high"}.`

var (
	ErrMissingAPIKey      = errors.New("anthropic api key not set")
	ErrUnrecognizedAnswer = errors.New("unrecognized priority in model answer")
	ErrEmptyModelResponse = errors.New("empty model response")
)

// Anthropic asks the Messages API for a priority. Each call is a single attempt.
type Anthropic struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type AnthropicOption func(*Anthropic)

func WithBaseURL(url string) AnthropicOption {
	return func(a *Anthropic) { a.baseURL = url }
}

func WithModel(model string) AnthropicOption {
	return func(a *Anthropic) {
		if model != "" {
			a.model = model
		}
	}
}

func WithHTTPClient(client *http.Client) AnthropicOption {
	return func(a *Anthropic) { a.client = client }
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func NewAnthropic(apiKey string, opts ...AnthropicOption) *Anthropic {
	a := &Anthropic{
		apiKey:  apiKey,
		baseURL: anthropicBaseURL,
		model:   anthropicModel,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Anthropic) Suggest(ctx context.Context, description string) (domain.TaskPriority, error) {
	if a.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     a.model,
		MaxTokens: maxAnswerTokens,
		System:    systemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: "Task Description: " + description},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("anthropic request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic api error (%d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(apiResp.Content) == 0 {
		return "", ErrEmptyModelResponse
	}

	return parseAnswer(apiResp.Content[0].Text)
}

// parseAnswer accepts {"priority": "..."} (optionally fenced) or a bare priority word.
func parseAnswer(text string) (domain.TaskPriority, error) {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		if idx := strings.Index(cleaned, "\n"); idx >= 0 {
			cleaned = cleaned[idx+1:]
		}
		if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(cleaned)
	}

	var answer struct {
		Priority string `json:"priority"`
	}
	if err := json.Unmarshal([]byte(cleaned), &answer); err == nil {
		cleaned = answer.Priority
	}

	priority := domain.TaskPriority(strings.ToLower(strings.Trim(strings.TrimSpace(cleaned), `".`)))
	if !priority.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedAnswer, text)
	}
	return priority, nil
}

var _ ports.PrioritySuggester = (*Anthropic)(nil)

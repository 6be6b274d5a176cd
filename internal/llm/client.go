package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Completer is the narrow contract the pipeline collaborators consume: send a
// prompt, get a JSON document back, decode it into a typed schema.
type Completer interface {
	CompleteJSON(ctx context.Context, req Request, out any) error
}

// Request describes one chat completion call.
type Request struct {
	System      string
	User        string
	Temperature float64
}

// Client posts chat completions to an OpenAI-compatible endpoint and enforces
// JSON-object responses.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClient builds a completion client. A nil httpClient gets a default with
// a generous timeout, since model calls are slow.
func NewClient(baseURL, apiKey, model string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// CompleteJSON runs the completion and decodes the model's JSON reply into
// out. A reply that is not the requested schema surfaces as a decode error;
// callers treat that as a soft failure and fall back to defaults.
func (c *Client) CompleteJSON(ctx context.Context, req Request, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("llm: api key is not configured")
	}
	if c.model == "" {
		return fmt.Errorf("llm: model is not configured")
	}

	payload := chatRequest{
		Model:       c.model,
		Temperature: req.Temperature,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
	}
	payload.ResponseFormat.Type = "json_object"

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("llm: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("llm: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	// Credential material travels only in the Authorization header and is
	// never echoed in errors.
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("llm: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			return fmt.Errorf("llm: status %d", resp.StatusCode)
		}
		return fmt.Errorf("llm: status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return fmt.Errorf("llm: decode response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return fmt.Errorf("llm: response contains no choices")
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return fmt.Errorf("llm: response content is empty")
	}
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("llm: response is not the requested schema: %w", err)
	}
	return nil
}

var _ Completer = (*Client)(nil)

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Errors the serving layer maps onto distinct HTTP statuses. Capacity errors
// are surfaced immediately, never retried internally.
var (
	ErrNotConfigured = errors.New("llm: api key not configured")
	ErrRateLimited   = errors.New("llm: rate limit exceeded")
	ErrQuotaExceeded = errors.New("llm: usage limit reached")
)

// Client calls an OpenAI-compatible chat-completions gateway.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// SetTestTransport points the client at a test server.
func (c *Client) SetTestTransport(url string) {
	c.baseURL = url
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type response struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends a chat-completion request and returns the text of the first
// choice. The credential is checked before any network call is made.
func (c *Client) Complete(ctx context.Context, messages []Message, temperature float64) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(request{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return "", ErrQuotaExceeded
	case resp.StatusCode != http.StatusOK:
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("gateway error %d: %s", resp.StatusCode, errResp.Error.Message)
		}
		return "", fmt.Errorf("gateway error %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("empty response choices")
	}

	return apiResp.Choices[0].Message.Content, nil
}

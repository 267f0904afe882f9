// In file: internal/llm/openai_client.go
package llm

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
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// openAIRequest defines the top-level structure for a chat-completions call.
type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float32         `json:"temperature,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openAIResponse is the structure of a successful response from the API.
type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
}

// OpenAIClient talks to the OpenAI chat-completions API, or to any
// OpenAI-compatible server (llama.cpp, vLLM, Ollama, ...) via a custom base
// URL. The latter is how a locally hosted model slots into the pipeline.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Statically verify that OpenAIClient implements the Client interface.
var _ Client = (*OpenAIClient)(nil)

// NewOpenAIClient creates a configured client. baseURL may be empty to use
// the official endpoint; apiKey may be empty when the target is a local
// server that does not check it.
func NewOpenAIClient(apiKey, baseURL, model string) (*OpenAIClient, error) {
	if model == "" {
		return nil, errors.New("model name cannot be empty")
	}
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}, nil
}

// Generate performs a standard, blocking chat-completions request.
func (c *OpenAIClient) Generate(ctx context.Context, messages []Message) (string, error) {
	payload := openAIRequest{
		Model:     c.model,
		Messages:  make([]openAIMessage, 0, len(messages)),
		MaxTokens: defaultMaxTokens,
	}
	for _, msg := range messages {
		payload.Messages = append(payload.Messages, openAIMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to build chat request payload: %w", err)
	}

	respBody, err := c.doRequest(ctx, body)
	if err != nil {
		return "", err
	}

	var parsed openAIResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("no choices returned from chat API")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// doRequest performs the HTTP call with bounded retries on transient
// failures (network errors, 429, 5xx).
func (c *OpenAIClient) doRequest(ctx context.Context, body []byte) ([]byte, error) {
	var lastErr error
	delay := initialRetryDelay

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create chat request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("chat API call failed: %w", err)
			continue
		}
		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read chat API response: %w", err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return respBody, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("chat API returned retryable status %d: %s", resp.StatusCode, truncateForError(respBody))
			continue
		default:
			return nil, fmt.Errorf("chat API returned status %d: %s", resp.StatusCode, truncateForError(respBody))
		}
	}
	return nil, fmt.Errorf("chat API request failed after %d attempts: %w", maxRetries, lastErr)
}

func truncateForError(body []byte) string {
	const limit = 200
	s := string(body)
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}

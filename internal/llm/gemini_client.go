// In file: internal/llm/gemini_client.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient is the client for interacting with Google's Gemini models.
// Function calling goes through the same JSON-in-text protocol as every other
// provider here, so the SDK's native tool support is deliberately unused: the
// router owns call extraction.
type GeminiClient struct {
	model *genai.GenerativeModel
}

// Statically verify that GeminiClient implements the Client interface.
var _ Client = (*GeminiClient)(nil)

// NewGeminiClient configures the shared GenerativeModel up front. The system
// instruction is fixed for the process lifetime and must be set here: Generate
// runs on concurrent request goroutines and never writes to the model.
func NewGeminiClient(apiKey, modelID, systemPrompt string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel(modelID)
	model.SetMaxOutputTokens(defaultMaxTokens)
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}
	}
	return &GeminiClient{model: model}, nil
}

// Generate performs a standard, blocking request to the Gemini API.
func (c *GeminiClient) Generate(ctx context.Context, messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("no messages to send")
	}

	// The system instruction already lives on the model (set once at
	// construction), so a leading system message is simply dropped here.
	if messages[0].Role == RoleSystem {
		messages = messages[1:]
		if len(messages) == 0 {
			return "", errors.New("no user message to send")
		}
	}

	chat := c.model.StartChat()
	chat.History = toGeminiContentHistory(messages)

	last := messages[len(messages)-1]
	resp, err := chat.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	return parseGeminiResponse(resp)
}

// toGeminiContentHistory converts our message history to the SDK's format.
// The last message is the new prompt, so it is excluded from history.
func toGeminiContentHistory(messages []Message) []*genai.Content {
	var history []*genai.Content
	for _, msg := range messages[:len(messages)-1] {
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return history
}

func parseGeminiResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("no content returned from Gemini")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// In file: internal/llm/client.go

// Package llm holds the language-model collaborators of the voice assistant:
// the provider clients, the bounded conversation window, and the
// function-calling instruction prompt. The router treats the model as an
// opaque text-in/text-out dependency; everything here exists to produce that
// one raw output string per exchange.
package llm

import "context"

// Role represents the originator of a message in a conversation.
// Using a defined type and constants prevents typos and improves code clarity.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Client is the universal interface all model clients implement. The reply is
// the model's raw output: it may be natural language or a JSON function call,
// and it is the router's job to tell which.
type Client interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// In file: internal/llm/conversation.go
package llm

import "sync"

const (
	// defaultPromptWindow is how many past exchanges are included in each
	// prompt. Small on purpose: the function-calling instruction already
	// eats a good chunk of the model's context window.
	defaultPromptWindow = 4
	// defaultRetention is how many exchanges are kept in memory at all.
	defaultRetention = 10
)

// exchange is one completed user/assistant round trip.
type exchange struct {
	user      string
	assistant string
}

// ConversationManager maintains the bounded, in-memory conversation window.
// This is the only shared mutable cross-request state in the whole pipeline,
// and the transport serves requests concurrently, so access is serialized
// with a mutex here rather than pushing that obligation onto every caller.
type ConversationManager struct {
	mu           sync.Mutex
	history      []exchange
	promptWindow int
	retention    int
	systemPrompt string
}

// NewConversationManager creates a manager that prefixes every prompt with
// the given system instruction (normally the function-calling prompt).
func NewConversationManager(systemPrompt string) *ConversationManager {
	return &ConversationManager{
		promptWindow: defaultPromptWindow,
		retention:    defaultRetention,
		systemPrompt: systemPrompt,
	}
}

// Messages builds the message list for one generation: system instruction,
// the most recent exchanges up to the prompt window, then the new user text.
func (cm *ConversationManager) Messages(userText string) []Message {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	recent := cm.history
	if len(recent) > cm.promptWindow {
		recent = recent[len(recent)-cm.promptWindow:]
	}

	messages := make([]Message, 0, 2*len(recent)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: cm.systemPrompt})
	for _, ex := range recent {
		messages = append(messages, Message{Role: RoleUser, Content: ex.user})
		messages = append(messages, Message{Role: RoleAssistant, Content: ex.assistant})
	}
	messages = append(messages, Message{Role: RoleUser, Content: userText})
	return messages
}

// Record appends a completed exchange, discarding the oldest entries beyond
// the retention bound. Conversation state never leaves this process.
func (cm *ConversationManager) Record(userText, reply string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.history = append(cm.history, exchange{user: userText, assistant: reply})
	if len(cm.history) > cm.retention {
		cm.history = cm.history[len(cm.history)-cm.retention:]
	}
}

// Len reports how many exchanges are currently retained.
func (cm *ConversationManager) Len() int {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return len(cm.history)
}

// Package ai defines the chat model abstraction used by the assistant.
// Concrete providers live in subpackages.
package ai

import "context"

// Role identifies the author of a chat message.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single turn in a conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatModel generates assistant replies from a conversation history.
type ChatModel interface {
	// Name returns the provider's model identifier.
	Name() string
	// Generate produces the next assistant reply given a system instruction
	// and the conversation so far.
	Generate(ctx context.Context, systemInstruction string, history []ChatMessage) (string, error)
}

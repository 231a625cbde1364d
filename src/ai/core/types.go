package core

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single chat turn.
type Message struct {
	Role    string
	Content string
}

// Options controls model behavior; zero values fall back to the client defaults.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Client is a provider-agnostic interface for the chat completion call we need.
type Client interface {
	// Complete sends the ordered messages and returns the model's reply text.
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
}

// SystemPrompt returns the content of the first system message, if any.
func SystemPrompt(messages []Message) string {
	for _, m := range messages {
		if m.Role == RoleSystem {
			return m.Content
		}
	}
	return ""
}

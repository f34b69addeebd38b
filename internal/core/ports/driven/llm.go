package driven

import "context"

// ChatMessage is a single turn of an extraction conversation.
type ChatMessage struct {
	Role    string // "system", "user" or "assistant"
	Content string
}

// ChatOptions control a chat completion request.
type ChatOptions struct {
	MaxTokens   int
	Temperature float64
}

// LLMService is the external extraction capability: given free text it
// returns a best-effort reply that may or may not conform to the requested
// schema. Conformance checking is the extractor's job, not the adapter's.
// Implementations handle transport-level retry the same way ForumClient does.
type LLMService interface {
	// Chat conducts a chat completion and returns the raw reply text.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string
}

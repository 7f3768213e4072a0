package driven

import "context"

// LLMService generates answers from a language model.
//
// Implementations may include:
//   - Ollama (local models)
//   - OpenAI (GPT-4, GPT-4o)
//   - Anthropic (Claude)
type LLMService interface {
	// Chat conducts a non-streaming multi-turn exchange and returns the
	// single completed response message.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (*ChatResult, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures sampling behaviour.
type ChatOptions struct {
	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// NumCtx is the context window size in tokens.
	NumCtx int

	// TopK limits sampling to the K most likely tokens.
	TopK int

	// TopP is the nucleus sampling probability mass.
	TopP float64
}

// ChatResult is a completed (non-streaming) chat response.
type ChatResult struct {
	// Content is the generated message text.
	Content string

	// TokensUsed is the total token count the model reported, zero when
	// the backend does not report usage.
	TokensUsed int
}

package llm

import (
	"context"
)

// Provider is the core abstraction for tutoring model interaction.
// Consumers call Generate with a Request and receive the model's text.
type Provider interface {
	// Generate sends a prompt to the model and returns its reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// ImageProvider produces educational graphics from a text prompt.
// Only some backends support it; the factory reports which.
type ImageProvider interface {
	// GenerateImage renders the prompt as image bytes.
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error)
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt. Sets the model's role and constraints.
	System string

	// Messages is the conversation history, oldest first.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the model's output.
type Response struct {
	// Text is the generated reply.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// ImageRequest describes an image generation call.
type ImageRequest struct {
	Prompt string

	// AspectRatio is e.g. "1:1". Empty means the backend default.
	AspectRatio string
}

// ImageResponse holds generated image bytes.
type ImageResponse struct {
	Data     []byte
	MIMEType string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

package ports

import "context"

// ChatTurn is a single message in the conversation history.
type ChatTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Message string `json:"message"`
}

// ChatInput carries one coach request from the transport layer.
type ChatInput struct {
	UserID  string
	Message string
	History []ChatTurn
}

// ChatResult always carries a renderable response. Fallback is true when the
// text is a canned string substituted for an upstream failure.
type ChatResult struct {
	Response string `json:"response"`
	Model    string `json:"model"`
	Fallback bool   `json:"fallback,omitempty"`
}

// CoachService bridges chat requests to the hosted generative model.
type CoachService interface {
	Chat(ctx context.Context, input ChatInput) (*ChatResult, error)
}

// ModelTurn is one message forwarded to the hosted model. Role is "user" or
// "model" in the upstream vocabulary.
type ModelTurn struct {
	Role string
	Text string
}

// ModelClient abstracts the hosted generative endpoint.
type ModelClient interface {
	Generate(ctx context.Context, turns []ModelTurn) (string, error)
	ModelName() string
}

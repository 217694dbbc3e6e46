package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction over a generative completion service.
// Callers hand it a Request and get back the model's output, constrained to
// a JSON schema when one is supplied.
type Provider interface {
	// Generate performs a single completion call. When req.Schema is set the
	// provider asks the backend for JSON matching that schema and checks the
	// returned content against it before handing it back.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes one completion call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Lesson plan generation is single-turn,
	// so this normally holds one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. Nil means
	// free-form text.
	Schema *Schema

	// MaxTokens caps the response length. Zero leaves the provider default.
	MaxTokens int

	// Temperature controls randomness in the range 0.0 - 1.0.
	Temperature float64
}

// Message is a single conversation turn.
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

// Schema names a JSON Schema definition sent to the provider.
type Schema struct {
	// Name identifies the schema. Used as the OpenAI schema name and as the
	// compiled-schema cache key, so it must be unique per definition.
	Name string

	// Description tells the model what the object represents.
	Description string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// Response holds the provider output.
type Response struct {
	// Content is the raw generated text. With a Schema it is the JSON
	// document the model produced.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

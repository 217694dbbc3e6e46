package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/omegalab/lessonplan/internal/store"
)

// NewProvider creates a Provider from configuration. A missing credential
// is reported as *ErrConfiguration without contacting the backend.
// The result is wrapped with retry and logging middleware; eventRepo may be
// nil to skip event recording.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger zerolog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base, err = newFileMockProvider(cfg.Mock)
	default:
		return nil, &ErrConfiguration{Provider: cfg.Provider, Reason: "unknown LLM provider"}
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → logging → base
	var p Provider = base
	if eventRepo != nil {
		p = WithLogging(p, eventRepo, logger)
	}
	return WithRetry(p, cfg.Retry), nil
}

func newFileMockProvider(cfg MockConfig) (Provider, error) {
	if cfg.ResponseFile == "" {
		return NewMockProvider(), nil
	}
	data, err := os.ReadFile(cfg.ResponseFile)
	if err != nil {
		return nil, fmt.Errorf("read mock response: %w", err)
	}
	m := NewMockProvider(MockResponse{Content: data})
	m.Sticky = true
	return m, nil
}

package llm

import (
	"os"
	"strconv"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the backend.
	// Values: "gemini", "anthropic", "openai", "openrouter", "mock"
	Provider string `yaml:"provider" validate:"oneof=gemini anthropic openai openrouter mock"`

	Gemini     GeminiConfig     `yaml:"gemini"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Mock       MockConfig       `yaml:"mock"`
	Retry      RetryConfig      `yaml:"retry"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "gemini-pro"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "claude-sonnet"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "gpt-4o"
	BaseURL string `yaml:"base_url"` // Optional. Override for compatible APIs.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "google/gemini-2.5-pro"
	BaseURL string `yaml:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// MockConfig configures the offline provider.
type MockConfig struct {
	// ResponseFile is a JSON document returned verbatim for every request.
	ResponseFile string `yaml:"response_file"`
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retries.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns a Config targeting Gemini with a single attempt per
// request.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			Model: "gemini-pro",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-pro",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ApplyEnv overlays LESSONPLAN_* environment variables onto cfg. When no
// explicit key is set for the selected provider, the standard vendor key
// variables are probed via DiscoverConfig.
func (c *Config) ApplyEnv() {
	if p := os.Getenv("LESSONPLAN_LLM_PROVIDER"); p != "" {
		c.Provider = p
	}

	if k := os.Getenv("LESSONPLAN_GEMINI_API_KEY"); k != "" {
		c.Gemini.APIKey = k
	}
	if m := os.Getenv("LESSONPLAN_GEMINI_MODEL"); m != "" {
		c.Gemini.Model = m
	}

	if k := os.Getenv("LESSONPLAN_ANTHROPIC_API_KEY"); k != "" {
		c.Anthropic.APIKey = k
	}
	if m := os.Getenv("LESSONPLAN_ANTHROPIC_MODEL"); m != "" {
		c.Anthropic.Model = m
	}

	if k := os.Getenv("LESSONPLAN_OPENAI_API_KEY"); k != "" {
		c.OpenAI.APIKey = k
	}
	if m := os.Getenv("LESSONPLAN_OPENAI_MODEL"); m != "" {
		c.OpenAI.Model = m
	}
	if u := os.Getenv("LESSONPLAN_OPENAI_BASE_URL"); u != "" {
		c.OpenAI.BaseURL = u
	}

	if k := os.Getenv("LESSONPLAN_OPENROUTER_API_KEY"); k != "" {
		c.OpenRouter.APIKey = k
	}
	if m := os.Getenv("LESSONPLAN_OPENROUTER_MODEL"); m != "" {
		c.OpenRouter.Model = m
	}

	if f := os.Getenv("LESSONPLAN_MOCK_RESPONSE_FILE"); f != "" {
		c.Mock.ResponseFile = f
	}

	if n := os.Getenv("LESSONPLAN_LLM_MAX_ATTEMPTS"); n != "" {
		if v, err := strconv.Atoi(n); err == nil && v > 0 {
			c.Retry.MaxAttempts = v
		}
	}

	if c.Validate() == nil {
		return
	}
	if discovered, ok := DiscoverConfig(); ok && os.Getenv("LESSONPLAN_LLM_PROVIDER") == "" {
		c.Provider = discovered.Provider
		c.Gemini.APIKey = firstNonEmpty(c.Gemini.APIKey, discovered.Gemini.APIKey)
		c.OpenAI.APIKey = firstNonEmpty(c.OpenAI.APIKey, discovered.OpenAI.APIKey)
		c.Anthropic.APIKey = firstNonEmpty(c.Anthropic.APIKey, discovered.Anthropic.APIKey)
		c.OpenRouter.APIKey = firstNonEmpty(c.OpenRouter.APIKey, discovered.OpenRouter.APIKey)
	}
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("API_KEY")); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its credential set.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return &ErrConfiguration{Provider: c.Provider, Reason: "LESSONPLAN_GEMINI_API_KEY (or GEMINI_API_KEY) is not set"}
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return &ErrConfiguration{Provider: c.Provider, Reason: "LESSONPLAN_ANTHROPIC_API_KEY (or ANTHROPIC_API_KEY) is not set"}
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return &ErrConfiguration{Provider: c.Provider, Reason: "LESSONPLAN_OPENAI_API_KEY (or OPENAI_API_KEY) is not set"}
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return &ErrConfiguration{Provider: c.Provider, Reason: "LESSONPLAN_OPENROUTER_API_KEY (or OPENROUTER_API_KEY) is not set"}
		}
	case "mock":
		// No credential needed.
	default:
		return &ErrConfiguration{Provider: c.Provider, Reason: "unknown LLM provider"}
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

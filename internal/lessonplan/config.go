package lessonplan

import "time"

// Config tunes generation requests.
type Config struct {
	// MaxTokens caps the response length. 0 leaves the provider default.
	MaxTokens int `yaml:"max_tokens"`
	// Temperature is passed through when > 0.
	Temperature float64 `yaml:"temperature"`
	// Timeout bounds one generation end to end. 0 disables it.
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the generation defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   0,
		Temperature: 0,
		Timeout:     120 * time.Second,
	}
}

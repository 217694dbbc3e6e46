package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrConfiguration indicates the provider cannot be built from the current
// configuration, typically because the credential is missing. It is raised
// before any network activity.
type ErrConfiguration struct {
	Provider string
	Reason   string
}

func (e *ErrConfiguration) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("LLM configuration: %s", e.Reason)
	}
	return fmt.Sprintf("LLM configuration (%s): %s", e.Provider, e.Reason)
}

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Message    string
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrRequestRejected indicates the provider refused the request itself
// (bad credential, quota, malformed request). Retrying does not help.
type ErrRequestRejected struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ErrRequestRejected) Error() string {
	return fmt.Sprintf("request rejected (HTTP %d): %v", e.StatusCode, e.Err)
}

func (e *ErrRequestRejected) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the model returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Message string
	Err     error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// Diagnostic returns the provider's own explanation of a failure, falling
// back to the error text. It returns "" when an outage carries no detail.
func Diagnostic(err error) string {
	if err == nil {
		return ""
	}

	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.Message != "" {
		return rl.Message
	}
	var rej *ErrRequestRejected
	if errors.As(err, &rej) && rej.Message != "" {
		return rej.Message
	}
	var unavail *ErrProviderUnavailable
	if errors.As(err, &unavail) {
		if unavail.Message != "" {
			return unavail.Message
		}
		if unavail.Err != nil {
			return unavail.Err.Error()
		}
		return ""
	}
	var cfgErr *ErrConfiguration
	if errors.As(err, &cfgErr) {
		return cfgErr.Reason
	}
	return err.Error()
}

package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that does not
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
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrRejectedCredential indicates the provider refused the configured API
// key (401 or 403). It is never retried.
type ErrRejectedCredential struct {
	Status int
	Err    error
}

func (e *ErrRejectedCredential) Error() string {
	return fmt.Sprintf("LLM provider rejected the API key (HTTP %d): %v", e.Status, e.Err)
}

func (e *ErrRejectedCredential) Unwrap() error { return e.Err }

// classifyStatus maps an HTTP status from a provider SDK error onto the
// package's error types.
func classifyStatus(status int, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &ErrRejectedCredential{Status: status, Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrMissingCredential indicates the selected provider has no API key.
type ErrMissingCredential struct {
	Provider string
	EnvVar   string
}

func (e *ErrMissingCredential) Error() string {
	if e.EnvVar == "" {
		return fmt.Sprintf("no API key configured for LLM provider %q", e.Provider)
	}
	return fmt.Sprintf("%s is required for the %s provider", e.EnvVar, e.Provider)
}

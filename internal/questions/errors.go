package questions

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCount is returned when a generation request asks for fewer
	// than MinCount or more than MaxCount problems.
	ErrInvalidCount = fmt.Errorf("count must be between %d and %d", MinCount, MaxCount)

	// ErrInvalidRequest is returned when a generation request names an
	// unknown subject, level, type or difficulty.
	ErrInvalidRequest = errors.New("invalid generation request")
)

// ConfigurationError reports that no LLM provider is available, usually
// because no API key is set. No network call has been made.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	msg := "AI features are not configured: set GEMINI_API_KEY (or another provider key) in the environment or .env"
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// GenerationError reports a failed remote call or an unusable response.
type GenerationError struct {
	Op  string // "generate" or "hint"
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

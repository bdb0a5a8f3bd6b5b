package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/studyy/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry, logging and timeout
// middleware. A nil eventRepo disables request logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → timeout → retry → logging → base
	p := base
	if eventRepo != nil {
		p = WithLogging(p, cfg.Provider, eventRepo)
	}
	p = WithRetry(p, cfg.Retry)
	if cfg.Timeout > 0 {
		p = WithTimeout(p, cfg.Timeout)
	}
	return p, nil
}

// NewProviderFromEnv selects a provider from the environment. An explicit
// STUDYY_LLM_PROVIDER wins; otherwise the first standard API key found is
// used. When nothing is configured it returns *ErrMissingCredential.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		slog.Debug("using discovered LLM provider", "provider", discovered.Provider)
		cfg = discovered
	}
	return NewProvider(ctx, cfg, eventRepo)
}

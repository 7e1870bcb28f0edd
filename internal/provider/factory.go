package provider

import (
	"context"
	"fmt"

	"careerai/internal/completion"
	"careerai/internal/config"
	"careerai/internal/geministore"
	"careerai/internal/metrics"
)

// Completer is what every provider offers the analyzer.
type Completer interface {
	Complete(ctx context.Context, req completion.Request) (string, error)
}

// New builds the completion provider named by cfg.Provider, reading its
// credential from the environment.
func New(ctx context.Context, cfg *config.Config, m *metrics.CompletionMetrics) (Completer, error) {
	switch cfg.Provider {
	case "", "openrouter":
		apiKey, err := config.LoadCredential(config.APIKeyEnv)
		if err != nil {
			return nil, err
		}
		client, err := completion.New(completion.Config{
			APIKey:  apiKey,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.HTTPTimeout,
		}, m)
		if err != nil {
			return nil, err
		}
		return client, nil

	case "gemini":
		apiKey, err := config.LoadCredential(config.GeminiAPIKeyEnv)
		if err != nil {
			return nil, err
		}
		client, err := geministore.New(ctx, apiKey, m)
		if err != nil {
			return nil, err
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

package app

import (
	"context"
	"fmt"
	"os"

	"github.com/heartmarshall/langassist/internal/config"
	"github.com/heartmarshall/langassist/internal/service/assistant"
)

// NewCLIAssistant builds the assistant for one-shot command line use.
// A non-empty provider overrides GENERATION_PROVIDER.
func NewCLIAssistant(ctx context.Context, provider string) (*assistant.Service, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	if provider != "" {
		if err := os.Setenv("GENERATION_PROVIDER", provider); err != nil {
			return nil, fmt.Errorf("set provider: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	// One request per process: a breaker would never trip.
	cfg.Breaker.Enabled = false

	svc, _, err := NewAssistant(ctx, cfg, NewLogger(cfg.Log))
	if err != nil {
		return nil, fmt.Errorf("init assistant: %w", err)
	}
	return svc, nil
}

package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/langassist/internal/adapter/provider/breaker"
	"github.com/heartmarshall/langassist/internal/adapter/provider/gemini"
	"github.com/heartmarshall/langassist/internal/adapter/provider/openai"
	"github.com/heartmarshall/langassist/internal/adapter/provider/stub"
	"github.com/heartmarshall/langassist/internal/config"
	"github.com/heartmarshall/langassist/internal/prompt"
	"github.com/heartmarshall/langassist/internal/provider"
	"github.com/heartmarshall/langassist/internal/service/assistant"
	"github.com/heartmarshall/langassist/internal/transport/rest"
)

// NewGenerator builds the configured generation backend, wrapped in
// circuit breakers when enabled, and the models it should use.
func NewGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (provider.Generator, provider.Models, error) {
	var (
		gen    provider.Generator
		models provider.Models
	)

	switch cfg.Generation.Provider {
	case config.ProviderGemini:
		p, err := gemini.NewProvider(ctx, cfg.Gemini.APIKey, logger)
		if err != nil {
			return nil, provider.Models{}, fmt.Errorf("gemini: %w", err)
		}
		gen = p
		models = provider.Models{
			Text:    cfg.Gemini.TextModel,
			Speech:  cfg.Gemini.SpeechModel,
			UKVoice: cfg.Gemini.UKVoice,
			USVoice: cfg.Gemini.USVoice,
		}
	case config.ProviderOpenAI:
		if cfg.OpenAI.BaseURL != "" {
			gen = openai.NewProviderWithURL(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, logger)
		} else {
			gen = openai.NewProvider(cfg.OpenAI.APIKey, logger)
		}
		models = provider.Models{
			Text:    cfg.OpenAI.TextModel,
			Speech:  cfg.OpenAI.SpeechModel,
			UKVoice: cfg.OpenAI.UKVoice,
			USVoice: cfg.OpenAI.USVoice,
		}
	case config.ProviderStub:
		gen = stub.NewProvider()
		models = provider.Models{Text: "stub", Speech: "stub-tts", UKVoice: "uk", USVoice: "us"}
	default:
		return nil, provider.Models{}, fmt.Errorf("unknown generation provider %q", cfg.Generation.Provider)
	}

	if cfg.Breaker.Enabled {
		gen = breaker.New(gen, breaker.Settings{
			MaxFailures:      cfg.Breaker.MaxFailures,
			OpenTimeout:      cfg.Breaker.OpenTimeout,
			HalfOpenRequests: cfg.Breaker.HalfOpenRequests,
		}, logger)
	}

	return gen, models, nil
}

// NewAssistant wires prompts and the generation backend into the
// assistant service. It also returns the backend for health checks.
func NewAssistant(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*assistant.Service, provider.Generator, error) {
	prompts, err := newPrompts(cfg.Prompts)
	if err != nil {
		return nil, nil, err
	}

	gen, models, err := NewGenerator(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	svc := assistant.NewService(logger, prompts, gen, models, cfg.Generation.RequestTimeout)
	return svc, gen, nil
}

func newPrompts(cfg config.PromptsConfig) (*prompt.Builder, error) {
	if cfg.Path == "" {
		return prompt.New()
	}
	b, err := prompt.LoadFrom(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("prompts: %w", err)
	}
	return b, nil
}

// generationCheck reports the backend's breaker state. Backends without
// breakers are always considered up.
func generationCheck(gen provider.Generator) rest.Checker {
	if c, ok := gen.(rest.Checker); ok {
		return c
	}
	return rest.CheckFunc(func(context.Context) error { return nil })
}

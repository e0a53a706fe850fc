package assistant

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/langassist/internal/domain"
	"github.com/heartmarshall/langassist/internal/provider"
)

type promptBuilder interface {
	Translate(text string) (string, error)
	CorrectGrammar(text string) (string, error)
	DefineWord(word string) (string, error)
}

type generator interface {
	GenerateText(ctx context.Context, req provider.TextRequest) (string, error)
	GenerateSpeech(ctx context.Context, req provider.SpeechRequest) (*domain.Audio, error)
}

// Service implements the assistant tasks: translation, grammar correction
// and word lookup. It holds no per-request state.
type Service struct {
	log     *slog.Logger
	prompts promptBuilder
	gen     generator
	models  provider.Models
	timeout time.Duration
}

// NewService creates a new assistant service.
// A zero timeout leaves every remote call without a deadline.
func NewService(
	logger *slog.Logger,
	prompts promptBuilder,
	gen generator,
	models provider.Models,
	timeout time.Duration,
) *Service {
	return &Service{
		log:     logger.With("service", "assistant"),
		prompts: prompts,
		gen:     gen,
		models:  models,
		timeout: timeout,
	}
}

// callContext bounds a single remote call by the configured timeout.
func (s *Service) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

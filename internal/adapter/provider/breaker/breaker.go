// Package breaker decorates a generation backend with circuit breakers,
// one for text and one for speech.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/heartmarshall/langassist/internal/domain"
	"github.com/heartmarshall/langassist/internal/provider"
)

// Settings configures both breakers.
type Settings struct {
	MaxFailures      uint32        // consecutive failures that open the breaker
	OpenTimeout      time.Duration // time spent open before probing
	HalfOpenRequests uint32        // probes allowed while half-open
}

// Generator fails fast while the remote API keeps failing. It never retries.
type Generator struct {
	next   provider.Generator
	text   *gobreaker.CircuitBreaker
	speech *gobreaker.CircuitBreaker
	log    *slog.Logger
}

var _ provider.Generator = (*Generator)(nil)

// New wraps next.
func New(next provider.Generator, s Settings, logger *slog.Logger) *Generator {
	g := &Generator{
		next: next,
		log:  logger.With("adapter", "breaker", "backend", next.Name()),
	}
	g.text = gobreaker.NewCircuitBreaker(g.settings("text", s))
	g.speech = gobreaker.NewCircuitBreaker(g.settings("speech", s))
	return g
}

func (g *Generator) settings(name string, s Settings) gobreaker.Settings {
	maxFailures := s.MaxFailures
	if maxFailures == 0 {
		maxFailures = 1
	}
	return gobreaker.Settings{
		Name:        g.next.Name() + "-" + name,
		MaxRequests: s.HalfOpenRequests,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			g.log.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}
}

func (g *Generator) Name() string { return g.next.Name() }

// State reports the text and speech breaker states.
func (g *Generator) State() (text, speech gobreaker.State) {
	return g.text.State(), g.speech.State()
}

// Check reports an error while either breaker is open. It serves the
// health endpoint.
func (g *Generator) Check(context.Context) error {
	text, speech := g.State()
	if text == gobreaker.StateOpen {
		return fmt.Errorf("text: %w", gobreaker.ErrOpenState)
	}
	if speech == gobreaker.StateOpen {
		return fmt.Errorf("speech: %w", gobreaker.ErrOpenState)
	}
	return nil
}

func (g *Generator) GenerateText(ctx context.Context, req provider.TextRequest) (string, error) {
	out, err := g.text.Execute(func() (interface{}, error) {
		return g.next.GenerateText(ctx, req)
	})
	if err != nil {
		return "", g.wrap(ctx, "text", req.Model, err)
	}
	return out.(string), nil
}

func (g *Generator) GenerateSpeech(ctx context.Context, req provider.SpeechRequest) (*domain.Audio, error) {
	out, err := g.speech.Execute(func() (interface{}, error) {
		return g.next.GenerateSpeech(ctx, req)
	})
	if err != nil {
		return nil, g.wrap(ctx, "speech", req.Model, err)
	}
	return out.(*domain.Audio), nil
}

// wrap converts breaker rejections into generation errors and passes
// backend errors through.
func (g *Generator) wrap(ctx context.Context, op, model string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		g.log.WarnContext(ctx, "generation rejected by open breaker", slog.String("op", op), slog.String("model", model))
		return domain.NewGenerationError(op, model, err)
	}
	return err
}

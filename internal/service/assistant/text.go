package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/langassist/internal/domain"
	"github.com/heartmarshall/langassist/internal/provider"
)

// Translate returns three contextual English translations of a Vietnamese
// sentence as markdown. Blank input returns "" without a remote call.
func (s *Service) Translate(ctx context.Context, text string) (string, error) {
	if domain.IsBlank(text) {
		return "", nil
	}
	prompt, err := s.prompts.Translate(text)
	if err != nil {
		return "", fmt.Errorf("translate: build prompt: %w", err)
	}
	out, err := s.generateText(ctx, domain.TaskTranslate, prompt)
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	return out, nil
}

// CorrectGrammar returns the corrected sentence, explanations and three
// rewrites as markdown. Blank input returns "" without a remote call.
func (s *Service) CorrectGrammar(ctx context.Context, text string) (string, error) {
	if domain.IsBlank(text) {
		return "", nil
	}
	prompt, err := s.prompts.CorrectGrammar(text)
	if err != nil {
		return "", fmt.Errorf("correct grammar: build prompt: %w", err)
	}
	out, err := s.generateText(ctx, domain.TaskCorrectGrammar, prompt)
	if err != nil {
		return "", fmt.Errorf("correct grammar: %w", err)
	}
	return out, nil
}

func (s *Service) generateText(ctx context.Context, kind domain.TaskKind, prompt string) (string, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	out, err := s.gen.GenerateText(ctx, provider.TextRequest{Model: s.models.Text, Prompt: prompt})
	if err != nil {
		s.log.ErrorContext(ctx, "text generation failed",
			slog.String("task", kind.String()),
			slog.String("error", err.Error()),
		)
		return "", err
	}
	return strings.TrimSpace(out), nil
}

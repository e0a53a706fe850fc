package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/langassist/internal/domain"
	"github.com/heartmarshall/langassist/internal/provider"
	"github.com/heartmarshall/langassist/pkg/settle"
)

// DefineWord looks up a word: the markdown definition and the UK and US
// pronunciations are generated concurrently and merged once all three settle.
//
// A failed definition fails the lookup with ErrDefinitionUnavailable and any
// audio is discarded. A failed pronunciation only leaves that voice nil.
// Blank input returns an empty result without a remote call. The word is
// trimmed before it reaches the prompt and the speech calls.
func (s *Service) DefineWord(ctx context.Context, word string) (*domain.WordMeaningResult, error) {
	if domain.IsBlank(word) {
		return &domain.WordMeaningResult{}, nil
	}
	word = strings.TrimSpace(word)
	prompt, err := s.prompts.DefineWord(word)
	if err != nil {
		return nil, fmt.Errorf("define word: build prompt: %w", err)
	}

	var g settle.Group
	text := settle.Go(&g, func() (string, error) {
		return s.definition(ctx, prompt)
	})
	uk := settle.Go(&g, func() (*domain.Audio, error) {
		return s.pronounce(ctx, word, s.models.UKVoice)
	})
	us := settle.Go(&g, func() (*domain.Audio, error) {
		return s.pronounce(ctx, word, s.models.USVoice)
	})
	g.Wait()

	if !text.OK() {
		s.log.ErrorContext(ctx, "word definition failed",
			slog.String("word", word),
			slog.String("error", text.Err.Error()),
		)
		return nil, fmt.Errorf("define word: %w: %w", domain.ErrDefinitionUnavailable, text.Err)
	}

	return &domain.WordMeaningResult{
		Text:    strings.TrimSpace(text.Value),
		UKAudio: s.keepAudio(ctx, word, domain.VoiceUK, uk),
		USAudio: s.keepAudio(ctx, word, domain.VoiceUS, us),
	}, nil
}

func (s *Service) definition(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()
	return s.gen.GenerateText(ctx, provider.TextRequest{Model: s.models.Text, Prompt: prompt})
}

func (s *Service) pronounce(ctx context.Context, word, voice string) (*domain.Audio, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()
	return s.gen.GenerateSpeech(ctx, provider.SpeechRequest{Model: s.models.Speech, Text: word, Voice: voice})
}

// keepAudio returns the settled audio, or nil with a warning when that voice
// failed or returned no whole PCM frames.
func (s *Service) keepAudio(ctx context.Context, word string, v domain.Voice, out *settle.Outcome[*domain.Audio]) *domain.Audio {
	if out.OK() && out.Value.Playable() {
		return out.Value
	}
	err := out.Err
	if err == nil {
		err = domain.ErrAudioUnavailable
	}
	s.log.WarnContext(ctx, "pronunciation unavailable, proceeding without audio",
		slog.String("word", word),
		slog.String("voice", v.String()),
		slog.String("error", err.Error()),
	)
	return nil
}

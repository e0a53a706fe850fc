// Package openai implements the generation contracts on the OpenAI API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/heartmarshall/langassist/internal/domain"
	"github.com/heartmarshall/langassist/internal/provider"
)

// responseFormatPCM is raw 24 kHz 16-bit signed little-endian mono audio.
const (
	responseFormatPCM = openai.SpeechResponseFormat("pcm")
	pcmMIMEType       = "audio/pcm"
)

var (
	errNoChoices = errors.New("no choices in response")
	errNoAudio   = errors.New("empty audio payload")
)

// Provider generates text with chat completions and speech with the TTS endpoint.
type Provider struct {
	client *openai.Client
	log    *slog.Logger
}

var _ provider.Generator = (*Provider)(nil)

// NewProvider creates a Provider for the public OpenAI API.
func NewProvider(apiKey string, logger *slog.Logger) *Provider {
	return NewProviderWithURL(apiKey, "", logger)
}

// NewProviderWithURL creates a Provider with a custom base URL
// (OpenAI-compatible servers, tests). An empty baseURL keeps the default.
func NewProviderWithURL(apiKey, baseURL string, logger *slog.Logger) *Provider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Provider{
		client: openai.NewClientWithConfig(cfg),
		log:    logger.With("adapter", "openai"),
	}
}

func (p *Provider) Name() string { return "openai" }

// GenerateText sends the prompt as a single user message.
func (p *Provider) GenerateText(ctx context.Context, req provider.TextRequest) (string, error) {
	p.log.DebugContext(ctx, "openai text request", slog.String("model", req.Model), slog.Int("prompt_len", len(req.Prompt)))

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	})
	if err != nil {
		p.log.ErrorContext(ctx, "openai text request failed", slog.String("model", req.Model), slog.String("error", err.Error()))
		return "", domain.NewGenerationError("text", req.Model, err)
	}

	if len(resp.Choices) == 0 {
		return "", domain.NewGenerationError("text", req.Model, errNoChoices)
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateSpeech requests raw PCM so every backend yields the same format.
func (p *Provider) GenerateSpeech(ctx context.Context, req provider.SpeechRequest) (*domain.Audio, error) {
	p.log.DebugContext(ctx, "openai speech request", slog.String("model", req.Model), slog.String("voice", req.Voice))

	resp, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(req.Model),
		Input:          req.Text,
		Voice:          openai.SpeechVoice(req.Voice),
		ResponseFormat: responseFormatPCM,
	})
	if err != nil {
		p.log.ErrorContext(ctx, "openai speech request failed", slog.String("model", req.Model), slog.String("voice", req.Voice), slog.String("error", err.Error()))
		return nil, domain.NewGenerationError("speech", req.Model, err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, domain.NewGenerationError("speech", req.Model, fmt.Errorf("read body: %w", err))
	}
	if len(data) == 0 {
		return nil, domain.NewGenerationError("speech", req.Model, errNoAudio)
	}

	return &domain.Audio{
		Data:       data,
		MIMEType:   pcmMIMEType,
		SampleRate: domain.AudioSampleRate,
		Channels:   domain.AudioChannels,
		Voice:      req.Voice,
	}, nil
}

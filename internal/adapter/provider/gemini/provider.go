// Package gemini implements the generation contracts on the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/heartmarshall/langassist/internal/domain"
	"github.com/heartmarshall/langassist/internal/provider"
)

// pcmMIMEType is what the TTS models return: signed 16-bit little-endian PCM.
const pcmMIMEType = "audio/L16;codec=pcm;rate=24000"

var (
	errNoCandidates = errors.New("no candidates in response")
	errNoText       = errors.New("no text in response")
	errNoAudio      = errors.New("no audio in response")
)

// modelsAPI is the subset of *genai.Models the provider calls.
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Provider generates text and speech with Gemini models.
type Provider struct {
	models modelsAPI
	log    *slog.Logger
}

var _ provider.Generator = (*Provider)(nil)

// NewProvider creates a Provider talking to the Gemini Developer API.
func NewProvider(ctx context.Context, apiKey string, logger *slog.Logger) (*Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return newWithModels(client.Models, logger), nil
}

func newWithModels(models modelsAPI, logger *slog.Logger) *Provider {
	return &Provider{
		models: models,
		log:    logger.With("adapter", "gemini"),
	}
}

func (p *Provider) Name() string { return "gemini" }

// GenerateText sends the prompt as a single user turn and returns the
// concatenated text of the first candidate. The text is not trimmed.
func (p *Provider) GenerateText(ctx context.Context, req provider.TextRequest) (string, error) {
	p.log.DebugContext(ctx, "gemini text request", slog.String("model", req.Model), slog.Int("prompt_len", len(req.Prompt)))

	resp, err := p.models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), nil)
	if err != nil {
		p.log.ErrorContext(ctx, "gemini text request failed", slog.String("model", req.Model), slog.String("error", err.Error()))
		return "", domain.NewGenerationError("text", req.Model, err)
	}

	text, err := responseText(resp)
	if err != nil {
		p.log.ErrorContext(ctx, "gemini text response unusable", slog.String("model", req.Model), slog.String("error", err.Error()))
		return "", domain.NewGenerationError("text", req.Model, err)
	}
	return text, nil
}

// GenerateSpeech asks the TTS model to read req.Text with a prebuilt voice.
func (p *Provider) GenerateSpeech(ctx context.Context, req provider.SpeechRequest) (*domain.Audio, error) {
	p.log.DebugContext(ctx, "gemini speech request", slog.String("model", req.Model), slog.String("voice", req.Voice))

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityAudio)},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: req.Voice},
			},
		},
	}

	resp, err := p.models.GenerateContent(ctx, req.Model, genai.Text(req.Text), cfg)
	if err != nil {
		p.log.ErrorContext(ctx, "gemini speech request failed", slog.String("model", req.Model), slog.String("voice", req.Voice), slog.String("error", err.Error()))
		return nil, domain.NewGenerationError("speech", req.Model, err)
	}

	blob := responseAudio(resp)
	if blob == nil {
		return nil, domain.NewGenerationError("speech", req.Model, errNoAudio)
	}

	mime := blob.MIMEType
	if mime == "" {
		mime = pcmMIMEType
	}
	return &domain.Audio{
		Data:       blob.Data,
		MIMEType:   mime,
		SampleRate: domain.AudioSampleRate,
		Channels:   domain.AudioChannels,
		Voice:      req.Voice,
	}, nil
}

func firstContent(resp *genai.GenerateContentResponse) *genai.Content {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil
	}
	return resp.Candidates[0].Content
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	content := firstContent(resp)
	if content == nil {
		return "", errNoCandidates
	}

	var b strings.Builder
	found := false
	for _, part := range content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		b.WriteString(part.Text)
		found = true
	}
	if !found {
		return "", errNoText
	}
	return b.String(), nil
}

func responseAudio(resp *genai.GenerateContentResponse) *genai.Blob {
	content := firstContent(resp)
	if content == nil {
		return nil
	}
	for _, part := range content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData
		}
	}
	return nil
}

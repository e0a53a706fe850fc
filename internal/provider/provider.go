// Package provider defines the contracts of the remote generation API.
// Adapters live under internal/adapter/provider.
package provider

import (
	"context"

	"github.com/heartmarshall/langassist/internal/domain"
)

// TextRequest asks a model to generate text for a prompt.
type TextRequest struct {
	Model  string
	Prompt string
}

// SpeechRequest asks a text-to-speech model to pronounce Text with Voice.
// Voice is an opaque provider identifier and is not validated.
type SpeechRequest struct {
	Model string
	Text  string
	Voice string
}

// TextGenerator produces text. Implementations make a single attempt and
// report failures as *domain.GenerationError.
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextRequest) (string, error)
}

// SpeechGenerator produces raw audio. Implementations make a single attempt
// and report failures, including an empty payload, as *domain.GenerationError.
type SpeechGenerator interface {
	GenerateSpeech(ctx context.Context, req SpeechRequest) (*domain.Audio, error)
}

// Generator is a backend offering both text and speech.
type Generator interface {
	TextGenerator
	SpeechGenerator
	Name() string
}

// Models names the models and voices a backend uses for each task.
type Models struct {
	Text    string
	Speech  string
	UKVoice string
	USVoice string
}

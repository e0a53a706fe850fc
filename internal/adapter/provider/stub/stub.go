// Package stub provides a deterministic offline generation backend for
// development and tests.
package stub

import (
	"context"
	"encoding/binary"
	"hash/fnv"
	"math"
	"strings"

	"github.com/heartmarshall/langassist/internal/domain"
	"github.com/heartmarshall/langassist/internal/provider"
)

const toneDuration = 0.4 // seconds

const translationMarkdown = `### Context 1: Everyday conversation
**Xin chào**
Used as a friendly greeting in most situations.

### Context 2: Formal
**Kính chào**
Used in formal speeches or written greetings.

### Context 3: Casual
**Chào bạn**
Used between friends or people of the same age.`

const grammarMarkdown = `### Corrected Sentence
He doesn't know what to do.

### Corrections & Explanations
- "don't" → **"doesn't"**: a third-person singular subject takes "does not" in the present simple.

### Alternative Rewrites
- He has no idea what to do.
- He is unsure what to do.`

const wordMarkdown = `### Nghĩa của từ
Tốt bụng, nhân từ, có thiện ý với người khác.

### Word Type
Adjective

### Pronunciation
* UK: <span class="phonetic-text">/bəˈnevələnt/</span> <span data-placeholder="uk-audio"></span><span data-copy-placeholder="pronunciation"></span>
* US: <span class="phonetic-text">/bəˈnevələnt/</span> <span data-placeholder="us-audio"></span><span data-copy-placeholder="pronunciation"></span>

### Word Forms
* Noun: benevolence
* Adverb: benevolently

### Example Sentences
* He was a **benevolent** old man.
  *Ông ấy là một cụ già tốt bụng.* <span data-copy-placeholder="example"></span>
* The charity relies on **benevolent** donors.
  *Tổ chức từ thiện dựa vào những nhà tài trợ hảo tâm.* <span data-copy-placeholder="example"></span>`

// Provider answers every request with canned content selected by the
// instructions found in the prompt.
type Provider struct{}

var _ provider.Generator = (*Provider)(nil)

// NewProvider creates a new stub provider.
func NewProvider() *Provider { return &Provider{} }

func (p *Provider) Name() string { return "stub" }

// GenerateText returns canned markdown. Identical prompts yield identical text.
func (p *Provider) GenerateText(ctx context.Context, req provider.TextRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.NewGenerationError("text", req.Model, err)
	}
	switch {
	case strings.Contains(req.Prompt, `data-placeholder="uk-audio"`):
		return wordMarkdown, nil
	case strings.Contains(req.Prompt, "Corrected Sentence"):
		return grammarMarkdown, nil
	default:
		return translationMarkdown, nil
	}
}

// GenerateSpeech returns a short sine tone whose pitch depends on the voice.
func (p *Provider) GenerateSpeech(ctx context.Context, req provider.SpeechRequest) (*domain.Audio, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewGenerationError("speech", req.Model, err)
	}
	return &domain.Audio{
		Data:       tone(toneFrequency(req.Voice)),
		MIMEType:   "audio/pcm",
		SampleRate: domain.AudioSampleRate,
		Channels:   domain.AudioChannels,
		Voice:      req.Voice,
	}, nil
}

func toneFrequency(voice string) float64 {
	h := fnv.New32a()
	h.Write([]byte(voice))
	return 330 + float64(h.Sum32()%8)*55
}

func tone(freq float64) []byte {
	n := int(toneDuration * domain.AudioSampleRate)
	buf := make([]byte, n*2)
	for i := range n {
		v := math.Sin(2 * math.Pi * freq * float64(i) / domain.AudioSampleRate)
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(v*math.MaxInt16/4)))
	}
	return buf
}

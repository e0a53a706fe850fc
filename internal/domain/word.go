package domain

// Audio output format shared by every speech provider: 16-bit PCM, mono, 24 kHz.
const (
	AudioSampleRate    = 24000
	AudioChannels      = 1
	AudioBitsPerSample = 16
)

// Voice selects one of the two pronunciation profiles.
type Voice string

const (
	VoiceUK Voice = "uk"
	VoiceUS Voice = "us"
)

func (v Voice) String() string { return string(v) }

func (v Voice) IsValid() bool {
	return v == VoiceUK || v == VoiceUS
}

// Audio is a raw speech payload. Data is encoded as base64 in JSON.
type Audio struct {
	Data       []byte `json:"data"`
	MIMEType   string `json:"mimeType,omitempty"`
	SampleRate int    `json:"sampleRate"`
	Channels   int    `json:"channels"`
	Voice      string `json:"voice,omitempty"`
}

// FrameSize is the byte length of one PCM frame of a.
func (a *Audio) FrameSize() int {
	channels := a.Channels
	if channels <= 0 {
		channels = AudioChannels
	}
	return channels * AudioBitsPerSample / 8
}

// Playable reports whether a holds at least one whole PCM frame and no
// partial one.
func (a *Audio) Playable() bool {
	return a != nil && len(a.Data) > 0 && len(a.Data)%a.FrameSize() == 0
}

// WordMeaningResult is the merged outcome of a word lookup.
// A nil audio pointer means that voice could not be generated.
type WordMeaningResult struct {
	Text    string `json:"text"`
	UKAudio *Audio `json:"ukAudio"`
	USAudio *Audio `json:"usAudio"`
}

// AudioFor returns the audio of the given voice, or nil.
func (r *WordMeaningResult) AudioFor(v Voice) *Audio {
	if r == nil {
		return nil
	}
	switch v {
	case VoiceUK:
		return r.UKAudio
	case VoiceUS:
		return r.USAudio
	}
	return nil
}

// IsEmpty reports whether the result carries no definition text.
func (r *WordMeaningResult) IsEmpty() bool {
	return r == nil || r.Text == ""
}

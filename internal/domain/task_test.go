package domain

import "testing"

func TestTaskKind_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind TaskKind
		want bool
	}{
		{TaskTranslate, true},
		{TaskCorrectGrammar, true},
		{TaskDefineWord, true},
		{TaskKind("summarize"), false},
		{TaskKind(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()
			if got := tt.kind.IsValid(); got != tt.want {
				t.Errorf("TaskKind(%q).IsValid() = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestTaskKind_FailureMessage_DistinctPerTask(t *testing.T) {
	t.Parallel()

	seen := make(map[string]TaskKind)
	for _, k := range TaskKinds {
		msg := k.FailureMessage()
		if msg == "" {
			t.Fatalf("empty failure message for %s", k)
		}
		if other, dup := seen[msg]; dup {
			t.Errorf("%s and %s share failure message %q", k, other, msg)
		}
		seen[msg] = k
	}
}

func TestState_CanSubmit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state State
		want  bool
	}{
		{StateIdle, true},
		{StatePending, false},
		{StateSucceeded, true},
		{StateFailed, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			t.Parallel()
			if got := tt.state.CanSubmit(); got != tt.want {
				t.Errorf("State(%q).CanSubmit() = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestWordMeaningResult_AudioFor(t *testing.T) {
	t.Parallel()

	uk := &Audio{Data: []byte{1}, Voice: "Puck"}
	r := &WordMeaningResult{Text: "x", UKAudio: uk}

	if got := r.AudioFor(VoiceUK); got != uk {
		t.Errorf("AudioFor(uk) = %v, want %v", got, uk)
	}
	if got := r.AudioFor(VoiceUS); got != nil {
		t.Errorf("AudioFor(us) = %v, want nil", got)
	}

	var nilResult *WordMeaningResult
	if got := nilResult.AudioFor(VoiceUK); got != nil {
		t.Errorf("nil result AudioFor = %v, want nil", got)
	}
	if !nilResult.IsEmpty() {
		t.Error("nil result should be empty")
	}
}

func TestAudio_Playable(t *testing.T) {
	tests := []struct {
		name  string
		audio *Audio
		want  bool
	}{
		{name: "nil", audio: nil, want: false},
		{name: "empty", audio: &Audio{}, want: false},
		{name: "whole mono frames", audio: &Audio{Data: []byte{1, 2, 3, 4}, Channels: 1}, want: true},
		{name: "partial mono frame", audio: &Audio{Data: []byte{1, 2, 3}, Channels: 1}, want: false},
		{name: "partial stereo frame", audio: &Audio{Data: []byte{1, 2}, Channels: 2}, want: false},
		{name: "channels default to mono", audio: &Audio{Data: []byte{1, 2}}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.audio.Playable(); got != tt.want {
				t.Errorf("Playable() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Package gemini synthesizes speech through the Gemini TTS API.
package gemini

import (
	"context"
	"fmt"

	"blinkrest/internal/voice"

	"google.golang.org/genai"
)

const (
	DefaultModel     = "gemini-2.5-flash-preview-tts"
	DefaultVoiceName = "Puck"
	// SampleRate and Channels describe the PCM returned by the TTS model.
	SampleRate = 24000
	Channels   = 1

	promptPrefix = "Speak the following medical instruction clearly and at a relaxed pace: "
)

// Config selects the TTS model and prebuilt voice.
type Config struct {
	APIKey    string
	Model     string
	VoiceName string
}

// Synthesizer produces 16-bit mono PCM through the Gemini TTS API.
type Synthesizer struct {
	client    *genai.Client
	model     string
	voiceName string
}

// New creates a synthesizer bound to the Gemini API.
func New(ctx context.Context, config Config) (*Synthesizer, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("create gemini client: api key is empty")
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.VoiceName == "" {
		config.VoiceName = DefaultVoiceName
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Synthesizer{
		client:    client,
		model:     config.Model,
		voiceName: config.VoiceName,
	}, nil
}

// Synthesize implements voice.Synthesizer.
func (synth *Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	response, err := synth.client.Models.GenerateContent(ctx, synth.model, genai.Text(promptPrefix+text), speechConfig(synth.voiceName))
	if err != nil {
		return nil, fmt.Errorf("generate speech: %w", err)
	}
	return extractAudio(response)
}

func speechConfig(voiceName string) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voiceName},
			},
		},
	}
}

func extractAudio(response *genai.GenerateContentResponse) ([]byte, error) {
	if response == nil || len(response.Candidates) == 0 {
		return nil, voice.ErrNoAudio
	}
	content := response.Candidates[0].Content
	if content == nil {
		return nil, voice.ErrNoAudio
	}
	for _, part := range content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, nil
		}
	}
	return nil, voice.ErrNoAudio
}

var _ voice.Synthesizer = (*Synthesizer)(nil)

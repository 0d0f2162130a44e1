package gemini

import (
	"testing"

	"blinkrest/internal/voice"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(t.Context(), Config{})
	require.Error(t, err)
}

func TestSpeechConfigSelectsVoice(t *testing.T) {
	config := speechConfig("Kore")
	assert.Equal(t, []string{"AUDIO"}, config.ResponseModalities)
	assert.Equal(t, "Kore", config.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)
}

func TestExtractAudio(t *testing.T) {
	_, err := extractAudio(nil)
	require.ErrorIs(t, err, voice.ErrNoAudio)

	_, err = extractAudio(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}})
	require.ErrorIs(t, err, voice.ErrNoAudio)

	response := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "ignored"},
				{InlineData: &genai.Blob{MIMEType: "audio/L16", Data: []byte{1, 2, 3, 4}}},
			}},
		}},
	}
	pcm, err := extractAudio(response)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, pcm)
}

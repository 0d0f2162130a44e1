package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"blinkrest/internal/ui/preferences"
	"blinkrest/internal/voice"
	"blinkrest/internal/voice/gemini"
	"blinkrest/internal/voice/oto"
)

// speakerFactory builds announcers from settings. The audio device is opened
// once and shared, since oto allows a single context per process.
type speakerFactory struct {
	logger    *slog.Logger
	getenv    func(string) string
	once      sync.Once
	player    voice.Player
	playerErr error
}

func newSpeakerFactory(logger *slog.Logger) *speakerFactory {
	return &speakerFactory{logger: logger, getenv: os.Getenv}
}

// Build returns a silent speaker whenever voice is disabled or unavailable.
func (factory *speakerFactory) Build(ctx context.Context, settings preferences.Settings) voice.Speaker {
	if !settings.VoiceEnabled {
		return voice.Nop{}
	}
	key := apiKey(factory.getenv)
	if key == "" {
		factory.logger.Info("no GEMINI_API_KEY set, voice guidance disabled")
		return voice.Nop{}
	}

	synth, err := gemini.New(ctx, gemini.Config{
		APIKey:    key,
		Model:     settings.VoiceModel,
		VoiceName: settings.VoiceName,
	})
	if err != nil {
		factory.logger.Warn("voice guidance disabled", "error", err)
		return voice.Nop{}
	}

	player, err := factory.audio()
	if err != nil {
		factory.logger.Warn("voice guidance disabled", "error", err)
		return voice.Nop{}
	}
	return voice.NewAnnouncer(synth, player, factory.logger)
}

func (factory *speakerFactory) audio() (voice.Player, error) {
	factory.once.Do(func() {
		factory.player, factory.playerErr = oto.New(gemini.SampleRate, gemini.Channels)
	})
	return factory.player, factory.playerErr
}

// apiKey prefers GEMINI_API_KEY and falls back to API_KEY.
func apiKey(getenv func(string) string) string {
	for _, name := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if value := strings.TrimSpace(getenv(name)); value != "" {
			return value
		}
	}
	return ""
}

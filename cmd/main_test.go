package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"blinkrest/internal/ui/preferences"
	"blinkrest/internal/voice"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCommandPrintsCategory(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"classify", "7.34"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "7.3s  Marginal\nMarginal stability. Your tear film breaks up sooner than ideal; conscious blinking can help.\n", out.String())
}

func TestClassifyCommandRejectsNonNumbers(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"classify", "soon"})
	assert.Error(t, cmd.Execute())
}

func TestAPIKeyFallsBackToAPIKey(t *testing.T) {
	env := map[string]string{"API_KEY": " secret "}
	assert.Equal(t, "secret", apiKey(func(name string) string { return env[name] }))

	env["GEMINI_API_KEY"] = "primary"
	assert.Equal(t, "primary", apiKey(func(name string) string { return env[name] }))

	assert.Equal(t, "", apiKey(func(string) string { return "" }))
}

func TestSpeakerFactoryStaysSilentWithoutKey(t *testing.T) {
	factory := newSpeakerFactory(slog.New(slog.NewTextHandler(io.Discard, nil)))
	factory.getenv = func(string) string { return "" }

	speaker := factory.Build(context.Background(), preferences.DefaultSettings())
	assert.Equal(t, voice.Nop{}, speaker)

	disabled := preferences.DefaultSettings()
	disabled.VoiceEnabled = false
	factory.getenv = func(string) string { return "key" }
	assert.Equal(t, voice.Nop{}, factory.Build(context.Background(), disabled))
}

func TestNewTermModelRejectsUnknownRoutine(t *testing.T) {
	_, err := newTermModel("juggling", preferences.DefaultSettings(), voice.Nop{}, slog.Default())
	assert.Error(t, err)
}

func TestVoiceChanged(t *testing.T) {
	settings := preferences.DefaultSettings()
	updated := settings
	updated.LogLevel = "debug"
	assert.False(t, voiceChanged(settings, updated))
	updated.VoiceName = "Kore"
	assert.True(t, voiceChanged(settings, updated))
}

func TestLoginItemStartsInTray(t *testing.T) {
	item := loginItem()
	assert.Equal(t, appName, item.Name)
	assert.Empty(t, item.Program, "resolved to the running executable when synced")
	require.Equal(t, []string{"--tray"}, item.Args)

	root := newRootCmd()
	require.NoError(t, root.ParseFlags(item.Args))
	toTray, err := root.Flags().GetBool(trayFlag)
	require.NoError(t, err)
	assert.True(t, toTray)
}

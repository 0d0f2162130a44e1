package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"blinkrest/internal/core/model"
	"blinkrest/internal/core/session"
	"blinkrest/internal/core/stability"
	"blinkrest/internal/logging"
	"blinkrest/internal/storage"
	"blinkrest/internal/ui/preferences"
	"blinkrest/internal/ui/term"
	"blinkrest/internal/voice"

	"github.com/spf13/cobra"
)

func newTermCmd(jsonLogs *bool) *cobra.Command {
	var routine, logFile string

	cmd := &cobra.Command{
		Use:   "term",
		Short: "Run a session in the terminal",
		RunE: func(_ *cobra.Command, _ []string) error {
			settings, err := storage.LoadSettings(appName)
			if err != nil {
				settings = preferences.DefaultSettings()
			}

			out, closeLog, err := openLogOutput(logFile)
			if err != nil {
				return err
			}
			defer closeLog()
			logger := logging.Setup(out, settings.LogLevel, logFormat(*jsonLogs))

			speaker := newSpeakerFactory(logger).Build(context.Background(), settings)
			ui, err := newTermModel(routine, settings, speaker, logger)
			if err != nil {
				return err
			}
			return term.Run(ui)
		},
	}
	cmd.Flags().StringVar(&routine, "routine", "exercise", "Routine to run: exercise, palming or test")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of discarding them")
	return cmd
}

func newTermModel(routine string, settings preferences.Settings, speaker voice.Speaker, logger *slog.Logger) (term.Model, error) {
	switch routine {
	case "exercise", "blinking":
		return newSessionModel(settings.ExerciseRoutine(), speaker, logger)
	case "palming":
		return newSessionModel(settings.PalmingRoutine(), speaker, logger)
	case "test", "stability":
		watch := stability.New(speaker, stability.Options{Logger: logger})
		return term.NewStabilityTest(watch), nil
	default:
		return term.Model{}, fmt.Errorf("unknown routine %q", routine)
	}
}

func newSessionModel(routine model.Routine, speaker voice.Speaker, logger *slog.Logger) (term.Model, error) {
	engine, err := session.New(routine, speaker, session.Config{Logger: logger})
	if err != nil {
		return term.Model{}, fmt.Errorf("start %s: %w", routine.Name, err)
	}
	return term.NewSession(engine), nil
}

// openLogOutput keeps logs off the terminal while the UI owns it.
func openLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}

func logFormat(jsonLogs bool) logging.Format {
	if jsonLogs {
		return logging.FormatJSON
	}
	return logging.FormatText
}

package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"

	"blinkrest/internal/logging"
	"blinkrest/internal/platform"
	"blinkrest/internal/storage"
	"blinkrest/internal/ui/preferences"
	"blinkrest/internal/ui/screens"
	"blinkrest/internal/ui/tray"
	"blinkrest/internal/voice"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

func runGUI(jsonLogs, toTray bool) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return nil
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, loadErr := storage.LoadSettings(appName)
	logger := logging.Setup(os.Stderr, settings.LogLevel, logFormat(jsonLogs))
	if loadErr != nil {
		logger.Warn("load settings, using defaults", "error", loadErr)
	}
	settingsPath := ensureSettingsFile(settings, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	speakers := newSpeakerFactory(logger)

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(theme.VisibilityIcon())

	mainWindow := fyneApp.NewWindow(appName)
	mainWindow.Resize(fyne.NewSize(420, 640))
	router := screens.NewRouter(mainWindow, settings, speakers.Build(ctx, settings), logger)
	router.SetInhibitor(platform.NewScreenInhibitor(appName))
	guard.SetOnActivate(func() {
		fyne.Do(router.Reopen)
	})

	var prefsWindow *preferences.Window
	applySettings := func(updated preferences.Settings) {
		previous := settings
		settings = updated
		if err := logging.SetLevel(updated.LogLevel); err != nil {
			logger.Warn("apply log level", "error", err)
		}
		var speaker voice.Speaker
		if voiceChanged(previous, updated) {
			speaker = speakers.Build(ctx, updated)
		}
		router.UpdateSettings(updated, speaker)
		prefsWindow.UpdateSettings(updated)
		if previous.LaunchAtLogin != updated.LaunchAtLogin {
			if err := platform.SyncAutostart(platform.NewService(), loginItem(), updated.LaunchAtLogin); err != nil {
				logger.Warn("update launch at login", "error", err)
			}
		}
		logger.Info("settings applied")
	}

	prefsWindow = preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if err := storage.SaveSettings(appName, updated); err != nil {
			logger.Error("save settings", "error", err)
		}
		applySettings(updated)
	})

	if settingsPath != "" {
		watcher, err := storage.WatchSettingsFile(settingsPath, logger, func(updated preferences.Settings) {
			fyne.Do(func() {
				if updated != settings {
					applySettings(updated)
				}
			})
		})
		if err != nil {
			logger.Warn("settings hot reload disabled", "error", err)
		} else {
			defer watcher.Close()
		}
	}

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnOpen:          router.Reopen,
			OnExercise:      router.Exercise,
			OnPalming:       router.Palming,
			OnStabilityTest: router.StabilityTest,
			OnPreferences:   prefsWindow.Show,
			OnQuit: func() {
				router.Close()
				fyneApp.Quit()
			},
		})
		desktopApp.SetSystemTrayIcon(theme.VisibilityIcon())
		router.SetOnStatus(trayManager.SetStatus)
		mainWindow.SetCloseIntercept(func() {
			router.Close()
			mainWindow.Hide()
		})
		if toTray {
			logger.Info("started in system tray")
		} else {
			router.Home()
		}
	} else {
		logger.Info("system tray unsupported on this platform")
		mainWindow.SetMaster()
		router.Home()
	}

	fyneApp.Run()
	router.Close()
	return nil
}

// ensureSettingsFile writes defaults on first launch so the file can be
// edited and watched. It returns "" when the path cannot be resolved.
func ensureSettingsFile(settings preferences.Settings, logger *slog.Logger) string {
	settingsPath, err := storage.SettingsPath(appName)
	if err != nil {
		logger.Warn("resolve settings path", "error", err)
		return ""
	}
	if _, err := os.Stat(settingsPath); errors.Is(err, os.ErrNotExist) {
		if err := storage.SaveSettingsFile(settingsPath, settings); err != nil {
			logger.Warn("write default settings", "error", err)
			return ""
		}
	}
	return settingsPath
}

// loginItem launches straight to the tray, since a login should not open a window.
func loginItem() platform.LoginItem {
	return platform.LoginItem{
		Name:        appName,
		Description: "Guided blinking and palming exercises for dry eyes",
		Args:        []string{"--" + trayFlag},
	}
}

func voiceChanged(previous, updated preferences.Settings) bool {
	return previous.VoiceEnabled != updated.VoiceEnabled ||
		previous.VoiceName != updated.VoiceName ||
		previous.VoiceModel != updated.VoiceModel
}

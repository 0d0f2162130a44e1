package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"blinkrest/internal/platform"
	"blinkrest/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

const (
	minExerciseMinutes = 1
	maxExerciseMinutes = 30
)

type yamlSettings struct {
	ExerciseMinutes int    `yaml:"exercise_minutes"`
	VoiceEnabled    *bool  `yaml:"voice_enabled"`
	VoiceName       string `yaml:"voice_name"`
	VoiceModel      string `yaml:"voice_model"`
	LogLevel        string `yaml:"log_level"`
	LaunchAtLogin   bool   `yaml:"launch_at_login"`
}

// SettingsPath returns the settings file location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := platform.NewService().GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads user preferences from a specific file.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SaveSettingsFile writes user preferences to a specific file.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	voiceEnabled := settings.VoiceEnabled
	fileData := yamlSettings{
		ExerciseMinutes: int(settings.ExerciseDuration / time.Minute),
		VoiceEnabled:    &voiceEnabled,
		VoiceName:       settings.VoiceName,
		VoiceModel:      settings.VoiceModel,
		LogLevel:        settings.LogLevel,
		LaunchAtLogin:   settings.LaunchAtLogin,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.ExerciseMinutes >= minExerciseMinutes && fileData.ExerciseMinutes <= maxExerciseMinutes {
		settings.ExerciseDuration = time.Duration(fileData.ExerciseMinutes) * time.Minute
	}
	if fileData.VoiceEnabled != nil {
		settings.VoiceEnabled = *fileData.VoiceEnabled
	}
	if fileData.VoiceName != "" {
		settings.VoiceName = fileData.VoiceName
	}
	if fileData.VoiceModel != "" {
		settings.VoiceModel = fileData.VoiceModel
	}
	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}

	settings.LaunchAtLogin = fileData.LaunchAtLogin
}

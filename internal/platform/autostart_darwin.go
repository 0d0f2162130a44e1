//go:build darwin

package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnableAutostart installs a per-user LaunchAgent.
func (service *platformService) EnableAutostart(item LoginItem) error {
	if err := item.validate(); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	plistPath, err := launchAgentPath(item.Name)
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(plistPath), 0o755); err != nil {
		return fmt.Errorf("enable autostart: create LaunchAgents dir: %w", err)
	}
	if err := os.WriteFile(plistPath, []byte(launchAgentPlist(item)), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write plist: %w", err)
	}
	return nil
}

func (service *platformService) DisableAutostart(name string) error {
	plistPath, err := launchAgentPath(name)
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := os.Remove(plistPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove plist: %w", err)
	}
	return nil
}

func launchAgentPath(name string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, "Library", "LaunchAgents", launchAgentLabel(name)+".plist"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

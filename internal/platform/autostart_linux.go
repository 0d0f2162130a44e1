//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnableAutostart writes an XDG autostart entry under the config dir.
func (service *platformService) EnableAutostart(item LoginItem) error {
	if err := item.validate(); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	entryPath, err := service.desktopEntryPath(item.Name)
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(entryPath), 0o755); err != nil {
		return fmt.Errorf("enable autostart: create autostart dir: %w", err)
	}
	if err := os.WriteFile(entryPath, []byte(desktopEntry(item)), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write desktop entry: %w", err)
	}
	return nil
}

func (service *platformService) DisableAutostart(name string) error {
	entryPath, err := service.desktopEntryPath(name)
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := os.Remove(entryPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove desktop entry: %w", err)
	}
	return nil
}

func (service *platformService) desktopEntryPath(name string) (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", loginItemSlug(name)+".desktop"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

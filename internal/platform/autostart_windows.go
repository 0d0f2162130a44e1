//go:build windows

package platform

import (
	"errors"
	"fmt"
	"path/filepath"

	"golang.org/x/sys/windows/registry"
)

const runKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`

// EnableAutostart writes the login command under the per-user Run key.
func (service *platformService) EnableAutostart(item LoginItem) error {
	if err := item.validate(); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	key, _, err := registry.CreateKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("enable autostart: open run key: %w", err)
	}
	defer key.Close()

	if err := key.SetStringValue(item.Name, windowsCommandLine(item)); err != nil {
		return fmt.Errorf("enable autostart: set run value: %w", err)
	}
	return nil
}

// DisableAutostart removes the Run value. A missing key or value is not an error.
func (service *platformService) DisableAutostart(name string) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("disable autostart: open run key: %w", err)
	}
	defer key.Close()

	if err := key.DeleteValue(name); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("disable autostart: delete run value: %w", err)
	}
	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncAutostartTogglesDesktopEntry(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	service := NewService()
	entryPath := filepath.Join(configDir, "autostart", "blinkrest.desktop")

	require.NoError(t, SyncAutostart(service, LoginItem{Name: "BlinkRest", Args: []string{"--tray"}}, true))
	content, err := os.ReadFile(entryPath)
	require.NoError(t, err)
	executable, err := os.Executable()
	require.NoError(t, err)
	assert.Contains(t, string(content), "Exec="+desktopExecArg(executable)+" --tray\n")

	require.NoError(t, SyncAutostart(service, LoginItem{Name: "BlinkRest"}, false))
	_, err = os.Stat(entryPath)
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, SyncAutostart(service, LoginItem{Name: "BlinkRest"}, false))
}

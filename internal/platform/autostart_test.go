package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trayItem(program string) LoginItem {
	return LoginItem{
		Name:        "BlinkRest",
		Description: "Guided blinking",
		Program:     program,
		Args:        []string{"--tray"},
	}
}

func TestDesktopEntryCarriesArgumentsAndDescription(t *testing.T) {
	entry := desktopEntry(trayItem("/opt/Blink Rest/blinkrest"))
	assert.Contains(t, entry, "Name=BlinkRest\n")
	assert.Contains(t, entry, "Comment=Guided blinking\n")
	assert.Contains(t, entry, "Exec=\"/opt/Blink Rest/blinkrest\" --tray\n")
	assert.Contains(t, entry, "X-GNOME-Autostart-enabled=true\n")
}

func TestDesktopExecArgQuoting(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{arg: "/usr/bin/blinkrest", want: "/usr/bin/blinkrest"},
		{arg: "--tray", want: "--tray"},
		{arg: "", want: `""`},
		{arg: "/opt/Blink Rest/blinkrest", want: `"/opt/Blink Rest/blinkrest"`},
		{arg: "100%", want: "100%%"},
		{arg: `/tmp/a"b`, want: `"/tmp/a\\"b"`},
		{arg: `/tmp/a\b`, want: `"/tmp/a\\\\b"`},
		{arg: "/tmp/$HOME", want: `"/tmp/\\$HOME"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, desktopExecArg(tt.arg), "arg %q", tt.arg)
	}
}

func TestLaunchAgentPlistListsEveryArgument(t *testing.T) {
	plist := launchAgentPlist(trayItem("/Applications/Blink & Rest.app/Contents/MacOS/blinkrest"))
	assert.Contains(t, plist, "<string>com.blinkrest.blinkrest</string>")
	assert.Contains(t, plist, "\t\t<string>/Applications/Blink &amp; Rest.app/Contents/MacOS/blinkrest</string>\n\t\t<string>--tray</string>\n\t</array>")
	assert.Contains(t, plist, "<key>RunAtLoad</key>\n\t<true/>")
}

func TestWindowsCommandLineQuoting(t *testing.T) {
	assert.Equal(t, `"C:\Program Files\BlinkRest\blinkrest.exe" --tray`,
		windowsCommandLine(trayItem(`C:\Program Files\BlinkRest\blinkrest.exe`)))
	assert.Equal(t, `"C:\blinkrest.exe"`, windowsCommandLine(LoginItem{Name: "BlinkRest", Program: `"C:\blinkrest.exe"`}))

	tests := []struct {
		arg  string
		want string
	}{
		{arg: "--tray", want: "--tray"},
		{arg: "", want: `""`},
		{arg: "two words", want: `"two words"`},
		{arg: `say "hi"`, want: `"say \"hi\""`},
		{arg: `C:\dir with space\`, want: `"C:\dir with space\\"`},
		{arg: `a\\"b`, want: `"a\\\\\"b"`},
		{arg: `C:\plain\path`, want: `C:\plain\path`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, windowsArg(tt.arg), "arg %q", tt.arg)
	}
}

func TestLoginItemValidation(t *testing.T) {
	require.ErrorIs(t, LoginItem{Program: "/bin/blinkrest"}.validate(), errEmptyName)
	require.ErrorIs(t, LoginItem{Name: "BlinkRest"}.validate(), errEmptyProgram)
	require.NoError(t, trayItem("/bin/blinkrest").validate())
	assert.Equal(t, "blink-rest", loginItemSlug("  Blink  Rest "))
	assert.Equal(t, "blinkrest", loginItemSlug(""))
}

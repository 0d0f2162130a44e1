package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	EnableAutostart(item LoginItem) error
	DisableAutostart(name string) error
}

// LoginItem describes how the OS launches the app when the user logs in.
// Name identifies the entry, so Disable only needs the name.
type LoginItem struct {
	Name        string
	Description string
	Program     string
	Args        []string
}

var (
	errEmptyName    = errors.New("login item name is empty")
	errEmptyProgram = errors.New("login item program is empty")
)

func (item LoginItem) validate() error {
	if strings.TrimSpace(item.Name) == "" {
		return errEmptyName
	}
	if item.Program == "" {
		return errEmptyProgram
	}
	return nil
}

// loginItemSlug turns the item name into a lowercase file-safe identifier.
func loginItemSlug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "blinkrest"
	}
	return strings.Join(strings.Fields(name), "-")
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// SyncAutostart registers or removes the login item so the OS state matches
// the launch-at-login preference. An empty Program means the running executable.
func SyncAutostart(service Service, item LoginItem, enabled bool) error {
	if !enabled {
		if err := service.DisableAutostart(item.Name); err != nil {
			return fmt.Errorf("sync autostart: %w", err)
		}
		return nil
	}
	if item.Program == "" {
		execPath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("sync autostart: resolve executable: %w", err)
		}
		item.Program = execPath
	}
	if err := service.EnableAutostart(item); err != nil {
		return fmt.Errorf("sync autostart: %w", err)
	}
	return nil
}

// desktopEntry renders an XDG autostart entry.
func desktopEntry(item LoginItem) string {
	exec := make([]string, 0, len(item.Args)+1)
	for _, arg := range append([]string{item.Program}, item.Args...) {
		exec = append(exec, desktopExecArg(arg))
	}

	var entry strings.Builder
	entry.WriteString("[Desktop Entry]\n")
	entry.WriteString("Type=Application\n")
	fmt.Fprintf(&entry, "Name=%s\n", desktopValue(item.Name))
	if item.Description != "" {
		fmt.Fprintf(&entry, "Comment=%s\n", desktopValue(item.Description))
	}
	fmt.Fprintf(&entry, "Exec=%s\n", strings.Join(exec, " "))
	entry.WriteString("Terminal=false\n")
	entry.WriteString("StartupNotify=false\n")
	entry.WriteString("X-GNOME-Autostart-enabled=true\n")
	return entry.String()
}

const desktopReserved = " \t\n\"'\\><~|&;$*?#()`"

// desktopExecArg quotes one Exec argument. Quoting escapes are applied first,
// then the string-value rule doubles every backslash.
func desktopExecArg(arg string) string {
	arg = strings.ReplaceAll(arg, "%", "%%")
	if arg != "" && !strings.ContainsAny(arg, desktopReserved) {
		return arg
	}
	quoted := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", "$", `\$`).Replace(arg)
	return `"` + strings.ReplaceAll(quoted, `\`, `\\`) + `"`
}

func desktopValue(value string) string {
	return strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", "", "\t", `\t`).Replace(value)
}

// launchAgentLabel is the reverse-DNS label of the LaunchAgent.
func launchAgentLabel(name string) string {
	return "com.blinkrest." + loginItemSlug(name)
}

// launchAgentPlist renders a LaunchAgent that runs once per GUI login.
func launchAgentPlist(item LoginItem) string {
	var plist strings.Builder
	plist.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
`)
	fmt.Fprintf(&plist, "\t<key>Label</key>\n\t<string>%s</string>\n", xmlEscape(launchAgentLabel(item.Name)))
	plist.WriteString("\t<key>ProgramArguments</key>\n\t<array>\n")
	for _, arg := range append([]string{item.Program}, item.Args...) {
		fmt.Fprintf(&plist, "\t\t<string>%s</string>\n", xmlEscape(arg))
	}
	plist.WriteString("\t</array>\n")
	plist.WriteString("\t<key>RunAtLoad</key>\n\t<true/>\n")
	plist.WriteString("\t<key>ProcessType</key>\n\t<string>Interactive</string>\n")
	plist.WriteString("\t<key>LimitLoadToSessionType</key>\n\t<string>Aqua</string>\n")
	plist.WriteString("</dict>\n</plist>\n")
	return plist.String()
}

func xmlEscape(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(value)
}

// windowsCommandLine renders the Run key value. The program is always quoted
// and arguments follow the CommandLineToArgvW rules.
func windowsCommandLine(item LoginItem) string {
	parts := []string{`"` + strings.Trim(item.Program, `"`) + `"`}
	for _, arg := range item.Args {
		parts = append(parts, windowsArg(arg))
	}
	return strings.Join(parts, " ")
}

func windowsArg(arg string) string {
	if arg == "" {
		return `""`
	}
	if !strings.ContainsAny(arg, " \t\"") {
		return arg
	}

	var quoted strings.Builder
	quoted.WriteByte('"')
	slashes := 0
	for _, r := range arg {
		switch r {
		case '\\':
			slashes++
			continue
		case '"':
			quoted.WriteString(strings.Repeat(`\`, 2*slashes+1))
		default:
			quoted.WriteString(strings.Repeat(`\`, slashes))
		}
		slashes = 0
		quoted.WriteRune(r)
	}
	quoted.WriteString(strings.Repeat(`\`, 2*slashes))
	quoted.WriteByte('"')
	return quoted.String()
}

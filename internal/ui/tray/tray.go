package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "BlinkRest"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnOpen          func()
	OnExercise      func()
	OnPalming       func()
	OnStabilityTest func()
	OnPreferences   func()
	OnQuit          func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	callbacks   Callbacks
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: idle", nil)
	manager.statusItem.Disabled = true
	manager.refreshMenu()

	return manager
}

// SetStatus updates the status label. Must be called on the UI thread.
func (manager *Manager) SetStatus(status string) {
	if status == manager.statusLabel {
		return
	}
	manager.statusLabel = status
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

// Status returns the current status label.
func (manager *Manager) Status() string {
	return manager.statusLabel
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(manager.menu())
}

func (manager *Manager) menu() *fyne.Menu {
	return fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.item("Open BlinkRest", manager.callbacks.OnOpen),
		manager.item("Blinking exercise", manager.callbacks.OnExercise),
		manager.item("Palming", manager.callbacks.OnPalming),
		manager.item("Stability test", manager.callbacks.OnStabilityTest),
		fyne.NewMenuItemSeparator(),
		manager.item("Preferences", manager.callbacks.OnPreferences),
		manager.item("Quit", manager.callbacks.OnQuit),
	)
}

func (manager *Manager) item(label string, handler func()) *fyne.MenuItem {
	item := fyne.NewMenuItem(label, func() {
		if handler != nil {
			handler()
		}
	})
	item.Disabled = handler == nil
	return item
}

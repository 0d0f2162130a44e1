//go:build linux

package platform

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	screenSaverService   = "org.freedesktop.ScreenSaver"
	screenSaverPath      = "/org/freedesktop/ScreenSaver"
	screenSaverInterface = "org.freedesktop.ScreenSaver"
)

type dbusInhibitor struct {
	appName string
}

func newScreenInhibitor(appName string) ScreenInhibitor {
	return &dbusInhibitor{appName: appName}
}

func (inhibitor *dbusInhibitor) Inhibit(reason string) (func(), error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return func() {}, fmt.Errorf("inhibit screensaver: connect session bus: %w", err)
	}

	var cookie uint32
	object := conn.Object(screenSaverService, dbus.ObjectPath(screenSaverPath))
	if err := object.Call(screenSaverInterface+".Inhibit", 0, inhibitor.appName, reason).Store(&cookie); err != nil {
		_ = conn.Close()
		return func() {}, fmt.Errorf("inhibit screensaver: %w", err)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			_ = object.Call(screenSaverInterface+".UnInhibit", 0, cookie).Err
			_ = conn.Close()
		})
	}, nil
}

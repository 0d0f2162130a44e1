package storage

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"blinkrest/internal/ui/preferences"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads the settings file whenever it changes on disk.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(preferences.Settings)
	load     func(string) (preferences.Settings, error)
	logger   *slog.Logger
	done     chan struct{}
	stopped  chan struct{}
	once     sync.Once
}

// WatchSettingsFile starts watching configPath. onChange receives every
// successfully parsed version of the file.
func WatchSettingsFile(configPath string, logger *slog.Logger, onChange func(preferences.Settings)) (*Watcher, error) {
	return watchSettingsFile(configPath, logger, onChange, LoadSettingsFile)
}

func watchSettingsFile(configPath string, logger *slog.Logger, onChange func(preferences.Settings), load func(string) (preferences.Settings, error)) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create settings watcher: %w", err)
	}
	// Editors replace files atomically, so the directory is watched instead of the file.
	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch settings directory: %w", err)
	}

	settingsWatcher := &Watcher{
		path:     configPath,
		watcher:  watcher,
		onChange: onChange,
		load:     load,
		logger:   logger.With("component", "settings"),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go settingsWatcher.loop()
	return settingsWatcher, nil
}

// Close stops watching. Once it returns, onChange is not called again.
// It must not be called from onChange.
func (settingsWatcher *Watcher) Close() error {
	var err error
	settingsWatcher.once.Do(func() {
		close(settingsWatcher.done)
		<-settingsWatcher.stopped
		err = settingsWatcher.watcher.Close()
	})
	return err
}

func (settingsWatcher *Watcher) loop() {
	defer close(settingsWatcher.stopped)

	debounce := time.NewTimer(reloadDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-settingsWatcher.done:
			return
		case event, ok := <-settingsWatcher.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(settingsWatcher.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			debounce.Reset(reloadDebounce)
		case <-debounce.C:
			settingsWatcher.reload()
		case err, ok := <-settingsWatcher.watcher.Errors:
			if !ok {
				return
			}
			settingsWatcher.logger.Warn("settings watcher error", "error", err)
		}
	}
}

func (settingsWatcher *Watcher) reload() {
	settings, err := settingsWatcher.load(settingsWatcher.path)
	if err != nil {
		settingsWatcher.logger.Warn("settings reload failed", "error", err)
		return
	}
	if settingsWatcher.closed() {
		return
	}
	settingsWatcher.logger.Info("settings reloaded", "path", settingsWatcher.path)
	settingsWatcher.onChange(settings)
}

func (settingsWatcher *Watcher) closed() bool {
	select {
	case <-settingsWatcher.done:
		return true
	default:
		return false
	}
}

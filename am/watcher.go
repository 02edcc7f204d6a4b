package am

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/xcore/errors"
	"github.com/teranos/xcore/logger"
)

// ConfigWatcher watches the config file and any further files for changes.
// Bursts of events are debounced; once quiet, a changed config file is
// reloaded and reload callbacks run, and change callbacks run for every
// other changed file.
type ConfigWatcher struct {
	configPath      string
	watcher         *fsnotify.Watcher
	callbacks       []ReloadCallback
	changeCallbacks []ChangeCallback
	mu              sync.RWMutex
	debounceTimer   *time.Timer
	debouncePeriod  time.Duration
	pending         map[string]bool
	ownWriteUntil   time.Time // Config events before this instant are our own writes
	isOwnWriteMutex sync.Mutex
	log             *zap.SugaredLogger
	started         bool
	done            chan struct{}
}

// ReloadCallback is called when config is reloaded
// Receives the new config and returns any error
type ReloadCallback func(*Config) error

// ChangeCallback is called with the path of a changed watched file
type ChangeCallback func(path string) error

// globalWatcher holds the singleton config watcher instance
var (
	globalWatcher   *ConfigWatcher
	globalWatcherMu sync.Mutex
)

// NewConfigWatcher creates a watcher for configPath. An empty configPath
// watches nothing until Watch is called. A negative debounce is treated as 0.
func NewConfigWatcher(configPath string, debounce time.Duration, log *zap.SugaredLogger) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if debounce < 0 {
		debounce = 0
	}

	cw := &ConfigWatcher{
		watcher:        watcher,
		debouncePeriod: debounce,
		pending:        make(map[string]bool),
		log:            logger.OrNop(log),
		done:           make(chan struct{}),
	}
	if configPath != "" {
		if err := cw.Watch(configPath); err != nil {
			watcher.Close()
			return nil, err
		}
		cw.configPath = filepath.Clean(configPath)
	}
	return cw, nil
}

// Watch adds path to the watched files
func (cw *ConfigWatcher) Watch(path string) error {
	if err := cw.watcher.Add(path); err != nil {
		return errors.Wrapf(err, "failed to watch %s", path)
	}
	return nil
}

// OnReload registers a callback to be called when config is reloaded
func (cw *ConfigWatcher) OnReload(callback ReloadCallback) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.callbacks = append(cw.callbacks, callback)
}

// OnChange registers a callback to be called when a watched file other
// than the config file changes
func (cw *ConfigWatcher) OnChange(callback ChangeCallback) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.changeCallbacks = append(cw.changeCallbacks, callback)
}

// ownWriteWindow covers the truncate and write events of a single save
const ownWriteWindow = 250 * time.Millisecond

// MarkOwnWrite marks the writes of the next moment as coming from us (prevents reload loops)
func (cw *ConfigWatcher) MarkOwnWrite() {
	cw.isOwnWriteMutex.Lock()
	defer cw.isOwnWriteMutex.Unlock()
	cw.ownWriteUntil = time.Now().Add(ownWriteWindow)
}

// checkOwnWrite reports whether a config event falls in the own-write window
func (cw *ConfigWatcher) checkOwnWrite() bool {
	cw.isOwnWriteMutex.Lock()
	defer cw.isOwnWriteMutex.Unlock()
	return time.Now().Before(cw.ownWriteUntil)
}

// Start begins watching for file changes
func (cw *ConfigWatcher) Start() {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.started {
		return
	}
	cw.started = true
	go cw.watchLoop()
}

// watchLoop monitors file system events
func (cw *ConfigWatcher) watchLoop() {
	defer close(cw.done)
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}

			// Only react to Write or Create events
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if isBackupFile(event.Name) {
				continue
			}

			path := filepath.Clean(event.Name)
			if path == cw.configPath && cw.checkOwnWrite() {
				cw.log.Debugw("Config watcher ignoring own write", logger.FieldFile, event.Name)
				continue
			}

			cw.log.Debugw("Watcher detected change",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			cw.scheduleReload(path)

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.log.Warnw("Config watcher error", logger.FieldError, err)
		}
	}
}

// scheduleReload debounces rapid file changes and triggers callbacks
func (cw *ConfigWatcher) scheduleReload(path string) {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	cw.pending[path] = true
	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}
	cw.debounceTimer = time.AfterFunc(cw.debouncePeriod, cw.flush)
}

// flush runs the callbacks for every path changed since the last flush
func (cw *ConfigWatcher) flush() {
	cw.mu.Lock()
	pending := cw.pending
	cw.pending = make(map[string]bool)
	callbacks := append([]ReloadCallback(nil), cw.callbacks...)
	changeCallbacks := append([]ChangeCallback(nil), cw.changeCallbacks...)
	cw.mu.Unlock()

	for path := range pending {
		if path == cw.configPath {
			if err := cw.reload(callbacks); err != nil {
				cw.log.Errorw("Config reload failed", logger.FieldError, err)
			}
			continue
		}
		for _, callback := range changeCallbacks {
			if err := callback(path); err != nil {
				cw.log.Warnw("Change callback error", logger.FieldFile, path, logger.FieldError, err)
			}
		}
	}
}

// reload reloads the configuration and calls the reload callbacks
func (cw *ConfigWatcher) reload(callbacks []ReloadCallback) error {
	// Reset global config to force reload
	Reset()

	newConfig, err := Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := newConfig.Validate(); err != nil {
		return errors.Wrap(err, "reloaded config is invalid")
	}

	cw.log.Infow("Config reloaded successfully", logger.FieldPath, cw.configPath)

	for _, callback := range callbacks {
		if err := callback(newConfig); err != nil {
			// Continue calling other callbacks even if one fails
			cw.log.Warnw("Config reload callback error", logger.FieldError, err)
		}
	}
	return nil
}

// Stop stops watching and waits for the event loop to exit
func (cw *ConfigWatcher) Stop() error {
	cw.mu.Lock()
	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}
	started := cw.started
	cw.mu.Unlock()

	err := cw.watcher.Close()
	if started {
		<-cw.done
	}
	return err
}

// isBackupFile checks if the file is a config backup (.back1, .back2, .back3)
func isBackupFile(path string) bool {
	switch filepath.Ext(path) {
	case ".back1", ".back2", ".back3":
		return true
	}
	return false
}

// SetGlobalWatcher sets the global watcher instance (used to prevent reload loops)
func SetGlobalWatcher(watcher *ConfigWatcher) {
	globalWatcherMu.Lock()
	defer globalWatcherMu.Unlock()
	globalWatcher = watcher
}

// GetGlobalWatcher returns the global watcher instance
func GetGlobalWatcher() *ConfigWatcher {
	globalWatcherMu.Lock()
	defer globalWatcherMu.Unlock()
	return globalWatcher
}

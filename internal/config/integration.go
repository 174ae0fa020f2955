package config

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/keytrie/internal/config/loader"
	"github.com/dshills/keytrie/internal/config/watcher"
	"github.com/dshills/keytrie/internal/input/command"
	"github.com/dshills/keytrie/internal/input/keymap"
	"github.com/dshills/keytrie/internal/logging"
)

// System ties a KeymapManager to a file watcher so configuration edits
// are republished while the program runs.
//
// System is safe for concurrent use.
type System struct {
	mu      sync.RWMutex
	keymaps *KeymapManager
	watcher *watcher.Watcher
	logger  *logging.Logger
	closed  atomic.Bool

	loadTime time.Duration
}

// SystemOption configures a System instance.
type SystemOption func(*systemOptions)

type systemOptions struct {
	enableWatcher bool
	debounce      time.Duration
	logger        *logging.Logger
	fs            loader.FileSystem
}

// WithSystemWatcher enables or disables file watching.
func WithSystemWatcher(enable bool) SystemOption {
	return func(o *systemOptions) {
		o.enableWatcher = enable
	}
}

// WithSystemDebounce sets the watcher's quiet period.
func WithSystemDebounce(d time.Duration) SystemOption {
	return func(o *systemOptions) {
		o.debounce = d
	}
}

// WithSystemLogger sets the logger used by the system and its parts.
func WithSystemLogger(l *logging.Logger) SystemOption {
	return func(o *systemOptions) {
		o.logger = l
	}
}

// WithSystemFileSystem sets the file system configuration is read from.
func WithSystemFileSystem(fs loader.FileSystem) SystemOption {
	return func(o *systemOptions) {
		o.fs = fs
	}
}

// NewSystem loads the configuration at path and, unless disabled,
// prepares a watcher for it. A configuration that fails to load is not
// fatal: the built-in keymaps stay published and Health reports the
// error.
func NewSystem(ctx context.Context, cat *command.Catalog, path string, opts ...SystemOption) (*System, error) {
	options := &systemOptions{
		enableWatcher: true,
		debounce:      100 * time.Millisecond,
		logger:        logging.Default(),
		fs:            loader.DefaultFS(),
	}
	for _, opt := range opts {
		opt(options)
	}

	s := &System{
		keymaps: NewKeymapManager(cat, path,
			WithFileSystem(options.fs),
			WithLogger(options.logger.WithComponent("config")),
		),
		logger: options.logger.WithComponent("config"),
	}

	start := time.Now()
	_, _ = s.keymaps.Reload(ctx)
	s.loadTime = time.Since(start)

	if options.enableWatcher && path != "" {
		w, err := watcher.New(
			watcher.WithDebounce(options.debounce),
			watcher.WithLogger(options.logger.WithComponent("watcher")),
		)
		if err != nil {
			return nil, err
		}
		s.watcher = w
		w.OnChange(func(ev watcher.Event) {
			s.logger.Debug("config changed", "path", ev.Path, "op", ev.Op)
			_ = s.Reload(context.Background())
		})
		if err := s.watchConfigFiles(); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	return s, nil
}

// watchConfigFiles adds the config file and its scripts to the watcher.
func (s *System) watchConfigFiles() error {
	if s.watcher == nil {
		return nil
	}
	paths := append([]string{s.keymaps.Path()}, s.keymaps.Config().Scripts...)
	for _, p := range paths {
		if err := s.watcher.Watch(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
	}
	return nil
}

// Run delivers file changes until ctx is done. Without a watcher it just
// waits.
func (s *System) Run(ctx context.Context) error {
	if s.closed.Load() {
		return ErrSystemClosed
	}
	if s.watcher != nil {
		s.watcher.Start()
		defer s.watcher.Stop()
	}
	<-ctx.Done()
	return nil
}

// Reload rebuilds and republishes the keymaps.
// Returns ErrSystemClosed if the system has been closed.
func (s *System) Reload(ctx context.Context) error {
	if s.closed.Load() {
		return ErrSystemClosed
	}

	start := time.Now()
	if _, err := s.keymaps.Reload(ctx); err != nil {
		return fmt.Errorf("reloading configuration: %w", err)
	}

	s.mu.Lock()
	s.loadTime = time.Since(start)
	s.mu.Unlock()

	if err := s.watchConfigFiles(); err != nil {
		s.logger.Warn("cannot watch config files", "err", err)
	}
	return nil
}

// Close shuts down the system and releases resources.
// It is safe to call Close multiple times.
func (s *System) Close() {
	if s.closed.Swap(true) {
		return
	}
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
}

// Keymaps returns the keymap manager.
func (s *System) Keymaps() *KeymapManager {
	return s.keymaps
}

// Store returns the keymap store.
func (s *System) Store() *keymap.Store {
	return s.keymaps.Store()
}

// Config returns the last configuration that loaded successfully.
func (s *System) Config() *Config {
	return s.keymaps.Config()
}

// Health reports the state of the last reload.
func (s *System) Health() SystemHealth {
	s.mu.RLock()
	loadTime := s.loadTime
	s.mu.RUnlock()

	err := s.keymaps.LastError()
	status := HealthOK
	if err != nil {
		status = HealthDegraded
	}

	return SystemHealth{
		Status:       status,
		LoadTime:     loadTime,
		LastReloadAt: s.keymaps.LastReloadAt(),
		LastError:    err,
		SnapshotID:   s.Store().Load().ID,
	}
}

// SystemHealth represents the health status of the configuration system.
type SystemHealth struct {
	// Status is the overall health status.
	Status HealthStatus

	// LoadTime is the duration of the last configuration load.
	LoadTime time.Duration

	// LastReloadAt is the time of the last configuration reload.
	LastReloadAt time.Time

	// LastError is the error of the last reload, if it failed.
	LastError error

	// SnapshotID identifies the keymaps currently published.
	SnapshotID uuid.UUID
}

// HealthStatus represents the health status of a component.
type HealthStatus int

const (
	// HealthOK indicates the system is healthy.
	HealthOK HealthStatus = iota
	// HealthDegraded indicates the last reload failed and older keymaps
	// are still in use.
	HealthDegraded
)

// String returns a human-readable status string.
func (s HealthStatus) String() string {
	switch s {
	case HealthOK:
		return "ok"
	case HealthDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

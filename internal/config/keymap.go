package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/keytrie/internal/config/loader"
	"github.com/dshills/keytrie/internal/input/command"
	"github.com/dshills/keytrie/internal/input/keymap"
	"github.com/dshills/keytrie/internal/input/mode"
	"github.com/dshills/keytrie/internal/logging"
	"github.com/dshills/keytrie/internal/plugin/lua"
)

// Reserved entries of a key table.
const (
	groupNameKey   = "@name"
	groupStickyKey = "@sticky"
)

// BuildOverlays turns per-mode key tables into overlay groups. Command
// names are resolved in cat.
func BuildOverlays(keys map[mode.Mode]*loader.Tree, cat *command.Catalog) (keymap.Maps, error) {
	maps := make(keymap.Maps, len(keys))
	for m, table := range keys {
		entries, err := buildEntries(table, cat, "keys."+m.String())
		if err != nil {
			return nil, err
		}
		root, err := keymap.BuildOverlay(entries...)
		if err != nil {
			return nil, fmt.Errorf("keys.%s: %w", m, err)
		}
		maps[m] = root
	}
	return maps, nil
}

func buildEntries(t *loader.Tree, cat *command.Catalog, path string) ([]keymap.Entry, error) {
	entries := make([]keymap.Entry, 0, t.Len())
	for _, k := range t.Keys() {
		if k == groupNameKey || k == groupStickyKey {
			continue
		}
		v, _ := t.Get(k)
		p := path + "." + k

		switch v := v.(type) {
		case string:
			ref, err := cat.Lookup(v)
			if err != nil {
				return nil, settingErr(p, err)
			}
			entries = append(entries, keymap.BindKeys(ref, k))

		case *loader.Tree:
			children, err := buildEntries(v, cat, p)
			if err != nil {
				return nil, err
			}
			name, hasName := v.Get(groupNameKey)
			sticky, hasSticky := v.Get(groupStickyKey)
			if !hasName && !hasSticky {
				entries = append(entries, keymap.NestKeys([]string{k}, children...))
				continue
			}

			var (
				groupName   string
				groupSticky bool
			)
			if hasName {
				if groupName, err = asString(p+"."+groupNameKey, name); err != nil {
					return nil, err
				}
			}
			if hasSticky {
				if groupSticky, err = asBool(p+"."+groupStickyKey, sticky); err != nil {
					return nil, err
				}
			}
			entries = append(entries, keymap.SubKeys(groupName, groupSticky, []string{k}, children...))

		default:
			return nil, invalid(p, "want command name or table, got %T", v)
		}
	}
	return entries, nil
}

// KeymapManager builds keymap snapshots from the defaults, the
// configuration file and its overlay scripts, and publishes them to a
// keymap.Store.
type KeymapManager struct {
	mu sync.Mutex

	catalog *command.Catalog
	store   *keymap.Store
	path    string
	fs      loader.FileSystem
	logger  *logging.Logger

	config     *Config
	lastErr    error
	lastReload time.Time
}

// KeymapOption configures a KeymapManager.
type KeymapOption func(*KeymapManager)

// WithFileSystem sets the file system configuration is read from.
// Lua scripts are always read from the OS file system.
func WithFileSystem(fs loader.FileSystem) KeymapOption {
	return func(m *KeymapManager) {
		m.fs = fs
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) KeymapOption {
	return func(m *KeymapManager) {
		m.logger = l
	}
}

// NewKeymapManager creates a manager whose store starts with the
// built-in defaults. Call Reload to apply the file at path.
func NewKeymapManager(cat *command.Catalog, path string, opts ...KeymapOption) *KeymapManager {
	m := &KeymapManager{
		catalog: cat,
		path:    path,
		fs:      loader.DefaultFS(),
		logger:  logging.Default().WithComponent("config"),
		config:  Default(),
	}
	for _, opt := range opts {
		opt(m)
	}

	store, err := keymap.NewStore(keymap.DefaultMaps(cat))
	if err != nil {
		// Default roots are never nil
		panic(err)
	}
	m.store = store
	return m
}

// Store returns the store snapshots are published to.
func (m *KeymapManager) Store() *keymap.Store {
	return m.store
}

// Path returns the configuration file path.
func (m *KeymapManager) Path() string {
	return m.path
}

// Config returns the last configuration that loaded successfully.
func (m *KeymapManager) Config() *Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}

// LastError returns the error of the most recent reload, or nil.
func (m *KeymapManager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// LastReloadAt returns when Reload last ran.
func (m *KeymapManager) LastReloadAt() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastReload
}

// Reload loads the configuration, builds fresh maps and publishes them.
// On failure the current snapshot stays in place and the error is
// logged and returned.
func (m *KeymapManager) Reload(ctx context.Context) (*keymap.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastReload = time.Now()
	snap, cfg, err := m.reload(ctx)
	m.lastErr = err
	if err != nil {
		m.logger.Error("keymap reload failed, keeping last good keymaps",
			"path", m.path, "snapshot", m.store.Load().ID, "err", err)
		return nil, err
	}

	m.config = cfg
	m.logger.Info("keymaps published", "snapshot", snap.ID, "modes", len(snap.Maps), "scripts", len(cfg.Scripts))
	return snap, nil
}

func (m *KeymapManager) reload(ctx context.Context) (*keymap.Snapshot, *Config, error) {
	cfg, err := LoadFS(m.fs, m.path)
	if err != nil {
		return nil, nil, err
	}
	maps, err := m.Build(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	snap, err := m.store.Publish(maps)
	if err != nil {
		return nil, nil, err
	}
	return snap, cfg, nil
}

// Build returns the defaults with cfg's key tables and then each of its
// scripts merged on top. Nothing is published.
func (m *KeymapManager) Build(ctx context.Context, cfg *Config) (keymap.Maps, error) {
	overlays, err := BuildOverlays(cfg.Keys, m.catalog)
	if err != nil {
		return nil, err
	}
	maps := keymap.MergeMaps(keymap.DefaultMaps(m.catalog), overlays)

	for _, script := range cfg.Scripts {
		overlays, err := lua.LoadOverlay(ctx, script, m.catalog)
		if err != nil {
			return nil, fmt.Errorf("script %s: %w", script, err)
		}
		maps = keymap.MergeMaps(maps, overlays)
	}
	return maps, nil
}

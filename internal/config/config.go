package config

import (
	"fmt"
	"path/filepath"

	"github.com/dshills/keytrie/internal/config/loader"
	"github.com/dshills/keytrie/internal/input/mode"
	"github.com/dshills/keytrie/internal/logging"
)

// Config is a parsed keytrie configuration.
type Config struct {
	Editor EditorConfig
	Log    LogConfig

	// Keys holds the raw overlay table of each mode, in file order.
	Keys map[mode.Mode]*loader.Tree

	// Scripts are Lua overlay scripts, applied after Keys in order.
	// Relative paths are resolved against the config file's directory.
	Scripts []string

	// Path is the file the configuration was loaded from, if any.
	Path string
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{DefaultMode: mode.Normal},
		Log:    LogConfig{Level: logging.LevelInfo},
		Keys:   make(map[mode.Mode]*loader.Tree),
	}
}

// Load reads the configuration at path from the OS file system.
func Load(path string) (*Config, error) {
	return LoadFS(loader.DefaultFS(), path)
}

// LoadFS reads the configuration at path, following @include directives
// and applying KEYTRIE_ environment overrides. A missing file yields the
// defaults plus environment overrides. An empty path skips the file.
func LoadFS(fsys loader.FileSystem, path string) (*Config, error) {
	var tree *loader.Tree
	if path != "" {
		t, err := loader.LoadWithIncludes(fsys, path, loader.DefaultIncludeDepth)
		if err != nil {
			return nil, err
		}
		tree = t
	}

	env, err := loader.NewEnvLoader(loader.EnvPrefix).Load()
	if err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	tree = loader.DeepMerge(tree, env)

	cfg, err := FromTree(tree)
	if err != nil {
		if path != "" {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, err
	}

	cfg.Path = path
	if path != "" {
		dir := filepath.Dir(path)
		for i, s := range cfg.Scripts {
			if !filepath.IsAbs(s) {
				cfg.Scripts[i] = filepath.Join(dir, s)
			}
		}
	}
	return cfg, nil
}

// FromTree builds a Config from a loaded tree, starting from Default.
func FromTree(t *loader.Tree) (*Config, error) {
	cfg := Default()

	for _, k := range t.Keys() {
		v, _ := t.Get(k)
		switch k {
		case "editor":
			sec, ok := v.(*loader.Tree)
			if !ok {
				return nil, invalid(k, "want table, got %T", v)
			}
			if err := parseEditor(sec, &cfg.Editor); err != nil {
				return nil, err
			}
		case "log":
			sec, ok := v.(*loader.Tree)
			if !ok {
				return nil, invalid(k, "want table, got %T", v)
			}
			if err := parseLog(sec, &cfg.Log); err != nil {
				return nil, err
			}
		case "keys":
			sec, ok := v.(*loader.Tree)
			if !ok {
				return nil, invalid(k, "want table, got %T", v)
			}
			if err := parseKeys(sec, cfg.Keys); err != nil {
				return nil, err
			}
		case "scripts":
			scripts, err := asStrings(k, v)
			if err != nil {
				return nil, err
			}
			cfg.Scripts = scripts
		default:
			return nil, settingErr(k, ErrUnknownSetting)
		}
	}

	return cfg, nil
}

func parseKeys(t *loader.Tree, keys map[mode.Mode]*loader.Tree) error {
	for _, name := range t.Keys() {
		path := "keys." + name
		m, err := mode.Parse(name)
		if err != nil {
			return settingErr(path, err)
		}
		v, _ := t.Get(name)
		table, ok := v.(*loader.Tree)
		if !ok {
			return invalid(path, "want table, got %T", v)
		}
		keys[m] = table
	}
	return nil
}

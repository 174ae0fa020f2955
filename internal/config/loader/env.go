package loader

import (
	"os"
	"strings"
)

// EnvPrefix is the prefix of keytrie environment variables.
const EnvPrefix = "KEYTRIE_"

// EnvLoader loads configuration from environment variables. Values are
// kept as strings; the config package converts them.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "KEYTRIE_")
	mapping map[string]string // Env var -> config path
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "KEYTRIE_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
	}
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
	}
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":    "log.level",
		prefix + "LOG_FILE":     "log.file",
		prefix + "LOG_JSON":     "log.json",
		prefix + "DEFAULT_MODE": "editor.default_mode",
		// Names the config file itself; not a setting
		prefix + "CONFIG": "",
	}
}

// Load reads environment variables and returns a configuration tree.
// Only variables with the loader's prefix are considered; keys tables
// cannot be set from the environment.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (*Tree, error) {
	config := NewTree()

	for _, env := range os.Environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" || strings.HasPrefix(path, "keys.") {
			continue
		}
		config.SetPath(path, value)
	}

	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// RemoveMapping removes an environment variable mapping.
func (l *EnvLoader) RemoveMapping(envVar string) {
	delete(l.mapping, envVar)
}

// envToPath converts KEYTRIE_EDITOR_DEFAULT_MODE to editor.default_mode.
// The first segment names the section; the rest form the setting name.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	if name == "" {
		return ""
	}
	section, setting, ok := strings.Cut(name, "_")
	if !ok {
		return section
	}
	return section + "." + setting
}

package config

import (
	"strings"

	"github.com/dshills/keytrie/internal/config/loader"
	"github.com/dshills/keytrie/internal/input/mode"
	"github.com/dshills/keytrie/internal/logging"
)

// EditorConfig holds editor settings.
type EditorConfig struct {
	// DefaultMode is the mode the input handler starts in.
	DefaultMode mode.Mode
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level logging.Level
	// File receives log output instead of stderr when set.
	File string
	JSON bool
}

// LoggingConfig converts the section into a logging.Config.
func (c LogConfig) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Level
	cfg.JSON = c.JSON
	return cfg
}

func parseEditor(t *loader.Tree, ec *EditorConfig) error {
	for _, k := range t.Keys() {
		v, _ := t.Get(k)
		path := "editor." + k
		switch k {
		case "default_mode":
			s, err := asString(path, v)
			if err != nil {
				return err
			}
			m, err := mode.Parse(s)
			if err != nil {
				return settingErr(path, err)
			}
			ec.DefaultMode = m
		default:
			return settingErr(path, ErrUnknownSetting)
		}
	}
	return nil
}

func parseLog(t *loader.Tree, lc *LogConfig) error {
	for _, k := range t.Keys() {
		v, _ := t.Get(k)
		path := "log." + k
		switch k {
		case "level":
			s, err := asString(path, v)
			if err != nil {
				return err
			}
			switch strings.ToLower(strings.TrimSpace(s)) {
			case "debug", "info", "warn", "warning", "error":
				lc.Level = logging.ParseLevel(s)
			default:
				return invalid(path, "unknown level %q", s)
			}
		case "file":
			s, err := asString(path, v)
			if err != nil {
				return err
			}
			lc.File = s
		case "json":
			b, err := asBool(path, v)
			if err != nil {
				return err
			}
			lc.JSON = b
		default:
			return settingErr(path, ErrUnknownSetting)
		}
	}
	return nil
}

func asString(path string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", invalid(path, "want string, got %T", v)
	}
	return s, nil
}

// asBool accepts a boolean or its spelling, as environment values
// arrive as strings.
func asBool(path string, v any) (bool, error) {
	switch v := v.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(v) {
		case "true", "yes", "on", "1":
			return true, nil
		case "false", "no", "off", "0", "":
			return false, nil
		}
	}
	return false, invalid(path, "want bool, got %v", v)
}

func asStrings(path string, v any) ([]string, error) {
	switch v := v.(type) {
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, invalid(path, "want strings, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, invalid(path, "want string list, got %T", v)
	}
}

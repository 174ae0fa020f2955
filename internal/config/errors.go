package config

import (
	"errors"
	"fmt"

	"github.com/dshills/keytrie/internal/input/command"
	"github.com/dshills/keytrie/internal/input/mode"
)

// Errors returned by configuration operations.
var (
	// ErrUnknownMode indicates a keys table for a mode that doesn't exist.
	ErrUnknownMode = mode.ErrUnknownMode

	// ErrUnknownCommand indicates a binding to a command not in the catalog.
	ErrUnknownCommand = command.ErrUnknownCommand

	// ErrUnknownSetting indicates a setting path keytrie doesn't define.
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrInvalidValue indicates a setting with the wrong type or value.
	ErrInvalidValue = errors.New("invalid value")

	// ErrSystemClosed is returned when operations are attempted on a closed System.
	ErrSystemClosed = errors.New("config system is closed")
)

// SettingError describes a problem with one setting.
type SettingError struct {
	// Path is the dotted setting path, e.g. "keys.normal.g.a".
	Path string
	Err  error
}

func (e *SettingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *SettingError) Unwrap() error {
	return e.Err
}

func settingErr(path string, err error) error {
	return &SettingError{Path: path, Err: err}
}

func invalid(path, format string, args ...any) error {
	return settingErr(path, fmt.Errorf("%w: "+format, append([]any{ErrInvalidValue}, args...)...))
}

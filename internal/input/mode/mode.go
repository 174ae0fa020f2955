package mode

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned when a mode name is not recognized.
var ErrUnknownMode = errors.New("unknown mode")

// Mode identifies a resolver context with its own keymap.
type Mode uint8

// Editor modes.
const (
	Normal Mode = iota
	Select
	Insert
)

// All lists every mode in declaration order.
var All = []Mode{Normal, Select, Insert}

// String returns the lowercase mode name used in configuration.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Select:
		return "select"
	case Insert:
		return "insert"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// DisplayName returns the name shown in the status line.
func (m Mode) DisplayName() string {
	switch m {
	case Normal:
		return "NOR"
	case Select:
		return "SEL"
	case Insert:
		return "INS"
	default:
		return "???"
	}
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return m <= Insert
}

// Parse returns the mode for a configuration name (case-insensitive).
func Parse(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "normal":
		return Normal, nil
	case "select":
		return Select, nil
	case "insert":
		return Insert, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

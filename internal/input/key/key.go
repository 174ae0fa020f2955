package key

import (
	"fmt"
	"strconv"
	"strings"
)

// Key represents a keyboard key.
// For character keys, use KeyRune and set the Rune field in Event.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Special keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyNull

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// KeyRune is used for character keys (letters, digits, punctuation, space).
	// The actual character is stored in Event.Rune.
	KeyRune
)

// keyNames holds the canonical notation for each named key. The same
// spelling is accepted by Parse and produced by Event.String.
var keyNames = map[Key]string{
	KeyEscape:    "esc",
	KeyEnter:     "ret",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "del",
	KeyInsert:    "ins",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pageup",
	KeyPageDown:  "pagedown",
	KeyNull:      "null",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
}

// String returns the canonical notation for the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	switch {
	case k.IsFunctionKey():
		return fmt.Sprintf("F%d", int(k-KeyF1)+1)
	case k == KeyRune:
		return "rune"
	case k == KeyNone:
		return "none"
	default:
		return fmt.Sprintf("Key(%d)", k)
	}
}

// IsSpecial returns true if this is a named (non-character) key.
func (k Key) IsSpecial() bool {
	return k != KeyNone && k != KeyRune
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// IsArrowKey returns true if this is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyUp && k <= KeyRight
}

// keyNameMap maps accepted key names (lowercase) to Key values.
var keyNameMap = map[string]Key{
	"esc":       KeyEscape,
	"escape":    KeyEscape,
	"ret":       KeyEnter,
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"cr":        KeyEnter,
	"tab":       KeyTab,
	"backspace": KeyBackspace,
	"bs":        KeyBackspace,
	"del":       KeyDelete,
	"delete":    KeyDelete,
	"ins":       KeyInsert,
	"insert":    KeyInsert,
	"home":      KeyHome,
	"end":       KeyEnd,
	"pageup":    KeyPageUp,
	"pgup":      KeyPageUp,
	"pagedown":  KeyPageDown,
	"pgdn":      KeyPageDown,
	"null":      KeyNull,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
}

// runeNameMap maps names that stand for a character key.
var runeNameMap = map[string]rune{
	"space":  ' ',
	"minus":  '-',
	"lt":     '<',
	"gt":     '>',
	"bar":    '|',
	"bslash": '\\',
}

// KeyFromName returns the Key for a given name (case-insensitive).
// Returns KeyNone if the name is not recognized.
func KeyFromName(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyNameMap[name]; ok {
		return k
	}
	if len(name) >= 2 && name[0] == 'f' {
		if n, err := strconv.Atoi(name[1:]); err == nil && n >= 1 && n <= 12 && strconv.Itoa(n) == name[1:] {
			return KeyF1 + Key(n-1)
		}
	}
	return KeyNone
}

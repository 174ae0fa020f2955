package key

import (
	"fmt"
	"unicode"
)

// Event represents a single key press.
//
// Event is comparable: two events are the same trie edge iff they are ==.
// Callers building events from terminal input should call Normalize first.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a named key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// Normalize returns the canonical form of the event.
// Shift is folded into character events: "S-g" becomes "G".
func (e Event) Normalize() Event {
	if e.Key == KeyRune {
		if e.Modifiers.HasShift() {
			e.Rune = unicode.ToUpper(e.Rune)
		}
		e.Modifiers = e.Modifiers.Without(ModShift)
	} else {
		e.Rune = 0
	}
	return e
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// IsModified returns true if Ctrl, Alt or Meta is held.
// For character events Shift is part of the character itself.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// Digit reports the value of an unmodified ASCII digit event.
func (e Event) Digit() (int, bool) {
	if !e.IsRune() || e.IsModified() || e.Rune < '0' || e.Rune > '9' {
		return 0, false
	}
	return int(e.Rune - '0'), true
}

// IsEscape returns true if this is the Escape key with no modifiers.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// String returns the canonical notation, which Parse accepts back.
// Examples: "a", "G", "C-w", "A-d", "S-tab", "space", "minus", "F5".
func (e Event) String() string {
	var name string
	switch e.Key {
	case KeyRune:
		switch e.Rune {
		case ' ':
			name = "space"
		case '-':
			name = "minus"
		default:
			name = string(e.Rune)
		}
	default:
		name = e.Key.String()
	}
	return e.Modifiers.String() + name
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("key.Event{Key: %s, Rune: %q, Modifiers: %q}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}

package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@", "-"
//   - Named keys: "esc", "ret", "tab", "space", "minus", "backspace", "F1"
//   - Hyphenated modifiers: "C-s", "A-F4", "C-S-p", "S-tab", "Meta-x"
//   - Vim-style: "<C-s>", "<A-f>", "<CR>", "<Esc>"
//   - Plus style: "Ctrl+S", "Alt+F4"
//
// The returned event is already normalized.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	// Vim-style <...> wraps the same hyphenated form
	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseHyphenated(spec[1 : len(spec)-1])
	}

	// Ctrl+S style; a lone "+" is the plus character
	if idx := strings.IndexByte(spec, '+'); idx > 0 && ModifierFromName(spec[:idx]) != ModNone {
		return parsePlusStyle(spec)
	}

	return parseHyphenated(spec)
}

// parseHyphenated parses "C-A-x" style notation. Every segment before the
// last hyphen must be a modifier name; "A--" is Alt plus the minus key.
func parseHyphenated(spec string) (Event, error) {
	var mods Modifier
	rest := spec
	for utf8.RuneCountInString(rest) > 1 {
		idx := strings.IndexByte(rest, '-')
		if idx <= 0 {
			break
		}
		mod := ModifierFromName(rest[:idx])
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, rest[:idx])
		}
		mods = mods.With(mod)
		rest = rest[idx+1:]
	}
	return parseKey(rest, mods)
}

// parsePlusStyle parses "Ctrl+S" style notation. "Ctrl++" binds plus.
func parsePlusStyle(spec string) (Event, error) {
	var modPart, keyPart string
	if strings.HasSuffix(spec, "++") {
		modPart, keyPart = spec[:len(spec)-2], "+"
	} else {
		idx := strings.LastIndexByte(spec, '+')
		modPart, keyPart = spec[:idx], strings.TrimSpace(spec[idx+1:])
	}

	var mods Modifier
	for _, p := range strings.Split(modPart, "+") {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}
	return parseKey(keyPart, mods)
}

// lookupName resolves a multi-character key name.
func lookupName(name string) (Event, bool) {
	lower := strings.ToLower(name)
	if r, ok := runeNameMap[lower]; ok {
		return NewRuneEvent(r, ModNone), true
	}
	if k := KeyFromName(lower); k != KeyNone {
		return NewSpecialEvent(k, ModNone), true
	}
	return Event{}, false
}

// parseKey parses a key part with already-known modifiers.
func parseKey(keyPart string, mods Modifier) (Event, error) {
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	if utf8.RuneCountInString(keyPart) == 1 {
		r, _ := utf8.DecodeRuneInString(keyPart)
		return NewRuneEvent(r, mods).Normalize(), nil
	}

	if ev, ok := lookupName(keyPart); ok {
		ev.Modifiers = mods
		return ev.Normalize(), nil
	}

	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}

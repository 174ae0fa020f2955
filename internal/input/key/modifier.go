package key

import "strings"

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << (iota - 1)

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Super elsewhere).
	ModMeta
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool { return m.Has(ModShift) }

// HasCtrl returns true if Control is pressed.
func (m Modifier) HasCtrl() bool { return m.Has(ModCtrl) }

// HasAlt returns true if Alt is pressed.
func (m Modifier) HasAlt() bool { return m.Has(ModAlt) }

// HasMeta returns true if Meta is pressed.
func (m Modifier) HasMeta() bool { return m.Has(ModMeta) }

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// String returns the hyphenated prefix form, e.g. "C-A-" for Ctrl+Alt.
// The order is fixed so equal modifier sets always print the same.
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var sb strings.Builder
	if m.HasCtrl() {
		sb.WriteString("C-")
	}
	if m.HasAlt() {
		sb.WriteString("A-")
	}
	if m.HasShift() {
		sb.WriteString("S-")
	}
	if m.HasMeta() {
		sb.WriteString("Meta-")
	}
	return sb.String()
}

// modifierNameMap maps modifier names (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"c":       ModCtrl,
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"a":       ModAlt,
	"alt":     ModAlt,
	"opt":     ModAlt,
	"option":  ModAlt,
	"s":       ModShift,
	"shift":   ModShift,
	"meta":    ModMeta,
	"m":       ModMeta,
	"d":       ModMeta, // Vim uses D for command/meta
	"cmd":     ModMeta,
	"super":   ModMeta,
	"win":     ModMeta,
}

// ModifierFromName returns the Modifier for a given name (case-insensitive).
// Returns ModNone if the name is not recognized.
func ModifierFromName(name string) Modifier {
	return modifierNameMap[strings.ToLower(strings.TrimSpace(name))]
}

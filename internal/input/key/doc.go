// Package key provides key event types and parsing for the input system.
//
// This package defines the values the keymap trie is keyed on:
//
//   - Key: identifies a named key (Escape, Tab, arrows, function keys) or KeyRune
//   - Modifier: the Shift, Ctrl, Alt and Meta modifier bitset
//   - Event: one key press; comparable, so it can be used directly as a map key
//   - Sequence: an ordered list of events forming a chord
//
// # Key Notation
//
// Parse accepts the notation used by keymap configuration files:
//
//   - Single characters: "a", "G", "%", "|"
//   - Named keys: "esc", "ret", "tab", "space", "backspace", "minus", "pageup", "F5"
//   - Hyphenated modifiers: "C-w", "A-d", "S-tab", "C-S-p", "Meta-x"
//   - Angle brackets: "<C-s>", "<Esc>", "<CR>"
//   - Plus style: "Ctrl+S", "Alt+F4"
//
// Character events never carry Shift; the shifted character itself ("G") is
// the key. Normalize applies the same rule to events coming from a terminal.
package key

// Package mode defines the editor modes that each own a keymap, and a
// Manager that tracks which one is active.
//
// Modes form a small closed set. Each has an independent keymap; the
// select keymap is derived from the normal one (see package keymap).
//
//	m := mode.NewManager(mode.Normal)
//	m.OnChange(func(from, to mode.Mode) {
//	    resolver.Reset(from)
//	})
//	m.Switch(mode.Insert)
package mode

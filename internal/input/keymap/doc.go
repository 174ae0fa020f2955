// Package keymap provides the per-mode key binding tries of the editor.
//
// A mode map is a tree of nodes. A Leaf binds a command; a Group holds
// children keyed by key events and carries a display name and a sticky
// flag. Groups remember the order their children were declared in, which
// is the order help menus show them.
//
// # Key Concepts
//
// Entry: a declarative binding or sub-group attached to one or more alias
// key sequences. Build turns entries into a root Group.
//
// Merge: overlays one Group onto another. Overlay bindings win; keys only
// present in the base survive.
//
// Store: holds the current Snapshot of every mode map. Snapshots are
// immutable and replaced wholesale on reload.
//
// # Usage
//
//	cat := command.NewBuiltinCatalog()
//	root, err := keymap.Build("Normal mode",
//	    keymap.BindKeys(cat.MustLookup("move_char_left"), "m", "left"),
//	    keymap.SubKeys("Goto", false, []string{"g"},
//	        keymap.BindKeys(cat.MustLookup("goto_file_start"), "g"),
//	    ),
//	)
//
//	store, err := keymap.NewStore(keymap.Maps{mode.Normal: root})
//	snap := store.Load()
package keymap

// Package config loads keytrie configuration and turns it into keymap
// snapshots.
//
// A configuration file is TOML, YAML or JSON (chosen by extension) and
// may pull in other files with "@include". Environment variables
// prefixed KEYTRIE_ override file settings.
//
//	scripts = ["keys.lua"]
//
//	[editor]
//	default_mode = "normal"
//
//	[log]
//	level = "debug"
//	file = "/tmp/keytrie.log"
//
//	[keys.normal]
//	C-s = "commit_undo_checkpoint"
//
//	[keys.normal.g]
//	a = "goto_last_accessed_file"
//
//	[keys.normal.space.w]
//	"@name" = "Window"
//	"@sticky" = true
//	v = "vsplit"
//
// Each [keys.<mode>] table is an overlay merged over the built-in
// defaults. A string value binds a command; a nested table extends the
// group at that key. "@name" and "@sticky" set group metadata; a table
// without them keeps the name of the group it lands on.
//
// KeymapManager rebuilds and publishes the maps on Reload, keeping the
// last good snapshot when a reload fails. System adds file watching so
// edits are picked up live.
package config

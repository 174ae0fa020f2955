// Package lua runs keymap overlay scripts on gopher-lua.
//
// Scripts run in a sandboxed state: io, os and debug are not opened,
// dofile/load are removed, and require only resolves whitelisted
// modules. The keytrie module lets a script declare bindings:
//
//	local k = require("keytrie")
//	k.group("normal", "space w", { name = "Window" })
//	k.bind("normal", "space w v", "vsplit")
//	k.bind("normal", { "m", "left" }, "move_char_left")
//
// LoadOverlay collects those declarations into one overlay group per
// mode, ready to be merged over the defaults with keymap.MergeMaps.
package lua

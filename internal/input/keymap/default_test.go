package keymap

import (
	"testing"

	"github.com/dshills/keytrie/internal/input/command"
	"github.com/dshills/keytrie/internal/input/mode"
)

func TestDefaultMapsBuild(t *testing.T) {
	maps := DefaultMaps(command.NewBuiltinCatalog())

	for _, m := range mode.All {
		if _, ok := maps[m]; !ok {
			t.Errorf("default maps missing %s", m)
		}
	}
	if maps[mode.Normal].Name() != "Normal mode" {
		t.Errorf("normal name = %q", maps[mode.Normal].Name())
	}
	if maps[mode.Select].Name() != "Select mode" {
		t.Errorf("select name = %q", maps[mode.Select].Name())
	}
}

func TestDefaultNormalBindings(t *testing.T) {
	maps := DefaultMaps(command.NewBuiltinCatalog())
	normal := maps[mode.Normal]

	tests := []struct {
		keys string
		want string
	}{
		{"m", "move_char_left"},
		{"left", "move_char_left"},
		{"g g", "goto_file_start"},
		{"C-w C-w", "rotate_view"},
		{"space w w", "rotate_view"},
		{"space G l", "dap_launch"},
		{"space r _", command.NoOp},
		{"esc", command.NormalMode},
		{"minus", "decrement"},
		{"A-`", "switch_to_uppercase"},
		{"C-E", "page_up"},
		{"Z space", "page_cursor_half_down"},
	}
	for _, tt := range tests {
		if cmd := leafAt(t, normal, tt.keys); cmd.Name() != tt.want {
			t.Errorf("normal %q = %v, want %s", tt.keys, cmd, tt.want)
		}
	}
}

func TestDefaultStickyGroups(t *testing.T) {
	normal := DefaultNormal(command.NewBuiltinCatalog())

	tests := []struct {
		keys   string
		name   string
		sticky bool
	}{
		{"space G", "Debug (experimental)", true},
		{"Z", "View", true},
		{"z", "View", false},
		{"space", "Space", false},
	}
	for _, tt := range tests {
		g, ok := normal.LookupGroup(seq(tt.keys))
		if !ok {
			t.Errorf("%q is not a group", tt.keys)
			continue
		}
		if g.Name() != tt.name || g.Sticky() != tt.sticky {
			t.Errorf("%q = {%q, sticky %v}, want {%q, sticky %v}",
				tt.keys, g.Name(), g.Sticky(), tt.name, tt.sticky)
		}
	}
}

func TestDefaultSelectDerivesFromNormal(t *testing.T) {
	maps := DefaultMaps(command.NewBuiltinCatalog())
	sel := maps[mode.Select]
	normal := maps[mode.Normal]

	tests := []struct {
		keys string
		want string
	}{
		// Overridden
		{"m", "extend_char_left"},
		{"g g", "extend_to_file_start"},
		{"esc", command.ExitSelectMode},
		{"r", command.NormalMode},
		{"s S", "extend_prev_char"},
		// Inherited from normal
		{"g d", "goto_definition"},
		{"u", "undo"},
		{"space f f", "file_picker"},
		{"j j", "goto_line"},
		{"j b", "extend_parent_node_start"},
	}
	for _, tt := range tests {
		if cmd := leafAt(t, sel, tt.keys); cmd.Name() != tt.want {
			t.Errorf("select %q = %v, want %s", tt.keys, cmd, tt.want)
		}
	}

	if cmd := leafAt(t, normal, "m"); cmd.Name() != "move_char_left" {
		t.Errorf("normal m = %v; select overlay leaked into normal", cmd)
	}
}

func TestDefaultInsertBindings(t *testing.T) {
	insert := DefaultInsert(command.NewBuiltinCatalog())

	tests := []struct {
		keys string
		want string
	}{
		{"esc", command.NormalMode},
		{"C-h", "delete_char_backward"},
		{"backspace", "delete_char_backward"},
		{"S-backspace", "delete_char_backward"},
		{"S-tab", "insert_tab"},
		{"tab", "smart_tab"},
		{"C-e", "goto_line_end_newline"},
	}
	for _, tt := range tests {
		if cmd := leafAt(t, insert, tt.keys); cmd.Name() != tt.want {
			t.Errorf("insert %q = %v, want %s", tt.keys, cmd, tt.want)
		}
	}
}

func TestDefaultCancelCommands(t *testing.T) {
	maps := DefaultMaps(command.NewBuiltinCatalog())

	if k := leafAt(t, maps[mode.Normal], "esc").Kind(); k != command.KindCancel {
		t.Errorf("normal esc kind = %v, want cancel", k)
	}
	if k := leafAt(t, maps[mode.Select], "esc").Kind(); k != command.KindCancel {
		t.Errorf("select esc kind = %v, want cancel", k)
	}
}

package keymap

import (
	"github.com/dshills/keytrie/internal/input/command"
	"github.com/dshills/keytrie/internal/input/mode"
)

// tableBuilder resolves command names against a catalog while the
// default tables are declared.
type tableBuilder struct {
	cat *command.Catalog
}

func (t tableBuilder) bind(cmd string, keys ...string) Entry {
	return BindKeys(t.cat.MustLookup(cmd), keys...)
}

func (t tableBuilder) sub(name, keys string, children ...Entry) Entry {
	return SubKeys(name, false, []string{keys}, children...)
}

func (t tableBuilder) sticky(name, keys string, children ...Entry) Entry {
	return SubKeys(name, true, []string{keys}, children...)
}

// DefaultMaps returns freshly built default maps for every mode. Command
// names are resolved in cat, which must hold the built-in commands.
func DefaultMaps(cat *command.Catalog) Maps {
	t := tableBuilder{cat: cat}
	normal := DefaultNormal(cat)
	selectMode := Merge(normal.Clone(), t.selectOverlay())

	return Maps{
		mode.Normal: normal,
		mode.Select: selectMode,
		mode.Insert: DefaultInsert(cat),
	}
}

// windowEntries is shared by "C-w" and "space w".
func (t tableBuilder) windowEntries() []Entry {
	return []Entry{
		t.bind("rotate_view", "C-w", "w"),
		t.bind("hsplit", "C-s", "s"),
		t.bind("vsplit", "C-v", "v"),
		t.bind("transpose_view", "C-t", "t"),
		t.bind("goto_file_vsplit", "f"),
		t.bind("goto_file_hsplit", "F"),
		t.bind("wclose", "C-k", "k"),
		t.bind("wclose", "C-q", "q"),
		t.bind("wonly", "C-o", "o"),
		t.bind("jump_view_left", "C-m", "m", "left"),
		t.bind("jump_view_down", "C-n", "n", "down"),
		t.bind("jump_view_up", "C-e", "e", "up"),
		t.bind("jump_view_right", "C-i", "i", "right"),
		t.bind("swap_view_left", "M"),
		t.bind("swap_view_down", "E"),
		t.bind("swap_view_up", "N"),
		t.bind("swap_view_right", "I"),
		t.sub("New split scratch buffer", "b",
			t.bind("hsplit_new", "C-s", "s"),
			t.bind("vsplit_new", "C-b", "b", "C-v", "v"),
		),
	}
}

// viewEntries is shared by the "z" and sticky "Z" view groups.
func (t tableBuilder) viewEntries() []Entry {
	return []Entry{
		t.bind("align_view_center", "z", "c"),
		t.bind("align_view_top", "t"),
		t.bind("align_view_bottom", "b"),
		t.bind("align_view_middle", "m"),
		t.bind("scroll_up", "e", "up"),
		t.bind("scroll_down", "n", "down"),
		t.bind("page_up", "C-E", "C-b", "pageup"),
		t.bind("page_down", "C-N", "C-f", "pagedown"),
		t.bind("page_cursor_half_up", "C-u", "backspace"),
		t.bind("page_cursor_half_down", "C-d", "space"),

		t.bind("search", "/"),
		t.bind("rsearch", "?"),
		t.bind("search_next", "h"),
		t.bind("search_prev", "H"),
	}
}

// DefaultNormal builds the default normal mode map.
func DefaultNormal(cat *command.Catalog) *Group {
	t := tableBuilder{cat: cat}
	return MustBuild("Normal mode",
		t.bind("move_char_left", "m", "left"),
		t.bind("move_visual_line_down", "n", "down"),
		t.bind("move_visual_line_up", "e", "up"),
		t.bind("move_char_right", "i", "right"),

		t.sub("Search", "s",
			t.bind("find_next_char", "s"),
			t.bind("find_till_char", "t"),
			t.bind("search_selection_detect_word_boundaries", "w"),
			t.bind("search_selection", "W"),
		),
		t.bind("find_prev_char", "S"),
		t.bind("till_prev_char", "T"),
		t.sub("Tap", "t",
			t.bind("select_all", "a"),
			t.bind("collapse_selection", "c"),

			t.bind("ensure_selections_forward", "f"),
			t.bind("select_regex", "r"),
			t.bind("split_selection", "s"),
			t.bind("flip_selections", "t"),

			t.bind("keep_selections", "k"),
			t.bind("remove_selections", "K"),

			t.bind("merge_consecutive_selections", "M"),
			t.bind("merge_selections", "m"),

			t.bind("split_selection_on_newline", "l"),

			t.bind("shrink_selection", "i"),
			t.bind("expand_selection", "o"),

			t.bind("select_next_sibling", "n"),
			t.bind("select_prev_sibling", "p"),
		),
		t.bind("replace", "v"),
		t.bind("replace_with_yanked", "V"),
		t.bind("repeat_last_motion", "'"),
		t.bind("repeat_last_motion_reverse", `"`),

		t.bind("switch_case", "~"),
		t.bind("switch_to_lowercase", "`"),
		t.bind("switch_to_uppercase", "A-`"),

		t.bind("goto_line_start", "home"),
		t.bind("goto_line_end", "end"),
		t.bind("goto_line_start", "M"),
		t.bind("goto_line_end", "I"),
		t.bind("goto_first_nonwhitespace", "^"),
		t.bind("goto_line_end", "$"),

		t.bind("move_next_word_start", "w"),
		t.bind("move_prev_word_start", "b"),
		t.bind("move_next_word_end", "f"),

		t.bind("move_next_long_word_start", "W"),
		t.bind("move_prev_long_word_start", "B"),
		t.bind("move_next_long_word_end", "F"),

		t.bind("select_mode", "r"),
		t.bind("goto_last_line", "G"),
		t.sub("Jump", "j",
			t.bind("goto_line", "j"),
			t.bind("move_parent_node_start", "s"),
			t.bind("move_parent_node_end", "e"),
			t.bind("rotate_selections_first", "("),
			t.bind("rotate_selections_last", ")"),
		),
		t.sub("Goto", "g",
			t.bind("goto_file_start", "g"),
			t.bind("goto_column", "|"),
			t.bind("goto_last_line", "e"),
			t.bind("goto_file", "f"),
			t.bind("goto_line_start", "m"),
			t.bind("goto_line_end", "i"),
			t.bind("goto_definition", "d"),
			t.bind("goto_declaration", "D"),
			t.bind("goto_type_definition", "y"),
			t.bind("goto_reference", "r"),
			t.bind("goto_implementation", "I"),
			t.bind("goto_window_top", "t"),
			t.bind("goto_window_center", "c"),
			t.bind("goto_window_bottom", "b"),
			t.bind("goto_last_accessed_file", "A"),
			t.bind("goto_last_modified_file", "M"),
			t.bind("goto_next_buffer", "n"),
			t.bind("goto_previous_buffer", "p"),
			t.bind("goto_last_modification", "."),
			t.bind("goto_word", "w"),
		),
		t.bind("command_mode", ":"),

		t.bind("insert_mode", "l"),
		t.bind("insert_at_line_start", "L"),
		t.bind("append_mode", "a"),
		t.bind("insert_at_line_end", "A"),
		t.bind("open_below", "o"),
		t.bind("open_above", "O"),

		t.bind("delete_selection", "d"),
		t.bind("delete_selection_noyank", "A-d"),
		t.bind("change_selection", "c"),
		t.bind("change_selection_noyank", "A-c"),

		t.bind("copy_selection_on_next_line", "C"),
		t.bind("copy_selection_on_prev_line", "A-C"),

		t.bind("extend_line_below", "x"),
		t.bind("extend_line_above", "X"),

		t.bind("match_brackets", "%"),
		t.sub("Knit", "k",
			t.bind("match_brackets", "k"),
			t.bind("surround_add", "s"),
			t.bind("surround_replace", "r"),
			t.bind("surround_delete", "d"),
			t.bind("select_textobject_around", "a"),
			t.bind("select_textobject_inner", "i"),
		),
		t.sub("Left bracket", "[",
			t.bind("goto_prev_diag", "d"),
			t.bind("goto_first_diag", "D"),
			t.bind("goto_prev_change", "g"),
			t.bind("goto_first_change", "G"),
			t.bind("goto_prev_function", "f"),
			t.bind("goto_prev_class", "t"),
			t.bind("goto_prev_parameter", "a"),
			t.bind("goto_prev_comment", "c"),
			t.bind("goto_prev_entry", "e"),
			t.bind("goto_prev_test", "T"),
			t.bind("goto_prev_paragraph", "p"),
			t.bind("goto_prev_xml_element", "x"),
			t.bind("add_newline_above", "space"),
		),
		t.sub("Right bracket", "]",
			t.bind("goto_next_diag", "d"),
			t.bind("goto_last_diag", "D"),
			t.bind("goto_next_change", "g"),
			t.bind("goto_last_change", "G"),
			t.bind("goto_next_function", "f"),
			t.bind("goto_next_class", "t"),
			t.bind("goto_next_parameter", "a"),
			t.bind("goto_next_comment", "c"),
			t.bind("goto_next_entry", "e"),
			t.bind("goto_next_test", "T"),
			t.bind("goto_next_paragraph", "p"),
			t.bind("goto_next_xml_element", "x"),
			t.bind("add_newline_below", "space"),
		),

		t.bind("search", "/"),
		t.bind("rsearch", "?"),
		t.bind("search_next", "h"),
		t.bind("search_prev", "H"),
		t.bind("search_selection_detect_word_boundaries", "*"),

		t.bind("undo", "u"),
		t.bind("redo", "U"),

		t.bind("yank", "y"),
		t.bind("yank_joined", "Y"),
		t.bind("paste_after", "p"),
		t.bind("paste_before", "P"),

		t.bind("record_macro", "Q"),
		t.bind("replay_macro", "q"),

		t.bind("indent", ">"),
		t.bind("unindent", "<"),
		t.bind("join_selections", "J"),
		t.bind("join_selections_space", "A-J"),

		t.bind("keep_primary_selection", ","),
		t.bind("remove_primary_selection", ";"),

		t.bind("align_selections", "="),
		t.bind("trim_selections", "_"),

		t.bind("rotate_selections_backward", "("),
		t.bind("rotate_selections_forward", ")"),
		t.bind("rotate_selection_contents_backward", "A-("),
		t.bind("rotate_selection_contents_forward", "A-)"),

		t.bind(command.NormalMode, "esc"),
		t.bind("page_up", "C-E", "C-b", "pageup"),
		t.bind("page_down", "C-N", "C-f", "pagedown"),
		t.bind("page_cursor_half_up", "C-u"),
		t.bind("page_cursor_half_down", "C-d"),

		t.sub("Window", "C-w", t.windowEntries()...),

		t.bind("jump_forward", "C-i", "tab"),
		t.bind("jump_backward", "C-o"),
		t.bind("save_selection", "C-s"),
		t.bind("align_view_top", "C-l"),

		t.sub("Space", "space",
			t.sub("File", "f",
				t.bind("file_picker", "f"),
				t.bind("file_picker_in_current_directory", "F"),
			),
			t.bind("file_explorer", "e"),
			t.bind("file_explorer_in_current_buffer_directory", "E"),
			t.sub("Buffer", "b",
				t.bind("buffer_picker", "b"),
			),
			t.sub("Rapid", "r",
				t.bind(command.NoOp, "_"),
			),
			t.bind("jumplist_picker", "j"),
			t.bind("changed_file_picker", "g"),
			t.bind("last_picker", "'"),
			t.sticky("Debug (experimental)", "G",
				t.bind("dap_launch", "l"),
				t.bind("dap_restart", "r"),
				t.bind("dap_toggle_breakpoint", "b"),
				t.bind("dap_continue", "c"),
				t.bind("dap_pause", "h"),
				t.bind("dap_step_in", "i"),
				t.bind("dap_step_out", "o"),
				t.bind("dap_next", "n"),
				t.bind("dap_variables", "v"),
				t.bind("dap_terminate", "t"),
				t.bind("dap_edit_condition", "C-c"),
				t.bind("dap_edit_log", "C-l"),
				t.sub("Switch", "s",
					t.bind("dap_switch_thread", "t"),
					t.bind("dap_switch_stack_frame", "f"),
				),
				t.bind("dap_enable_exceptions", "e"),
				t.bind("dap_disable_exceptions", "E"),
			),
			t.sub("Window", "w", t.windowEntries()...),
			t.bind("global_search", "/"),
			t.bind("command_palette", "?"),
			t.sub("Comments", "c",
				t.bind("toggle_comments", "c"),
				t.bind("toggle_block_comments", "C"),
				t.bind("toggle_line_comments", "l"),
			),
			t.sub("Project", "p",
				t.bind("code_action", "a"),
				t.bind("diagnostics_picker", "d"),
				t.bind("workspace_diagnostics_picker", "D"),
				t.bind("hover", "k"),
				t.bind("rename_symbol", "r"),
				t.bind("select_references_to_symbol_under_cursor", "R"),
				t.bind("lsp_or_syntax_symbol_picker", "s"),
				t.bind("lsp_or_syntax_workspace_symbol_picker", "S"),
			),
			t.sub("Toggle", "t",
				t.bind(command.NoOp, "_"),
			),
			t.sub("Text manipulation", "x",
				t.bind("format_selections", "="),
				t.bind("paste_clipboard_after", "p"),
				t.bind("paste_clipboard_before", "P"),
				t.bind("yank_to_clipboard", "y"),
				t.bind("yank_joined_to_clipboard", "Y"),
				t.bind("replace_selections_with_clipboard", "V"),
			),
			t.sub("Quit", "q",
				t.bind(command.NoOp, "_"),
			),
			t.sub("Background/Shell", "z",
				t.bind("shell_append_output", "a"),
				t.bind("shell_insert_output", "i"),
				t.bind("shell_keep_pipe", "k"),
				t.bind("shell_pipe", "p"),
				t.bind("shell_pipe_to", "P"),
				t.bind("suspend", "z"),
			),
		),
		t.sub("View", "z", t.viewEntries()...),
		t.sticky("View", "Z", t.viewEntries()...),

		t.bind("select_register", "&"),

		t.bind("increment", "+"),
		t.bind("decrement", "minus"),
	)
}

// selectOverlay holds the select mode bindings applied on top of a copy
// of the normal map.
func (t tableBuilder) selectOverlay() *Group {
	return MustBuild("Select mode",
		t.bind("extend_char_left", "m", "left"),
		t.bind("extend_visual_line_down", "n", "down"),
		t.bind("extend_visual_line_up", "e", "up"),
		t.bind("extend_char_right", "i", "right"),

		t.bind("page_cursor_half_up", "E"),
		t.bind("page_cursor_half_down", "N"),

		t.bind("extend_next_word_start", "w"),
		t.bind("extend_prev_word_start", "b"),
		t.bind("extend_next_word_end", "f"),
		t.bind("extend_next_long_word_start", "W"),
		t.bind("extend_prev_long_word_start", "B"),
		t.bind("extend_next_long_word_end", "F"),

		t.sub("Jump", "j",
			t.bind("extend_parent_node_start", "b"),
			t.bind("extend_parent_node_end", "e"),
		),

		t.bind("extend_search_next", "h"),
		t.bind("extend_search_prev", "H"),

		t.sub("Search", "s",
			t.bind("extend_next_char", "s"),
			t.bind("extend_prev_char", "S"),
			t.bind("extend_till_char", "t"),
			t.bind("extend_till_prev_char", "T"),
		),
		t.bind("extend_repeat_last_motion", "'"),
		t.bind("extend_repeat_last_motion_reverse", `"`),

		t.bind("extend_to_line_start", "home"),
		t.bind("extend_to_line_end", "end"),
		t.bind(command.ExitSelectMode, "esc"),

		t.bind(command.NormalMode, "r"),
		t.bind("extend_to_last_line", "G"),
		t.sub("Goto", "g",
			t.bind("extend_to_file_start", "g"),
			t.bind("extend_to_column", "|"),
			t.bind("extend_to_last_line", "e"),
			t.bind("extend_to_word", "w"),
		),
	)
}

// DefaultInsert builds the default insert mode map.
func DefaultInsert(cat *command.Catalog) *Group {
	t := tableBuilder{cat: cat}
	return MustBuild("Insert mode",
		t.bind(command.NormalMode, "esc"),

		t.bind("commit_undo_checkpoint", "C-s"),
		t.bind("completion", "C-x"),
		t.bind("insert_register", "C-r"),

		t.bind("delete_word_backward", "C-w", "A-backspace"),
		t.bind("delete_word_forward", "A-d", "A-del"),
		t.bind("kill_to_line_start", "C-u"),
		t.bind("kill_to_line_end", "C-k"),
		t.bind("delete_char_backward", "C-h", "backspace", "S-backspace"),
		t.bind("delete_char_forward", "C-d", "del"),
		t.bind("insert_newline", "C-j", "ret"),
		t.bind("smart_tab", "tab"),
		t.bind("insert_tab", "S-tab"),

		t.bind("move_visual_line_up", "up"),
		t.bind("move_visual_line_down", "down"),
		t.bind("move_char_left", "left"),
		t.bind("move_char_right", "right"),
		t.bind("page_up", "pageup"),
		t.bind("page_down", "pagedown"),
		t.bind("goto_line_start", "home"),
		t.bind("goto_line_end_newline", "end"),
		// Emacs like
		t.bind("goto_line_start", "C-a"),
		t.bind("goto_line_end_newline", "C-e"),
	)
}

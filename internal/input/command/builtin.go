package command

// Names of the built-in editor commands the default keymaps refer to.
var builtinNames = []string{
	"add_newline_above", "add_newline_below", "align_selections", "align_view_bottom",
	"align_view_center", "align_view_middle", "align_view_top", "append_mode", "buffer_picker",
	"change_selection", "change_selection_noyank", "changed_file_picker", "code_action",
	"collapse_selection", "command_mode", "command_palette", "commit_undo_checkpoint",
	"completion", "copy_selection_on_next_line", "copy_selection_on_prev_line", "dap_continue",
	"dap_disable_exceptions", "dap_edit_condition", "dap_edit_log", "dap_enable_exceptions",
	"dap_launch", "dap_next", "dap_pause", "dap_restart", "dap_step_in", "dap_step_out",
	"dap_switch_stack_frame", "dap_switch_thread", "dap_terminate", "dap_toggle_breakpoint",
	"dap_variables", "decrement", "delete_char_backward", "delete_char_forward",
	"delete_selection", "delete_selection_noyank", "delete_word_backward", "delete_word_forward",
	"diagnostics_picker", "ensure_selections_forward", "expand_selection", "extend_char_left",
	"extend_char_right", "extend_line_above", "extend_line_below", "extend_next_char",
	"extend_next_long_word_end", "extend_next_long_word_start", "extend_next_word_end",
	"extend_next_word_start", "extend_parent_node_end", "extend_parent_node_start",
	"extend_prev_char", "extend_prev_long_word_start", "extend_prev_word_start",
	"extend_repeat_last_motion", "extend_repeat_last_motion_reverse", "extend_search_next",
	"extend_search_prev", "extend_till_char", "extend_till_prev_char", "extend_to_column",
	"extend_to_file_start", "extend_to_last_line", "extend_to_line_end", "extend_to_line_start",
	"extend_to_word", "extend_visual_line_down", "extend_visual_line_up", "file_explorer",
	"file_explorer_in_current_buffer_directory", "file_picker",
	"file_picker_in_current_directory", "find_next_char", "find_prev_char", "find_till_char",
	"flip_selections", "format_selections", "global_search", "goto_column", "goto_declaration",
	"goto_definition", "goto_file", "goto_file_hsplit", "goto_file_start", "goto_file_vsplit",
	"goto_first_change", "goto_first_diag", "goto_first_nonwhitespace", "goto_implementation",
	"goto_last_accessed_file", "goto_last_change", "goto_last_diag", "goto_last_line",
	"goto_last_modification", "goto_last_modified_file", "goto_line", "goto_line_end",
	"goto_line_end_newline", "goto_line_start", "goto_next_buffer", "goto_next_change",
	"goto_next_class", "goto_next_comment", "goto_next_diag", "goto_next_entry",
	"goto_next_function", "goto_next_paragraph", "goto_next_parameter", "goto_next_test",
	"goto_next_xml_element", "goto_prev_change", "goto_prev_class", "goto_prev_comment",
	"goto_prev_diag", "goto_prev_entry", "goto_prev_function", "goto_prev_paragraph",
	"goto_prev_parameter", "goto_prev_test", "goto_prev_xml_element", "goto_previous_buffer",
	"goto_reference", "goto_type_definition", "goto_window_bottom", "goto_window_center",
	"goto_window_top", "goto_word", "hover", "hsplit", "hsplit_new", "increment", "indent",
	"insert_at_line_end", "insert_at_line_start", "insert_mode", "insert_newline",
	"insert_register", "insert_tab", "join_selections", "join_selections_space", "jump_backward",
	"jump_forward", "jump_view_down", "jump_view_left", "jump_view_right", "jump_view_up",
	"jumplist_picker", "keep_primary_selection", "keep_selections", "kill_to_line_end",
	"kill_to_line_start", "last_picker", "lsp_or_syntax_symbol_picker",
	"lsp_or_syntax_workspace_symbol_picker", "match_brackets", "merge_consecutive_selections",
	"merge_selections", "move_char_left", "move_char_right", "move_next_long_word_end",
	"move_next_long_word_start", "move_next_word_end", "move_next_word_start",
	"move_parent_node_end", "move_parent_node_start", "move_prev_long_word_start",
	"move_prev_word_start", "move_visual_line_down", "move_visual_line_up", "open_above",
	"open_below", "page_cursor_half_down", "page_cursor_half_up", "page_down", "page_up",
	"paste_after", "paste_before", "paste_clipboard_after", "paste_clipboard_before",
	"record_macro", "redo", "remove_primary_selection", "remove_selections", "rename_symbol",
	"repeat_last_motion", "repeat_last_motion_reverse", "replace",
	"replace_selections_with_clipboard", "replace_with_yanked", "replay_macro",
	"rotate_selection_contents_backward", "rotate_selection_contents_forward",
	"rotate_selections_backward", "rotate_selections_first", "rotate_selections_forward",
	"rotate_selections_last", "rotate_view", "rsearch", "save_selection", "scroll_down",
	"scroll_up", "search", "search_next", "search_prev", "search_selection",
	"search_selection_detect_word_boundaries", "select_all", "select_mode", "select_next_sibling",
	"select_prev_sibling", "select_references_to_symbol_under_cursor", "select_regex",
	"select_register", "select_textobject_around", "select_textobject_inner",
	"shell_append_output", "shell_insert_output", "shell_keep_pipe", "shell_pipe",
	"shell_pipe_to", "shrink_selection", "smart_tab", "split_selection",
	"split_selection_on_newline", "surround_add", "surround_delete", "surround_replace",
	"suspend", "swap_view_down", "swap_view_left", "swap_view_right", "swap_view_up",
	"switch_case", "switch_to_lowercase", "switch_to_uppercase", "till_prev_char",
	"toggle_block_comments", "toggle_comments", "toggle_line_comments", "transpose_view",
	"trim_selections", "undo", "unindent", "vsplit", "vsplit_new", "wclose", "wonly",
	"workspace_diagnostics_picker", "yank", "yank_joined", "yank_joined_to_clipboard",
	"yank_to_clipboard",
}

// Special commands the resolver and its callers treat differently.
const (
	NoOp           = "no_op"
	NormalMode     = "normal_mode"
	ExitSelectMode = "exit_select_mode"
)

// NewBuiltinCatalog returns a catalog holding every built-in command.
// normal_mode and exit_select_mode abandon pending input, so they are
// registered as KindCancel.
func NewBuiltinCatalog() *Catalog {
	c := NewCatalog()
	c.Register(NoOp, KindNoOp)
	c.Register(NormalMode, KindCancel)
	c.Register(ExitSelectMode, KindCancel)
	for _, name := range builtinNames {
		c.Register(name, KindNormal)
	}
	return c
}

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keytrie/internal/config/loader"
	"github.com/dshills/keytrie/internal/input/command"
	"github.com/dshills/keytrie/internal/input/key"
	"github.com/dshills/keytrie/internal/input/keymap"
	"github.com/dshills/keytrie/internal/input/mode"
	"github.com/dshills/keytrie/internal/logging"
)

func leafName(t *testing.T, g *keymap.Group, keys string) string {
	t.Helper()
	n, ok := g.Lookup(key.MustParseSequence(keys))
	require.True(t, ok, "lookup %q", keys)
	leaf, ok := n.(*keymap.Leaf)
	require.True(t, ok, "%q is %T", keys, n)
	return leaf.Command.Name()
}

func loadKeys(t *testing.T, yaml string) map[mode.Mode]*loader.Tree {
	t.Helper()
	cfg, err := LoadFS(memFS{"/k.yaml": yaml}, "/k.yaml")
	require.NoError(t, err)
	return cfg.Keys
}

func TestBuildOverlays(t *testing.T) {
	cat := command.NewBuiltinCatalog()
	keys := loadKeys(t, `
keys:
  normal:
    C-s: commit_undo_checkpoint
    g:
      a: goto_last_accessed_file
    space:
      w:
        "@name": Win
        "@sticky": true
        v: vsplit
`)

	overlays, err := BuildOverlays(keys, cat)
	require.NoError(t, err)

	normal := overlays[mode.Normal]
	require.NotNil(t, normal)
	assert.False(t, normal.Explicit())
	assert.Equal(t, "commit_undo_checkpoint", leafName(t, normal, "C-s"))

	g, ok := normal.LookupGroup(key.MustParseSequence("g"))
	require.True(t, ok)
	assert.False(t, g.Explicit(), "table without metadata extends")

	w, ok := normal.LookupGroup(key.MustParseSequence("space w"))
	require.True(t, ok)
	assert.True(t, w.Explicit())
	assert.Equal(t, "Win", w.Name())
	assert.True(t, w.Sticky())

	// Merged over the defaults the Goto name survives
	maps := keymap.MergeMaps(keymap.DefaultMaps(cat), overlays)
	g, ok = maps[mode.Normal].LookupGroup(key.MustParseSequence("g"))
	require.True(t, ok)
	assert.Equal(t, "Goto", g.Name())
	assert.Equal(t, "goto_last_accessed_file", leafName(t, maps[mode.Normal], "g a"))
	assert.Equal(t, "goto_file_start", leafName(t, maps[mode.Normal], "g g"))
}

func TestBuildOverlays_Errors(t *testing.T) {
	cat := command.NewBuiltinCatalog()
	tests := []struct {
		name   string
		yaml   string
		target error
	}{
		{"unknown command", "keys:\n  normal:\n    x: launch_rockets\n", ErrUnknownCommand},
		{"bad key", "keys:\n  normal:\n    C-nope: undo\n", keymap.ErrInvalidKey},
		{"list value", "keys:\n  normal:\n    x: [undo, redo]\n", ErrInvalidValue},
		{"bad sticky", "keys:\n  normal:\n    z:\n      \"@sticky\": maybe\n      k: undo\n", ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildOverlays(loadKeys(t, tt.yaml), cat)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestKeymapManager_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, `
scripts = ["extra.lua"]

[keys.normal]
C-s = "commit_undo_checkpoint"
`)
	writeFile(t, filepath.Join(dir, "extra.lua"), `
local k = require("keytrie")
k.bind("normal", "C-s", "undo")
k.bind("insert", "j k", "normal_mode")
`)

	cat := command.NewBuiltinCatalog()
	m := NewKeymapManager(cat, path, WithLogger(logging.Discard()))
	initial := m.Store().Load()

	snap, err := m.Reload(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, initial.ID, snap.ID)
	assert.Same(t, snap, m.Store().Load())
	assert.NoError(t, m.LastError())
	assert.False(t, m.LastReloadAt().IsZero())

	normal, ok := snap.Root(mode.Normal)
	require.True(t, ok)
	assert.Equal(t, "undo", leafName(t, normal, "C-s"), "scripts apply after key tables")

	insert, ok := snap.Root(mode.Insert)
	require.True(t, ok)
	assert.Equal(t, "normal_mode", leafName(t, insert, "j k"))
	assert.Equal(t, []string{filepath.Join(dir, "extra.lua")}, m.Config().Scripts)
}

func TestKeymapManager_ReloadFailureKeepsLastGood(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "[keys.normal]\nC-s = \"commit_undo_checkpoint\"\n")

	cat := command.NewBuiltinCatalog()
	m := NewKeymapManager(cat, path, WithLogger(logging.Discard()))
	good, err := m.Reload(context.Background())
	require.NoError(t, err)

	writeFile(t, path, "[keys.normal]\nC-s = \"launch_rockets\"\n")
	_, err = m.Reload(context.Background())
	require.ErrorIs(t, err, ErrUnknownCommand)
	assert.ErrorIs(t, m.LastError(), ErrUnknownCommand)
	assert.Same(t, good, m.Store().Load())

	normal, _ := m.Store().Load().Root(mode.Normal)
	assert.Equal(t, "commit_undo_checkpoint", leafName(t, normal, "C-s"))

	writeFile(t, path, "[keys.normal\n")
	_, err = m.Reload(context.Background())
	var perr *loader.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Same(t, good, m.Store().Load())
}

func TestKeymapManager_ScriptError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "scripts: broken.lua\n")
	writeFile(t, filepath.Join(dir, "broken.lua"), `require("keytrie").bind("normal", "x", "nope")`)

	m := NewKeymapManager(command.NewBuiltinCatalog(), path, WithLogger(logging.Discard()))
	_, err := m.Reload(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.lua")
}

func TestKeymapManager_NoPathPublishesDefaults(t *testing.T) {
	cat := command.NewBuiltinCatalog()
	m := NewKeymapManager(cat, "", WithLogger(logging.Discard()))

	snap, err := m.Reload(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []mode.Mode{mode.Normal, mode.Select, mode.Insert}, snap.Modes())
}

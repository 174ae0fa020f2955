package lua

import (
	"context"
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keytrie/internal/input/command"
	"github.com/dshills/keytrie/internal/input/key"
	"github.com/dshills/keytrie/internal/input/keymap"
	"github.com/dshills/keytrie/internal/input/mode"
)

// ModuleName is the module scripts require to declare bindings.
const ModuleName = "keytrie"

type bindOp struct {
	aliases []string
	command command.Ref
}

type groupOp struct {
	aliases []string
	name    string
	sticky  bool
	depth   int
}

// Overlay collects the bindings a script declares, per mode.
type Overlay struct {
	catalog *command.Catalog

	modes  []mode.Mode
	binds  map[mode.Mode][]bindOp
	groups map[mode.Mode][]groupOp
}

// NewOverlay creates an empty overlay resolving command names in cat.
func NewOverlay(cat *command.Catalog) *Overlay {
	return &Overlay{
		catalog: cat,
		binds:   make(map[mode.Mode][]bindOp),
		groups:  make(map[mode.Mode][]groupOp),
	}
}

// Register preloads the keytrie module into state.
func (o *Overlay) Register(state *State) {
	state.PreloadModule(ModuleName, o.loader)
}

func (o *Overlay) loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"bind":     o.bind,
		"group":    o.group,
		"commands": o.commands,
	})
	L.Push(mod)
	return 1
}

// bind(mode, keys, command)
// keys is a notation string ("g g", "C-w") or an array of aliases.
func (o *Overlay) bind(L *lua.LState) int {
	m := o.checkMode(L, 1)
	aliases := o.checkKeys(L, 2)
	name := L.CheckString(3)

	cmd, err := o.catalog.Lookup(name)
	if err != nil {
		L.ArgError(3, err.Error())
		return 0
	}

	o.touch(m)
	o.binds[m] = append(o.binds[m], bindOp{aliases: aliases, command: cmd})
	return 0
}

// group(mode, keys, opts?)
// opts may carry name (string) and sticky (bool). Declaring a group
// never removes bindings below it.
func (o *Overlay) group(L *lua.LState) int {
	m := o.checkMode(L, 1)
	aliases := o.checkKeys(L, 2)

	op := groupOp{aliases: aliases}
	if opts := L.OptTable(3, nil); opts != nil {
		b := NewBridge(L)
		op.name, _ = b.GetTableString(opts, "name")
		op.sticky, _ = b.GetTableBool(opts, "sticky")
	}
	for _, a := range aliases {
		seq, _ := key.ParseSequence(a)
		if len(seq) > op.depth {
			op.depth = len(seq)
		}
	}

	o.touch(m)
	o.groups[m] = append(o.groups[m], op)
	return 0
}

// commands() -> {name...}
func (o *Overlay) commands(L *lua.LState) int {
	L.Push(NewBridge(L).StringsToTable(o.catalog.Names()))
	return 1
}

func (o *Overlay) checkMode(L *lua.LState, n int) mode.Mode {
	m, err := mode.Parse(L.CheckString(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return m
}

func (o *Overlay) checkKeys(L *lua.LState, n int) []string {
	var aliases []string
	switch v := L.CheckAny(n).(type) {
	case lua.LString:
		aliases = []string{string(v)}
	case *lua.LTable:
		var ok bool
		aliases, ok = NewBridge(L).TableStrings(v)
		if !ok {
			L.ArgError(n, "aliases must be strings")
		}
	default:
		L.TypeError(n, lua.LTString)
	}
	if len(aliases) == 0 {
		L.ArgError(n, "keys cannot be empty")
	}
	for _, a := range aliases {
		seq, err := key.ParseSequence(a)
		if err != nil {
			L.ArgError(n, err.Error())
		}
		if len(seq) == 0 {
			L.ArgError(n, "keys cannot be empty")
		}
	}
	return aliases
}

func (o *Overlay) touch(m mode.Mode) {
	for _, seen := range o.modes {
		if seen == m {
			return
		}
	}
	o.modes = append(o.modes, m)
}

// Maps builds one overlay group per mode the script touched. Groups are
// installed shallowest first, then bindings in declaration order.
func (o *Overlay) Maps() (keymap.Maps, error) {
	maps := make(keymap.Maps, len(o.modes))
	for _, m := range o.modes {
		groups := append([]groupOp(nil), o.groups[m]...)
		sort.SliceStable(groups, func(i, j int) bool {
			return groups[i].depth < groups[j].depth
		})

		entries := make([]keymap.Entry, 0, len(groups)+len(o.binds[m]))
		for _, g := range groups {
			entries = append(entries, keymap.SubKeys(g.name, g.sticky, g.aliases))
		}
		for _, b := range o.binds[m] {
			entries = append(entries, keymap.BindKeys(b.command, b.aliases...))
		}

		root, err := keymap.BuildOverlay(entries...)
		if err != nil {
			return nil, fmt.Errorf("%s overlay: %w", m, err)
		}
		maps[m] = root
	}
	return maps, nil
}

// LoadOverlay runs the script at path and returns the per-mode overlays
// it declared.
func LoadOverlay(ctx context.Context, path string, cat *command.Catalog, opts ...StateOption) (keymap.Maps, error) {
	return runOverlay(cat, opts, func(s *State) error {
		return s.DoFile(ctx, path)
	})
}

// LoadOverlayString is LoadOverlay for a script held in memory.
func LoadOverlayString(ctx context.Context, code string, cat *command.Catalog, opts ...StateOption) (keymap.Maps, error) {
	return runOverlay(cat, opts, func(s *State) error {
		return s.DoString(ctx, code)
	})
}

func runOverlay(cat *command.Catalog, opts []StateOption, run func(*State) error) (keymap.Maps, error) {
	state := NewState(opts...)
	defer state.Close()

	o := NewOverlay(cat)
	o.Register(state)
	if err := run(state); err != nil {
		return nil, err
	}
	return o.Maps()
}

package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// Bridge provides utilities for Go-Lua interoperability.
type Bridge struct {
	L *lua.LState
}

// NewBridge creates a new Bridge for the given Lua state.
func NewBridge(L *lua.LState) *Bridge {
	return &Bridge{L: L}
}

// StringsToTable converts a string slice into a Lua array.
func (b *Bridge) StringsToTable(s []string) *lua.LTable {
	t := b.L.CreateTable(len(s), 0)
	for _, v := range s {
		t.Append(lua.LString(v))
	}
	return t
}

// TableStrings returns the string elements of a Lua array. ok is false
// if any element is not a string.
func (b *Bridge) TableStrings(t *lua.LTable) (out []string, ok bool) {
	ok = true
	n := t.Len()
	out = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		s, isStr := t.RawGetInt(i).(lua.LString)
		if !isStr {
			return nil, false
		}
		out = append(out, string(s))
	}
	return out, ok
}

// GetTableString gets a string field from a Lua table.
func (b *Bridge) GetTableString(t *lua.LTable, key string) (string, bool) {
	v := t.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s), true
	}
	return "", false
}

// GetTableBool gets a bool field from a Lua table.
func (b *Bridge) GetTableBool(t *lua.LTable, key string) (bool, bool) {
	v := t.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b), true
	}
	return false, false
}

package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts what scripts can reach: no file loading and a
// require limited to a whitelist.
type Sandbox struct {
	L *lua.LState

	allowed map[string]bool
}

// NewSandbox creates a new sandbox for the Lua state.
func NewSandbox(L *lua.LState) *Sandbox {
	return &Sandbox{
		L: L,
		allowed: map[string]bool{
			"string": true,
			"table":  true,
			"math":   true,
		},
	}
}

// Allow adds a module name to the require whitelist.
func (s *Sandbox) Allow(name string) {
	s.allowed[name] = true
}

// Allowed reports whether require may load name.
func (s *Sandbox) Allowed(name string) bool {
	return s.allowed[name]
}

// Install sets up the sandbox restrictions.
func (s *Sandbox) Install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.installSafeRequire()
}

// installSafeRequire clears the package search paths and replaces require
// with one that only resolves whitelisted or preloaded modules.
func (s *Sandbox) installSafeRequire() {
	if pkg, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkg, "path", lua.LString(""))
		s.L.SetField(pkg, "cpath", lua.LString(""))
	}

	originalRequire := s.L.GetGlobal("require")
	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		modName := L.CheckString(1)
		if !s.allowed[modName] {
			L.RaiseError("module %q is not available", modName)
			return 0
		}
		L.Push(originalRequire)
		L.Push(lua.LString(modName))
		L.Call(1, 1)
		return 1
	}))
}

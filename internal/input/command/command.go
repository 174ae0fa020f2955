// Package command defines the opaque command references a keymap resolves to.
//
// The keymap never runs commands. A Ref is compared by identity only; its
// name exists for display, logging and configuration lookup. The catalogue
// of what each command does lives with the caller that executes them.
package command

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownCommand is returned when a name is not in the catalog.
var ErrUnknownCommand = errors.New("unknown command")

// Kind classifies how a caller should treat a command.
type Kind uint8

const (
	// KindNormal is an ordinary editor command.
	KindNormal Kind = iota

	// KindNoOp is an inert placeholder, used so a group is never empty
	// in help listings.
	KindNoOp

	// KindCancel signals that the pending input should be abandoned,
	// e.g. the command bound to esc.
	KindCancel
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindNoOp:
		return "noop"
	case KindCancel:
		return "cancel"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Command is one entry of a Catalog. Refer to commands through *Command;
// two refs are the same command iff the pointers are equal.
type Command struct {
	name string
	kind Kind
}

// Ref is the opaque handle stored in keymap leaves.
type Ref = *Command

// Name returns the command name, e.g. "goto_file_start".
func (c *Command) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Kind returns the command kind.
func (c *Command) Kind() Kind {
	if c == nil {
		return KindNormal
	}
	return c.kind
}

// String implements fmt.Stringer.
func (c *Command) String() string {
	return c.Name()
}

// Catalog interns command names into refs.
//
// Thread Safety:
// Catalog is safe for concurrent use.
type Catalog struct {
	mu     sync.RWMutex
	byName map[string]*Command
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]*Command)}
}

// Register adds a command, or returns the existing ref when the name is
// already present. The kind of an existing command is not changed.
func (c *Catalog) Register(name string, kind Kind) Ref {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cmd, ok := c.byName[name]; ok {
		return cmd
	}
	cmd := &Command{name: name, kind: kind}
	c.byName[name] = cmd
	return cmd
}

// Lookup returns the ref registered under name. The error for an unknown
// name suggests the closest registered one.
func (c *Catalog) Lookup(name string) (Ref, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cmd, ok := c.byName[name]
	if !ok {
		if hint := c.suggest(name); hint != "" {
			return nil, fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownCommand, name, hint)
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return cmd, nil
}

// MustLookup is Lookup for names known at compile time.
func (c *Catalog) MustLookup(name string) Ref {
	cmd, err := c.Lookup(name)
	if err != nil {
		panic(err)
	}
	return cmd
}

// Names returns all registered names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byName)
}

package keymap

import (
	"errors"
	"fmt"

	"github.com/dshills/keytrie/internal/input/command"
	"github.com/dshills/keytrie/internal/input/key"
)

// Build errors
var (
	ErrEmptySequence = errors.New("empty key sequence")
	ErrNoAliases     = errors.New("entry has no key sequences")
	ErrInvalidKey    = errors.New("invalid key")
	ErrNilCommand    = errors.New("nil command")
)

// BuildError reports an entry that could not be installed.
type BuildError struct {
	// Group is the name of the group being built.
	Group string

	// Keys is the notation of the offending alias, if known.
	Keys string

	Err error
}

func (e *BuildError) Error() string {
	if e.Keys != "" {
		return fmt.Sprintf("keymap %q: %q: %v", e.Group, e.Keys, e.Err)
	}
	return fmt.Sprintf("keymap %q: %v", e.Group, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Entry declares a binding or a sub-group under one or more aliases.
type Entry struct {
	aliases []key.Sequence

	// Leaf entries
	command command.Ref

	// Group entries
	group    bool
	implicit bool
	name     string
	sticky   bool
	children []Entry

	// err holds a deferred notation error reported by Build.
	err     error
	errKeys string
}

// Bind declares a command reachable through each of the aliases.
func Bind(cmd command.Ref, aliases ...key.Sequence) Entry {
	return Entry{aliases: aliases, command: cmd}
}

// Sub declares a named group reachable through each of the aliases.
// Every alias receives its own copy of the group.
func Sub(name string, sticky bool, aliases []key.Sequence, children ...Entry) Entry {
	return Entry{
		aliases:  aliases,
		group:    true,
		name:     name,
		sticky:   sticky,
		children: children,
	}
}

// BindKeys is Bind with aliases written in key notation ("g g", "C-w").
func BindKeys(cmd command.Ref, notations ...string) Entry {
	e := Bind(cmd)
	e.aliases, e.errKeys, e.err = parseAliases(notations)
	return e
}

// SubKeys is Sub with aliases written in key notation.
func SubKeys(name string, sticky bool, notations []string, children ...Entry) Entry {
	e := Sub(name, sticky, nil, children...)
	e.aliases, e.errKeys, e.err = parseAliases(notations)
	return e
}

// Nest declares an unnamed group that only extends whatever group it
// lands on. Merging it never changes the target's name or sticky flag.
func Nest(aliases []key.Sequence, children ...Entry) Entry {
	e := Sub("", false, aliases, children...)
	e.implicit = true
	return e
}

// NestKeys is Nest with aliases written in key notation.
func NestKeys(notations []string, children ...Entry) Entry {
	e := Nest(nil, children...)
	e.aliases, e.errKeys, e.err = parseAliases(notations)
	return e
}

func parseAliases(notations []string) ([]key.Sequence, string, error) {
	aliases := make([]key.Sequence, 0, len(notations))
	for _, n := range notations {
		seq, err := key.ParseSequence(n)
		if err != nil {
			return nil, n, fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
		aliases = append(aliases, seq)
	}
	return aliases, "", nil
}

// Build creates an explicit root group named name from entries. Entries
// are applied in order; a later entry at the same key path replaces the
// earlier one. On error no group is returned.
func Build(name string, entries ...Entry) (*Group, error) {
	return buildGroup(name, false, true, entries)
}

// BuildOverlay creates an implicit root group from entries, suitable as
// the overlay argument of Merge when the base's name must survive.
func BuildOverlay(entries ...Entry) (*Group, error) {
	return buildGroup("", false, false, entries)
}

// MustBuild is like Build but panics on error.
// Use only for static tables.
func MustBuild(name string, entries ...Entry) *Group {
	g, err := Build(name, entries...)
	if err != nil {
		panic(err)
	}
	return g
}

func buildGroup(name string, sticky, explicit bool, entries []Entry) (*Group, error) {
	g := NewGroup(name, sticky)
	g.explicit = explicit
	for _, e := range entries {
		if err := install(g, e); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func install(g *Group, e Entry) error {
	if e.err != nil {
		return &BuildError{Group: g.name, Keys: e.errKeys, Err: e.err}
	}
	if len(e.aliases) == 0 {
		return &BuildError{Group: g.name, Err: ErrNoAliases}
	}
	if !e.group && e.command == nil {
		return &BuildError{Group: g.name, Keys: e.aliases[0].String(), Err: ErrNilCommand}
	}

	for _, seq := range e.aliases {
		if len(seq) == 0 {
			return &BuildError{Group: g.name, Err: ErrEmptySequence}
		}

		var n Node
		if e.group {
			sub, err := buildGroup(e.name, e.sticky, !e.implicit, e.children)
			if err != nil {
				return err
			}
			n = sub
		} else {
			n = NewLeaf(e.command)
		}
		insert(g, seq, n)
	}
	return nil
}

// insert places n at seq below g, creating implicit groups on the way.
// A leaf standing on the way is replaced by a group.
func insert(g *Group, seq key.Sequence, n Node) {
	cur := g
	for _, ev := range seq[:len(seq)-1] {
		child, _ := cur.Child(ev)
		next, ok := child.(*Group)
		if !ok {
			next = newImplicitGroup()
			cur.set(ev, next)
		}
		cur = next
	}
	cur.set(seq[len(seq)-1], n)
}

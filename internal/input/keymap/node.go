package keymap

import (
	"github.com/dshills/keytrie/internal/input/command"
	"github.com/dshills/keytrie/internal/input/key"
)

// Node is either a *Leaf or a *Group.
type Node interface {
	isNode()
}

// Leaf binds a command.
type Leaf struct {
	Command command.Ref
}

func (*Leaf) isNode() {}

// NewLeaf creates a leaf for the given command.
func NewLeaf(cmd command.Ref) *Leaf {
	return &Leaf{Command: cmd}
}

// Group is an interior node holding child nodes keyed by key event.
// Children are unique by key and kept in declaration order.
type Group struct {
	name   string
	sticky bool

	// explicit is false for intermediate groups created while
	// descending a multi-key sequence.
	explicit bool

	keys     []key.Event
	children map[key.Event]Node
}

func (*Group) isNode() {}

// NewGroup creates an empty, explicitly declared group.
func NewGroup(name string, sticky bool) *Group {
	return &Group{
		name:     name,
		sticky:   sticky,
		explicit: true,
		children: make(map[key.Event]Node),
	}
}

func newImplicitGroup() *Group {
	return &Group{children: make(map[key.Event]Node)}
}

// Name returns the display name of the group.
func (g *Group) Name() string { return g.name }

// Sticky reports whether the group stays active after a command fires.
func (g *Group) Sticky() bool { return g.sticky }

// Explicit reports whether name and sticky were declared rather than
// implied by a multi-key sequence.
func (g *Group) Explicit() bool { return g.explicit }

// Len returns the number of children.
func (g *Group) Len() int { return len(g.keys) }

// Child returns the child bound to ev. Edges are stored normalized, so
// "S-g" and "G" find the same child.
func (g *Group) Child(ev key.Event) (Node, bool) {
	n, ok := g.children[ev.Normalize()]
	return n, ok
}

// Binds reports whether ev has a child in this group.
func (g *Group) Binds(ev key.Event) bool {
	_, ok := g.children[ev.Normalize()]
	return ok
}

// Child pairs a key with the node it leads to.
type Child struct {
	Key  key.Event
	Node Node
}

// Children returns the children in display order.
func (g *Group) Children() []Child {
	out := make([]Child, 0, len(g.keys))
	for _, k := range g.keys {
		out = append(out, Child{Key: k, Node: g.children[k]})
	}
	return out
}

// Lookup descends seq from g. An empty sequence returns g itself.
func (g *Group) Lookup(seq key.Sequence) (Node, bool) {
	var cur Node = g
	for _, ev := range seq {
		grp, ok := cur.(*Group)
		if !ok {
			return nil, false
		}
		cur, ok = grp.children[ev.Normalize()]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// LookupGroup descends seq and returns the group found there, if any.
func (g *Group) LookupGroup(seq key.Sequence) (*Group, bool) {
	n, ok := g.Lookup(seq)
	if !ok {
		return nil, false
	}
	grp, ok := n.(*Group)
	return grp, ok
}

// set binds ev to n. Rebinding an existing key keeps its position.
func (g *Group) set(ev key.Event, n Node) {
	ev = ev.Normalize()
	if _, exists := g.children[ev]; !exists {
		g.keys = append(g.keys, ev)
	}
	g.children[ev] = n
}

// Clone returns a deep copy of the group. Leaves share their command
// reference; everything else is copied.
func (g *Group) Clone() *Group {
	c := &Group{
		name:     g.name,
		sticky:   g.sticky,
		explicit: g.explicit,
		keys:     make([]key.Event, len(g.keys)),
		children: make(map[key.Event]Node, len(g.children)),
	}
	copy(c.keys, g.keys)
	for k, n := range g.children {
		c.children[k] = cloneNode(n)
	}
	return c
}

func cloneNode(n Node) Node {
	switch n := n.(type) {
	case *Leaf:
		return &Leaf{Command: n.Command}
	case *Group:
		return n.Clone()
	default:
		return n
	}
}

// Walk visits every node below g depth-first in display order, passing
// the key path from g. Returning false from fn skips a group's children.
func (g *Group) Walk(fn func(path key.Sequence, n Node) bool) {
	g.walk(nil, fn)
}

func (g *Group) walk(prefix key.Sequence, fn func(key.Sequence, Node) bool) {
	for _, k := range g.keys {
		path := prefix.Append(k)
		n := g.children[k]
		if !fn(path, n) {
			continue
		}
		if sub, ok := n.(*Group); ok {
			sub.walk(path, fn)
		}
	}
}

// KeysFor returns every key path below g that binds cmd, in display order.
func (g *Group) KeysFor(cmd command.Ref) []key.Sequence {
	var out []key.Sequence
	g.Walk(func(path key.Sequence, n Node) bool {
		if leaf, ok := n.(*Leaf); ok && leaf.Command == cmd {
			out = append(out, path)
		}
		return true
	})
	return out
}

package resolver

import (
	"sync"

	"github.com/dshills/keytrie/internal/input/command"
	"github.com/dshills/keytrie/internal/input/key"
	"github.com/dshills/keytrie/internal/input/keymap"
	"github.com/dshills/keytrie/internal/input/mode"
	"github.com/dshills/keytrie/internal/logging"
)

// Resolver resolves key events against the mode maps of a store.
type Resolver struct {
	mu sync.Mutex

	store   *keymap.Store
	cursors map[mode.Mode]*cursor
	logger  *logging.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for debug output.
func WithLogger(l *logging.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a resolver reading maps from store.
func New(store *keymap.Store, opts ...Option) *Resolver {
	r := &Resolver{
		store:   store,
		cursors: make(map[mode.Mode]*cursor),
		logger:  logging.Default().WithComponent("resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// cursor is the resolution state of one mode.
type cursor struct {
	// snap is held from the first key of a sequence until it ends.
	snap *keymap.Snapshot

	// path leads from the mode root to the active group.
	path key.Sequence

	// sticky leads from the mode root to the sticky group, if any.
	sticky    key.Sequence
	hasSticky bool

	count   CountState
	pending key.Sequence
}

func (r *Resolver) cursor(m mode.Mode) *cursor {
	c, ok := r.cursors[m]
	if !ok {
		c = &cursor{snap: r.store.Load()}
		r.cursors[m] = c
	}
	return c
}

// Feed resolves one key event in mode m.
func (r *Resolver) Feed(m mode.Mode, ev key.Event) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	ev = ev.Normalize()
	c := r.cursor(m)
	if len(c.pending) == 0 {
		// Between sequences a reload takes effect immediately
		r.adopt(m, c)
		c.rewind()
	}
	c.pending = c.pending.Append(ev)

	root, ok := c.snap.Root(m)
	if !ok {
		return r.finish(m, c, Result{Kind: NotFound})
	}
	group, ok := root.LookupGroup(c.path)
	if !ok {
		// The path was validated when the snapshot was adopted
		c.path = nil
		group = root
	}

	if d, ok := ev.Digit(); ok && r.countsDigit(c, root, d, ev) {
		c.count.AccumulateDigit(d)
		return Result{Kind: Pending, Group: group, Count: c.count.Value, Keys: c.pending.Clone()}
	}

	child, ok := group.Child(ev)
	if !ok {
		if ev.IsEscape() && c.hasSticky && c.path.Equals(c.sticky) {
			c.clearSticky()
			return r.finish(m, c, Result{Kind: Cancelled})
		}
		return r.finish(m, c, Result{Kind: NotFound})
	}

	switch n := child.(type) {
	case *keymap.Leaf:
		res := Result{Kind: Matched, Command: n.Command, Count: c.count.Get()}
		if n.Command.Kind() == command.KindCancel {
			res.Kind = Cancelled
			c.clearSticky()
		}
		return r.finish(m, c, res)

	case *keymap.Group:
		c.path = c.path.Append(ev)
		if n.Sticky() {
			c.sticky = c.path.Clone()
			c.hasSticky = true
		}
		return Result{Kind: Pending, Group: n, Count: c.count.Value, Keys: c.pending.Clone()}
	}

	return r.finish(m, c, Result{Kind: NotFound})
}

// countsDigit reports whether digit d extends the count rather than
// being looked up. '0' continues an active count unconditionally; a bound
// '1'-'9' is looked up even mid-count.
func (r *Resolver) countsDigit(c *cursor, root *keymap.Group, d int, ev key.Event) bool {
	if d == 0 {
		return c.count.Active
	}
	return !boundOnPath(root, c.path, ev)
}

// boundOnPath reports whether ev is bound by root or by any group along
// path.
func boundOnPath(root *keymap.Group, path key.Sequence, ev key.Event) bool {
	g := root
	if g.Binds(ev) {
		return true
	}
	for _, k := range path {
		next, ok := g.Child(k)
		if !ok {
			return false
		}
		if g, ok = next.(*keymap.Group); !ok {
			return false
		}
		if g.Binds(ev) {
			return true
		}
	}
	return false
}

// finish completes a terminal outcome and resets the cursor.
func (r *Resolver) finish(m mode.Mode, c *cursor, res Result) Result {
	res.Keys = c.pending
	if res.Kind == NotFound {
		r.logger.Debug("key not bound", "mode", m, "keys", res.Keys.String())
	}

	c.pending = nil
	c.count.Reset()
	r.adopt(m, c)
	c.rewind()
	return res
}

// adopt moves the cursor to the newest snapshot, dropping a sticky path
// that no longer leads to a group.
func (r *Resolver) adopt(m mode.Mode, c *cursor) {
	latest := r.store.Load()
	if latest == c.snap {
		return
	}
	c.snap = latest
	if !c.hasSticky {
		return
	}
	root, ok := latest.Root(m)
	if !ok {
		c.clearSticky()
		return
	}
	if g, ok := root.LookupGroup(c.sticky); !ok || !g.Sticky() {
		r.logger.Debug("sticky group gone after reload", "mode", m, "keys", c.sticky.String())
		c.clearSticky()
	}
}

// rewind returns the cursor to the sticky group, or the root.
func (c *cursor) rewind() {
	if c.hasSticky {
		c.path = c.sticky.Clone()
	} else {
		c.path = nil
	}
}

func (c *cursor) clearSticky() {
	c.sticky = nil
	c.hasSticky = false
}

// Reset abandons any pending input in mode m and leaves sticky groups.
func (r *Resolver) Reset(m mode.Mode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.cursor(m)
	c.clearSticky()
	c.pending = nil
	c.path = nil
	c.count.Reset()
	r.adopt(m, c)
}

// ExitSticky leaves the sticky group of mode m, if any, and abandons
// pending input. Returns true if a sticky group was active.
func (r *Resolver) ExitSticky(m mode.Mode) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.cursor(m)
	was := c.hasSticky
	c.clearSticky()
	c.pending = nil
	c.path = nil
	c.count.Reset()
	r.adopt(m, c)
	return was
}

// State is a read-only view of a mode's cursor.
type State struct {
	// Pending are the keys typed since the last terminal outcome.
	Pending key.Sequence

	// Count is the count typed so far; HasCount is false if none.
	Count    int
	HasCount bool

	// Group is the group the next key is looked up in.
	Group *keymap.Group

	// Sticky is the active sticky group, or nil.
	Sticky *keymap.Group
}

// State returns the cursor state of mode m.
func (r *Resolver) State(m mode.Mode) State {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.cursor(m)
	st := State{
		Pending:  c.pending.Clone(),
		Count:    c.count.Value,
		HasCount: c.count.Active,
	}
	root, ok := c.snap.Root(m)
	if !ok {
		return st
	}
	st.Group, _ = root.LookupGroup(c.path)
	if c.hasSticky {
		st.Sticky, _ = root.LookupGroup(c.sticky)
	}
	return st
}

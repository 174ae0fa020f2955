package keymap

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/keytrie/internal/input/mode"
)

// ErrNilRoot is returned when a mode map has no root group.
var ErrNilRoot = errors.New("mode map has no root group")

// Snapshot is an immutable set of mode maps. Nothing may mutate a
// snapshot's groups once it has been published.
type Snapshot struct {
	ID      uuid.UUID
	Maps    Maps
	Created time.Time
}

// Root returns the root group of mode m.
func (s *Snapshot) Root(m mode.Mode) (*Group, bool) {
	if s == nil {
		return nil, false
	}
	g, ok := s.Maps[m]
	return g, ok && g != nil
}

// Modes returns the modes present in the snapshot in declaration order.
func (s *Snapshot) Modes() []mode.Mode {
	var out []mode.Mode
	for _, m := range mode.All {
		if _, ok := s.Root(m); ok {
			out = append(out, m)
		}
	}
	return out
}

// Store publishes snapshots. Readers never block.
type Store struct {
	current atomic.Pointer[Snapshot]

	mu        sync.Mutex
	listeners []listener
	nextID    uint64
}

type listener struct {
	id uint64
	fn func(*Snapshot)
}

// NewStore creates a store holding an initial snapshot of maps.
func NewStore(maps Maps) (*Store, error) {
	s := &Store{}
	if _, err := s.Publish(maps); err != nil {
		return nil, err
	}
	return s, nil
}

// Load returns the current snapshot.
func (s *Store) Load() *Snapshot {
	return s.current.Load()
}

// Publish replaces the current snapshot with one holding maps. The store
// takes ownership of maps; callers must not modify them afterwards.
func (s *Store) Publish(maps Maps) (*Snapshot, error) {
	for m, g := range maps {
		if g == nil {
			return nil, fmt.Errorf("%w: %s", ErrNilRoot, m)
		}
	}

	snap := &Snapshot{
		ID:      uuid.New(),
		Maps:    maps,
		Created: time.Now(),
	}
	s.current.Store(snap)

	s.mu.Lock()
	listeners := make([]listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		if l.fn != nil {
			l.fn(snap)
		}
	}
	return snap, nil
}

// OnPublish registers fn to run after each publication.
// Returns a function to unregister it; calling it again is a no-op.
func (s *Store) OnPublish(fn func(*Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

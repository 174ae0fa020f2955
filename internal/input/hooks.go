package input

import (
	"sort"

	"github.com/dshills/keytrie/internal/input/key"
	"github.com/dshills/keytrie/internal/input/mode"
	"github.com/dshills/keytrie/internal/input/resolver"
	"github.com/dshills/keytrie/internal/logging"
)

// Hook allows interception of input handling.
type Hook interface {
	// PreKeyEvent is called before an event reaches the resolver.
	// Return true to consume the event (stop further processing).
	PreKeyEvent(event *key.Event, m mode.Mode) bool

	// PostKeyEvent is called with the resolver's result.
	PostKeyEvent(event key.Event, res resolver.Result)

	// PreAction is called before dispatching an action.
	// Return true to consume the action.
	PreAction(action *Action) bool
}

// HookPriority defines the execution order for hooks.
// Lower values execute first.
type HookPriority int

const (
	// HookPriorityHigh runs early in the hook chain.
	HookPriorityHigh HookPriority = -100
	// HookPriorityNormal is the default priority.
	HookPriorityNormal HookPriority = 0
	// HookPriorityLow runs late in the hook chain.
	HookPriorityLow HookPriority = 100
)

// HookID uniquely identifies a registered hook.
type HookID uint64

type hookEntry struct {
	id       HookID
	priority HookPriority
	hook     Hook
}

// hookChain keeps hooks ordered by priority, then registration.
// It is guarded by the Handler's mutex.
type hookChain struct {
	entries []hookEntry
	nextID  HookID
}

func (c *hookChain) add(h Hook, p HookPriority) HookID {
	c.nextID++
	c.entries = append(c.entries, hookEntry{id: c.nextID, priority: p, hook: h})
	sort.SliceStable(c.entries, func(i, j int) bool {
		return c.entries[i].priority < c.entries[j].priority
	})
	return c.nextID
}

func (c *hookChain) remove(id HookID) bool {
	for i, e := range c.entries {
		if e.id == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (c *hookChain) preKeyEvent(event *key.Event, m mode.Mode) bool {
	for _, e := range c.entries {
		if e.hook.PreKeyEvent(event, m) {
			return true
		}
	}
	return false
}

func (c *hookChain) postKeyEvent(event key.Event, res resolver.Result) {
	for _, e := range c.entries {
		e.hook.PostKeyEvent(event, res)
	}
}

func (c *hookChain) preAction(action *Action) bool {
	for _, e := range c.entries {
		if e.hook.PreAction(action) {
			return true
		}
	}
	return false
}

// BaseHook provides a default implementation of the Hook interface.
// Embed this in custom hooks to only implement the methods you need.
type BaseHook struct{}

// PreKeyEvent is a no-op that does not consume events.
func (BaseHook) PreKeyEvent(*key.Event, mode.Mode) bool {
	return false
}

// PostKeyEvent is a no-op.
func (BaseHook) PostKeyEvent(key.Event, resolver.Result) {}

// PreAction is a no-op that does not consume actions.
func (BaseHook) PreAction(*Action) bool {
	return false
}

// FuncHook wraps functions into a Hook interface implementation.
type FuncHook struct {
	PreKeyEventFunc  func(*key.Event, mode.Mode) bool
	PostKeyEventFunc func(key.Event, resolver.Result)
	PreActionFunc    func(*Action) bool
}

// PreKeyEvent calls the PreKeyEventFunc if set.
func (h FuncHook) PreKeyEvent(event *key.Event, m mode.Mode) bool {
	if h.PreKeyEventFunc != nil {
		return h.PreKeyEventFunc(event, m)
	}
	return false
}

// PostKeyEvent calls the PostKeyEventFunc if set.
func (h FuncHook) PostKeyEvent(event key.Event, res resolver.Result) {
	if h.PostKeyEventFunc != nil {
		h.PostKeyEventFunc(event, res)
	}
}

// PreAction calls the PreActionFunc if set.
func (h FuncHook) PreAction(action *Action) bool {
	if h.PreActionFunc != nil {
		return h.PreActionFunc(action)
	}
	return false
}

// LoggingHook logs every key event and its outcome at debug level.
type LoggingHook struct {
	BaseHook
	Logger *logging.Logger
}

// PreKeyEvent logs the key event.
func (h LoggingHook) PreKeyEvent(event *key.Event, m mode.Mode) bool {
	if h.Logger != nil {
		h.Logger.Debug("key event", "key", event.String(), "mode", m)
	}
	return false
}

// PostKeyEvent logs the resolver outcome.
func (h LoggingHook) PostKeyEvent(event key.Event, res resolver.Result) {
	if h.Logger != nil {
		h.Logger.Debug("resolved", "key", event.String(), "result", res.String())
	}
}

// FilterHook filters events or actions based on predicates.
type FilterHook struct {
	BaseHook

	// KeyEventFilter returns true to block/consume a key event.
	KeyEventFilter func(*key.Event, mode.Mode) bool

	// ActionFilter returns true to block/consume an action.
	ActionFilter func(*Action) bool
}

// PreKeyEvent applies the key event filter.
func (h FilterHook) PreKeyEvent(event *key.Event, m mode.Mode) bool {
	if h.KeyEventFilter != nil {
		return h.KeyEventFilter(event, m)
	}
	return false
}

// PreAction applies the action filter.
func (h FilterHook) PreAction(action *Action) bool {
	if h.ActionFilter != nil {
		return h.ActionFilter(action)
	}
	return false
}

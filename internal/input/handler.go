package input

import (
	"sync"
	"time"

	"github.com/dshills/keytrie/internal/input/key"
	"github.com/dshills/keytrie/internal/input/mode"
	"github.com/dshills/keytrie/internal/input/resolver"
	"github.com/dshills/keytrie/internal/logging"
)

// Config configures the input handler.
type Config struct {
	// DefaultMode is the initial mode (default: normal).
	DefaultMode mode.Mode

	// ActionBuffer is the capacity of the action channel (default: 100).
	ActionBuffer int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultMode:  mode.Normal,
		ActionBuffer: 100,
	}
}

// Handler is the main entry point for key input.
type Handler struct {
	mu sync.Mutex

	config   Config
	modes    *mode.Manager
	resolver *resolver.Resolver
	hooks    hookChain
	metrics  *Metrics
	logger   *logging.Logger

	// Action output channel
	actionChan chan Action

	closed bool
}

// NewHandler creates a handler resolving keys with r.
func NewHandler(config Config, r *resolver.Resolver) *Handler {
	if config.ActionBuffer <= 0 {
		config.ActionBuffer = DefaultConfig().ActionBuffer
	}
	if !config.DefaultMode.Valid() {
		config.DefaultMode = mode.Normal
	}

	h := &Handler{
		config:     config,
		modes:      mode.NewManager(config.DefaultMode),
		resolver:   r,
		metrics:    NewMetrics(),
		logger:     logging.Default().WithComponent("input"),
		actionChan: make(chan Action, config.ActionBuffer),
	}

	// Leaving a mode abandons its pending keys and sticky group
	h.modes.OnChange(func(from, _ mode.Mode) {
		r.Reset(from)
	})
	return h
}

// HandleKeyEvent processes a key event in the current mode and returns
// the resolver's result. An event consumed by a hook, or sent after
// Close, yields NotFound with no keys.
func (h *Handler) HandleKeyEvent(event key.Event) resolver.Result {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return resolver.Result{Kind: resolver.NotFound}
	}

	m := h.modes.Current()
	if h.hooks.preKeyEvent(&event, m) {
		h.metrics.RecordHookConsumption()
		return resolver.Result{Kind: resolver.NotFound}
	}

	start := time.Now()
	res := h.resolver.Feed(m, event)
	h.metrics.RecordKeyEvent(res.Kind, time.Since(start))

	if res.Command != nil {
		h.dispatchAction(Action{
			Command: res.Command,
			Count:   max(res.Count, 1),
			Keys:    res.Keys,
			Mode:    m,
			Source:  SourceKeyboard,
			Cancel:  res.Kind == resolver.Cancelled,
		})
	}

	h.hooks.postKeyEvent(event, res)
	return res
}

// dispatchAction sends an action to the output channel.
func (h *Handler) dispatchAction(action Action) {
	if h.hooks.preAction(&action) {
		h.metrics.RecordHookConsumption()
		return
	}

	// Non-blocking send with overflow protection
	select {
	case h.actionChan <- action:
	default:
		// Channel full - drop oldest and try again
		select {
		case <-h.actionChan:
			h.metrics.RecordDroppedAction()
			h.logger.Warn("action channel full, dropped oldest action")
		default:
		}
		select {
		case h.actionChan <- action:
		default:
			h.metrics.RecordDroppedAction()
			return
		}
	}
	h.metrics.RecordAction()
}

// Actions returns the channel for receiving dispatched actions.
func (h *Handler) Actions() <-chan Action {
	return h.actionChan
}

// Modes returns the mode manager.
func (h *Handler) Modes() *mode.Manager {
	return h.modes
}

// Metrics returns the handler's metrics.
func (h *Handler) Metrics() *Metrics {
	return h.metrics
}

// CurrentMode returns the current mode.
func (h *Handler) CurrentMode() mode.Mode {
	return h.modes.Current()
}

// SwitchMode changes to a different mode, abandoning pending input in
// the mode being left.
func (h *Handler) SwitchMode(m mode.Mode) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.modes.Switch(m)
}

// PendingKeys returns the keys typed since the last resolved command.
func (h *Handler) PendingKeys() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.resolver.State(h.modes.Current()).Pending.String()
}

// State returns the resolver state of the current mode.
func (h *Handler) State() resolver.State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.resolver.State(h.modes.Current())
}

// AddHook adds an input hook with the given priority.
func (h *Handler) AddHook(hook Hook, priority HookPriority) HookID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hooks.add(hook, priority)
}

// RemoveHook removes an input hook. Returns false if id is unknown.
func (h *Handler) RemoveHook(id HookID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hooks.remove(id)
}

// Close shuts down the handler and closes the action channel.
func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	h.closed = true
	close(h.actionChan)
}

// IsClosed returns true if the handler has been closed.
func (h *Handler) IsClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

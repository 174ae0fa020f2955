package input

import (
	"testing"

	"github.com/dshills/keytrie/internal/input/command"
	"github.com/dshills/keytrie/internal/input/key"
	"github.com/dshills/keytrie/internal/input/keymap"
	"github.com/dshills/keytrie/internal/input/mode"
	"github.com/dshills/keytrie/internal/input/resolver"
	"github.com/dshills/keytrie/internal/logging"
)

func newTestHandler(t *testing.T, config Config) *Handler {
	t.Helper()
	store, err := keymap.NewStore(keymap.DefaultMaps(command.NewBuiltinCatalog()))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return NewHandler(config, resolver.New(store, resolver.WithLogger(logging.Discard())))
}

func sendKeys(h *Handler, keys string) resolver.Result {
	var res resolver.Result
	for _, ev := range key.MustParseSequence(keys) {
		res = h.HandleKeyEvent(ev)
	}
	return res
}

func TestNewHandler(t *testing.T) {
	h := newTestHandler(t, DefaultConfig())
	defer h.Close()

	if h.CurrentMode() != mode.Normal {
		t.Errorf("CurrentMode() = %v, want normal", h.CurrentMode())
	}
	if h.IsClosed() {
		t.Error("handler should not be closed after creation")
	}
}

func TestHandlerInvalidConfigFallsBack(t *testing.T) {
	h := newTestHandler(t, Config{DefaultMode: mode.Mode(99)})
	defer h.Close()

	if h.CurrentMode() != mode.Normal {
		t.Errorf("CurrentMode() = %v, want normal", h.CurrentMode())
	}
	if cap(h.actionChan) != 100 {
		t.Errorf("action buffer = %d, want 100", cap(h.actionChan))
	}
}

func TestHandlerDispatchesMatchedCommands(t *testing.T) {
	h := newTestHandler(t, DefaultConfig())
	defer h.Close()

	if res := sendKeys(h, "g"); res.Kind != resolver.Pending {
		t.Fatalf("g = %v, want pending", res)
	}
	if got := h.PendingKeys(); got != "g" {
		t.Errorf("PendingKeys() = %q, want %q", got, "g")
	}

	sendKeys(h, "g")

	select {
	case a := <-h.Actions():
		if a.Name() != "goto_file_start" || a.Count != 1 || a.Mode != mode.Normal {
			t.Errorf("action = %v, want goto_file_start x1 in normal", a)
		}
		if a.Keys.String() != "g g" {
			t.Errorf("Keys = %q, want %q", a.Keys.String(), "g g")
		}
	default:
		t.Fatal("expected an action")
	}

	if got := h.PendingKeys(); got != "" {
		t.Errorf("PendingKeys() = %q after match, want empty", got)
	}
}

func TestHandlerCancelAction(t *testing.T) {
	h := newTestHandler(t, DefaultConfig())
	defer h.Close()

	sendKeys(h, "esc")

	select {
	case a := <-h.Actions():
		if !a.Cancel || a.Name() != command.NormalMode {
			t.Errorf("action = %+v, want cancelling normal_mode", a)
		}
	default:
		t.Fatal("expected an action for esc")
	}
}

func TestHandlerNotFoundDispatchesNothing(t *testing.T) {
	h := newTestHandler(t, DefaultConfig())
	defer h.Close()

	if res := sendKeys(h, "g x"); res.Kind != resolver.NotFound {
		t.Fatalf("g x = %v, want not-found", res)
	}

	select {
	case a := <-h.Actions():
		t.Errorf("unexpected action %v", a)
	default:
	}

	snap := h.Metrics().Snapshot()
	if snap.KeyEventsTotal != 2 || snap.PendingTotal != 1 || snap.NotFoundTotal != 1 {
		t.Errorf("metrics = %+v, want 2 keys, 1 pending, 1 not-found", snap)
	}
}

func TestHandlerSwitchModeResetsPending(t *testing.T) {
	h := newTestHandler(t, DefaultConfig())
	defer h.Close()

	sendKeys(h, "3 g")
	if err := h.SwitchMode(mode.Insert); err != nil {
		t.Fatalf("SwitchMode(insert) error = %v", err)
	}
	if h.CurrentMode() != mode.Insert {
		t.Errorf("CurrentMode() = %v, want insert", h.CurrentMode())
	}

	if err := h.SwitchMode(mode.Normal); err != nil {
		t.Fatalf("SwitchMode(normal) error = %v", err)
	}
	if st := h.State(); len(st.Pending) != 0 || st.HasCount {
		t.Errorf("normal state = %+v, want reset after leaving the mode", st)
	}

	// g now starts a fresh sequence
	if res := sendKeys(h, "g"); res.Kind != resolver.Pending || res.Count != 0 {
		t.Errorf("g = %v, want pending without count", res)
	}
}

func TestHandlerSwitchModeInvalid(t *testing.T) {
	h := newTestHandler(t, DefaultConfig())
	defer h.Close()

	if err := h.SwitchMode(mode.Mode(42)); err == nil {
		t.Error("SwitchMode(42) should fail")
	}
}

func TestHandlerHooks(t *testing.T) {
	h := newTestHandler(t, DefaultConfig())
	defer h.Close()

	var order []string
	h.AddHook(FuncHook{PreKeyEventFunc: func(*key.Event, mode.Mode) bool {
		order = append(order, "low")
		return false
	}}, HookPriorityLow)
	h.AddHook(FuncHook{PreKeyEventFunc: func(*key.Event, mode.Mode) bool {
		order = append(order, "high")
		return false
	}}, HookPriorityHigh)

	var results []resolver.Kind
	id := h.AddHook(FuncHook{PostKeyEventFunc: func(_ key.Event, res resolver.Result) {
		results = append(results, res.Kind)
	}}, HookPriorityNormal)

	sendKeys(h, "w")

	if len(order) != 2 || order[0] != "high" || order[1] != "low" {
		t.Errorf("hook order = %v, want [high low]", order)
	}
	if len(results) != 1 || results[0] != resolver.Matched {
		t.Errorf("post results = %v, want [matched]", results)
	}

	if !h.RemoveHook(id) {
		t.Error("RemoveHook should find the hook")
	}
	if h.RemoveHook(id) {
		t.Error("RemoveHook twice should fail")
	}
}

func TestHandlerFilterHookConsumes(t *testing.T) {
	h := newTestHandler(t, DefaultConfig())
	defer h.Close()

	h.AddHook(FilterHook{
		KeyEventFilter: func(ev *key.Event, _ mode.Mode) bool { return ev.Rune == 'u' },
		ActionFilter:   func(a *Action) bool { return a.Name() == "redo" },
	}, HookPriorityNormal)

	sendKeys(h, "u U w")

	a := <-h.Actions()
	if a.Name() != "move_next_word_start" {
		t.Errorf("action = %v, want move_next_word_start", a)
	}
	if got := h.Metrics().Snapshot().HookConsumptions; got != 2 {
		t.Errorf("HookConsumptions = %d, want 2", got)
	}
}

func TestHandlerHookRewritesEvent(t *testing.T) {
	h := newTestHandler(t, DefaultConfig())
	defer h.Close()

	// Map j to n, as a keyboard layout shim would
	h.AddHook(FuncHook{PreKeyEventFunc: func(ev *key.Event, _ mode.Mode) bool {
		if ev.Rune == 'j' {
			ev.Rune = 'n'
		}
		return false
	}}, HookPriorityNormal)

	sendKeys(h, "j")
	if a := <-h.Actions(); a.Name() != "move_visual_line_down" {
		t.Errorf("action = %v, want move_visual_line_down", a)
	}
}

func TestHandlerActionOverflowDropsOldest(t *testing.T) {
	h := newTestHandler(t, Config{DefaultMode: mode.Normal, ActionBuffer: 2})
	defer h.Close()

	sendKeys(h, "w b u")

	first := <-h.Actions()
	second := <-h.Actions()
	if first.Name() != "move_prev_word_start" || second.Name() != "undo" {
		t.Errorf("actions = %v, %v, want the two newest", first, second)
	}
	if got := h.Metrics().Snapshot().DroppedActions; got != 1 {
		t.Errorf("DroppedActions = %d, want 1", got)
	}
}

func TestHandlerClose(t *testing.T) {
	h := newTestHandler(t, DefaultConfig())
	h.Close()
	h.Close()

	if !h.IsClosed() {
		t.Error("IsClosed() should be true")
	}
	if res := h.HandleKeyEvent(key.MustParse("w")); res.Kind != resolver.NotFound || len(res.Keys) != 0 {
		t.Errorf("HandleKeyEvent after Close = %v, want empty not-found", res)
	}
	if _, ok := <-h.Actions(); ok {
		t.Error("action channel should be closed")
	}
}

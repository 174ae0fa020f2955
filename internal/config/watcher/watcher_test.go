package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keytrie/internal/logging"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) handle(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func newTestWatcher(t *testing.T, opts ...Option) *Watcher {
	t.Helper()
	opts = append([]Option{WithLogger(logging.Discard())}, opts...)
	w, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestNew(t *testing.T) {
	w := newTestWatcher(t)
	assert.Equal(t, 100*time.Millisecond, w.debounce)
	assert.False(t, w.IsRunning())

	w = newTestWatcher(t, WithDebounce(20*time.Millisecond))
	assert.Equal(t, 20*time.Millisecond, w.debounce)
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.String())
	}
}

func TestConvertOp(t *testing.T) {
	op, ok := convertOp(fsnotify.Write)
	assert.True(t, ok)
	assert.Equal(t, OpWrite, op)

	op, ok = convertOp(fsnotify.Create | fsnotify.Write)
	assert.True(t, ok)
	assert.Equal(t, OpCreate, op)

	_, ok = convertOp(fsnotify.Chmod)
	assert.False(t, ok)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, OpCreate, coalesce(OpCreate, OpWrite))
	assert.Equal(t, OpWrite, coalesce(OpWrite, OpWrite))
	assert.Equal(t, OpRemove, coalesce(OpCreate, OpRemove))
	assert.Equal(t, OpCreate, coalesce(OpRemove, OpCreate))
}

func TestWatcher_WatchAndUnwatch(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(existing, []byte("x = 1"), 0o644))
	missing := filepath.Join(dir, "later.toml")

	w := newTestWatcher(t)
	require.NoError(t, w.Watch(existing))
	require.NoError(t, w.Watch(missing), "missing file in existing dir is allowed")
	require.NoError(t, w.Watch(existing), "watching twice is a no-op")
	assert.Len(t, w.WatchedFiles(), 2)
	assert.Equal(t, 1, len(w.dirs))

	require.NoError(t, w.Unwatch(existing))
	assert.Equal(t, []string{missing}, w.WatchedFiles())
	require.NoError(t, w.Unwatch(missing))
	assert.Empty(t, w.dirs)

	assert.Error(t, w.Watch(filepath.Join(dir, "nope", "x.toml")))
}

func TestWatcher_DeliversDebouncedWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	other := filepath.Join(dir, "other.toml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	w := newTestWatcher(t, WithDebounce(50*time.Millisecond))
	rec := &recorder{}
	w.OnChange(rec.handle)
	require.NoError(t, w.Watch(path))
	w.Start()
	assert.True(t, w.IsRunning())

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0o644))
	}
	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) >= 1
	}, 2*time.Second, 10*time.Millisecond)

	time.Sleep(150 * time.Millisecond)
	events := rec.snapshot()
	require.Len(t, events, 1, "burst should coalesce")
	assert.Equal(t, path, events[0].Path)
}

func TestWatcher_SeesAtomicSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1"), 0o644))

	w := newTestWatcher(t, WithDebounce(0))
	rec := &recorder{}
	w.OnChange(rec.handle)
	require.NoError(t, w.Watch(path))
	w.Start()

	tmp := filepath.Join(dir, ".keys.yaml.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("a: 2"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	require.Eventually(t, func() bool {
		for _, ev := range rec.snapshot() {
			if ev.Path == path {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_HandlerPanicDoesNotStopDelivery(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	w := newTestWatcher(t, WithDebounce(0))
	rec := &recorder{}
	w.OnChange(func(Event) { panic("boom") })
	w.OnChange(rec.handle)
	require.NoError(t, w.Watch(path))
	w.Start()

	require.NoError(t, os.WriteFile(path, []byte("b"), 0o644))
	require.Eventually(t, func() bool {
		return len(rec.snapshot()) > 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_StopAndClose(t *testing.T) {
	w := newTestWatcher(t)
	w.Start()
	w.Start()
	assert.True(t, w.IsRunning())

	w.Stop()
	assert.False(t, w.IsRunning())
	w.Stop()

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Watch(t.TempDir()+"/x.toml"), ErrWatcherClosed)
}

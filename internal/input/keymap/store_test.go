package keymap

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/dshills/keytrie/internal/input/mode"
)

func TestStorePublish(t *testing.T) {
	cat := testCatalog()
	store, err := NewStore(Maps{mode.Normal: MustBuild("Normal", BindKeys(cat.MustLookup("left"), "h"))})
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	first := store.Load()
	if first.ID == uuid.Nil {
		t.Error("snapshot ID should be set")
	}
	if _, ok := first.Root(mode.Normal); !ok {
		t.Error("normal map missing")
	}
	if _, ok := first.Root(mode.Insert); ok {
		t.Error("insert map should be absent")
	}

	var seen *Snapshot
	unregister := store.OnPublish(func(s *Snapshot) { seen = s })

	second, err := store.Publish(Maps{mode.Insert: NewGroup("Insert", false)})
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if store.Load() != second || seen != second {
		t.Error("Publish should replace the current snapshot and notify listeners")
	}
	if second.ID == first.ID {
		t.Error("each snapshot should get a new ID")
	}
	if modes := second.Modes(); len(modes) != 1 || modes[0] != mode.Insert {
		t.Errorf("Modes() = %v, want [insert]", modes)
	}

	unregister()
	third, _ := store.Publish(Maps{})
	if seen == third {
		t.Error("unregistered listener was called")
	}
}

func TestStoreUnregisterReleasesListeners(t *testing.T) {
	store, err := NewStore(Maps{})
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	var calls []string
	keep := store.OnPublish(func(*Snapshot) { calls = append(calls, "keep") })
	defer keep()

	for i := 0; i < 100; i++ {
		unregister := store.OnPublish(func(*Snapshot) { calls = append(calls, "temp") })
		unregister()
		unregister()
	}
	if got := len(store.listeners); got != 1 {
		t.Errorf("len(listeners) = %d, want 1", got)
	}

	last := store.OnPublish(func(*Snapshot) { calls = append(calls, "last") })
	defer last()
	if _, err := store.Publish(Maps{}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(calls) != 2 || calls[0] != "keep" || calls[1] != "last" {
		t.Errorf("calls = %v, want [keep last]", calls)
	}
}

func TestStorePublishRejectsNilRoot(t *testing.T) {
	store, err := NewStore(Maps{})
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	before := store.Load()

	if _, err := store.Publish(Maps{mode.Normal: nil}); !errors.Is(err, ErrNilRoot) {
		t.Errorf("Publish() error = %v, want ErrNilRoot", err)
	}
	if store.Load() != before {
		t.Error("failed publish should keep the previous snapshot")
	}
}

func TestNilSnapshotRoot(t *testing.T) {
	var s *Snapshot
	if _, ok := s.Root(mode.Normal); ok {
		t.Error("nil snapshot should have no roots")
	}
}

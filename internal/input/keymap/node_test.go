package keymap

import (
	"testing"

	"github.com/dshills/keytrie/internal/input/key"
)

func TestChildrenDisplayOrder(t *testing.T) {
	cat := testCatalog()
	g := MustBuild("test",
		BindKeys(cat.MustLookup("up"), "k"),
		BindKeys(cat.MustLookup("down"), "j"),
		BindKeys(cat.MustLookup("left"), "h"),
	)

	want := []string{"k", "j", "h"}
	children := g.Children()
	if len(children) != len(want) {
		t.Fatalf("len(Children()) = %d, want %d", len(children), len(want))
	}
	for i, c := range children {
		if c.Key.String() != want[i] {
			t.Errorf("Children()[%d] = %s, want %s", i, c.Key, want[i])
		}
	}
}

func TestLookupEmptySequenceReturnsGroup(t *testing.T) {
	g := NewGroup("root", false)
	n, ok := g.Lookup(nil)
	if !ok || n != Node(g) {
		t.Errorf("Lookup(nil) = %v, %v, want the group itself", n, ok)
	}
	if _, ok := g.Lookup(seq("x")); ok {
		t.Error("Lookup(x) on empty group should fail")
	}
}

func TestLookupThroughLeafFails(t *testing.T) {
	cat := testCatalog()
	g := MustBuild("test", BindKeys(cat.MustLookup("left"), "h"))
	if _, ok := g.Lookup(seq("h j")); ok {
		t.Error("Lookup should not descend through a leaf")
	}
}

func TestCloneIsDeep(t *testing.T) {
	cat := testCatalog()
	orig := MustBuild("test",
		SubKeys("Goto", false, []string{"g"},
			BindKeys(cat.MustLookup("top"), "g"),
		),
	)

	clone := orig.Clone()
	Merge(clone, MustBuild("",
		BindKeys(cat.MustLookup("bottom"), "g e"),
		BindKeys(cat.MustLookup("save"), "s"),
	))

	if _, ok := orig.Lookup(seq("g e")); ok {
		t.Error("changes to the clone leaked into g of the original")
	}
	if orig.Binds(key.MustParse("s")) {
		t.Error("changes to the clone leaked into the original root")
	}
	if _, ok := clone.Lookup(seq("g g")); !ok {
		t.Error("clone lost g g")
	}
}

func TestKeysFor(t *testing.T) {
	cat := testCatalog()
	top := cat.MustLookup("top")
	g := MustBuild("test",
		BindKeys(top, "g g", "C-home"),
		BindKeys(cat.MustLookup("left"), "h"),
	)

	got := g.KeysFor(top)
	if len(got) != 2 {
		t.Fatalf("KeysFor() = %v, want 2 paths", got)
	}
	if got[0].String() != "g g" || got[1].String() != "C-home" {
		t.Errorf("KeysFor() = %v, want [g g, C-home]", got)
	}
	if paths := g.KeysFor(cat.MustLookup("save")); len(paths) != 0 {
		t.Errorf("KeysFor(save) = %v, want none", paths)
	}
}

func TestInfoboxFoldsAliases(t *testing.T) {
	cat := testCatalog()
	g := MustBuild("test",
		BindKeys(cat.MustLookup("left"), "m", "left"),
		SubKeys("View", false, []string{"z"}),
		SubKeys("View", true, []string{"Z"}),
		BindKeys(cat.MustLookup("right"), "i"),
		BindKeys(cat.MustLookup("left"), "C-b"),
	)

	rows := g.Infobox()
	want := []struct {
		keys  string
		label string
		group bool
	}{
		{"m, left, C-b", "left", false},
		{"z", "View", true},
		{"Z", "View", true},
		{"i", "right", false},
	}
	if len(rows) != len(want) {
		t.Fatalf("len(Infobox()) = %d, want %d: %v", len(rows), len(want), rows)
	}
	for i, w := range want {
		if rows[i].KeyLabel() != w.keys || rows[i].Label != w.label || rows[i].Group != w.group {
			t.Errorf("Infobox()[%d] = {%q, %q, %v}, want {%q, %q, %v}",
				i, rows[i].KeyLabel(), rows[i].Label, rows[i].Group, w.keys, w.label, w.group)
		}
	}
}

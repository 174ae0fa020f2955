package loader

import (
	"sort"
	"strings"
)

// Tree is an ordered configuration table. Values are strings, int64,
// float64, bool, []any or nested *Tree.
type Tree struct {
	keys   []string
	values map[string]any
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{values: make(map[string]any)}
}

// FromMap converts a decoded map into a tree. Keys are sorted at every
// level since Go maps carry no order.
func FromMap(m map[string]any) *Tree {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := NewTree()
	for _, k := range keys {
		t.Set(k, fromValue(m[k]))
	}
	return t
}

func fromValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return FromMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = fromValue(item)
		}
		return out
	case int:
		return int64(v)
	default:
		return v
	}
}

// Len returns the number of keys.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Keys returns the keys in order.
func (t *Tree) Keys() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Get returns the value stored under key.
func (t *Tree) Get(key string) (any, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.values[key]
	return v, ok
}

// Table returns the nested tree stored under key.
func (t *Tree) Table(key string) (*Tree, bool) {
	v, ok := t.Get(key)
	if !ok {
		return nil, false
	}
	sub, ok := v.(*Tree)
	return sub, ok
}

// Set stores v under key. A new key is appended; an existing key keeps
// its position.
func (t *Tree) Set(key string, v any) {
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = v
}

// Delete removes key.
func (t *Tree) Delete(key string) {
	if t == nil {
		return
	}
	if _, ok := t.values[key]; !ok {
		return
	}
	delete(t.values, key)
	for i, k := range t.keys {
		if k == key {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
}

// Path returns the value at a dotted path such as "log.level".
func (t *Tree) Path(path string) (any, bool) {
	parts := strings.Split(path, ".")
	cur := t
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur.Table(p)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur.Get(parts[len(parts)-1])
}

// SetPath stores v at a dotted path, creating intermediate tables.
// A non-table value standing on the path is replaced.
func (t *Tree) SetPath(path string, v any) {
	parts := strings.Split(path, ".")
	cur := t
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur.Table(p)
		if !ok {
			next = NewTree()
			cur.Set(p, next)
		}
		cur = next
	}
	cur.Set(parts[len(parts)-1], v)
}

// Map converts the tree back into plain maps.
func (t *Tree) Map() map[string]any {
	if t == nil {
		return nil
	}
	m := make(map[string]any, len(t.keys))
	for _, k := range t.keys {
		m[k] = toPlain(t.values[k])
	}
	return m
}

func toPlain(v any) any {
	switch v := v.(type) {
	case *Tree:
		return v.Map()
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = toPlain(item)
		}
		return out
	default:
		return v
	}
}

// Clone creates a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	dst := &Tree{
		keys:   make([]string, len(t.keys)),
		values: make(map[string]any, len(t.values)),
	}
	copy(dst.keys, t.keys)
	for k, v := range t.values {
		dst.values[k] = cloneValue(v)
	}
	return dst
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case *Tree:
		return v.Clone()
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// DeepMerge recursively merges src into dst.
// Values in src override values in dst.
// Tables are merged recursively; other types are replaced.
// Keys new to dst are appended in src order.
func DeepMerge(dst, src *Tree) *Tree {
	if dst == nil {
		dst = NewTree()
	}
	if src == nil {
		return dst
	}

	for _, key := range src.keys {
		srcVal := src.values[key]
		dstVal, exists := dst.values[key]
		if !exists {
			dst.Set(key, srcVal)
			continue
		}

		srcTree, srcIsTree := srcVal.(*Tree)
		dstTree, dstIsTree := dstVal.(*Tree)
		if srcIsTree && dstIsTree {
			dst.values[key] = DeepMerge(dstTree, srcTree)
		} else {
			dst.values[key] = srcVal
		}
	}

	return dst
}

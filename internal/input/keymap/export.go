package keymap

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// ExportJSON renders g as a JSON object in the shape the config loader
// reads: keys map to command names or nested objects, and groups carry
// "@name" and "@sticky" entries. Key order follows display order.
func ExportJSON(g *Group) ([]byte, error) {
	out, err := exportGroup([]byte("{}"), "", g)
	if err != nil {
		return nil, fmt.Errorf("export %q: %w", g.Name(), err)
	}
	return out, nil
}

func exportGroup(doc []byte, prefix string, g *Group) ([]byte, error) {
	var err error
	if g.Name() != "" {
		if doc, err = sjson.SetBytes(doc, joinPath(prefix, "@name"), g.Name()); err != nil {
			return nil, err
		}
	}
	if g.Sticky() {
		if doc, err = sjson.SetBytes(doc, joinPath(prefix, "@sticky"), true); err != nil {
			return nil, err
		}
	}

	for _, c := range g.Children() {
		path := joinPath(prefix, c.Key.String())
		switch n := c.Node.(type) {
		case *Leaf:
			doc, err = sjson.SetBytes(doc, path, n.Command.Name())
		case *Group:
			if doc, err = sjson.SetRawBytes(doc, path, []byte("{}")); err != nil {
				return nil, err
			}
			doc, err = exportGroup(doc, path, n)
		}
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func joinPath(prefix, k string) string {
	k = escapePath(k)
	if prefix == "" {
		return k
	}
	return prefix + "." + k
}

// escapePath escapes sjson path metacharacters in a key name.
func escapePath(s string) string {
	var out []byte
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', '*', '?', '|', '#', '@', '\\', ':', '!', '=', '<', '>', '%':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

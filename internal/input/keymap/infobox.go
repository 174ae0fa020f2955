package keymap

import (
	"fmt"
	"strings"

	"github.com/dshills/keytrie/internal/input/key"
)

// InfoEntry is one row of a group's help listing.
type InfoEntry struct {
	// Keys are the alias keys leading to the same destination.
	Keys []key.Event

	// Label is the command name for leaves or the group name for groups.
	Label string

	// Group is true when the row leads to a sub-group.
	Group bool
}

// KeyLabel joins the entry's keys for display, e.g. "m, left".
func (e InfoEntry) KeyLabel() string {
	parts := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, ", ")
}

// Infobox returns the group's children folded into help rows. Children
// with the same label share a row, in order of first appearance.
func (g *Group) Infobox() []InfoEntry {
	var rows []InfoEntry
	index := make(map[string]int)

	for _, c := range g.Children() {
		label, isGroup := nodeLabel(c.Node)
		id := label
		if g, ok := c.Node.(*Group); ok {
			id = fmt.Sprintf("\x00%s\x00%t", label, g.Sticky())
		}
		if i, ok := index[id]; ok {
			rows[i].Keys = append(rows[i].Keys, c.Key)
			continue
		}
		index[id] = len(rows)
		rows = append(rows, InfoEntry{
			Keys:  []key.Event{c.Key},
			Label: label,
			Group: isGroup,
		})
	}
	return rows
}

func nodeLabel(n Node) (string, bool) {
	switch n := n.(type) {
	case *Leaf:
		return n.Command.Name(), false
	case *Group:
		return n.Name(), true
	default:
		return "", false
	}
}

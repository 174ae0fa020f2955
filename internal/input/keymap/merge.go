package keymap

import "github.com/dshills/keytrie/internal/input/mode"

// Merge overlays overlay onto base and returns base.
//
// For every overlay child, in overlay display order:
//   - a key missing from base is appended with a copy of the overlay node;
//   - two groups merge recursively; an explicit overlay group's name and
//     sticky flag replace the base group's;
//   - otherwise the overlay node replaces the base node in place.
//
// Keys present only in base are kept. The overlay is not modified and
// shares no nodes with the result.
func Merge(base, overlay *Group) *Group {
	if overlay == nil {
		return base
	}
	if overlay.explicit {
		base.name = overlay.name
		base.sticky = overlay.sticky
		base.explicit = true
	}

	for _, k := range overlay.keys {
		ov := overlay.children[k]
		if og, ok := ov.(*Group); ok {
			if bg, ok := base.children[k].(*Group); ok {
				Merge(bg, og)
				continue
			}
		}
		base.set(k, cloneNode(ov))
	}
	return base
}

// Maps holds the root group of each mode.
type Maps map[mode.Mode]*Group

// Clone deep-copies every mode map.
func (m Maps) Clone() Maps {
	out := make(Maps, len(m))
	for md, g := range m {
		if g != nil {
			out[md] = g.Clone()
		}
	}
	return out
}

// MergeMaps merges each overlay root onto a copy of the matching base
// root. Modes only present in overlays are added as copies.
func MergeMaps(base Maps, overlays Maps) Maps {
	out := base.Clone()
	for md, og := range overlays {
		if og == nil {
			continue
		}
		if bg, ok := out[md]; ok {
			Merge(bg, og)
			continue
		}
		out[md] = og.Clone()
	}
	return out
}

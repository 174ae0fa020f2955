package key

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Sequence is an ordered list of key events forming a chord.
// Examples: "g g" (go to file start), "space f f" (file picker), "C-w v" (vsplit)
type Sequence []Event

// NewSequence creates a sequence from the given events.
func NewSequence(events ...Event) Sequence {
	return Sequence(events)
}

// String returns the space-separated notation, e.g. "space f f".
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, e := range s {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

// Equals returns true if two sequences are identical.
func (s Sequence) Equals(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if this sequence starts with the given prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	return len(prefix) <= len(s) && s[:len(prefix)].Equals(prefix)
}

// Clone returns a copy of the sequence that shares no memory with s.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Append returns a new sequence with events appended; s is not modified.
func (s Sequence) Append(events ...Event) Sequence {
	out := make(Sequence, 0, len(s)+len(events))
	out = append(out, s...)
	return append(out, events...)
}

// ParseSequence parses a key sequence string.
// The string can contain space-separated keys ("g g", "C-w v") or a
// continuous Vim-style run ("gg", "<C-x><C-s>").
func ParseSequence(s string) (Sequence, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptySpec
	}

	if strings.ContainsAny(s, " \t") {
		fields := strings.Fields(s)
		seq := make(Sequence, 0, len(fields))
		for _, f := range fields {
			ev, err := Parse(f)
			if err != nil {
				return nil, fmt.Errorf("parsing %q: %w", s, err)
			}
			seq = append(seq, ev)
		}
		return seq, nil
	}

	// A single token that parses on its own ("C-w", "esc") is one event
	ev, err := Parse(s)
	if err == nil {
		return Sequence{ev}, nil
	}
	// "C-nope" is a bad chord, not six keys
	if idx := strings.IndexByte(s, '-'); idx > 0 && ModifierFromName(s[:idx]) != ModNone {
		return nil, fmt.Errorf("parsing %q: %w", s, err)
	}

	var seq Sequence
	for i := 0; i < len(s); {
		if s[i] == '<' {
			if end := strings.IndexByte(s[i:], '>'); end > 1 {
				ev, err := Parse(s[i : i+end+1])
				if err != nil {
					return nil, fmt.Errorf("parsing %q: %w", s, err)
				}
				seq = append(seq, ev)
				i += end + 1
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		seq = append(seq, NewRuneEvent(r, ModNone))
		i += size
	}
	return seq, nil
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in initialization code.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}

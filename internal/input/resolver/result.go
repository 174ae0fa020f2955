package resolver

import (
	"fmt"

	"github.com/dshills/keytrie/internal/input/command"
	"github.com/dshills/keytrie/internal/input/key"
	"github.com/dshills/keytrie/internal/input/keymap"
)

// Kind is the outcome of feeding one key event.
type Kind uint8

const (
	// Pending means more keys are needed.
	Pending Kind = iota
	// Matched means a command fired.
	Matched
	// Cancelled means the pending input was abandoned.
	Cancelled
	// NotFound means the key is not bound where the cursor stood.
	NotFound
)

// String returns the outcome name.
func (k Kind) String() string {
	switch k {
	case Pending:
		return "pending"
	case Matched:
		return "matched"
	case Cancelled:
		return "cancelled"
	case NotFound:
		return "not-found"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Terminal reports whether the outcome ends a key sequence.
func (k Kind) Terminal() bool {
	return k != Pending
}

// Result describes the outcome of one event.
type Result struct {
	Kind Kind

	// Command is the fired command for Matched, and the cancelling
	// command for Cancelled when one was bound.
	Command command.Ref

	// Count is the repeat count for Matched (at least 1). For Pending it
	// is the count typed so far, or 0.
	Count int

	// Group is the group the cursor now stands in, for Pending.
	Group *keymap.Group

	// Keys are the events consumed since the previous terminal outcome,
	// including this one.
	Keys key.Sequence
}

// String returns a short description for logs and status lines.
func (r Result) String() string {
	switch r.Kind {
	case Matched:
		if r.Count > 1 {
			return fmt.Sprintf("%s %s x%d", r.Kind, r.Command.Name(), r.Count)
		}
		return fmt.Sprintf("%s %s", r.Kind, r.Command.Name())
	case Cancelled:
		if r.Command != nil {
			return fmt.Sprintf("%s by %s", r.Kind, r.Command.Name())
		}
		return r.Kind.String()
	default:
		return fmt.Sprintf("%s %q", r.Kind, r.Keys.String())
	}
}

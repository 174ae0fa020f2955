package input

import (
	"fmt"

	"github.com/dshills/keytrie/internal/input/command"
	"github.com/dshills/keytrie/internal/input/key"
	"github.com/dshills/keytrie/internal/input/mode"
)

// ActionSource indicates the origin of an action.
type ActionSource uint8

const (
	// SourceKeyboard indicates the action originated from keyboard input.
	SourceKeyboard ActionSource = iota
	// SourceScript indicates the action originated from a script.
	SourceScript
	// SourceAPI indicates the action originated from an API call.
	SourceAPI
)

// String returns a string representation of the action source.
func (s ActionSource) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourceScript:
		return "script"
	case SourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// Action is a command the editor should run.
type Action struct {
	// Command is the resolved command.
	Command command.Ref

	// Count is the repeat count (at least 1).
	Count int

	// Keys are the events that produced the action.
	Keys key.Sequence

	// Mode is the mode the keys were typed in.
	Mode mode.Mode

	// Source indicates where this action originated.
	Source ActionSource

	// Cancel is set when the command abandons pending input, such as
	// returning to normal mode.
	Cancel bool
}

// Name returns the command name.
func (a Action) Name() string {
	return a.Command.Name()
}

// WithCount returns a copy of the action with the specified count.
func (a Action) WithCount(count int) Action {
	a.Count = count
	return a
}

// String returns a short description of the action.
func (a Action) String() string {
	if a.Count > 1 {
		return fmt.Sprintf("%s x%d (%s)", a.Name(), a.Count, a.Mode)
	}
	return fmt.Sprintf("%s (%s)", a.Name(), a.Mode)
}

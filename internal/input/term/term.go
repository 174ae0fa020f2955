// Package term adapts tcell terminal events into key events and draws
// simple line-oriented views.
package term

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keytrie/internal/input/key"
)

// Convert translates a tcell key event. It returns false for keys that
// have no key.Event equivalent.
func Convert(ev *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(ev.Modifiers())

	if ev.Key() == tcell.KeyRune {
		return key.NewRuneEvent(ev.Rune(), mods).Normalize(), true
	}

	if ev.Key() == tcell.KeyBacktab {
		return key.NewSpecialEvent(key.KeyTab, mods.With(key.ModShift)), true
	}

	if k := convertKey(ev.Key()); k != key.KeyNone {
		return key.NewSpecialEvent(k, mods).Normalize(), true
	}

	// Legacy control codes carry the letter in the key value
	switch k := ev.Key(); {
	case k == tcell.KeyCtrlSpace:
		return key.NewRuneEvent(' ', mods.With(key.ModCtrl)), true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		r := 'a' + rune(k-tcell.KeyCtrlA)
		return key.NewRuneEvent(r, mods.With(key.ModCtrl)).Normalize(), true
	}
	return key.Event{}, false
}

// convertKey converts named tcell keys.
func convertKey(k tcell.Key) key.Key {
	switch k {
	case tcell.KeyEscape:
		return key.KeyEscape
	case tcell.KeyEnter:
		return key.KeyEnter
	case tcell.KeyTab:
		return key.KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.KeyBackspace
	case tcell.KeyDelete:
		return key.KeyDelete
	case tcell.KeyInsert:
		return key.KeyInsert
	case tcell.KeyHome:
		return key.KeyHome
	case tcell.KeyEnd:
		return key.KeyEnd
	case tcell.KeyPgUp:
		return key.KeyPageUp
	case tcell.KeyPgDn:
		return key.KeyPageDown
	case tcell.KeyUp:
		return key.KeyUp
	case tcell.KeyDown:
		return key.KeyDown
	case tcell.KeyLeft:
		return key.KeyLeft
	case tcell.KeyRight:
		return key.KeyRight
	case tcell.KeyF1:
		return key.KeyF1
	case tcell.KeyF2:
		return key.KeyF2
	case tcell.KeyF3:
		return key.KeyF3
	case tcell.KeyF4:
		return key.KeyF4
	case tcell.KeyF5:
		return key.KeyF5
	case tcell.KeyF6:
		return key.KeyF6
	case tcell.KeyF7:
		return key.KeyF7
	case tcell.KeyF8:
		return key.KeyF8
	case tcell.KeyF9:
		return key.KeyF9
	case tcell.KeyF10:
		return key.KeyF10
	case tcell.KeyF11:
		return key.KeyF11
	case tcell.KeyF12:
		return key.KeyF12
	default:
		return key.KeyNone
	}
}

// convertMod converts tcell modifiers.
func convertMod(m tcell.ModMask) key.Modifier {
	var mod key.Modifier
	if m&tcell.ModShift != 0 {
		mod = mod.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mod = mod.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mod = mod.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mod = mod.With(key.ModMeta)
	}
	return mod
}

// Reader delivers key events from a tcell screen.
type Reader struct {
	screen tcell.Screen
}

// NewReader creates a reader for an initialized screen.
func NewReader(screen tcell.Screen) *Reader {
	return &Reader{screen: screen}
}

// Run polls the screen and calls handle for every key event until ctx is
// done or the screen is finalized. Resize events call onResize when set.
func (r *Reader) Run(ctx context.Context, handle func(key.Event), onResize func()) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			// Wake PollEvent
			_ = r.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-stop:
		}
	}()

	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		switch e := ev.(type) {
		case *tcell.EventKey:
			if k, ok := Convert(e); ok {
				handle(k)
			}
		case *tcell.EventResize:
			if onResize != nil {
				onResize()
			}
		}
	}
}

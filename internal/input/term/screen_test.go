package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, w, h int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s := WrapScreen(sim)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(s.Shutdown)
	sim.SetSize(w, h)
	return s, sim
}

func rowText(sim tcell.SimulationScreen, y, width int) string {
	var out []rune
	for x := 0; x < width; x++ {
		r, _, _, _ := sim.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		out = append(out, r)
	}
	return string(out)
}

func TestScreenDraw(t *testing.T) {
	s, sim := newSimScreen(t, 8, 2)

	s.Draw([]Line{
		{Text: "NOR g"},
		{Text: "truncated text"},
		{Text: "dropped"},
	})

	if got := rowText(sim, 0, 8); got != "NOR g   " {
		t.Errorf("row 0 = %q, want %q", got, "NOR g   ")
	}
	if got := rowText(sim, 1, 8); got != "truncate" {
		t.Errorf("row 1 = %q, want %q", got, "truncate")
	}
}

func TestScreenDrawClears(t *testing.T) {
	s, sim := newSimScreen(t, 6, 1)

	s.Draw([]Line{{Text: "abcdef"}})
	s.Draw([]Line{{Text: "xy"}})

	if got := rowText(sim, 0, 6); got != "xy    " {
		t.Errorf("row 0 = %q, want %q", got, "xy    ")
	}
}

func TestScreenSize(t *testing.T) {
	s, _ := newSimScreen(t, 20, 5)
	w, h := s.Size()
	if w != 20 || h != 5 {
		t.Errorf("Size() = %d, %d, want 20, 5", w, h)
	}
}

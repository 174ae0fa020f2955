package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Screen is a minimal line-oriented display on top of a tcell screen.
type Screen struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewScreen creates a screen for the controlling terminal.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Screen{screen: s}, nil
}

// WrapScreen wraps an existing tcell screen, such as a simulation screen.
func WrapScreen(s tcell.Screen) *Screen {
	return &Screen{screen: s}
}

// Init initializes the terminal.
func (s *Screen) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.screen.Init(); err != nil {
		return err
	}
	s.screen.HideCursor()
	return nil
}

// Shutdown restores the terminal.
func (s *Screen) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Fini()
}

// Tcell returns the underlying screen for event polling.
func (s *Screen) Tcell() tcell.Screen {
	return s.screen
}

// Size returns the terminal width and height.
func (s *Screen) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.screen.Size()
}

// Line is one row of text with a style.
type Line struct {
	Text  string
	Style tcell.Style
}

// Draw clears the screen, writes lines from the top and shows the
// result. Lines past the bottom edge and text past the right edge are
// dropped.
func (s *Screen) Draw(lines []Line) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Clear()
	width, height := s.screen.Size()
	for y, line := range lines {
		if y >= height {
			break
		}
		drawText(s.screen, 0, y, width, line.Text, line.Style)
	}
	s.screen.Show()
}

func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		if x+w > width {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x += w
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/keytrie/internal/config"
	"github.com/dshills/keytrie/internal/input"
	"github.com/dshills/keytrie/internal/input/command"
	"github.com/dshills/keytrie/internal/input/key"
	"github.com/dshills/keytrie/internal/input/keymap"
	"github.com/dshills/keytrie/internal/input/mode"
	"github.com/dshills/keytrie/internal/input/resolver"
	"github.com/dshills/keytrie/internal/input/term"
	"github.com/dshills/keytrie/internal/logging"
)

var quitKey = key.MustParse("C-q")

// RunCmd starts an interactive session that resolves keys typed in the
// terminal and shows the outcome.
type RunCmd struct {
	Mode    string `help:"Initial mode (default: editor.default_mode)" short:"m"`
	NoWatch bool   `help:"Do not reload the configuration when it changes"`
}

// Run executes the interactive session
func (r *RunCmd) Run(ctx context.Context, cli *CLI) error {
	if err := cli.sessionLogging(); err != nil {
		return err
	}

	sys, err := cli.openSystem(ctx, !r.NoWatch, true)
	if err != nil {
		return err
	}
	defer sys.Close()

	start := sys.Config().Editor.DefaultMode
	if r.Mode != "" {
		if start, err = mode.Parse(r.Mode); err != nil {
			return err
		}
	}

	res := resolver.New(sys.Store(), resolver.WithLogger(cli.logger.WithComponent("resolver")))
	handler := input.NewHandler(input.Config{DefaultMode: start}, res)
	defer handler.Close()

	screen, err := term.NewScreen()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer screen.Shutdown()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := newSession(screen, handler, sys)
	handler.AddHook(input.FuncHook{
		PreKeyEventFunc: func(ev *key.Event, _ mode.Mode) bool {
			if *ev == quitKey {
				cancel()
				return true
			}
			return false
		},
	}, input.HookPriorityHigh)
	handler.AddHook(input.LoggingHook{Logger: cli.logger.WithComponent("input")}, input.HookPriorityLow)

	unsubscribe := sys.Store().OnPublish(func(snap *keymap.Snapshot) {
		s.setNotice(fmt.Sprintf("keymaps reloaded (%s)", snap.ID.String()[:8]))
		s.draw()
	})
	defer unsubscribe()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sys.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return term.NewReader(screen.Tcell()).Run(gctx, s.handleKey, s.draw)
	})
	g.Go(func() error {
		return s.consumeActions(gctx)
	})

	s.draw()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// sessionLogging keeps log output off the terminal while a session owns
// it. Without --log-file the config's log.file is used, else logs are
// discarded.
func (c *CLI) sessionLogging() error {
	if c.LogFile != "" {
		return nil
	}

	cfg, err := config.Load(c.Config)
	if err != nil || cfg.Log.File == "" {
		c.logger = logging.Discard()
		logging.SetDefault(c.logger)
		return nil
	}

	l, closer, err := logging.OpenFile(cfg.Log.File, cfg.Log.LoggingConfig())
	if err != nil {
		return err
	}
	c.logger = l
	c.closers = append(c.closers, closer)
	logging.SetDefault(l)
	return nil
}

// nextMode returns the mode an action switches to, if any.
func nextMode(cur mode.Mode, name string) (mode.Mode, bool) {
	switch name {
	case "insert_mode", "append_mode", "insert_at_line_start", "insert_at_line_end",
		"open_below", "open_above", "change_selection", "change_selection_noyank":
		return mode.Insert, cur != mode.Insert
	case "select_mode":
		return mode.Select, cur != mode.Select
	case command.NormalMode, command.ExitSelectMode:
		return mode.Normal, cur != mode.Normal
	}
	return cur, false
}

// session is the state shown by the interactive view.
type session struct {
	screen  *term.Screen
	handler *input.Handler
	sys     *config.System

	mu         sync.Mutex
	last       resolver.Result
	lastAction string
	notice     string
}

func newSession(screen *term.Screen, handler *input.Handler, sys *config.System) *session {
	return &session{screen: screen, handler: handler, sys: sys}
}

func (s *session) handleKey(ev key.Event) {
	res := s.handler.HandleKeyEvent(ev)
	if len(res.Keys) > 0 {
		s.mu.Lock()
		s.last = res
		s.mu.Unlock()
	}
	s.draw()
}

func (s *session) consumeActions(ctx context.Context) error {
	actions := s.handler.Actions()
	for {
		select {
		case <-ctx.Done():
			return nil
		case a, ok := <-actions:
			if !ok {
				return nil
			}
			s.mu.Lock()
			s.lastAction = a.String()
			s.mu.Unlock()
			if m, ok := nextMode(s.handler.CurrentMode(), a.Name()); ok {
				_ = s.handler.SwitchMode(m)
			}
			s.draw()
		}
	}
}

func (s *session) setNotice(msg string) {
	s.mu.Lock()
	s.notice = msg
	s.mu.Unlock()
}

var (
	headerStyle = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorMediumPurple)
	plainStyle  = tcell.StyleDefault
	dimLine     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	errorLine   = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// view builds the lines of the session display.
func (s *session) view() []term.Line {
	m := s.handler.CurrentMode()
	st := s.handler.State()
	health := s.sys.Health()

	s.mu.Lock()
	last, lastAction, notice := s.last, s.lastAction, s.notice
	s.mu.Unlock()

	lines := []term.Line{
		{Text: fmt.Sprintf(" %s  keytrie  (C-q quits)", m.DisplayName()), Style: headerStyle},
		{Text: "", Style: plainStyle},
	}

	pending := st.Pending.String()
	if st.HasCount {
		pending = fmt.Sprintf("%d %s", st.Count, pending)
	}
	lines = append(lines,
		term.Line{Text: "pending: " + pending, Style: plainStyle},
		term.Line{Text: "result:  " + resultText(last), Style: plainStyle},
		term.Line{Text: "action:  " + lastAction, Style: plainStyle},
	)
	if st.Sticky != nil {
		lines = append(lines, term.Line{Text: "sticky:  " + st.Sticky.Name(), Style: plainStyle})
	}
	if health.LastError != nil {
		lines = append(lines, term.Line{Text: "config:  " + health.LastError.Error(), Style: errorLine})
	} else if notice != "" {
		lines = append(lines, term.Line{Text: notice, Style: dimLine})
	}

	if st.Group != nil && (len(st.Pending) > 0 || st.Sticky != nil) {
		lines = append(lines, term.Line{})
		for i, text := range infoboxLines(st.Group, st.Pending) {
			style := plainStyle
			if i == 0 {
				style = headerStyle
			}
			lines = append(lines, term.Line{Text: text, Style: style})
		}
	}
	return lines
}

func (s *session) draw() {
	s.screen.Draw(s.view())
}

func resultText(r resolver.Result) string {
	if len(r.Keys) == 0 {
		return ""
	}
	return r.String()
}

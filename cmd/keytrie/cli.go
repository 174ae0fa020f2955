package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/dshills/keytrie/internal/config"
	"github.com/dshills/keytrie/internal/input/command"
	"github.com/dshills/keytrie/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Config   string           `help:"Path to configuration file" short:"c" type:"path" default:"${default_config}" env:"KEYTRIE_CONFIG"`
	LogLevel string           `help:"Log level (debug, info, warn, error)" default:"warn" enum:"debug,info,warn,error"`
	LogFile  string           `help:"Write logs to this file instead of stderr" type:"path"`
	Version  kong.VersionFlag `help:"Show version information" short:"v"`

	Resolve  ResolveCmd  `cmd:"" help:"Resolve key sequences and print each outcome"`
	Infobox  InfoboxCmd  `cmd:"" help:"Show the bindings reachable from a key prefix"`
	Dump     DumpCmd     `cmd:"" help:"Print a mode's keymap as JSON"`
	Check    CheckCmd    `cmd:"" help:"Validate the configuration"`
	Commands CommandsCmd `cmd:"" help:"List or search command names"`
	Run      RunCmd      `cmd:"" help:"Resolve keys typed in the terminal"`

	out     io.Writer        `kong:"-"`
	logger  *logging.Logger  `kong:"-"`
	closers []io.Closer      `kong:"-"`
	cat     *command.Catalog `kong:"-"`
}

// AfterApply initializes logging after CLI parsing.
func (c *CLI) AfterApply() error {
	if c.out == nil {
		c.out = os.Stdout
	}

	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(c.LogLevel)
	if c.LogFile == "" {
		c.logger = logging.New(cfg)
		logging.SetDefault(c.logger)
		return nil
	}

	l, closer, err := logging.OpenFile(c.LogFile, cfg)
	if err != nil {
		return err
	}
	c.logger = l
	c.closers = append(c.closers, closer)
	logging.SetDefault(l)
	return nil
}

func (c *CLI) close() {
	for _, cl := range c.closers {
		_ = cl.Close()
	}
	c.closers = nil
}

// openSystem loads the configuration and its keymaps. A configuration
// that fails to load is an error unless lenient is set.
func (c *CLI) openSystem(ctx context.Context, watch, lenient bool) (*config.System, error) {
	sys, err := config.NewSystem(ctx, c.catalog(), c.Config,
		config.WithSystemWatcher(watch),
		config.WithSystemLogger(c.logger),
	)
	if err != nil {
		return nil, err
	}
	if err := sys.Keymaps().LastError(); err != nil && !lenient {
		sys.Close()
		return nil, err
	}
	return sys, nil
}

// catalog returns the command catalog shared by every keymap the
// command loads, so refs compare equal across them.
func (c *CLI) catalog() *command.Catalog {
	if c.cat == nil {
		c.cat = command.NewBuiltinCatalog()
	}
	return c.cat
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "keytrie.toml"
	}
	return filepath.Join(dir, "keytrie", "config.toml")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/dshills/keytrie/internal/input/key"
	"github.com/dshills/keytrie/internal/input/keymap"
	"github.com/dshills/keytrie/internal/input/mode"
	"github.com/dshills/keytrie/internal/input/resolver"
)

// ErrCheckFailed is returned by check when the configuration is invalid.
var ErrCheckFailed = errors.New("configuration check failed")

// ResolveCmd feeds key sequences to a resolver and prints every outcome.
type ResolveCmd struct {
	Mode string   `help:"Mode to resolve in" short:"m" default:"normal" enum:"normal,select,insert"`
	Keys []string `arg:"" help:"Key sequences, e.g. \"3 g g\" or 3gg"`
}

// Run executes the resolve command
func (r *ResolveCmd) Run(ctx context.Context, cli *CLI) error {
	m, err := mode.Parse(r.Mode)
	if err != nil {
		return err
	}

	var seq key.Sequence
	for _, arg := range r.Keys {
		s, err := key.ParseSequence(arg)
		if err != nil {
			return err
		}
		seq = append(seq, s...)
	}

	sys, err := cli.openSystem(ctx, false, false)
	if err != nil {
		return err
	}
	defer sys.Close()

	res := resolver.New(sys.Store(), resolver.WithLogger(cli.logger.WithComponent("resolver")))
	for _, ev := range seq {
		fmt.Fprintf(cli.out, "%-8s %s\n", ev, res.Feed(m, ev))
	}
	return nil
}

// InfoboxCmd lists the bindings of the group a key prefix leads to.
type InfoboxCmd struct {
	Mode   string `help:"Mode whose keymap is shown" short:"m" default:"normal" enum:"normal,select,insert"`
	Prefix string `arg:"" optional:"" help:"Key prefix leading to a group (default: the root)"`
}

// Run executes the infobox command
func (i *InfoboxCmd) Run(ctx context.Context, cli *CLI) error {
	g, prefix, err := lookupGroup(ctx, cli, i.Mode, i.Prefix)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, renderInfobox(g, prefix))
	return nil
}

// DumpCmd prints a mode's keymap in the JSON config shape.
type DumpCmd struct {
	Mode   string `help:"Mode to dump" short:"m" default:"normal" enum:"normal,select,insert"`
	Prefix string `arg:"" optional:"" help:"Key prefix of the group to dump (default: the root)"`
	Raw    bool   `help:"Print compact JSON"`
}

// Run executes the dump command
func (d *DumpCmd) Run(ctx context.Context, cli *CLI) error {
	g, _, err := lookupGroup(ctx, cli, d.Mode, d.Prefix)
	if err != nil {
		return err
	}
	doc, err := keymap.ExportJSON(g)
	if err != nil {
		return err
	}
	if !d.Raw {
		doc = pretty.Pretty(doc)
	} else {
		doc = append(doc, '\n')
	}
	_, err = cli.out.Write(doc)
	return err
}

// CheckCmd loads the configuration and reports whether it is valid.
type CheckCmd struct{}

// Run executes the check command
func (c *CheckCmd) Run(ctx context.Context, cli *CLI) error {
	sys, err := cli.openSystem(ctx, false, true)
	if err != nil {
		return err
	}
	defer sys.Close()

	health := sys.Health()
	if health.LastError != nil {
		fmt.Fprintf(cli.out, "%s: %v\n", health.Status, health.LastError)
		return ErrCheckFailed
	}

	snap := sys.Store().Load()
	path := cli.Config
	if path == "" {
		path = "(built-in)"
	}
	fmt.Fprintf(cli.out, "%s: %s\n", health.Status, path)
	fmt.Fprintf(cli.out, "modes:    %d\n", len(snap.Modes()))
	fmt.Fprintf(cli.out, "scripts:  %d\n", len(sys.Config().Scripts))
	fmt.Fprintf(cli.out, "snapshot: %s\n", snap.ID)
	return nil
}

func lookupGroup(ctx context.Context, cli *CLI, modeName, prefix string) (*keymap.Group, key.Sequence, error) {
	m, err := mode.Parse(modeName)
	if err != nil {
		return nil, nil, err
	}

	var seq key.Sequence
	if prefix != "" {
		if seq, err = key.ParseSequence(prefix); err != nil {
			return nil, nil, err
		}
	}

	sys, err := cli.openSystem(ctx, false, false)
	if err != nil {
		return nil, nil, err
	}
	defer sys.Close()

	root, ok := sys.Store().Load().Root(m)
	if !ok {
		return nil, nil, fmt.Errorf("no keymap for mode %s", m)
	}
	g, ok := root.LookupGroup(seq)
	if !ok {
		return nil, nil, fmt.Errorf("%q does not lead to a group in %s mode", seq.String(), m)
	}
	return g, seq, nil
}

// CommandsCmd lists the command catalog, optionally fuzzy-filtered.
type CommandsCmd struct {
	Query string `arg:"" optional:"" help:"Fuzzy query, e.g. gfs for goto_file_start"`
	Limit int    `help:"Maximum number of results (0 = all)" short:"n" default:"0"`
	Bound bool   `help:"Show the keys bound to each command in normal mode"`
}

// Run executes the commands command
func (c *CommandsCmd) Run(ctx context.Context, cli *CLI) error {
	cat := cli.catalog()
	matches := cat.Search(c.Query, c.Limit)

	var root *keymap.Group
	if c.Bound {
		sys, err := cli.openSystem(ctx, false, false)
		if err != nil {
			return err
		}
		defer sys.Close()
		root, _ = sys.Store().Load().Root(mode.Normal)
	}

	for _, m := range matches {
		line := highlightMatch(m.Name, m.Positions)
		if root != nil {
			if ref, err := cat.Lookup(m.Name); err == nil {
				var keys []string
				for _, seq := range root.KeysFor(ref) {
					keys = append(keys, seq.String())
				}
				if len(keys) > 0 {
					line += "  " + dimStyle.Render(strings.Join(keys, ", "))
				}
			}
		}
		fmt.Fprintln(cli.out, line)
	}
	return nil
}

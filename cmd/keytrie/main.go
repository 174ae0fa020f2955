// Package main is the entry point for the keytrie command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const description = "Key-sequence resolution for modal editors"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cli CLI
	parser, err := newParser(ctx, &cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	defer cli.close()

	if err := kctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newParser(ctx context.Context, cli *CLI, opts ...kong.Option) (*kong.Kong, error) {
	opts = append([]kong.Option{
		kong.Name("keytrie"),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Vars{
			"version":        fmt.Sprintf("keytrie %s (commit %s, built %s)", version, commit, date),
			"default_config": defaultConfigPath(),
		},
		kong.Bind(cli),
		kong.BindTo(ctx, (*context.Context)(nil)),
	}, opts...)
	return kong.New(cli, opts...)
}

/*
Copyright © 2026 the hostsnap authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/hostsnap/hostsnap/pkg/logging"
)

const (
	name           = "hostsnap"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
)

// Root assembles the top-level command with all subcommands.
func Root() *cli.Command {
	return &cli.Command{
		Name:    name,
		Version: version,
		Usage:   "Collect reproducible host data snapshots",
		Description: fmt.Sprintf(`hostsnap - host data snapshot collector

Version: %s
Commit:  %s

Captures command output, dynamic file contents, and per-CPU MSR register
dumps from a local or SSH-reachable host, producing a snapshot tree and a
per-module manifest usable as a deterministic test fixture.`, version, commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "info",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			collectCmd(),
			planCmd(),
		},
	}
}

// Execute runs the CLI and returns the process exit code: 0 on success,
// 2 on interrupt, 1 on any other failure.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Root().Run(ctx, os.Args); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "interrupted; the snapshot is incomplete")
			return 2
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

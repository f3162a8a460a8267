/*
Copyright © 2026 the hostsnap authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hostsnap/hostsnap/pkg/defaults"
	"github.com/hostsnap/hostsnap/pkg/plan"
	"github.com/hostsnap/hostsnap/pkg/session"
	"github.com/hostsnap/hostsnap/pkg/snapshotter"
)

func collectCmd() *cli.Command {
	return &cli.Command{
		Name:                  "collect",
		EnableShellCompletion: true,
		Usage:                 "Capture a host data snapshot",
		Description: `Run the collection plan against the target host and write the snapshot
tree plus one manifest per module under the output root.

The target defaults to the local host. For remote targets, authentication
uses the given private key, a key discovered under ~/.ssh, or the SSH agent.

# Examples

Collect from the local host into ./$(hostname):
  hostsnap collect

Collect from a remote host with an explicit key:
  hostsnap collect --hostname lab42 --username root --privkey ~/.ssh/id_lab

Collect using a custom plan file:
  hostsnap collect --plan plans/minimal.yaml --outdir fixtures/lab42`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "hostname",
				Usage:   "target host, or 'local' for in-process execution",
				Sources: cli.EnvVars("HOSTSNAP_HOSTNAME"),
				Value:   defaults.LocalHostname,
			},
			&cli.StringFlag{
				Name:    "username",
				Usage:   "remote user name",
				Sources: cli.EnvVars("HOSTSNAP_USERNAME"),
				Value:   defaults.Username,
			},
			&cli.StringFlag{
				Name:    "privkey",
				Usage:   "private key path (default: discovered under ~/.ssh)",
				Sources: cli.EnvVars("HOSTSNAP_PRIVKEY"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "connection timeout (connection establishment only)",
				Value: defaults.ConnectTimeout,
			},
			&cli.StringFlag{
				Name:    "outdir",
				Aliases: []string{"o"},
				Usage:   "output root directory (default: resolved hostname)",
			},
			&cli.StringFlag{
				Name:  "plan",
				Usage: "collection plan file (default: built-in plan)",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "collect into a non-empty output root",
			},
		},
		Action: runCollect,
	}
}

func runCollect(ctx context.Context, cmd *cli.Command) error {
	p, err := resolvePlan(cmd.String("plan"))
	if err != nil {
		return err
	}

	outRoot, err := resolveOutRoot(cmd.String("outdir"), cmd.String("hostname"))
	if err != nil {
		return err
	}

	if !cmd.Bool("force") {
		if err := checkOutRoot(outRoot); err != nil {
			return err
		}
	}

	sess, err := session.New(session.Config{
		Hostname: cmd.String("hostname"),
		Username: cmd.String("username"),
		KeyPath:  cmd.String("privkey"),
		Timeout:  cmd.Duration("timeout"),
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	s := &snapshotter.Snapshotter{
		Session: sess,
		OutRoot: outRoot,
	}
	return s.Run(ctx, p)
}

// resolvePlan loads the plan file when given, otherwise the built-in plan.
func resolvePlan(path string) (plan.Plan, error) {
	if path == "" {
		return plan.Default(), nil
	}
	return plan.Load(path)
}

// resolveOutRoot derives the output root from the target hostname when no
// explicit directory is given.
func resolveOutRoot(outdir, hostname string) (string, error) {
	if outdir != "" {
		return outdir, nil
	}
	if hostname != "" && hostname != defaults.LocalHostname {
		return hostname, nil
	}
	resolved, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("failed to resolve local hostname: %w", err)
	}
	return resolved, nil
}

// checkOutRoot refuses to collect into an existing non-empty directory so a
// stale snapshot is never silently mixed with a new one.
func checkOutRoot(outRoot string) error {
	dir, err := os.Open(outRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to inspect output root %s: %w", outRoot, err)
	}
	defer dir.Close()

	if _, err := dir.Readdirnames(1); err == io.EOF {
		return nil
	}
	return fmt.Errorf("output root %s already contains data; use --force to overwrite", outRoot)
}

/*
Copyright © 2026 the hostsnap authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hostsnap/hostsnap/pkg/serializer"
)

func planCmd() *cli.Command {
	return &cli.Command{
		Name:                  "plan",
		EnableShellCompletion: true,
		Usage:                 "Print the effective collection plan",
		Description: `Resolve the collection plan (built-in, or loaded from --plan) and print it
without executing anything. Useful for reviewing what a collect run would
gather and as a starting point for a custom plan file.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "plan",
				Usage: "collection plan file (default: built-in plan)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file path (default: stdout)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Usage:   fmt.Sprintf("output format: %s", strings.Join(serializer.SupportedFormats(), ", ")),
				Value:   string(serializer.FormatYAML),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format := serializer.Format(cmd.String("format"))
			if format.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", format)
			}

			p, err := resolvePlan(cmd.String("plan"))
			if err != nil {
				return err
			}

			w := serializer.NewFileWriterOrStdout(format, cmd.String("output"))
			defer w.Close()
			return w.Serialize(p)
		},
	}
}

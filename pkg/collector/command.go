package collector

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hostsnap/hostsnap/pkg/defaults"
	"github.com/hostsnap/hostsnap/pkg/plan"
	"github.com/hostsnap/hostsnap/pkg/session"
)

// CommandCollector captures a whole command: stdout and stderr are written
// as separate files under the capture's directory.
type CommandCollector struct {
	Session session.Session
	Capture plan.CommandCapture
	OutDir  string
}

// Collect runs the command through a verified session call and writes
// stdout.txt and stderr.txt. The stderr file is created even when the
// stream is empty. Either both files are written or the run aborts.
func (c *CommandCollector) Collect(ctx context.Context) error {
	dir := filepath.Join(c.OutDir, c.Capture.Dirname)
	if err := os.MkdirAll(dir, defaults.DirMode); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	slog.Debug("capturing command", "command", c.Capture.Command, "dir", dir)

	res, err := c.Session.RunVerified(ctx, c.Capture.Command)
	if err != nil {
		return err
	}

	stdoutPath := filepath.Join(dir, defaults.StdoutFilename)
	if err := os.WriteFile(stdoutPath, []byte(res.Stdout), defaults.FileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", stdoutPath, err)
	}

	stderrPath := filepath.Join(dir, defaults.StderrFilename)
	if err := os.WriteFile(stderrPath, []byte(res.Stderr), defaults.FileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", stderrPath, err)
	}

	return nil
}

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

// InlineFileCollector captures a dynamic-file blob: the generator command's
// combined stdout is kept verbatim under the capture's filename. The
// capture's separator is metadata for downstream consumers; this collector
// never interprets it.
type InlineFileCollector struct {
	Session session.Session
	Capture plan.FileCapture
	OutDir  string
}

// Collect runs the generator command through a verified session call and
// writes its stdout byte-for-byte.
func (c *InlineFileCollector) Collect(ctx context.Context) error {
	dir := filepath.Join(c.OutDir, c.Capture.Dirname)
	if err := os.MkdirAll(dir, defaults.DirMode); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	slog.Debug("capturing inline files", "dir", dir, "filename", c.Capture.Filename)

	res, err := c.Session.RunVerified(ctx, c.Capture.Command)
	if err != nil {
		return err
	}

	outPath := filepath.Join(dir, c.Capture.Filename)
	if err := os.WriteFile(outPath, []byte(res.Stdout), defaults.FileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	return nil
}

package collector

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hostsnap/hostsnap/pkg/defaults"
	"github.com/hostsnap/hostsnap/pkg/plan"
	"github.com/hostsnap/hostsnap/pkg/session"
)

// MSRCollector captures a register batch: every configured address is
// sampled on every logical CPU of the target, producing exactly one output
// line per CPU in enumeration order.
type MSRCollector struct {
	Session session.Session
	Batch   plan.RegisterBatch
	OutDir  string
}

// Collect enumerates the target's logical CPUs and sweeps the register
// addresses on each one. Register support is CPU-model-dependent, so a
// failed read skips that address silently; the batch never aborts on one.
// Re-running against an unchanged host reproduces the file byte-for-byte,
// modulo registers whose values genuinely change.
func (c *MSRCollector) Collect(ctx context.Context) error {
	cpus, err := enumerateCPUs(ctx, c.Session)
	if err != nil {
		return err
	}

	dir := filepath.Join(c.OutDir, c.Batch.Dirname)
	if err := os.MkdirAll(dir, defaults.DirMode); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	outPath := filepath.Join(dir, c.Batch.Filename)
	f, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, defaults.FileMode)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", outPath, err)
	}
	w := bufio.NewWriter(f)
	for _, cpu := range cpus {
		line, err := c.sweepCPU(ctx, cpu)
		if err != nil {
			f.Close()
			return err
		}
		if _, err := w.WriteString(line + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	slog.Debug("register batch complete", "cpus", len(cpus), "file", outPath)
	return f.Close()
}

// sweepCPU reads every batch address on one CPU and builds its output line.
// A CPU for which every address fails still yields a line containing the
// device path and the trailing separator.
func (c *MSRCollector) sweepCPU(ctx context.Context, cpu int) (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(defaults.MSRDevicePathFmt, cpu))
	sb.WriteString(c.Batch.Separator1)

	for _, addr := range c.Batch.Addresses {
		cmd := fmt.Sprintf(defaults.MSRReadCommandFmt, addr, cpu)
		res, err := c.Session.Run(ctx, cmd)
		if err != nil {
			// Transport or cancellation failure, not a register miss.
			return "", err
		}
		if res.ExitCode != 0 {
			continue
		}
		sb.WriteString(strconv.FormatUint(addr, 10))
		sb.WriteString(c.Batch.Separator2)
		sb.WriteString(strings.TrimSpace(res.Stdout))
		sb.WriteString(" ")
	}

	return sb.String(), nil
}

// enumerateCPUs derives the ordered set of logical CPU numbers for the
// target host. The topology command's output order becomes the canonical
// CPU ordering for the whole batch and for every later consumer of the
// dump.
func enumerateCPUs(ctx context.Context, sess session.Session) ([]int, error) {
	res, err := sess.RunVerified(ctx, defaults.TopologyCommand)
	if err != nil {
		return nil, err
	}

	var cpus []int
	for _, line := range strings.Split(res.Stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cpu, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("unexpected topology line %q: %w", line, err)
		}
		cpus = append(cpus, cpu)
	}

	return cpus, nil
}

package snapshotter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/hostsnap/hostsnap/pkg/collector"
	"github.com/hostsnap/hostsnap/pkg/defaults"
	"github.com/hostsnap/hostsnap/pkg/errors"
	"github.com/hostsnap/hostsnap/pkg/plan"
	"github.com/hostsnap/hostsnap/pkg/serializer"
	"github.com/hostsnap/hostsnap/pkg/session"
)

// Snapshotter owns one session for the whole run and executes a collection
// plan against it, module by module.
type Snapshotter struct {
	Session  session.Session
	Factory  collector.Factory
	Manifest *serializer.ManifestWriter
	Logger   *slog.Logger
	OutRoot  string
}

// Run executes the plan to completion in module order. Within a module the
// order is fixed: command captures, inline file captures, the register
// batch, then the manifest. The first verified-command failure aborts the
// remaining plan; files already written stay on disk (no rollback), and the
// snapshot must be treated as invalid until a full run completes.
func (s *Snapshotter) Run(ctx context.Context, p plan.Plan) error {
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	if s.Factory == nil {
		s.Factory = collector.NewDefaultFactory(s.Session)
	}
	if s.Manifest == nil {
		s.Manifest = serializer.NewManifestWriter(s.OutRoot)
	}

	logger := s.Logger.With(slog.String("run_id", uuid.NewString()))
	logger.Info("starting collection run", "modules", len(p), "outroot", s.OutRoot)

	if err := os.MkdirAll(s.OutRoot, defaults.DirMode); err != nil {
		return errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to create output root %s", s.OutRoot), err)
	}

	for _, m := range p {
		if err := s.collectModule(ctx, logger, m); err != nil {
			return err
		}
	}

	logger.Info("collection run complete")
	return nil
}

func (s *Snapshotter) collectModule(ctx context.Context, logger *slog.Logger, m plan.Module) error {
	logger.Info("collecting module", "module", m.Name)
	moduleDir := filepath.Join(s.OutRoot, m.Name)

	for _, capture := range m.Plan.Commands {
		if err := ctx.Err(); err != nil {
			return err
		}
		c := s.Factory.CreateCommandCollector(capture, moduleDir)
		if err := c.Collect(ctx); err != nil {
			return err
		}
	}

	for _, capture := range m.Plan.InlineFiles {
		if err := ctx.Err(); err != nil {
			return err
		}
		c := s.Factory.CreateInlineFileCollector(capture, moduleDir)
		if err := c.Collect(ctx); err != nil {
			return err
		}
	}

	if m.Plan.MSRs != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		c := s.Factory.CreateMSRCollector(*m.Plan.MSRs, moduleDir)
		if err := c.Collect(ctx); err != nil {
			return err
		}
	}

	if err := s.Manifest.Write(m.Name, plan.BuildManifest(m)); err != nil {
		return err
	}

	logger.Debug("module complete", "module", m.Name)
	return nil
}

package collector

import (
	"context"

	"github.com/hostsnap/hostsnap/pkg/plan"
	"github.com/hostsnap/hostsnap/pkg/session"
)

// Collector turns one capture descriptor into files on disk.
type Collector interface {
	Collect(ctx context.Context) error
}

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateCommandCollector(capture plan.CommandCapture, outDir string) Collector
	CreateInlineFileCollector(capture plan.FileCapture, outDir string) Collector
	CreateMSRCollector(batch plan.RegisterBatch, outDir string) Collector
}

// DefaultFactory creates collectors bound to one execution session.
type DefaultFactory struct {
	Session session.Session
}

// NewDefaultFactory creates a factory whose collectors run against the
// given session.
func NewDefaultFactory(sess session.Session) *DefaultFactory {
	return &DefaultFactory{Session: sess}
}

// CreateCommandCollector creates a whole-command capture collector.
func (f *DefaultFactory) CreateCommandCollector(capture plan.CommandCapture, outDir string) Collector {
	return &CommandCollector{
		Session: f.Session,
		Capture: capture,
		OutDir:  outDir,
	}
}

// CreateInlineFileCollector creates a dynamic-file capture collector.
func (f *DefaultFactory) CreateInlineFileCollector(capture plan.FileCapture, outDir string) Collector {
	return &InlineFileCollector{
		Session: f.Session,
		Capture: capture,
		OutDir:  outDir,
	}
}

// CreateMSRCollector creates a per-CPU register batch collector.
func (f *DefaultFactory) CreateMSRCollector(batch plan.RegisterBatch, outDir string) Collector {
	return &MSRCollector{
		Session: f.Session,
		Batch:   batch,
		OutDir:  outDir,
	}
}

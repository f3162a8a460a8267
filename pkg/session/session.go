package session

import (
	"context"
	"time"

	"github.com/hostsnap/hostsnap/pkg/defaults"
	"github.com/hostsnap/hostsnap/pkg/errors"
)

// Result holds the fully buffered outcome of one command invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Session is the execution channel to a target host. Implementations are
// blocking: Run and RunVerified return only after the process terminated.
type Session interface {
	// Run executes the command and returns its exit code and buffered
	// output. A non-zero exit code is not an error; callers inspect it
	// and decide whether to tolerate the failure.
	Run(ctx context.Context, command string) (*Result, error)

	// RunVerified executes the command and fails with a
	// *errors.CommandError when the exit code is non-zero.
	RunVerified(ctx context.Context, command string) (*Result, error)

	// Close releases the underlying channel. Safe to call multiple times.
	Close() error
}

// Config identifies a target host. Hostname "local" selects in-process
// execution and ignores all other fields.
type Config struct {
	Hostname string
	Username string
	KeyPath  string
	Timeout  time.Duration
}

// New establishes a session to the configured target. Connection or
// authentication failures surface as a CONNECTION-class error before any
// collection starts.
func New(cfg Config) (Session, error) {
	if cfg.Hostname == "" || cfg.Hostname == defaults.LocalHostname {
		return NewLocalSession(), nil
	}
	return NewSSHSession(cfg)
}

// verify converts a non-zero exit code into a *errors.CommandError.
func verify(command string, res *Result) (*Result, error) {
	if res.ExitCode != 0 {
		return nil, errors.NewCommandError(command, res.ExitCode, res.Stderr)
	}
	return res, nil
}

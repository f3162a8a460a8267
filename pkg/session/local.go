package session

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"

	"github.com/hostsnap/hostsnap/pkg/defaults"
	"github.com/hostsnap/hostsnap/pkg/errors"
)

// LocalSession executes commands through the local shell.
type LocalSession struct{}

// NewLocalSession creates a session for the local host. No credentials or
// timeouts apply.
func NewLocalSession() *LocalSession {
	return &LocalSession{}
}

// Run executes the command with "sh -c" and buffers both output streams.
// Cancellation kills the shell and surfaces as an INTERRUPTED error wrapping
// the context error, never as an exit code.
func (s *LocalSession) Run(ctx context.Context, command string) (*Result, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// With in-memory output buffers, Wait would otherwise block after the
	// kill until every grandchild holding a pipe exits.
	cmd.WaitDelay = defaults.KillWaitDelay

	err := cmd.Run()
	res := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		// Cancellation wins over exit-code classification: a killed shell
		// reports exit code -1, which must not masquerade as a command
		// failure.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Wrap(errors.ErrCodeInterrupted,
				fmt.Sprintf("command %q canceled", command), ctxErr)
		}
		var exitErr *exec.ExitError
		if !stderrors.As(err, &exitErr) {
			// Process never ran.
			return nil, err
		}
		res.ExitCode = exitErr.ExitCode()
	}

	return res, nil
}

// RunVerified executes the command and fails on a non-zero exit code.
func (s *LocalSession) RunVerified(ctx context.Context, command string) (*Result, error) {
	res, err := s.Run(ctx, command)
	if err != nil {
		return nil, err
	}
	return verify(command, res)
}

// Close is a no-op for local sessions.
func (s *LocalSession) Close() error {
	return nil
}

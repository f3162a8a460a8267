package errors

import "fmt"

type ErrorCode string

const (
	// ErrCodeConnection indicates the target host is unreachable or
	// authentication failed. Fatal before any collection starts.
	ErrCodeConnection ErrorCode = "CONNECTION"
	// ErrCodeCommandFailed indicates a verified command returned a
	// non-zero exit code. Fatal, aborts the run.
	ErrCodeCommandFailed ErrorCode = "COMMAND_FAILED"
	// ErrCodeInterrupted indicates user-requested cancellation.
	ErrCodeInterrupted ErrorCode = "INTERRUPTED"
	// ErrCodeInvalidPlan indicates a malformed collection plan.
	ErrCodeInvalidPlan ErrorCode = "INVALID_PLAN"
	// ErrCodeInternal indicates an internal system error.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *StructuredError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CommandError reports a verified command that exited non-zero. It carries
// the exact command text, the exit code, and the captured stderr so the
// operator can reproduce the failure.
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q exited with code %d", e.Command, e.ExitCode)
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr:\n%s", e.Stderr)
	}
	return msg
}

// NewCommandError creates a CommandError for the given command invocation.
func NewCommandError(command string, exitCode int, stderr string) *CommandError {
	return &CommandError{
		Command:  command,
		ExitCode: exitCode,
		Stderr:   stderr,
	}
}

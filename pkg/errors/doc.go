// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.Wrap(
//	    errors.ErrCodeConnection,
//	    "failed to establish session",
//	    dialErr,
//	)
//
// Command failures carry their own typed error so callers can recover the
// failing command, exit code, and captured stderr:
//
//	var cmdErr *errors.CommandError
//	if stderrors.As(err, &cmdErr) {
//	    fmt.Println(cmdErr.Command, cmdErr.ExitCode)
//	}
package errors

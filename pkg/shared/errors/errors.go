package errors

import "fmt"

// CommandError carries an exit code for a failed command so that the root
// Execute can translate command failures into process exit codes.
type CommandError struct {
	ExitCode int
	Err      error
	// Silent suppresses the generic error line; used by commands that have
	// already written their diagnostics to the error stream.
	Silent bool
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("command failed with exit code %d", e.ExitCode)
	}
	return e.Err.Error()
}

// Unwrap exposes the wrapped error for errors.Is/As checks.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError wrapping err with the given exit code.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode: code,
		Err:      err,
	}
}

// NewSilentError creates a CommandError that only sets the exit code. The
// caller is responsible for any output.
func NewSilentError(code int) *CommandError {
	return &CommandError{
		ExitCode: code,
		Silent:   true,
	}
}

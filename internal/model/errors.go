package model

import "fmt"

// ExitCode defines standard CLI exit codes. These codes allow scripts and
// CI systems to programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitContainerNotRunning indicates an operation that requires a
	// running container (enter, stop, copy) found it not running.
	ExitContainerNotRunning ExitCode = 2

	// ExitDockerNotRunning indicates the Docker daemon is not accessible.
	ExitDockerNotRunning ExitCode = 3

	// ExitConfigError indicates the compose/env-file configuration is
	// malformed (odd env-file argument count, unreadable env file, or a
	// broken labctl.jsonc settings file).
	ExitConfigError ExitCode = 4

	// ExitMissingTool indicates a required host executable (xauth, mktemp)
	// is not installed.
	ExitMissingTool ExitCode = 5

	// ExitInconsistentState indicates the persisted state file contradicts
	// itself (e.g., X11 forwarding enabled but no auth file path recorded).
	ExitInconsistentState ExitCode = 6
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Hint is an optional remediation instruction printed after the
	// message (e.g., how to reinstall a missing tool or reset state).
	Hint string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// WithHint attaches a remediation hint to the error and returns it,
// allowing fluent construction at the error site.
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

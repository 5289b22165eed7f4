package domain

import (
	"errors"
)

// CommandError is a semantically invalid request.
type CommandError struct {
	Code    string // Wire prefix (e.g., "ERR")
	Message string // Human-readable message
	Details string // Optional detail appended after a colon
	Cause   error  // Underlying error (if any)
}

// Error returns the wire text of the error, e.g. "ERR unknown command: FOO".
func (e *CommandError) Error() string {
	if e.Details != "" {
		return e.Code + " " + e.Message + ": " + e.Details
	}
	return e.Code + " " + e.Message
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *CommandError) Unwrap() error {
	return e.Cause
}

// Is matches on Code and Message, so a detailed error still matches its
// sentinel.
func (e *CommandError) Is(target error) bool {
	t, ok := target.(*CommandError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewCommandError creates a CommandError with the given code and message.
func NewCommandError(code, message string) *CommandError {
	return &CommandError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *CommandError) WithDetails(details string) *CommandError {
	return &CommandError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *CommandError) WithCause(cause error) *CommandError {
	return &CommandError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsCommandError reports whether err is (or wraps) a CommandError.
func IsCommandError(err error) bool {
	var ce *CommandError
	return errors.As(err, &ce)
}

// CodeOf returns the wire prefix of a CommandError, or "" for other errors.
func CodeOf(err error) string {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// CodeGeneric is the prefix used for every command error.
const CodeGeneric = "ERR"

var (
	// ErrRequestNotList is returned for a request that is neither an array
	// nor a whitespace-separated string.
	ErrRequestNotList = NewCommandError(CodeGeneric, "request must be a list")

	// ErrRequestEmpty is returned for an empty array request.
	ErrRequestEmpty = NewCommandError(CodeGeneric, "request cannot be empty")

	// ErrUnknownCommand is returned when the command name is not in the
	// command table; details carry the uppercased name.
	ErrUnknownCommand = NewCommandError(CodeGeneric, "unknown command")

	// ErrWrongArgs is returned for an arity mismatch; details carry the
	// command name.
	ErrWrongArgs = NewCommandError(CodeGeneric, "wrong number of arguments")

	// ErrUnpairedKey is returned by MSET when the last key has no value.
	ErrUnpairedKey = NewCommandError(CodeGeneric, "unpaired key in MSET")

	// ErrInvalidKey is returned when a key argument is not a string.
	ErrInvalidKey = NewCommandError(CodeGeneric, "key must be a string")

	// ErrInvalidCommandName is returned when the first request element is
	// not a string.
	ErrInvalidCommandName = NewCommandError(CodeGeneric, "command name must be a string")

	// ErrRateLimited is returned when a client exceeds its request rate.
	ErrRateLimited = NewCommandError(CodeGeneric, "rate limit exceeded")
)

// UnknownCommand builds the error for an unrecognized command name.
func UnknownCommand(name string) *CommandError {
	return ErrUnknownCommand.WithDetails(name)
}

// WrongArgs builds the arity error for a command.
func WrongArgs(name string) *CommandError {
	return ErrWrongArgs.WithDetails(name)
}

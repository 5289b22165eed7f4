package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestCommandError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *CommandError
		expected string
	}{
		{
			name:     "error without details",
			err:      ErrRequestEmpty,
			expected: "ERR request cannot be empty",
		},
		{
			name:     "unknown command",
			err:      UnknownCommand("FOO"),
			expected: "ERR unknown command: FOO",
		},
		{
			name:     "wrong args",
			err:      WrongArgs("GET"),
			expected: "ERR wrong number of arguments: GET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCommandError_Is(t *testing.T) {
	if !errors.Is(UnknownCommand("X"), ErrUnknownCommand) {
		t.Error("detailed error should match its sentinel")
	}
	if errors.Is(UnknownCommand("X"), ErrRequestEmpty) {
		t.Error("different messages must not match")
	}
	if errors.Is(ErrRequestEmpty, fmt.Errorf("request cannot be empty")) {
		t.Error("should not match a non-CommandError")
	}

	wrapped := fmt.Errorf("handle: %w", WrongArgs("SET"))
	if !errors.Is(wrapped, ErrWrongArgs) {
		t.Error("errors.Is should see through wrapping")
	}
}

func TestCommandError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying cause")
	err := ErrInvalidKey.WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if err.WithDetails("d").Cause != cause {
		t.Error("WithDetails should keep the cause")
	}
}

func TestIsCommandError(t *testing.T) {
	if !IsCommandError(fmt.Errorf("x: %w", ErrRequestNotList)) {
		t.Error("IsCommandError should see wrapped errors")
	}
	if IsCommandError(errors.New("plain")) {
		t.Error("IsCommandError should be false for plain errors")
	}
	if got := CodeOf(ErrUnpairedKey); got != CodeGeneric {
		t.Errorf("CodeOf() = %q, want %q", got, CodeGeneric)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %q, want empty", got)
	}
}

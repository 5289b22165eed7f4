package resp

import (
	"errors"
)

var (
	// ErrDisconnected is returned by Decode when the peer closed the stream
	// cleanly before the first byte of a frame.
	ErrDisconnected = errors.New("resp: disconnected")

	// ErrProtocol matches every *ProtocolError via errors.Is.
	ErrProtocol = errors.New("resp: protocol error")

	// ErrLimitExceeded is wrapped by a ProtocolError when a decoder limit
	// rejects a frame.
	ErrLimitExceeded = errors.New("resp: limit exceeded")

	// ErrEncoding is returned when a Value cannot be serialized.
	ErrEncoding = errors.New("resp: unrecognized type")
)

// ProtocolError reports a malformed frame.
//
// Desync is set when the error left the stream in the middle of a frame
// (inside an array, inside a bulk payload, or at EOF). The bytes that
// follow can no longer be trusted to start a new frame.
type ProtocolError struct {
	Msg    string
	Desync bool
	Err    error
}

func newProtocolError(msg string, desync bool) *ProtocolError {
	return &ProtocolError{Msg: msg, Desync: desync}
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return "resp: protocol error: " + e.Msg + ": " + e.Err.Error()
	}
	return "resp: protocol error: " + e.Msg
}

// Is makes errors.Is(err, ErrProtocol) hold for every ProtocolError.
func (e *ProtocolError) Is(target error) bool {
	return target == ErrProtocol
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// IsDesync reports whether err is a ProtocolError that left the stream
// unaligned.
func IsDesync(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe) && pe.Desync
}

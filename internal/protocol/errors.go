package protocol

import (
	"errors"
	"fmt"
	"io"
)

// Sentinel errors for errors.Is against the taxonomy in spec.md section 7.
var (
	ErrShortRead    = errors.New("protocol: short read")
	ErrBadBoolean   = errors.New("protocol: boolean value is neither 0 nor 1")
	ErrVarIntTooLong = errors.New("protocol: varint longer than 10 bytes")
	ErrUnknownPacket = errors.New("protocol: no packet registered for (state, id)")

	// ErrStatusUnsupported is an application-level sentinel (never returned
	// by the codec itself): a server built on this core can return it from
	// its own handshake dispatch when it chooses not to serve the
	// Status-ping branch spec.md 4.4 says "must remain decodable but its
	// follow-on is unspecified here".
	ErrStatusUnsupported = errors.New("protocol: status-ping phase is unsupported")
)

// TransportError wraps an I/O failure from the underlying stream: fewer
// bytes than requested, or any other read/write error.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("protocol: transport error: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// Is reports a short read (the stream ended before the requested bytes
// arrived) as matching ErrShortRead.
func (e *TransportError) Is(target error) bool {
	return target == ErrShortRead && (errors.Is(e.Err, io.EOF) || errors.Is(e.Err, io.ErrUnexpectedEOF))
}

func wrapTransport(err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Err: err}
}

// MalformedFrame covers negative lengths, overlong VarInts, bad booleans,
// out-of-range tag ids, and unknown (state, id) pairs.
type MalformedFrame struct {
	Msg string
	Err error
}

func (e *MalformedFrame) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol: malformed frame: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("protocol: malformed frame: %s", e.Msg)
}
func (e *MalformedFrame) Unwrap() error { return e.Err }

func newMalformedFrame(sentinel error, format string, args ...any) error {
	return &MalformedFrame{Msg: fmt.Sprintf(format, args...), Err: sentinel}
}

// FieldOutOfRange covers Position coordinates exceeding their bit width and
// VarInt enums decoding to a value outside the allowed set.
type FieldOutOfRange struct {
	Field string
	Value any
}

func (e *FieldOutOfRange) Error() string {
	return fmt.Sprintf("protocol: field %q out of range: %v", e.Field, e.Value)
}

func newFieldOutOfRange(field string, value any) error {
	return &FieldOutOfRange{Field: field, Value: value}
}

// ProtocolViolation covers sending a packet illegal in the connection's
// current state. Per spec.md's REDESIGN FLAGS, this implementation (unlike
// "the reference") enforces it on every outbound write.
type ProtocolViolation struct {
	Msg string
}

func (e *ProtocolViolation) Error() string { return fmt.Sprintf("protocol: violation: %s", e.Msg) }

func newProtocolViolation(format string, args ...any) error {
	return &ProtocolViolation{Msg: fmt.Sprintf(format, args...)}
}

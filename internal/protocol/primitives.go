// Package protocol implements the packet framing, per-connection state
// machine, and packet payload codecs described in spec.md sections 3.2
// through 4.5.
package protocol

import (
	"encoding/binary"
	"io"
	"math"
)

// UUID is the game's 128-bit player identifier, written big-endian as two
// 64-bit halves (most significant first).
type UUID [16]byte

// String renders the canonical 8-4-4-4-12 hyphenated hex form.
func (u UUID) String() string {
	const hex = "0123456789abcdef"
	var buf [36]byte
	pos := 0
	for i, b := range u {
		if i == 4 || i == 6 || i == 8 || i == 10 {
			buf[pos] = '-'
			pos++
		}
		buf[pos] = hex[b>>4]
		buf[pos+1] = hex[b&0xf]
		pos += 2
	}
	return string(buf[:])
}

// varIntMaxBytes is the maximum number of bytes a VarInt may occupy on the
// wire; a tenth continuation byte is a decode error (spec.md 4.1).
const varIntMaxBytes = 10

func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		return wrapTransport(err)
	}
	return nil
}

// ReadBool reads one byte and requires it to be 0 or 1.
func ReadBool(r io.Reader) (bool, error) {
	var b [1]byte
	if err := readFull(r, b[:]); err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, newMalformedFrame(ErrBadBoolean, "boolean value %d", b[0])
	}
}

// WriteBool writes a boolean as a single 0/1 byte.
func WriteBool(w io.Writer, v bool) error {
	b := byte(0)
	if v {
		b = 1
	}
	_, err := w.Write([]byte{b})
	return wrapTransport(err)
}

// ReadInt8 reads a signed 8-bit integer.
func ReadInt8(r io.Reader) (int8, error) {
	var b [1]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

// WriteInt8 writes a signed 8-bit integer.
func WriteInt8(w io.Writer, v int8) error {
	_, err := w.Write([]byte{byte(v)})
	return wrapTransport(err)
}

// ReadUint8 reads an unsigned 8-bit integer.
func ReadUint8(r io.Reader) (uint8, error) {
	var b [1]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// WriteUint8 writes an unsigned 8-bit integer.
func WriteUint8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return wrapTransport(err)
}

// ReadInt16 reads a big-endian signed 16-bit integer.
func ReadInt16(r io.Reader) (int16, error) {
	var b [2]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b[:])), nil
}

// WriteInt16 writes a big-endian signed 16-bit integer.
func WriteInt16(w io.Writer, v int16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(v))
	_, err := w.Write(b[:])
	return wrapTransport(err)
}

// ReadUint16 reads a big-endian unsigned 16-bit integer.
func ReadUint16(r io.Reader) (uint16, error) {
	var b [2]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

// WriteUint16 writes a big-endian unsigned 16-bit integer.
func WriteUint16(w io.Writer, v uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return wrapTransport(err)
}

// ReadInt32 reads a big-endian signed 32-bit integer.
func ReadInt32(r io.Reader) (int32, error) {
	var b [4]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b[:])), nil
}

// WriteInt32 writes a big-endian signed 32-bit integer.
func WriteInt32(w io.Writer, v int32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	_, err := w.Write(b[:])
	return wrapTransport(err)
}

// ReadInt64 reads a big-endian signed 64-bit integer.
func ReadInt64(r io.Reader) (int64, error) {
	var b [8]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b[:])), nil
}

// WriteInt64 writes a big-endian signed 64-bit integer.
func WriteInt64(w io.Writer, v int64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	_, err := w.Write(b[:])
	return wrapTransport(err)
}

// ReadFloat32 reads a big-endian IEEE-754 32-bit float.
func ReadFloat32(r io.Reader) (float32, error) {
	v, err := ReadInt32(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(v)), nil
}

// WriteFloat32 writes a big-endian IEEE-754 32-bit float.
func WriteFloat32(w io.Writer, v float32) error {
	return WriteInt32(w, int32(math.Float32bits(v)))
}

// ReadFloat64 reads a big-endian IEEE-754 64-bit float.
func ReadFloat64(r io.Reader) (float64, error) {
	v, err := ReadInt64(r)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(v)), nil
}

// WriteFloat64 writes a big-endian IEEE-754 64-bit float.
func WriteFloat64(w io.Writer, v float64) error {
	return WriteInt64(w, int64(math.Float64bits(v)))
}

// ReadUUID reads a 128-bit UUID as two big-endian 64-bit halves.
func ReadUUID(r io.Reader) (UUID, error) {
	var u UUID
	if err := readFull(r, u[:]); err != nil {
		return UUID{}, err
	}
	return u, nil
}

// WriteUUID writes a 128-bit UUID as two big-endian 64-bit halves.
func WriteUUID(w io.Writer, u UUID) error {
	_, err := w.Write(u[:])
	return wrapTransport(err)
}

// ReadVarInt reads a VarInt and returns its value along with the number of
// bytes consumed (needed by the frame reader to compute the remaining body
// length). Accumulates 7-bit groups, MSB-first continuation, little-endian
// byte order, per spec.md 3.2/4.1. More than 10 bytes is a decode error.
func ReadVarInt(r io.Reader) (int64, int, error) {
	var result uint64
	var shift uint
	var b [1]byte
	for i := 0; i < varIntMaxBytes; i++ {
		if err := readFull(r, b[:]); err != nil {
			return 0, i, err
		}
		result |= uint64(b[0]&0x7f) << shift
		if b[0]&0x80 == 0 {
			return int64(result), i + 1, nil
		}
		shift += 7
	}
	return 0, varIntMaxBytes, newMalformedFrame(ErrVarIntTooLong, "varint exceeded %d bytes", varIntMaxBytes)
}

// WriteVarInt writes v as a VarInt and returns the number of bytes written.
// Negative values are reinterpreted as unsigned 64-bit first, which always
// yields the full 10-byte encoding (spec.md 9, confirmed conformance note).
func WriteVarInt(w io.Writer, v int64) (int, error) {
	u := uint64(v)
	n := 0
	for {
		b := byte(u & 0x7f)
		u >>= 7
		if u != 0 {
			b |= 0x80
		}
		if _, err := w.Write([]byte{b}); err != nil {
			return n, wrapTransport(err)
		}
		n++
		if u == 0 {
			return n, nil
		}
	}
}

// ReadString reads a packet-context string: VarInt byte length, then that
// many bytes of UTF-8 (spec.md 3.2 "context A"). Strings here and in the
// nbt package are standard UTF-8, not Java's Modified UTF-8 that real
// clients nominally use; NUL and non-BMP characters are not re-encoded.
func ReadString(r io.Reader) (string, error) {
	n, _, err := ReadVarInt(r)
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", newMalformedFrame(nil, "negative string length %d", n)
	}
	if n == 0 {
		return "", nil
	}
	buf := make([]byte, n)
	if err := readFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// WriteString writes a packet-context string.
func WriteString(w io.Writer, s string) error {
	if _, err := WriteVarInt(w, int64(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return wrapTransport(err)
}

// VarIntSize returns the number of bytes WriteVarInt would emit for v,
// without writing anything.
func VarIntSize(v int64) int {
	u := uint64(v)
	n := 1
	for u >>= 7; u != 0; u >>= 7 {
		n++
	}
	return n
}

package protocol

import "io"

// Position packs three block-world coordinates into a single big-endian
// i64: x (signed 26 bits) << 38 | z (signed 26 bits) << 12 | y (signed 12
// bits). A newtype wrapping an i64 would hide the asymmetric field widths;
// keeping X/Z/Y as separate fields makes the sign-extension on decode
// explicit at the call site (spec.md 9 "Position is a good candidate...").
type Position struct {
	X, Z int32
	Y    int32
}

const (
	posXZMin = -(1 << 25)
	posXZMax = (1 << 25) - 1
	posYMin  = -2048
	posYMax  = 2047
)

// EncodePosition packs p into a wire i64, rejecting coordinates that don't
// fit their field width (spec.md 4.3 "the writer asserts each coordinate
// fits its field width").
func EncodePosition(p Position) (int64, error) {
	if p.X < posXZMin || p.X > posXZMax {
		return 0, newFieldOutOfRange("Position.X", p.X)
	}
	if p.Z < posXZMin || p.Z > posXZMax {
		return 0, newFieldOutOfRange("Position.Z", p.Z)
	}
	if p.Y < posYMin || p.Y > posYMax {
		return 0, newFieldOutOfRange("Position.Y", p.Y)
	}
	x := uint64(p.X) & 0x3FFFFFF
	z := uint64(p.Z) & 0x3FFFFFF
	y := uint64(p.Y) & 0xFFF
	return int64(x<<38 | z<<12 | y), nil
}

// DecodePosition unpacks a wire i64 into a Position, sign-extending each
// field from its packed width.
func DecodePosition(v int64) Position {
	u := uint64(v)

	x := int32(u >> 38)
	if x >= 1<<25 {
		x -= 1 << 26
	}

	z := int32((u >> 12) & 0x3FFFFFF)
	if z >= 1<<25 {
		z -= 1 << 26
	}

	y := int32(u & 0xFFF)
	if y >= 1<<11 {
		y -= 1 << 12
	}

	return Position{X: x, Z: z, Y: y}
}

// ReadPosition reads a Position from its packed i64 wire form.
func ReadPosition(r io.Reader) (Position, error) {
	v, err := ReadInt64(r)
	if err != nil {
		return Position{}, err
	}
	return DecodePosition(v), nil
}

// WritePosition writes a Position in its packed i64 wire form.
func WritePosition(w io.Writer, p Position) error {
	v, err := EncodePosition(p)
	if err != nil {
		return err
	}
	return WriteInt64(w, v)
}

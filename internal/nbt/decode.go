package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Reader decodes NBT documents from a byte stream. Strings inside NBT use
// a u16 big-endian length prefix (spec.md 3.2 "context B"), distinct from
// the VarInt-prefixed strings used inside packet payloads.
type Reader struct {
	r   io.Reader
	buf [8]byte
}

// NewReader wraps r for NBT decoding.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (r *Reader) full(n int) ([]byte, error) {
	if _, err := io.ReadFull(r.r, r.buf[:n]); err != nil {
		return nil, fmt.Errorf("nbt: short read: %w", err)
	}
	return r.buf[:n], nil
}

func (r *Reader) readTagID() (TagID, error) {
	b, err := r.full(1)
	if err != nil {
		return 0, err
	}
	id := TagID(b[0])
	if !id.valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownTagID, b[0])
	}
	return id, nil
}

func (r *Reader) readString() (string, error) {
	b, err := r.full(2)
	if err != nil {
		return "", err
	}
	n := binary.BigEndian.Uint16(b)
	if n == 0 {
		return "", nil
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(r.r, data); err != nil {
		return "", fmt.Errorf("nbt: short read: %w", err)
	}
	return string(data), nil
}

func (r *Reader) readInt32() (int32, error) {
	b, err := r.full(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

// ReadCompound reads a complete NBT document: the root tag id (must be
// Compound), its name, and its body.
func (r *Reader) ReadCompound() (*Compound, error) {
	id, err := r.readTagID()
	if err != nil {
		return nil, err
	}
	if id != TagCompound {
		return nil, fmt.Errorf("%w: got %s", ErrBadRootTag, id)
	}
	name, err := r.readString()
	if err != nil {
		return nil, err
	}
	c := NewCompound(name)
	if err := r.readCompoundBody(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Reader) readCompoundBody(c *Compound) error {
	for {
		id, err := r.readTagID()
		if err != nil {
			return err
		}
		if id == TagEnd {
			return nil
		}
		name, err := r.readString()
		if err != nil {
			return err
		}
		tag, err := r.readPayload(id)
		if err != nil {
			return err
		}
		c.Set(name, tag)
	}
}

func (r *Reader) readPayload(id TagID) (Tag, error) {
	switch id {
	case TagEnd:
		return Tag{}, ErrUnexpectedEndTag
	case TagByte:
		b, err := r.full(1)
		if err != nil {
			return Tag{}, err
		}
		return Byte(int8(b[0])), nil
	case TagShort:
		b, err := r.full(2)
		if err != nil {
			return Tag{}, err
		}
		return Short(int16(binary.BigEndian.Uint16(b))), nil
	case TagInt:
		v, err := r.readInt32()
		if err != nil {
			return Tag{}, err
		}
		return Int(v), nil
	case TagLong:
		b, err := r.full(8)
		if err != nil {
			return Tag{}, err
		}
		return Long(int64(binary.BigEndian.Uint64(b))), nil
	case TagFloat:
		b, err := r.full(4)
		if err != nil {
			return Tag{}, err
		}
		return Float(math.Float32frombits(binary.BigEndian.Uint32(b))), nil
	case TagDouble:
		b, err := r.full(8)
		if err != nil {
			return Tag{}, err
		}
		return Double(math.Float64frombits(binary.BigEndian.Uint64(b))), nil
	case TagByteArray:
		n, err := r.readInt32()
		if err != nil {
			return Tag{}, err
		}
		if n < 0 {
			return Tag{}, fmt.Errorf("%w: byte array length %d", ErrNegativeLength, n)
		}
		raw := make([]byte, n)
		if n > 0 {
			if _, err := io.ReadFull(r.r, raw); err != nil {
				return Tag{}, fmt.Errorf("nbt: short read: %w", err)
			}
		}
		out := make([]int8, n)
		for i, v := range raw {
			out[i] = int8(v)
		}
		return ByteArray(out), nil
	case TagString:
		s, err := r.readString()
		if err != nil {
			return Tag{}, err
		}
		return String(s), nil
	case TagList:
		elemID, err := r.readTagID()
		if err != nil {
			return Tag{}, err
		}
		n, err := r.readInt32()
		if err != nil {
			return Tag{}, err
		}
		if n < 0 {
			return Tag{}, fmt.Errorf("%w: list length %d", ErrNegativeLength, n)
		}
		items := make([]Tag, n)
		for i := int32(0); i < n; i++ {
			item, err := r.readPayload(elemID)
			if err != nil {
				return Tag{}, err
			}
			items[i] = item
		}
		return Tag{id: TagList, data: &List{elem: elemID, items: items}}, nil
	case TagCompound:
		c := NewCompound("")
		if err := r.readCompoundBody(c); err != nil {
			return Tag{}, err
		}
		return CompoundTag(c), nil
	case TagIntArray:
		n, err := r.readInt32()
		if err != nil {
			return Tag{}, err
		}
		if n < 0 {
			return Tag{}, fmt.Errorf("%w: int array length %d", ErrNegativeLength, n)
		}
		out := make([]int32, n)
		for i := range out {
			v, err := r.readInt32()
			if err != nil {
				return Tag{}, err
			}
			out[i] = v
		}
		return IntArray(out), nil
	case TagLongArray:
		n, err := r.readInt32()
		if err != nil {
			return Tag{}, err
		}
		if n < 0 {
			return Tag{}, fmt.Errorf("%w: long array length %d", ErrNegativeLength, n)
		}
		out := make([]int64, n)
		for i := range out {
			b, err := r.full(8)
			if err != nil {
				return Tag{}, err
			}
			out[i] = int64(binary.BigEndian.Uint64(b))
		}
		return LongArray(out), nil
	default:
		return Tag{}, fmt.Errorf("%w: %d", ErrUnknownTagID, byte(id))
	}
}

// ReadCompound is a package-level convenience wrapping NewReader(r).ReadCompound().
func ReadCompound(r io.Reader) (*Compound, error) {
	return NewReader(r).ReadCompound()
}

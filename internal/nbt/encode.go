package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Writer encodes NBT documents to a byte stream.
type Writer struct {
	w   io.Writer
	buf [8]byte
}

// NewWriter wraps w for NBT encoding.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) write(b []byte) error {
	_, err := w.w.Write(b)
	return err
}

func (w *Writer) writeTagID(id TagID) error {
	w.buf[0] = byte(id)
	return w.write(w.buf[:1])
}

func (w *Writer) writeString(s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("nbt: string too long for u16 length prefix: %d bytes", len(s))
	}
	binary.BigEndian.PutUint16(w.buf[:2], uint16(len(s)))
	if err := w.write(w.buf[:2]); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	return w.write([]byte(s))
}

func (w *Writer) writeInt32(v int32) error {
	binary.BigEndian.PutUint32(w.buf[:4], uint32(v))
	return w.write(w.buf[:4])
}

// WriteCompound writes a complete NBT document: tag id Compound, the
// compound's name, its body, terminated by the mandatory End tag.
func (w *Writer) WriteCompound(c *Compound) error {
	if err := w.writeTagID(TagCompound); err != nil {
		return err
	}
	if err := w.writeString(c.name); err != nil {
		return err
	}
	return w.writeCompoundBody(c)
}

func (w *Writer) writeCompoundBody(c *Compound) error {
	var err error
	c.Range(func(name string, tag Tag) bool {
		if err = w.writeTagID(tag.id); err != nil {
			return false
		}
		if err = w.writeString(name); err != nil {
			return false
		}
		if err = w.writePayload(tag); err != nil {
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	return w.writeTagID(TagEnd)
}

func (w *Writer) writePayload(t Tag) error {
	switch t.id {
	case TagByte:
		v, _ := t.AsByte()
		w.buf[0] = byte(v)
		return w.write(w.buf[:1])
	case TagShort:
		v, _ := t.AsShort()
		binary.BigEndian.PutUint16(w.buf[:2], uint16(v))
		return w.write(w.buf[:2])
	case TagInt:
		v, _ := t.AsInt()
		return w.writeInt32(v)
	case TagLong:
		v, _ := t.AsLong()
		binary.BigEndian.PutUint64(w.buf[:8], uint64(v))
		return w.write(w.buf[:8])
	case TagFloat:
		v, _ := t.AsFloat()
		binary.BigEndian.PutUint32(w.buf[:4], math.Float32bits(v))
		return w.write(w.buf[:4])
	case TagDouble:
		v, _ := t.AsDouble()
		binary.BigEndian.PutUint64(w.buf[:8], math.Float64bits(v))
		return w.write(w.buf[:8])
	case TagByteArray:
		v, _ := t.AsByteArray()
		if err := w.writeInt32(int32(len(v))); err != nil {
			return err
		}
		raw := make([]byte, len(v))
		for i, b := range v {
			raw[i] = byte(b)
		}
		return w.write(raw)
	case TagString:
		v, _ := t.AsString()
		return w.writeString(v)
	case TagList:
		l, _ := t.AsList()
		if err := w.writeTagID(l.elem); err != nil {
			return err
		}
		if err := w.writeInt32(int32(len(l.items))); err != nil {
			return err
		}
		for _, item := range l.items {
			if err := w.writePayload(item); err != nil {
				return err
			}
		}
		return nil
	case TagCompound:
		c, _ := t.AsCompound()
		return w.writeCompoundBody(c)
	case TagIntArray:
		v, _ := t.AsIntArray()
		if err := w.writeInt32(int32(len(v))); err != nil {
			return err
		}
		for _, e := range v {
			if err := w.writeInt32(e); err != nil {
				return err
			}
		}
		return nil
	case TagLongArray:
		v, _ := t.AsLongArray()
		if err := w.writeInt32(int32(len(v))); err != nil {
			return err
		}
		for _, e := range v {
			binary.BigEndian.PutUint64(w.buf[:8], uint64(e))
			if err := w.write(w.buf[:8]); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownTagID, byte(t.id))
	}
}

// WriteCompound is a package-level convenience wrapping NewWriter(w).WriteCompound(c).
func WriteCompound(w io.Writer, c *Compound) error {
	return NewWriter(w).WriteCompound(c)
}

// Package nbt implements the Named Binary Tag codec: a recursive,
// self-describing binary tag-tree format used for several packet payloads
// (heightmaps, block entities). The wire format is described in spec.md
// section 3.1 and 4.2.
package nbt

import "fmt"

// TagID identifies one of the twelve NBT payload variants on the wire.
type TagID byte

const (
	TagEnd TagID = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

func (id TagID) String() string {
	switch id {
	case TagEnd:
		return "End"
	case TagByte:
		return "Byte"
	case TagShort:
		return "Short"
	case TagInt:
		return "Int"
	case TagLong:
		return "Long"
	case TagFloat:
		return "Float"
	case TagDouble:
		return "Double"
	case TagByteArray:
		return "ByteArray"
	case TagString:
		return "String"
	case TagList:
		return "List"
	case TagCompound:
		return "Compound"
	case TagIntArray:
		return "IntArray"
	case TagLongArray:
		return "LongArray"
	default:
		return fmt.Sprintf("Unknown(%d)", byte(id))
	}
}

func (id TagID) valid() bool {
	return id <= TagLongArray
}

// List is a homogeneous sequence of tags sharing one element tag id. Lists
// are never sparse: all elements were constructed or decoded against the
// same id, and NewList rejects a mismatch.
type List struct {
	elem  TagID
	items []Tag
}

// NewList builds a List, verifying every item carries the element tag id.
// An empty items slice is valid; the element id is retained even though no
// payload follows it on the wire (spec.md 4.2 "Empty list" edge case).
func NewList(elem TagID, items []Tag) (*List, error) {
	for i, it := range items {
		if it.id != elem {
			return nil, fmt.Errorf("nbt: list element %d has tag %s, want %s", i, it.id, elem)
		}
	}
	cp := make([]Tag, len(items))
	copy(cp, items)
	return &List{elem: elem, items: cp}, nil
}

// Elem returns the list's element tag id.
func (l *List) Elem() TagID { return l.elem }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.items) }

// Items returns the list's elements. The returned slice must not be mutated.
func (l *List) Items() []Tag { return l.items }

// Tag is a tagged union over the NBT payload variants. The zero Tag is not
// meaningful; construct values with the functions below.
type Tag struct {
	id   TagID
	data any
}

func Byte(v int8) Tag             { return Tag{id: TagByte, data: v} }
func Short(v int16) Tag           { return Tag{id: TagShort, data: v} }
func Int(v int32) Tag             { return Tag{id: TagInt, data: v} }
func Long(v int64) Tag            { return Tag{id: TagLong, data: v} }
func Float(v float32) Tag         { return Tag{id: TagFloat, data: v} }
func Double(v float64) Tag        { return Tag{id: TagDouble, data: v} }
func ByteArray(v []int8) Tag      { return Tag{id: TagByteArray, data: v} }
func String(v string) Tag         { return Tag{id: TagString, data: v} }
func IntArray(v []int32) Tag      { return Tag{id: TagIntArray, data: v} }
func LongArray(v []int64) Tag     { return Tag{id: TagLongArray, data: v} }

// ListTag wraps a *List as a Tag, suitable for use as a compound property.
func ListTag(l *List) Tag { return Tag{id: TagList, data: l} }

// CompoundTag wraps a *Compound as a Tag, suitable for use as a compound
// property or list element.
func CompoundTag(c *Compound) Tag { return Tag{id: TagCompound, data: c} }

// ID returns the tag's variant.
func (t Tag) ID() TagID { return t.id }

// AsByte returns the payload if t is a Byte tag.
func (t Tag) AsByte() (int8, bool) { v, ok := t.data.(int8); return v, ok }

// AsShort returns the payload if t is a Short tag.
func (t Tag) AsShort() (int16, bool) { v, ok := t.data.(int16); return v, ok }

// AsInt returns the payload if t is an Int tag.
func (t Tag) AsInt() (int32, bool) { v, ok := t.data.(int32); return v, ok }

// AsLong returns the payload if t is a Long tag.
func (t Tag) AsLong() (int64, bool) { v, ok := t.data.(int64); return v, ok }

// AsFloat returns the payload if t is a Float tag.
func (t Tag) AsFloat() (float32, bool) { v, ok := t.data.(float32); return v, ok }

// AsDouble returns the payload if t is a Double tag.
func (t Tag) AsDouble() (float64, bool) { v, ok := t.data.(float64); return v, ok }

// AsByteArray returns the payload if t is a ByteArray tag.
func (t Tag) AsByteArray() ([]int8, bool) { v, ok := t.data.([]int8); return v, ok }

// AsString returns the payload if t is a String tag.
func (t Tag) AsString() (string, bool) { v, ok := t.data.(string); return v, ok }

// AsList returns the payload if t is a List tag.
func (t Tag) AsList() (*List, bool) { v, ok := t.data.(*List); return v, ok }

// AsCompound returns the payload if t is a Compound tag.
func (t Tag) AsCompound() (*Compound, bool) { v, ok := t.data.(*Compound); return v, ok }

// AsIntArray returns the payload if t is an IntArray tag.
func (t Tag) AsIntArray() ([]int32, bool) { v, ok := t.data.([]int32); return v, ok }

// AsLongArray returns the payload if t is a LongArray tag.
func (t Tag) AsLongArray() ([]int64, bool) { v, ok := t.data.([]int64); return v, ok }

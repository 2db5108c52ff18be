package protocol

import "io"

// BitSet is a VarInt-length-prefixed sequence of big-endian 64-bit words
// (spec.md 3.2). Bit i lives in word i/64 at position i%64.
type BitSet struct {
	words []uint64
}

// NewBitSet allocates a BitSet able to hold at least nBits bits.
func NewBitSet(nBits int) *BitSet {
	n := (nBits + 63) / 64
	return &BitSet{words: make([]uint64, n)}
}

// Set marks bit i.
func (b *BitSet) Set(i int) {
	b.words[i/64] |= 1 << uint(i%64)
}

// Get reports whether bit i is set.
func (b *BitSet) Get(i int) bool {
	return b.words[i/64]&(1<<uint(i%64)) != 0
}

// Words returns the number of 64-bit words backing the set.
func (b *BitSet) Words() int { return len(b.words) }

// ReadBitSet reads a VarInt word count followed by that many i64 words.
func ReadBitSet(r io.Reader) (*BitSet, error) {
	n, _, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, newMalformedFrame(nil, "negative bitset word count %d", n)
	}
	words := make([]uint64, n)
	for i := range words {
		v, err := ReadInt64(r)
		if err != nil {
			return nil, err
		}
		words[i] = uint64(v)
	}
	return &BitSet{words: words}, nil
}

// WriteBitSet writes the word count as a VarInt, then the words.
func WriteBitSet(w io.Writer, b *BitSet) error {
	if _, err := WriteVarInt(w, int64(len(b.words))); err != nil {
		return err
	}
	for _, word := range b.words {
		if err := WriteInt64(w, int64(word)); err != nil {
			return err
		}
	}
	return nil
}

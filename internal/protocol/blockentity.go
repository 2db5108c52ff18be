package protocol

import (
	"io"

	"github.com/meshbound/blockproto/internal/nbt"
)

// BlockEntity is a chunk-local block entity (sign, banner, ...) embedded in
// ChunkDataAndUpdateLight (spec.md 4.3). X/Z are in-chunk coordinates 0-15.
type BlockEntity struct {
	X, Z int8
	Y    int16
	Type int32
	Data *nbt.Compound
}

// ReadBlockEntity reads one block entity: packed (x,z) byte, i16 y, VarInt
// type, and an embedded NBT compound.
func ReadBlockEntity(r io.Reader) (BlockEntity, error) {
	packed, err := ReadUint8(r)
	if err != nil {
		return BlockEntity{}, err
	}
	y, err := ReadInt16(r)
	if err != nil {
		return BlockEntity{}, err
	}
	typ, _, err := ReadVarInt(r)
	if err != nil {
		return BlockEntity{}, err
	}
	data, err := nbt.ReadCompound(r)
	if err != nil {
		return BlockEntity{}, err
	}
	return BlockEntity{
		X:    int8((packed >> 4) & 0xF),
		Z:    int8(packed & 0xF),
		Y:    y,
		Type: int32(typ),
		Data: data,
	}, nil
}

// WriteBlockEntity writes one block entity in the same layout.
func WriteBlockEntity(w io.Writer, be BlockEntity) error {
	packed := byte(be.X&0xF)<<4 | byte(be.Z&0xF)
	if err := WriteUint8(w, packed); err != nil {
		return err
	}
	if err := WriteInt16(w, be.Y); err != nil {
		return err
	}
	if _, err := WriteVarInt(w, int64(be.Type)); err != nil {
		return err
	}
	return nbt.WriteCompound(w, be.Data)
}

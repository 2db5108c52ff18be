package protocol

import (
	"fmt"
	"io"

	"github.com/meshbound/blockproto/internal/nbt"
)

// OutPacket is implemented by every packet this core can send. validState
// reports which connection State the packet is legal in, so Conn.WritePacket
// can enforce spec.md's REDESIGN FLAGS state-matching invariant.
type OutPacket interface {
	isOutPacket()
	packetID() int64
	validState() State
	encodeBody(w io.Writer) error
}

// DisconnectLogin closes a Login-phase connection with a reason. Per
// spec.md 6.3 the reason is embedded as the literal, unescaped ASCII
// `{text:"<REASON>"}` — byte-for-byte, not JSON-escaped.
type DisconnectLogin struct {
	Reason string
}

func (DisconnectLogin) isOutPacket()      {}
func (DisconnectLogin) packetID() int64   { return 0x00 }
func (DisconnectLogin) validState() State { return StateLogin }
func (d DisconnectLogin) encodeBody(w io.Writer) error {
	return WriteString(w, fmt.Sprintf(`{text:"%s"}`, d.Reason))
}

// LoginProperty is one signed/unsigned property entry in LoginSuccess.
type LoginProperty struct {
	Name         string
	Value        string
	HasSignature bool
	Signature    string
}

// LoginSuccess completes the login phase.
type LoginSuccess struct {
	UUID       UUID
	Username   string
	Properties []LoginProperty
}

func (LoginSuccess) isOutPacket()      {}
func (LoginSuccess) packetID() int64   { return 0x02 }
func (LoginSuccess) validState() State { return StateLogin }
func (l LoginSuccess) encodeBody(w io.Writer) error {
	if err := WriteUUID(w, l.UUID); err != nil {
		return err
	}
	if err := WriteString(w, l.Username); err != nil {
		return err
	}
	if _, err := WriteVarInt(w, int64(len(l.Properties))); err != nil {
		return err
	}
	for _, p := range l.Properties {
		if err := WriteString(w, p.Name); err != nil {
			return err
		}
		if err := WriteString(w, p.Value); err != nil {
			return err
		}
		if err := WriteBool(w, p.HasSignature); err != nil {
			return err
		}
		if p.HasSignature {
			if err := WriteString(w, p.Signature); err != nil {
				return err
			}
		}
	}
	return nil
}

// FinishConfigOut (outbound, Config state) has an empty body and moves the
// connection into Play.
type FinishConfigOut struct{}

func (FinishConfigOut) isOutPacket()           {}
func (FinishConfigOut) packetID() int64        { return 0x02 }
func (FinishConfigOut) validState() State      { return StateConfig }
func (FinishConfigOut) encodeBody(io.Writer) error { return nil }

// DeathLocation is LoginPlay's optional "last known death" payload.
type DeathLocation struct {
	Dimension string
	Location  Position
}

// LoginPlay begins the Play phase.
type LoginPlay struct {
	EntityID            int32
	IsHardcore          bool
	DimensionNames       []string
	MaxPlayers           int64
	ViewDistance         int64
	SimulationDistance   int64
	ReducedDebugInfo     bool
	EnableRespawnScreen  bool
	DoLimitedCrafting    bool
	DimensionType        string
	DimensionName        string
	HashedSeed           int64
	GameMode             uint8
	PrevGameMode         int8
	IsDebug              bool
	IsSuperflat          bool
	DeathLocation        *DeathLocation
	PortalCooldown       int64
}

func (LoginPlay) isOutPacket()      {}
func (LoginPlay) packetID() int64   { return 0x29 }
func (LoginPlay) validState() State { return StatePlay }
func (l LoginPlay) encodeBody(w io.Writer) error {
	if err := WriteInt32(w, l.EntityID); err != nil {
		return err
	}
	if err := WriteBool(w, l.IsHardcore); err != nil {
		return err
	}
	if _, err := WriteVarInt(w, int64(len(l.DimensionNames))); err != nil {
		return err
	}
	for _, name := range l.DimensionNames {
		if err := WriteString(w, name); err != nil {
			return err
		}
	}
	if _, err := WriteVarInt(w, l.MaxPlayers); err != nil {
		return err
	}
	if _, err := WriteVarInt(w, l.ViewDistance); err != nil {
		return err
	}
	if _, err := WriteVarInt(w, l.SimulationDistance); err != nil {
		return err
	}
	if err := WriteBool(w, l.ReducedDebugInfo); err != nil {
		return err
	}
	if err := WriteBool(w, l.EnableRespawnScreen); err != nil {
		return err
	}
	if err := WriteBool(w, l.DoLimitedCrafting); err != nil {
		return err
	}
	if err := WriteString(w, l.DimensionType); err != nil {
		return err
	}
	if err := WriteString(w, l.DimensionName); err != nil {
		return err
	}
	if err := WriteInt64(w, l.HashedSeed); err != nil {
		return err
	}
	if err := WriteUint8(w, l.GameMode); err != nil {
		return err
	}
	if err := WriteInt8(w, l.PrevGameMode); err != nil {
		return err
	}
	if err := WriteBool(w, l.IsDebug); err != nil {
		return err
	}
	if err := WriteBool(w, l.IsSuperflat); err != nil {
		return err
	}
	if err := WriteBool(w, l.DeathLocation != nil); err != nil {
		return err
	}
	if l.DeathLocation != nil {
		if err := WriteString(w, l.DeathLocation.Dimension); err != nil {
			return err
		}
		if err := WritePosition(w, l.DeathLocation.Location); err != nil {
			return err
		}
	}
	if _, err := WriteVarInt(w, l.PortalCooldown); err != nil {
		return err
	}
	return nil
}

// lightArraySize is the fixed per-section light array length (spec.md 4.4).
const lightArraySize = 2048

// ChunkDataAndUpdateLight carries one chunk column's heightmaps, section
// bytes, block entities, and sky/block light data.
type ChunkDataAndUpdateLight struct {
	ChunkX, ChunkZ       int32
	Heightmaps           *nbt.Compound
	Data                 []byte
	BlockEntities        []BlockEntity
	SkyLightMask         *BitSet
	BlockLightMask       *BitSet
	EmptySkyLightMask    *BitSet
	EmptyBlockLightMask  *BitSet
	SkyLightArrays       [][]byte
	BlockLightArrays     [][]byte
}

func (ChunkDataAndUpdateLight) isOutPacket()      {}
func (ChunkDataAndUpdateLight) packetID() int64   { return 0x25 }
func (ChunkDataAndUpdateLight) validState() State { return StatePlay }
func (c ChunkDataAndUpdateLight) encodeBody(w io.Writer) error {
	if err := WriteInt32(w, c.ChunkX); err != nil {
		return err
	}
	if err := WriteInt32(w, c.ChunkZ); err != nil {
		return err
	}
	if err := nbt.WriteCompound(w, c.Heightmaps); err != nil {
		return err
	}
	if _, err := WriteVarInt(w, int64(len(c.Data))); err != nil {
		return err
	}
	if _, err := w.Write(c.Data); err != nil {
		return wrapTransport(err)
	}
	if _, err := WriteVarInt(w, int64(len(c.BlockEntities))); err != nil {
		return err
	}
	for _, be := range c.BlockEntities {
		if err := WriteBlockEntity(w, be); err != nil {
			return err
		}
	}
	for _, mask := range []*BitSet{c.SkyLightMask, c.BlockLightMask, c.EmptySkyLightMask, c.EmptyBlockLightMask} {
		if err := WriteBitSet(w, mask); err != nil {
			return err
		}
	}
	if err := writeLightArrays(w, c.SkyLightArrays); err != nil {
		return err
	}
	return writeLightArrays(w, c.BlockLightArrays)
}

func writeLightArrays(w io.Writer, arrays [][]byte) error {
	if _, err := WriteVarInt(w, int64(len(arrays))); err != nil {
		return err
	}
	for _, arr := range arrays {
		if len(arr) != lightArraySize {
			return newMalformedFrame(nil, "light array length %d, want %d", len(arr), lightArraySize)
		}
		if _, err := WriteVarInt(w, lightArraySize); err != nil {
			return err
		}
		if _, err := w.Write(arr); err != nil {
			return wrapTransport(err)
		}
	}
	return nil
}

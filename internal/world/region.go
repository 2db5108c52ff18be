package world

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/meshbound/blockproto/internal/hash"
	"github.com/meshbound/blockproto/internal/nbt"
	"github.com/meshbound/blockproto/internal/protocol"
)

// ChunkColumn is the persisted form of one ChunkDataAndUpdateLight payload:
// everything needed to reconstruct the packet for a player re-entering the
// chunk's view distance, without re-running chunk generation.
type ChunkColumn struct {
	X, Z          int32
	Heightmaps    *nbt.Compound
	Data          []byte
	BlockEntities []protocol.BlockEntity
}

// Store persists ChunkColumns as one compressed shard per chunk, whose file
// name is the hex form of an xxHash64 of its (x,z) coordinate
// (internal/hash.ChunkKey) rather than a formatted "x.z" string.
type Store struct {
	dir   string
	codec Codec
}

// NewStore opens a region store rooted at dir, compressing shards with
// codec. dir is created if absent.
func NewStore(dir string, codec Codec) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("world: create region dir: %w", err)
	}
	return &Store{dir: dir, codec: codec}, nil
}

func (s *Store) shardPath(x, z int32) string {
	key := hash.ChunkKey(x, z)
	return filepath.Join(s.dir, fmt.Sprintf("%016x.chunk", key))
}

// Save compresses and writes a chunk column, overwriting any prior shard
// for the same coordinate.
func (s *Store) Save(c ChunkColumn) error {
	raw, err := encodeChunkColumn(c)
	if err != nil {
		return err
	}
	compressed, err := s.codec.Compress(raw)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.shardPath(c.X, c.Z), compressed, 0o644); err != nil {
		return fmt.Errorf("world: write region shard: %w", err)
	}
	return nil
}

// Load reads and decompresses the chunk column at (x,z). It returns
// os.ErrNotExist (wrapped) if the chunk was never saved.
func (s *Store) Load(x, z int32) (*ChunkColumn, error) {
	compressed, err := os.ReadFile(s.shardPath(x, z))
	if err != nil {
		return nil, fmt.Errorf("world: read region shard: %w", err)
	}
	raw, err := s.codec.Decompress(compressed)
	if err != nil {
		return nil, err
	}
	return decodeChunkColumn(raw)
}

func encodeChunkColumn(c ChunkColumn) ([]byte, error) {
	var buf bytes.Buffer
	if err := protocol.WriteInt32(&buf, c.X); err != nil {
		return nil, err
	}
	if err := protocol.WriteInt32(&buf, c.Z); err != nil {
		return nil, err
	}
	if err := nbt.WriteCompound(&buf, c.Heightmaps); err != nil {
		return nil, err
	}
	if _, err := protocol.WriteVarInt(&buf, int64(len(c.Data))); err != nil {
		return nil, err
	}
	if _, err := buf.Write(c.Data); err != nil {
		return nil, err
	}
	if _, err := protocol.WriteVarInt(&buf, int64(len(c.BlockEntities))); err != nil {
		return nil, err
	}
	for _, be := range c.BlockEntities {
		if err := protocol.WriteBlockEntity(&buf, be); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func decodeChunkColumn(raw []byte) (*ChunkColumn, error) {
	r := bytes.NewReader(raw)
	x, err := protocol.ReadInt32(r)
	if err != nil {
		return nil, err
	}
	z, err := protocol.ReadInt32(r)
	if err != nil {
		return nil, err
	}
	heightmaps, err := nbt.ReadCompound(r)
	if err != nil {
		return nil, err
	}
	dataLen, _, err := protocol.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	data := make([]byte, dataLen)
	if dataLen > 0 {
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, fmt.Errorf("world: read chunk data: %w", err)
		}
	}
	beCount, _, err := protocol.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	entities := make([]protocol.BlockEntity, beCount)
	for i := range entities {
		be, err := protocol.ReadBlockEntity(r)
		if err != nil {
			return nil, err
		}
		entities[i] = be
	}
	return &ChunkColumn{X: x, Z: z, Heightmaps: heightmaps, Data: data, BlockEntities: entities}, nil
}

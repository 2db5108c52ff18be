// Package hash provides the fast, non-cryptographic hashing used to key
// NBT compound lookups and region-file shard names.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// ID returns the xxHash64 of a compound property name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// ChunkKey returns the xxHash64 of a chunk column coordinate pair, used to
// name region-file shards.
func ChunkKey(x, z int32) uint64 {
	var buf [8]byte
	binary.BigEndian.PutUint32(buf[0:4], uint32(x))
	binary.BigEndian.PutUint32(buf[4:8], uint32(z))
	return xxhash.Sum64(buf[:])
}

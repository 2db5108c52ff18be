// Package world persists decoded ChunkDataAndUpdateLight payloads to disk
// between server sessions, the way a real block-world server must but the
// wire protocol itself (spec.md's explicit scope) never specifies. The
// Codec abstraction and per-algorithm file layout are grounded on
// arloliu-mebo/compress: a Compressor/Decompressor pair combined into a
// Codec interface, with a name-keyed factory.
package world

import "fmt"

// Codec compresses and decompresses one region shard's raw bytes.
type Codec interface {
	Name() string
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// CodecName selects a Codec implementation from server configuration.
type CodecName string

const (
	CodecZlib CodecName = "zlib"
	CodecLZ4  CodecName = "lz4"
)

// NewCodec is a factory mirroring arloliu-mebo/compress.CreateCodec: pick a
// Codec implementation by configured name.
func NewCodec(name CodecName) (Codec, error) {
	switch name {
	case CodecZlib, "":
		return NewZlibCodec(), nil
	case CodecLZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("world: unknown region codec %q", name)
	}
}

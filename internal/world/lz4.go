package world

import (
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances, which carry internal
// match-finder state worth reusing across chunk writes. Grounded directly
// on arloliu-mebo/compress/lz4.go's pooling pattern.
var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// LZ4Codec trades compression ratio for decode speed; selectable via
// server config for worlds where load latency matters more than disk
// footprint.
type LZ4Codec struct{}

// NewLZ4Codec creates an LZ4Codec.
func NewLZ4Codec() LZ4Codec { return LZ4Codec{} }

func (LZ4Codec) Name() string { return string(CodecLZ4) }

func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	c, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(c)

	n, err := c.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("world: lz4 compress: %w", err)
	}
	if n == 0 {
		// Incompressible input: lz4 reports 0 to mean "store uncompressed".
		return append([]byte{0}, data...), nil
	}
	return append([]byte{1}, dst[:n]...), nil
}

func (LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	stored, payload := data[0], data[1:]
	if stored == 0 {
		out := make([]byte, len(payload))
		copy(out, payload)
		return out, nil
	}
	dst := make([]byte, len(payload)*4+64)
	for {
		n, err := lz4.UncompressBlock(payload, dst)
		if err == nil {
			return dst[:n], nil
		}
		dst = make([]byte, len(dst)*2)
		if len(dst) > 1<<28 {
			return nil, fmt.Errorf("world: lz4 decompress: %w", err)
		}
	}
}

package world

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ZlibCodec is the default region-file compressor, matching vanilla
// Minecraft's own on-disk region format choice. Grounded on
// arloliu-mebo/compress's klauspost/compress usage for its zstd_pure
// fallback path (same library, same "no cgo required" rationale).
type ZlibCodec struct{}

// NewZlibCodec creates a ZlibCodec.
func NewZlibCodec() ZlibCodec { return ZlibCodec{} }

func (ZlibCodec) Name() string { return string(CodecZlib) }

func (ZlibCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("world: zlib compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("world: zlib compress: %w", err)
	}
	return buf.Bytes(), nil
}

func (ZlibCodec) Decompress(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("world: zlib decompress: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("world: zlib decompress: %w", err)
	}
	return out, nil
}

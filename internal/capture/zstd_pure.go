//go:build !cgo

package capture

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// compressBlock falls back to the pure-Go zstd encoder when cgo isn't
// available (cross-compiled builds, CGO_ENABLED=0), matching the
// cgo/no-cgo split arloliu-mebo/compress draws between zstd_cgo.go and
// zstd_pure.go.
func compressBlock(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

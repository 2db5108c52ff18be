// Package capture records decoded and encoded packets to an archive file
// for offline protocol debugging, the same problem arloliu-mebo/compress
// solves for its columnar metric blobs. Enabling capture never changes
// decode behavior: Conn only ever sees a *Writer as an optional
// protocol.Tap attached with Conn.SetTap.
package capture

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/meshbound/blockproto/internal/protocol"
)

// recordHeaderSize is seq(8) + state(1) + packet id(8) + raw length(4).
const recordHeaderSize = 21

// Writer batches records and flushes them as compressed blocks. It is not
// safe for concurrent use, matching spec.md 5's single-writer-per-connection
// rule: a connection's capture.Writer is owned by the same goroutine that
// owns its protocol.Conn.
type Writer struct {
	w       io.Writer
	pending []byte
	seq     uint64
}

// NewWriter wraps an archive file (or any io.Writer) for capture.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Append records one packet. raw is the packet's full encoded body
// (post packet-id, pre length-prefix), exactly what WritePacket/ReadPacket
// already has in hand.
func (c *Writer) Append(state protocol.State, id int64, raw []byte) {
	c.seq++
	var header [recordHeaderSize]byte
	binary.BigEndian.PutUint64(header[0:8], c.seq)
	header[8] = byte(state)
	binary.BigEndian.PutUint64(header[9:17], uint64(id))
	binary.BigEndian.PutUint32(header[17:21], uint32(len(raw)))
	c.pending = append(c.pending, header[:]...)
	c.pending = append(c.pending, raw...)
}

// Flush compresses and writes any buffered records as one length-prefixed
// block. A no-op if nothing has been appended since the last flush.
func (c *Writer) Flush() error {
	if len(c.pending) == 0 {
		return nil
	}
	compressed, err := compressBlock(c.pending)
	if err != nil {
		return fmt.Errorf("capture: compress: %w", err)
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(compressed)))
	if _, err := c.w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("capture: write block: %w", err)
	}
	if _, err := c.w.Write(compressed); err != nil {
		return fmt.Errorf("capture: write block: %w", err)
	}
	c.pending = c.pending[:0]
	return nil
}

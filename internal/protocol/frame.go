package protocol

import (
	"bytes"
	"io"
)

// Tap receives a copy of every packet body this connection decodes or
// encodes, keyed by the state the connection was in at the time and the
// packet id, with the packet id's own VarInt bytes excluded. internal/capture
// implements this interface without protocol depending on it, so Conn can
// feed a capture.Writer without importing it.
type Tap interface {
	Append(state State, id int64, raw []byte)
}

// Conn drives the per-connection read/write protocol state machine over an
// abstract byte stream (spec.md 4.4, 4.5, 6.2). It is not safe for
// concurrent use by more than one goroutine (spec.md 5).
type Conn struct {
	r     io.Reader
	w     io.Writer
	state State
	// scratch is reused across WritePacket calls; it is always cleared
	// before use and is never aliased to w (spec.md 9 "prevent the
	// scratch buffer being aliased to the outbound writer").
	scratch bytes.Buffer
	tap     Tap
}

// NewConn wraps a byte stream for reading and writing framed packets,
// starting in the Handshaking state.
func NewConn(r io.Reader, w io.Writer) *Conn {
	return &Conn{r: r, w: w, state: StateHandshaking}
}

// State returns the connection's current protocol state.
func (c *Conn) State() State { return c.state }

// SetTap attaches t so every subsequent ReadPacket/WritePacket call also
// appends its raw body to t; pass nil to detach. Enabling a tap never
// changes decode/encode behavior, only what gets mirrored out of band.
func (c *Conn) SetTap(t Tap) { c.tap = t }

// ReadPacket blocks until one full length-prefixed packet is decoded,
// dispatches it by (state, id), and advances state per the inbound
// dispatch table. It never rewinds on error (spec.md 5, 7).
func (c *Conn) ReadPacket() (InPacket, error) {
	totalLen, _, err := ReadVarInt(c.r)
	if err != nil {
		return nil, err
	}
	if totalLen < 0 {
		return nil, newMalformedFrame(nil, "negative frame length %d", totalLen)
	}

	body := &io.LimitedReader{R: c.r, N: totalLen}
	cr := &countingReader{r: body}

	id, idBytes, err := ReadVarInt(cr)
	if err != nil {
		return nil, err
	}

	entry, ok := inboundTable[dispatchKey{state: c.state, id: id}]
	if !ok {
		return nil, newMalformedFrame(ErrUnknownPacket, "state=%s id=0x%02x", c.state, id)
	}

	var tapBuf bytes.Buffer
	if c.tap != nil {
		cr.r = io.TeeReader(cr.r, &tapBuf)
	}

	bodyLen := totalLen - int64(idBytes)
	pkt, err := entry.decode(cr, bodyLen)
	if err != nil {
		return nil, err
	}

	// Drain any bytes the decoder didn't consume so the stream stays
	// aligned on the next frame (spec.md 4.4 "consuming the remaining
	// bytes"). Draining through cr (rather than body directly) keeps it
	// covered by the tee above.
	if _, err := io.Copy(io.Discard, cr); err != nil {
		return nil, wrapTransport(err)
	}

	if c.tap != nil {
		c.tap.Append(c.state, id, tapBuf.Bytes())
	}

	c.state = entry.next
	return pkt, nil
}

// WritePacket serializes pkt into a private scratch buffer (so the length
// prefix is known before anything reaches the real writer, per spec.md 9),
// then writes the VarInt length prefix followed by the buffer contents.
//
// Per spec.md's REDESIGN FLAGS, this diverges from "the reference": it
// rejects a packet whose validState() doesn't match the connection's
// current state, and it performs the outbound state transitions the
// reference never modeled (LoginSuccess moves Login->Config,
// FinishConfigOut moves Config->Play).
func (c *Conn) WritePacket(pkt OutPacket) error {
	if pkt.validState() != c.state {
		return newProtocolViolation("packet valid in %s sent while connection is in %s", pkt.validState(), c.state)
	}

	c.scratch.Reset()
	id := pkt.packetID()
	if _, err := WriteVarInt(&c.scratch, id); err != nil {
		return err
	}
	idBytes := c.scratch.Len()
	if err := pkt.encodeBody(&c.scratch); err != nil {
		return err
	}

	if c.tap != nil {
		body := c.scratch.Bytes()[idBytes:]
		raw := make([]byte, len(body))
		copy(raw, body)
		c.tap.Append(c.state, id, raw)
	}

	if _, err := WriteVarInt(c.w, int64(c.scratch.Len())); err != nil {
		return err
	}
	if _, err := c.w.Write(c.scratch.Bytes()); err != nil {
		return wrapTransport(err)
	}

	switch pkt.(type) {
	case LoginSuccess:
		c.state = StateConfig
	case FinishConfigOut:
		c.state = StatePlay
	}
	return nil
}

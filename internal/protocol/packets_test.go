package protocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func frameBody(t *testing.T, body []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	_, err := WriteVarInt(&buf, int64(len(body)))
	require.NoError(t, err)
	buf.Write(body)
	return buf.Bytes()
}

func TestReadPacket_Handshake(t *testing.T) {
	var body bytes.Buffer
	body.WriteByte(0x00) // packet id
	_, err := WriteVarInt(&body, 764)
	require.NoError(t, err)
	require.NoError(t, WriteString(&body, "localhost"))
	require.NoError(t, WriteUint16(&body, 25565))
	_, err = WriteVarInt(&body, 2)
	require.NoError(t, err)

	frame := bytes.NewReader(frameBody(t, body.Bytes()))
	conn := NewConn(frame, nil)
	require.Equal(t, StateHandshaking, conn.State())

	pkt, err := conn.ReadPacket()
	require.NoError(t, err)
	hs, ok := pkt.(Handshake)
	require.True(t, ok)
	require.Equal(t, int64(764), hs.ProtocolVersion)
	require.Equal(t, "localhost", hs.ServerAddress)
	require.Equal(t, uint16(25565), hs.ServerPort)
	require.Equal(t, IntentLogin, hs.NextState)
	require.Equal(t, StateLogin, conn.State())
}

func TestReadPacket_LoginStart(t *testing.T) {
	var body bytes.Buffer
	body.WriteByte(0x00)
	require.NoError(t, WriteString(&body, "Alex"))
	uuid := UUID{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	require.NoError(t, WriteUUID(&body, uuid))

	frame := bytes.NewReader(frameBody(t, body.Bytes()))
	conn := &Conn{r: frame, state: StateLogin}

	pkt, err := conn.ReadPacket()
	require.NoError(t, err)
	ls, ok := pkt.(LoginStart)
	require.True(t, ok)
	require.Equal(t, "Alex", ls.Name)
	require.Equal(t, uuid, ls.UUID)
	require.Equal(t, StateLogin, conn.State())
}

func TestWritePacket_LoginSuccess_Fixture(t *testing.T) {
	var out bytes.Buffer
	conn := &Conn{w: &out, state: StateLogin}

	err := conn.WritePacket(LoginSuccess{
		UUID:     UUID{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
		Username: "foobar",
	})
	require.NoError(t, err)

	var want bytes.Buffer
	want.WriteByte(0x02)
	want.Write(UUID{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}[:])
	want.Write([]byte{0x06})
	want.WriteString("foobar")
	want.WriteByte(0x00) // 0 properties

	var wantFrame bytes.Buffer
	_, err = WriteVarInt(&wantFrame, int64(want.Len()))
	require.NoError(t, err)
	wantFrame.Write(want.Bytes())

	require.Equal(t, wantFrame.Bytes(), out.Bytes())
	require.Equal(t, StateConfig, conn.State())
}

func TestWritePacket_RejectsWrongState(t *testing.T) {
	var out bytes.Buffer
	conn := &Conn{w: &out, state: StatePlay}
	err := conn.WritePacket(LoginSuccess{Username: "x"})
	var pv *ProtocolViolation
	require.ErrorAs(t, err, &pv)
}

func TestStateMachine_HappyPath(t *testing.T) {
	var wire bytes.Buffer

	writeFrame := func(body []byte) {
		_, err := WriteVarInt(&wire, int64(len(body)))
		require.NoError(t, err)
		wire.Write(body)
	}

	// Handshake(next=Login)
	var hs bytes.Buffer
	hs.WriteByte(0x00)
	_, err := WriteVarInt(&hs, 764)
	require.NoError(t, err)
	require.NoError(t, WriteString(&hs, "localhost"))
	require.NoError(t, WriteUint16(&hs, 25565))
	_, err = WriteVarInt(&hs, 2)
	require.NoError(t, err)
	writeFrame(hs.Bytes())

	// LoginStart
	var ls bytes.Buffer
	ls.WriteByte(0x00)
	require.NoError(t, WriteString(&ls, "Steve"))
	require.NoError(t, WriteUUID(&ls, UUID{}))
	writeFrame(ls.Bytes())

	// LoginAck
	writeFrame([]byte{0x03})

	// ClientInfoConfig
	var cic bytes.Buffer
	cic.WriteByte(0x00)
	require.NoError(t, WriteString(&cic, "en_US"))
	require.NoError(t, WriteInt8(&cic, 10))
	_, err = WriteVarInt(&cic, 0)
	require.NoError(t, err)
	require.NoError(t, WriteBool(&cic, true))
	require.NoError(t, WriteUint8(&cic, 0x7f))
	_, err = WriteVarInt(&cic, 1)
	require.NoError(t, err)
	require.NoError(t, WriteBool(&cic, true))
	require.NoError(t, WriteBool(&cic, true))
	writeFrame(cic.Bytes())

	// PluginMessage
	var pm bytes.Buffer
	pm.WriteByte(0x01)
	require.NoError(t, WriteString(&pm, "minecraft:brand"))
	pm.Write([]byte("vanilla"))
	writeFrame(pm.Bytes())

	// FinishConfig
	writeFrame([]byte{0x02})

	conn := NewConn(&wire, nil)
	wantStates := []State{StateLogin, StateLogin, StateConfig, StateConfig, StateConfig, StatePlay}
	for i, want := range wantStates {
		_, err := conn.ReadPacket()
		require.NoError(t, err, "packet %d", i)
		require.Equal(t, want, conn.State(), "packet %d", i)
	}
}

func TestReadPacket_PluginMessage_DataLength(t *testing.T) {
	var body bytes.Buffer
	body.WriteByte(0x01)
	require.NoError(t, WriteString(&body, "minecraft:brand"))
	body.Write([]byte("fabric"))

	frame := bytes.NewReader(frameBody(t, body.Bytes()))
	conn := &Conn{r: frame, state: StateConfig}

	pkt, err := conn.ReadPacket()
	require.NoError(t, err)
	pm, ok := pkt.(PluginMessage)
	require.True(t, ok)
	require.Equal(t, "minecraft:brand", pm.Channel)
	require.Equal(t, []byte("fabric"), pm.Data)
}

func TestReadPacket_UnknownStateIDPair(t *testing.T) {
	frame := bytes.NewReader(frameBody(t, []byte{0x7f}))
	conn := &Conn{r: frame, state: StateHandshaking}
	_, err := conn.ReadPacket()
	require.ErrorIs(t, err, ErrUnknownPacket)
}

package protocol

import "io"

// countingReader tracks the number of bytes read through it, so a decoder
// that embeds a variable-length field ahead of a "rest of the body" byte
// slice (PluginMessage.Data) can compute how much is left without a second
// length prefix on the wire.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	if err != nil && err != io.EOF {
		return n, wrapTransport(err)
	}
	// io.EOF passes through unwrapped so io.Copy/io.ReadFull recognize the
	// end of the frame body; the primitive readers wrap it themselves.
	return n, err
}

// InPacket is implemented by every decoded inbound packet type.
type InPacket interface {
	isInPacket()
}

// HandshakeIntent is the Handshake packet's declared next-phase request.
type HandshakeIntent int32

const (
	IntentStatus HandshakeIntent = 1
	IntentLogin  HandshakeIntent = 2
)

// Handshake is the sole Handshaking-state packet.
type Handshake struct {
	ProtocolVersion int64
	ServerAddress   string
	ServerPort      uint16
	NextState       HandshakeIntent
}

func (Handshake) isInPacket() {}

// LoginStart begins the login sequence.
type LoginStart struct {
	Name string
	UUID UUID
}

func (LoginStart) isInPacket() {}

// LoginAck acknowledges LoginSuccess and requests the Config phase.
type LoginAck struct{}

func (LoginAck) isInPacket() {}

// ChatMode is ClientInfoConfig's declared chat visibility preference.
type ChatMode int32

const (
	ChatModeEnabled      ChatMode = 0
	ChatModeCommandsOnly ChatMode = 1
	ChatModeHidden       ChatMode = 2
)

// MainHand is ClientInfoConfig's declared dominant hand.
type MainHand int32

const (
	MainHandLeft  MainHand = 0
	MainHandRight MainHand = 1
)

// ClientInfoConfig carries client display/accessibility settings.
type ClientInfoConfig struct {
	Locale              string
	ViewDistance        int8
	ChatMode            ChatMode
	ChatColors          bool
	DisplayedSkinParts  uint8
	MainHand            MainHand
	EnableTextFiltering bool
	AllowServerListings bool
}

func (ClientInfoConfig) isInPacket() {}

// PluginMessage is an application-defined channel message; Data is
// whatever bytes remain in the packet body after the channel string.
type PluginMessage struct {
	Channel string
	Data    []byte
}

func (PluginMessage) isInPacket() {}

// FinishConfig (inbound) requests the transition into Play.
type FinishConfig struct{}

func (FinishConfig) isInPacket() {}

type inDecoder func(cr *countingReader, bodyLen int64) (InPacket, error)

type dispatchEntry struct {
	decode inDecoder
	next   State
}

type dispatchKey struct {
	state State
	id    int64
}

// inboundTable implements spec.md 4.4's (state, id) dispatch table.
var inboundTable = map[dispatchKey]dispatchEntry{
	{StateHandshaking, 0x00}: {decodeHandshake, StateLogin},
	{StateLogin, 0x00}:       {decodeLoginStart, StateLogin},
	{StateLogin, 0x03}:       {decodeLoginAck, StateConfig},
	{StateConfig, 0x00}:      {decodeClientInfoConfig, StateConfig},
	{StateConfig, 0x01}:      {decodePluginMessage, StateConfig},
	{StateConfig, 0x02}:      {decodeFinishConfig, StatePlay},
}

func decodeHandshake(cr *countingReader, _ int64) (InPacket, error) {
	protoVer, _, err := ReadVarInt(cr)
	if err != nil {
		return nil, err
	}
	addr, err := ReadString(cr)
	if err != nil {
		return nil, err
	}
	port, err := ReadUint16(cr)
	if err != nil {
		return nil, err
	}
	nextState, _, err := ReadVarInt(cr)
	if err != nil {
		return nil, err
	}
	intent := HandshakeIntent(nextState)
	if intent != IntentStatus && intent != IntentLogin {
		return nil, newFieldOutOfRange("Handshake.NextState", nextState)
	}
	return Handshake{
		ProtocolVersion: protoVer,
		ServerAddress:   addr,
		ServerPort:      port,
		NextState:       intent,
	}, nil
}

func decodeLoginStart(cr *countingReader, _ int64) (InPacket, error) {
	name, err := ReadString(cr)
	if err != nil {
		return nil, err
	}
	uuid, err := ReadUUID(cr)
	if err != nil {
		return nil, err
	}
	return LoginStart{Name: name, UUID: uuid}, nil
}

func decodeLoginAck(_ *countingReader, _ int64) (InPacket, error) {
	return LoginAck{}, nil
}

func decodeClientInfoConfig(cr *countingReader, _ int64) (InPacket, error) {
	locale, err := ReadString(cr)
	if err != nil {
		return nil, err
	}
	viewDistance, err := ReadInt8(cr)
	if err != nil {
		return nil, err
	}
	chatModeRaw, _, err := ReadVarInt(cr)
	if err != nil {
		return nil, err
	}
	if chatModeRaw < 0 || chatModeRaw > 2 {
		return nil, newFieldOutOfRange("ClientInfoConfig.ChatMode", chatModeRaw)
	}
	chatColors, err := ReadBool(cr)
	if err != nil {
		return nil, err
	}
	skinParts, err := ReadUint8(cr)
	if err != nil {
		return nil, err
	}
	mainHandRaw, _, err := ReadVarInt(cr)
	if err != nil {
		return nil, err
	}
	if mainHandRaw != 0 && mainHandRaw != 1 {
		return nil, newFieldOutOfRange("ClientInfoConfig.MainHand", mainHandRaw)
	}
	textFiltering, err := ReadBool(cr)
	if err != nil {
		return nil, err
	}
	serverListings, err := ReadBool(cr)
	if err != nil {
		return nil, err
	}
	return ClientInfoConfig{
		Locale:              locale,
		ViewDistance:        viewDistance,
		ChatMode:            ChatMode(chatModeRaw),
		ChatColors:          chatColors,
		DisplayedSkinParts:  skinParts,
		MainHand:            MainHand(mainHandRaw),
		EnableTextFiltering: textFiltering,
		AllowServerListings: serverListings,
	}, nil
}

func decodePluginMessage(cr *countingReader, bodyLen int64) (InPacket, error) {
	start := cr.n
	channel, err := ReadString(cr)
	if err != nil {
		return nil, err
	}
	consumed := cr.n - start
	dataLen := bodyLen - consumed
	if dataLen < 0 {
		return nil, newMalformedFrame(nil, "plugin message body shorter than channel string")
	}
	data := make([]byte, dataLen)
	if dataLen > 0 {
		if _, err := io.ReadFull(cr, data); err != nil {
			return nil, wrapTransport(err)
		}
	}
	return PluginMessage{Channel: channel, Data: data}, nil
}

func decodeFinishConfig(_ *countingReader, _ int64) (InPacket, error) {
	return FinishConfig{}, nil
}

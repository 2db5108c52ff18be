package server

import (
	"errors"
	"io"
	"log"
	"net"
	"time"

	"github.com/meshbound/blockproto/internal/accounts"
	"github.com/meshbound/blockproto/internal/config"
	"github.com/meshbound/blockproto/internal/protocol"
	"github.com/meshbound/blockproto/internal/world"
)

// Handler drives one connection through Handshaking -> Login -> Config ->
// Play, adapted from the teacher's Handler.HandleConnection: same
// per-connection logging texture (bracketed "[Protocol]" lines keyed by
// remote address), generalized from Bishop/JX2 session bookkeeping to the
// block-world login and configuration sequence (spec.md 4.4).
type Handler struct {
	cfg      *config.ServerConfig
	accounts *accounts.Store
	world    *world.Store
}

// NewHandler builds a connection handler holding the account store, used to
// record logins in the Login phase, and the world region store, which the
// handler itself does not read or write.
func NewHandler(cfg *config.ServerConfig, accounts *accounts.Store, world *world.Store) *Handler {
	return &Handler{cfg: cfg, accounts: accounts, world: world}
}

// HandleConnection drives a single accepted connection to completion,
// closing it on any protocol or transport error.
func (h *Handler) HandleConnection(nc net.Conn) {
	addr := nc.RemoteAddr().String()
	log.Printf("[Protocol] New connection from %s", addr)
	defer nc.Close()

	c := protocol.NewConn(nc, nc)

	intent, err := h.handshake(c, addr)
	if err != nil {
		log.Printf("[Protocol] Handshake failed for %s: %v", addr, err)
		return
	}

	switch intent {
	case protocol.IntentLogin:
		if err := h.login(c, addr); err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("[Protocol] Login failed for %s: %v", addr, err)
			}
			return
		}
	case protocol.IntentStatus:
		log.Printf("[Protocol] Status ping from %s: %v", addr, protocol.ErrStatusUnsupported)
		return
	default:
		log.Printf("[Protocol] Unsupported handshake intent %d from %s", intent, addr)
		return
	}

	if err := h.configure(c, addr); err != nil {
		log.Printf("[Protocol] Config phase failed for %s: %v", addr, err)
		return
	}

	h.play(c, addr)
}

func (h *Handler) handshake(c *protocol.Conn, addr string) (protocol.HandshakeIntent, error) {
	pkt, err := c.ReadPacket()
	if err != nil {
		return 0, err
	}
	hs, ok := pkt.(protocol.Handshake)
	if !ok {
		return 0, errors.New("expected Handshake packet")
	}
	log.Printf("[Protocol] Handshake from %s: protocol=%d intent=%d", addr, hs.ProtocolVersion, hs.NextState)
	return hs.NextState, nil
}

func (h *Handler) login(c *protocol.Conn, addr string) error {
	pkt, err := c.ReadPacket()
	if err != nil {
		return err
	}
	ls, ok := pkt.(protocol.LoginStart)
	if !ok {
		return errors.New("expected LoginStart packet")
	}
	log.Printf("[Protocol] LoginStart from %s: name=%q uuid=%s", addr, ls.Name, ls.UUID)

	if h.accounts != nil {
		if err := h.accounts.RecordLogin(ls.Name, ls.UUID.String()); err != nil {
			log.Printf("[Protocol] RecordLogin failed for %s: %v", ls.Name, err)
		}
	}

	success := protocol.LoginSuccess{
		UUID:     ls.UUID,
		Username: ls.Name,
	}
	if err := c.WritePacket(success); err != nil {
		return err
	}

	pkt, err = c.ReadPacket()
	if err != nil {
		return err
	}
	if _, ok := pkt.(protocol.LoginAck); !ok {
		return errors.New("expected LoginAcknowledged packet")
	}
	return nil
}

func (h *Handler) configure(c *protocol.Conn, addr string) error {
	for {
		pkt, err := c.ReadPacket()
		if err != nil {
			return err
		}
		switch p := pkt.(type) {
		case protocol.ClientInfoConfig:
			log.Printf("[Protocol] ClientInfo from %s: locale=%q viewDistance=%d", addr, p.Locale, p.ViewDistance)
		case protocol.PluginMessage:
			log.Printf("[Protocol] Plugin message from %s on channel %q (%d bytes)", addr, p.Channel, len(p.Data))
		case protocol.FinishConfig:
			return c.WritePacket(protocol.FinishConfigOut{})
		default:
			log.Printf("[Protocol] Unexpected config packet from %s: %T", addr, p)
		}
	}
}

func (h *Handler) play(c *protocol.Conn, addr string) {
	login := protocol.LoginPlay{
		EntityID:           1,
		DimensionNames:     []string{"minecraft:overworld"},
		MaxPlayers:         int64(h.cfg.MaxPlayers),
		ViewDistance:       int64(h.cfg.ViewDistance),
		SimulationDistance: int64(h.cfg.SimulationDistance),
		DimensionType:      "minecraft:overworld",
		DimensionName:      "minecraft:overworld",
		GameMode:           0,
		PrevGameMode:       -1,
	}
	if err := c.WritePacket(login); err != nil {
		log.Printf("[Protocol] LoginPlay write failed for %s: %v", addr, err)
		return
	}
	log.Printf("[Protocol] %s entered Play at %s", addr, time.Now().UTC().Format(time.RFC3339))

	for {
		if _, err := c.ReadPacket(); err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("[Protocol] %s disconnected: %v", addr, err)
			}
			return
		}
	}
}

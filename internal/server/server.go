// Package server runs the TCP accept loop and per-connection protocol
// state machine, adapted from the teacher's PaysysServer: the same
// listen/accept/waitgroup/shutdown-channel shape, generalized from a
// single-purpose Bishop listener to the Handshaking/Login/Config/Play
// block-world server (spec.md 4.4).
package server

import (
	"fmt"
	"log"
	"net"
	"sync"

	"github.com/meshbound/blockproto/internal/accounts"
	"github.com/meshbound/blockproto/internal/config"
	"github.com/meshbound/blockproto/internal/world"
)

// Server accepts TCP connections and hands each to a Handler goroutine.
type Server struct {
	host     string
	port     int
	listener net.Listener
	handler  *Handler
	wg       sync.WaitGroup
	shutdown chan struct{}
}

// New builds a Server bound to cfg's listen address, driving each
// connection with a Handler wired to accounts and world.
func New(cfg *config.ServerConfig, accounts *accounts.Store, world *world.Store) *Server {
	return &Server{
		host:     cfg.Host,
		port:     cfg.Port,
		handler:  NewHandler(cfg, accounts, world),
		shutdown: make(chan struct{}),
	}
}

// Start listens on the configured address and serves connections until
// Stop is called.
func (s *Server) Start() error {
	address := fmt.Sprintf("%s:%d", s.host, s.port)

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	s.listener = listener
	log.Printf("[Server] Listening on %s", address)

	for {
		select {
		case <-s.shutdown:
			return nil
		default:
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.shutdown:
					return nil
				default:
					log.Printf("[Server] Error accepting connection: %v", err)
					continue
				}
			}

			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.handler.HandleConnection(conn)
			}()
		}
	}
}

// Stop closes the listener and waits for in-flight connections to finish.
func (s *Server) Stop() {
	log.Println("[Server] Shutting down...")

	close(s.shutdown)

	if s.listener != nil {
		s.listener.Close()
	}

	s.wg.Wait()

	log.Println("[Server] Shutdown complete")
}

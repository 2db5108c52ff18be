// Command blockserver runs the block-world protocol server: it loads
// config.yaml, opens the account database and the region store, then
// serves connections until interrupted. The wiring shape (load config,
// open database, build handler, start server, wait on signal, stop) is the
// teacher's cmd/paysys/main.go, generalized to the new domain.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/meshbound/blockproto/internal/accounts"
	"github.com/meshbound/blockproto/internal/config"
	"github.com/meshbound/blockproto/internal/server"
	"github.com/meshbound/blockproto/internal/world"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var store *accounts.Store
	if cfg.Database.Host != "" {
		store, err = accounts.Open(cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer store.Close()
	}

	codec, err := world.NewCodec(world.CodecName(cfg.World.Codec))
	if err != nil {
		log.Fatalf("Failed to build world codec: %v", err)
	}
	regionStore, err := world.NewStore(cfg.World.RegionDir, codec)
	if err != nil {
		log.Fatalf("Failed to open region store: %v", err)
	}

	srv := server.New(&cfg.Server, store, regionStore)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	fmt.Printf("[Blockserver] Listening on %s:%d\n", cfg.Server.Host, cfg.Server.Port)
	if store != nil {
		fmt.Printf("[Blockserver] Connected to MySQL at %s:%d\n", cfg.Database.Host, cfg.Database.Port)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	fmt.Println("\n[Blockserver] Shutting down server...")
	srv.Stop()
}

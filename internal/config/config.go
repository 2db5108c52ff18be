// Package config loads the server's YAML configuration file. The
// load-then-apply-defaults shape follows the teacher's LoadConfig, but the
// wire format moves from the teacher's hand-rolled INI parser to
// gopkg.in/yaml.v3 — a real dependency already present in the corpus's
// module graph and the idiomatic ecosystem choice for typed server config.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the entire server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	World    WorldConfig    `yaml:"world"`
	Database DatabaseConfig `yaml:"database"`
}

// ServerConfig configures the TCP listener and default Play-phase values
// sent in LoginPlay.
type ServerConfig struct {
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	MaxPlayers         int    `yaml:"max_players"`
	ViewDistance       int    `yaml:"view_distance"`
	SimulationDistance int    `yaml:"simulation_distance"`
}

// WorldConfig configures region-file persistence (internal/world).
type WorldConfig struct {
	RegionDir string `yaml:"region_dir"`
	Codec     string `yaml:"codec"`
}

// DatabaseConfig configures the account store (internal/accounts).
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               25565,
			MaxPlayers:         20,
			ViewDistance:       10,
			SimulationDistance: 10,
		},
		World: WorldConfig{
			RegionDir: "./region",
			Codec:     "zlib",
		},
		Database: DatabaseConfig{
			Host: "127.0.0.1",
			Port: 3306,
		},
	}
}

// Load reads and parses the YAML config at filename, layering it over
// defaults() so a mostly-empty file still produces a runnable config.
func Load(filename string) (*Config, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", filename, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", filename, err)
	}
	return &cfg, nil
}

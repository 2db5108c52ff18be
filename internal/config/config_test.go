package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_AppliesDefaultsOverPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 25577
database:
  host: db.internal
  name: blockworld
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 25577, cfg.Server.Port)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 10, cfg.Server.ViewDistance)

	require.Equal(t, "db.internal", cfg.Database.Host)
	require.Equal(t, "blockworld", cfg.Database.Name)
	require.Equal(t, 3306, cfg.Database.Port)

	require.Equal(t, "zlib", cfg.World.Codec)
	require.Equal(t, "./region", cfg.World.RegionDir)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [this is not a map"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

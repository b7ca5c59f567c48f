package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	want := File{
		Engine: EngineConfig{
			HashMB:     128,
			MoveTimeMS: 1500,
			Depth:      12,
			Contempt:   -40,
		},
		Paths: PathsConfig{
			Book:   "/var/lib/owareplay/book.bin",
			Leaves: "/var/lib/owareplay/leaves",
		},
	}

	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadBrokenFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("engine = {{"), 0o644))

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestPartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[engine]\nhash_mb = 16\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Engine.HashMB)
	assert.Equal(t, Default().Engine.MoveTimeMS, cfg.Engine.MoveTimeMS)
	assert.Equal(t, Default().Engine.Depth, cfg.Engine.Depth)
}

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/itemstore/internal/record"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, Config{Format: "text", IDStrategy: IDStrategyUUID}, cfg)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("ITEMSTORE_FORMAT", "json")
	t.Setenv("ITEMSTORE_ID_STRATEGY", "sequence")
	t.Setenv("ITEMSTORE_VERBOSE", "true")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, IDStrategySequence, cfg.IDStrategy)
	assert.True(t, cfg.Verbose)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "itemstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\nseed: ./items.yaml\nid_strategy: uuidv7\n"), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "./items.yaml", cfg.Seed)
	assert.Equal(t, IDStrategyUUIDv7, cfg.IDStrategy)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_FlagsOverrideEnvAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "itemstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: text\n"), 0o644))
	t.Setenv("ITEMSTORE_FORMAT", "text")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("format", "text", "")
	fs.String("id-strategy", IDStrategyUUID, "")
	require.NoError(t, fs.Parse([]string{"--format", "json", "--id-strategy", "sequence"}))

	v := New()
	require.NoError(t, BindFlags(v, fs))
	cfg, err := Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, IDStrategySequence, cfg.IDStrategy)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("format", func(t *testing.T) {
		t.Setenv("ITEMSTORE_FORMAT", "xml")
		_, err := Load(New(), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid format "xml"`)
	})
	t.Run("id strategy", func(t *testing.T) {
		t.Setenv("ITEMSTORE_ID_STRATEGY", "random")
		_, err := Load(New(), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid id strategy "random"`)
	})
}

func TestConfig_IDGenerator(t *testing.T) {
	assert.IsType(t, record.UUIDGenerator{}, Config{IDStrategy: IDStrategyUUID}.IDGenerator())
	assert.IsType(t, record.UUIDv7Generator{}, Config{IDStrategy: IDStrategyUUIDv7}.IDGenerator())

	seq := Config{IDStrategy: IDStrategySequence}.IDGenerator()
	assert.Equal(t, "item-1", seq.Generate())
	assert.Equal(t, "item-2", seq.Generate())
}

func TestConfig_Logger(t *testing.T) {
	var buf bytes.Buffer
	Config{}.Logger(&buf).Info("hidden")
	assert.Empty(t, buf.String())

	Config{Verbose: true}.Logger(&buf).Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henkkuli/factorio-mod-manager/internal/config"
)

func TestReadFallsBackToDefaults(t *testing.T) {
	cfg, err := config.Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPortalURL, cfg.PortalURL)
	assert.Equal(t, "mod-list.txt", cfg.ModListPath)
}

func TestReadOverridesDefaults(t *testing.T) {
	doc := `
[portal]
url = "https://example.test"
factorio_version = "1.1.100"

[install]
target_dir = "/srv/mods"

[auth]
username = "player"
token = "secret"
`
	cfg, err := config.Read(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "https://example.test", cfg.PortalURL)
	assert.Equal(t, "1.1.100", cfg.FactorioVersion)
	assert.Equal(t, "/srv/mods", cfg.TargetDir)
	assert.Equal(t, "fmm-lock.json", cfg.LockFilePath, "unset fields keep their default")
	assert.Equal(t, "player", cfg.Username)
	assert.Equal(t, "secret", cfg.Token)
}

func TestMarshalTOMLRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Username = "player"

	data, err := cfg.MarshalTOML()
	require.NoError(t, err)

	got, err := config.Read(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg.PortalURL, got.PortalURL)
	assert.Equal(t, cfg.Username, got.Username)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[memgraph]
uri = "bolt://graph:7687"
user = "bore"

[feed]
format = "json"
api_key = "k"
timeout_seconds = 2

[assembler]
sequential = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bolt://graph:7687", cfg.Memgraph.URI)
	assert.Equal(t, "bore", cfg.Memgraph.User)
	assert.Equal(t, "json", cfg.Feed.Format)
	assert.Equal(t, 2*time.Second, cfg.Feed.Timeout())
	assert.True(t, cfg.Assembler.Sequential)

	// untouched sections keep their defaults
	assert.Equal(t, "http://ws.audioscrobbler.com/2.0", cfg.Feed.BaseURL)
	assert.Equal(t, "www.bbc.co.uk/music/artists/", cfg.Resolver.ArtistURIMarker)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[memgraph\nuri="), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MEMGRAPH_URI", "bolt://env:7687")
	t.Setenv("FEED_BASE_URL", "http://feed.test")
	t.Setenv("PORT", "9999")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("METRICS_ENABLED", "1")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "bolt://env:7687", cfg.Memgraph.URI)
	assert.Equal(t, "http://feed.test", cfg.Feed.BaseURL)
	assert.Equal(t, "9999", cfg.Server.Port)
	assert.True(t, cfg.Log.JSON)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Feed.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Feed.Format = "json"
	assert.Error(t, cfg.Validate(), "json feed needs an api key")

	cfg = Default()
	cfg.Memgraph.URI = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Feed.TimeoutSeconds = 0
	assert.Error(t, cfg.Validate())

	for _, n := range []int64{0, -1} {
		cfg = Default()
		cfg.Feed.MaxBodyBytes = n
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_body_bytes")
	}
}

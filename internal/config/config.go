package config

import (
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
)

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// FeedConfig configures the similar-artists feed.
type FeedConfig struct {
	BaseURL           string `toml:"base_url"`
	Format            string `toml:"format"` // "text" or "json"
	APIKey            string `toml:"api_key"`
	UserAgent         string `toml:"user_agent"`
	TimeoutSeconds    int    `toml:"timeout_seconds"`
	MaxBodyBytes      int64  `toml:"max_body_bytes"`
	RequestsPerMinute int    `toml:"requests_per_minute"`
}

func (f FeedConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

type ResolverConfig struct {
	ArtistURIMarker      string `toml:"artist_uri_marker"`
	CrossReferenceMarker string `toml:"cross_reference_marker"`
}

type AssemblerConfig struct {
	Sequential bool `toml:"sequential"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type LogConfig struct {
	JSON  bool   `toml:"json"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

type Config struct {
	Memgraph  MemgraphConfig  `toml:"memgraph"`
	Secondary MemgraphConfig  `toml:"secondary"`
	Feed      FeedConfig      `toml:"feed"`
	Resolver  ResolverConfig  `toml:"resolver"`
	Assembler AssemblerConfig `toml:"assembler"`
	Server    ServerConfig    `toml:"server"`
	Log       LogConfig       `toml:"log"`
	Metrics   MetricsConfig   `toml:"metrics"`
}

// Default returns a configuration that runs against a local Memgraph and the
// public Last.fm text feed.
func Default() *Config {
	return &Config{
		Memgraph: MemgraphConfig{URI: "bolt://localhost:7687"},
		Feed: FeedConfig{
			BaseURL:           "http://ws.audioscrobbler.com/2.0",
			Format:            "text",
			UserAgent:         "bore/1.0",
			TimeoutSeconds:    5,
			MaxBodyBytes:      1 << 20,
			RequestsPerMinute: 60,
		},
		Resolver: ResolverConfig{
			ArtistURIMarker:      "www.bbc.co.uk/music/artists/",
			CrossReferenceMarker: "dbpedia",
		},
		Server: ServerConfig{Port: "8080"},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads a TOML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file '%s'", path)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse TOML")
	}

	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to defaults otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// ApplyEnv overrides file values with environment variables.
func (c *Config) ApplyEnv() {
	setString(&c.Memgraph.URI, "MEMGRAPH_URI")
	setString(&c.Memgraph.User, "MEMGRAPH_USER")
	setString(&c.Memgraph.Password, "MEMGRAPH_PASSWORD")
	setString(&c.Secondary.URI, "SECONDARY_URI")
	setString(&c.Secondary.User, "SECONDARY_USER")
	setString(&c.Secondary.Password, "SECONDARY_PASSWORD")
	setString(&c.Feed.BaseURL, "FEED_BASE_URL")
	setString(&c.Feed.Format, "FEED_FORMAT")
	setString(&c.Feed.APIKey, "FEED_API_KEY")
	setString(&c.Server.Port, "PORT")
	setString(&c.Log.Level, "LOG_LEVEL")

	if v, err := strconv.ParseBool(os.Getenv("LOG_JSON")); err == nil {
		c.Log.JSON = v
	}
	if v, err := strconv.ParseBool(os.Getenv("METRICS_ENABLED")); err == nil {
		c.Metrics.Enabled = v
	}
}

// Validate checks the values the rest of the program relies on.
func (c *Config) Validate() error {
	if c.Memgraph.URI == "" {
		return errors.New("memgraph.uri is required")
	}
	switch c.Feed.Format {
	case "text", "json":
	default:
		return errors.Newf("unsupported feed format: %s", c.Feed.Format)
	}
	if c.Feed.Format == "json" && c.Feed.APIKey == "" {
		return errors.New("feed.api_key is required for the json feed")
	}
	if c.Feed.TimeoutSeconds <= 0 {
		return errors.New("feed.timeout_seconds must be positive")
	}
	if c.Feed.MaxBodyBytes <= 0 {
		return errors.New("feed.max_body_bytes must be positive")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

package config

import "time"

// Config holds runtime settings for the careercoach client.
//
// Fields:
//   - BaseURL: root of the backend HTTP API, e.g. "http://localhost:8000".
//   - RealtimePath: path of the agent status WebSocket, relative to BaseURL.
//   - ReconnectDelay: fixed wait before the realtime channel redials.
//   - StoragePath: SQLite file holding the bearer token.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	BaseURL        string
	RealtimePath   string
	ReconnectDelay time.Duration
	StoragePath    string
	LogLevel       string
}

const (
	DefaultBaseURL        = "http://localhost:8000"
	DefaultRealtimePath   = "/api/v1/agent/ws"
	DefaultReconnectDelay = 5 * time.Second
	DefaultStoragePath    = "careercoach.db"
	DefaultLogLevel       = "info"
)

// LoadDefaults populates c with local development defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = DefaultBaseURL
	c.RealtimePath = DefaultRealtimePath
	c.ReconnectDelay = DefaultReconnectDelay
	c.StoragePath = DefaultStoragePath
	c.LogLevel = DefaultLogLevel
}

// LoadConfig constructs a Config from defaults, then the environment (with an
// optional .env file), then a JSON file, then command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

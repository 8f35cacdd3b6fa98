package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/careercoach/internal/flagx"
	"github.com/dmitrijs2005/careercoach/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Empty fields leave
// the current value untouched.
type JsonConfig struct {
	BaseURL        string          `json:"base_url"`
	RealtimePath   string          `json:"realtime_path"`
	ReconnectDelay *timex.Duration `json:"reconnect_delay"`
	StoragePath    string          `json:"storage_path"`
	LogLevel       string          `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config. Without the flag
// nothing happens. Read or decode errors panic; a broken config file is a
// startup error.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RealtimePath != "" {
		cfg.RealtimePath = jc.RealtimePath
	}
	if jc.ReconnectDelay != nil {
		cfg.ReconnectDelay = jc.ReconnectDelay.Duration
	}
	if jc.StoragePath != "" {
		cfg.StoragePath = jc.StoragePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}

// Package config loads runtime configuration for the careercoach client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment, after loading .env (or the file given with -e/-env).
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// # Environment
//
//	CAREERCOACH_API_URL          backend base URL (default http://localhost:8000)
//	CAREERCOACH_WS_PATH          realtime path (default /api/v1/agent/ws)
//	CAREERCOACH_RECONNECT_DELAY  "5s" or seconds
//	CAREERCOACH_DB               local storage file
//	CAREERCOACH_LOG_LEVEL        debug | info | warn | error
//
// # JSON schema
//
//	{
//	  "base_url": "https://api.example.com",
//	  "realtime_path": "/api/v1/agent/ws",
//	  "reconnect_delay": "5s",
//	  "storage_path": "careercoach.db",
//	  "log_level": "info"
//	}
package config

package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "https://api.example.com", "-r", "10", "-d", "x.db", "-l", "debug"},
			expected: &Config{
				BaseURL:        "https://api.example.com",
				ReconnectDelay: 10 * time.Second,
				StoragePath:    "x.db",
				LogLevel:       "debug",
			},
		},
		{
			name:        "non-numeric reconnect delay",
			args:        []string{"cmd", "-r", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/careercoach/internal/flagx"
)

// parseFlags populates Config fields from command-line flags:
//
//	-a string   backend base URL
//	-r int      realtime reconnect delay (seconds)
//	-d string   local storage file
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs so -c/-e and unknown flags do not
// make parsing fail.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-r", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend base URL")
	reconnect := fs.Int("r", int(cfg.ReconnectDelay.Seconds()), "realtime reconnect delay (in seconds)")
	fs.StringVar(&cfg.StoragePath, "d", cfg.StoragePath, "local storage file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ReconnectDelay = time.Duration(*reconnect) * time.Second
}

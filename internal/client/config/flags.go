package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gophdiner/internal/flagx"
)

var knownFlags = []string{"-a", "-o", "-d", "-t", "-i", "-f", "-l"}

// parseFlags populates Config fields from command-line flags.
//
//	-a string   base URL of the storefront API
//	-o string   order id the cart is kept under
//	-d string   path of the local SQLite store
//	-t int      request timeout (in seconds)
//	-i int      online check interval (in seconds)
//	-f string   log format: text or json
//	-l string   log level: debug, info, warn, error
//
// args are filtered with flagx.FilterArgs first so flags owned by other
// stages (-c) are not rejected. Parse errors panic.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the storefront API")
	fs.StringVar(&cfg.OrderID, "o", cfg.OrderID, "order id for the cart")
	fs.StringVar(&cfg.StoragePath, "d", cfg.StoragePath, "path to the local database")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format: text or json")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}

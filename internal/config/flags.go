package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/supacrm/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   PostgreSQL DSN
//	-g string   geocoder base URL
//	-t int      geocoder timeout (in seconds)
//	-i int      online check interval (in seconds)
//	-l string   log level
//	-b string   log backend (slog or zap)
//	-m bool     run schema migrations on startup
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-g", "-t", "-i", "-l", "-b", "-m"}, "-m")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.GeocoderURL, "g", cfg.GeocoderURL, "geocoder base URL")
	geocoderTimeout := fs.Int("t", int(cfg.GeocoderTimeout.Seconds()), "geocoder timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogBackend, "b", cfg.LogBackend, "log backend (slog or zap)")
	fs.BoolVar(&cfg.RunMigrations, "m", cfg.RunMigrations, "run schema migrations on startup")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Durations from the config file may carry sub-second parts; only
	// overwrite them when the flag was given.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.GeocoderTimeout = time.Duration(*geocoderTimeout) * time.Second
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})
}

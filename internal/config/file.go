package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/supacrm/internal/flagx"
	"github.com/dmitrijs2005/supacrm/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. Pointer fields tell
// "absent" apart from zero values so a partial file only overrides what it
// names.
type FileConfig struct {
	DatabaseDSN         *string         `json:"database_dsn" yaml:"database_dsn"`
	GeocoderURL         *string         `json:"geocoder_url" yaml:"geocoder_url"`
	GeocoderTimeout     *timex.Duration `json:"geocoder_timeout" yaml:"geocoder_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	LogLevel            *string         `json:"log_level" yaml:"log_level"`
	LogBackend          *string         `json:"log_backend" yaml:"log_backend"`
	RunMigrations       *bool           `json:"run_migrations" yaml:"run_migrations"`
}

// parseFile overlays cfg with the file given by -c/-config. Files ending in
// .yaml or .yml are decoded as YAML, everything else as JSON. It panics on
// read or decode errors, like the flag parser.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *fc.DatabaseDSN
	}
	if fc.GeocoderURL != nil {
		cfg.GeocoderURL = *fc.GeocoderURL
	}
	if fc.GeocoderTimeout != nil {
		cfg.GeocoderTimeout = fc.GeocoderTimeout.Duration
	}
	if fc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogBackend != nil {
		cfg.LogBackend = *fc.LogBackend
	}
	if fc.RunMigrations != nil {
		cfg.RunMigrations = *fc.RunMigrations
	}
}

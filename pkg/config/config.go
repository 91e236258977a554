// Package config loads oscalcat configuration from an optional YAML file and
// OSCALCAT_* environment variables, with sensible defaults for everything.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/castlegate/oscalcat/pkg/logging"
)

// Config holds the settings shared by the CLI and the HTTP server.
type Config struct {
	// Catalog is the path of the catalog JSON file to operate on.
	Catalog string `mapstructure:"catalog"`

	// Listen is the address the serve command binds to.
	Listen string `mapstructure:"listen"`

	Log logging.Options `mapstructure:"log"`
}

// Load reads configuration. With an empty path it looks for oscalcat.yaml in
// the working directory; a missing file is not an error, the defaults and
// environment apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Every key needs a default registered so environment overrides are
	// visible to Unmarshal.
	v.SetDefault("catalog", "")
	v.SetDefault("listen", ":8472")
	defaults := logging.DefaultOptions()
	v.SetDefault("log.level", defaults.Level)
	v.SetDefault("log.format", defaults.Format)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", defaults.MaxSizeMB)
	v.SetDefault("log.max_backups", defaults.MaxBackups)
	v.SetDefault("log.max_age_days", defaults.MaxAgeDays)

	v.SetEnvPrefix("OSCALCAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("oscalcat")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Package config loads scanner settings from defaults, PORTSCANNER_* env
// vars and an optional YAML file, in increasing precedence order. CLI flags
// override everything and are applied by the caller.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable the CLI exposes.
type Config struct {
	Concurrency int           `mapstructure:"concurrency"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Deadline    time.Duration `mapstructure:"deadline"`
	RateLimit   float64       `mapstructure:"rate_limit"`
	Retries     int           `mapstructure:"retries"`

	// Comma-separated CIDR lists gating which targets may be scanned.
	AllowedNetworks string `mapstructure:"allowed_networks"`
	BlockedNetworks string `mapstructure:"blocked_networks"`
}

// Load reads configuration. path may be empty, in which case only defaults
// and environment variables apply. Env vars use the PORTSCANNER_ prefix,
// e.g. PORTSCANNER_ALLOWED_NETWORKS.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("concurrency", 100)
	v.SetDefault("timeout", "500ms")
	v.SetDefault("deadline", "0")
	v.SetDefault("rate_limit", 0.0)
	v.SetDefault("retries", 0)
	v.SetDefault("allowed_networks", "")
	v.SetDefault("blocked_networks", "")

	v.SetEnvPrefix("PORTSCANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Concurrency <= 0 {
		return nil, fmt.Errorf("concurrency must be positive, got %d", cfg.Concurrency)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	return &cfg, nil
}

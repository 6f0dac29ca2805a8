package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/seregonwar/rtnet-stack/internal/link"
)

// Load reads a YAML config file, applies defaults and environment
// overrides (RTNET_ prefix, dots become underscores) and validates the
// result. An empty path loads defaults only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("RTNET")
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
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	lnk := link.DefaultConfig()
	v.SetDefault("link.snap_len", lnk.SnapLen)
	v.SetDefault("link.buffer_size_mb", lnk.BufferSizeMB)
	v.SetDefault("link.timeout_ms", lnk.TimeoutMs)

	v.SetDefault("maintenance.interval_ms", 100)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.listen", "0.0.0.0:9090")
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("log.level", "info")
}

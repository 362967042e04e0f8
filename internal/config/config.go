package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. DUVIEW_MAX_DEPTH
const EnvPrefix = "DUVIEW"

// Config stores all configuration of the application.
// The values are read by viper from a config file, environment variables or flags.
type Config struct {
	MaxDepth      int    `mapstructure:"max_depth"`
	ConfirmDelete bool   `mapstructure:"confirm_delete"`
	Color         bool   `mapstructure:"color"`
	Debug         bool   `mapstructure:"debug"`
	LogFile       string `mapstructure:"log_file"`
}

// Dir returns the directory searched for config.yaml
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "duview")
}

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("max_depth", 0)
	v.SetDefault("confirm_delete", true)
	v.SetDefault("color", true)
	v.SetDefault("debug", false)
	v.SetDefault("log_file", "debug.log")
}

// Load reads configuration into v and decodes it. An explicit configPath
// must exist; the default location is optional.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(Dir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("max_depth must not be negative, got %d", cfg.MaxDepth)
	}
	return &cfg, nil
}

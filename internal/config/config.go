package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	StorePath string `mapstructure:"STORE_PATH"`
	BackupDir string `mapstructure:"BACKUP_DIR"`
	ExportDir string `mapstructure:"EXPORT_DIR"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogPretty bool   `mapstructure:"LOG_PRETTY"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.SetEnvPrefix("HBILL")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("STORE_PATH", "hospital.db")
	v.SetDefault("BACKUP_DIR", "backups")
	v.SetDefault("EXPORT_DIR", ".")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("STORE_PATH")
	v.BindEnv("BACKUP_DIR")
	v.BindEnv("EXPORT_DIR")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("LOG_PRETTY")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks that the configuration is safe to run with.
func (c *Config) Validate() error {
	if c.StorePath == "" {
		return fmt.Errorf("STORE_PATH must not be empty")
	}
	if c.BackupDir == "" {
		return fmt.Errorf("BACKUP_DIR must not be empty")
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error; got %q", c.LogLevel)
	}
	return nil
}

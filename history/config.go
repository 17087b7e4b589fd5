package history

import (
	"fmt"
	"time"
)

// Config is the history section of the genrun config file.
type Config struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// DSN is a SQLite file path or URI.
	DSN string `yaml:"dsn" mapstructure:"dsn"`
	// Keep bounds the stored runs per recipe. 0 keeps everything.
	Keep int `yaml:"keep" mapstructure:"keep"`
	// LogLevel is the GORM log level: silent, error, warn or info.
	LogLevel           string        `yaml:"log_level" mapstructure:"log_level"`
	SlowQueryThreshold time.Duration `yaml:"slow_query_threshold" mapstructure:"slow_query_threshold"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.DSN == "" {
		c.DSN = "genrun-history.db"
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.SlowQueryThreshold == 0 {
		c.SlowQueryThreshold = 200 * time.Millisecond
	}
}

// Validate checks the section only when history is enabled.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.DSN == "" {
		return fmt.Errorf("history.dsn is required")
	}
	if c.Keep < 0 {
		return fmt.Errorf("history.keep must not be negative (got: %d)", c.Keep)
	}
	switch c.LogLevel {
	case "silent", "error", "warn", "info":
	default:
		return fmt.Errorf("history.log_level must be one of silent, error, warn, info (got: %s)", c.LogLevel)
	}
	return nil
}

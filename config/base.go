package config

import (
	"fmt"
	"slices"

	"github.com/kbukum/xgen/logger"
)

// Environments accepted by BaseConfig.
var Environments = []string{"development", "staging", "production"}

// BaseConfig contains essential fields that every application needs.
type BaseConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Version     string `yaml:"version" mapstructure:"version"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
}

// ApplyDefaults applies default values to base configuration.
func (c *BaseConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
}

// Validate validates base configuration.
func (c *BaseConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("base.name is required")
	}
	if !slices.Contains(Environments, c.Environment) {
		return fmt.Errorf("base.environment must be one of %v (got: %s)", Environments, c.Environment)
	}
	return nil
}

// AppConfig is BaseConfig plus logging. Applications embed it:
//
//	type RunConfig struct {
//	    config.AppConfig `yaml:",inline" mapstructure:",squash"`
//	    Recipe recipe.Recipe `yaml:"recipe" mapstructure:"recipe"`
//	}
type AppConfig struct {
	BaseConfig `yaml:",inline" mapstructure:",squash"`
	Logging    logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults applies defaults to the base and logging sections. A debug
// application logs at debug unless a level was configured.
func (c *AppConfig) ApplyDefaults() {
	c.BaseConfig.ApplyDefaults()
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the base and logging sections.
func (c *AppConfig) Validate() error {
	if err := c.BaseConfig.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

// GetAppConfig returns the embedded AppConfig. The method is promoted to
// structs that embed AppConfig, so they satisfy bootstrap.Config.
func (c *AppConfig) GetAppConfig() *AppConfig {
	return c
}

package main

import (
	"fmt"

	"github.com/kbukum/xgen/config"
	"github.com/kbukum/xgen/history"
	"github.com/kbukum/xgen/observability"
	"github.com/kbukum/xgen/recipe"
)

// RunConfig is the genrun configuration file.
type RunConfig struct {
	config.AppConfig `yaml:",inline" mapstructure:",squash"`
	Telemetry        observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
	History          history.Config       `yaml:"history" mapstructure:"history"`
	Recipe           recipe.Recipe        `yaml:"recipe" mapstructure:"recipe"`
}

// ApplyDefaults applies defaults to every section.
func (c *RunConfig) ApplyDefaults() {
	c.AppConfig.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
	c.History.ApplyDefaults()
	c.Recipe.ApplyDefaults()
}

// Validate validates every section.
func (c *RunConfig) Validate() error {
	if err := c.AppConfig.Validate(); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	if err := c.History.Validate(); err != nil {
		return err
	}
	if err := c.Recipe.Validate(); err != nil {
		return fmt.Errorf("recipe: %w", err)
	}
	return nil
}

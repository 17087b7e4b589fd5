package bootstrap

import (
	"github.com/kbukum/xgen/config"
)

// Config is the constraint for application configuration types. Any struct
// embedding config.AppConfig satisfies it through promoted methods:
//
//	type RunConfig struct {
//	    config.AppConfig `yaml:",inline" mapstructure:",squash"`
//	    Recipe recipe.Recipe `yaml:"recipe" mapstructure:"recipe"`
//	}
type Config interface {
	GetAppConfig() *config.AppConfig
	ApplyDefaults()
	Validate() error
}

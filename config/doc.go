// Package config loads application configuration for programs built on
// the sequence engine.
//
// Viper reads a YAML file, a .env file is applied through godotenv, and
// environment variables override file values. Variables are matched to
// nested keys by trying the dotted forms of their name, so
// GENRUN_LOGGING_LEVEL reaches logging.level when the prefix is GENRUN.
//
// # Usage
//
//	cfg, err := config.Load[MyConfig]("genrun", config.WithEnvPrefix("GENRUN"))
//
// Load applies defaults and validates when the target type provides
// ApplyDefaults and Validate methods.
package config

package logger

import (
	"fmt"
	"slices"
	"time"
)

// Output targets.
const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"
	OutputFile   = "file"
	OutputBoth   = "both" // console and file
)

// File rolling policies.
const (
	RollingNone = "none"
	RollingSize = "size"
)

// Config contains logging configuration.
type Config struct {
	Level     string `yaml:"level" mapstructure:"level"`
	Format    string `yaml:"format" mapstructure:"format"`
	Output    string `yaml:"output" mapstructure:"output"`
	File      string `yaml:"file" mapstructure:"file"`
	// Rolling selects how the file sink rolls over. With RollingSize the
	// file is rotated once it reaches MaxSizeMB and at most MaxFiles rotated
	// files are kept (0 keeps all).
	Rolling   string `yaml:"rolling" mapstructure:"rolling"`
	MaxSizeMB int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files" mapstructure:"max_files"`
	NoColor   bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller    bool   `yaml:"caller" mapstructure:"caller"`
	// Async delivers events through a ring buffer drained by a background
	// poller. Events are dropped, not blocked on, when the buffer is full.
	Async        bool          `yaml:"async" mapstructure:"async"`
	BufferSize   int           `yaml:"buffer_size" mapstructure:"buffer_size"`
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
	Modules      []ModuleConfig `yaml:"modules" mapstructure:"modules"`
}

// ModuleConfig seeds a module logger.
type ModuleConfig struct {
	Name     string `yaml:"name" mapstructure:"name"`
	Level    string `yaml:"level" mapstructure:"level"`
	Disabled bool   `yaml:"disabled" mapstructure:"disabled"`
}

// ApplyDefaults applies default values to logging configuration.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = OutputStdout
	}
	if (c.Output == OutputFile || c.Output == OutputBoth) && c.File == "" {
		c.File = "logs/app.log"
	}
	if c.Rolling == "" {
		c.Rolling = RollingSize
	}
	if c.MaxSizeMB == 0 {
		c.MaxSizeMB = 100
	}
	if c.MaxFiles == 0 {
		c.MaxFiles = 10
	}
	if c.BufferSize == 0 {
		c.BufferSize = 8192
	}
	if c.PollInterval == 0 {
		c.PollInterval = 10 * time.Millisecond
	}
	for i := range c.Modules {
		if c.Modules[i].Level == "" {
			c.Modules[i].Level = c.Level
		}
	}
	c.Timestamp = true
}

// Validate validates logging configuration.
func (c *Config) Validate() error {
	validLevels := []string{"trace", "debug", "info", "warn", "error", "fatal", "disabled"}
	if !slices.Contains(validLevels, c.Level) {
		return fmt.Errorf("logging.level must be one of %v (got: %s)", validLevels, c.Level)
	}
	validFormats := []string{"json", "console", "pretty"}
	if !slices.Contains(validFormats, c.Format) {
		return fmt.Errorf("logging.format must be one of %v (got: %s)", validFormats, c.Format)
	}
	validOutputs := []string{OutputStdout, OutputStderr, OutputFile, OutputBoth}
	if !slices.Contains(validOutputs, c.Output) {
		return fmt.Errorf("logging.output must be one of %v (got: %s)", validOutputs, c.Output)
	}
	if (c.Output == OutputFile || c.Output == OutputBoth) && c.File == "" {
		return fmt.Errorf("logging.file is required for output %s", c.Output)
	}
	if c.Rolling != "" && !slices.Contains([]string{RollingNone, RollingSize}, c.Rolling) {
		return fmt.Errorf("logging.rolling must be %s or %s (got: %s)", RollingNone, RollingSize, c.Rolling)
	}
	if c.Rolling == RollingSize && c.MaxSizeMB < 0 {
		return fmt.Errorf("logging.max_size_mb must not be negative (got: %d)", c.MaxSizeMB)
	}
	if c.MaxFiles < 0 {
		return fmt.Errorf("logging.max_files must not be negative (got: %d)", c.MaxFiles)
	}
	if c.Async && c.BufferSize < 0 {
		return fmt.Errorf("logging.buffer_size must not be negative (got: %d)", c.BufferSize)
	}
	for _, m := range c.Modules {
		if m.Name == "" {
			return fmt.Errorf("logging.modules: name is required")
		}
		if m.Level != "" && !slices.Contains(validLevels, m.Level) {
			return fmt.Errorf("logging.modules[%s].level must be one of %v (got: %s)", m.Name, validLevels, m.Level)
		}
	}
	return nil
}

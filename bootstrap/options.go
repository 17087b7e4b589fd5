package bootstrap

import (
	"time"

	"github.com/kbukum/xgen/logger"
)

const defaultGracefulTimeout = 15 * time.Second

// Option adjusts an App before it is returned by NewApp.
type Option func(*settings)

type settings struct {
	logger          *logger.Logger
	gracefulTimeout time.Duration
}

func newSettings(opts []Option) settings {
	s := settings{gracefulTimeout: defaultGracefulTimeout}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLogger makes the app log to l instead of initializing the global
// logger from the config's logging section. The app never closes l.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithGracefulTimeout bounds the time all stop hooks may take together.
// Non-positive values keep the default.
func WithGracefulTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.gracefulTimeout = d
		}
	}
}

package logger

import (
	"context"
	"os"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// FormatPretty is an alias of the console format.
const FormatPretty = "pretty"

// Logger is a zerolog logger bound to a service name and its sink.
type Logger struct {
	logger  zerolog.Logger
	service string
	closer  *closer
}

// closer releases a sink once, however many loggers share it.
type closer struct {
	once sync.Once
	fn   func() error
	err  error
}

func (c *closer) close() error {
	if c == nil || c.fn == nil {
		return nil
	}
	c.once.Do(func() { c.err = c.fn() })
	return c.err
}

// Open builds a logger for cfg. Unlike New it reports sink errors such as
// an unwritable log file. An empty or unknown level means info.
func Open(cfg *Config, service string) (*Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	w, release, err := openWriter(cfg, service)
	if err != nil {
		return nil, err
	}

	zc := zerolog.New(w).Level(level).With()
	if cfg.Timestamp {
		zc = zc.Timestamp()
	}
	if cfg.Caller {
		zc = zc.Caller()
	}
	return &Logger{logger: zc.Logger(), service: service, closer: &closer{fn: release}}, nil
}

// New builds a logger for cfg, falling back to a synchronous stdout sink
// when the configured one cannot be opened.
func New(cfg *Config, service string) *Logger {
	l, err := Open(cfg, service)
	if err == nil {
		return l
	}
	fallback := *cfg
	fallback.Output = OutputStdout
	fallback.Async = false
	l, _ = Open(&fallback, service)
	l.Warn("log sink unavailable, using stdout", ErrorFields("open_sink", err))
	return l
}

// NewDefault builds an info-level console logger on stdout.
func NewDefault(service string) *Logger {
	return New(&Config{Level: "info", Format: "console", Output: OutputStdout, Timestamp: true}, service)
}

// NewFromEnv builds a logger from LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT,
// LOG_FILE, LOG_NO_COLOR, LOG_TIMESTAMP and LOG_ASYNC.
func NewFromEnv(service string) *Logger {
	cfg := &Config{
		Level:     envString("LOG_LEVEL", "info"),
		Format:    envString("LOG_FORMAT", "console"),
		Output:    envString("LOG_OUTPUT", OutputStdout),
		File:      envString("LOG_FILE", ""),
		NoColor:   envBool("LOG_NO_COLOR", false),
		Timestamp: envBool("LOG_TIMESTAMP", true),
		Async:     envBool("LOG_ASYNC", false),
	}
	cfg.ApplyDefaults()
	return New(cfg, service)
}

// NewWithZerolog wraps zl, typically one writing to a test buffer.
func NewWithZerolog(zl zerolog.Logger, service string) *Logger {
	return &Logger{logger: zl, service: service}
}

type runIDKey struct{}

// ContextWithRunID stores a run id for WithContext.
func ContextWithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// WithContext adds the active span's trace and span ids and the run id
// stored with ContextWithRunID, when present.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	zc := l.logger.With()
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		zc = zc.Str(FieldTraceID, sc.TraceID().String()).Str(FieldSpanID, sc.SpanID().String())
	}
	if runID, ok := ctx.Value(runIDKey{}).(string); ok {
		zc = zc.Str(FieldRunID, runID)
	}
	return l.derive(zc.Logger())
}

// WithComponent tags entries with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return l.derive(l.logger.With().Str(FieldComponent, name).Logger())
}

// WithFields attaches fields to every entry.
func (l *Logger) WithFields(fields F) *Logger {
	return l.derive(l.logger.With().Fields(fields).Logger())
}

// WithError attaches err to every entry.
func (l *Logger) WithError(err error) *Logger {
	return l.derive(l.logger.With().Err(err).Logger())
}

// WithLevel drops entries below level.
func (l *Logger) WithLevel(level zerolog.Level) *Logger {
	return l.derive(l.logger.Level(level))
}

func (l *Logger) derive(zl zerolog.Logger) *Logger {
	return &Logger{logger: zl, service: l.service, closer: l.closer}
}

// GetLogger returns the underlying zerolog.Logger.
func (l *Logger) GetLogger() zerolog.Logger { return l.logger }

// Close flushes pending async entries and releases the sink. Loggers derived
// from the same root share the sink, so closing one closes all of them.
func (l *Logger) Close() error { return l.closer.close() }

func (l *Logger) Trace(msg string, fields ...F) { emit(l.logger.Trace(), msg, fields) }
func (l *Logger) Debug(msg string, fields ...F) { emit(l.logger.Debug(), msg, fields) }
func (l *Logger) Info(msg string, fields ...F)  { emit(l.logger.Info(), msg, fields) }
func (l *Logger) Warn(msg string, fields ...F)  { emit(l.logger.Warn(), msg, fields) }
func (l *Logger) Error(msg string, fields ...F) { emit(l.logger.Error(), msg, fields) }

// Fatal logs msg and exits the process.
func (l *Logger) Fatal(msg string, fields ...F) { emit(l.logger.Fatal(), msg, fields) }

func emit(event *zerolog.Event, msg string, fields []F) {
	if event == nil {
		return
	}
	for _, f := range fields {
		event.Fields(f)
	}
	event.Msg(msg)
}

var global atomic.Pointer[Logger]

// Init replaces the global logger with one built from cfg, closing the
// previous one, and registers the configured modules.
func Init(cfg *Config) {
	cfg.ApplyDefaults()
	l := New(cfg, "default")
	if prev := global.Swap(l); prev != nil {
		_ = prev.Close()
	}
	log.Logger = l.logger

	for _, m := range cfg.Modules {
		_ = RegisterModule(m.Name, m.Level, !m.Disabled)
	}
}

// SetGlobalLogger replaces the global logger without closing the old one.
func SetGlobalLogger(l *Logger) { global.Store(l) }

// GetGlobalLogger returns the global logger, creating a default one first
// if none was set.
func GetGlobalLogger() *Logger {
	if l := global.Load(); l != nil {
		return l
	}
	global.CompareAndSwap(nil, NewDefault("default"))
	return global.Load()
}

// GetLoggerZ returns the global zerolog.Logger.
func GetLoggerZ() zerolog.Logger { return GetGlobalLogger().GetLogger() }

func Debug(msg string, fields ...F) { GetGlobalLogger().Debug(msg, fields...) }
func Info(msg string, fields ...F)  { GetGlobalLogger().Info(msg, fields...) }
func Warn(msg string, fields ...F)  { GetGlobalLogger().Warn(msg, fields...) }
func Error(msg string, fields ...F) { GetGlobalLogger().Error(msg, fields...) }
func Fatal(msg string, fields ...F) { GetGlobalLogger().Fatal(msg, fields...) }

// WithContext is GetGlobalLogger().WithContext(ctx).
func WithContext(ctx context.Context) *Logger { return GetGlobalLogger().WithContext(ctx) }

// WithComponent is GetGlobalLogger().WithComponent(name).
func WithComponent(name string) *Logger { return GetGlobalLogger().WithComponent(name) }

// Shutdown flushes and closes the global logger's sink.
func Shutdown() error {
	if l := global.Load(); l != nil {
		return l.Close()
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

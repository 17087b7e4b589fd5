package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"gopkg.in/natefinch/lumberjack.v2"
)

// writerOnly hides Close so shutting down a sink never closes stdout or stderr.
type writerOnly struct{ io.Writer }

// openWriter assembles the sink described by cfg and returns it with a
// function that flushes and releases it.
func openWriter(cfg *Config, serviceName string) (io.Writer, func() error, error) {
	var (
		writers []io.Writer
		file    io.WriteCloser
	)

	output := strings.ToLower(cfg.Output)
	if output == OutputFile || output == OutputBoth {
		f, err := openFile(cfg)
		if err != nil {
			return nil, nil, err
		}
		file = f
		writers = append(writers, f)
	}
	if output != OutputFile {
		console := outputWriter(output)
		if isConsoleFormat(cfg.Format) {
			writers = append(writers, consoleWriter(cfg, console, serviceName))
		} else {
			writers = append(writers, writerOnly{console})
		}
	}

	var w io.Writer
	if len(writers) == 1 {
		w = writers[0]
	} else {
		w = zerolog.MultiLevelWriter(writers...)
	}

	closeFile := func() error {
		if file == nil {
			return nil
		}
		return file.Close()
	}

	if !cfg.Async {
		return w, closeFile, nil
	}

	dw := diode.NewWriter(writerOnly{w}, cfg.BufferSize, cfg.PollInterval, func(missed int) {
		fmt.Fprintf(os.Stderr, "[logger] dropped %d messages\n", missed)
	})
	return dw, func() error {
		if err := dw.Close(); err != nil {
			return err
		}
		return closeFile()
	}, nil
}

// openFile opens the file sink. Size rolling is delegated to lumberjack,
// which opens the file on first write.
func openFile(cfg *Config) (io.WriteCloser, error) {
	path := cfg.File
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory %s: %w", dir, err)
		}
	}
	if cfg.Rolling == RollingSize {
		return &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxFiles,
			LocalTime:  true,
		}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return f, nil
}

func outputWriter(output string) *os.File {
	switch strings.ToLower(output) {
	case OutputStderr:
		return os.Stderr
	default:
		return os.Stdout
	}
}

func isConsoleFormat(format string) bool {
	f := strings.ToLower(format)
	return f == "console" || f == FormatPretty
}

func consoleWriter(cfg *Config, out io.Writer, serviceName string) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        writerOnly{out},
		TimeFormat: "15:04:05",
		NoColor:    cfg.NoColor,
		FormatLevel: func(i interface{}) string {
			lvl := strings.ToUpper(fmt.Sprintf("%s", i))
			tag, color := levelTag(lvl)
			if !cfg.NoColor && color != "" {
				tag = color + tag + "\033[0m"
			}
			if serviceName != "" && serviceName != "default" && len(serviceName) >= 3 {
				svc := "[" + strings.ToUpper(serviceName[:3]) + "]"
				if !cfg.NoColor {
					svc = "\033[34m" + svc + "\033[0m"
				}
				return svc + tag
			}
			return tag
		},
		FormatMessage: func(i interface{}) string {
			if i == nil {
				return ""
			}
			return fmt.Sprintf("%s", i)
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s:", i)
		},
		FormatFieldValue: func(i interface{}) string {
			if i == nil {
				return ""
			}
			return fmt.Sprintf("%s", i)
		},
	}
}

func levelTag(lvl string) (tag, color string) {
	switch lvl {
	case "TRACE":
		return "[TRC]", "\033[90m"
	case "DEBUG":
		return "[DBG]", "\033[36m"
	case "INFO":
		return "[INF]", "\033[32m"
	case "WARN":
		return "[WRN]", "\033[33m"
	case "ERROR":
		return "[ERR]", "\033[31m"
	case "FATAL":
		return "[FTL]", "\033[35m"
	default:
		return fmt.Sprintf("[%s]", lvl), ""
	}
}

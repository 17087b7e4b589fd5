package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/xgen/errors"
)

func bufferLogger(buf *bytes.Buffer, service string) *Logger {
	return NewWithZerolog(zerolog.New(buf), service)
}

func decodeLines(t *testing.T, data string) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(data), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid json line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{Level: "invalid-level", Format: "json", Output: OutputStdout}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
	if got := l.logger.GetLevel(); got != zerolog.InfoLevel {
		t.Errorf("expected fallback to info, got %s", got)
	}
}

func TestLevelIsPerLogger(t *testing.T) {
	before := zerolog.GlobalLevel()
	_ = New(&Config{Level: "error", Format: "json", Output: OutputStdout}, "a")
	if zerolog.GlobalLevel() != before {
		t.Error("creating a logger must not change the zerolog global level")
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	l := NewFromEnv("env-svc")
	if got := l.logger.GetLevel(); got != zerolog.DebugLevel {
		t.Errorf("expected debug level from env, got %s", got)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := bufferLogger(&buf, "test")
	cl := l.WithComponent("filter")
	if cl.service != "test" {
		t.Errorf("service should be preserved, got %q", cl.service)
	}
	cl.Info("hello")

	lines := decodeLines(t, buf.String())
	if lines[0][FieldComponent] != "filter" {
		t.Errorf("expected component field, got %v", lines[0])
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := bufferLogger(&buf, "test")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x0a, 0xbc, 0x12, 0x30},
		SpanID:     trace.SpanID{0x01},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	ctx = ContextWithRunID(ctx, "run-1")
	l.WithContext(ctx).Info("traced")

	line := decodeLines(t, buf.String())[0]
	if line[FieldTraceID] != sc.TraceID().String() || line[FieldSpanID] != sc.SpanID().String() {
		t.Errorf("expected trace and span id, got %v", line)
	}
	if line[FieldRunID] != "run-1" {
		t.Errorf("expected run id, got %v", line[FieldRunID])
	}
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	l := bufferLogger(&buf, "test")
	l.WithFields(map[string]interface{}{"key": "value"}).
		WithError(fmt.Errorf("boom")).
		Warn("careful", Fields(FieldStage, "map"))

	line := decodeLines(t, buf.String())[0]
	if line["key"] != "value" || line[FieldError] != "boom" || line[FieldStage] != "map" {
		t.Errorf("unexpected fields: %v", line)
	}
	if line["level"] != "warn" {
		t.Errorf("expected warn level, got %v", line["level"])
	}
}

func TestWithLevel(t *testing.T) {
	var buf bytes.Buffer
	l := bufferLogger(&buf, "test").WithLevel(zerolog.WarnLevel)
	l.Info("dropped")
	l.Error("kept")

	lines := decodeLines(t, buf.String())
	if len(lines) != 1 || lines[0]["message"] != "kept" {
		t.Errorf("expected only the error line, got %v", lines)
	}
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gen.log")
	l, err := Open(&Config{Level: "debug", Format: "json", Output: OutputFile, File: path}, "file")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	l.Debug("to file", Fields(FieldElements, 3))
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	line := decodeLines(t, string(data))[0]
	if line["message"] != "to file" || line[FieldElements] != float64(3) {
		t.Errorf("unexpected file contents: %v", line)
	}
}

func TestAsyncFileSinkFlushesOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "async.log")
	cfg := &Config{Level: "info", Format: "json", Output: OutputFile, File: path, Async: true}
	cfg.ApplyDefaults()
	l, err := Open(cfg, "async")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for i := range 10 {
		l.Info("event", Fields("i", i))
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// A second close is a no-op.
	if err := l.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if got := len(decodeLines(t, string(data))); got != 10 {
		t.Errorf("expected 10 flushed lines, got %d", got)
	}
}

func TestOpenUnwritableFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Open(&Config{Level: "info", Format: "json", Output: OutputFile, File: filepath.Join(blocker, "x.log")}, "x")
	if err == nil {
		t.Fatal("expected error when the log directory is a file")
	}
	// New falls back to stdout instead of failing.
	if New(&Config{Level: "info", Format: "json", Output: OutputFile, File: filepath.Join(blocker, "x.log")}, "x") == nil {
		t.Fatal("expected fallback logger")
	}
}

func TestInit(t *testing.T) {
	cfg := Config{
		Level:   "info",
		Format:  "console",
		Output:  OutputStdout,
		Modules: []ModuleConfig{{Name: "init-mod", Level: "debug"}},
	}
	Init(&cfg)
	t.Cleanup(func() { UnregisterModule("init-mod") })

	if GetGlobalLogger() == nil {
		t.Fatal("expected global logger to be set after Init")
	}
	m, ok := LookupModule("init-mod")
	if !ok || m.Level != zerolog.DebugLevel || !m.Enabled {
		t.Errorf("expected init-mod registered at debug, got %+v ok=%v", m, ok)
	}
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	global.Store(nil)
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}
}

func TestSetGlobalLogger(t *testing.T) {
	l := NewDefault("custom")
	SetGlobalLogger(l)
	if GetGlobalLogger() != l {
		t.Error("expected SetGlobalLogger to set the global logger")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalLogger(NewWithZerolog(zerolog.New(&buf).Level(zerolog.DebugLevel), "pkg"))
	Debug("debug msg")
	Info("info msg")
	Warn("warn msg")
	Error("error msg")
	WithComponent("c").Info("component msg")

	if got := len(decodeLines(t, buf.String())); got != 5 {
		t.Errorf("expected 5 lines, got %d", got)
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{Output: OutputFile, Modules: []ModuleConfig{{Name: "m"}}}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.File != "logs/app.log" {
		t.Errorf("expected default file, got %q", cfg.File)
	}
	if cfg.BufferSize != 8192 || cfg.PollInterval != 10*time.Millisecond {
		t.Errorf("unexpected async defaults: %d %s", cfg.BufferSize, cfg.PollInterval)
	}
	if cfg.Modules[0].Level != "info" {
		t.Errorf("expected module level to inherit 'info', got %q", cfg.Modules[0].Level)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
	if cfg.Rolling != RollingSize || cfg.MaxSizeMB != 100 || cfg.MaxFiles != 10 {
		t.Errorf("unexpected rolling defaults: %s %d %d", cfg.Rolling, cfg.MaxSizeMB, cfg.MaxFiles)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: OutputStdout}, false},
		{"valid console", Config{Level: "debug", Format: "console", Output: OutputStderr}, false},
		{"invalid level", Config{Level: "bad", Format: "json", Output: OutputStdout}, true},
		{"invalid format", Config{Level: "info", Format: "xml", Output: OutputStdout}, true},
		{"invalid output", Config{Level: "info", Format: "json", Output: "syslog"}, true},
		{"file without path", Config{Level: "info", Format: "json", Output: OutputFile}, true},
		{"module without name", Config{Level: "info", Format: "json", Output: OutputStdout, Modules: []ModuleConfig{{Level: "info"}}}, true},
		{"module bad level", Config{Level: "info", Format: "json", Output: OutputStdout, Modules: []ModuleConfig{{Name: "m", Level: "loud"}}}, true},
		{"unknown rolling", Config{Level: "info", Format: "json", Output: OutputFile, File: "a.log", Rolling: "daily"}, true},
		{"negative max files", Config{Level: "info", Format: "json", Output: OutputFile, File: "a.log", Rolling: RollingSize, MaxFiles: -1}, true},
		{"no rolling", Config{Level: "info", Format: "json", Output: OutputFile, File: "a.log", Rolling: RollingNone}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestModuleLifecycle(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalLogger(NewWithZerolog(zerolog.New(&buf).Level(zerolog.InfoLevel), "mods"))
	t.Cleanup(func() { UnregisterModule("stages") })

	if err := RegisterModule("stages", "debug", true); err != nil {
		t.Fatalf("RegisterModule: %v", err)
	}
	Get("stages").Debug("visible at debug")

	if err := SetModuleLevel("stages", "error"); err != nil {
		t.Fatalf("SetModuleLevel: %v", err)
	}
	Get("stages").Info("hidden at error")

	if err := EnableModule("stages", false); err != nil {
		t.Fatalf("EnableModule: %v", err)
	}
	Get("stages").Error("hidden while disabled")

	lines := decodeLines(t, buf.String())
	if len(lines) != 1 {
		t.Fatalf("expected exactly one line, got %v", lines)
	}
	if lines[0][FieldModule] != "stages" {
		t.Errorf("expected module field, got %v", lines[0])
	}

	if !UnregisterModule("stages") {
		t.Error("expected module to be removed")
	}
	if UnregisterModule("stages") {
		t.Error("second removal should report false")
	}
}

func TestModuleErrors(t *testing.T) {
	if err := RegisterModule("", "info", true); !errors.HasCode(err, errors.ErrCodeMissingField) {
		t.Errorf("expected MISSING_FIELD, got %v", err)
	}
	if err := RegisterModule("m", "loud", true); !errors.HasCode(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("expected INVALID_FORMAT, got %v", err)
	}
	if err := SetModuleLevel("absent", "info"); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
	if err := EnableModule("absent", true); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestModulesSorted(t *testing.T) {
	for _, n := range []string{"zeta", "alpha", "mid"} {
		if err := RegisterModule(n, "", true); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { UnregisterModule(n) })
	}
	var names []string
	for _, m := range Modules() {
		names = append(names, m.Name)
	}
	joined := strings.Join(names, ",")
	if !strings.Contains(joined, "alpha,mid,zeta") {
		t.Errorf("expected sorted modules, got %s", joined)
	}
}

func TestRegisterAndGet(t *testing.T) {
	l := NewDefault("custom-component")
	Register("my-component", l)
	t.Cleanup(func() { Unregister("my-component") })

	if Get("my-component") != l {
		t.Error("expected Get to return the registered logger")
	}
}

func TestGetUnregistered(t *testing.T) {
	if Get("unregistered-component") == nil {
		t.Fatal("expected non-nil logger for unregistered component")
	}
}

func TestRegisterDefaults(t *testing.T) {
	Init(&Config{Level: "info", Format: "json", Output: OutputStdout})
	RegisterDefaults("source", "stage", "terminal")
	t.Cleanup(func() {
		for _, n := range []string{"source", "stage", "terminal"} {
			Unregister(n)
		}
	})

	for _, name := range []string{"source", "stage", "terminal"} {
		if Get(name) == nil {
			t.Errorf("expected non-nil logger for %q", name)
		}
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name     string
		input    []interface{}
		expected map[string]interface{}
	}{
		{"key-value pairs", []interface{}{"op", "sum", "n", 42}, map[string]interface{}{"op": "sum", "n": 42}},
		{"odd number of args", []interface{}{"op", "sum", "trailing"}, map[string]interface{}{"op": "sum"}},
		{"empty", []interface{}{}, map[string]interface{}{}},
		{"non-string key skipped", []interface{}{123, "value", "key", "val"}, map[string]interface{}{"key": "val"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Fields(tc.input...)
			if len(result) != len(tc.expected) {
				t.Errorf("expected %d fields, got %d", len(tc.expected), len(result))
			}
			for k, v := range tc.expected {
				if result[k] != v {
					t.Errorf("Fields[%q] = %v, expected %v", k, result[k], v)
				}
			}
		})
	}
}

func TestErrorAndDurationFields(t *testing.T) {
	fields := ErrorFields("collect", fmt.Errorf("something broke"))
	if fields[FieldOperation] != "collect" || fields[FieldError] != "something broke" {
		t.Errorf("unexpected error fields: %v", fields)
	}

	fields = DurationFields("sum", 150*time.Millisecond)
	if fields[FieldDuration] != int64(150) {
		t.Errorf("expected duration 150, got %v", fields[FieldDuration])
	}
}

func TestMergeHelpers(t *testing.T) {
	result := MergeWithError(map[string]interface{}{"op": "save"}, fmt.Errorf("test error"))
	if result[FieldError] != "test error" || result["op"] != "save" {
		t.Errorf("unexpected merge result: %v", result)
	}
	if MergeWithError(nil, fmt.Errorf("x"))[FieldError] != "x" {
		t.Error("expected error merged into nil map")
	}
	if MergeWithDuration(nil, 200*time.Millisecond)[FieldDuration] != int64(200) {
		t.Error("expected duration merged into nil map")
	}
}

func TestConsoleFormats(t *testing.T) {
	for _, format := range []string{"console", FormatPretty} {
		l := New(&Config{Level: "info", Format: format, Output: OutputStderr, NoColor: true}, "gen")
		if l == nil {
			t.Fatalf("expected logger with %s format", format)
		}
	}
}

func TestWithContextWithoutSpan(t *testing.T) {
	var buf bytes.Buffer
	bufferLogger(&buf, "test").WithContext(context.Background()).Info("plain")

	line := decodeLines(t, buf.String())[0]
	if _, ok := line[FieldTraceID]; ok {
		t.Errorf("no span in context, got %v", line)
	}
}

func TestMergeWithErrorCode(t *testing.T) {
	f := ErrorFields("build", errors.InfiniteSequence("sum"))
	if f[FieldErrorCode] != string(errors.ErrCodeInfiniteSequence) || f[FieldOperation] != "build" {
		t.Errorf("unexpected fields %v", f)
	}
	if _, ok := MergeWithError(nil, fmt.Errorf("plain"))[FieldErrorCode]; ok {
		t.Error("plain errors carry no code")
	}
	if got := MergeWithError(F{"k": 1}, nil); len(got) != 1 {
		t.Errorf("nil error should leave fields untouched, got %v", got)
	}
	if got := RunFields("evens", "r1"); got[FieldPipeline] != "evens" || got[FieldRunID] != "r1" {
		t.Errorf("unexpected run fields %v", got)
	}
}

func TestSizeRollingFileSink(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{Level: "info", Format: "json", Output: OutputFile, File: filepath.Join(dir, "gen.log"), MaxSizeMB: 1}
	cfg.ApplyDefaults()

	w, closeFn, err := openWriter(cfg, "roll")
	if err != nil {
		t.Fatalf("openWriter: %v", err)
	}
	chunk := append(bytes.Repeat([]byte("x"), 64*1024-1), '\n')
	for range 24 {
		if _, err := w.Write(chunk); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	rolled, err := filepath.Glob(filepath.Join(dir, "gen-*.log"))
	if err != nil {
		t.Fatal(err)
	}
	if len(rolled) != 1 {
		t.Errorf("expected one rolled file, got %v", rolled)
	}
	info, err := os.Stat(cfg.File)
	if err != nil {
		t.Fatalf("current log file: %v", err)
	}
	if info.Size() >= 1024*1024 {
		t.Errorf("current file should have rolled over, size %d", info.Size())
	}
}

func TestAppendOnlyFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.log")
	for range 2 {
		cfg := &Config{Level: "info", Format: "json", Output: OutputFile, File: path, Rolling: RollingNone}
		l, err := Open(cfg, "plain")
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		l.Info("line")
		if err := l.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(decodeLines(t, string(data))); got != 2 {
		t.Errorf("expected 2 appended lines, got %d", got)
	}
}

package logger

import (
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kbukum/xgen/errors"
)

// Module is the runtime state of a named logging module. Modules let one
// part of the program run at debug while the rest stays at info, or be
// silenced entirely.
type Module struct {
	Name    string
	Level   zerolog.Level
	Enabled bool
}

var modules = &moduleRegistry{modules: make(map[string]*Module)}

type moduleRegistry struct {
	mu      sync.RWMutex
	modules map[string]*Module
}

// RegisterModule adds or replaces a module. An empty level means info.
func RegisterModule(name, level string, enabled bool) error {
	if strings.TrimSpace(name) == "" {
		return errors.MissingField("module name")
	}
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	modules.mu.Lock()
	defer modules.mu.Unlock()
	modules.modules[name] = &Module{Name: name, Level: lvl, Enabled: enabled}
	return nil
}

// UnregisterModule removes a module and reports whether it existed.
func UnregisterModule(name string) bool {
	modules.mu.Lock()
	defer modules.mu.Unlock()
	_, ok := modules.modules[name]
	delete(modules.modules, name)
	return ok
}

// SetModuleLevel changes the level of a registered module.
func SetModuleLevel(name, level string) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	return updateModule(name, func(m *Module) { m.Level = lvl })
}

// EnableModule switches a registered module on or off.
func EnableModule(name string, enabled bool) error {
	return updateModule(name, func(m *Module) { m.Enabled = enabled })
}

func updateModule(name string, fn func(*Module)) error {
	modules.mu.Lock()
	defer modules.mu.Unlock()
	m, ok := modules.modules[name]
	if !ok {
		return errors.NotFound("logging module", name)
	}
	fn(m)
	return nil
}

// LookupModule returns a copy of the named module's state.
func LookupModule(name string) (Module, bool) {
	modules.mu.RLock()
	defer modules.mu.RUnlock()
	m, ok := modules.modules[name]
	if !ok {
		return Module{}, false
	}
	return *m, true
}

// Modules lists registered modules sorted by name.
func Modules() []Module {
	modules.mu.RLock()
	out := make([]Module, 0, len(modules.modules))
	for _, m := range modules.modules {
		out = append(out, *m)
	}
	modules.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ModuleLogger returns a logger for the named module built from the global
// logger. A disabled module yields a logger that discards everything; an
// unregistered one is only tagged with its name.
func ModuleLogger(name string) *Logger {
	base := GetGlobalLogger()
	m, ok := LookupModule(name)
	if !ok {
		return base.WithComponent(name)
	}
	if !m.Enabled {
		return &Logger{logger: zerolog.Nop(), service: base.service}
	}
	return base.derive(base.logger.With().Str(FieldModule, name).Logger().Level(m.Level))
}

func parseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, errors.InvalidFormat("level", "trace|debug|info|warn|error|fatal|panic|disabled")
	}
	return lvl, nil
}

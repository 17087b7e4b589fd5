package logger

import "sync"

// pinned holds loggers registered under a name. A pinned name bypasses the
// module table until it is unregistered.
var pinned sync.Map // name -> *Logger

// Register pins l under name.
func Register(name string, l *Logger) {
	pinned.Store(name, l)
}

// Unregister drops the logger pinned under name.
func Unregister(name string) {
	pinned.Delete(name)
}

// RegisterDefaults pins a component logger derived from the global logger
// for each name.
func RegisterDefaults(names ...string) {
	base := GetGlobalLogger()
	for _, name := range names {
		Register(name, base.WithComponent(name))
	}
}

// Get returns the logger for name: the pinned one if any, otherwise a
// module logger built from the current module settings, so SetModuleLevel
// and EnableModule take effect on the next Get.
func Get(name string) *Logger {
	if l, ok := pinned.Load(name); ok {
		return l.(*Logger)
	}
	return ModuleLogger(name)
}

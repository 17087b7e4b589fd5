package recipe

import (
	"reflect"
	"sort"
	"sync"

	"github.com/kbukum/xgen/errors"
	"github.com/kbukum/xgen/gen"
)

// Kind is how a registered callable is used in a pipeline.
type Kind int

const (
	// KindFilter is a func(int) bool predicate.
	KindFilter Kind = iota + 1
	// KindMap is a func(int) int transform.
	KindMap
	// KindPeek is a func(int) observer.
	KindPeek
	// KindFactory builds a stage from the spec's Arg.
	KindFactory
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFilter:
		return "filter"
	case KindMap:
		return "map"
	case KindPeek:
		return "peek"
	case KindFactory:
		return "factory"
	default:
		return "unknown"
	}
}

// Factory builds a stage from an integer argument.
type Factory func(arg int) (gen.Stage[int, int], error)

// Entry is a classified registry entry.
type Entry struct {
	Name  string
	Kind  Kind
	build Factory
}

// Stage builds the entry's stage for arg.
func (e Entry) Stage(arg int) (gen.Stage[int, int], error) {
	return e.build(arg)
}

// Registry maps stage names to classified callables. It is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register classifies fn by signature and stores it under name. fn may be
// any function compatible with func(int) bool, func(int) int or func(int),
// including func(any) bool or a variadic func(...int) int. A name can be
// registered once.
func (r *Registry) Register(name string, fn any) error {
	entry, err := classify(name, fn)
	if err != nil {
		return err
	}
	return r.put(entry)
}

// RegisterFactory stores a parameterized stage under name.
func (r *Registry) RegisterFactory(name string, f Factory) error {
	if f == nil {
		return errors.InvalidInput("factory", "must not be nil")
	}
	return r.put(Entry{Name: name, Kind: KindFactory, build: f})
}

func (r *Registry) put(e Entry) error {
	if e.Name == "" {
		return errors.MissingField("name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[e.Name]; exists {
		return errors.AlreadyExists("stage " + e.Name)
	}
	r.entries[e.Name] = e
	return nil
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return Entry{}, errors.NotFound("stage", name)
	}
	return e, nil
}

// Names lists registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

func classify(name string, fn any) (Entry, error) {
	entry := Entry{Name: name}
	switch {
	case gen.ContractOf[int](fn) == gen.ContractStop:
		pred, _, err := gen.Bind[int](fn)
		if err != nil {
			return Entry{}, err
		}
		entry.Kind = KindFilter
		entry.build = fixed(gen.Filter(pred))
	case gen.Matches[func(int) int](fn):
		entry.Kind = KindMap
		entry.build = fixed(gen.Map(transform(fn)))
	case gen.ContractOf[int](fn) == gen.ContractVoid:
		observe, _, err := gen.Bind[int](fn)
		if err != nil {
			return Entry{}, err
		}
		entry.Kind = KindPeek
		entry.build = fixed(gen.Peek(func(v int) { observe(v) }))
	default:
		return Entry{}, errors.IncompatibleHandler(typeName(fn),
			"func(int) bool", "func(int) int", "func(int)")
	}
	return entry, nil
}

func fixed(s gen.Stage[int, int]) Factory {
	return func(int) (gen.Stage[int, int], error) { return s, nil }
}

// transform adapts a callable already known to match func(int) int.
func transform(fn any) func(int) int {
	if f, ok := fn.(func(int) int); ok {
		return f
	}
	v := reflect.ValueOf(fn)
	return func(x int) int {
		return v.Call([]reflect.Value{reflect.ValueOf(&x).Elem()})[0].Interface().(int)
	}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

package dynamix

import (
	"reflect"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Registry resolves class names to composed classes. It backs snapshot
// decoding (the envelope names the class) and caches declarative
// compositions by Go type.
//
// Registration is explicit: classes built with the Builder are added with
// Add, and declarative types register through Register or on first Init.
// The registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*Class
	types   map[reflect.Type]*Class
	log     *zap.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the registry's logger. The default is zap.NewNop(); the
// library stays silent unless a logger is supplied.
func WithLogger(log *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		classes: make(map[string]*Class),
		types:   make(map[reflect.Type]*Class),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add registers classes by name. Re-adding the same class is a no-op;
// a different class under a taken name fails with ErrAlreadyDefined and
// registers nothing further.
func (r *Registry) Add(classes ...*Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range classes {
		if c == nil {
			return errors.New("dynamix: cannot register nil class")
		}
		if existing, ok := r.classes[c.name]; ok {
			if existing == c {
				continue
			}
			return errors.Wrapf(ErrAlreadyDefined, "class %s", c.name)
		}
		r.classes[c.name] = c
		r.log.Debug("class registered",
			zap.String("class", c.name),
			zap.Strings("traits", traitStrings(c.Traits())))
	}
	return nil
}

// Lookup returns the class registered under name, or ErrNotFound.
func (r *Registry) Lookup(name string) (*Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.classes[name]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "class %s", name)
	}
	return c, nil
}

// Names returns the registered class names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default registry instance and initialization guard.
var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry used by Register and Init.
// Created on first call.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// InitDefault installs a custom registry (for example one carrying a logger)
// as the process-wide default. Only the first initialization has any effect,
// so call it before anything touches Default.
func InitDefault(r *Registry) {
	defaultOnce.Do(func() {
		defaultRegistry = r
	})
}

// ResetDefault discards the process-wide registry for testing purposes.
// Not safe for concurrent use.
func ResetDefault() {
	defaultOnce = sync.Once{}
	defaultRegistry = nil
}

package apierror

import (
	"fmt"
	"maps"
	"sync"
)

// Registry maps error names to classes. It is written during initialization
// and read while serving requests.
type Registry struct {
	mu      sync.RWMutex
	errors  map[string]*Class
	classes map[string]*Class
	frozen  bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		errors:  make(map[string]*Class),
		classes: make(map[string]*Class),
	}
}

// All returns a copy of every registered class keyed by error name.
func (r *Registry) All() map[string]*Class {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.errors)
}

// Lookup returns the class registered under name, or nil.
func (r *Registry) Lookup(name string) *Class {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.errors[canonicalName(name)]
}

// Class returns the class bound under a qualified name such as
// "apierror.NotFound", or nil.
func (r *Registry) Class(qualified string) *Class {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.classes[qualified]
}

// Add stores c under its error name, replacing any previous entry.
func (r *Registry) Add(c *Class) error {
	if c == nil {
		return ErrNilClass
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return ErrRegistryFrozen
	}
	r.errors[c.Name()] = c
	r.classes[c.QualifiedName()] = c
	return nil
}

// Snapshot returns a frozen copy of the registry.
func (r *Registry) Snapshot() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Registry{
		errors:  maps.Clone(r.errors),
		classes: maps.Clone(r.classes),
		frozen:  true,
	}
}

// Freeze rejects further registration.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// RegisterOption configures Register.
type RegisterOption func(*registerConfig)

type registerConfig struct {
	base       *Class
	errorName  string
	key        string
	status     int
	statusName string
	className  string
	namespace  string
}

// WithBase sets the class to derive from. Defaults to Root.
func WithBase(base *Class) RegisterOption {
	return func(c *registerConfig) { c.base = base }
}

// WithErrorName sets the wire name. Defaults to the registered name.
func WithErrorName(name string) RegisterOption {
	return func(c *registerConfig) { c.errorName = name }
}

// WithKey sets the catalog key. Defaults to the error name.
func WithKey(key string) RegisterOption {
	return func(c *registerConfig) { c.key = key }
}

// WithHTTPStatus sets the status code. Unset statuses are inherited from the base.
func WithHTTPStatus(status int) RegisterOption {
	return func(c *registerConfig) { c.status = status }
}

// WithStatusName sets the status from a symbolic name, e.g. "service_unavailable".
func WithStatusName(name string) RegisterOption {
	return func(c *registerConfig) { c.statusName = name }
}

// WithClassName overrides the class name derived from the error name.
func WithClassName(name string) RegisterOption {
	return func(c *registerConfig) { c.className = name }
}

// WithNamespace binds the class under a namespace other than "apierror".
func WithNamespace(ns string) RegisterOption {
	return func(c *registerConfig) { c.namespace = ns }
}

// Register defines a new class named name and adds it to the registry.
func (r *Registry) Register(name string, opts ...RegisterOption) (*Class, error) {
	if canonicalName(name) == "" {
		return nil, ErrEmptyName
	}
	cfg := &registerConfig{base: Root}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.base == nil {
		cfg.base = Root
	}

	className := cfg.className
	if className == "" {
		className = Classify(name)
	}
	class, err := NewClass(className, cfg.base)
	if err != nil {
		return nil, fmt.Errorf("register %q: %w", name, err)
	}

	errorName := cfg.errorName
	if errorName == "" {
		errorName = name
	}
	key := cfg.key
	if key == "" {
		key = errorName
	}
	class.name = canonicalName(errorName)
	class.key = canonicalKey(key)
	if cfg.namespace != "" {
		class.namespace = cfg.namespace
	}
	switch {
	case cfg.status != 0:
		err = class.SetHTTPStatus(cfg.status)
	case cfg.statusName != "":
		err = class.SetStatusName(cfg.statusName)
	}
	if err != nil {
		return nil, fmt.Errorf("register %q: %w", name, err)
	}

	if err := r.Add(class); err != nil {
		return nil, fmt.Errorf("register %q: %w", name, err)
	}
	return class, nil
}

// MustRegister is like Register but panics on error. Intended for package
// level variables.
func (r *Registry) MustRegister(name string, opts ...RegisterOption) *Class {
	c, err := r.Register(name, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Resolve returns the class registered under name, falling back to Root.
func (r *Registry) Resolve(name string) *Class {
	if c := r.Lookup(name); c != nil {
		return c
	}
	return Root
}

// Raise creates an error of the class registered under name. Unregistered
// names fall back to Root. Args are passed to Class.New: an optional string
// message, an optional Context and an optional cause.
func (r *Registry) Raise(name string, args ...any) *Error {
	return r.Resolve(name).New(args...)
}

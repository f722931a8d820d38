package params

import (
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/apikit/pkg/apierror"
)

// Factory builds a validator from a Base and its mapping options. Keys the
// factory does not Take are reported as unknown_options.
type Factory func(base *Base, opts Options) (Validator, error)

// SingleFactory builds a validator from a Base and one opaque option.
type SingleFactory func(base SingleOption) (Validator, error)

type entry struct {
	factory Factory
	single  SingleFactory
}

// Registry maps validator type names to factories.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]entry
}

// NewRegistry returns a registry holding the built-in validators.
func NewRegistry() *Registry {
	r := &Registry{validators: make(map[string]entry)}
	registerBuiltins(r)
	return r
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide validator registry.
func DefaultRegistry() *Registry { return defaultRegistry }

// Register adds a validator taking mapping options under name, replacing any
// previous one.
func (r *Registry) Register(name string, f Factory) error {
	if f == nil {
		return ErrNilFactory
	}
	return r.add(name, entry{factory: f})
}

// RegisterSingle adds a single-option validator under name.
func (r *Registry) RegisterSingle(name string, f SingleFactory) error {
	if f == nil {
		return ErrNilFactory
	}
	return r.add(name, entry{single: f})
}

func (r *Registry) add(name string, e entry) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyValidatorName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validators[name] = e
	return nil
}

// Has reports whether a validator type is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.validators[name]
	return ok
}

// Names lists the registered validator types in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.validators))
}

// New builds the validator registered under typ. Unknown types raise
// unknown_validator; mapping options left unconsumed raise unknown_options.
func (r *Registry) New(typ string, attrs []string, options any, required bool, scope *Scope) (Validator, *Base, error) {
	r.mu.RLock()
	e, ok := r.validators[typ]
	r.mu.RUnlock()
	if !ok {
		return nil, nil, UnknownValidator.New(
			"unknown validator "+typ,
			apierror.Context{"validator": typ, "options": options},
		)
	}

	base, err := NewBase(attrs, required, scope)
	if err != nil {
		return nil, nil, err
	}

	if e.single != nil {
		v, err := e.single(SingleOption{Base: base, Option: options})
		if err != nil {
			return nil, nil, err
		}
		return v, base, nil
	}

	opts := Options{}
	if m, ok := asOptions(options); ok {
		maps.Copy(opts, m)
	}
	v, err := e.factory(base, opts)
	if err != nil {
		return nil, nil, err
	}
	if len(opts) > 0 {
		return nil, nil, UnknownOptions.New(
			"unknown options for validator "+typ,
			apierror.Context{"validator": typ, "options": map[string]any(opts)},
		)
	}
	return v, base, nil
}

func asOptions(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Options:
		return m, len(m) > 0
	case map[string]any:
		return m, len(m) > 0
	}
	return nil, false
}

// Register adds a mapping-options validator to the default registry.
func Register(name string, f Factory) error { return defaultRegistry.Register(name, f) }

// RegisterSingle adds a single-option validator to the default registry.
func RegisterSingle(name string, f SingleFactory) error {
	return defaultRegistry.RegisterSingle(name, f)
}

// MustRegister is like Register but panics on error.
func MustRegister(name string, f Factory) {
	if err := Register(name, f); err != nil {
		panic(err)
	}
}

// MustRegisterSingle is like RegisterSingle but panics on error.
func MustRegisterSingle(name string, f SingleFactory) {
	if err := RegisterSingle(name, f); err != nil {
		panic(err)
	}
}

// NameFor derives a validator type name from a Go type: *RegexpValidator
// becomes "regexp", billing.IBANValidator becomes "iban".
func NameFor[V any]() string {
	name := strings.TrimLeft(reflect.TypeFor[V]().String(), "*")
	return apierror.ShortName(name, "_validator")
}

func registerBuiltins(r *Registry) {
	_ = r.Register(NameFor[*PresenceValidator](), NewPresenceValidator)
	_ = r.RegisterSingle(NameFor[*RegexpValidator](), NewRegexpValidator)
	_ = r.RegisterSingle(NameFor[*CoerceValidator](), NewCoerceValidator)
}

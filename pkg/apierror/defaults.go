package apierror

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

var (
	Throttled       = mustDefault("throttled", WithStatusName("service_unavailable"))
	Unauthenticated = mustDefault("unauthenticated", WithStatusName("unauthorized"))
	InvalidVersion  = mustDefault("invalid_version", WithStatusName("not_found"))
	NotImplemented  = mustDefault("not_implemented", WithStatusName("service_unavailable"))
	NotFound        = mustDefault("not_found", WithStatusName("not_found"))
	BadRequest      = mustDefault("bad_request", WithStatusName("bad_request"))
	Conflict        = mustDefault("conflict", WithStatusName("conflict"))
	Forbidden       = mustDefault("forbidden", WithStatusName("forbidden"))
)

func mustDefault(name string, opts ...RegisterOption) *Class {
	return defaultRegistry.MustRegister(name, opts...)
}

// All returns a copy of the default registry contents.
func All() map[string]*Class { return defaultRegistry.All() }

// Lookup finds a class in the default registry.
func Lookup(name string) *Class { return defaultRegistry.Lookup(name) }

// Add stores c in the default registry.
func Add(c *Class) error { return defaultRegistry.Add(c) }

// Register defines a class in the default registry.
func Register(name string, opts ...RegisterOption) (*Class, error) {
	return defaultRegistry.Register(name, opts...)
}

// MustRegister defines a class in the default registry and panics on error.
func MustRegister(name string, opts ...RegisterOption) *Class {
	return defaultRegistry.MustRegister(name, opts...)
}

// Raise creates an error by name from the default registry.
func Raise(name string, args ...any) *Error {
	return defaultRegistry.Raise(name, args...)
}

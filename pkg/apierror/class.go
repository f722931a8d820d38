package apierror

import (
	"net/http"
	"sync"
	"sync/atomic"
)

// DefaultNamespace is the namespace registered classes are bound under.
const DefaultNamespace = "apierror"

// Root is the base of every error class. Its wire name is "unknown", its key
// is "unknown" and it renders as 400 Bad Request.
var Root = &Class{
	key:       "unknown",
	name:      "unknown",
	status:    http.StatusBadRequest,
	className: "Error",
	namespace: DefaultNamespace,
}

// Class describes one kind of error. Attributes not set on a class are read
// from its base. Setters accept a zero value to clear back to the default and
// fail with ErrClassFrozen once an error of the class has been created.
type Class struct {
	mu        sync.RWMutex
	base      *Class
	key       string
	name      string
	status    int
	className string
	namespace string
	frozen    atomic.Bool
}

// NewClass creates an unregistered class deriving from base. A nil base means Root.
// className is used for the default wire name and the qualified name.
func NewClass(className string, base *Class) (*Class, error) {
	if base == nil {
		base = Root
	}
	if !base.IsA(Root) {
		return nil, ErrInvalidBase
	}
	return &Class{base: base, className: className, namespace: base.Namespace()}, nil
}

// Base returns the class this one derives from, nil for Root.
func (c *Class) Base() *Class { return c.base }

// Key returns the key used to look up the error's message in a catalog.
func (c *Class) Key() string {
	c.mu.RLock()
	key := c.key
	c.mu.RUnlock()
	if key != "" {
		return key
	}
	if c.base != nil {
		return c.base.Key()
	}
	return Root.key
}

// Name returns the public wire name. Without an explicit name it is derived
// from the class name: "InvalidResourceError" becomes "invalid_resource".
func (c *Class) Name() string {
	c.mu.RLock()
	name, className := c.name, c.className
	c.mu.RUnlock()
	if name != "" {
		return name
	}
	if className != "" {
		return ErrorNameFor(className)
	}
	if c.base != nil {
		return c.base.Name()
	}
	return Root.name
}

// HTTPStatus returns the class status, inherited from the base when unset.
func (c *Class) HTTPStatus() int {
	c.mu.RLock()
	status := c.status
	c.mu.RUnlock()
	if status != 0 {
		return status
	}
	if c.base != nil {
		return c.base.HTTPStatus()
	}
	return http.StatusBadRequest
}

// ClassName returns the bare class name, e.g. "NotFound".
func (c *Class) ClassName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.className
}

// Namespace returns the namespace the class is bound under.
func (c *Class) Namespace() string {
	c.mu.RLock()
	ns := c.namespace
	c.mu.RUnlock()
	if ns == "" {
		return DefaultNamespace
	}
	return ns
}

// QualifiedName returns "namespace.ClassName". It is also the raw message of
// an error raised without one.
func (c *Class) QualifiedName() string {
	name := c.ClassName()
	if name == "" {
		name = Classify(c.Name())
	}
	return c.Namespace() + "." + name
}

func (c *Class) SetKey(key string) error {
	return c.set(func() { c.key = canonicalKey(key) })
}

func (c *Class) SetName(name string) error {
	return c.set(func() { c.name = canonicalName(name) })
}

// SetHTTPStatus sets the status; 0 clears it back to the inherited value.
func (c *Class) SetHTTPStatus(status int) error {
	if status != 0 && !ValidStatus(status) {
		return ErrUnknownStatus
	}
	return c.set(func() { c.status = status })
}

// SetStatusName sets the status from a symbolic name such as "not_found".
// An empty name clears it.
func (c *Class) SetStatusName(name string) error {
	if name == "" {
		return c.SetHTTPStatus(0)
	}
	code, err := StatusCode(name)
	if err != nil {
		return err
	}
	return c.SetHTTPStatus(code)
}

func (c *Class) set(fn func()) error {
	if c == Root || c.frozen.Load() {
		return ErrClassFrozen
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
	return nil
}

// Ancestors returns the class chain nearest first: the class itself, its
// base, and so on up to Root.
func (c *Class) Ancestors() []*Class {
	var chain []*Class
	for cur := c; cur != nil; cur = cur.base {
		chain = append(chain, cur)
	}
	return chain
}

// IsA reports whether c is other or derives from it.
func (c *Class) IsA(other *Class) bool {
	if c == nil || other == nil {
		return false
	}
	for cur := c; cur != nil; cur = cur.base {
		if cur == other {
			return true
		}
	}
	return false
}

// New creates an error of this class. Args may hold a string message, a
// Context and an error cause, in any order.
func (c *Class) New(args ...any) *Error {
	c.frozen.Store(true)
	e := &Error{class: c}
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			e.message = v
		case Context:
			e.context = v
		case map[string]any:
			e.context = Context(v)
		case error:
			e.cause = v
		}
	}
	return e
}

func (c *Class) String() string { return c.QualifiedName() }

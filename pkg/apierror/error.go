package apierror

import (
	"errors"
	"maps"
)

// Context holds per-error data used to interpolate the error message. The
// reserved keys MetadataKey and ErrorNameKey feed the rendered response.
type Context map[string]any

const (
	// MetadataKey holds a map merged into the rendered error body.
	MetadataKey = "metadata"
	// ErrorNameKey overrides the wire name for a single raise.
	ErrorNameKey = "error_name"
	// MessagesKey is the metadata key holding per-field validation messages.
	MessagesKey = "messages"
)

// Metadata returns the context's metadata sub-map, nil when absent.
func (c Context) Metadata() map[string]any {
	switch m := c[MetadataKey].(type) {
	case map[string]any:
		return m
	case Context:
		return map[string]any(m)
	}
	return nil
}

// Without returns a copy of the context without the given keys.
func (c Context) Without(keys ...string) Context {
	out := make(Context, len(c))
	maps.Copy(out, c)
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Error is an error of a registered class.
type Error struct {
	class    *Class
	message  string
	context  Context
	cause    error
	messages map[string][]string
}

// Error returns the raw message.
func (e *Error) Error() string { return e.Message() }

// Message returns the message given at raise time, or the class's qualified
// name when none was given.
func (e *Error) Message() string {
	if e.message != "" {
		return e.message
	}
	return e.class.QualifiedName()
}

// HasMessage reports whether a custom message was supplied.
func (e *Error) HasMessage() bool {
	return e.message != "" && e.message != e.class.QualifiedName()
}

func (e *Error) Class() *Class    { return e.class }
func (e *Error) Key() string      { return e.class.Key() }
func (e *Error) Name() string     { return e.class.Name() }
func (e *Error) HTTPStatus() int  { return e.class.HTTPStatus() }
func (e *Error) TypeName() string { return e.class.QualifiedName() }

// Context returns the error context, never nil. For invalid_resource errors
// the field messages are merged into a copy of the metadata under "messages";
// maps supplied by the caller are not modified.
func (e *Error) Context() Context {
	if e.messages == nil {
		if e.context == nil {
			e.context = Context{}
		}
		return e.context
	}
	ctx := maps.Clone(e.context)
	if ctx == nil {
		ctx = Context{}
	}
	meta := maps.Clone(e.context.Metadata())
	if meta == nil {
		meta = map[string]any{}
	}
	meta[MessagesKey] = e.messages
	ctx[MetadataKey] = meta
	return ctx
}

// SetContext replaces the error context. Raise sites attach request context
// after construction.
func (e *Error) SetContext(ctx Context) *Error {
	e.context = ctx
	return e
}

// WithCause records the underlying error.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// Messages returns the per-field messages of an invalid_resource error.
func (e *Error) Messages() map[string][]string { return e.messages }

func (e *Error) Unwrap() error { return e.cause }

// Is matches another *Error when this error's class derives from the
// target's class.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || t == nil {
		return false
	}
	return e.class.IsA(t.class)
}

// IsClass reports whether err wraps an *Error whose class derives from c.
func IsClass(err error, c *Class) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.class.IsA(c)
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

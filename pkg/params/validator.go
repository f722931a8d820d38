package params

import (
	"fmt"

	"github.com/dmitrymomot/apikit/pkg/apierror"
)

// Validator checks one attribute of one payload object.
type Validator interface {
	ValidateParam(attr string, params map[string]any) error
}

// Base is the state every validator shares: the attributes it checks, whether
// they are required, and the scope resolving the payload it sees.
type Base struct {
	attrs    []string
	required bool
	scope    *Scope
}

// NewBase builds a Base. Attributes must not be empty.
func NewBase(attrs []string, required bool, scope *Scope) (*Base, error) {
	if len(attrs) == 0 {
		return nil, ErrNoAttributes
	}
	return &Base{attrs: attrs, required: required, scope: scope}, nil
}

func (b *Base) Attrs() []string { return b.attrs }
func (b *Base) Required() bool  { return b.required }
func (b *Base) Scope() *Scope   { return b.scope }

// FullName returns the attribute's bracketed path, e.g. "user[age]".
func (b *Base) FullName(attr string) string {
	if b.scope == nil {
		return attr
	}
	return b.scope.FullName(attr)
}

// Raise creates a validation error for attr. message is a format string
// receiving the full name. The context carries the bare
// attribute name and its full name; the full name is also exposed to clients
// as response metadata.
func (b *Base) Raise(name, attr, message string, extra apierror.Context) *apierror.Error {
	full := b.FullName(attr)
	ctx := apierror.Context{
		"attribute":          attr,
		"param":              full,
		apierror.MetadataKey: map[string]any{"param": full},
	}
	for k, v := range extra {
		ctx[k] = v
	}
	return apierror.Raise(name, fmt.Sprintf(message, full), ctx)
}

// Validate runs v over every (payload object, attribute) pair of the scope.
// A repeated group yields one payload object per element. ValidateParam is
// called when the validator is required or the attribute key is present.
func (b *Base) Validate(v Validator, raw map[string]any) error {
	for _, p := range b.payloads(raw) {
		for _, attr := range b.attrs {
			if !b.required {
				if _, ok := p[attr]; !ok {
					continue
				}
			}
			if err := v.ValidateParam(attr, p); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Base) payloads(raw map[string]any) []map[string]any {
	if b.scope == nil {
		return []map[string]any{raw}
	}
	return objects(b.scope.Params(raw))
}

// SingleOption is a Base for validators configured by one opaque option
// rather than a mapping of named options.
type SingleOption struct {
	*Base
	Option any
}

package params

import "fmt"

// Schema is a validated declaration block, ready to check request payloads.
type Schema struct {
	block    func(*Scope)
	registry *Registry
	declared []Declared
	docs     []Doc
}

// Option configures Define.
type Option func(*Schema)

// WithRegistry resolves validator types from r instead of the default registry.
func WithRegistry(r *Registry) Option {
	return func(s *Schema) {
		if r != nil {
			s.registry = r
		}
	}
}

// Define evaluates block once without a payload. Every validator type and its
// options are resolved, so declaration mistakes surface here instead of on
// the first request.
func Define(block func(*Scope), opts ...Option) (*Schema, error) {
	if block == nil {
		return nil, ErrNilBlock
	}
	s := &Schema{block: block, registry: defaultRegistry}
	for _, opt := range opts {
		opt(s)
	}

	r := &run{registry: s.registry, payload: map[string]any{}, dry: true}
	root := &Scope{run: r}
	block(root)
	if r.err != nil {
		return nil, r.err
	}
	s.declared = root.declared
	s.docs = r.docs
	return s, nil
}

// MustDefine is like Define but panics on error. Intended for package level
// variables.
func MustDefine(block func(*Scope), opts ...Option) *Schema {
	s, err := Define(block, opts...)
	if err != nil {
		panic(fmt.Sprintf("params: invalid declaration: %v", err))
	}
	return s
}

// Validate checks payload against the declarations. Coercions and defaults
// are written back into payload. The first failure is returned.
func (s *Schema) Validate(payload map[string]any) error {
	if payload == nil {
		payload = map[string]any{}
	}
	r := &run{registry: s.registry, payload: payload}
	s.block(&Scope{run: r})
	return r.err
}

// Declared returns the declared attribute tree.
func (s *Schema) Declared() []Declared { return s.declared }

// Docs returns the documentation record of every declared attribute in
// declaration order.
func (s *Schema) Docs() []Doc { return s.docs }

package params

import (
	"fmt"

	"github.com/dmitrymomot/apikit/pkg/apierror"
)

// Scope is one node of a declaration tree. The root scope sees the whole
// payload; a group scope sees the value under its element.
type Scope struct {
	element  string
	parent   *Scope
	run      *run
	declared []Declared
}

// Declared describes a declared attribute. Groups carry their children.
type Declared struct {
	Name     string
	Children []Declared
}

// Doc is the documentation record of a declared attribute.
type Doc struct {
	Name     string
	FullName string
	Required bool
	Type     string
	Desc     string
	Default  any
}

// run is the state of one evaluation of a declaration block.
type run struct {
	registry *Registry
	payload  map[string]any
	dry      bool
	err      error
	docs     []Doc
}

// Element returns the key this scope nests under, empty for the root.
func (s *Scope) Element() string { return s.element }

// Parent returns the enclosing scope, nil for the root.
func (s *Scope) Parent() *Scope { return s.parent }

// Err returns the first failure of the current evaluation.
func (s *Scope) Err() error { return s.run.err }

// Declared returns the attributes declared in this scope so far.
func (s *Scope) Declared() []Declared { return s.declared }

// Requires declares required attributes. Arguments are attribute names
// followed by rules; presence is implied.
func (s *Scope) Requires(args ...any) {
	s.declare(true, args)
}

// Optional declares attributes validated only when present.
func (s *Scope) Optional(args ...any) {
	s.declare(false, args)
}

// Group declares a nested scope under element. When the payload holds a list
// of objects under element, each object is validated independently.
func (s *Scope) Group(element string, block func(*Scope)) {
	if s.run.err != nil {
		return
	}
	child := &Scope{element: element, parent: s, run: s.run}
	if block != nil {
		block(child)
	}
	s.declared = append(s.declared, Declared{Name: element, Children: child.declared})
}

// Params resolves the value this scope sees within raw: the parent's value
// indexed by element, or an empty object when the key is absent. Lists of
// objects are indexed element-wise.
func (s *Scope) Params(raw any) any {
	if s.parent != nil {
		raw = s.parent.Params(raw)
	}
	if s.element == "" {
		return raw
	}
	if list, ok := asList(raw); ok {
		out := make([]any, 0, len(list))
		for _, item := range list {
			for _, obj := range objects(item[s.element]) {
				out = append(out, obj)
			}
		}
		return out
	}
	m, _ := asMap(raw)
	if v := m[s.element]; v != nil {
		return v
	}
	return map[string]any{}
}

// attach is Params for writers: an absent group object is created in its
// parent so values written into it reach the payload.
func (s *Scope) attach(raw any) any {
	if s.parent != nil {
		raw = s.parent.attach(raw)
	}
	if s.element == "" {
		return raw
	}
	if list, ok := asList(raw); ok {
		out := make([]any, 0, len(list))
		for _, item := range list {
			if item[s.element] == nil {
				item[s.element] = map[string]any{}
			}
			for _, obj := range objects(item[s.element]) {
				out = append(out, obj)
			}
		}
		return out
	}
	m, ok := asMap(raw)
	if !ok {
		return map[string]any{}
	}
	if v := m[s.element]; v != nil {
		return v
	}
	obj := map[string]any{}
	m[s.element] = obj
	return obj
}

// FullName returns the bracketed path of name, e.g. "user[address][city]".
func (s *Scope) FullName(name string) string {
	if s.parent != nil {
		return fmt.Sprintf("%s[%s]", s.parent.FullName(s.element), name)
	}
	return name
}

func (s *Scope) declare(required bool, args []any) {
	if s.run.err != nil {
		return
	}
	attrs, rules, err := splitArgs(args)
	if err != nil {
		s.run.err = err
		return
	}
	if len(attrs) == 0 {
		s.run.err = ErrNoAttributes
		return
	}

	set := newRuleSet()
	if required {
		set.set(rulePresence, true)
	}
	for _, r := range rules {
		set.set(r.Type, r.Options)
	}

	for _, a := range attrs {
		s.declared = append(s.declared, Declared{Name: a})
	}
	s.run.err = s.validates(attrs, set)
}

func (s *Scope) validates(attrs []string, set *ruleSet) error {
	doc := Doc{Required: set.has(rulePresence)}

	if kind, ok := set.remove(ruleType); ok {
		set.set(ruleCoerce, kind)
	}
	if set.has(ruleCoerce) {
		doc.Type = fmt.Sprint(set.get(ruleCoerce))
	}
	if desc, ok := set.remove(ruleDesc); ok {
		doc.Desc = fmt.Sprint(desc)
	}
	def, hasDefault := set.remove(ruleDefault)
	if hasDefault {
		doc.Default = def
	}
	for _, a := range attrs {
		d := doc
		d.Name, d.FullName = a, s.FullName(a)
		s.run.docs = append(s.run.docs, d)
	}

	if hasDefault && !s.run.dry {
		for _, p := range objects(s.attach(s.run.payload)) {
			for _, a := range attrs {
				if _, ok := p[a]; !ok {
					p[a] = def
				}
			}
		}
	}

	if presence, ok := set.remove(rulePresence); ok && truthy(presence) {
		if err := s.validate(rulePresence, presence, attrs, doc.Required); err != nil {
			return err
		}
	}

	if kind, ok := set.remove(ruleCoerce); ok {
		if err := s.validate(ruleCoerce, kind, attrs, doc.Required); err != nil {
			return err
		}
	}

	var err error
	set.each(func(typ string, opts any) bool {
		err = s.validate(typ, opts, attrs, doc.Required)
		return err == nil
	})
	return err
}

func (s *Scope) validate(typ string, opts any, attrs []string, required bool) error {
	v, base, err := s.run.registry.New(typ, attrs, opts, required, s)
	if err != nil {
		return err
	}
	if s.run.dry {
		return nil
	}
	return base.Validate(v, s.run.payload)
}

func splitArgs(args []any) ([]string, []Rule, error) {
	var (
		attrs []string
		rules []Rule
	)
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			attrs = append(attrs, v)
		case []string:
			attrs = append(attrs, v...)
		case Rule:
			rules = append(rules, v)
		case []Rule:
			rules = append(rules, v...)
		default:
			return nil, nil, fmt.Errorf("%w: %T", ErrInvalidDeclaration, arg)
		}
	}
	return attrs, rules, nil
}

func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	}
	return true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Options:
		return m, true
	case apierror.Context:
		return m, true
	}
	return nil, false
}

func asList(v any) ([]map[string]any, bool) {
	switch l := v.(type) {
	case []map[string]any:
		return l, true
	case []any:
		out := make([]map[string]any, 0, len(l))
		for _, item := range l {
			if m, ok := asMap(item); ok {
				out = append(out, m)
			} else {
				out = append(out, map[string]any{})
			}
		}
		return out, true
	}
	return nil, false
}

// objects turns a resolved scope value into the payload objects validators
// iterate over. Anything that is neither an object nor a list counts as one
// empty object.
func objects(v any) []map[string]any {
	if list, ok := asList(v); ok {
		return list
	}
	if m, ok := asMap(v); ok {
		return []map[string]any{m}
	}
	return []map[string]any{{}}
}

package params

// Options is the mapping form of validator options. Validators consume the
// keys they understand; leftovers are reported as unknown_options.
type Options map[string]any

// Take removes key from the options and returns its value.
func (o Options) Take(key string) (any, bool) {
	v, ok := o[key]
	if ok {
		delete(o, key)
	}
	return v, ok
}

// Rule is one validation option of a declaration: a validator type and its
// options. Rules keep their declaration order.
type Rule struct {
	Type    string
	Options any
}

const (
	rulePresence = "presence"
	ruleCoerce   = "coerce"
	ruleType     = "type"
	ruleDesc     = "desc"
	ruleDefault  = "default"
)

// Presence requires the attribute key to exist.
func Presence() Rule { return Rule{Type: rulePresence, Options: true} }

// Regexp requires present values to match pattern, a string or *regexp.Regexp.
func Regexp(pattern any) Rule { return Rule{Type: "regexp", Options: pattern} }

// Coerce converts present values to kind before other validators see them.
func Coerce(kind Kind) Rule { return Rule{Type: ruleCoerce, Options: kind} }

// Type is an alias of Coerce.
func Type(kind Kind) Rule { return Rule{Type: ruleType, Options: kind} }

// Desc documents the attribute. It does not validate.
func Desc(text string) Rule { return Rule{Type: ruleDesc, Options: text} }

// Default fills the attribute when absent, before any validator runs.
func Default(value any) Rule { return Rule{Type: ruleDefault, Options: value} }

// Use references any registered validator type by name.
func Use(typ string, options any) Rule { return Rule{Type: typ, Options: options} }

// ruleSet is an ordered set of rules keyed by type. Setting an existing type
// replaces its options but keeps its position.
type ruleSet struct {
	order []string
	opts  map[string]any
}

func newRuleSet(rules ...Rule) *ruleSet {
	rs := &ruleSet{opts: make(map[string]any)}
	for _, r := range rules {
		rs.set(r.Type, r.Options)
	}
	return rs
}

func (rs *ruleSet) set(typ string, opts any) {
	if _, ok := rs.opts[typ]; !ok {
		rs.order = append(rs.order, typ)
	}
	rs.opts[typ] = opts
}

func (rs *ruleSet) has(typ string) bool {
	_, ok := rs.opts[typ]
	return ok
}

func (rs *ruleSet) get(typ string) any { return rs.opts[typ] }

func (rs *ruleSet) remove(typ string) (any, bool) {
	v, ok := rs.opts[typ]
	if !ok {
		return nil, false
	}
	delete(rs.opts, typ)
	for i, t := range rs.order {
		if t == typ {
			rs.order = append(rs.order[:i], rs.order[i+1:]...)
			break
		}
	}
	return v, true
}

func (rs *ruleSet) each(fn func(typ string, opts any) bool) {
	for _, t := range rs.order {
		if !fn(t, rs.opts[t]) {
			return
		}
	}
}

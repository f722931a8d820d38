package params

import (
	"fmt"
	"regexp"
)

// RegexpValidator fails when a present, non-null value does not match the
// configured pattern. Non-string values are matched in their string form.
type RegexpValidator struct {
	SingleOption
	re *regexp.Regexp
}

// NewRegexpValidator is the SingleFactory of the regexp validator. The option
// is a pattern string or a compiled *regexp.Regexp.
func NewRegexpValidator(base SingleOption) (Validator, error) {
	var re *regexp.Regexp
	switch p := base.Option.(type) {
	case *regexp.Regexp:
		re = p
	case string:
		compiled, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
		}
		re = compiled
	}
	if re == nil {
		return nil, fmt.Errorf("%w: %T", ErrInvalidPattern, base.Option)
	}
	return &RegexpValidator{SingleOption: base, re: re}, nil
}

func (v *RegexpValidator) ValidateParam(attr string, params map[string]any) error {
	val := params[attr]
	if val == nil {
		return nil
	}
	if !v.re.MatchString(stringify(val)) {
		return v.Raise(RegexpError.Name(), attr, "%s is invalid", nil)
	}
	return nil
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}

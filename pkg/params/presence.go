package params

// PresenceValidator fails when the attribute key is missing. A present key
// with an empty or null value passes.
type PresenceValidator struct {
	*Base
}

// NewPresenceValidator is the Factory of the presence validator.
func NewPresenceValidator(base *Base, _ Options) (Validator, error) {
	return &PresenceValidator{Base: base}, nil
}

func (v *PresenceValidator) ValidateParam(attr string, params map[string]any) error {
	if _, ok := params[attr]; !ok {
		return v.Raise(PresenceError.Name(), attr, "%s is missing", nil)
	}
	return nil
}

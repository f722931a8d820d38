package params

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrymomot/apikit/pkg/apierror"
)

// Kind names a coercion target.
type Kind string

const (
	String  Kind = "string"
	Integer Kind = "integer"
	Float   Kind = "float"
	Boolean Kind = "boolean"
	Array   Kind = "array"
	Hash    Kind = "hash"
)

// CoerceValidator converts present values to its Kind and stores the result
// back into the payload. Null values are left alone.
type CoerceValidator struct {
	SingleOption
	kind Kind
}

// NewCoerceValidator is the SingleFactory of the coerce validator. The option
// is a Kind or its string form.
func NewCoerceValidator(base SingleOption) (Validator, error) {
	var kind Kind
	switch k := base.Option.(type) {
	case Kind:
		kind = k
	case string:
		kind = Kind(strings.ToLower(k))
	}
	switch kind {
	case String, Integer, Float, Boolean, Array, Hash:
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, base.Option)
	}
	return &CoerceValidator{SingleOption: base, kind: kind}, nil
}

func (v *CoerceValidator) Kind() Kind { return v.kind }

func (v *CoerceValidator) ValidateParam(attr string, params map[string]any) error {
	val, ok := params[attr]
	if !ok || val == nil {
		return nil
	}
	out, ok := coerce(val, v.kind)
	if !ok {
		return v.Raise(CoerceError.Name(), attr, "%s is invalid",
			apierror.Context{"type": string(v.kind)})
	}
	params[attr] = out
	return nil
}

func coerce(val any, kind Kind) (any, bool) {
	switch kind {
	case String:
		return toString(val)
	case Integer:
		return toInteger(val)
	case Float:
		return toFloat(val)
	case Boolean:
		return toBoolean(val)
	case Array:
		return toArray(val)
	case Hash:
		return toHash(val)
	}
	return nil, false
}

func toString(val any) (any, bool) {
	switch v := val.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	}
	if isInt(val) {
		return fmt.Sprint(val), true
	}
	return nil, false
}

func toInteger(val any) (any, bool) {
	switch v := val.(type) {
	case float64:
		if v != math.Trunc(v) || v >= math.MaxInt64 || v < math.MinInt64 {
			return nil, false
		}
		return int64(v), true
	case json.Number:
		i, err := v.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return i, err == nil
	}
	if isInt(val) {
		return reflect.ValueOf(val).Convert(reflect.TypeFor[int64]()).Interface(), true
	}
	return nil, false
}

func toFloat(val any) (any, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	if isInt(val) {
		return reflect.ValueOf(val).Convert(reflect.TypeFor[float64]()).Interface(), true
	}
	return nil, false
}

func toBoolean(val any) (any, bool) {
	switch v := val.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "t", "1", "yes", "y", "on":
			return true, true
		case "false", "f", "0", "no", "n", "off":
			return false, true
		}
	case float64:
		switch v {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	}
	return nil, false
}

func toArray(val any) (any, bool) {
	if v, ok := val.([]any); ok {
		return v, true
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func toHash(val any) (any, bool) {
	m, ok := asMap(val)
	return m, ok
}

func isInt(val any) bool {
	switch reflect.ValueOf(val).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

package apierror

import (
	"fmt"
	"reflect"
)

// Tag identifies something an error "is": a *Class, a Go error type from
// TypeOf, or a comparable sentinel error value.
type Tag = any

// TypeTag identifies a Go error type.
type TypeTag struct {
	t reflect.Type
}

// TypeOf returns the tag for error type T. Interface types match any layer
// implementing them.
func TypeOf[T error]() TypeTag {
	return TypeTag{t: reflect.TypeFor[T]()}
}

// IsInterface reports whether the tag names an interface type.
func (t TypeTag) IsInterface() bool { return t.t.Kind() == reflect.Interface }

// Matches reports whether err's dynamic type is, or implements, the tagged type.
func (t TypeTag) Matches(err error) bool {
	if err == nil {
		return false
	}
	et := reflect.TypeOf(err)
	if t.IsInterface() {
		return et.Implements(t.t)
	}
	return et == t.t
}

func (t TypeTag) String() string { return fmt.Sprintf("type(%s)", t.t) }

// Chain flattens err's wrap tree depth first, outermost layer first.
func Chain(err error) []error {
	var out []error
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		out = append(out, e)
		switch u := e.(type) {
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		}
	}
	walk(err)
	return out
}

// LayerTags lists the tags of a single error layer, nearest first. An *Error
// yields its class ancestors; any other error yields its concrete type and,
// when comparable, the value itself.
func LayerTags(err error) []Tag {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		ancestors := e.class.Ancestors()
		tags := make([]Tag, len(ancestors))
		for i, c := range ancestors {
			tags[i] = c
		}
		return tags
	}
	et := reflect.TypeOf(err)
	tags := []Tag{TypeTag{t: et}}
	if et.Comparable() {
		tags = append(tags, err)
	}
	return tags
}

// Tags lists every tag of err in priority order, walking its wrap chain.
func Tags(err error) []Tag {
	var tags []Tag
	for _, layer := range Chain(err) {
		tags = append(tags, LayerTags(layer)...)
	}
	return tags
}

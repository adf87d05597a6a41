package console

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/mfridman/console/pkg/textutil"
)

// Member describes one bindable slot: a parameter of an invokable command's function or a
// field of a struct bound with [MapInput]. A Member is immutable; the With and As methods
// return modified copies.
type Member struct {
	name       string
	typ        reflect.Type
	variadic   bool
	hasDefault bool
	def        any
	markers    []Marker
	field      bool
}

// Param declares a function parameter of type T. Parameters must be listed in the same order
// as the function's inputs.
//
//	console.Param[string]("name", console.Argument{Description: "who to greet"})
//	console.Param[bool]("yell", console.Option{Shortcut: "y"})
func Param[T any](name string, markers ...Marker) Member {
	return Member{
		name:    name,
		typ:     reflect.TypeFor[T](),
		markers: markers,
	}
}

// Field declares an exported struct field of type T for use in [MapInput]. The name must be
// the Go field name.
func Field[T any](name string, markers ...Marker) Member {
	m := Param[T](name, markers...)
	m.field = true
	return m
}

// WithDefault returns a copy of m with a default value. The value must be assignable to the
// member type, or nil for nullable members.
func (m Member) WithDefault(v any) Member {
	if v != nil && !reflect.TypeOf(v).AssignableTo(m.typ) {
		panic(fmt.Sprintf("internal error: default for %q: %T is not assignable to %s", m.name, v, m.typ))
	}
	m.hasDefault = true
	m.def = v
	return m
}

// AsVariadic returns a copy of m marked variadic. The member type must be a slice; resolvers
// produce its elements.
func (m Member) AsVariadic() Member {
	if m.typ.Kind() != reflect.Slice {
		panic(fmt.Sprintf("internal error: variadic member %q must be a slice, got %s", m.name, m.typ))
	}
	m.variadic = true
	return m
}

// WithMarkers returns a copy of m with additional markers.
func (m Member) WithMarkers(markers ...Marker) Member {
	m.markers = append(slices.Clone(m.markers), markers...)
	return m
}

// Name returns the declared name.
func (m Member) Name() string { return m.name }

// InputName returns the name used for input lookup, the kebab-case form of the declared
// name.
func (m Member) InputName() string { return textutil.Kebab(m.name) }

// Type returns the declared type. For variadic members this is the slice type.
func (m Member) Type() reflect.Type { return m.typ }

// ValueType returns the type of a single resolved value: the element type for variadic
// members, the declared type otherwise.
func (m Member) ValueType() reflect.Type {
	if m.variadic {
		return m.typ.Elem()
	}
	return m.typ
}

// IsNullable reports whether nil is a valid value for the member.
func (m Member) IsNullable() bool {
	switch m.typ.Kind() {
	case reflect.Pointer, reflect.Interface:
		return true
	}
	return false
}

func (m Member) IsVariadic() bool { return m.variadic }
func (m Member) HasDefault() bool { return m.hasDefault }
func (m Member) Default() any     { return m.def }
func (m Member) IsField() bool    { return m.field }

// Markers returns a copy of the attached markers.
func (m Member) Markers() []Marker { return slices.Clone(m.markers) }

func (m Member) String() string {
	if m.field {
		return m.name
	}
	return "$" + m.name
}

// MarkersOf returns the markers of kind T attached to m, in declaration order.
func MarkersOf[T Marker](m Member) []T {
	var out []T
	for _, mk := range m.markers {
		if v, ok := mk.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// MarkerOf returns the first marker of kind T attached to m.
func MarkerOf[T Marker](m Member) (T, bool) {
	for _, mk := range m.markers {
		if v, ok := mk.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// HasMarker reports whether m carries a marker of kind T.
func HasMarker[T Marker](m Member) bool {
	_, ok := MarkerOf[T](m)
	return ok
}

// argumentName returns the input argument name of m and whether m is argument-bound.
func argumentName(m Member) (string, bool) {
	a, ok := MarkerOf[Argument](m)
	if !ok {
		return "", false
	}
	if a.Name != "" {
		return a.Name, true
	}
	return m.InputName(), true
}

// optionName returns the input option name of m and whether m is option-bound.
func optionName(m Member) (string, bool) {
	o, ok := MarkerOf[Option](m)
	if !ok {
		return "", false
	}
	if o.Name != "" {
		return o.Name, true
	}
	return m.InputName(), true
}

// inputValue returns the raw input value bound to m through its Argument or Option marker.
// The second result is false when m is not input-bound or the input does not define the name.
func inputValue(in Input, m Member) (any, bool) {
	if name, ok := argumentName(m); ok {
		if !in.HasArgument(name) {
			return nil, false
		}
		return in.Argument(name), true
	}
	if name, ok := optionName(m); ok {
		if !in.HasOption(name) {
			return nil, false
		}
		return in.Option(name), true
	}
	return nil, false
}

func isInputBound(m Member) bool {
	return HasMarker[Argument](m) || HasMarker[Option](m)
}

package console

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/mfridman/console/pkg/suggest"
)

// Enum is implemented by string- or integer-backed enumeration types. EnumCases returns the
// backing values of every case in their input form.
//
//	type Status string
//
//	const (
//		StatusActive   Status = "active"
//		StatusInactive Status = "inactive"
//	)
//
//	func (Status) EnumCases() []string { return []string{"active", "inactive"} }
type Enum interface {
	EnumCases() []string
}

// BackedEnumResolver converts argument and option values to [Enum] types. A value that is not
// one of the cases is an error.
type BackedEnumResolver struct{}

func (BackedEnumResolver) ResolverName() string { return "backed_enum" }

func (BackedEnumResolver) Resolve(_ context.Context, _ string, in Input, m Member) ([]any, error) {
	base := indirect(m.ValueType())
	cases, ok := enumCases(base)
	if !ok {
		return nil, nil
	}
	if !isInputBound(m) {
		return nil, NearMiss("parameter %q has enum type %s but no Argument or Option marker", m.String(), base)
	}
	raw, ok := inputValue(in, m)
	if !ok || raw == nil || raw == "" {
		return nil, nil
	}

	if m.IsVariadic() {
		items, ok := eachRaw(raw)
		if !ok {
			return nil, &InvalidInputError{Message: fmt.Sprintf("the %s must be a list of values, got %T", describe(m), raw)}
		}
		out := make([]any, 0, len(items))
		for _, item := range items {
			v, err := enumValue(item, m.ValueType(), cases, m)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	v, err := enumValue(raw, m.Type(), cases, m)
	if err != nil {
		return nil, err
	}
	return []any{v}, nil
}

func enumCases(base reflect.Type) ([]string, bool) {
	if !base.Implements(enumType) && !reflect.PointerTo(base).Implements(enumType) {
		return nil, false
	}
	switch base.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return nil, false
	}
	e := reflect.New(base).Interface().(Enum)
	return e.EnumCases(), true
}

func enumValue(raw any, t reflect.Type, cases []string, m Member) (any, error) {
	if rv := reflect.ValueOf(raw); rv.Type().AssignableTo(t) {
		return raw, nil
	}
	var s string
	switch raw := raw.(type) {
	case string:
		s = raw
	default:
		if rv := reflect.ValueOf(raw); rv.Type() == indirect(t) {
			s = fmt.Sprint(raw)
		} else {
			return nil, &InvalidInputError{Message: fmt.Sprintf("the %s expects a value of enum %s, got %T", describe(m), indirect(t), raw)}
		}
	}
	if !slices.Contains(cases, s) {
		msg := fmt.Sprintf("the value %q is not valid for the %s. Supported values are %s", s, describe(m), quoteJoin(cases))
		if similar := suggest.FindSimilar(s, cases, 1); len(similar) > 0 {
			msg += fmt.Sprintf(". Did you mean %q?", similar[0])
		}
		return nil, &InvalidInputError{Message: msg}
	}
	v, err := parseScalar(strings.TrimSpace(s), indirect(t))
	if err != nil {
		return nil, &InvalidInputError{Message: fmt.Sprintf("the value %s is not valid for the %s: %v", strconv.Quote(s), describe(m), err)}
	}
	if t.Kind() == reflect.Pointer {
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(v)
		return ptr.Interface(), nil
	}
	return v.Interface(), nil
}

package console

import (
	"context"
	"fmt"
	"reflect"
)

// BuiltinTypeResolver coerces argument and option values to strings, booleans, integers,
// floats, slices of those, and pointers to any of them. Enum types are left to
// [BackedEnumResolver].
type BuiltinTypeResolver struct{}

func (BuiltinTypeResolver) ResolverName() string { return "builtin_type" }

func (BuiltinTypeResolver) Resolve(_ context.Context, _ string, in Input, m Member) ([]any, error) {
	if !isBuiltin(m.ValueType()) {
		return nil, nil
	}
	raw, ok := inputValue(in, m)
	if !ok {
		return nil, nil
	}

	if raw == nil {
		switch {
		case m.HasDefault(), m.IsVariadic():
			return nil, nil
		case m.IsNullable():
			return []any{nilValue(m.Type())}, nil
		default:
			return []any{reflect.Zero(m.Type()).Interface()}, nil
		}
	}

	if m.IsVariadic() {
		items, ok := eachRaw(raw)
		if !ok {
			return nil, &InvalidInputError{Message: fmt.Sprintf("the %s must be a list of values, got %T", describe(m), raw)}
		}
		out := make([]any, 0, len(items))
		for _, item := range items {
			v, err := convert(item, m.ValueType())
			if err != nil {
				return nil, invalidValue(m, item, err)
			}
			out = append(out, v.Interface())
		}
		return out, nil
	}

	v, err := convert(raw, m.Type())
	if err != nil {
		return nil, invalidValue(m, raw, err)
	}
	return []any{v.Interface()}, nil
}

func invalidValue(m Member, raw any, err error) error {
	return &InvalidInputError{Message: fmt.Sprintf("invalid value %v for %s: %v", formatRaw(raw), describe(m), err)}
}

func formatRaw(raw any) string {
	if s, ok := raw.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(raw)
}

var enumType = reflect.TypeFor[Enum]()

func isBuiltin(t reflect.Type) bool {
	t = indirect(t)
	if t.Implements(enumType) || reflect.PointerTo(t).Implements(enumType) {
		return false
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Slice:
		return t.Elem().Kind() != reflect.Slice && isBuiltin(t.Elem())
	}
	return false
}

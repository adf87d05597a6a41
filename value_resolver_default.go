package console

import (
	"context"
	"fmt"
)

// DefaultValueResolver yields a member's declared default, or nil for nullable members
// without one.
type DefaultValueResolver struct{}

func (DefaultValueResolver) ResolverName() string { return "default" }

func (DefaultValueResolver) Resolve(_ context.Context, _ string, _ Input, m Member) ([]any, error) {
	if isContextType(m.Type()) {
		return nil, nil
	}
	if m.HasDefault() {
		if m.Default() == nil {
			return []any{nilValue(m.Type())}, nil
		}
		return []any{m.Default()}, nil
	}
	if m.IsNullable() && !m.IsVariadic() {
		return []any{nilValue(m.Type())}, nil
	}
	return nil, nil
}

// VariadicResolver feeds a variadic member without an Argument or Option marker from the
// argument or option sharing its input name.
type VariadicResolver struct{}

func (VariadicResolver) ResolverName() string { return "variadic" }

func (VariadicResolver) Resolve(_ context.Context, _ string, in Input, m Member) ([]any, error) {
	if !m.IsVariadic() || isInputBound(m) {
		return nil, nil
	}
	name := m.InputName()
	var raw any
	switch {
	case in.HasArgument(name):
		raw = in.Argument(name)
	case in.HasOption(name):
		raw = in.Option(name)
	default:
		return nil, nil
	}
	items, ok := eachRaw(raw)
	if !ok {
		return nil, &InvalidInputError{Message: fmt.Sprintf("the value of %q must be a list, got %T", name, raw)}
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		v, err := convert(item, m.ValueType())
		if err != nil {
			return nil, &InvalidInputError{Message: fmt.Sprintf("invalid value %s for %q: %v", formatRaw(item), name, err)}
		}
		out = append(out, v.Interface())
	}
	return out, nil
}

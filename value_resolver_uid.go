package console

import (
	"context"
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

var uuidType = reflect.TypeFor[uuid.UUID]()

// UIDResolver parses argument and option values into uuid.UUID values.
type UIDResolver struct{}

func (UIDResolver) ResolverName() string { return "uid" }

func (UIDResolver) Resolve(_ context.Context, _ string, in Input, m Member) ([]any, error) {
	if indirect(m.ValueType()) != uuidType {
		return nil, nil
	}
	if !isInputBound(m) {
		return nil, NearMiss("parameter %q is a UUID but has no Argument or Option marker", m.String())
	}
	raw, ok := inputValue(in, m)
	if !ok || raw == nil || raw == "" {
		return nil, nil
	}

	items := []any{raw}
	if m.IsVariadic() {
		if items, ok = eachRaw(raw); !ok {
			return nil, &InvalidInputError{Message: fmt.Sprintf("the %s must be a list of values, got %T", describe(m), raw)}
		}
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		id, err := parseUUID(item)
		if err != nil {
			return nil, &InvalidInputError{Message: fmt.Sprintf("the value %s of the %s is not a valid UUID: %v", formatRaw(item), describe(m), err)}
		}
		if m.ValueType().Kind() == reflect.Pointer {
			out = append(out, &id)
			continue
		}
		out = append(out, id)
	}
	return out, nil
}

func parseUUID(raw any) (uuid.UUID, error) {
	switch v := raw.(type) {
	case uuid.UUID:
		return v, nil
	case *uuid.UUID:
		if v == nil {
			return uuid.Nil, fmt.Errorf("nil UUID")
		}
		return *v, nil
	case string:
		return uuid.Parse(v)
	}
	return uuid.Nil, fmt.Errorf("unexpected %T", raw)
}

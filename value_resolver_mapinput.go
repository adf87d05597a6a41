package console

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
)

// MapInputResolver builds a struct from input for members carrying a [MapInput] marker. Each
// field is resolved by the field resolvers, first value wins; fields with a nested MapInput
// marker are built recursively. Fields nothing resolves keep their zero value.
type MapInputResolver struct {
	fields []ValueResolver
}

// NewMapInputResolver returns a resolver using fieldResolvers for individual fields.
func NewMapInputResolver(fieldResolvers ...ValueResolver) *MapInputResolver {
	return &MapInputResolver{fields: slices.Clone(fieldResolvers)}
}

func (*MapInputResolver) ResolverName() string { return "map_input" }

func (r *MapInputResolver) Resolve(ctx context.Context, _ string, in Input, m Member) ([]any, error) {
	mi, ok := MarkerOf[MapInput](m)
	if !ok {
		return nil, nil
	}
	base := indirect(m.Type())
	if base.Kind() != reflect.Struct {
		return nil, fmt.Errorf("MapInput parameter %q must be a struct or struct pointer, got %s", m.String(), m.Type())
	}
	if len(mi.Fields) == 0 {
		return nil, NearMiss("parameter %q has a MapInput marker but declares no fields", m.String())
	}

	v, err := r.build(ctx, in, base, mi.Fields)
	if err != nil {
		return nil, err
	}
	if m.Type().Kind() == reflect.Pointer {
		return []any{v.Interface()}, nil
	}
	return []any{v.Elem().Interface()}, nil
}

func (r *MapInputResolver) build(ctx context.Context, in Input, base reflect.Type, fields []Member) (reflect.Value, error) {
	ptr := reflect.New(base)
	for _, f := range fields {
		sf := ptr.Elem().FieldByName(f.Name())
		if !sf.IsValid() || !sf.CanSet() {
			return reflect.Value{}, fmt.Errorf("%s has no exported field %q", base, f.Name())
		}
		if !f.Type().AssignableTo(sf.Type()) {
			return reflect.Value{}, fmt.Errorf("field %s.%s is %s, declared as %s", base, f.Name(), sf.Type(), f.Type())
		}

		var values []any
		if HasMarker[MapInput](f) {
			nested, err := r.Resolve(ctx, f.Name(), in, f)
			if err != nil {
				return reflect.Value{}, err
			}
			values = nested
		} else {
			resolved, err := r.resolveField(ctx, in, f)
			if err != nil {
				return reflect.Value{}, err
			}
			values = resolved
		}
		if len(values) == 0 || values[0] == nil {
			continue
		}
		sf.Set(reflect.ValueOf(values[0]))
	}
	return ptr, nil
}

func (r *MapInputResolver) resolveField(ctx context.Context, in Input, f Member) ([]any, error) {
	for _, res := range r.fields {
		values, err := res.Resolve(ctx, f.Name(), in, f)
		if err != nil {
			var nearMiss *NearMissError
			if errors.As(err, &nearMiss) {
				continue
			}
			return nil, err
		}
		if len(values) > 0 {
			return values, nil
		}
	}
	return nil, nil
}

// mappedFields walks m's MapInput fields depth-first and calls fn for every field that is not
// itself a MapInput.
func mappedFields(m Member, fn func(Member)) {
	mi, ok := MarkerOf[MapInput](m)
	if !ok {
		return
	}
	for _, f := range mi.Fields {
		if HasMarker[MapInput](f) {
			mappedFields(f, fn)
			continue
		}
		fn(f)
	}
}

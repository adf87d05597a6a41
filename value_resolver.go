package console

import (
	"fmt"
	"reflect"
	"strconv"
)

// DefaultResolvers returns the default resolver chain. Order is precedence: enum and UUID
// types are claimed before generic builtin coercion, and the default-value and variadic
// resolvers come last as catch-alls.
func DefaultResolvers() []ValueResolver {
	return []ValueResolver{
		BackedEnumResolver{},
		UIDResolver{},
		BuiltinTypeResolver{},
		NewMapInputResolver(
			BackedEnumResolver{},
			UIDResolver{},
			BuiltinTypeResolver{},
			&DateTimeResolver{},
			DefaultValueResolver{},
		),
		&DateTimeResolver{},
		DefaultValueResolver{},
		VariadicResolver{},
	}
}

// describe names the input a member is bound to, for error messages.
func describe(m Member) string {
	if name, ok := argumentName(m); ok {
		return fmt.Sprintf("argument %q", name)
	}
	if name, ok := optionName(m); ok {
		return fmt.Sprintf("option %q", "--"+name)
	}
	return fmt.Sprintf("parameter %q", m.String())
}

func indirect(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// nilValue returns a typed nil for nullable types.
func nilValue(t reflect.Type) any {
	return reflect.Zero(t).Interface()
}

// eachRaw splits a raw input value into the individual values fed to a variadic member.
func eachRaw(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, true
	case []string:
		out := make([]any, 0, len(v))
		for _, s := range v {
			out = append(out, s)
		}
		return out, true
	case []any:
		return v, true
	case string:
		return []any{v}, true
	}
	return nil, false
}

// convert coerces a raw input value to t. Raw values are strings, bools, string slices or
// values already of the target type.
func convert(raw any, t reflect.Type) (reflect.Value, error) {
	rv := reflect.ValueOf(raw)
	if rv.IsValid() && rv.Type().AssignableTo(t) {
		return rv, nil
	}
	if rv.IsValid() && rv.Type().ConvertibleTo(t) && rv.Kind() == t.Kind() {
		return rv.Convert(t), nil
	}
	if t.Kind() == reflect.Pointer {
		elem, err := convert(raw, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	}
	switch raw := raw.(type) {
	case string:
		return parseScalar(raw, t)
	case bool:
		switch t.Kind() {
		case reflect.Bool:
			return reflect.ValueOf(raw).Convert(t), nil
		case reflect.String:
			return reflect.ValueOf(strconv.FormatBool(raw)).Convert(t), nil
		}
	case []string:
		if t.Kind() == reflect.Slice {
			out := reflect.MakeSlice(t, 0, len(raw))
			for _, s := range raw {
				v, err := convert(s, t.Elem())
				if err != nil {
					return reflect.Value{}, err
				}
				out = reflect.Append(out, v)
			}
			return out, nil
		}
	}
	return reflect.Value{}, fmt.Errorf("cannot convert %T to %s", raw, t)
}

func parseScalar(s string, t reflect.Type) (reflect.Value, error) {
	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetFloat(f)
	case reflect.Slice:
		elem, err := parseScalar(s, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.Append(reflect.MakeSlice(t, 0, 1), elem), nil
	default:
		return reflect.Value{}, fmt.Errorf("unsupported type %s", t)
	}
	return v, nil
}

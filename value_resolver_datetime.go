package console

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

var timeType = reflect.TypeFor[time.Time]()

// DefaultTimeLayouts are tried in order when a member has no [TimeFormat] marker.
var DefaultTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
	time.DateOnly,
}

// DateTimeResolver parses argument and option values into time.Time values. An empty value
// for a non-nullable member without a default resolves to the current time.
type DateTimeResolver struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// Location is used for layouts without a zone. Defaults to time.Local.
	Location *time.Location
}

func (*DateTimeResolver) ResolverName() string { return "datetime" }

func (r *DateTimeResolver) Resolve(_ context.Context, _ string, in Input, m Member) ([]any, error) {
	if indirect(m.ValueType()) != timeType {
		return nil, nil
	}
	if !isInputBound(m) {
		return nil, NearMiss("parameter %q is a time.Time but has no Argument or Option marker", m.String())
	}
	raw, ok := inputValue(in, m)
	if !ok {
		return nil, nil
	}
	if raw == nil || raw == "" {
		switch {
		case m.IsNullable() && !m.IsVariadic():
			return []any{nilValue(m.Type())}, nil
		case m.HasDefault(), m.IsVariadic():
			return nil, nil
		}
		return []any{r.wrap(r.now(), m.ValueType())}, nil
	}

	items := []any{raw}
	if m.IsVariadic() {
		if items, ok = eachRaw(raw); !ok {
			return nil, &InvalidInputError{Message: fmt.Sprintf("the %s must be a list of values, got %T", describe(m), raw)}
		}
	}
	layouts := DefaultTimeLayouts
	if tf, ok := MarkerOf[TimeFormat](m); ok && tf.Layout != "" {
		layouts = []string{tf.Layout}
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		t, err := r.parse(item, layouts)
		if err != nil {
			return nil, &InvalidInputError{Message: fmt.Sprintf("invalid date %s for the %s: %v", formatRaw(item), describe(m), err)}
		}
		out = append(out, r.wrap(t, m.ValueType()))
	}
	return out, nil
}

func (r *DateTimeResolver) parse(raw any, layouts []string) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		loc := r.Location
		if loc == nil {
			loc = time.Local
		}
		var firstErr error
		for _, layout := range layouts {
			t, err := time.ParseInLocation(layout, v, loc)
			if err == nil {
				return t, nil
			}
			if firstErr == nil {
				firstErr = err
			}
		}
		return time.Time{}, firstErr
	}
	return time.Time{}, fmt.Errorf("unexpected %T", raw)
}

func (r *DateTimeResolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *DateTimeResolver) wrap(t time.Time, typ reflect.Type) any {
	if typ.Kind() == reflect.Pointer {
		return &t
	}
	return t
}

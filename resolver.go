package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/mfridman/console/pkg/suggest"
)

// ValueResolver produces values for a member from command input. It returns no values when it
// does not apply, exactly one value for regular members, and any number for variadic members.
// Returning a [NearMissError] signals that the resolver recognized the member but could not
// satisfy it; any other error aborts resolution.
type ValueResolver interface {
	Resolve(ctx context.Context, name string, in Input, m Member) ([]any, error)
}

// ValueResolverFunc adapts a function to a [ValueResolver].
type ValueResolverFunc func(ctx context.Context, name string, in Input, m Member) ([]any, error)

func (f ValueResolverFunc) Resolve(ctx context.Context, name string, in Input, m Member) ([]any, error) {
	return f(ctx, name, in, m)
}

// NamedResolver is implemented by resolvers that can be disabled by name.
type NamedResolver interface {
	ResolverName() string
}

// ResolverLocator finds resolvers by name for members pinned with [UseResolver].
type ResolverLocator interface {
	Resolver(name string) (ValueResolver, bool)
}

// ResolverNames is implemented by locators that can list their names. The names are used in
// error messages.
type ResolverNames interface {
	ResolverNames() []string
}

// ResolverMap is a [ResolverLocator] backed by a map.
type ResolverMap map[string]ValueResolver

func (m ResolverMap) Resolver(name string) (ValueResolver, bool) {
	r, ok := m[name]
	return r, ok
}

func (m ResolverMap) ResolverNames() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NewResolverMap indexes the resolvers implementing [NamedResolver] by name. Later
// resolvers replace earlier ones with the same name.
func NewResolverMap(resolvers ...ValueResolver) ResolverMap {
	m := make(ResolverMap, len(resolvers))
	for _, r := range resolvers {
		if n, ok := r.(NamedResolver); ok {
			m[n.ResolverName()] = r
		}
	}
	return m
}

// ArgumentResolver resolves the members of a command function to values by consulting an
// ordered chain of value resolvers. The first resolver producing a value wins.
type ArgumentResolver struct {
	resolvers []ValueResolver
	named     ResolverLocator
	logger    logrus.FieldLogger
}

// NewArgumentResolver returns an argument resolver over the given chain. A nil chain means
// [DefaultResolvers]. named may be nil, in which case pinned resolvers always fail to resolve.
// A nil logger discards output.
func NewArgumentResolver(resolvers []ValueResolver, named ResolverLocator, logger logrus.FieldLogger) *ArgumentResolver {
	if resolvers == nil {
		resolvers = DefaultResolvers()
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &ArgumentResolver{
		resolvers: slices.Clone(resolvers),
		named:     named,
		logger:    logger,
	}
}

// Arguments resolves params in order and returns the flattened values. Members whose type is
// a framework context type and for which no resolver produced a value contribute nothing;
// variadic members contribute all their values.
func (r *ArgumentResolver) Arguments(ctx context.Context, in Input, command string, params []Member) ([]any, error) {
	var args []any
	for _, m := range params {
		values, err := r.resolveMember(ctx, in, command, m)
		if err != nil {
			return nil, err
		}
		args = append(args, values...)
	}
	return args, nil
}

func (r *ArgumentResolver) resolveMember(ctx context.Context, in Input, command string, m Member) ([]any, error) {
	chain := r.resolvers
	pins := MarkersOf[UseResolver](m)
	switch {
	case len(pins) > 1:
		return nil, &AmbiguousResolverError{Command: command, Member: m.String()}
	case len(pins) == 1:
		res, err := r.lookup(pins[0].Name)
		if err != nil {
			return nil, err
		}
		chain = []ValueResolver{res}
	}
	disabled := MarkersOf[DisableResolver](m)

	logger := r.logger.WithFields(logrus.Fields{
		"command":   command,
		"parameter": m.Name(),
	})
	var reasons []string
	for _, res := range chain {
		name := resolverName(res)
		if r.isDisabled(res, disabled) {
			logger.WithField("resolver", name).Debug("resolver disabled")
			continue
		}
		values, err := res.Resolve(ctx, m.Name(), in, m)
		if err != nil {
			var nearMiss *NearMissError
			if errors.As(err, &nearMiss) {
				logger.WithField("resolver", name).Debugf("near miss: %s", nearMiss.Reason)
				reasons = append(reasons, nearMiss.Reason)
				continue
			}
			return nil, err
		}
		if len(values) == 0 {
			continue
		}
		if !m.IsVariadic() && len(values) > 1 {
			return nil, &ArityError{Command: command, Member: m.String(), Resolver: name, Count: len(values)}
		}
		logger.WithField("resolver", name).Debugf("resolved %d value(s)", len(values))
		return values, nil
	}

	if m.IsVariadic() && isInputBound(m) {
		return nil, nil
	}
	if isContextType(m.Type()) {
		return nil, nil
	}
	return nil, &UnresolvableParameterError{Command: command, Member: m.String(), Reasons: reasons}
}

func (r *ArgumentResolver) lookup(name string) (ValueResolver, error) {
	if r.named != nil {
		if res, ok := r.named.Resolver(name); ok {
			return res, nil
		}
	}
	notFound := &ResolverNotFoundError{Name: name}
	if names, ok := r.named.(ResolverNames); ok {
		notFound.Known = names.ResolverNames()
		notFound.Suggestions = suggest.FindSimilar(name, notFound.Known, 3)
	}
	return nil, notFound
}

func (r *ArgumentResolver) isDisabled(res ValueResolver, disabled []DisableResolver) bool {
	for _, d := range disabled {
		if d.Type != nil && reflect.TypeOf(res) == d.Type {
			return true
		}
		if d.Name == "" {
			continue
		}
		if n, ok := res.(NamedResolver); ok && n.ResolverName() == d.Name {
			return true
		}
		if r.named != nil {
			if registered, ok := r.named.Resolver(d.Name); ok && sameResolver(registered, res) {
				return true
			}
		}
	}
	return false
}

func resolverName(res ValueResolver) string {
	if n, ok := res.(NamedResolver); ok {
		return n.ResolverName()
	}
	return fmt.Sprintf("%T", res)
}

func sameResolver(a, b ValueResolver) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return equalResolvers(a, b)
	}
	if ta.Kind() == reflect.Func {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	return false
}

// equalResolvers compares with ==, which panics when a comparable type holds an uncomparable
// dynamic value such as a slice in an interface field. Such resolvers are never equal.
func equalResolvers(a, b ValueResolver) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return a == b
}

var contextTypes = []reflect.Type{
	reflect.TypeFor[context.Context](),
	reflect.TypeFor[Input](),
	reflect.TypeFor[Output](),
	reflect.TypeFor[*Style](),
	reflect.TypeFor[*Cursor](),
	reflect.TypeFor[*Application](),
	reflect.TypeFor[*Command](),
}

// isContextType reports whether t is one of the framework types supplied directly by an
// invokable command.
func isContextType(t reflect.Type) bool {
	return slices.Contains(contextTypes, t)
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

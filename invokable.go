package console

import (
	"context"
	"flag"
	"fmt"
	"os"
	"reflect"
	"slices"
	"sync"
)

var (
	intType   = reflect.TypeFor[int]()
	errorType = reflect.TypeFor[error]()
)

// SignalHandler is implemented by command owners that react to process signals while the
// command runs. HandleSignal returns the exit code to use and whether the command should stop.
type SignalHandler interface {
	SubscribedSignals() []os.Signal
	HandleSignal(sig os.Signal, previousExitCode int) (exitCode int, exit bool)
}

// InvokableCommand binds a plain Go function to a command. Parameters are described by
// [Member] values in the order of the function's inputs. Framework types (context.Context,
// [Input], [Output], *[Style], *[Cursor], *[Application] and *[Command]) are passed directly;
// everything else is produced by an [ArgumentResolver].
//
// The function must return an int status code, optionally followed by an error.
type InvokableCommand struct {
	name   string
	owner  any
	fn     reflect.Value
	params []Member

	definition *Definition
	resolver   *ArgumentResolver
	app        *Application
	questions  *QuestionHelper

	cmdOnce sync.Once
	cmd     *Command

	interactOnce sync.Once
	interactions []interaction
}

// NewInvokable returns a command named name that calls fn. owner is the value fn belongs to,
// if any; it may implement [Interactor] and [SignalHandler]. The definition is derived from
// params immediately, so declaration problems are reported here.
func NewInvokable(name string, owner any, fn any, params ...Member) (*InvokableCommand, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, fmt.Errorf("command %q: target must be a function, got %T", name, fn)
	}
	if err := checkSignature(fv.Type(), params); err != nil {
		return nil, fmt.Errorf("command %q: %w", name, err)
	}
	for _, m := range params {
		if err := checkMember(m); err != nil {
			return nil, fmt.Errorf("command %q: %w", name, err)
		}
	}
	c := &InvokableCommand{
		name:   name,
		owner:  owner,
		fn:     fv,
		params: slices.Clone(params),
	}
	c.definition = &Definition{}
	if err := c.Configure(c.definition); err != nil {
		return nil, fmt.Errorf("command %q: %w", name, err)
	}
	return c, nil
}

// MustInvokable is like [NewInvokable] but panics on error.
func MustInvokable(name string, owner any, fn any, params ...Member) *InvokableCommand {
	c, err := NewInvokable(name, owner, fn, params...)
	if err != nil {
		panic(err)
	}
	return c
}

func checkSignature(ft reflect.Type, params []Member) error {
	if ft.NumIn() != len(params) {
		return fmt.Errorf("function has %d parameters, %d described", ft.NumIn(), len(params))
	}
	for i, m := range params {
		in := ft.In(i)
		last := i == ft.NumIn()-1
		if m.IsVariadic() != (last && ft.IsVariadic()) {
			return fmt.Errorf("parameter %s: variadic mismatch with function signature", m)
		}
		if !m.Type().AssignableTo(in) {
			return fmt.Errorf("parameter %s: described as %s, function expects %s", m, m.Type(), in)
		}
	}
	if ft.NumOut() == 2 && ft.Out(1) != errorType {
		return fmt.Errorf("second return value must be error, got %s", ft.Out(1))
	}
	if ft.NumOut() > 2 {
		return fmt.Errorf("function returns %d values, expected an int status and an optional error", ft.NumOut())
	}
	return nil
}

func checkMember(m Member) error {
	if HasMarker[Ask](m) && !HasMarker[Argument](m) {
		return fmt.Errorf("the Ask marker on %s requires an Argument marker", m)
	}
	if HasMarker[MapInput](m) {
		if indirect(m.Type()).Kind() != reflect.Struct {
			return fmt.Errorf("MapInput parameter %s must be a struct or struct pointer, got %s", m, m.Type())
		}
		mi, _ := MarkerOf[MapInput](m)
		for _, f := range mi.Fields {
			if err := checkMember(f); err != nil {
				return err
			}
		}
	}
	return nil
}

// Name returns the command name.
func (c *InvokableCommand) Name() string { return c.name }

// Parameters returns the described parameters.
func (c *InvokableCommand) Parameters() []Member { return slices.Clone(c.params) }

// Definition returns the derived input definition.
func (c *InvokableCommand) Definition() *Definition { return c.definition }

// SetArgumentResolver sets the resolver used by [InvokableCommand.Invoke]. Commands
// registered with an [Application] use the application's resolver.
func (c *InvokableCommand) SetArgumentResolver(r *ArgumentResolver) { c.resolver = r }

// SetQuestionHelper sets the helper used to prompt during [InvokableCommand.Interact].
func (c *InvokableCommand) SetQuestionHelper(h *QuestionHelper) { c.questions = h }

// Configure declares the command's arguments and options on def: members with Argument or
// Option markers, and the fields of MapInput members, flattened. Required arguments are moved
// before optional ones, keeping declaration order otherwise.
func (c *InvokableCommand) Configure(def *Definition) error {
	for _, m := range c.params {
		if isContextType(m.Type()) {
			continue
		}
		if HasMarker[MapInput](m) {
			var err error
			mappedFields(m, func(f Member) {
				if err == nil {
					err = declare(def, f)
				}
			})
			if err != nil {
				return err
			}
			continue
		}
		if err := declare(def, m); err != nil {
			return err
		}
	}
	return def.normalize()
}

func declare(def *Definition, m Member) error {
	if a, ok := MarkerOf[Argument](m); ok {
		name, _ := argumentName(m)
		isArray := m.IsVariadic() || isListType(m.Type())
		return def.AddArgument(InputArgument{
			Name:        name,
			Description: a.Description,
			Required:    !m.HasDefault() && !m.IsNullable() && !m.IsVariadic(),
			IsArray:     isArray,
			Default:     inputDefault(m),
			Suggestions: a.Suggestions,
		})
	}
	if o, ok := MarkerOf[Option](m); ok {
		name, _ := optionName(m)
		mode := o.Mode
		if mode == OptionValueAuto {
			switch t := indirect(m.ValueType()); {
			case t.Kind() == reflect.Bool:
				mode = OptionValueNone
			case m.IsVariadic() || isListType(m.Type()):
				mode = OptionValueIsArray
			default:
				mode = OptionValueRequired
			}
		}
		return def.AddOption(InputOption{
			Name:        name,
			Shortcut:    o.Shortcut,
			Description: o.Description,
			Mode:        mode,
			Default:     inputDefault(m),
		})
	}
	return nil
}

func isListType(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && t.Elem().Kind() != reflect.Uint8
}

// inputDefault returns the member default when it has a plain builtin form usable as an input
// default. Other defaults are supplied by [DefaultValueResolver].
func inputDefault(m Member) any {
	if !m.HasDefault() || m.Default() == nil {
		return nil
	}
	t := reflect.TypeOf(m.Default())
	if t.Kind() == reflect.Pointer || !isBuiltin(t) || t.PkgPath() != "" {
		return nil
	}
	return m.Default()
}

// Command returns the [Command] running this invokable. The same command is returned on every
// call.
func (c *InvokableCommand) Command() *Command {
	c.cmdOnce.Do(func() {
		c.cmd = &Command{
			Name:      c.name,
			Flags:     FlagsFunc(func(f *flag.FlagSet) { OptionFlags(c.definition, f) }),
			Exec:      c.exec,
			invokable: c,
		}
		c.cmd.Flags.Init(c.name, flag.ContinueOnError)
	})
	return c.cmd
}

func (c *InvokableCommand) exec(ctx context.Context, s *State) error {
	flags := c.Command().Flags
	in, err := BindInput(c.definition, s.Args, flags)
	resetOptions(flags)
	if err != nil {
		return err
	}
	in.SetInteractive(s.interactive)
	out := NewStreamOutput(s.Stdout)
	if in.IsInteractive() {
		q := c.questions
		if q == nil {
			q = NewQuestionHelper(s.Stdin)
		}
		if err := c.interact(ctx, in, out, q); err != nil {
			return err
		}
	}
	if err := in.Validate(); err != nil {
		return err
	}
	status, err := c.Invoke(ctx, in, out)
	if err != nil {
		return err
	}
	if status != 0 {
		return &ExitError{Code: status}
	}
	return nil
}

// Invoke resolves the parameters from in and calls the function. The argument resolver is
// only consulted when at least one parameter is not a framework type.
func (c *InvokableCommand) Invoke(ctx context.Context, in Input, out Output) (int, error) {
	var appParams []Member
	for _, m := range c.params {
		if !isContextType(m.Type()) {
			appParams = append(appParams, m)
		}
	}
	var resolved []any
	if len(appParams) > 0 {
		var err error
		resolved, err = c.argumentResolver().Arguments(ctx, in, c.name, appParams)
		if err != nil {
			return 1, err
		}
	}

	args := make([]reflect.Value, 0, len(c.params))
	next := 0
	for _, m := range c.params {
		if isContextType(m.Type()) {
			args = append(args, reflect.ValueOf(c.contextValue(m.Type(), ctx, in, out)))
			continue
		}
		if m.IsVariadic() {
			for ; next < len(resolved); next++ {
				v, err := argValue(resolved[next], m.ValueType(), m)
				if err != nil {
					return 1, err
				}
				args = append(args, v)
			}
			continue
		}
		if next >= len(resolved) {
			return 1, fmt.Errorf("command %q: internal error: no value resolved for parameter %s", c.name, m)
		}
		v, err := argValue(resolved[next], m.Type(), m)
		if err != nil {
			return 1, err
		}
		args = append(args, v)
		next++
	}

	return c.status(c.fn.Call(args))
}

func (c *InvokableCommand) status(results []reflect.Value) (int, error) {
	var callErr error
	if len(results) == 2 && !results[1].IsNil() {
		callErr = results[1].Interface().(error)
	}
	if len(results) == 0 {
		return 1, &ReturnTypeError{Command: c.name}
	}
	r := results[0]
	if r.Kind() == reflect.Interface {
		if r.IsNil() {
			return 1, &ReturnTypeError{Command: c.name}
		}
		r = r.Elem()
	}
	if r.Type() != intType {
		return 1, &ReturnTypeError{Command: c.name, Type: r.Type()}
	}
	return int(r.Int()), callErr
}

func argValue(v any, t reflect.Type, m Member) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("resolved value of type %s is not assignable to parameter %s of type %s", rv.Type(), m, t)
	}
	return rv, nil
}

func (c *InvokableCommand) contextValue(t reflect.Type, ctx context.Context, in Input, out Output) any {
	switch t {
	case reflect.TypeFor[context.Context]():
		return ctx
	case reflect.TypeFor[Input]():
		return in
	case reflect.TypeFor[Output]():
		return out
	case reflect.TypeFor[*Style]():
		return NewStyle(out)
	case reflect.TypeFor[*Cursor]():
		return NewCursor(out)
	case reflect.TypeFor[*Application]():
		return c.app
	case reflect.TypeFor[*Command]():
		return c.Command()
	}
	return nil
}

func (c *InvokableCommand) argumentResolver() *ArgumentResolver {
	if c.resolver == nil {
		c.resolver = NewArgumentResolver(nil, nil, nil)
	}
	return c.resolver
}

// SubscribedSignals returns the owner's signals when it implements [SignalHandler].
func (c *InvokableCommand) SubscribedSignals() []os.Signal {
	if h, ok := c.owner.(SignalHandler); ok {
		return h.SubscribedSignals()
	}
	return nil
}

// HandleSignal forwards to the owner when it implements [SignalHandler]. Otherwise the signal
// is ignored.
func (c *InvokableCommand) HandleSignal(sig os.Signal, previousExitCode int) (int, bool) {
	if h, ok := c.owner.(SignalHandler); ok {
		return h.HandleSignal(sig, previousExitCode)
	}
	return previousExitCode, false
}

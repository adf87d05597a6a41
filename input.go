package console

import (
	"flag"
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Input is the parsed command-line input seen by value resolvers and interactions.
type Input interface {
	// HasArgument reports whether the argument is defined.
	HasArgument(name string) bool
	// Argument returns the argument value, or its default when not given.
	Argument(name string) any
	// HasOption reports whether the option is defined.
	HasOption(name string) bool
	// Option returns the option value, or its default when not given.
	Option(name string) any
	// Arguments returns all argument values keyed by name, defaults included.
	Arguments() map[string]any
	// Options returns all option values keyed by name, defaults included.
	Options() map[string]any
	SetArgument(name string, value any)
	SetOption(name string, value any)
	IsInteractive() bool
	// Validate checks that every required argument has a value.
	Validate() error
}

// ArrayInput is an [Input] backed by maps. When a [Definition] is set, only its arguments
// and options exist; otherwise any key present in the maps exists.
type ArrayInput struct {
	definition  *Definition
	arguments   map[string]any
	options     map[string]any
	interactive bool
}

var _ Input = (*ArrayInput)(nil)

// NewArrayInput returns an input over the given values. Either map may be nil.
func NewArrayInput(def *Definition, arguments, options map[string]any) *ArrayInput {
	in := &ArrayInput{
		definition: def,
		arguments:  make(map[string]any),
		options:    make(map[string]any),
	}
	maps.Copy(in.arguments, arguments)
	maps.Copy(in.options, options)
	return in
}

// SetInteractive toggles interactive mode.
func (in *ArrayInput) SetInteractive(interactive bool) { in.interactive = interactive }

func (in *ArrayInput) IsInteractive() bool { return in.interactive }

func (in *ArrayInput) HasArgument(name string) bool {
	if in.definition == nil {
		_, ok := in.arguments[name]
		return ok
	}
	_, ok := in.definition.Argument(name)
	return ok
}

func (in *ArrayInput) Argument(name string) any {
	if v, ok := in.arguments[name]; ok {
		return v
	}
	if a, ok := in.definition.Argument(name); ok {
		return a.Default
	}
	return nil
}

func (in *ArrayInput) HasOption(name string) bool {
	if in.definition == nil {
		_, ok := in.options[name]
		return ok
	}
	_, ok := in.definition.Option(name)
	return ok
}

func (in *ArrayInput) Option(name string) any {
	if o, ok := in.definition.Option(name); ok {
		name = o.Name
	}
	if v, ok := in.options[name]; ok {
		return v
	}
	if o, ok := in.definition.Option(name); ok {
		return o.Default
	}
	return nil
}

func (in *ArrayInput) Arguments() map[string]any {
	out := make(map[string]any, len(in.arguments))
	for _, a := range in.definition.Arguments() {
		out[a.Name] = a.Default
	}
	maps.Copy(out, in.arguments)
	return out
}

func (in *ArrayInput) Options() map[string]any {
	out := make(map[string]any, len(in.options))
	for _, o := range in.definition.Options() {
		out[o.Name] = o.Default
	}
	maps.Copy(out, in.options)
	return out
}

func (in *ArrayInput) SetArgument(name string, value any) { in.arguments[name] = value }

func (in *ArrayInput) SetOption(name string, value any) {
	if o, ok := in.definition.Option(name); ok {
		name = o.Name
	}
	in.options[name] = value
}

func (in *ArrayInput) Validate() error {
	var missing []string
	for _, a := range in.definition.Arguments() {
		if a.Required && isEmptyValue(in.Argument(a.Name)) {
			missing = append(missing, strconv.Quote(a.Name))
		}
	}
	if len(missing) > 0 {
		return &InvalidInputError{Message: fmt.Sprintf("not enough arguments (missing: %s)", strings.Join(missing, ", "))}
	}
	return nil
}

func isEmptyValue(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}

// BindInput builds an [ArrayInput] from positional arguments and a parsed flag set. Options
// are read from flags registered with [OptionFlags]; only options given on the command line
// are recorded, so defaults keep coming from the definition.
func BindInput(def *Definition, args []string, flags *flag.FlagSet) (*ArrayInput, error) {
	in := NewArrayInput(def, nil, nil)

	arguments := def.Arguments()
	i := 0
	for _, a := range arguments {
		if i >= len(args) {
			break
		}
		if a.IsArray {
			in.arguments[a.Name] = append([]string(nil), args[i:]...)
			i = len(args)
			break
		}
		in.arguments[a.Name] = args[i]
		i++
	}
	if i < len(args) {
		if len(arguments) == 0 {
			return nil, &InvalidInputError{Message: fmt.Sprintf("no arguments expected, got %q", args[i])}
		}
		names := make([]string, 0, len(arguments))
		for _, a := range arguments {
			names = append(names, strconv.Quote(a.Name))
		}
		return nil, &InvalidInputError{Message: fmt.Sprintf("too many arguments, expected arguments %s", strings.Join(names, " "))}
	}

	if flags != nil {
		for _, o := range def.Options() {
			f := flags.Lookup(o.Name)
			if f == nil {
				continue
			}
			if v, ok := f.Value.(optionValue); ok && v.isSet() {
				in.options[o.Name] = v.Get()
			}
		}
	}
	return in, nil
}

// OptionFlags registers every option of def on fset, under its name and shortcut.
func OptionFlags(def *Definition, fset *flag.FlagSet) {
	for _, o := range def.Options() {
		var v optionValue
		switch o.Mode {
		case OptionValueNone:
			b, _ := o.Default.(bool)
			v = &boolOption{value: b, def: b}
		case OptionValueIsArray:
			s, _ := o.Default.([]string)
			v = &arrayOption{value: s, def: s}
		default:
			s := ""
			if o.Default != nil {
				s = fmt.Sprint(o.Default)
			}
			v = &stringOption{value: s, def: s}
		}
		fset.Var(v, o.Name, o.Description)
		if o.Shortcut != "" {
			fset.Var(v, o.Shortcut, o.Description)
		}
	}
}

type optionValue interface {
	flag.Getter
	isSet() bool
	reset()
}

// resetOptions restores every option flag in fset to its default so a command can be parsed
// and run again.
func resetOptions(fset *flag.FlagSet) {
	if fset == nil {
		return
	}
	fset.VisitAll(func(f *flag.Flag) {
		if v, ok := f.Value.(optionValue); ok {
			v.reset()
		}
	})
}

type boolOption struct {
	value, def bool
	set        bool
}

func (o *boolOption) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	o.value, o.set = v, true
	return nil
}

func (o *boolOption) String() string   { return strconv.FormatBool(o.value) }
func (o *boolOption) Get() any         { return o.value }
func (o *boolOption) IsBoolFlag() bool { return true }
func (o *boolOption) isSet() bool      { return o.set }
func (o *boolOption) reset()           { o.value, o.set = o.def, false }

type stringOption struct {
	value, def string
	set        bool
}

func (o *stringOption) Set(s string) error {
	o.value, o.set = s, true
	return nil
}

func (o *stringOption) String() string { return o.value }
func (o *stringOption) Get() any       { return o.value }
func (o *stringOption) isSet() bool    { return o.set }
func (o *stringOption) reset()         { o.value, o.set = o.def, false }

type arrayOption struct {
	value, def []string
	set        bool
}

func (o *arrayOption) Set(s string) error {
	if !o.set {
		o.value = nil
	}
	o.value = append(o.value, s)
	o.set = true
	return nil
}

func (o *arrayOption) String() string { return strings.Join(o.value, ",") }
func (o *arrayOption) Get() any       { return append([]string(nil), o.value...) }
func (o *arrayOption) isSet() bool    { return o.set }
func (o *arrayOption) reset()         { o.value, o.set = o.def, false }

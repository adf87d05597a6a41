package console

import (
	"fmt"
	"slices"
	"strings"
)

// InputArgument declares a positional argument.
type InputArgument struct {
	Name        string
	Description string
	Required    bool
	// IsArray arguments collect all remaining positional values. Only the last argument may be
	// an array.
	IsArray     bool
	Default     any
	Suggestions []string
}

// InputOption declares a named option. Mode is never [OptionValueAuto] once added to a
// [Definition].
type InputOption struct {
	Name        string
	Shortcut    string
	Description string
	Mode        OptionMode
	Default     any
}

// Definition is the set of arguments and options a command accepts.
type Definition struct {
	arguments []InputArgument
	options   []InputOption
}

// AddArgument appends an argument. Argument names must be unique.
func (d *Definition) AddArgument(a InputArgument) error {
	if a.Name == "" {
		return fmt.Errorf("argument has no name")
	}
	if _, ok := d.Argument(a.Name); ok {
		return fmt.Errorf("an argument with name %q already exists", a.Name)
	}
	d.arguments = append(d.arguments, a)
	return nil
}

// AddOption appends an option. Option names and shortcuts must be unique.
func (d *Definition) AddOption(o InputOption) error {
	if o.Name == "" {
		return fmt.Errorf("option has no name")
	}
	if strings.Contains(o.Name, " ") {
		return fmt.Errorf("option name %q contains spaces", o.Name)
	}
	if _, ok := d.Option(o.Name); ok {
		return fmt.Errorf("an option named %q already exists", o.Name)
	}
	if o.Shortcut != "" {
		for _, existing := range d.options {
			if existing.Shortcut == o.Shortcut || existing.Name == o.Shortcut {
				return fmt.Errorf("an option with shortcut %q already exists", o.Shortcut)
			}
		}
	}
	if o.Mode == OptionValueAuto {
		o.Mode = OptionValueRequired
	}
	if o.Mode == OptionValueNone && o.Default == nil {
		o.Default = false
	}
	d.options = append(d.options, o)
	return nil
}

// Arguments returns the declared arguments in binding order.
func (d *Definition) Arguments() []InputArgument {
	if d == nil {
		return nil
	}
	return slices.Clone(d.arguments)
}

// Options returns the declared options in declaration order.
func (d *Definition) Options() []InputOption {
	if d == nil {
		return nil
	}
	return slices.Clone(d.options)
}

// Argument looks up an argument by name.
func (d *Definition) Argument(name string) (InputArgument, bool) {
	if d == nil {
		return InputArgument{}, false
	}
	for _, a := range d.arguments {
		if a.Name == name {
			return a, true
		}
	}
	return InputArgument{}, false
}

// Option looks up an option by name or shortcut.
func (d *Definition) Option(name string) (InputOption, bool) {
	if d == nil {
		return InputOption{}, false
	}
	for _, o := range d.options {
		if o.Name == name || (o.Shortcut != "" && o.Shortcut == name) {
			return o, true
		}
	}
	return InputOption{}, false
}

// normalize moves required arguments before optional ones, keeping the relative order within
// each group, and checks that an array argument, if any, comes last.
func (d *Definition) normalize() error {
	slices.SortStableFunc(d.arguments, func(a, b InputArgument) int {
		switch {
		case a.Required == b.Required:
			return 0
		case a.Required:
			return -1
		default:
			return 1
		}
	})
	for i, a := range d.arguments {
		if a.IsArray && i != len(d.arguments)-1 {
			return fmt.Errorf("cannot add argument %q after array argument %q", d.arguments[i+1].Name, a.Name)
		}
	}
	return nil
}

package console

import (
	"reflect"
)

// Marker is attached to a [Member] to describe how it binds to command input. The set of
// markers is closed: [Argument], [Option], [MapInput], [UseResolver], [DisableResolver], [Ask]
// and [TimeFormat].
type Marker interface {
	marker()
}

// Argument binds a member to a positional argument.
type Argument struct {
	// Name overrides the argument name. Defaults to the member's input name.
	Name        string
	Description string
	// Suggestions are offered in usage text. They do not restrict the accepted values.
	Suggestions []string
}

// OptionMode describes whether an option accepts a value.
type OptionMode int

const (
	// OptionValueAuto derives the mode from the member type: bool types are flags, slice types
	// are repeatable and anything else requires a value.
	OptionValueAuto OptionMode = iota
	OptionValueNone
	OptionValueRequired
	OptionValueIsArray
)

// Option binds a member to a named option.
type Option struct {
	// Name overrides the option name. Defaults to the member's input name.
	Name        string
	Shortcut    string
	Description string
	Mode        OptionMode
}

// MapInput binds a struct member field by field. Each field is a [Member] created with
// [Field] and carries its own Argument, Option or nested MapInput marker.
type MapInput struct {
	Fields []Member
}

// UseResolver pins a member to the named resolver registered with the application. No other
// resolver is consulted for that member.
type UseResolver struct {
	Name string
}

// DisableResolver removes a resolver from the chain for one member. Name matches resolvers
// registered under that name and resolvers implementing [NamedResolver]; Type matches the
// dynamic type of the resolver.
type DisableResolver struct {
	Name string
	Type reflect.Type
}

// Disable returns a DisableResolver marker matching resolvers of type T.
func Disable[T ValueResolver]() DisableResolver {
	return DisableResolver{Type: reflect.TypeFor[T]()}
}

// Ask prompts for a missing argument value when the command runs interactively.
type Ask struct {
	Question string
	Default  string
	Hidden   bool
	Choices  []string
}

// TimeFormat sets the layout used to parse a time.Time member.
type TimeFormat struct {
	Layout string
}

func (Argument) marker()        {}
func (Option) marker()          {}
func (MapInput) marker()        {}
func (UseResolver) marker()     {}
func (DisableResolver) marker() {}
func (Ask) marker()             {}
func (TimeFormat) marker()      {}

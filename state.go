package console

import (
	"flag"
	"fmt"
	"io"
)

// State represents the shared state for a command execution. It tracks the chain of commands
// selected during parsing so that child commands can access global flags defined in parent
// commands. Use [GetFlag] to retrieve flag values by name.
type State struct {
	// Args contains the remaining arguments after flag parsing.
	Args []string

	// Standard I/O streams.
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	commandPath []*Command
	interactive bool
}

// GetFlag retrieves a flag value by name, with type inference. It walks the selected command
// path from the terminal command up to the root, allowing access to parent command flags.
// Example usage:
//
//	verbose := GetFlag[bool](state, "verbose")
//	count := GetFlag[int](state, "count")
//	path := GetFlag[string](state, "path")
//
// If the flag isn't found, it panics with a detailed error message.
//
// Why panic? Because if a flag is missing, it's likely a programming error or a missing flag
// definition, and it's better to fail LOUD and EARLY than to silently ignore the issue and cause
// unexpected behavior.
func GetFlag[T any](s *State, name string) T {
	for i := len(s.commandPath) - 1; i >= 0; i-- {
		cmd := s.commandPath[i]
		if cmd.Flags == nil {
			continue
		}
		f := cmd.Flags.Lookup(name)
		if f == nil {
			continue
		}
		if getter, ok := f.Value.(flag.Getter); ok {
			value := getter.Get()
			if v, ok := value.(T); ok {
				return v
			}
			// Flag exists but type doesn't match - this is an internal error
			panic(fmt.Errorf("internal error: type mismatch for flag %q in command %q: registered %T, requested %T",
				formatFlagName(name), cmd.Name, value, *new(T)))
		}
	}
	// If flag not found anywhere in hierarchy, panic with helpful message
	cmdName := ""
	if len(s.commandPath) > 0 {
		cmdName = s.commandPath[len(s.commandPath)-1].Name
	}
	panic(fmt.Errorf("internal error: flag %q not found in command %q flag set", formatFlagName(name), cmdName))
}

// Interactive reports whether the command may prompt the user.
func (s *State) Interactive() bool { return s.interactive }

func (s *State) terminal() *Command {
	if len(s.commandPath) == 0 {
		return nil
	}
	return s.commandPath[len(s.commandPath)-1]
}

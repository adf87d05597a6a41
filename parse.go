package console

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mfridman/xflag"
)

// Parse traverses the command hierarchy and parses arguments. It returns an error if parsing fails
// at any point.
//
// This function is the main entry point for parsing command-line arguments and should be called
// with the root command and the arguments to parse, typically os.Args[1:]. Once parsing is
// complete, the root command is ready to be executed with the [Run] function.
func Parse(root *Command, args []string) error {
	if root == nil {
		return fmt.Errorf("failed to parse: root command is nil")
	}
	if err := validateCommands(root, nil); err != nil {
		return fmt.Errorf("failed to parse: %w", err)
	}

	// Every command in the selected path shares one state, reset on each parse.
	state := &State{}
	root.state = state
	if root.Flags == nil {
		root.Flags = flag.NewFlagSet(root.Name, flag.ContinueOnError)
	}

	// First split args at the -- delimiter if present
	var argsToParse []string
	var remainingArgs []string
	for i, arg := range args {
		if arg == "--" {
			argsToParse = args[:i]
			remainingArgs = args[i+1:]
			break
		}
	}
	if argsToParse == nil {
		argsToParse = args
	}

	current := root
	commandChain := []*Command{root}
	state.commandPath = commandChain

	// First pass: process commands and build the flag set. This lets us capture help requests
	// before any flag parsing errors
	for _, arg := range argsToParse {
		if arg == "-h" || arg == "--h" || arg == "-help" || arg == "--help" {
			return current.showHelp()
		}

		// Skip anything that looks like a flag
		if strings.HasPrefix(arg, "-") {
			continue
		}

		// Try to traverse to subcommand
		if len(current.SubCommands) > 0 {
			if sub := current.findSubCommand(arg); sub != nil {
				if sub.Flags == nil {
					sub.Flags = flag.NewFlagSet(sub.Name, flag.ContinueOnError)
				}
				sub.state = state
				current = sub
				commandChain = append(commandChain, sub)
				state.commandPath = commandChain
				continue
			}
			return NewError(ErrInvalidInput, current.formatUnknownCommandError(arg))
		}
		break
	}

	// Options left over from an earlier parse, including a failed one, must not leak in.
	for _, cmd := range commandChain {
		resetOptions(cmd.Flags)
	}

	// Create combined flags with all parent flags, added in reverse order for proper precedence
	combinedFlags := flag.NewFlagSet(root.Name, flag.ContinueOnError)
	combinedFlags.SetOutput(io.Discard)
	for _, cmd := range slices.Backward(commandChain) {
		cmd.Flags.VisitAll(func(f *flag.Flag) {
			if combinedFlags.Lookup(f.Name) == nil {
				combinedFlags.Var(f.Value, f.Name, f.Usage)
			}
		})
	}

	// Let ParseToEnd handle the flag parsing
	if err := xflag.ParseToEnd(combinedFlags, argsToParse); err != nil {
		return NewError(ErrInvalidInput, fmt.Errorf("command %q: %w", current.Name, err))
	}

	if err := checkRequiredFlags(current, combinedFlags, argsToParse); err != nil {
		return err
	}

	if current.Exec == nil && len(current.SubCommands) == 0 {
		return &NoExecError{Command: current}
	}

	// Skip past command names in remaining args from flag parsing
	parsed := combinedFlags.Args()
	startIdx := 0
	for _, arg := range parsed {
		isCommand := false
		for _, cmd := range commandChain {
			if arg == cmd.Name {
				startIdx++
				isCommand = true
				break
			}
		}
		if !isCommand {
			break
		}
	}

	// Combine remaining parsed args and everything after delimiter
	var finalArgs []string
	if startIdx < len(parsed) {
		finalArgs = append(finalArgs, parsed[startIdx:]...)
	}
	if len(remainingArgs) > 0 {
		finalArgs = append(finalArgs, remainingArgs...)
	}
	state.Args = finalArgs

	return nil
}

// checkRequiredFlags inspects the raw args for every flag marked as required in the terminal
// command's metadata.
func checkRequiredFlags(current *Command, combinedFlags *flag.FlagSet, args []string) error {
	var missingFlags []string
	for _, flagMetadata := range current.FlagsMetadata {
		if !flagMetadata.Required {
			continue
		}
		if combinedFlags.Lookup(flagMetadata.Name) == nil {
			return fmt.Errorf("command %q: internal error: required flag %s not found in flag set",
				current.Name, formatFlagName(flagMetadata.Name))
		}

		found := false
		for _, arg := range args {
			// Match either -flag or --flag
			if arg == "-"+flagMetadata.Name || arg == "--"+flagMetadata.Name ||
				strings.HasPrefix(arg, "-"+flagMetadata.Name+"=") ||
				strings.HasPrefix(arg, "--"+flagMetadata.Name+"=") {
				found = true
				break
			}
		}
		if !found {
			missingFlags = append(missingFlags, formatFlagName(flagMetadata.Name))
		}
	}
	if len(missingFlags) > 0 {
		return fmt.Errorf("command %q: required flags %q not set",
			getCommandPath(current.state.commandPath), strings.Join(missingFlags, ", "))
	}
	return nil
}

func validateCommands(root *Command, path []string) error {
	if root.Name == "" {
		if len(path) == 0 {
			return errors.New("root command has no name")
		}
		return fmt.Errorf("subcommand in path %q has no name", strings.Join(path, " "))
	}
	// Ensure name has no spaces
	if strings.Contains(root.Name, " ") {
		return fmt.Errorf("command name %q contains spaces, must be a single word", root.Name)
	}

	// Add current command to path for nested validation
	currentPath := append(slices.Clip(path), root.Name)

	// Recursively validate all subcommands
	for _, sub := range root.SubCommands {
		if err := validateCommands(sub, currentPath); err != nil {
			return err
		}
	}
	return nil
}

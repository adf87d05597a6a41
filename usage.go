package console

import (
	"cmp"
	"flag"
	"fmt"
	"slices"
	"strings"

	"github.com/mfridman/console/pkg/textutil"
)

// DefaultUsage renders the help text of the command selected by the last [Parse] call, or of c
// itself when it has not been parsed.
func DefaultUsage(c *Command) string {
	if c == nil {
		return ""
	}

	// Get terminal command from state
	terminalCmd, state := c.terminal()

	if terminalCmd.UsageFunc != nil {
		return terminalCmd.UsageFunc(terminalCmd)
	}

	var b strings.Builder

	if terminalCmd.ShortHelp != "" {
		for _, line := range textutil.Wrap(terminalCmd.ShortHelp, 80) {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	var def *Definition
	if terminalCmd.invokable != nil {
		def = terminalCmd.invokable.definition
	}

	b.WriteString("Usage:\n")
	if terminalCmd.Usage != "" {
		b.WriteString("  " + terminalCmd.Usage + "\n")
	} else {
		usage := terminalCmd.Name
		if state != nil && len(state.commandPath) > 0 {
			usage = getCommandPath(state.commandPath)
		}
		if terminalCmd.Flags != nil {
			usage += " [flags]"
		}
		for _, a := range def.Arguments() {
			usage += " " + argumentSynopsis(a)
		}
		if len(terminalCmd.SubCommands) > 0 {
			usage += " <command>"
		}
		b.WriteString("  " + usage + "\n")
	}
	b.WriteString("\n")

	if args := def.Arguments(); len(args) > 0 {
		rows := make([]usageRow, 0, len(args))
		for _, a := range args {
			description := a.Description
			if a.Default != nil && !isEmptyValue(a.Default) {
				description += fmt.Sprintf(" (default: %v)", a.Default)
			}
			if len(a.Suggestions) > 0 {
				description += fmt.Sprintf(" (one of: %s)", strings.Join(a.Suggestions, ", "))
			}
			rows = append(rows, usageRow{name: a.Name, text: strings.TrimSpace(description)})
		}
		b.WriteString("Arguments:\n")
		writeRows(&b, rows)
		b.WriteString("\n")
	}

	if len(terminalCmd.SubCommands) > 0 {
		b.WriteString("Available Commands:\n")
		sortedCommands := slices.Clone(terminalCmd.SubCommands)
		slices.SortFunc(sortedCommands, func(a, b *Command) int {
			return cmp.Compare(a.Name, b.Name)
		})
		rows := make([]usageRow, 0, len(sortedCommands))
		for _, sub := range sortedCommands {
			rows = append(rows, usageRow{name: sub.Name, text: sub.ShortHelp})
		}
		writeRows(&b, rows)
		b.WriteString("\n")
	}

	var flags []flagInfo
	if state != nil {
		for i, cmd := range state.commandPath {
			if cmd.Flags == nil {
				continue
			}
			flags = append(flags, commandFlags(cmd, i < len(state.commandPath)-1)...)
		}
	} else if terminalCmd.Flags != nil {
		flags = commandFlags(terminalCmd, false)
	}

	if len(flags) > 0 {
		slices.SortFunc(flags, func(a, b flagInfo) int {
			return cmp.Compare(a.name, b.name)
		})

		hasLocal := false
		hasGlobal := false
		for _, f := range flags {
			if f.global {
				hasGlobal = true
			} else {
				hasLocal = true
			}
		}

		if hasLocal {
			b.WriteString("Flags:\n")
			writeFlagSection(&b, flags, false)
			b.WriteString("\n")
		}

		if hasGlobal {
			b.WriteString("Global Flags:\n")
			writeFlagSection(&b, flags, true)
			b.WriteString("\n")
		}
	}

	if len(terminalCmd.SubCommands) > 0 {
		cmdName := terminalCmd.Name
		if state != nil && len(state.commandPath) > 0 {
			cmdName = getCommandPath(state.commandPath)
		}
		fmt.Fprintf(&b, "Use \"%s [command] --help\" for more information about a command.\n", cmdName)
	}

	return strings.TrimRight(b.String(), "\n")
}

func argumentSynopsis(a InputArgument) string {
	name := "<" + a.Name + ">"
	if a.IsArray {
		name += "..."
	}
	if !a.Required {
		name = "[" + name + "]"
	}
	return name
}

// commandFlags lists the flags of cmd. Option shortcuts of invokable commands are folded into
// their long name.
func commandFlags(cmd *Command, global bool) []flagInfo {
	shortcuts := make(map[string]string)
	if cmd.invokable != nil {
		for _, o := range cmd.invokable.definition.Options() {
			if o.Shortcut != "" {
				shortcuts[o.Shortcut] = o.Name
			}
		}
	}
	aliases := make(map[string]string, len(shortcuts))
	for short, long := range shortcuts {
		aliases[long] = short
	}

	var flags []flagInfo
	cmd.Flags.VisitAll(func(f *flag.Flag) {
		if _, ok := shortcuts[f.Name]; ok {
			return
		}
		name := formatFlagName(f.Name)
		if short, ok := aliases[f.Name]; ok {
			name = formatFlagName(short) + ", " + name
		}
		defval := f.DefValue
		if defval == "false" {
			defval = ""
		}
		flags = append(flags, flagInfo{
			name:   name,
			usage:  f.Usage,
			defval: defval,
			global: global,
		})
	})
	return flags
}

// writeFlagSection handles the formatting of flag descriptions
func writeFlagSection(b *strings.Builder, flags []flagInfo, global bool) {
	var rows []usageRow
	for _, f := range flags {
		if f.global != global {
			continue
		}
		description := f.usage
		if f.defval != "" {
			description += fmt.Sprintf(" (default: %s)", f.defval)
		}
		rows = append(rows, usageRow{name: f.name, text: description})
	}
	writeRows(b, rows)
}

type usageRow struct {
	name string
	text string
}

// writeRows writes name/description pairs with descriptions aligned and wrapped at 80 columns.
func writeRows(b *strings.Builder, rows []usageRow) {
	maxLen := 0
	for _, r := range rows {
		maxLen = max(maxLen, len(r.name))
	}
	nameWidth := maxLen + 4
	wrapWidth := 80 - nameWidth

	for _, r := range rows {
		if r.text == "" {
			fmt.Fprintf(b, "  %s\n", r.name)
			continue
		}
		lines := textutil.Wrap(r.text, wrapWidth)
		padding := strings.Repeat(" ", maxLen-len(r.name)+4)
		fmt.Fprintf(b, "  %s%s%s\n", r.name, padding, lines[0])

		indentPadding := strings.Repeat(" ", nameWidth+2)
		for _, line := range lines[1:] {
			fmt.Fprintf(b, "%s%s\n", indentPadding, line)
		}
	}
}

type flagInfo struct {
	name   string
	usage  string
	defval string
	global bool
}

package console

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
)

// ParseAndRun parses the command hierarchy and runs the command. A convenience function that
// combines [Parse] and [Run] into a single call. See [Parse] and [Run] for more details.
func ParseAndRun(
	ctx context.Context,
	root *Command,
	args []string,
	options *RunOptions,
) error {
	if err := Parse(root, args); err != nil {
		return err
	}
	return Run(ctx, root, options)
}

// RunOptions specifies options for running a command.
type RunOptions struct {
	// Stdin, Stdout, and Stderr are the standard input, output, and error streams for the command.
	// If any of these are nil, the command will use the default streams ([os.Stdin], [os.Stdout],
	// and [os.Stderr], respectively).
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// NoInteraction disables prompting, even on a terminal.
	NoInteraction bool
	// Interactive enables prompting when Stdin is not a terminal, for example in tests.
	Interactive bool
}

// Run executes the current command. It returns an error if the command has not been parsed or if
// the command has no execution function.
//
// The options parameter may be nil, in which case default values are used. See [RunOptions] for
// more details.
//
// While an invokable command runs, the signals its owner subscribes to are forwarded to it. A
// handler asking to exit cancels the context passed to Exec and Run returns an [ExitError].
// The previous exit code handed to the first HandleSignal call of each Run is 0. Once a handler
// has asked to exit, its ExitError replaces whatever Exec returns, including an error.
func Run(ctx context.Context, root *Command, options *RunOptions) error {
	if root == nil || root.state == nil || len(root.state.commandPath) == 0 {
		return errors.New("command has not been parsed")
	}
	options = checkAndSetRunOptions(options)
	selected, state := root.terminal()
	updateState(state, options)

	// A command with subcommands but no execution function prints help
	if selected.Exec == nil {
		if len(selected.SubCommands) > 0 {
			return selected.showHelp()
		}
		return &NoExecError{Command: selected}
	}

	ctx, stop := forwardSignals(ctx, selected)
	err := selected.Exec(ctx, state)
	var exitErr *ExitError
	if cause := context.Cause(ctx); errors.As(cause, &exitErr) {
		err = exitErr
	}
	stop()
	if err != nil {
		if cliErr := (*Error)(nil); errors.As(err, &cliErr) && cliErr.code == ErrShowHelp {
			_ = selected.showHelp()
		}
		return err
	}
	return nil
}

// forwardSignals relays the signals subscribed by an invokable command's owner until the
// returned stop function is called.
func forwardSignals(ctx context.Context, cmd *Command) (context.Context, func()) {
	if cmd.invokable == nil {
		return ctx, func() {}
	}
	sigs := cmd.invokable.SubscribedSignals()
	if len(sigs) == 0 {
		return ctx, func() {}
	}
	ctx, cancel := context.WithCancelCause(ctx)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)
	done := make(chan struct{})
	go func() {
		code := 0
		for {
			select {
			case sig := <-ch:
				var exit bool
				if code, exit = cmd.invokable.HandleSignal(sig, code); exit {
					cancel(&ExitError{Code: code})
					return
				}
			case <-done:
				return
			}
		}
	}()
	return ctx, func() {
		signal.Stop(ch)
		close(done)
		cancel(nil)
	}
}

func updateState(s *State, opt *RunOptions) {
	s.Stdin = opt.Stdin
	s.Stdout = opt.Stdout
	s.Stderr = opt.Stderr
	s.interactive = !opt.NoInteraction && (opt.Interactive || isTerminal(opt.Stdin))
}

func checkAndSetRunOptions(opt *RunOptions) *RunOptions {
	if opt == nil {
		opt = &RunOptions{}
	}
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	return opt
}

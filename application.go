package console

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Application groups invokable commands under a root command and turns their outcome into a
// process exit code.
type Application struct {
	name    string
	version string
	logger  logrus.FieldLogger

	resolvers []ValueResolver
	named     ResolverLocator
	arguments *ArgumentResolver

	root *Command
}

// AppOption configures an [Application].
type AppOption func(*Application)

// WithLogger sets the logger. Resolution attempts are logged at debug level and command
// failures at error level.
func WithLogger(l logrus.FieldLogger) AppOption {
	return func(a *Application) { a.logger = l }
}

// WithResolvers replaces the default value resolver chain. Order is precedence.
func WithResolvers(resolvers ...ValueResolver) AppOption {
	return func(a *Application) { a.resolvers = resolvers }
}

// WithNamedResolvers sets the locator used for members pinned with [UseResolver]. By default
// the resolvers of the chain are available under their names.
func WithNamedResolvers(l ResolverLocator) AppOption {
	return func(a *Application) { a.named = l }
}

// WithVersion sets the version printed by the root -version flag.
func WithVersion(v string) AppOption {
	return func(a *Application) { a.version = v }
}

// NewApplication returns an application whose root command is named name.
func NewApplication(name string, opts ...AppOption) *Application {
	a := &Application{name: name}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = discardLogger()
	}
	if a.resolvers == nil {
		a.resolvers = DefaultResolvers()
	}
	if a.named == nil {
		a.named = NewResolverMap(a.resolvers...)
	}
	a.arguments = NewArgumentResolver(a.resolvers, a.named, a.logger)

	a.root = &Command{
		Name: name,
		Flags: FlagsFunc(func(f *flag.FlagSet) {
			f.Bool("version", false, "print the version and exit")
		}),
	}
	a.root.Exec = func(ctx context.Context, s *State) error {
		if GetFlag[bool](s, "version") {
			_, err := fmt.Fprintf(s.Stdout, "%s %s\n", a.name, a.Version())
			return err
		}
		return a.root.showHelp()
	}
	return a
}

// Name returns the application name.
func (a *Application) Name() string { return a.name }

// Version returns the configured version, or "dev".
func (a *Application) Version() string {
	if a.version == "" {
		return "dev"
	}
	return a.version
}

// Root returns the root command.
func (a *Application) Root() *Command { return a.root }

// ArgumentResolver returns the resolver shared by the application's invokable commands.
func (a *Application) ArgumentResolver() *ArgumentResolver { return a.arguments }

// Add registers invokable commands under the root command. They use the application's
// argument resolver.
func (a *Application) Add(commands ...*InvokableCommand) *Application {
	for _, c := range commands {
		c.app = a
		c.resolver = a.arguments
		a.root.SubCommands = append(a.root.SubCommands, c.Command())
	}
	return a
}

// AddCommand registers plain commands under the root command.
func (a *Application) AddCommand(commands ...*Command) *Application {
	a.root.SubCommands = append(a.root.SubCommands, commands...)
	return a
}

// Run parses args, runs the selected command and returns the process exit code: the command's
// own status on success or [ExitError], 0 for help requests, 2 for invalid input and 1 for any
// other failure. Errors are printed to Stderr.
func (a *Application) Run(ctx context.Context, args []string, options *RunOptions) int {
	options = checkAndSetRunOptions(options)
	setFlagOutput(a.root, options.Stderr)

	err := ParseAndRun(ctx, a.root, args, options)
	if err == nil {
		return 0
	}
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	a.logger.WithError(err).WithField("args", args).Error("command failed")
	errOut := NewStreamOutput(options.Stderr)
	_ = NewStyle(errOut).Error(err.Error())
	if isInputError(err) {
		return 2
	}
	return 1
}

// Main runs the application with the process arguments and exits.
func (a *Application) Main(ctx context.Context) {
	os.Exit(a.Run(ctx, os.Args[1:], nil))
}

func isInputError(err error) bool {
	var invalid *InvalidInputError
	if errors.As(err, &invalid) {
		return true
	}
	var cliErr *Error
	return errors.As(err, &cliErr) && cliErr.Code() == ErrInvalidInput
}

func setFlagOutput(c *Command, w io.Writer) {
	if c.Flags == nil {
		c.Flags = flag.NewFlagSet(c.Name, flag.ContinueOnError)
	}
	c.Flags.SetOutput(w)
	for _, sub := range c.SubCommands {
		setFlagOutput(sub, w)
	}
}

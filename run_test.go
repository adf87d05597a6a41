package console

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("parse and run", func(t *testing.T) {
		t.Parallel()
		var count int

		root := &Command{
			Name:  "tasks",
			Usage: "tasks [flags] [command]",
			Flags: FlagsFunc(func(fset *flag.FlagSet) {
				fset.Bool("dry-run", false, "dry run")
			}),
			SubCommands: []*Command{
				{
					Name:  "version",
					Usage: "show version",
					Exec: func(ctx context.Context, s *State) error {
						_, _ = s.Stdout.Write([]byte("1.0.0\n"))
						return nil
					},
				},
			},
			Exec: func(ctx context.Context, s *State) error {
				if GetFlag[bool](s, "dry-run") {
					return nil
				}
				count++
				return nil
			},
		}

		output := bytes.NewBuffer(nil)
		err := ParseAndRun(context.Background(), root, []string{"version"}, &RunOptions{
			Stdout: output,
		})
		require.NoError(t, err)
		require.Equal(t, "1.0.0\n", output.String())

		for range 3 {
			require.NoError(t, ParseAndRun(context.Background(), root, nil, nil))
		}
		require.Equal(t, 3, count)
		require.NoError(t, ParseAndRun(context.Background(), root, []string{"--dry-run"}, nil))
		require.Equal(t, 3, count)
	})
	t.Run("typo suggestion", func(t *testing.T) {
		t.Parallel()
		root := &Command{
			Name: "tasks",
			SubCommands: []*Command{
				{Name: "version", Exec: func(ctx context.Context, s *State) error { return nil }},
			},
			Exec: func(ctx context.Context, s *State) error { return nil },
		}

		err := ParseAndRun(context.Background(), root, []string{"verzion"}, nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), `unknown command "verzion". Did you mean one of these?`)
		require.Contains(t, err.Error(), "\tversion")
	})
	t.Run("not parsed", func(t *testing.T) {
		t.Parallel()
		err := Run(context.Background(), &Command{Name: "tasks"}, nil)
		require.EqualError(t, err, "command has not been parsed")
	})
	t.Run("group without exec shows help", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		root := &Command{
			Name:  "tasks",
			Flags: flag.NewFlagSet("tasks", flag.ContinueOnError),
			SubCommands: []*Command{
				{Name: "list", ShortHelp: "List tasks", Exec: func(ctx context.Context, s *State) error { return nil }},
			},
		}
		root.Flags.SetOutput(&buf)
		require.NoError(t, Parse(root, nil))
		err := Run(context.Background(), root, &RunOptions{Stdout: io.Discard})
		require.ErrorIs(t, err, flag.ErrHelp)
		assert.Contains(t, buf.String(), "Available Commands:\n  list    List tasks")
	})
	t.Run("show help error code", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		root := &Command{
			Name:  "tasks",
			Flags: flag.NewFlagSet("tasks", flag.ContinueOnError),
			Exec: func(ctx context.Context, s *State) error {
				return NewError(ErrShowHelp, io.ErrUnexpectedEOF)
			},
		}
		root.Flags.SetOutput(&buf)
		err := ParseAndRun(context.Background(), root, nil, &RunOptions{Stdout: io.Discard})
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.Contains(t, buf.String(), "Usage:\n  tasks [flags]")
	})
	t.Run("streams reach the command", func(t *testing.T) {
		t.Parallel()
		var stdout, stderr bytes.Buffer
		root := &Command{
			Name: "tasks",
			Exec: func(ctx context.Context, s *State) error {
				_, _ = io.WriteString(s.Stdout, "out\n")
				_, _ = io.WriteString(s.Stderr, "err\n")
				assert.False(t, s.Interactive())
				return nil
			},
		}
		err := ParseAndRun(context.Background(), root, nil, &RunOptions{Stdout: &stdout, Stderr: &stderr, NoInteraction: true})
		require.NoError(t, err)
		assert.Equal(t, "out\n", stdout.String())
		assert.Equal(t, "err\n", stderr.String())
	})
}

type stopOnSignal struct {
	received chan os.Signal
}

func (s *stopOnSignal) SubscribedSignals() []os.Signal { return []os.Signal{syscall.SIGUSR2} }

func (s *stopOnSignal) HandleSignal(sig os.Signal, previous int) (int, bool) {
	s.received <- sig
	return 9, true
}

func TestRunForwardsSignals(t *testing.T) {
	t.Parallel()

	// Subtests share SIGUSR2 and run one after another.
	run := func(t *testing.T, fn any, params ...Member) (*stopOnSignal, error) {
		t.Helper()
		owner := &stopOnSignal{received: make(chan os.Signal, 1)}
		cmd := MustInvokable("wait", owner, fn, params...)
		err := ParseAndRun(context.Background(), cmd.Command(), nil, &RunOptions{Stdout: io.Discard, NoInteraction: true})
		return owner, err
	}
	waitForSignal := func(ctx context.Context) int {
		if err := syscall.Kill(os.Getpid(), syscall.SIGUSR2); err != nil {
			return 1
		}
		select {
		case <-ctx.Done():
			return 0
		case <-time.After(5 * time.Second):
			return 2
		}
	}

	t.Run("handler exit code", func(t *testing.T) {
		owner, err := run(t, waitForSignal, Param[context.Context]("ctx"))
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 9, exitErr.Code)
		assert.Equal(t, syscall.SIGUSR2, <-owner.received)
	})
	t.Run("handler exit replaces command error", func(t *testing.T) {
		_, err := run(t, func(ctx context.Context) (int, error) {
			if code := waitForSignal(ctx); code != 0 {
				return code, nil
			}
			return 1, errors.New("interrupted")
		}, Param[context.Context]("ctx"))
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 9, exitErr.Code)
		assert.NotContains(t, err.Error(), "interrupted")
	})
}

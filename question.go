package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ErrNoAnswer is returned when input ends before a question is answered.
var ErrNoAnswer = errors.New("aborted: no answer")

// Question is a prompt presented to the user.
type Question struct {
	Text    string
	Default string
	// Hidden answers are not echoed when reading from a terminal.
	Hidden bool
	// Choices restricts answers to one of the values. A choice may also be picked by its
	// index.
	Choices []string
	// MaxAttempts bounds re-prompting after an invalid choice. Zero means 3.
	MaxAttempts int
}

// QuestionHelper asks questions on an output and reads answers from an input stream.
type QuestionHelper struct {
	in     io.Reader
	reader *bufio.Reader
}

// NewQuestionHelper returns a helper reading answers from in.
func NewQuestionHelper(in io.Reader) *QuestionHelper {
	return &QuestionHelper{in: in, reader: bufio.NewReader(in)}
}

// Ask prompts for q and returns the answer, or q.Default when the answer is empty.
func (h *QuestionHelper) Ask(ctx context.Context, out Output, q Question) (string, error) {
	attempts := q.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	var lastErr error
	for range attempts {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := h.prompt(out, q); err != nil {
			return "", err
		}
		answer, err := h.read(out, q.Hidden)
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = q.Default
		}
		if len(q.Choices) == 0 {
			return answer, nil
		}
		choice, err := pickChoice(answer, q.Choices)
		if err == nil {
			return choice, nil
		}
		lastErr = err
		if werr := out.Writeln(" " + err.Error()); werr != nil {
			return "", werr
		}
	}
	return "", lastErr
}

func (h *QuestionHelper) prompt(out Output, q Question) error {
	var b strings.Builder
	b.WriteString(" " + q.Text)
	if q.Default != "" {
		fmt.Fprintf(&b, " [%s]", q.Default)
	}
	b.WriteString(":\n")
	for i, c := range q.Choices {
		fmt.Fprintf(&b, "  [%d] %s\n", i, c)
	}
	b.WriteString(" > ")
	_, err := io.WriteString(out, b.String())
	return err
}

func (h *QuestionHelper) read(out Output, hidden bool) (string, error) {
	if hidden {
		if f, ok := h.in.(interface{ Fd() uintptr }); ok && term.IsTerminal(int(f.Fd())) {
			b, err := term.ReadPassword(int(f.Fd()))
			_ = out.Writeln()
			if err != nil {
				return "", fmt.Errorf("read hidden answer: %w", err)
			}
			return strings.TrimSpace(string(b)), nil
		}
	}
	line, err := h.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoAnswer
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func pickChoice(answer string, choices []string) (string, error) {
	if slices.Contains(choices, answer) {
		return answer, nil
	}
	if i, err := strconv.Atoi(answer); err == nil && i >= 0 && i < len(choices) {
		return choices[i], nil
	}
	return "", fmt.Errorf("value %q is invalid, choose one of %s", answer, quoteJoin(choices))
}

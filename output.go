package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Output is the line-oriented sink commands write to.
type Output interface {
	io.Writer
	// Writeln writes each message followed by a newline.
	Writeln(messages ...string) error
	// IsDecorated reports whether the output supports ANSI styling.
	IsDecorated() bool
}

// StreamOutput is an [Output] over an io.Writer.
type StreamOutput struct {
	w         io.Writer
	decorated bool
}

var _ Output = (*StreamOutput)(nil)

// NewStreamOutput returns an output writing to w. Decoration is enabled when w is a terminal
// and NO_COLOR is unset.
func NewStreamOutput(w io.Writer) *StreamOutput {
	return &StreamOutput{w: w, decorated: isTerminal(w) && os.Getenv("NO_COLOR") == ""}
}

// SetDecorated overrides terminal detection.
func (o *StreamOutput) SetDecorated(decorated bool) { o.decorated = decorated }

func (o *StreamOutput) IsDecorated() bool { return o.decorated }

func (o *StreamOutput) Write(p []byte) (int, error) { return o.w.Write(p) }

func (o *StreamOutput) Writeln(messages ...string) error {
	if len(messages) == 0 {
		_, err := io.WriteString(o.w, "\n")
		return err
	}
	var b strings.Builder
	for _, m := range messages {
		b.WriteString(m)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(o.w, b.String())
	return err
}

// Printf formats according to a format specifier and writes to the output.
func (o *StreamOutput) Printf(format string, args ...any) {
	fmt.Fprintf(o.w, format, args...)
}

func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Style writes semantic, styled blocks (titles, listings, status messages) to an [Output].
// Colors are used only when the output is decorated.
type Style struct {
	out Output

	title   lipgloss.Style
	section lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	note    lipgloss.Style
	muted   lipgloss.Style
}

// NewStyle returns a Style writing to out.
func NewStyle(out Output) *Style {
	r := lipgloss.NewRenderer(out)
	if out.IsDecorated() {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Style{
		out:     out,
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		section: r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		warning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		err:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		note:    r.NewStyle().Foreground(lipgloss.Color("3")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Output returns the underlying output.
func (s *Style) Output() Output { return s.out }

// Title writes an underlined title followed by a blank line.
func (s *Style) Title(message string) error {
	return s.out.Writeln(
		s.title.Render(message),
		s.title.Render(strings.Repeat("=", lipgloss.Width(message))),
		"",
	)
}

// Section writes an underlined section header followed by a blank line.
func (s *Style) Section(message string) error {
	return s.out.Writeln(
		s.section.Render(message),
		s.section.Render(strings.Repeat("-", lipgloss.Width(message))),
		"",
	)
}

// Text writes each message indented by one space.
func (s *Style) Text(messages ...string) error {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, " "+m)
	}
	return s.out.Writeln(lines...)
}

// Comment writes muted text.
func (s *Style) Comment(message string) error {
	return s.out.Writeln(" " + s.muted.Render("// "+message))
}

// Listing writes a bulleted list followed by a blank line.
func (s *Style) Listing(items ...string) error {
	lines := make([]string, 0, len(items)+1)
	for _, it := range items {
		lines = append(lines, " * "+it)
	}
	lines = append(lines, "")
	return s.out.Writeln(lines...)
}

func (s *Style) Success(message string) error { return s.block(s.success, "[OK]", message) }
func (s *Style) Warning(message string) error { return s.block(s.warning, "[WARNING]", message) }
func (s *Style) Error(message string) error   { return s.block(s.err, "[ERROR]", message) }
func (s *Style) Note(message string) error    { return s.block(s.note, "! [NOTE]", message) }

func (s *Style) block(style lipgloss.Style, label, message string) error {
	lines := strings.Split(message, "\n")
	prefix := strings.Repeat(" ", len(label)+1)
	out := make([]string, 0, len(lines)+1)
	for i, line := range lines {
		if i == 0 {
			out = append(out, style.Render(label+" "+line))
			continue
		}
		out = append(out, style.Render(prefix+line))
	}
	out = append(out, "")
	return s.out.Writeln(out...)
}

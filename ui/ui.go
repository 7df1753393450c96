package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	isTTY bool

	cyan   = lipgloss.Color("6")
	green  = lipgloss.Color("2")
	red    = lipgloss.Color("1")
	yellow = lipgloss.Color("3")
	dim    = lipgloss.Color("8")

	// Styles - exported for use in other packages
	Primary = lipgloss.NewStyle().Foreground(cyan)
	Success = lipgloss.NewStyle().Foreground(green)
	Error   = lipgloss.NewStyle().Foreground(red)
	Warning = lipgloss.NewStyle().Foreground(yellow)
	Dim     = lipgloss.NewStyle().Foreground(dim)
)

func init() {
	isTTY = term.IsTerminal(int(os.Stdout.Fd()))
	if !isTTY {
		// Disable colors in non-TTY
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// IsTTY returns whether stdout is a terminal
func IsTTY() bool {
	return isTTY
}

// Printer writes user-facing output. Verbose output is gated per printer,
// so every component receives the setting from its caller.
type Printer struct {
	w       io.Writer
	verbose bool
}

// New returns a printer writing to w. A nil writer means stdout.
func New(w io.Writer, verbose bool) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{w: w, verbose: verbose}
}

// Discard returns a printer that drops everything.
func Discard() *Printer {
	return &Printer{w: io.Discard}
}

// Banner prints the bold yellow tool name
func (p *Printer) Banner(name string) {
	fmt.Fprintln(p.w, Warning.Bold(true).Render(name))
}

// Detail prints indented secondary info with arrow
func (p *Printer) Detail(msg string) {
	fmt.Fprintf(p.w, "  %s %s\n", Dim.Render("→"), msg)
}

// Verbose prints a message only in verbose mode (indented)
func (p *Printer) Verbose(msg string) {
	if p.verbose {
		fmt.Fprintf(p.w, " %s\n", msg)
	}
}

// Verbosef prints a formatted message only in verbose mode
func (p *Printer) Verbosef(format string, a ...any) {
	if p.verbose {
		p.Verbose(fmt.Sprintf(format, a...))
	}
}

// VerboseDim prints dimmed output only in verbose mode, e.g. captured command output
func (p *Printer) VerboseDim(msg string) {
	if p.verbose && msg != "" {
		p.Verbose(Dim.Render(msg))
	}
}

// SuccessMsg prints a success message with checkmark
func (p *Printer) SuccessMsg(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", Success.Render("✓"), msg)
}

// ErrorMsg prints an error with formatting and optional hints
func (p *Printer) ErrorMsg(title string, err error, hints ...string) {
	fmt.Fprintf(p.w, "%s %s\n", Error.Render("✗"), Error.Render(title))
	if err != nil {
		fmt.Fprintf(p.w, "  %s\n", Error.Render(err.Error()))
	}
	for _, hint := range hints {
		fmt.Fprintf(p.w, "  %s %s\n", Dim.Render("Hint:"), hint)
	}
}

// WarnMsg prints a warning message
func (p *Printer) WarnMsg(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", Warning.Render("!"), Warning.Render(msg))
}

// Println is a simple wrapper for fmt.Fprintln
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// FormatDuration formats duration nicely (e.g., "234ms" or "1.2s")
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// Plural returns word with an "s" appended unless n is 1
func Plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

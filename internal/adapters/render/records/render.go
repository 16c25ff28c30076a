package records

import (
	"io"

	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/charmbracelet/x/term"
)

// Render lays out a record list for out. Unless opts.Width is set, messages
// wrap to the terminal out is attached to, and stay unwrapped otherwise.
func Render(out io.Writer, entries []domain.Entry, opts RenderOptions) string {
	if opts.Width == 0 {
		opts.Width = TerminalWidth(out)
	}

	return View(entries, opts, NewStyles())
}

// TerminalWidth reports the column count of out, or 0 when out is not a
// terminal.
func TerminalWidth(out io.Writer) int {
	f, ok := out.(interface{ Fd() uintptr })
	if !ok || !term.IsTerminal(f.Fd()) {
		return 0
	}

	width, _, err := term.GetSize(f.Fd())
	if err != nil {
		return 0
	}

	return width
}

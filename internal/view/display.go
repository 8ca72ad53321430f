// Package view renders contact lists as plain text, styled terminal output,
// or an interactive Bubble Tea browser.
package view

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/contactbook/internal/contact"
)

// Display renders a contact list.
type Display interface {
	Render(contacts []contact.Contact) error
}

// Options configures display creation.
type Options struct {
	Writer     io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force plain text even if TTY.
}

// NewDisplay returns a styled display when the writer is a TTY, or a plain
// text display otherwise. ForcePlain overrides TTY detection.
func NewDisplay(opts Options) Display {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.ForcePlain || !IsTTY(opts.Writer) {
		return &PlainDisplay{w: opts.Writer}
	}
	return &StyledDisplay{w: opts.Writer}
}

// IsTTY reports whether w is connected to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainDisplay writes one tab-separated line per contact.
type PlainDisplay struct {
	w io.Writer
}

// Render prints "first\tlast\tphone" lines in store order.
func (d *PlainDisplay) Render(contacts []contact.Contact) error {
	for _, c := range contacts {
		if _, err := fmt.Fprintf(d.w, "%s\t%s\t%s\n", c.FirstName, c.LastName, c.PhoneNumber); err != nil {
			return fmt.Errorf("view: writing: %w", err)
		}
	}
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
	phoneStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"})
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
)

// StyledDisplay renders aligned, colored columns for terminals.
type StyledDisplay struct {
	w io.Writer
}

// Render prints a header, one padded row per contact, and a count footer.
func (d *StyledDisplay) Render(contacts []contact.Contact) error {
	if len(contacts) == 0 {
		_, err := fmt.Fprintln(d.w, dimStyle.Render("No contacts."))
		return err
	}

	firstW, lastW := len("FIRST"), len("LAST")
	for _, c := range contacts {
		firstW = max(firstW, lipgloss.Width(c.FirstName))
		lastW = max(lastW, lipgloss.Width(c.LastName))
	}
	cell := func(s string, w int) string {
		return s + strings.Repeat(" ", w-lipgloss.Width(s)+2)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(cell("FIRST", firstW)+cell("LAST", lastW)+"PHONE") + "\n")
	for _, c := range contacts {
		b.WriteString(cell(c.FirstName, firstW) + cell(c.LastName, lastW) + phoneStyle.Render(c.PhoneNumber) + "\n")
	}
	b.WriteString(dimStyle.Render(countLabel(len(contacts))) + "\n")

	if _, err := io.WriteString(d.w, b.String()); err != nil {
		return fmt.Errorf("view: writing: %w", err)
	}
	return nil
}

func countLabel(n int) string {
	if n == 1 {
		return "1 contact"
	}
	return fmt.Sprintf("%d contacts", n)
}

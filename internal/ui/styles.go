// Package ui renders ledger lines and messages for the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mdomi/timetracker/internal/entry"
	"github.com/mdomi/timetracker/internal/osutil"
)

// Styles contains the styles used for terminal output
type Styles struct {
	Date    lipgloss.Style
	Hours   lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Hint    lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultStyles returns the default styles bound to r
func DefaultStyles(r *lipgloss.Renderer) Styles {
	primary := lipgloss.Color("39")     // Cyan
	accent := lipgloss.Color("212")     // Pink
	muted := lipgloss.Color("240")      // Gray
	warning := lipgloss.Color("214")    // Orange
	errorColor := lipgloss.Color("196") // Red

	return Styles{
		Date:    r.NewStyle().Bold(true).Foreground(primary),
		Hours:   r.NewStyle().Foreground(accent),
		Error:   r.NewStyle().Bold(true).Foreground(errorColor),
		Warning: r.NewStyle().Foreground(warning),
		Hint:    r.NewStyle().Italic(true).Foreground(muted),
		Muted:   r.NewStyle().Foreground(muted),
	}
}

// Printer writes output, styled when the destination supports it
type Printer struct {
	w      io.Writer
	styled bool
	styles Styles
}

// NewPrinter returns a printer for w. mode is "always", "never" or
// "auto"; auto styles only when w is a terminal.
func NewPrinter(w io.Writer, mode string) *Printer {
	styled := mode == "always" || (mode == "auto" && osutil.IsTerminal(w))

	r := lipgloss.NewRenderer(w)
	if mode == "always" {
		r.SetColorProfile(termenv.ANSI256)
	}

	return &Printer{w: w, styled: styled, styles: DefaultStyles(r)}
}

// Styled reports whether the printer emits escape sequences
func (p *Printer) Styled() bool {
	return p.styled
}

func (p *Printer) render(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

// Println writes text followed by a newline
func (p *Printer) Println(text string) {
	_, _ = fmt.Fprintln(p.w, text)
}

// Line writes a ledger line. When styling is on, the date and hours
// columns are highlighted; the text itself is unchanged.
func (p *Printer) Line(line string) {
	fields := strings.SplitN(line, entry.Separator, 3)
	if !p.styled || len(fields) < 2 {
		p.Println(line)
		return
	}

	fields[0] = p.render(p.styles.Date, fields[0])
	fields[1] = p.render(p.styles.Hours, fields[1])
	p.Println(strings.Join(fields, entry.Separator))
}

// Error writes an "Error:" line, followed by optional details and hint lines
func (p *Printer) Error(message string, details error, hint string) {
	p.Println(p.render(p.styles.Error, "Error: "+message))
	if details != nil {
		p.Println(p.render(p.styles.Muted, fmt.Sprintf("Details: %v", details)))
	}
	if hint != "" {
		p.Println(p.render(p.styles.Hint, "Hint: "+hint))
	}
}

// Warning writes a "Warning:" line
func (p *Printer) Warning(message string) {
	p.Println(p.render(p.styles.Warning, "Warning: "+message))
}

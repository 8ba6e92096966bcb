// Package output writes the operator-facing progress lines of the release commands.
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes tagged status lines. Lines marked verbose are only shown
// when verbosity is enabled; errors and final instructions always are.
type Printer struct {
	out     io.Writer
	verbose bool

	info  *color.Color
	note  *color.Color
	fail  *color.Color
	plain *color.Color
}

// NewPrinter returns a printer writing to out.
func NewPrinter(out io.Writer, verbose bool) *Printer {
	return &Printer{
		out:     out,
		verbose: verbose,
		info:    color.New(color.FgGreen),
		note:    color.New(color.FgBlue),
		fail:    color.New(color.FgWhite, color.BgRed),
		plain:   color.New(),
	}
}

// Skip reports an excluded component.
func (p *Printer) Skip(component string) {
	p.verboseLine(p.info, "[SKIP] %s", component)
}

// Start reports that processing of a component begins.
func (p *Printer) Start(component string) {
	p.verboseLine(p.info, "[START] %s", component)
}

// Note writes a verbose diagnostic line.
func (p *Printer) Note(format string, args ...any) {
	p.verboseLine(p.note, format, args...)
}

// Done writes a [DONE] line.
func (p *Printer) Done(format string, args ...any) {
	p.line(p.info, "[DONE] "+format, args...)
}

// DoneVerbose writes a [DONE] line only in verbose mode.
func (p *Printer) DoneVerbose(format string, args ...any) {
	p.verboseLine(p.info, "[DONE] "+format, args...)
}

// Error writes an [ERROR] line.
func (p *Printer) Error(format string, args ...any) {
	p.line(p.fail, "[ERROR] "+format, args...)
}

// ComponentError writes an [ERROR][component] line.
func (p *Printer) ComponentError(component, format string, args ...any) {
	p.line(p.fail, "[ERROR][%s] "+format, append([]any{component}, args...)...)
}

// Warn writes a [WARN] line.
func (p *Printer) Warn(format string, args ...any) {
	p.line(p.note, "[WARN] "+format, args...)
}

// Info writes a highlighted line.
func (p *Printer) Info(format string, args ...any) {
	p.line(p.info, format, args...)
}

// Println writes an uncolored line.
func (p *Printer) Println(format string, args ...any) {
	p.line(p.plain, format, args...)
}

// Blank writes an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.out)
}

func (p *Printer) verboseLine(c *color.Color, format string, args ...any) {
	if !p.verbose {
		return
	}
	p.line(c, format, args...)
}

func (p *Printer) line(c *color.Color, format string, args ...any) {
	c.Fprintf(p.out, format, args...)
	fmt.Fprintln(p.out)
}

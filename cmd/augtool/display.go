package main

import (
	"fmt"
	"io"
	"os"
)

// ansi color codes, matching the teacher's cmd/rtk2go-test coloring
// convention (green for good frames, red for errors).
const (
	ansiReset = "\x1b[0m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiCyan  = "\x1b[36m"
	ansiGray  = "\x1b[90m"
)

// Printer writes diagnostic lines, honoring -t verbosity and -c/TTY
// color policy (§6: "color is on only for TTYs unless -c overrides").
type Printer struct {
	w       io.Writer
	color   bool
	verbose int
}

// NewPrinter builds a Printer writing to w. color is forced on when
// forceColor is set; otherwise it is auto-detected from w being a TTY.
func NewPrinter(w io.Writer, forceColor bool, verbosity int) *Printer {
	color := forceColor
	if !color {
		if f, ok := w.(*os.File); ok {
			color = isTerminal(f)
		}
	}
	return &Printer{w: w, color: color, verbose: verbosity}
}

func (p *Printer) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + ansiReset
}

// Good prints a line in the "frame accepted" color.
func (p *Printer) Good(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.paint(ansiGreen, fmt.Sprintf(format, args...)))
}

// Bad prints a line in the "frame rejected / decode error" color.
func (p *Printer) Bad(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.paint(ansiRed, fmt.Sprintf(format, args...)))
}

// Detail prints a line only at verbosity level >= 1 (the per-subtype
// detail -t 1 unlocks).
func (p *Printer) Detail(format string, args ...interface{}) {
	if p.verbose < 1 {
		return
	}
	fmt.Fprintln(p.w, p.paint(ansiCyan, fmt.Sprintf(format, args...)))
}

// HexDump prints a bit-image hex dump only at verbosity level 2 (-t 2).
func (p *Printer) HexDump(label string, buf []byte) {
	if p.verbose < 2 {
		return
	}
	fmt.Fprint(p.w, p.paint(ansiGray, fmt.Sprintf("%s: % x\n", label, buf)))
}

// isTerminal reports whether f looks like a TTY, using the file mode's
// character-device bit. No pack example pulls in an isatty library for
// this, so it stays on the standard library per DESIGN.md.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

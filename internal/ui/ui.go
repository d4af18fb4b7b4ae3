// Package ui prints the status lines of the crudjen commands.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
	bold   = color.New(color.Bold)
)

// Printer writes status lines to an output stream.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Header prints a bold title line.
func (p *Printer) Header(format string, args ...any) {
	fmt.Fprintln(p.w, bold.Sprintf(format, args...))
}

// Created reports a written file.
func (p *Printer) Created(path string) {
	fmt.Fprintf(p.w, "%s Created %s\n", green.Sprint("✓"), path)
}

// Overwrite reports a file that already exists and will be replaced.
func (p *Printer) Overwrite(path string) {
	fmt.Fprintf(p.w, "  %s %s\n", yellow.Sprint("EXISTS"), path)
}

// Planned reports a file that would be written.
func (p *Printer) Planned(path string) {
	fmt.Fprintf(p.w, "  %s %s\n", green.Sprint("CREATE"), path)
}

// Route prints one registered route.
func (p *Printer) Route(method, path string) {
	fmt.Fprintf(p.w, "  %s %s\n", cyan.Sprintf("%-6s", method), path)
}

// Dump prints the full content of a file for dry runs.
func (p *Printer) Dump(path string, data []byte) {
	fmt.Fprintf(p.w, "--- %s ---\n", path)
	fmt.Fprintln(p.w, strings.TrimRight(string(data), "\n"))
	fmt.Fprintln(p.w)
}

// Println prints a plain line.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Confirm asks a yes/no question and reads the answer from r. Anything but
// y or yes is a no.
func (p *Printer) Confirm(r io.Reader, question string) bool {
	fmt.Fprintf(p.w, "%s [y/N] ", question)
	response, _ := bufio.NewReader(r).ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

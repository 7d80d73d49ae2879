package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jamesainslie/dstat/pkg/dstat/types"
)

// cellWidth is the right-aligned width of every count.
const cellWidth = 8

// columnHeaders are the short linear column names in column order.
var columnHeaders = [types.NumEntryTypes]string{
	"Regular", "Dir", "Link", "Block", "Char",
	"FIFO", "Socket", "WhtOut", "Unknown",
}

// border is "+---------" once per column, closed with "+".
var border = strings.Repeat("+"+strings.Repeat("-", cellWidth+1), types.NumEntryTypes) + "+\n"

// LinearFormatter renders a bordered single-row table.
type LinearFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *LinearFormatter) Format(w *bytes.Buffer, r *Result) error {
	if !r.Quiet {
		WriteLinearHeader(w, r.Paths)
	}
	WriteLinearRow(w, r.Tally, false)
	w.WriteString("\n")
	if !r.Quiet {
		WriteBorder(w)
	}
	return nil
}

// WriteBorder writes the decorative border line.
func WriteBorder(w *bytes.Buffer) {
	w.WriteString(border)
}

// WriteLinearHeader writes the directory list, then the boxed column
// headers between two borders.
func WriteLinearHeader(w *bytes.Buffer, paths []string) {
	writeDirectoryList(w, &Result{Paths: paths})
	WriteBorder(w)
	w.WriteString("|")
	for _, h := range columnHeaders {
		fmt.Fprintf(w, "%*s |", cellWidth, h)
	}
	w.WriteString("\n")
	WriteBorder(w)
}

// WriteLinearRow writes one boxed row of counts without a trailing
// newline. With inPlace set the row starts with a carriage return so it
// overwrites the previous row on a terminal.
func WriteLinearRow(w *bytes.Buffer, tally *types.Tally, inPlace bool) {
	if inPlace {
		w.WriteString("\r")
	}
	w.WriteString("|")
	r := Result{Tally: tally}
	for _, et := range types.EntryTypes() {
		fmt.Fprintf(w, "%*d |", cellWidth, r.count(et))
	}
}

func init() {
	Register(FormatLinear, func() Formatter {
		return &LinearFormatter{}
	})
}

// Ensure LinearFormatter implements Formatter.
var _ Formatter = (*LinearFormatter)(nil)

package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/jamesainslie/dstat/pkg/dstat/types"
)

// csvHeaders are the full column names in column order.
var csvHeaders = []string{
	"Regular", "Directory", "Link", "Block Special", "Character Special",
	"FIFO", "Socket", "White Out", "Unknown",
}

// CSVFormatter renders the directory list, a header row and a data row.
// Fields are quoted per RFC 4180 only when they contain a comma, quote or
// line break.
type CSVFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *CSVFormatter) Format(w *bytes.Buffer, r *Result) error {
	writer := csv.NewWriter(w)

	if !r.Quiet {
		if err := writer.Write([]string{r.directoryHeading()}); err != nil {
			return err
		}
		for _, p := range r.Paths {
			if err := writer.Write([]string{p}); err != nil {
				return err
			}
		}
		if err := writer.Write(csvHeaders); err != nil {
			return err
		}
	}

	values := make([]string, 0, types.NumEntryTypes)
	for _, et := range types.EntryTypes() {
		values = append(values, strconv.Itoa(r.count(et)))
	}
	if err := writer.Write(values); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}

func init() {
	Register(FormatCSV, func() Formatter {
		return &CSVFormatter{}
	})
}

// Ensure CSVFormatter implements Formatter.
var _ Formatter = (*CSVFormatter)(nil)

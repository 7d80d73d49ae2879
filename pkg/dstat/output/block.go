package output

import (
	"bytes"
	"fmt"

	"github.com/jamesainslie/dstat/pkg/dstat/types"
)

// blockLine describes one labelled line of block output.
type blockLine struct {
	entry types.EntryType
	stem  string
	rule  types.PluralRule
}

// blockLines is the block output order, which differs from column order.
var blockLines = []blockLine{
	{types.Directory, "director", types.YToIES},
	{types.FIFO, "FIFO file", types.AddS},
	{types.CharDevice, "character special file", types.AddS},
	{types.BlockDevice, "block special file", types.AddS},
	{types.Regular, "regular file", types.AddS},
	{types.Symlink, "symlink", types.AddS},
	{types.Socket, "socket", types.AddS},
	{types.Whiteout, "union whiteout file", types.AddS},
	{types.Unknown, "unknown file type", types.AddS},
}

// BlockFormatter renders the descriptive multi-line summary.
type BlockFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *BlockFormatter) Format(w *bytes.Buffer, r *Result) error {
	if !r.Quiet {
		writeDirectoryList(w, r)
		w.WriteString("\nTotals:\n")
	}

	for _, line := range blockLines {
		n := r.count(line.entry)
		fmt.Fprintf(w, "%*d:%s\n", cellWidth, n, types.Pluralize(line.stem, n, line.rule))
	}
	return nil
}

// writeDirectoryList writes the "Directories:" heading and one
// tab-indented path per line.
func writeDirectoryList(w *bytes.Buffer, r *Result) {
	w.WriteString(r.directoryHeading())
	w.WriteString(":\n")
	for _, p := range r.Paths {
		w.WriteString("\t")
		w.WriteString(p)
		w.WriteString("\n")
	}
}

func init() {
	Register(FormatBlock, func() Formatter {
		return &BlockFormatter{}
	})
}

// Ensure BlockFormatter implements Formatter.
var _ Formatter = (*BlockFormatter)(nil)

// Package sink routes rendered output to the terminal and the optional
// output file, and funnels non-fatal errors into the optional error log.
package sink

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/jamesainslie/dstat/pkg/dstat/logging"
	"github.com/jamesainslie/dstat/pkg/dstat/output"
	"github.com/jamesainslie/dstat/pkg/dstat/types"
)

var logger = logging.Get("sink")

// fileFlags opens output and log files for appending; existing content is
// never truncated.
const fileFlags = os.O_WRONLY | os.O_CREATE | os.O_APPEND

// Channel selects the destination of a rendered buffer.
type Channel int

const (
	// Print sends output to the terminal.
	Print Channel = iota
	// Write sends output to the output file.
	Write
)

// String returns the channel name.
func (c Channel) String() string {
	if c == Write {
		return "write"
	}
	return "print"
}

// OutputConfig is the resolved set of format and destination options.
type OutputConfig struct {
	Continuous bool
	Linear     bool
	CSV        bool
	Quiet      bool
	OutFile    string
	LogFile    string
}

// StdoutFormat returns the format printed to the terminal after a
// non-continuous scan.
func (c OutputConfig) StdoutFormat() string {
	switch {
	case c.Continuous, c.Linear && (!c.CSV || c.OutFile != ""):
		return output.FormatLinear
	case c.CSV && !c.Linear && c.OutFile == "":
		return output.FormatCSV
	default:
		return output.FormatBlock
	}
}

// FileFormat returns the format written to the output file, or "" when no
// output file was requested.
func (c OutputConfig) FileFormat() string {
	switch {
	case c.OutFile == "":
		return ""
	case c.CSV:
		return output.FormatCSV
	default:
		return output.FormatBlock
	}
}

// Router owns the output and log file handles for the life of a run.
type Router struct {
	cfg     OutputConfig
	stdout  io.Writer
	outFile *os.File
	logFile *os.File
	errLog  *logging.ErrorLog
	closed  bool
}

// Open opens the requested output and log files and returns a Router
// printing to stdout. runID tags error log lines. Any open failure is a
// *types.ResourceError; files opened before the failure are closed.
func Open(cfg OutputConfig, stdout io.Writer, runID string) (*Router, error) {
	r := &Router{cfg: cfg, stdout: stdout}

	if cfg.OutFile != "" {
		f, err := os.OpenFile(cfg.OutFile, fileFlags, 0o644)
		if err != nil {
			return nil, &types.ResourceError{Op: "open output file", Path: cfg.OutFile, Err: types.PathErr(err)}
		}
		r.outFile = f
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, fileFlags, 0o644)
		if err != nil {
			_ = r.Close()
			return nil, &types.ResourceError{Op: "open log file", Path: cfg.LogFile, Err: types.PathErr(err)}
		}
		r.logFile = f
		r.errLog = logging.NewErrorLog(f, runID)
	}

	return r, nil
}

// Config returns the router's configuration.
func (r *Router) Config() OutputConfig {
	return r.cfg
}

// Close closes the output and log files. Only the first call has effect.
func (r *Router) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error
	if r.outFile != nil {
		if err := r.outFile.Close(); err != nil {
			errs = append(errs, &types.ResourceError{Op: "close output file", Path: r.cfg.OutFile, Err: err})
		}
	}
	if r.logFile != nil {
		if err := r.logFile.Close(); err != nil {
			errs = append(errs, &types.ResourceError{Op: "close log file", Path: r.cfg.LogFile, Err: err})
		}
	}
	return errors.Join(errs...)
}

// Report routes err through the error side channel. Recoverable errors
// are appended to the log file when one is configured and nil is
// returned. Otherwise err is returned for the caller to print and exit
// on. A failed log write is returned as a fatal *types.ResourceError.
func (r *Router) Report(err error) error {
	if err == nil {
		return nil
	}
	if r.errLog == nil || !types.Recoverable(err) {
		return err
	}

	if lerr := r.errLog.Record(err); lerr != nil {
		return &types.ResourceError{Op: "write log file", Path: r.cfg.LogFile, Err: lerr}
	}
	logger.Debug("logged non-fatal error", "err", err)
	return nil
}

// Display renders a finished scan: the terminal format chosen by
// StdoutFormat, then the output file format if one was requested.
func (r *Router) Display(paths []string, tally *types.Tally) error {
	res := &output.Result{Paths: paths, Tally: tally, Quiet: r.cfg.Quiet}
	if err := r.render(Print, r.cfg.StdoutFormat(), res); err != nil {
		return err
	}
	return r.writeFile(res)
}

// Stream runs continuous mode: it prints the linear header, then calls
// scan for each path in turn and prints the cumulative tally after each.
// Rows are appended when linear output was requested and overwritten in
// place otherwise. Scan failures go through Report.
func (r *Router) Stream(paths []string, tally *types.Tally, scan func(path string) error) error {
	var buf bytes.Buffer

	if !r.cfg.Quiet {
		output.WriteLinearHeader(&buf, paths)
		if err := r.emit(Print, &buf); err != nil {
			return err
		}
	}

	for _, p := range paths {
		if err := r.Report(scan(p)); err != nil {
			return err
		}

		output.WriteLinearRow(&buf, tally, !r.cfg.Linear)
		if r.cfg.Linear {
			buf.WriteString("\n")
		}
		if err := r.emit(Print, &buf); err != nil {
			return err
		}
	}

	if !r.cfg.Linear {
		buf.WriteString("\n")
	}
	if !r.cfg.Quiet {
		output.WriteBorder(&buf)
	}
	if err := r.emit(Print, &buf); err != nil {
		return err
	}

	return r.writeFile(&output.Result{Paths: paths, Tally: tally, Quiet: r.cfg.Quiet})
}

// writeFile renders res to the output file, if any.
func (r *Router) writeFile(res *output.Result) error {
	format := r.cfg.FileFormat()
	if format == "" {
		return nil
	}
	return r.render(Write, format, res)
}

func (r *Router) render(ch Channel, format string, res *output.Result) error {
	formatter, err := output.Get(format)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, res); err != nil {
		return err
	}
	logger.Debug("rendered output", "format", format, "channel", ch)
	return r.emit(ch, &buf)
}

// emit flushes buf to the channel's destination and resets it.
func (r *Router) emit(ch Channel, buf *bytes.Buffer) error {
	defer buf.Reset()

	var (
		w    io.Writer = r.stdout
		name           = "stdout"
	)
	if ch == Write {
		if r.outFile == nil {
			return &types.ResourceError{Op: "write output file", Err: os.ErrClosed}
		}
		w, name = r.outFile, r.cfg.OutFile
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return &types.ResourceError{Op: "write", Path: name, Err: err}
	}
	return nil
}

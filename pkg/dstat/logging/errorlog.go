package logging

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// ErrShortWrite is reported when the error log accepts fewer bytes than
// were written to it.
var ErrShortWrite = errors.New("short write to error log")

// trackingWriter remembers the first write failure of the wrapped writer.
// charmbracelet/log discards write errors, so ErrorLog consults it after
// every record.
type trackingWriter struct {
	mu  sync.Mutex
	w   io.Writer
	err error
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err == nil && n < len(p) {
		err = ErrShortWrite
	}
	if err != nil {
		t.mu.Lock()
		if t.err == nil {
			t.err = err
		}
		t.mu.Unlock()
	}
	return n, err
}

func (t *trackingWriter) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// ErrorLog appends one line per non-fatal error to a log file.
type ErrorLog struct {
	out    *trackingWriter
	logger *log.Logger
}

// NewErrorLog returns an ErrorLog writing to w. Every line carries runID so
// entries from separate invocations appended to the same file can be told
// apart.
func NewErrorLog(w io.Writer, runID string) *ErrorLog {
	out := &trackingWriter{w: w}
	logger := log.NewWithOptions(out, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "dstat",
	})
	if runID != "" {
		logger = logger.With("run", runID)
	}
	return &ErrorLog{out: out, logger: logger}
}

// Record writes err as a single error line. It returns the underlying
// write failure, if any, which callers must treat as fatal.
func (e *ErrorLog) Record(err error) error {
	e.logger.Error(err.Error())
	return e.out.Err()
}

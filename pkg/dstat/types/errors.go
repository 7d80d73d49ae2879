package types

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// ValidationError reports a candidate path that does not exist or is not
// a directory.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ScanError reports an accepted directory that could not be listed.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// ResourceError reports a failure to open or write an output or log file.
// It is always fatal.
type ResourceError struct {
	Op   string
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// UsageError reports an invalid combination of options. It is always fatal
// and raised before any directory is scanned.
type UsageError struct {
	Msg string
	Err error
}

func (e *UsageError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *UsageError) Unwrap() error { return e.Err }

// ErrCountMismatch is returned when the number of accepted directories
// disagrees with the registry length.
var ErrCountMismatch = errors.New("directory count mismatch")

// PathErr strips the *fs.PathError wrapper so the path is not repeated
// in messages that already carry it.
func PathErr(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

// Recoverable reports whether err may be logged and skipped when an error
// log is configured.
func Recoverable(err error) bool {
	var ve *ValidationError
	var se *ScanError
	return errors.As(err, &ve) || errors.As(err, &se)
}

// ExitCode maps err to a process exit status: 0 for nil, the underlying
// OS error number when one is present, EINVAL for usage errors, EIO for a
// count mismatch, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return int(errno)
	}

	var ue *UsageError
	if errors.As(err, &ue) {
		return int(syscall.EINVAL)
	}
	if errors.Is(err, ErrCountMismatch) {
		return int(syscall.EIO)
	}
	return 1
}

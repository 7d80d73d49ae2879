// Package registry validates candidate directory paths and keeps the
// ordered list of directories dstat will scan.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/jamesainslie/dstat/pkg/dstat/config"
	"github.com/jamesainslie/dstat/pkg/dstat/logging"
	"github.com/jamesainslie/dstat/pkg/dstat/types"
)

var logger = logging.Get("registry")

// DirectoryPath is an absolute path that named an existing directory when
// it was validated. It is not re-checked before scanning.
type DirectoryPath string

// String returns the path.
func (p DirectoryPath) String() string { return string(p) }

// Validate checks that raw names an existing directory and returns its
// canonical absolute form. Relative paths are resolved against the working
// directory without changing it. Failures are *types.ValidationError.
func Validate(raw string) (DirectoryPath, error) {
	expanded, err := config.ExpandPath(raw)
	if err != nil {
		return "", &types.ValidationError{Path: raw, Err: err}
	}

	info, err := os.Stat(expanded)
	if err != nil {
		return "", &types.ValidationError{Path: raw, Err: types.PathErr(err)}
	}
	if !info.IsDir() {
		return "", &types.ValidationError{Path: raw, Err: syscall.ENOTDIR}
	}

	if filepath.IsAbs(expanded) {
		return DirectoryPath(expanded), nil
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", &types.ValidationError{Path: raw, Err: err}
	}
	return DirectoryPath(abs), nil
}

// Registry is an insertion-ordered collection of validated directories.
type Registry struct {
	paths    []DirectoryPath
	accepted int
	sealed   bool
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// Add validates raw and appends it on success. Validation failures are
// returned to the caller, which decides whether they are fatal.
func (r *Registry) Add(raw string) (DirectoryPath, error) {
	if r.sealed {
		return "", fmt.Errorf("registry sealed: cannot add %q", raw)
	}

	dir, err := Validate(raw)
	if err != nil {
		logger.Debug("rejected directory", "path", raw, "err", err)
		return "", err
	}

	r.accepted++
	r.paths = append(r.paths, dir)
	logger.Debug("accepted directory", "path", dir, "count", r.accepted)
	return dir, nil
}

// AddWorkingDir appends the process working directory.
func (r *Registry) AddWorkingDir() (DirectoryPath, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", &types.ValidationError{Path: ".", Err: types.PathErr(err)}
	}
	return r.Add(wd)
}

// Seal freezes the registry once scanning is about to begin. It verifies
// that every accepted path is present exactly once in the ordered list.
func (r *Registry) Seal() error {
	r.sealed = true
	if r.accepted != len(r.paths) {
		return fmt.Errorf("%w: accepted %d, registered %d",
			types.ErrCountMismatch, r.accepted, len(r.paths))
	}
	return nil
}

// Len returns the number of registered directories.
func (r *Registry) Len() int {
	return len(r.paths)
}

// Paths returns a copy of the registered directories in insertion order.
func (r *Registry) Paths() []DirectoryPath {
	out := make([]DirectoryPath, len(r.paths))
	copy(out, r.paths)
	return out
}

// Strings returns the registered directories as plain strings.
func (r *Registry) Strings() []string {
	out := make([]string, len(r.paths))
	for i, p := range r.paths {
		out[i] = string(p)
	}
	return out
}

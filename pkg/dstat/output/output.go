// Package output renders dstat tallies in the block, linear and CSV
// formats.
//
// The package uses a registry pattern so formats can be selected by name:
//
//	formatter, err := output.Get("block")
//	if err != nil {
//	    return err
//	}
//	var buf bytes.Buffer
//	if err := formatter.Format(&buf, result); err != nil {
//	    return err
//	}
package output

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	"github.com/jamesainslie/dstat/pkg/dstat/types"
)

// Format names.
const (
	FormatBlock  = "block"
	FormatLinear = "linear"
	FormatCSV    = "csv"
)

// Result is everything a formatter renders.
type Result struct {
	// Paths are the scanned directories in registry order.
	Paths []string

	// Tally holds the cumulative counts for all Paths.
	Tally *types.Tally

	// Quiet suppresses the directory list and header lines.
	Quiet bool
}

// count returns the tally value for et, treating a nil tally as empty.
func (r *Result) count(et types.EntryType) int {
	if r.Tally == nil {
		return 0
	}
	return r.Tally.Count(et)
}

// directoryHeading returns "Directory" or "Directories" for the path count.
func (r *Result) directoryHeading() string {
	return types.Pluralize("Director", len(r.Paths), types.YToIES)
}

// Formatter is the interface that all output formatters must implement.
type Formatter interface {
	// Format writes the formatted output to the buffer.
	Format(w *bytes.Buffer, r *Result) error
}

// FormatterFactory is a function that creates a new Formatter instance.
type FormatterFactory func() Formatter

// Registry manages formatter registration and lookup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]FormatterFactory
}

// NewRegistry creates a new formatter registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]FormatterFactory),
	}
}

// Register adds a formatter factory to the registry, replacing any
// existing formatter with the same name.
func (r *Registry) Register(name string, factory FormatterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get returns a new formatter instance by name.
func (r *Registry) Get(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown formatter: %s", name)
	}
	return factory(), nil
}

// Available returns a sorted list of all registered formatter names.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global formatter registry.
var DefaultRegistry = NewRegistry()

// Register adds a formatter factory to the default registry.
func Register(name string, factory FormatterFactory) {
	DefaultRegistry.Register(name, factory)
}

// Get returns a new formatter instance from the default registry.
func Get(name string) (Formatter, error) {
	return DefaultRegistry.Get(name)
}

// Available returns all formatter names from the default registry.
func Available() []string {
	return DefaultRegistry.Available()
}

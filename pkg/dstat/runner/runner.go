// Package runner drives a dstat invocation: it validates the directory
// arguments, scans each accepted directory and hands the tally to the sink.
package runner

import (
	"errors"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/jamesainslie/dstat/pkg/dstat/config"
	"github.com/jamesainslie/dstat/pkg/dstat/logging"
	"github.com/jamesainslie/dstat/pkg/dstat/registry"
	"github.com/jamesainslie/dstat/pkg/dstat/scanner"
	"github.com/jamesainslie/dstat/pkg/dstat/sink"
	"github.com/jamesainslie/dstat/pkg/dstat/types"
)

var logger = logging.Get("runner")

// minContinuousDirs is the fewest directories continuous mode accepts.
const minContinuousDirs = 2

// Options configures a Runner.
type Options struct {
	// Config holds the resolved options. Nil means all defaults.
	Config *config.Config

	// Stdout receives terminal output.
	Stdout io.Writer

	// RunID tags error log lines. A random UUID is used when empty.
	RunID string
}

// Runner executes one scan.
type Runner struct {
	cfg    config.Config
	stdout io.Writer
	runID  string
}

// New returns a Runner for opts.
func New(opts Options) *Runner {
	r := &Runner{stdout: opts.Stdout, runID: opts.RunID}
	if opts.Config != nil {
		r.cfg = *opts.Config
	}
	if r.stdout == nil {
		r.stdout = io.Discard
	}
	if r.runID == "" {
		r.runID = uuid.NewString()
	}
	return r
}

// OutputConfig returns the sink configuration derived from the runner's
// options.
func (r *Runner) OutputConfig() sink.OutputConfig {
	return sink.OutputConfig{
		Continuous: r.cfg.Continuous,
		Linear:     r.cfg.Linear,
		CSV:        r.cfg.CSV,
		Quiet:      r.cfg.Quiet,
		OutFile:    r.cfg.OutFile,
		LogFile:    r.cfg.LogFile,
	}
}

// Run scans the directories named by args, or the working directory when
// args is empty, and renders the cumulative tally. Invalid or unreadable
// directories are logged and skipped when a log file is configured and
// are fatal otherwise. The returned tally is nil when Run fails before
// scanning starts.
func (r *Runner) Run(args []string) (tally *types.Tally, err error) {
	if r.cfg.Continuous && max(len(args), 1) < minContinuousDirs {
		return nil, &types.UsageError{Msg: "continuous mode requires at least two directories"}
	}

	classifier, err := scanner.New(r.cfg.Scanner.Backend)
	if err != nil {
		return nil, err
	}

	router, err := sink.Open(r.OutputConfig(), r.stdout, r.runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := router.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	reg, err := r.register(router, args)
	if err != nil {
		return nil, err
	}
	paths := reg.Strings()

	tally = &types.Tally{}
	scan := func(dir string) error {
		return classifier.Scan(dir, tally)
	}

	if r.cfg.Continuous {
		err = router.Stream(paths, tally, scan)
	} else {
		err = r.scanAll(router, paths, scan)
		if err == nil {
			err = router.Display(paths, tally)
		}
	}
	if err != nil {
		return tally, err
	}

	logger.Debug("scan complete",
		"directories", humanize.Comma(int64(len(paths))),
		"entries", humanize.Comma(int64(tally.Total())))
	return tally, nil
}

// register validates every argument in order. With no arguments the
// working directory is used.
func (r *Runner) register(router *sink.Router, args []string) (*registry.Registry, error) {
	reg := registry.New()

	if len(args) == 0 {
		if _, err := reg.AddWorkingDir(); err != nil {
			if err := router.Report(err); err != nil {
				return nil, err
			}
		}
	}
	for _, arg := range args {
		if _, err := reg.Add(arg); err != nil {
			if err := router.Report(err); err != nil {
				return nil, err
			}
		}
	}

	if err := reg.Seal(); err != nil {
		return nil, err
	}
	return reg, nil
}

func (r *Runner) scanAll(router *sink.Router, paths []string, scan func(string) error) error {
	for _, p := range paths {
		if err := router.Report(scan(p)); err != nil {
			return err
		}
	}
	return nil
}

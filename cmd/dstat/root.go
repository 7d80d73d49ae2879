package main

import (
	"io"
	"os"

	"github.com/jamesainslie/dstat/pkg/dstat/config"
	"github.com/jamesainslie/dstat/pkg/dstat/logging"
	"github.com/jamesainslie/dstat/pkg/dstat/runner"
	"github.com/jamesainslie/dstat/pkg/dstat/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys maps flag names to their viper keys.
var flagKeys = map[string]string{
	"continuous": "continuous",
	"linear":     "linear",
	"csv":        "csv",
	"quiet":      "quiet",
	"outfile":    "outfile",
	"logfile":    "logfile",
	"backend":    "scanner.backend",
	"log-level":  "logging.level",
}

// newRootCmd builds the dstat command around v. Every flag in flagKeys is
// bound to v so flags, DSTAT_ environment variables and the config file
// resolve through one lookup.
func newRootCmd(v *viper.Viper) *cobra.Command {
	var (
		cfgFile     string
		showVersion bool
		showFull    bool
	)

	cmd := &cobra.Command{
		Use:   "dstat [DIRECTORY]...",
		Short: "Count directory entries by type",
		Long: `dstat counts the immediate entries of each DIRECTORY by type (regular
files, directories, symlinks, devices, FIFOs, sockets, whiteouts) and prints
the combined totals. With no DIRECTORY the current directory is used.

Examples:
  dstat                          # Totals for the current directory
  dstat /etc /var                # Combined totals for two directories
  dstat -L -q ~/src              # One bordered row, no headers
  dstat -c -o totals.csv /tmp    # Block to the terminal, CSV appended to a file
  dstat -C -l errors.log a b c   # Running totals, bad directories logged`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cfgFile, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion || showFull {
				printVersion(cmd.OutOrStdout(), showFull)
				return nil
			}
			return runDstat(v, cmd.OutOrStdout(), args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ~/.config/dstat/config.yaml)")
	flags.BoolP("continuous", "C", false, "print running totals after each directory (needs two or more)")
	flags.BoolP("linear", "L", false, "print totals as a bordered table row")
	flags.BoolP("csv", "c", false, "print totals as CSV")
	flags.BoolP("quiet", "q", false, "omit the directory list and headers")
	flags.StringP("outfile", "o", "", "also append results to FILE")
	flags.StringP("logfile", "l", "", "append non-fatal errors to FILE and keep going")
	flags.String("backend", config.DefaultBackend, "entry classifier backend (dirent, walk)")
	flags.String("log-level", config.DefaultLogLevel, "diagnostic log level (debug, info, warn, error)")
	flags.BoolVarP(&showVersion, "version", "v", false, "print the version and exit")
	flags.BoolVarP(&showFull, "Version", "V", false, "print version and build details and exit")

	for name, key := range flagKeys {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &types.UsageError{Msg: err.Error()}
	})

	return cmd
}

// initConfig reads the config file and environment, then starts
// diagnostic logging at the resolved level.
func initConfig(v *viper.Viper, cfgFile string, stderr io.Writer) error {
	config.Configure(v, cfgFile)
	if err := config.ReadFile(v); err != nil {
		return err
	}

	level := v.GetString("logging.level")
	if _, err := logging.ParseLevel(level); err != nil {
		return &types.UsageError{Msg: "invalid log level", Err: err}
	}
	return logging.Init(logging.Config{Level: level, Output: stderr})
}

// runDstat resolves the configuration and scans args.
func runDstat(v *viper.Viper, stdout io.Writer, args []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger := logging.Get("cli")
	logger.Debug("resolved configuration",
		"continuous", cfg.Continuous, "linear", cfg.Linear, "csv", cfg.CSV,
		"quiet", cfg.Quiet, "backend", cfg.Scanner.Backend, "directories", len(args))

	_, err = runner.New(runner.Options{Config: cfg, Stdout: stdout}).Run(args)
	return err
}

// Execute runs the root command against the process arguments.
func Execute() error {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

func execute(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(viper.New())
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

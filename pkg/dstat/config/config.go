package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/jamesainslie/dstat/pkg/dstat/logging"
	"github.com/jamesainslie/dstat/pkg/dstat/types"
	"github.com/spf13/viper"
)

// ScannerConfig configures the entry classifier.
type ScannerConfig struct {
	Backend string `mapstructure:"backend"`
}

// LoggingConfig configures diagnostic logging.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Config is the resolved set of dstat options.
type Config struct {
	Continuous bool          `mapstructure:"continuous"`
	Linear     bool          `mapstructure:"linear"`
	CSV        bool          `mapstructure:"csv"`
	Quiet      bool          `mapstructure:"quiet"`
	OutFile    string        `mapstructure:"outfile"`
	LogFile    string        `mapstructure:"logfile"`
	Scanner    ScannerConfig `mapstructure:"scanner"`
	Logging    LoggingConfig `mapstructure:"logging"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("continuous", false)
	v.SetDefault("linear", false)
	v.SetDefault("csv", false)
	v.SetDefault("quiet", false)
	v.SetDefault("outfile", "")
	v.SetDefault("logfile", "")
	v.SetDefault("scanner.backend", DefaultBackend)
	v.SetDefault("logging.level", DefaultLogLevel)
}

// Configure prepares v to read the config file and DSTAT_ environment
// variables. An explicit cfgFile takes precedence over the search path:
//   - $XDG_CONFIG_HOME/dstat/config.yaml
//   - $HOME/.config/dstat/config.yaml
func Configure(v *viper.Viper, cfgFile string) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", AppName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
}

// ReadFile reads the config file, tolerating its absence.
func ReadFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Load unmarshals v into a Config, expands ~ in file paths, and validates
// the result.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var err error
	if cfg.OutFile, err = ExpandPath(cfg.OutFile); err != nil {
		return nil, err
	}
	if cfg.LogFile, err = ExpandPath(cfg.LogFile); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown backends and log levels.
func (c *Config) Validate() error {
	if c.Scanner.Backend == "" {
		c.Scanner.Backend = DefaultBackend
	}
	if !slices.Contains(Backends, c.Scanner.Backend) {
		return &types.UsageError{
			Msg: fmt.Sprintf("unknown scanner backend %q (want one of %s)",
				c.Scanner.Backend, strings.Join(Backends, ", ")),
		}
	}

	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return &types.UsageError{Msg: "invalid log level", Err: err}
	}
	return nil
}

// ConfigDir returns $XDG_CONFIG_HOME/dstat.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, path[1:]), nil
}

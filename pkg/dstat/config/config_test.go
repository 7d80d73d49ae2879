package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jamesainslie/dstat/pkg/dstat/types"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(t *testing.T, cfgFile string) *viper.Viper {
	t.Helper()
	v := viper.New()
	Configure(v, cfgFile)
	if cfgFile != "" {
		require.NoError(t, ReadFile(v))
	}
	return v
}

func TestLoad_Defaults(t *testing.T) {
	v := newTestViper(t, "")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.False(t, cfg.Continuous)
	assert.False(t, cfg.Linear)
	assert.False(t, cfg.CSV)
	assert.False(t, cfg.Quiet)
	assert.Empty(t, cfg.OutFile)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, BackendDirent, cfg.Scanner.Backend)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `linear: true
quiet: true
outfile: /tmp/dstat.out
scanner:
  backend: walk
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(newTestViper(t, path))
	require.NoError(t, err)

	assert.True(t, cfg.Linear)
	assert.True(t, cfg.Quiet)
	assert.False(t, cfg.CSV)
	assert.Equal(t, "/tmp/dstat.out", cfg.OutFile)
	assert.Equal(t, BackendWalk, cfg.Scanner.Backend)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DSTAT_CSV", "true")
	t.Setenv("DSTAT_LOGFILE", "/tmp/dstat.log")
	t.Setenv("DSTAT_SCANNER_BACKEND", "walk")

	cfg, err := Load(newTestViper(t, ""))
	require.NoError(t, err)

	assert.True(t, cfg.CSV)
	assert.Equal(t, "/tmp/dstat.log", cfg.LogFile)
	assert.Equal(t, BackendWalk, cfg.Scanner.Backend)
}

func TestLoad_ExpandsHomeInFilePaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("DSTAT_OUTFILE", "~/out.txt")

	cfg, err := Load(newTestViper(t, ""))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "out.txt"), cfg.OutFile)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("linear: [unterminated"), 0o644))

	v := viper.New()
	Configure(v, path)
	assert.Error(t, ReadFile(v))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty fills defaults", Config{}, false},
		{"walk backend", Config{Scanner: ScannerConfig{Backend: BackendWalk}}, false},
		{"unknown backend", Config{Scanner: ScannerConfig{Backend: "magic"}}, true},
		{"bad log level", Config{Logging: LoggingConfig{Level: "chatty"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				assert.NotEmpty(t, tt.cfg.Scanner.Backend)
				assert.NotEmpty(t, tt.cfg.Logging.Level)
				return
			}
			var ue *types.UsageError
			assert.True(t, errors.As(err, &ue))
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"~", home},
		{"~/logs/dstat.log", filepath.Join(home, "logs", "dstat.log")},
		{"~other/file", "~other/file"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

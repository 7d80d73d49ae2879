// Package config provides configuration management for dstat.
package config

// Default configuration values for dstat.
const (
	// DefaultBackend is the entry classifier used when none is configured.
	DefaultBackend = BackendDirent

	// DefaultLogLevel is the diagnostic log level.
	DefaultLogLevel = "warn"

	// EnvPrefix prefixes environment overrides (DSTAT_CSV=true).
	EnvPrefix = "DSTAT"

	// AppName names the XDG configuration directory.
	AppName = "dstat"
)

// Classifier backends.
const (
	// BackendDirent reads raw directory records and their kernel d_type.
	BackendDirent = "dirent"

	// BackendWalk uses fastwalk and fs.FileMode type bits.
	BackendWalk = "walk"
)

// Backends lists the accepted scanner.backend values.
var Backends = []string{BackendDirent, BackendWalk}

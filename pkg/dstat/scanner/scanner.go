// Package scanner reads the immediate entries of a directory and tallies
// them by type. It never descends into subdirectories.
package scanner

import (
	"fmt"
	"io/fs"

	"github.com/jamesainslie/dstat/pkg/dstat/config"
	"github.com/jamesainslie/dstat/pkg/dstat/logging"
	"github.com/jamesainslie/dstat/pkg/dstat/types"
)

var logger = logging.Get("scanner")

// Classifier counts the entries of a single directory into a tally.
type Classifier interface {
	// Scan lists dir and increments tally once per entry, skipping "." and
	// "..". On failure it returns a *types.ScanError and leaves tally
	// unchanged.
	Scan(dir string, tally *types.Tally) error
}

// New returns the classifier for backend. An empty backend selects the
// platform default.
func New(backend string) (Classifier, error) {
	switch backend {
	case "":
		return Default(), nil
	case config.BackendDirent:
		if !direntSupported {
			logger.Debug("dirent backend unavailable, using walk")
			return &WalkClassifier{}, nil
		}
		return &DirentClassifier{}, nil
	case config.BackendWalk:
		return &WalkClassifier{}, nil
	default:
		return nil, &types.UsageError{Msg: fmt.Sprintf("unknown scanner backend %q", backend)}
	}
}

// Default returns the dirent classifier where the platform exposes raw
// directory records, and the walk classifier elsewhere.
func Default() Classifier {
	if direntSupported {
		return &DirentClassifier{}
	}
	return &WalkClassifier{}
}

// FromMode classifies an entry by its fs.FileMode type bits. Whiteouts
// have no FileMode representation and are reported as Unknown.
func FromMode(mode fs.FileMode) types.EntryType {
	switch typ := mode.Type(); {
	case typ == 0:
		return types.Regular
	case typ&fs.ModeDir != 0:
		return types.Directory
	case typ&fs.ModeSymlink != 0:
		return types.Symlink
	case typ&fs.ModeNamedPipe != 0:
		return types.FIFO
	case typ&fs.ModeSocket != 0:
		return types.Socket
	case typ&fs.ModeCharDevice != 0:
		return types.CharDevice
	case typ&fs.ModeDevice != 0:
		return types.BlockDevice
	default:
		return types.Unknown
	}
}

func isDotEntry(name string) bool {
	return name == "." || name == ".."
}

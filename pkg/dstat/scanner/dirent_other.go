//go:build !linux && !darwin

package scanner

import (
	"github.com/jamesainslie/dstat/pkg/dstat/types"
)

const direntSupported = false

// DirentClassifier is unavailable on this platform and delegates to
// WalkClassifier.
type DirentClassifier struct {
	walk WalkClassifier
}

// Scan implements Classifier.
func (c *DirentClassifier) Scan(dir string, tally *types.Tally) error {
	return c.walk.Scan(dir, tally)
}

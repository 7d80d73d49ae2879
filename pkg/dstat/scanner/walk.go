package scanner

import (
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/jamesainslie/dstat/pkg/dstat/types"
)

// WalkClassifier lists a directory with fastwalk and classifies entries by
// their FileMode. Subdirectories are counted but never entered.
type WalkClassifier struct{}

// Scan implements Classifier.
func (c *WalkClassifier) Scan(dir string, tally *types.Tally) error {
	conf := fastwalk.Config{
		Follow: false, // Symlinks are counted, not followed.
	}

	root := filepath.Clean(dir)

	// fastwalk may invoke the callback from worker goroutines, so entries
	// are gathered under a lock and tallied once the walk returns.
	var (
		mu    sync.Mutex
		local types.Tally
	)

	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if filepath.Clean(path) == root {
			return nil
		}
		if isDotEntry(d.Name()) {
			return nil
		}

		mu.Lock()
		local.Add(FromMode(d.Type()))
		mu.Unlock()

		if d.IsDir() {
			return fastwalk.SkipDir
		}
		return nil
	})
	if err != nil {
		return &types.ScanError{Path: dir, Err: types.PathErr(err)}
	}

	tally.Merge(&local)
	logger.Debug("walked directory", "path", dir, "entries", local.Total())
	return nil
}

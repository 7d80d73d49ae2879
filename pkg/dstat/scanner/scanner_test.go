package scanner

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/jamesainslie/dstat/pkg/dstat/config"
	"github.com/jamesainslie/dstat/pkg/dstat/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends returns every classifier under test.
func backends() map[string]Classifier {
	return map[string]Classifier{
		config.BackendDirent: &DirentClassifier{},
		config.BackendWalk:   &WalkClassifier{},
	}
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
}

func TestScan_EmptyDirectory(t *testing.T) {
	for name, c := range backends() {
		t.Run(name, func(t *testing.T) {
			var tally types.Tally
			require.NoError(t, c.Scan(t.TempDir(), &tally))

			assert.Equal(t, 0, tally.Total())
			for _, et := range types.EntryTypes() {
				assert.Zero(t, tally.Count(et), et.String())
			}
		})
	}
}

func TestScan_FileAndSubdirectory(t *testing.T) {
	for name, c := range backends() {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFiles(t, dir, "a.txt")
			require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

			var tally types.Tally
			require.NoError(t, c.Scan(dir, &tally))

			assert.Equal(t, 1, tally.Count(types.Regular))
			assert.Equal(t, 1, tally.Count(types.Directory))
			assert.Equal(t, 2, tally.Total())
		})
	}
}

func TestScan_DoesNotRecurse(t *testing.T) {
	for name, c := range backends() {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			sub := filepath.Join(dir, "sub")
			require.NoError(t, os.Mkdir(sub, 0o755))
			writeFiles(t, sub, "deep1", "deep2", "deep3")
			require.NoError(t, os.Mkdir(filepath.Join(sub, "deeper"), 0o755))

			var tally types.Tally
			require.NoError(t, c.Scan(dir, &tally))

			assert.Equal(t, 1, tally.Total())
			assert.Equal(t, 1, tally.Count(types.Directory))
		})
	}
}

func TestScan_SymlinksAreNotFollowed(t *testing.T) {
	for name, c := range backends() {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			target := t.TempDir()
			writeFiles(t, target, "x", "y")
			if err := os.Symlink(target, filepath.Join(dir, "link")); err != nil {
				t.Skipf("symlinks unsupported: %v", err)
			}
			writeFiles(t, dir, "plain")

			var tally types.Tally
			require.NoError(t, c.Scan(dir, &tally))

			assert.Equal(t, 1, tally.Count(types.Symlink))
			assert.Equal(t, 1, tally.Count(types.Regular))
			assert.Equal(t, 2, tally.Total())
		})
	}
}

func TestScan_AccumulatesAcrossDirectories(t *testing.T) {
	for name, c := range backends() {
		t.Run(name, func(t *testing.T) {
			first, second := t.TempDir(), t.TempDir()
			writeFiles(t, first, "1", "2", "3")
			writeFiles(t, second, "4")
			require.NoError(t, os.Mkdir(filepath.Join(second, "d"), 0o755))

			var tally types.Tally
			require.NoError(t, c.Scan(first, &tally))
			require.NoError(t, c.Scan(second, &tally))

			assert.Equal(t, 4, tally.Count(types.Regular))
			assert.Equal(t, 1, tally.Count(types.Directory))
			assert.Equal(t, 5, tally.Total())
		})
	}
}

func TestScan_MissingDirectory(t *testing.T) {
	for name, c := range backends() {
		t.Run(name, func(t *testing.T) {
			var tally types.Tally
			tally.Add(types.Regular)
			missing := filepath.Join(t.TempDir(), "gone")

			err := c.Scan(missing, &tally)
			require.Error(t, err)

			var se *types.ScanError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, missing, se.Path)
			assert.ErrorIs(t, err, fs.ErrNotExist)
			assert.True(t, types.Recoverable(err))

			// Tally from earlier directories is untouched.
			assert.Equal(t, 1, tally.Total())
		})
	}
}

func TestScan_UnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	for name, c := range backends() {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			locked := filepath.Join(dir, "locked")
			require.NoError(t, os.Mkdir(locked, 0o755))
			writeFiles(t, locked, "secret")
			require.NoError(t, os.Chmod(locked, 0o000))
			t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

			var tally types.Tally
			err := c.Scan(locked, &tally)
			require.Error(t, err)
			assert.ErrorIs(t, err, fs.ErrPermission)
			assert.Zero(t, tally.Total())
		})
	}
}

func TestFromMode(t *testing.T) {
	tests := []struct {
		mode fs.FileMode
		want types.EntryType
	}{
		{0o644, types.Regular},
		{fs.ModeDir | 0o755, types.Directory},
		{fs.ModeSymlink, types.Symlink},
		{fs.ModeNamedPipe, types.FIFO},
		{fs.ModeSocket, types.Socket},
		{fs.ModeDevice | fs.ModeCharDevice, types.CharDevice},
		{fs.ModeDevice, types.BlockDevice},
		{fs.ModeIrregular, types.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, FromMode(tt.mode))
		})
	}
}

func TestNew(t *testing.T) {
	c, err := New(config.BackendWalk)
	require.NoError(t, err)
	assert.IsType(t, &WalkClassifier{}, c)

	c, err = New("")
	require.NoError(t, err)
	assert.NotNil(t, c)

	c, err = New(config.BackendDirent)
	require.NoError(t, err)
	assert.NotNil(t, c)

	_, err = New("bogus")
	var ue *types.UsageError
	assert.True(t, errors.As(err, &ue))
}

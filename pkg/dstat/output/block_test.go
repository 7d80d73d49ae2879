package output

import (
	"strings"
	"testing"

	"github.com/jamesainslie/dstat/pkg/dstat/types"
	"github.com/stretchr/testify/assert"
)

func TestBlockFormatter_EmptyDirectory(t *testing.T) {
	out := render(t, &BlockFormatter{}, &Result{
		Paths: []string{"/tmp/empty"},
		Tally: &types.Tally{},
	})

	want := "Directory:\n" +
		"\t/tmp/empty\n" +
		"\n" +
		"Totals:\n" +
		"       0:directories\n" +
		"       0:FIFO files\n" +
		"       0:character special files\n" +
		"       0:block special files\n" +
		"       0:regular files\n" +
		"       0:symlinks\n" +
		"       0:sockets\n" +
		"       0:union whiteout files\n" +
		"       0:unknown file types\n"
	assert.Equal(t, want, out)
}

func TestBlockFormatter_Singulars(t *testing.T) {
	var tally types.Tally
	tally.Add(types.Regular)
	tally.Add(types.Directory)

	out := render(t, &BlockFormatter{}, &Result{
		Paths: []string{"/srv"},
		Tally: &tally,
		Quiet: true,
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "       1:directory", lines[0])
	assert.Equal(t, "       1:regular file", lines[4])
	assert.Equal(t, "       0:symlinks", lines[5])
}

func TestBlockFormatter_MultipleDirectoriesAndPlurals(t *testing.T) {
	var tally types.Tally
	for i := 0; i < 3; i++ {
		tally.Add(types.Directory)
		tally.Add(types.Socket)
	}

	out := render(t, &BlockFormatter{}, &Result{
		Paths: []string{"/one", "/two"},
		Tally: &tally,
	})

	assert.True(t, strings.HasPrefix(out, "Directories:\n\t/one\n\t/two\n\nTotals:\n"))
	assert.Contains(t, out, "       3:directories\n")
	assert.Contains(t, out, "       3:sockets\n")
}

func TestBlockFormatter_QuietOmitsHeader(t *testing.T) {
	out := render(t, &BlockFormatter{}, &Result{
		Paths: []string{"/x"},
		Tally: sampleTally(),
		Quiet: true,
	})

	assert.NotContains(t, out, "Director")
	assert.NotContains(t, out, "Totals")
	assert.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), 9)
}

func TestBlockFormatter_WideCounts(t *testing.T) {
	var tally types.Tally
	for i := 0; i < 123456; i++ {
		tally.Add(types.Regular)
	}

	out := render(t, &BlockFormatter{}, &Result{Tally: &tally, Quiet: true})
	assert.Contains(t, out, "  123456:regular files\n")
}

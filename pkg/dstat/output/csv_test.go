package output

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/jamesainslie/dstat/pkg/dstat/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVFormatter_Full(t *testing.T) {
	out := render(t, &CSVFormatter{}, &Result{
		Paths: []string{"/home/user"},
		Tally: sampleTally(),
	})

	want := "Directory\n" +
		"/home/user\n" +
		"Regular,Directory,Link,Block Special,Character Special,FIFO,Socket,White Out,Unknown\n" +
		"1,2,3,4,5,6,7,8,9\n"
	assert.Equal(t, want, out)
}

func TestCSVFormatter_QuietEmitsOnlyValues(t *testing.T) {
	out := render(t, &CSVFormatter{}, &Result{
		Paths: []string{"/a", "/b"},
		Tally: &types.Tally{},
		Quiet: true,
	})

	assert.Equal(t, "0,0,0,0,0,0,0,0,0\n", out)
}

func TestCSVFormatter_MultipleDirectories(t *testing.T) {
	out := render(t, &CSVFormatter{}, &Result{
		Paths: []string{"/a", "/b"},
		Tally: &types.Tally{},
	})

	assert.True(t, strings.HasPrefix(out, "Directories\n/a\n/b\n"))
}

func TestCSVFormatter_NoTrailingComma(t *testing.T) {
	out := render(t, &CSVFormatter{}, &Result{Tally: sampleTally()})
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.False(t, strings.HasSuffix(line, ","), line)
	}
}

func TestCSVFormatter_QuotesAwkwardPaths(t *testing.T) {
	awkward := "/data/a,b \"c\""
	out := render(t, &CSVFormatter{}, &Result{
		Paths: []string{awkward},
		Tally: &types.Tally{},
	})

	r := csv.NewReader(strings.NewReader(out))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{awkward}, records[1])
}

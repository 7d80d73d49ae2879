// Package types provides the core data types for dstat: directory entry
// categories, the cumulative per-type tally, and pluralisation rules used
// when rendering counts.
package types

// EntryType is the filesystem-reported category of a directory entry.
// The declaration order is the column order of linear and CSV output.
type EntryType int

// Entry type categories.
const (
	Regular EntryType = iota
	Directory
	Symlink
	BlockDevice
	CharDevice
	FIFO
	Socket
	Whiteout
	Unknown

	// NumEntryTypes is the number of recognised categories.
	NumEntryTypes int = iota
)

var entryTypeNames = [NumEntryTypes]string{
	"regular", "directory", "symlink", "block", "char",
	"fifo", "socket", "whiteout", "unknown",
}

// String returns a lower-case name for the entry type.
func (t EntryType) String() string {
	if t < 0 || int(t) >= NumEntryTypes {
		return "unknown"
	}
	return entryTypeNames[t]
}

// EntryTypes returns every category in column order.
func EntryTypes() []EntryType {
	all := make([]EntryType, NumEntryTypes)
	for i := range all {
		all[i] = EntryType(i)
	}
	return all
}

// Tally holds one counter per entry type. The zero value is ready to use.
// Counters only ever grow; a Tally shared across directories accumulates
// their combined statistics.
type Tally struct {
	counts [NumEntryTypes]int
}

// Add increments the counter for t. Out-of-range values count as Unknown.
func (t *Tally) Add(et EntryType) {
	if et < 0 || int(et) >= NumEntryTypes {
		et = Unknown
	}
	t.counts[et]++
}

// Count returns the counter for et.
func (t *Tally) Count(et EntryType) int {
	if et < 0 || int(et) >= NumEntryTypes {
		return 0
	}
	return t.counts[et]
}

// Merge adds every counter of other into t.
func (t *Tally) Merge(other *Tally) {
	for i, n := range other.counts {
		t.counts[i] += n
	}
}

// Total returns the number of entries recorded.
func (t *Tally) Total() int {
	total := 0
	for _, n := range t.counts {
		total += n
	}
	return total
}

// Values returns the counters in column order.
func (t *Tally) Values() []int {
	values := make([]int, NumEntryTypes)
	copy(values, t.counts[:])
	return values
}

// PluralRule selects how a label changes between singular and plural.
type PluralRule int

const (
	// AddS appends "s" for plural counts ("socket" / "sockets").
	AddS PluralRule = iota
	// YToIES completes a stem with "y" or "ies" ("director" -> "directory" / "directories").
	YToIES
)

// Suffix returns the suffix for count under rule. A count of exactly one is
// singular; every other count, zero included, is plural.
func (r PluralRule) Suffix(count int) string {
	switch r {
	case YToIES:
		if count == 1 {
			return "y"
		}
		return "ies"
	default:
		if count == 1 {
			return ""
		}
		return "s"
	}
}

// Pluralize joins stem with the suffix for count.
func Pluralize(stem string, count int, rule PluralRule) string {
	return stem + rule.Suffix(count)
}

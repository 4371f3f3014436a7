package mix

import "log/slog"

// Stem column suffixes read from the event source per configured stem.
var (
	momentumSuffixes   = []string{"_PX", "_PY", "_PZ", "_PE"}
	observableSuffixes = []string{"_M", "_PT", "_Y"}
)

// Combination is one named mixed-candidate definition: an ordered list
// of stems whose first element is the anchor (drawn from the scanned
// event) and whose remainder are train stems (drawn from the pool).
// Configured once before a run, immutable afterward.
type Combination struct {
	Name  string
	Stems []string
}

// Anchor returns the stem drawn from the current event.
func (c Combination) Anchor() string {
	return c.Stems[0]
}

// TrainStems returns the stems drawn from the pool, in window order.
func (c Combination) TrainStems() []string {
	return c.Stems[1:]
}

// Columns returns the output table schema: mixed observables first,
// then per-stem daughter observables (anchor first), then the weight
// column for the anchor stem.
func (c Combination) Columns() []string {
	cols := make([]string, 0, 3+3*len(c.Stems)+1)
	for _, suf := range observableSuffixes {
		cols = append(cols, c.Name+suf)
	}
	for _, stem := range c.Stems {
		for _, suf := range observableSuffixes {
			cols = append(cols, stem+suf)
		}
	}
	cols = append(cols, "w_"+c.Anchor())
	return cols
}

// RequiredColumns lists every input column a combination reads during a
// scan: the ordering columns plus momenta and precomputed observables
// for each stem.
func RequiredColumns(c Combination) []string {
	cols := []string{ColumnRun, ColumnEvent}
	for _, stem := range c.Stems {
		for _, suf := range momentumSuffixes {
			cols = append(cols, stem+suf)
		}
		for _, suf := range observableSuffixes {
			cols = append(cols, stem+suf)
		}
	}
	return cols
}

// MissingColumns reports the required columns absent from tab, warning
// for each. The run is allowed to continue: a missing column only fails
// at its first actual read.
func MissingColumns(tab Table, c Combination) []string {
	var missing []string
	for _, col := range RequiredColumns(c) {
		if !tab.HasColumn(col) {
			slog.Warn("column missing from input, expect problems",
				"column", col,
				"combination", c.Name,
			)
			missing = append(missing, col)
		}
	}
	return missing
}

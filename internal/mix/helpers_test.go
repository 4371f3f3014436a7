package mix

import "fmt"

// fakeTable is an in-memory Table for engine tests.
type fakeTable struct {
	n    int64
	cols map[string][]float64
}

func newFakeTable(n int) *fakeTable {
	return &fakeTable{n: int64(n), cols: make(map[string][]float64)}
}

func (t *fakeTable) set(col string, vals ...float64) {
	t.cols[col] = vals
}

func (t *fakeTable) NumRows() int64 { return t.n }

func (t *fakeTable) HasColumn(name string) bool {
	_, ok := t.cols[name]
	return ok
}

func (t *fakeTable) Scalar(row int64, col string) (float64, error) {
	vals, ok := t.cols[col]
	if !ok {
		return 0, fmt.Errorf("fake table has no column %q", col)
	}
	return vals[row], nil
}

// stemEnergy is the energy written for (row, stem index) by buildTable.
// Unique per (row, stem), so a mixed mass identifies its constituents.
func stemEnergy(row, stemIdx int) float64 {
	return float64(10*row + stemIdx + 1)
}

// buildTable creates a fake table with the standard mixing schema for
// the given stems, one row per key. Momenta are zero with energy
// stemEnergy(row, stem), so every derived mass equals the energy sum,
// transverse momentum and rapidity are zero, and the precomputed
// daughter observables are (E, 0, 0).
func buildTable(stems []string, keys [][2]int64) *fakeTable {
	t := newFakeTable(len(keys))
	runs := make([]float64, len(keys))
	evts := make([]float64, len(keys))
	for i, k := range keys {
		runs[i] = float64(k[0])
		evts[i] = float64(k[1])
	}
	t.set(ColumnRun, runs...)
	t.set(ColumnEvent, evts...)

	for si, stem := range stems {
		zero := make([]float64, len(keys))
		energy := make([]float64, len(keys))
		for i := range keys {
			energy[i] = stemEnergy(i, si)
		}
		t.set(stem+"_PX", zero...)
		t.set(stem+"_PY", zero...)
		t.set(stem+"_PZ", zero...)
		t.set(stem+"_PE", energy...)
		t.set(stem+"_M", energy...)
		t.set(stem+"_PT", zero...)
		t.set(stem+"_Y", zero...)
	}
	return t
}

// recordingWriter captures appended rows for assertions.
type recordingWriter struct {
	rows [][]float64
}

func (w *recordingWriter) Append(values []float64) error {
	cp := append([]float64(nil), values...)
	w.rows = append(w.rows, cp)
	return nil
}

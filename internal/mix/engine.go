package mix

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go-hep.org/x/hep/fmom"
)

// Mixer runs the sliding-window mixing scan for one combination.
//
// A Mixer is single-use: construct, optionally CheckSchema, then Run
// exactly once. All state mutation happens on the Run goroutine.
type Mixer struct {
	tab    Table
	combo  Combination
	length int // train capacity in distinct events

	progress io.Writer          // nil disables progress reporting
	observe  func(mass float64) // optional mixed-mass observer

	rows   int64
	wagons int
}

// Option configures a Mixer.
type Option func(*Mixer)

// WithProgress enables the carriage-return percentage line on w.
func WithProgress(w io.Writer) Option {
	return func(m *Mixer) { m.progress = w }
}

// WithMassObserver calls fn with the invariant mass of every mixed
// candidate, in emission order. Side-effect only; used to accumulate
// mass spectra.
func WithMassObserver(fn func(mass float64)) Option {
	return func(m *Mixer) { m.observe = fn }
}

// NewMixer creates a mixer over tab for the given combination and train
// capacity (in distinct events). trainLength must be positive and combo
// must have at least two stems; both are validated at config load.
func NewMixer(tab Table, combo Combination, trainLength int, opts ...Option) *Mixer {
	m := &Mixer{
		tab:    tab,
		combo:  combo,
		length: trainLength,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CheckSchema warns about every required input column missing from the
// source and returns their names. Non-fatal by contract.
func (m *Mixer) CheckSchema() []string {
	return MissingColumns(m.tab, m.combo)
}

// Rows returns the number of output rows emitted so far.
func (m *Mixer) Rows() int64 { return m.rows }

// Wagons returns the number of distinct events processed, forward scan
// and bootstrap combined.
func (m *Mixer) Wagons() int { return m.wagons }

// Run executes the full scan: order index, boundary-driven windowing,
// train bootstrap and steady sliding, and per-wagon mixing. One output
// row is appended to w per (wagon entry, valid train window) pair.
//
// The scan is a single deterministic pass; ctx cancellation aborts it
// between entries, and any read or write error aborts it unrecovered.
func (m *Mixer) Run(ctx context.Context, w RowWriter) (int64, error) {
	m.rows = 0
	m.wagons = 0

	entries, err := BuildIndex(m.tab)
	if err != nil {
		return 0, fmt.Errorf("build order index: %w", err)
	}
	if len(entries) == 0 {
		slog.Warn("input table is empty, nothing to mix", "combination", m.combo.Name)
		return 0, nil
	}

	sc := newScanContext(entries)
	sc.wagon = []EntryRef{entries[0]}

	prog := newProgressReporter(m.progress, len(entries))
	prog.step(0)

	for pos := 1; pos < sc.limit; pos++ {
		if err := ctx.Err(); err != nil {
			return m.rows, err
		}
		prog.step(pos)

		e := sc.entries[pos]
		if e.Key == sc.wagon[0].Key {
			sc.wagon = append(sc.wagon, e)
			continue
		}

		// Event boundary.
		if err := m.flushWagon(sc, w, e.Key); err != nil {
			return m.rows, err
		}
		sc.stored = sc.wagon
		sc.wagon = []EntryRef{e}
	}

	// End of stream: the last in-flight wagon goes through the same
	// boundary handling as if one more boundary had occurred. There is
	// no next event, so the wagon's own key bounds a bootstrap walk.
	if err := m.flushWagon(sc, w, sc.wagon[0].Key); err != nil {
		return m.rows, err
	}
	prog.done()

	if m.rows == 0 {
		slog.Warn("mixed output is empty", "combination", m.combo.Name)
	}
	slog.Info("mixing done",
		"combination", m.combo.Name,
		"events", sc.wagons,
		"rows", m.rows,
	)
	return m.rows, nil
}

// flushWagon advances the train for the completed wagon and mixes it.
// The first flush bootstraps the pool from the stream tail instead of
// sliding it; next is the key of the event the cursor is entering, so
// the backward fill can never consume rows the forward scan still owns.
func (m *Mixer) flushWagon(sc *scanContext, w RowWriter, next EventKey) error {
	if sc.state == trainEmpty {
		sc.bootstrapFill(m.length, next)
	} else {
		sc.advanceTrain()
	}
	if err := m.mixWagon(sc, w); err != nil {
		return err
	}
	sc.wagons++
	m.wagons = sc.wagons
	return nil
}

// mixWagon emits one row per (wagon entry, valid window of consecutive
// train particles). A pool smaller than the window is skipped silently.
func (m *Mixer) mixWagon(sc *scanContext, w RowWriter) error {
	pool := sc.train.Flatten()
	k := len(m.combo.TrainStems())
	weight := len(pool) - k + 1
	if weight < 1 {
		slog.Debug("pool smaller than window, wagon skipped",
			"run", sc.wagon[0].Key.Run,
			"event", sc.wagon[0].Key.Event,
			"pool", len(pool),
			"window", k,
		)
		return nil
	}
	for _, entry := range sc.wagon {
		if err := m.mixEntry(entry, pool, weight, w); err != nil {
			return err
		}
	}
	return nil
}

// mixEntry slides the train window across the pool for one anchor row.
func (m *Mixer) mixEntry(entry EntryRef, pool []EntryRef, weight int, w RowWriter) error {
	anchor := m.combo.Anchor()
	av, err := m.loadVec(entry.Row, anchor)
	if err != nil {
		return err
	}
	aobs, err := m.loadObs(entry.Row, anchor)
	if err != nil {
		return err
	}

	slog.Debug("mixing anchor",
		"stem", anchor,
		"row", entry.Row,
		"run", entry.Key.Run,
		"event", entry.Key.Event,
		"weight", weight,
	)

	stems := m.combo.TrainStems()
	k := len(stems)
	for n := 0; n+k <= len(pool); n++ {
		px, py, pz, en := av.Px(), av.Py(), av.Pz(), av.E()
		daughters := make([]float64, 0, 3*(k+1))
		daughters = append(daughters, aobs[:]...)

		for off, stem := range stems {
			ref := pool[n+off]
			sv, err := m.loadVec(ref.Row, stem)
			if err != nil {
				return err
			}
			px += sv.Px()
			py += sv.Py()
			pz += sv.Pz()
			en += sv.E()

			obs, err := m.loadObs(ref.Row, stem)
			if err != nil {
				return err
			}
			daughters = append(daughters, obs[:]...)

			slog.Debug("mixing train stem",
				"stem", stem,
				"row", ref.Row,
				"run", ref.Key.Run,
				"event", ref.Key.Event,
			)
		}

		mixed := fmom.NewPxPyPzE(px, py, pz, en)
		row := make([]float64, 0, 3+len(daughters)+1)
		row = append(row, mixed.M(), mixed.Pt(), mixed.Rapidity())
		row = append(row, daughters...)
		row = append(row, float64(weight))

		if m.observe != nil {
			m.observe(mixed.M())
		}
		if err := w.Append(row); err != nil {
			return fmt.Errorf("append mixed row: %w", err)
		}
		m.rows++
	}
	return nil
}

// loadVec reads a stem's Cartesian 4-vector from one source row.
func (m *Mixer) loadVec(row int64, stem string) (fmom.PxPyPzE, error) {
	var comps [4]float64
	for i, suf := range momentumSuffixes {
		v, err := m.tab.Scalar(row, stem+suf)
		if err != nil {
			return fmom.PxPyPzE{}, fmt.Errorf("read %s%s at row %d: %w", stem, suf, row, err)
		}
		comps[i] = v
	}
	return fmom.NewPxPyPzE(comps[0], comps[1], comps[2], comps[3]), nil
}

// loadObs reads a stem's precomputed (M, PT, Y) from one source row.
func (m *Mixer) loadObs(row int64, stem string) ([3]float64, error) {
	var obs [3]float64
	for i, suf := range observableSuffixes {
		v, err := m.tab.Scalar(row, stem+suf)
		if err != nil {
			return obs, fmt.Errorf("read %s%s at row %d: %w", stem, suf, row, err)
		}
		obs[i] = v
	}
	return obs, nil
}

package mix

import (
	"fmt"
	"log/slog"
	"sort"
)

// Ordering columns required from the event source.
const (
	ColumnRun   = "runNumber"
	ColumnEvent = "eventNumber"
)

// BuildIndex produces the order index: every source row as an EntryRef,
// sorted by non-decreasing (runNumber, eventNumber). Ties among rows of
// the same event preserve source order, so the index is a stable total
// order and two runs over the same table visit rows identically.
//
// Missing ordering columns are a caller contract violation, not a
// crash: a warning fires and the entries come back in source order with
// zero keys. Downstream results are then unreliable.
func BuildIndex(tab Table) ([]EntryRef, error) {
	n := tab.NumRows()
	entries := make([]EntryRef, n)
	for i := range entries {
		entries[i].Row = int64(i)
	}

	for _, col := range []string{ColumnRun, ColumnEvent} {
		if !tab.HasColumn(col) {
			slog.Warn("ordering column missing from input, expect problems", "column", col)
			return entries, nil
		}
	}

	for i := int64(0); i < n; i++ {
		run, err := tab.Scalar(i, ColumnRun)
		if err != nil {
			return nil, fmt.Errorf("read %s at row %d: %w", ColumnRun, i, err)
		}
		evt, err := tab.Scalar(i, ColumnEvent)
		if err != nil {
			return nil, fmt.Errorf("read %s at row %d: %w", ColumnEvent, i, err)
		}
		entries[i].Key = EventKey{Run: int64(run), Event: int64(evt)}
	}

	sort.SliceStable(entries, func(a, b int) bool {
		ka, kb := entries[a].Key, entries[b].Key
		if ka.Run != kb.Run {
			return ka.Run < kb.Run
		}
		return ka.Event < kb.Event
	})

	return entries, nil
}

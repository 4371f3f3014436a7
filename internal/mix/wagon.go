package mix

import "log/slog"

// trainState tracks the fill policy phase of the scan.
type trainState int

const (
	// trainEmpty: no bootstrap has happened yet.
	trainEmpty trainState = iota
	// trainSteady: the pool slides one-in-one-out at each boundary.
	trainSteady
)

// scanContext carries the full mutable state of one mixing scan: the
// ordered entries, the forward limit, the in-flight wagon, the stored
// wagon awaiting promotion, and the train. Threading it explicitly
// through bootstrap, boundary and flush steps keeps the dual-cursor
// bootstrap testable in isolation.
type scanContext struct {
	entries []EntryRef
	limit   int // exclusive end of the forward region

	wagon  []EntryRef // consecutive entries of the current event
	stored []EntryRef // previous wagon, promoted one boundary later

	train  *Train
	state  trainState
	wagons int // distinct events processed, forward and bootstrap
}

func newScanContext(entries []EntryRef) *scanContext {
	return &scanContext{
		entries: entries,
		limit:   len(entries),
		train:   NewTrain(),
	}
}

// bootstrapFill populates the empty train by walking backward from the
// ordered tail, grouping consecutive same-key entries into wagons just
// like the forward scan does. The walk stops when capacity distinct
// keys have been collected, or when it reaches the top of the event
// group the forward cursor is currently inside (key == current) - which
// both bounds the fill and guarantees the pool never contains the
// in-flight event.
//
// Every position the walk consumed becomes pool-owned: the forward
// limit drops to the lowest consumed position, so no row is ever both a
// pool constituent and a later anchor, and no row is skipped.
//
// Collected wagons are inserted nearest-to-cursor first, leaving the
// farthest tail event at the front of the train and the nearest at the
// tail, first in line for eviction.
func (sc *scanContext) bootstrapFill(capacity int, current EventKey) {
	type group struct {
		key  EventKey
		refs []EntryRef
	}
	var groups []group

	j := sc.limit - 1
	for j >= 0 && len(groups) < capacity {
		key := sc.entries[j].Key
		if key == current {
			break
		}
		lo := j
		for lo-1 >= 0 && sc.entries[lo-1].Key == key {
			lo--
		}
		refs := append([]EntryRef(nil), sc.entries[lo:j+1]...)
		groups = append(groups, group{key: key, refs: refs})
		sc.limit = lo
		j = lo - 1
	}

	for i := len(groups) - 1; i >= 0; i-- {
		sc.train.PromoteOrInsert(groups[i].key, groups[i].refs)
	}

	sc.wagons += len(groups)
	sc.state = trainSteady

	slog.Debug("train bootstrapped",
		"pooled_events", sc.train.Len(),
		"capacity", capacity,
		"forward_limit", sc.limit,
	)
}

// advanceTrain slides the pool by one event: the tail is evicted and
// the stored wagon (the one completed before the wagon about to be
// mixed) is promoted to the front under its key. The one-boundary lag
// means the wagon being mixed is never in the pool it mixes against.
func (sc *scanContext) advanceTrain() {
	if sc.train.Len() > 0 {
		key, _, _ := sc.train.EvictTail()
		slog.Debug("train tail evicted", "run", key.Run, "event", key.Event)
	}
	if len(sc.stored) > 0 {
		sc.train.PromoteOrInsert(sc.stored[0].Key, sc.stored)
	}
}

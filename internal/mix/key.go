package mix

import "fmt"

// EventKey identifies one physical collision event by its composite
// (runNumber, eventNumber) key. Immutable once formed.
type EventKey struct {
	Run   int64
	Event int64
}

func (k EventKey) String() string {
	return fmt.Sprintf("%d_%d", k.Run, k.Event)
}

// EntryRef is the atomic addressable unit of the scan: one source-table
// row position together with the event it belongs to.
type EntryRef struct {
	Row int64 // position in the source table, rowid order
	Key EventKey
}

package mix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entriesFromKeys(keys ...[2]int64) []EntryRef {
	out := make([]EntryRef, len(keys))
	for i, k := range keys {
		out[i] = EntryRef{Row: int64(i), Key: EventKey{Run: k[0], Event: k[1]}}
	}
	return out
}

func TestBootstrapFill_StopsAtCapacity(t *testing.T) {
	// Five single-row events; capacity 2 pools the last two.
	sc := newScanContext(entriesFromKeys(
		[2]int64{1, 1}, [2]int64{1, 2}, [2]int64{1, 3}, [2]int64{1, 4}, [2]int64{1, 5},
	))

	sc.bootstrapFill(2, key(1, 2))

	require.Equal(t, 2, sc.train.Len())
	// Farthest tail event at the front, nearest at the tail.
	assert.Equal(t, []EventKey{key(1, 5), key(1, 4)}, sc.train.Keys())
	assert.Equal(t, 3, sc.limit, "forward region must stop before pool-owned rows")
	assert.Equal(t, 2, sc.wagons)
	assert.Equal(t, trainSteady, sc.state)

	// The nearest pooled event is evicted first.
	k, _, ok := sc.train.EvictTail()
	require.True(t, ok)
	assert.Equal(t, key(1, 4), k)
}

func TestBootstrapFill_StopsAtCurrentEventGroup(t *testing.T) {
	// Capacity exceeds what is poolable: the walk must stop at the top
	// of the in-flight event's group so the pool can never contain it.
	sc := newScanContext(entriesFromKeys(
		[2]int64{1, 1}, [2]int64{1, 2}, [2]int64{1, 2}, [2]int64{1, 3},
	))

	sc.bootstrapFill(10, key(1, 2))

	require.Equal(t, 1, sc.train.Len())
	assert.Equal(t, []EventKey{key(1, 3)}, sc.train.Keys())
	assert.Equal(t, 3, sc.limit)
	assert.Equal(t, 1, sc.wagons)
}

func TestBootstrapFill_CurrentAtTailPoolsNothing(t *testing.T) {
	sc := newScanContext(entriesFromKeys(
		[2]int64{1, 1}, [2]int64{1, 2}, [2]int64{1, 2},
	))

	sc.bootstrapFill(5, key(1, 2))

	assert.Equal(t, 0, sc.train.Len())
	assert.Equal(t, 3, sc.limit)
	assert.Equal(t, trainSteady, sc.state, "an empty bootstrap still leaves the fill phase")
}

func TestBootstrapFill_GroupsMultiRowWagons(t *testing.T) {
	sc := newScanContext(entriesFromKeys(
		[2]int64{1, 1}, [2]int64{1, 2}, [2]int64{1, 3}, [2]int64{1, 3}, [2]int64{1, 3},
	))

	sc.bootstrapFill(1, key(1, 2))

	require.Equal(t, 1, sc.train.Len())
	assert.Equal(t, refs(2, 3, 4), stripKeys(sc.train.Flatten()))
	assert.Equal(t, 2, sc.limit)
}

func TestAdvanceTrain_EvictsThenPromotesStored(t *testing.T) {
	sc := newScanContext(nil)
	sc.train.PromoteOrInsert(key(1, 9), refs(9))
	sc.train.PromoteOrInsert(key(1, 8), refs(8))
	sc.stored = []EntryRef{{Row: 0, Key: key(1, 1)}}

	sc.advanceTrain()

	assert.Equal(t, []EventKey{key(1, 1), key(1, 8)}, sc.train.Keys())
}

func TestAdvanceTrain_EmptyTrainNoStored(t *testing.T) {
	sc := newScanContext(nil)
	sc.advanceTrain()
	assert.Equal(t, 0, sc.train.Len())
}

// stripKeys reduces refs to their row indices for comparison against
// the refs helper, which leaves keys zero.
func stripKeys(in []EntryRef) []EntryRef {
	out := make([]EntryRef, len(in))
	for i, r := range in {
		out[i] = EntryRef{Row: r.Row}
	}
	return out
}

package mix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(run, event int64) EventKey {
	return EventKey{Run: run, Event: event}
}

func refs(rows ...int64) []EntryRef {
	out := make([]EntryRef, len(rows))
	for i, r := range rows {
		out[i] = EntryRef{Row: r}
	}
	return out
}

func TestTrain_InsertOrder(t *testing.T) {
	tr := NewTrain()
	tr.PromoteOrInsert(key(1, 1), refs(0))
	tr.PromoteOrInsert(key(1, 2), refs(1))
	tr.PromoteOrInsert(key(1, 3), refs(2))

	// Most recently promoted first.
	assert.Equal(t, []EventKey{key(1, 3), key(1, 2), key(1, 1)}, tr.Keys())
	assert.Equal(t, 3, tr.Len())
}

func TestTrain_PromoteExistingKeepsValue(t *testing.T) {
	tr := NewTrain()
	tr.PromoteOrInsert(key(1, 1), refs(0))
	tr.PromoteOrInsert(key(1, 2), refs(1))

	// Promotion moves the key to the front but must NOT replace refs.
	tr.PromoteOrInsert(key(1, 1), refs(99))

	assert.Equal(t, []EventKey{key(1, 1), key(1, 2)}, tr.Keys())
	assert.Equal(t, refs(0, 1), tr.Flatten())
}

func TestTrain_PromoteFrontIsIdempotent(t *testing.T) {
	tr := NewTrain()
	tr.PromoteOrInsert(key(1, 1), refs(0))
	tr.PromoteOrInsert(key(1, 2), refs(1))

	before := tr.Keys()
	tr.PromoteOrInsert(key(1, 2), refs(42))
	assert.Equal(t, before, tr.Keys())
	assert.Equal(t, refs(1, 0), tr.Flatten())
}

func TestTrain_EvictTail(t *testing.T) {
	tr := NewTrain()
	tr.PromoteOrInsert(key(1, 1), refs(0))
	tr.PromoteOrInsert(key(1, 2), refs(1, 2))

	k, r, ok := tr.EvictTail()
	require.True(t, ok)
	assert.Equal(t, key(1, 1), k)
	assert.Equal(t, refs(0), r)
	assert.Equal(t, 1, tr.Len())

	k, r, ok = tr.EvictTail()
	require.True(t, ok)
	assert.Equal(t, key(1, 2), k)
	assert.Equal(t, refs(1, 2), r)
	assert.Equal(t, 0, tr.Len())

	_, _, ok = tr.EvictTail()
	assert.False(t, ok, "evicting an empty train should signal empty")
}

func TestTrain_PromotionChangesEvictionOrder(t *testing.T) {
	tr := NewTrain()
	tr.PromoteOrInsert(key(1, 1), refs(0))
	tr.PromoteOrInsert(key(1, 2), refs(1))
	tr.PromoteOrInsert(key(1, 3), refs(2))

	// Promote the would-be eviction candidate; the next tail moves up.
	tr.PromoteOrInsert(key(1, 1), nil)

	k, _, ok := tr.EvictTail()
	require.True(t, ok)
	assert.Equal(t, key(1, 2), k)
}

func TestTrain_FlattenConcatenatesInOrder(t *testing.T) {
	tr := NewTrain()
	tr.PromoteOrInsert(key(1, 1), refs(0, 1))
	tr.PromoteOrInsert(key(1, 2), refs(2))
	tr.PromoteOrInsert(key(1, 3), refs(3, 4))

	assert.Equal(t, refs(3, 4, 2, 0, 1), tr.Flatten())
}

func TestTrain_Empty(t *testing.T) {
	tr := NewTrain()
	assert.Equal(t, 0, tr.Len())
	assert.Empty(t, tr.Keys())
	assert.Empty(t, tr.Flatten())
}

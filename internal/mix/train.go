package mix

// Train is the bounded, insertion-ordered pool of recent events used as
// the mixing source. It maps an EventKey to the entry references of that
// event, ordered most-recently-promoted first.
//
// The structure is a doubly-linked list of keys plus a map from key to
// its node, so PromoteOrInsert, EvictTail and lookup are all O(1).
// Promotion moves an existing key to the front WITHOUT touching its
// stored value.
//
// The train never enforces capacity itself; callers evict explicitly so
// that the evicted wagon can be observed (and so bootstrap can fill
// below capacity without special cases).
//
// Not safe for concurrent use. The scan owns it from a single goroutine.
type Train struct {
	nodes map[EventKey]*trainNode
	head  *trainNode // most recently promoted
	tail  *trainNode // eviction candidate
}

type trainNode struct {
	key  EventKey
	refs []EntryRef
	prev *trainNode
	next *trainNode
}

// NewTrain creates an empty train.
func NewTrain() *Train {
	return &Train{nodes: make(map[EventKey]*trainNode)}
}

// Len returns the number of distinct event keys currently pooled.
func (t *Train) Len() int {
	return len(t.nodes)
}

// PromoteOrInsert moves key to the front of the ordering. If the key is
// already present its stored refs are left unchanged; otherwise it is
// inserted at the front with refs as its value.
func (t *Train) PromoteOrInsert(key EventKey, refs []EntryRef) {
	if n, ok := t.nodes[key]; ok {
		if n == t.head {
			return
		}
		t.unlink(n)
		t.pushFront(n)
		return
	}
	n := &trainNode{key: key, refs: refs}
	t.nodes[key] = n
	t.pushFront(n)
}

// EvictTail removes and returns the least-recently-promoted key and its
// refs. ok is false when the train is empty.
func (t *Train) EvictTail() (EventKey, []EntryRef, bool) {
	n := t.tail
	if n == nil {
		return EventKey{}, nil, false
	}
	t.unlink(n)
	delete(t.nodes, n.key)
	return n.key, n.refs, true
}

// Keys returns the pooled keys, most-recently-promoted first.
func (t *Train) Keys() []EventKey {
	keys := make([]EventKey, 0, len(t.nodes))
	for n := t.head; n != nil; n = n.next {
		keys = append(keys, n.key)
	}
	return keys
}

// Flatten concatenates every pooled event's refs in train order into
// one combined candidate pool.
func (t *Train) Flatten() []EntryRef {
	var refs []EntryRef
	for n := t.head; n != nil; n = n.next {
		refs = append(refs, n.refs...)
	}
	return refs
}

func (t *Train) pushFront(n *trainNode) {
	n.prev = nil
	n.next = t.head
	if t.head != nil {
		t.head.prev = n
	}
	t.head = n
	if t.tail == nil {
		t.tail = n
	}
}

func (t *Train) unlink(n *trainNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		t.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		t.tail = n.prev
	}
	n.prev = nil
	n.next = nil
}

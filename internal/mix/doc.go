// Package mix implements sliding-window event mixing for combinatorial
// background estimation.
//
// Mixing pairs the anchor particle of each event in a run/event-ordered
// stream with particles drawn from a bounded pool ("train") of nearby
// events, sums the 4-vectors and records the invariant mass, transverse
// momentum and rapidity of every mixed candidate.
//
// ARCHITECTURE:
//
// Single sequential scan:
// The mixer visits the ordered entries exactly once, in order-index order.
// All pool mutation happens on that one goroutine. This ensures:
// - Reproducible output row order across runs
// - A linear-time scan (the train promotes and evicts in O(1))
// - Simple reasoning about which events can meet in a candidate
//
// Scan flow:
//  1. BuildIndex sorts entry positions by (runNumber, eventNumber),
//     ties keeping source order.
//  2. Consecutive entries sharing an event key accumulate into a wagon.
//  3. A key change is an event boundary: the train absorbs the wagon
//     before the one that just completed, then the completed wagon is
//     mixed against the pool. The one-boundary lag keeps an event out
//     of its own pool.
//  4. The first boundary bootstraps the train from the tail of the
//     ordered stream; positions consumed by the bootstrap become
//     pool-owned and the forward scan stops before them.
//  5. End of stream flushes the last wagon through the same path.
//
// Every emitted row carries the weight
//
//	len(pool) - len(trainStems) + 1
//
// the number of valid sliding windows for that wagon, so that unequal
// pool occupancy can be corrected for downstream.
//
// The mixer is single-threaded. Output row order is part of the
// contract: two runs over the same table and config must produce
// byte-identical output.
package mix

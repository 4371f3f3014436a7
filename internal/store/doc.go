// Package store provides SQLite-backed tabular I/O for event mixing.
//
// Read side: EventTable gives random access by row position (rowid
// order) to the scalar columns of the source event table. Columns are
// loaded lazily and cached whole, so the scan's repeated per-row reads
// stay O(1) after the first touch of each column.
//
// Write side: Store owns the output database. MixWriter appends mixed
// candidate rows to one flat table per combination inside a single
// transaction, and a runs table records the token, start time and
// config snapshot of every mixing run.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//
// The input database is opened read-only; the core never accesses
// either side concurrently.
package store

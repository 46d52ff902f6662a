// Package store persists riddle runs in SQLite.
//
// A run is written once, in a single transaction, together with its riddles
// and their solutions. Writing the same run ID again is a no-op.
//
// # Ordering
//
// Runs are listed by a logical sequence number assigned on insert, riddles
// and equations by their canonical strings. Every query ends in an ORDER BY
// with COLLATE BINARY so listings are byte-for-byte reproducible.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Loading a run recomputes its digest with riddle.Digest and rejects rows
// that no longer match.
package store

// Package refresh sequences the refresh pipeline.
//
// A run moves through an explicit state machine:
//
//	Idle -> Fetching -> Reconciling -> Persisting -> Summarizing -> Done
//	           |                           |
//	           +---------> Failed <--------+
//
// Only fetching and persisting can fail. A fetch failure happens before any
// write, and persistence is a single transaction, so a failed run never leaves
// partial rows behind.
//
// Failures surface as *Error with one of two kinds: KindSourceUnavailable
// (with the upstream name) or KindInternal.
//
// Runs are serialized through a lock.Locker on LockKey. The lock is held until
// the background summary finishes, so a second refresh never races the image
// of the first. Call Wait before shutdown to drain pending summaries.
package refresh
